package behavior

import (
	"errors"
	"math"
	"math/rand"

	"github.com/san-kum/fieldpong/internal/actor"
)

const (
	aiLevelScale = 1.0 / 20
	aiSpinRange  = 100.0
	aiFireBase   = 0.001
)

// FireProbability is the per-frame chance that the AI fires each projectile
// kind at the given level. It grows with the square of the level and is
// capped at 1.
func FireProbability(level int) float64 {
	return math.Min(aiFireBase*float64(level*level), 1)
}

// AIPaddle steers toward a tracked ball, spins when level with it and fires
// at random with a level-scaled probability.
type AIPaddle struct {
	Paddle
	ball  actor.Handle
	level int
	rng   *rand.Rand
}

// NewAIPaddle builds an AI paddle drawing from rng, which is normally the
// world's generator and is shared by clones.
func NewAIPaddle(actors *actor.Manager, t Tuning, rng *rand.Rand) *AIPaddle {
	return &AIPaddle{Paddle: newPaddle(actors, t), level: 1, rng: rng}
}

func (p *AIPaddle) Kind() actor.Kind { return actor.KindAIPaddle }

func (p *AIPaddle) Level() int             { return p.level }
func (p *AIPaddle) SetLevel(n int)         { p.level = n }
func (p *AIPaddle) Ball() actor.Handle     { return p.ball }
func (p *AIPaddle) SetBall(h actor.Handle) { p.ball = h }

// Update is a no-op apart from the fire timers while no live ball is tracked.
func (p *AIPaddle) Update(dt float64) error {
	p.tick(dt)
	ball, ok := p.actors.Get(p.ball)
	if !ok || !ball.Alive() || ball.Body() == nil {
		return nil
	}
	body, err := ownerBody(&p.Base)
	if err != nil {
		return err
	}

	var errs []error
	ratio := float64(p.level) * aiLevelScale
	target, me := ball.Position(), body.Position()
	aligned := math.Abs(target.Y-me.Y) < aiSpinRange
	switch {
	case target.X > me.X:
		errs = append(errs, p.MoveHorizontal(ratio))
		if aligned {
			errs = append(errs, p.Spin(ratio))
		}
	case target.X < me.X:
		errs = append(errs, p.MoveHorizontal(-ratio))
		if aligned {
			errs = append(errs, p.Spin(-ratio))
		}
	}

	chance := FireProbability(p.level)
	if p.rng.Float64() < chance {
		_, err := p.ShootGravityBall(-1)
		errs = append(errs, err)
	}
	if p.rng.Float64() < chance && target.Y > me.Y {
		if dir, ok := unit(target.Sub(me)); ok {
			_, err := p.ShootBullet(dir)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (p *AIPaddle) Clone() actor.Behavior {
	c := *p
	c.Base = actor.Base{}
	return &c
}
