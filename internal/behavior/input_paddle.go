package behavior

import (
	"errors"

	"github.com/san-kum/fieldpong/internal/actor"
	"github.com/san-kum/fieldpong/internal/input"
)

const (
	aimThreshold      = 0.3
	vibrationDuration = 0.5
	vibrationStrength = 0.5
)

// InputPaddle drives a paddle from an input.Source: the move stick pushes,
// the triggers spin, the aim stick fires bullets and the gravity-ball button
// fires a gravity ball upfield with a short rumble.
type InputPaddle struct {
	Paddle
	source    input.Source
	rumble    input.Rumbler
	level     int
	vibrating bool
	vibration float64
}

// NewInputPaddle builds an input paddle; rumble may be nil.
func NewInputPaddle(actors *actor.Manager, t Tuning, source input.Source, rumble input.Rumbler) *InputPaddle {
	if source == nil {
		source = input.Idle{}
	}
	return &InputPaddle{Paddle: newPaddle(actors, t), source: source, rumble: rumble, level: 1}
}

func (p *InputPaddle) Kind() actor.Kind { return actor.KindInputPaddle }

func (p *InputPaddle) Level() int      { return p.level }
func (p *InputPaddle) SetLevel(n int)  { p.level = n }
func (p *InputPaddle) Vibrating() bool { return p.vibrating }

func (p *InputPaddle) SetSource(s input.Source) {
	if s == nil {
		s = input.Idle{}
	}
	p.source = s
}

func (p *InputPaddle) Update(dt float64) error {
	p.tick(dt)
	st := p.source.Poll()

	var errs []error
	errs = append(errs, p.Move(st.Move), p.Spin(st.RightTrigger), p.Spin(-st.LeftTrigger))

	if st.Aim.Length() >= aimThreshold {
		if dir, ok := unit(st.Aim); ok {
			dir.Y = -dir.Y
			var err error
			if p.level < p.tuning.SprayLevel {
				_, err = p.ShootBullet(dir)
			} else {
				_, err = p.ShootSpray(dir)
			}
			errs = append(errs, err)
		}
	}

	if st.Pressed(input.ButtonGravityBall) {
		fired, err := p.ShootGravityBall(1)
		errs = append(errs, err)
		if fired {
			p.vibrating, p.vibration = true, 0
			p.rumbleAt(vibrationStrength)
		}
	}

	if p.vibrating {
		p.vibration += dt
		if p.vibration >= vibrationDuration {
			p.vibrating, p.vibration = false, 0
			p.rumbleAt(0)
		}
	}
	return errors.Join(errs...)
}

func (p *InputPaddle) rumbleAt(v float64) {
	if p.rumble != nil {
		p.rumble.Rumble(v, v)
	}
}

func (p *InputPaddle) Clone() actor.Behavior {
	c := *p
	c.Base = actor.Base{}
	return &c
}
