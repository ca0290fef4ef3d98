package behavior

import (
	"math"
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/san-kum/fieldpong/internal/actor"
)

// Launch sends its actor off in a random direction at a random speed in
// [min, max) the first frame its body is free to move, and again after each
// Rearm.
type Launch struct {
	actor.Base
	minSpeed, maxSpeed float64
	rng                *rand.Rand
	armed              bool
}

func NewLaunch(minSpeed, maxSpeed float64, rng *rand.Rand) *Launch {
	return &Launch{minSpeed: minSpeed, maxSpeed: maxSpeed, rng: rng, armed: true}
}

func (l *Launch) Kind() actor.Kind { return actor.KindLaunch }

// Rearm schedules another launch.
func (l *Launch) Rearm()      { l.armed = true }
func (l *Launch) Armed() bool { return l.armed }

func (l *Launch) Update(float64) error {
	if !l.armed {
		return nil
	}
	body, err := ownerBody(&l.Base)
	if err != nil {
		return err
	}
	if body.Static() {
		return nil
	}
	angle := 2 * math.Pi * l.rng.Float64()
	speed := l.minSpeed + l.rng.Float64()*(l.maxSpeed-l.minSpeed)
	s, c := math.Sincos(angle)
	body.SetLinearVelocity(cp.Vector{X: speed * c, Y: speed * s})
	l.armed = false
	return nil
}

func (l *Launch) Clone() actor.Behavior {
	return &Launch{minSpeed: l.minSpeed, maxSpeed: l.maxSpeed, rng: l.rng, armed: l.armed}
}
