package behavior

import (
	"math"

	"github.com/san-kum/fieldpong/internal/actor"
	"github.com/san-kum/fieldpong/internal/lattice"
)

// Detail selects how much of an actor's motion shows up in the lattice.
type Detail int

const (
	// DetailLow disturbs the lattice from linear motion only.
	DetailLow Detail = iota
	// DetailHigh also twists it with the body's torque.
	DetailHigh
)

const (
	disturbanceScale = 80.0
	maxDisturbance   = 380.0
	twistScale       = 1200.0
	maxTwist         = 2000.0
)

// Distort pushes the lattice away from a moving actor.
type Distort struct {
	actor.Base
	grid   *lattice.Grid
	detail Detail
}

func NewDistort(grid *lattice.Grid, detail Detail) *Distort {
	return &Distort{grid: grid, detail: detail}
}

func (d *Distort) Kind() actor.Kind { return actor.KindDistort }
func (d *Distort) Detail() Detail   { return d.detail }

func (d *Distort) Update(float64) error {
	body, err := ownerBody(&d.Base)
	if err != nil {
		return err
	}
	pos := body.Position()
	if speed := body.LinearVelocity().Length(); speed > 0 {
		d.grid.ApplyDisturbance(pos, math.Min(disturbanceScale*speed, maxDisturbance))
	}
	if d.detail == DetailHigh {
		if t := body.Torque(); t != 0 {
			d.grid.Twist(pos, sign(t), math.Min(twistScale*math.Abs(t), maxTwist))
		}
	}
	return nil
}

func (d *Distort) Clone() actor.Behavior {
	return &Distort{grid: d.grid, detail: d.detail}
}
