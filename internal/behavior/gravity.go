package behavior

import (
	"github.com/jakecoffman/cp"
	"github.com/san-kum/fieldpong/internal/actor"
	"github.com/san-kum/fieldpong/internal/lattice"
)

const (
	// WellStrength is the twist torque a gravity well applies to the lattice every frame.
	WellStrength = 15000.0
	// GravitationalConstant scales the attraction between wells and attracted actors.
	GravitationalConstant = 9990.0
)

// Well marks its actor as a gravity source and keeps the lattice twisted
// around it.
type Well struct {
	actor.Base
	grid     *lattice.Grid
	strength float64
}

func NewWell(grid *lattice.Grid) *Well {
	return &Well{grid: grid, strength: WellStrength}
}

func (w *Well) Kind() actor.Kind { return actor.KindGravityWell }

func (w *Well) Update(float64) error {
	body, err := ownerBody(&w.Base)
	if err != nil {
		return err
	}
	w.grid.Twist(body.Position(), 1, w.strength)
	return nil
}

func (w *Well) Clone() actor.Behavior {
	return &Well{grid: w.grid, strength: w.strength}
}

// Attract pulls its actor toward every live gravity well.
type Attract struct {
	actor.Base
	actors *actor.Manager
	g      float64
}

func NewAttract(actors *actor.Manager) *Attract {
	return &Attract{actors: actors, g: GravitationalConstant}
}

func (a *Attract) Kind() actor.Kind { return actor.KindGravityAttract }

func (a *Attract) Update(float64) error {
	body, err := ownerBody(&a.Base)
	if err != nil {
		return err
	}
	wells, err := a.actors.FindByCapability(actor.KindGravityWell)
	if err != nil {
		return err
	}
	if f := Pull(a.Owner(), wells, a.g); f != (cp.Vector{}) {
		body.ApplyForce(f)
	}
	return nil
}

func (a *Attract) Clone() actor.Behavior {
	return &Attract{actors: a.actors, g: a.g}
}

// Pull is the net force on target from wells: unit(d) * g * m1 * m2 / |d|.
// The force falls off with distance, not its square, so wells reach across
// the whole arena. The target itself and coincident wells contribute nothing.
func Pull(target *actor.Actor, wells []*actor.Actor, g float64) cp.Vector {
	var net cp.Vector
	if target == nil || target.Body() == nil {
		return net
	}
	tb := target.Body()
	for _, w := range wells {
		if w == target || w.Body() == nil {
			continue
		}
		d := w.Body().Position().Sub(tb.Position())
		dist := d.Length()
		dir, ok := unit(d)
		if !ok {
			continue
		}
		net = net.Add(dir.Mult(g * w.Body().Mass() * tb.Mass() / dist))
	}
	return net
}
