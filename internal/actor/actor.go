package actor

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/san-kum/fieldpong/internal/physics"
)

// MaxAlpha is the fully opaque value of an actor's opacity.
const MaxAlpha = 255.0

// Visual describes how an actor is drawn. Clones share their template's Visual.
type Visual struct {
	Name   string
	Glyph  rune
	Shape  physics.ShapeKind
	Width  float64
	Height float64
}

// Actor is a game object composed from a fixed list of behaviors plus one
// rigid body and one collision geometry.
type Actor struct {
	handle    Handle
	alive     bool
	behaviors []Behavior
	visual    *Visual
	engine    physics.Engine
	body      physics.Body
	geom      physics.Geom
	alpha     float64
}

// New builds an actor and binds every behavior to it. The behavior list is
// fixed from here on. The physics handles are not added to the engine; that
// happens when the actor is cloned or spawned through a Manager.
func New(engine physics.Engine, visual *Visual, body physics.Body, geom physics.Geom, behaviors ...Behavior) *Actor {
	a := &Actor{
		alive:     true,
		behaviors: append([]Behavior(nil), behaviors...),
		visual:    visual,
		engine:    engine,
		body:      body,
		geom:      geom,
		alpha:     MaxAlpha,
	}
	for _, b := range a.behaviors {
		b.Bind(a)
	}
	return a
}

func (a *Actor) Handle() Handle         { return a.handle }
func (a *Actor) Alive() bool            { return a.alive }
func (a *Actor) Visual() *Visual        { return a.visual }
func (a *Actor) Body() physics.Body     { return a.body }
func (a *Actor) Geom() physics.Geom     { return a.geom }
func (a *Actor) Engine() physics.Engine { return a.engine }
func (a *Actor) Alpha() float64         { return a.alpha }

// SetAlpha sets the opacity, clamped to [0, MaxAlpha].
func (a *Actor) SetAlpha(v float64) {
	a.alpha = min(max(v, 0), MaxAlpha)
}

// Position is the body position, or the zero vector for an actor without a body.
func (a *Actor) Position() cp.Vector {
	if a.body == nil {
		return cp.Vector{}
	}
	return a.body.Position()
}

// Behaviors returns a copy of the behavior list in construction order.
func (a *Actor) Behaviors() []Behavior {
	return append([]Behavior(nil), a.behaviors...)
}

// Kinds returns the behavior kinds in construction order.
func (a *Actor) Kinds() []Kind {
	out := make([]Kind, len(a.behaviors))
	for i, b := range a.behaviors {
		out[i] = b.Kind()
	}
	return out
}

// Behavior returns the first behavior of the given kind.
func (a *Actor) Behavior(kind Kind) (Behavior, bool) {
	for _, b := range a.behaviors {
		if b.Kind() == kind {
			return b, true
		}
	}
	return nil, false
}

func (a *Actor) Has(kind Kind) bool {
	_, ok := a.Behavior(kind)
	return ok
}

// BehaviorOf returns the first behavior of a's list with concrete type T.
func BehaviorOf[T Behavior](a *Actor) (T, bool) {
	for _, b := range a.behaviors {
		if t, ok := b.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// Clone copies every behavior, allocates new physics handles seeded from a's,
// adds them to the engine and runs each behavior's Init against the clone.
func (a *Actor) Clone() (*Actor, error) {
	behaviors := make([]Behavior, len(a.behaviors))
	for i, b := range a.behaviors {
		behaviors[i] = b.Clone()
	}

	var (
		body physics.Body
		geom physics.Geom
		err  error
	)
	if a.body != nil {
		if body, err = a.engine.CloneBody(a.body); err != nil {
			return nil, fmt.Errorf("clone body: %w", err)
		}
		if a.geom != nil {
			if geom, err = a.engine.CloneGeom(body, a.geom); err != nil {
				return nil, fmt.Errorf("clone geom: %w", err)
			}
		}
	}

	c := New(a.engine, a.visual, body, geom, behaviors...)
	c.alpha = a.alpha
	if err := c.activate(); err != nil {
		return nil, err
	}
	return c, nil
}

// activate puts the physics handles into the world and initializes behaviors.
// On failure the actor is killed so nothing is left behind in the engine.
func (a *Actor) activate() error {
	if a.engine != nil && a.body != nil {
		if err := a.engine.Add(a.body, a.geoms()...); err != nil {
			return fmt.Errorf("add to engine: %w", err)
		}
	}
	var errs []error
	for _, b := range a.behaviors {
		if err := b.Init(); err != nil {
			errs = append(errs, fmt.Errorf("%s init: %w", b.Kind(), err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		a.Kill()
		return err
	}
	return nil
}

// Kill releases the physics handles and marks the actor dead. Only the first
// call has any effect; it reports whether this call did the kill.
func (a *Actor) Kill() bool {
	if !a.alive {
		return false
	}
	a.alive = false
	if a.engine != nil && a.body != nil {
		a.engine.Remove(a.body, a.geoms()...)
	}
	return true
}

// Update runs every behavior in construction order. A failing behavior does
// not stop the ones after it.
func (a *Actor) Update(dt float64) error {
	var errs []error
	for _, b := range a.behaviors {
		if err := b.Update(dt); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", b.Kind(), err))
		}
	}
	return errors.Join(errs...)
}

func (a *Actor) geoms() []physics.Geom {
	if a.geom == nil {
		return nil
	}
	return []physics.Geom{a.geom}
}

func (a *Actor) String() string {
	name := "actor"
	if a.visual != nil && a.visual.Name != "" {
		name = a.visual.Name
	}
	return fmt.Sprintf("%s%s", name, a.handle)
}
