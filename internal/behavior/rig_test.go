package behavior

import (
	"math/rand"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/san-kum/fieldpong/internal/actor"
	"github.com/san-kum/fieldpong/internal/lattice"
	"github.com/san-kum/fieldpong/internal/physics"
)

const (
	catPaddle = 1
	catBullet = 14
	catBall   = 11
)

type rig struct {
	eng    *physics.Space
	actors *actor.Manager
	grid   *lattice.Grid
	rng    *rand.Rand
}

func newRig(t *testing.T) *rig {
	t.Helper()
	grid, err := lattice.New(20, 5, 100, 0.5, physics.Rect{Width: 1024, Height: 768})
	if err != nil {
		t.Fatalf("lattice: %v", err)
	}
	return &rig{
		eng:    physics.NewSpace(),
		actors: actor.NewManager(),
		grid:   grid,
		rng:    rand.New(rand.NewSource(7)),
	}
}

// build makes an unspawned circular actor at pos.
func (r *rig) build(t *testing.T, pos cp.Vector, cat int, mask physics.Category, behaviors ...actor.Behavior) *actor.Actor {
	t.Helper()
	body, err := r.eng.NewBody(physics.BodyDef{Shape: physics.Circle, Radius: 10, Mass: 1})
	if err != nil {
		t.Fatalf("body: %v", err)
	}
	body.SetPosition(pos)
	geom, err := r.eng.NewGeom(body, physics.GeomDef{Shape: physics.Circle, Radius: 10, Categories: physics.Cat(cat), CollidesWith: mask})
	if err != nil {
		t.Fatalf("geom: %v", err)
	}
	return actor.New(r.eng, &actor.Visual{Name: "disc"}, body, geom, behaviors...)
}

func (r *rig) spawn(t *testing.T, pos cp.Vector, cat int, mask physics.Category, behaviors ...actor.Behavior) *actor.Actor {
	t.Helper()
	a := r.build(t, pos, cat, mask, behaviors...)
	if _, err := r.actors.Spawn(a); err != nil {
		t.Fatalf("spawn: %v", err)
	}
	return a
}

func (r *rig) registerProjectiles(t *testing.T) {
	t.Helper()
	bulletMask := physics.Cat(catPaddle) | physics.Cat(13)
	if err := r.actors.RegisterTemplate(r.build(t, cp.Vector{}, catBullet, bulletMask), TemplateBullet); err != nil {
		t.Fatal(err)
	}
	if err := r.actors.RegisterTemplate(r.build(t, cp.Vector{}, catBall, bulletMask, NewWell(r.grid)), TemplateGravityBall); err != nil {
		t.Fatal(err)
	}
}

// settle promotes pending actors into the live set without running a frame's
// worth of behaviors on anything new.
func (r *rig) settle(t *testing.T) {
	t.Helper()
	if err := r.actors.Update(0, nil); err != nil {
		t.Fatalf("update: %v", err)
	}
}
