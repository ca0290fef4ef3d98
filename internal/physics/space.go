package physics

import (
	"fmt"
	"sync"

	"github.com/jakecoffman/cp"
)

// arenaCollision is the single collision type every geom carries so one
// handler sees all contacts and can apply the category filter.
const arenaCollision cp.CollisionType = 1

// cpMu serializes cp constructors, which share package-level counters across
// spaces. Each Space is still driven by a single goroutine.
var cpMu sync.Mutex

// Space is an Engine backed by a Chipmunk2D space.
type Space struct {
	space    *cp.Space
	bodies   map[*body]struct{}
	stepping bool
	deferred []func()
	steps    int
}

func NewSpace() *Space {
	cpMu.Lock()
	defer cpMu.Unlock()
	s := &Space{
		space:  cp.NewSpace(),
		bodies: make(map[*body]struct{}),
	}
	s.space.SetGravity(cp.Vector{})
	handler := s.space.NewCollisionHandler(arenaCollision, arenaCollision)
	handler.BeginFunc = s.begin
	return s
}

// Steps reports how many times Step has run.
func (s *Space) Steps() int { return s.steps }

// BodyCount reports the bodies currently in the world.
func (s *Space) BodyCount() int { return len(s.bodies) }

func (s *Space) NewBody(def BodyDef) (Body, error) {
	if def.Static {
		cpMu.Lock()
		defer cpMu.Unlock()
		return &body{owner: s, def: def, cp: cp.NewStaticBody(), static: true}, nil
	}
	if def.Mass <= 0 {
		return nil, fmt.Errorf("%w: body mass %v", ErrInvalidShape, def.Mass)
	}
	var moment float64
	switch def.Shape {
	case Rectangle:
		if def.Width <= 0 || def.Height <= 0 {
			return nil, fmt.Errorf("%w: rectangle body %vx%v", ErrInvalidShape, def.Width, def.Height)
		}
		moment = cp.MomentForBox(def.Mass, def.Width, def.Height)
	case Circle:
		if def.Radius <= 0 {
			return nil, fmt.Errorf("%w: circle body radius %v", ErrInvalidShape, def.Radius)
		}
		moment = cp.MomentForCircle(def.Mass, 0, def.Radius, cp.Vector{})
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidShape, def.Shape)
	}
	cpMu.Lock()
	defer cpMu.Unlock()
	return &body{owner: s, def: def, cp: cp.NewBody(def.Mass, moment)}, nil
}

func (s *Space) NewGeom(b Body, def GeomDef) (Geom, error) {
	bb, err := s.own(b)
	if err != nil {
		return nil, err
	}
	switch def.Shape {
	case Rectangle:
		if def.Width <= 0 || def.Height <= 0 {
			return nil, fmt.Errorf("%w: rectangle geom %vx%v", ErrInvalidShape, def.Width, def.Height)
		}
	case Circle:
		if def.Radius <= 0 {
			return nil, fmt.Errorf("%w: circle geom radius %v", ErrInvalidShape, def.Radius)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidShape, def.Shape)
	}
	shape := newShape(bb.cp, def)
	shape.SetElasticity(def.Elasticity)
	shape.SetFriction(def.Friction)
	shape.SetCollisionType(arenaCollision)
	g := &geom{owner: s, body: bb, def: def, cp: shape, categories: def.Categories, mask: def.CollidesWith}
	shape.UserData = g
	return g, nil
}

func newShape(b *cp.Body, def GeomDef) *cp.Shape {
	cpMu.Lock()
	defer cpMu.Unlock()
	if def.Shape == Circle {
		return cp.NewCircle(b, def.Radius, def.Offset)
	}
	box := cp.NewBBForExtents(def.Offset, def.Width/2, def.Height/2)
	return cp.NewBox2(b, box, 0)
}

// CloneBody copies mass, drag and the current kinematic state of src.
func (s *Space) CloneBody(src Body) (Body, error) {
	sb, err := s.own(src)
	if err != nil {
		return nil, err
	}
	nb, err := s.NewBody(sb.def)
	if err != nil {
		return nil, err
	}
	nb.SetPosition(sb.Position())
	nb.SetRotation(sb.Rotation())
	if !sb.def.Static {
		nb.SetLinearVelocity(sb.LinearVelocity())
		nb.SetAngularVelocity(sb.AngularVelocity())
	}
	return nb, nil
}

// CloneGeom copies src's definition, including its current masks, onto b.
// The collision handler is not copied.
func (s *Space) CloneGeom(b Body, src Geom) (Geom, error) {
	sg, ok := src.(*geom)
	if !ok || sg.owner != s {
		return nil, ErrForeignHandle
	}
	def := sg.def
	def.Categories = sg.categories
	def.CollidesWith = sg.mask
	return s.NewGeom(b, def)
}

func (s *Space) Add(b Body, geoms ...Geom) error {
	bb, err := s.own(b)
	if err != nil {
		return err
	}
	for _, g := range geoms {
		if gg, ok := g.(*geom); !ok || gg.owner != s {
			return ErrForeignHandle
		}
	}
	bb.removed = false
	add := func() {
		s.insert(bb, geoms)
	}
	if s.stepping {
		s.deferred = append(s.deferred, add)
		return nil
	}
	add()
	return nil
}

func (s *Space) insert(bb *body, geoms []Geom) {
	if !s.space.ContainsBody(bb.cp) {
		s.space.AddBody(bb.cp)
		s.bodies[bb] = struct{}{}
	}
	for _, g := range geoms {
		gg := g.(*geom)
		if !s.space.ContainsShape(gg.cp) {
			s.space.AddShape(gg.cp)
		}
	}
	if bb.static {
		bb.pin()
	}
}

func (s *Space) Remove(b Body, geoms ...Geom) {
	bb, err := s.own(b)
	if err != nil {
		return
	}
	bb.removed = true
	remove := func() {
		for _, g := range geoms {
			if gg, ok := g.(*geom); ok && gg.owner == s && s.space.ContainsShape(gg.cp) {
				s.space.RemoveShape(gg.cp)
			}
		}
		if s.space.ContainsBody(bb.cp) {
			s.space.RemoveBody(bb.cp)
		}
		delete(s.bodies, bb)
	}
	if s.stepping {
		s.deferred = append(s.deferred, remove)
		return
	}
	remove()
}

func (s *Space) Step(dt float64) {
	for b := range s.bodies {
		b.applyDrag()
	}

	s.stepping = true
	s.space.Step(dt)
	s.stepping = false
	s.steps++

	for b := range s.bodies {
		if b.static {
			b.pin()
		}
	}

	deferred := s.deferred
	s.deferred = nil
	for _, fn := range deferred {
		fn()
	}
}

func (s *Space) begin(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
	sa, sb := arb.Shapes()
	a, aok := sa.UserData.(*geom)
	b, bok := sb.UserData.(*geom)
	if !aok || !bok {
		return true
	}
	if a.body.removed || b.body.removed {
		return false
	}
	if a.categories&b.mask == 0 && b.categories&a.mask == 0 {
		return false
	}

	contact := Contact{Normal: arb.Normal(), Points: arb.Count()}
	keep := true
	if a.handler != nil && !a.handler(a, b, contact) {
		keep = false
	}
	if b.handler != nil && !b.handler(b, a, contact.flip()) {
		keep = false
	}
	return keep
}

func (c Contact) flip() Contact {
	return Contact{Normal: c.Normal.Neg(), Points: c.Points}
}

func (s *Space) own(b Body) (*body, error) {
	bb, ok := b.(*body)
	if !ok || bb.owner != s {
		return nil, ErrForeignHandle
	}
	return bb, nil
}

type body struct {
	owner   *Space
	def     BodyDef
	cp      *cp.Body
	static  bool
	removed bool
	pinPos  cp.Vector
	pinRot  float64
}

func (b *body) Position() cp.Vector { return b.cp.Position() }

func (b *body) SetPosition(p cp.Vector) {
	b.cp.SetPosition(p)
	b.pinPos = p
}

func (b *body) Rotation() float64 { return b.cp.Angle() }

func (b *body) SetRotation(angle float64) {
	b.cp.SetAngle(angle)
	b.pinRot = angle
}

func (b *body) LinearVelocity() cp.Vector {
	if b.static {
		return cp.Vector{}
	}
	return b.cp.Velocity()
}

func (b *body) SetLinearVelocity(v cp.Vector) {
	if b.static {
		return
	}
	b.cp.SetVelocityVector(v)
}

func (b *body) AngularVelocity() float64 {
	if b.static {
		return 0
	}
	return b.cp.AngularVelocity()
}

func (b *body) SetAngularVelocity(w float64) {
	if b.static {
		return
	}
	b.cp.SetAngularVelocity(w)
}

func (b *body) Mass() float64 { return b.def.Mass }

func (b *body) Torque() float64 { return b.cp.Torque() }

func (b *body) ApplyForce(f cp.Vector) {
	if b.static {
		return
	}
	b.cp.ApplyForceAtWorldPoint(f, b.cp.Position())
}

func (b *body) ApplyTorque(t float64) {
	if b.static {
		return
	}
	b.cp.SetTorque(b.cp.Torque() + t)
}

func (b *body) Static() bool { return b.static }

// SetStatic freezes the body in place; clearing it lets the engine move the
// body again from rest.
func (b *body) SetStatic(static bool) {
	if b.def.Static || b.static == static {
		return
	}
	if static {
		b.pinPos = b.cp.Position()
		b.pinRot = b.cp.Angle()
	}
	b.static = static
	b.cp.SetVelocity(0, 0)
	b.cp.SetAngularVelocity(0)
	b.cp.SetForce(cp.Vector{})
	b.cp.SetTorque(0)
}

func (b *body) pin() {
	if b.def.Static {
		return
	}
	b.cp.SetPosition(b.pinPos)
	b.cp.SetAngle(b.pinRot)
	b.cp.SetVelocity(0, 0)
	b.cp.SetAngularVelocity(0)
}

// applyDrag adds the drag force and torque before the space integrates.
func (b *body) applyDrag() {
	if b.static {
		return
	}
	if b.def.LinearDrag != 0 {
		b.ApplyForce(b.cp.Velocity().Mult(-b.def.LinearDrag))
	}
	if b.def.AngularDrag != 0 {
		b.ApplyTorque(-b.def.AngularDrag * b.cp.AngularVelocity())
	}
}

type geom struct {
	owner      *Space
	body       *body
	def        GeomDef
	cp         *cp.Shape
	categories Category
	mask       Category
	handler    CollisionFunc
}

func (g *geom) Body() Body                           { return g.body }
func (g *geom) Categories() Category                 { return g.categories }
func (g *geom) SetCategories(c Category)             { g.categories = c }
func (g *geom) CollidesWith() Category               { return g.mask }
func (g *geom) SetCollidesWith(c Category)           { g.mask = c }
func (g *geom) SetCollisionHandler(fn CollisionFunc) { g.handler = fn }
