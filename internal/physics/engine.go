package physics

import (
	"fmt"

	"github.com/jakecoffman/cp"
)

// Category is a collision category bit set.
type Category uint32

const (
	CategoryNone Category = 0
	CategoryAll  Category = ^Category(0)
)

// Cat returns the bit for a 1-based category number (Cat(1) .. Cat(32)).
func Cat(n int) Category {
	if n < 1 || n > 32 {
		return CategoryNone
	}
	return Category(1) << (n - 1)
}

type ShapeKind int

const (
	Rectangle ShapeKind = iota
	Circle
)

func (k ShapeKind) String() string {
	switch k {
	case Rectangle:
		return "rectangle"
	case Circle:
		return "circle"
	}
	return fmt.Sprintf("shape(%d)", int(k))
}

// BodyDef describes a rigid body. Width/Height apply to rectangles, Radius to
// circles; the dimensions are only used to derive the moment of inertia.
type BodyDef struct {
	Shape       ShapeKind
	Width       float64
	Height      float64
	Radius      float64
	Mass        float64
	Static      bool
	LinearDrag  float64
	AngularDrag float64
}

// GeomDef describes a collision shape attached to a body at Offset.
type GeomDef struct {
	Shape        ShapeKind
	Width        float64
	Height       float64
	Radius       float64
	Offset       cp.Vector
	Elasticity   float64
	Friction     float64
	Categories   Category
	CollidesWith Category
}

// Contact summarizes the contact data handed to a CollisionFunc.
type Contact struct {
	Normal cp.Vector
	Points int
}

// CollisionFunc is invoked when self starts touching other. Returning false
// suppresses the normal collision response for that contact.
type CollisionFunc func(self, other Geom, contact Contact) bool

type Body interface {
	Position() cp.Vector
	SetPosition(p cp.Vector)
	Rotation() float64
	SetRotation(angle float64)
	LinearVelocity() cp.Vector
	SetLinearVelocity(v cp.Vector)
	AngularVelocity() float64
	SetAngularVelocity(w float64)
	Mass() float64
	// Torque is the torque accumulated since the last step.
	Torque() float64
	ApplyForce(f cp.Vector)
	ApplyTorque(t float64)
	Static() bool
	SetStatic(static bool)
}

type Geom interface {
	Body() Body
	Categories() Category
	SetCategories(c Category)
	CollidesWith() Category
	SetCollidesWith(c Category)
	SetCollisionHandler(fn CollisionFunc)
}

// Engine is the rigid-body simulation consumed by the arena.
type Engine interface {
	NewBody(def BodyDef) (Body, error)
	NewGeom(body Body, def GeomDef) (Geom, error)
	// CloneBody and CloneGeom allocate new handles seeded from src. The clones
	// are not part of the world until Add is called.
	CloneBody(src Body) (Body, error)
	CloneGeom(body Body, src Geom) (Geom, error)
	Add(body Body, geoms ...Geom) error
	// Remove is idempotent: removing handles that are not in the world is a no-op.
	Remove(body Body, geoms ...Geom)
	Step(dt float64)
}

// Rect is an axis-aligned rectangle in screen coordinates (Y grows downward).
type Rect struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func (r Rect) Validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: %vx%v at (%v, %v)", ErrInvalidRect, r.Width, r.Height, r.X, r.Y)
	}
	return nil
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

func (r Rect) Center() cp.Vector {
	return cp.Vector{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

func (r Rect) Contains(p cp.Vector) bool {
	return p.X >= r.Left() && p.X <= r.Right() && p.Y >= r.Top() && p.Y <= r.Bottom()
}
