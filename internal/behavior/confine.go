package behavior

import (
	"github.com/jakecoffman/cp"
	"github.com/san-kum/fieldpong/internal/actor"
	"github.com/san-kum/fieldpong/internal/physics"
)

// borderThickness is the depth of each wall built around a region.
const borderThickness = 100.0

// Region is a static frame of four walls just outside a rectangle.
type Region struct {
	Rect     physics.Rect
	Category physics.Category
	body     physics.Body
	walls    []physics.Geom
}

// Regions caches one Region per distinct rectangle. It is owned by the world
// and handed to every Confine behavior; regions are built on first use and
// never modified afterwards.
type Regions struct {
	engine physics.Engine
	byRect map[physics.Rect]*Region
	order  []physics.Rect
}

func NewRegions(engine physics.Engine) *Regions {
	return &Regions{engine: engine, byRect: make(map[physics.Rect]*Region)}
}

// Get returns the region for rect, building it with category cat if needed.
// A region keeps the category it was first built with.
func (r *Regions) Get(rect physics.Rect, cat physics.Category) (*Region, error) {
	if reg, ok := r.byRect[rect]; ok {
		return reg, nil
	}
	if err := rect.Validate(); err != nil {
		return nil, err
	}
	reg, err := r.build(rect, cat)
	if err != nil {
		return nil, err
	}
	r.byRect[rect] = reg
	r.order = append(r.order, rect)
	return reg, nil
}

func (r *Regions) build(rect physics.Rect, cat physics.Category) (*Region, error) {
	body, err := r.engine.NewBody(physics.BodyDef{Shape: physics.Rectangle, Width: rect.Width, Height: rect.Height, Static: true})
	if err != nil {
		return nil, err
	}
	body.SetPosition(rect.Center())

	hw, hh := rect.Width/2+borderThickness/2, rect.Height/2+borderThickness/2
	defs := []physics.GeomDef{
		{Width: borderThickness, Height: rect.Height, Offset: cp.Vector{X: -hw}},
		{Width: borderThickness, Height: rect.Height, Offset: cp.Vector{X: hw}},
		{Width: rect.Width, Height: borderThickness, Offset: cp.Vector{Y: -hh}},
		{Width: rect.Width, Height: borderThickness, Offset: cp.Vector{Y: hh}},
	}
	reg := &Region{Rect: rect, Category: cat, body: body}
	for _, def := range defs {
		def.Shape = physics.Rectangle
		def.Elasticity = 1
		def.Categories = cat
		def.CollidesWith = physics.CategoryNone
		g, err := r.engine.NewGeom(body, def)
		if err != nil {
			return nil, err
		}
		reg.walls = append(reg.walls, g)
	}
	if err := r.engine.Add(body, reg.walls...); err != nil {
		return nil, err
	}
	return reg, nil
}

// Rects lists the cached rectangles in the order they were built.
func (r *Regions) Rects() []physics.Rect {
	return append([]physics.Rect(nil), r.order...)
}

func (r *Regions) Len() int { return len(r.byRect) }

// Release removes every region from the engine and empties the cache.
func (r *Regions) Release() {
	for _, rect := range r.order {
		reg := r.byRect[rect]
		r.engine.Remove(reg.body, reg.walls...)
	}
	clear(r.byRect)
	r.order = nil
}

// Confine keeps its actor inside a rectangle by making the actor's geometry
// collide with the region's walls.
type Confine struct {
	actor.Base
	regions  *Regions
	rect     physics.Rect
	category physics.Category
	region   *Region
}

func NewConfine(regions *Regions, rect physics.Rect, cat physics.Category) *Confine {
	return &Confine{regions: regions, rect: rect, category: cat}
}

func (c *Confine) Kind() actor.Kind   { return actor.KindConfine }
func (c *Confine) Rect() physics.Rect { return c.rect }
func (c *Confine) Region() *Region    { return c.region }

func (c *Confine) Init() error {
	geom, err := ownerGeom(&c.Base)
	if err != nil {
		return err
	}
	reg, err := c.regions.Get(c.rect, c.category)
	if err != nil {
		return err
	}
	c.region = reg
	geom.SetCollidesWith(geom.CollidesWith() | reg.Category)
	return nil
}

func (c *Confine) Update(float64) error { return nil }

func (c *Confine) Clone() actor.Behavior {
	return &Confine{regions: c.regions, rect: c.rect, category: c.category}
}
