// Package lattice implements the mass-spring force grid drawn behind the arena.
//
// Each interior node is pulled toward the average of its eight neighbours and
// integrated with explicit Euler plus exponential damping. Edge nodes are never
// integrated, which keeps the lattice anchored to its frame. Disturbances and
// twists are velocity impulses with an inverse-square falloff capped at
// [MaxImpulse].
//
// Both injection primitives scan every node; for large grids they dominate the
// cost of a frame.
package lattice

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/san-kum/fieldpong/internal/physics"
)

// MaxImpulse caps the speed change a single disturbance or twist can give a node.
const MaxImpulse = 100.0

type Node struct {
	Position cp.Vector
	Velocity cp.Vector
	Force    cp.Vector
}

// Grid is a size x size lattice of nodes laid out over a bounding rectangle.
type Grid struct {
	size                     int
	mass, stiffness, damping float64
	bounds                   physics.Rect
	spacing                  cp.Vector
	nodes                    []Node
	rest                     []cp.Vector
}

func New(size int, mass, stiffness, damping float64, bounds physics.Rect) (*Grid, error) {
	if err := bounds.Validate(); err != nil {
		return nil, err
	}
	if size < 3 {
		size = 3
	}
	if mass <= 0 {
		mass = 1
	}
	g := &Grid{size: size, mass: mass, stiffness: stiffness, damping: damping, bounds: bounds}
	g.layout()
	return g, nil
}

// layout places the nodes on a uniform subdivision of the bounds, centred so
// the leftover from whole-unit spacing is split evenly on both sides.
func (g *Grid) layout() {
	n := g.size
	dx, dy := math.Floor(g.bounds.Width/float64(n)), math.Floor(g.bounds.Height/float64(n))
	startX := g.bounds.X + math.Floor((g.bounds.Width-dx*float64(n))/2)
	startY := g.bounds.Y + math.Floor((g.bounds.Height-dy*float64(n))/2)
	g.spacing = cp.Vector{X: dx, Y: dy}
	g.nodes, g.rest = make([]Node, n*n), make([]cp.Vector, n*n)
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			p := cp.Vector{X: startX + float64(x)*dx, Y: startY + float64(y)*dy}
			g.nodes[x*n+y] = Node{Position: p}
			g.rest[x*n+y] = p
		}
	}
}

func (g *Grid) Size() int               { return g.size }
func (g *Grid) Bounds() physics.Rect    { return g.bounds }
func (g *Grid) Spacing() cp.Vector      { return g.spacing }
func (g *Grid) At(x, y int) *Node       { return &g.nodes[x*g.size+y] }
func (g *Grid) Rest(x, y int) cp.Vector { return g.rest[x*g.size+y] }

// Nodes returns the backing node slice in column-major order (x*size + y).
func (g *Grid) Nodes() []Node { return g.nodes }

// Reset returns every node to its rest position with zero velocity.
func (g *Grid) Reset() {
	for i := range g.nodes {
		g.nodes[i] = Node{Position: g.rest[i]}
	}
}

// Update advances the interior nodes by dt.
func (g *Grid) Update(dt float64) {
	n, decay := g.size, math.Exp(-dt*g.damping)
	for x := 1; x < n-1; x++ {
		for y := 1; y < n-1; y++ {
			var sum cp.Vector
			for _, o := range neighbours {
				sum = sum.Add(g.nodes[(x+o[0])*n+y+o[1]].Position)
			}
			node := &g.nodes[x*n+y]
			avg := sum.Mult(1.0 / 8)
			node.Force = node.Force.Add(node.Position.Sub(avg).Mult(-g.stiffness))
			node.Velocity = node.Velocity.Add(node.Force.Mult(dt / g.mass)).Mult(decay)
			node.Position = node.Position.Add(node.Velocity.Mult(dt))
			node.Force = cp.Vector{}
		}
	}
}

var neighbours = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// ApplyDisturbance pushes every node away from point.
func (g *Grid) ApplyDisturbance(point cp.Vector, magnitude float64) {
	for i := range g.nodes {
		node := &g.nodes[i]
		d := node.Position.Sub(point)
		dir, ok := unit(d)
		if !ok {
			continue
		}
		node.Velocity = node.Velocity.Add(dir.Mult(impulse(magnitude, d.LengthSq())))
	}
}

// Twist spins every node around center; direction is +1 or -1.
func (g *Grid) Twist(center cp.Vector, direction int, torque float64) {
	for i := range g.nodes {
		node := &g.nodes[i]
		d := node.Position.Sub(center)
		dir, ok := unit(d)
		if !ok {
			continue
		}
		tangent := dir.Perp().Mult(float64(direction))
		node.Velocity = node.Velocity.Add(tangent.Mult(impulse(torque, d.LengthSq())))
	}
}

// KineticEnergy is the total 1/2 m v^2 over the interior nodes. Edge nodes
// never move, so any velocity they were given is ignored.
func (g *Grid) KineticEnergy() float64 {
	e := 0.0
	g.interior(func(n *Node) { e += 0.5 * g.mass * n.Velocity.LengthSq() })
	return e
}

// MaxSpeed is the largest interior node speed.
func (g *Grid) MaxSpeed() float64 {
	m := 0.0
	g.interior(func(n *Node) { m = math.Max(m, n.Velocity.Length()) })
	return m
}

func (g *Grid) interior(fn func(*Node)) {
	for x := 1; x < g.size-1; x++ {
		for y := 1; y < g.size-1; y++ {
			fn(&g.nodes[x*g.size+y])
		}
	}
}

// unit reports false for a zero vector, whose direction is undefined.
func unit(v cp.Vector) (cp.Vector, bool) {
	l := v.Length()
	if l == 0 || math.IsNaN(l) {
		return cp.Vector{}, false
	}
	return v.Mult(1 / l), true
}

func impulse(strength, d2 float64) float64 {
	return math.Min(strength/d2, MaxImpulse)
}
