package behavior

import (
	"math"

	"github.com/jakecoffman/cp"
)

// unit normalizes v, reporting false for the zero vector.
func unit(v cp.Vector) (cp.Vector, bool) {
	l := v.Length()
	if l == 0 || math.IsNaN(l) {
		return cp.Vector{}, false
	}
	return v.Mult(1 / l), true
}

func rotate(v cp.Vector, angle float64) cp.Vector {
	s, c := math.Sincos(angle)
	return cp.Vector{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c}
}

func sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
