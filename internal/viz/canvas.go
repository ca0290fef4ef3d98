package viz

import (
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/san-kum/fieldpong/internal/physics"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Canvas is a braille pixel grid with a glyph overlay. Pixels are addressed
// in sub-cell coordinates, (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	overlay       map[[2]int]rune
	world         physics.Rect
}

func NewCanvas(w, h int, world physics.Rect) *Canvas {
	c := &Canvas{
		Width:   w,
		Height:  h,
		Grid:    make([][]rune, h),
		overlay: make(map[[2]int]rune),
		world:   world,
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Mark puts a glyph over the cell containing sub-pixel (x, y).
func (c *Canvas) Mark(x, y int, r rune) {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return
	}
	c.overlay[[2]int{x / 2, y / 4}] = r
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
	clear(c.overlay)
}

// Project maps a world point to sub-pixel coordinates.
func (c *Canvas) Project(p cp.Vector) (int, int) {
	sx := float64(c.Width*2) / c.world.Width
	sy := float64(c.Height*4) / c.world.Height
	return int((p.X - c.world.X) * sx), int((p.Y - c.world.Y) * sy)
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Segment draws a line between two world points.
func (c *Canvas) Segment(a, b cp.Vector) {
	x0, y0 := c.Project(a)
	x1, y1 := c.Project(b)
	c.DrawLine(x0, y0, x1, y1)
}

// Polygon draws a closed outline through world points.
func (c *Canvas) Polygon(pts ...cp.Vector) {
	for i := range pts {
		c.Segment(pts[i], pts[(i+1)%len(pts)])
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for row, line := range c.Grid {
		for col, r := range line {
			if g, ok := c.overlay[[2]int{col, row}]; ok {
				r = g
			}
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
