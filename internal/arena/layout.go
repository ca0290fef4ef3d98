package arena

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/san-kum/fieldpong/internal/physics"
)

const (
	// goalDepth is the gap between a screen edge and the paddle box on that side.
	goalDepth = 38.0
	boxHeight = 150.0
)

var ErrArenaTooSmall = errors.New("arena: screen too small for the paddle boxes")

// Layout holds the fixed rectangles of an arena.
type Layout struct {
	Screen      physics.Rect
	PlayerBox   physics.Rect
	ComputerBox physics.Rect
	// Field lies between the two boxes and confines the obstacles.
	Field physics.Rect
	Serve cp.Vector
	// TopGoal and BottomGoal are the outer edges of the computer and player boxes.
	TopGoal    float64
	BottomGoal float64
}

func NewLayout(width, height, margin float64) (Layout, error) {
	screen := physics.Rect{Width: width, Height: height}
	if err := screen.Validate(); err != nil {
		return Layout{}, err
	}
	boxWidth := width - 3*margin
	if boxWidth <= 0 || height <= 2*(goalDepth+boxHeight) {
		return Layout{}, fmt.Errorf("%w: %vx%v with margin %v", ErrArenaTooSmall, width, height, margin)
	}
	player := physics.Rect{X: margin, Y: height - goalDepth - boxHeight, Width: boxWidth, Height: boxHeight}
	computer := physics.Rect{X: margin, Y: goalDepth, Width: boxWidth, Height: boxHeight}
	field := physics.Rect{
		X:      computer.X,
		Y:      computer.Bottom(),
		Width:  computer.Width,
		Height: player.Y - computer.Bottom(),
	}
	return Layout{
		Screen:      screen,
		PlayerBox:   player,
		ComputerBox: computer,
		Field:       field,
		Serve:       screen.Center(),
		TopGoal:     computer.Top(),
		BottomGoal:  player.Bottom(),
	}, nil
}

// ObstacleSpawns are the four obstacle start points, left, top, bottom, right.
func (l Layout) ObstacleSpawns() []cp.Vector {
	w, h := l.Screen.Width, l.Screen.Height
	return []cp.Vector{
		{X: w / 4, Y: h / 2},
		{X: w / 2, Y: h/4 + 60},
		{X: w / 2, Y: 3*h/4 - 60},
		{X: 3 * w / 4, Y: h / 2},
	}
}

func (l Layout) PlayerSpawn() cp.Vector {
	return cp.Vector{X: l.Screen.Width / 2, Y: l.PlayerBox.Y + boxHeight/2}
}

func (l Layout) ComputerSpawn() cp.Vector {
	return cp.Vector{X: l.Screen.Width / 2, Y: l.ComputerBox.Y + boxHeight/2}
}
