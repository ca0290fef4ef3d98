package viz

import (
	"github.com/jakecoffman/cp"
	"github.com/san-kum/fieldpong/internal/input"
)

// keyHold is how long a key press keeps its control engaged.
const keyHold = 0.2

// keyboard turns key presses into a held input.State published on a Latch.
type keyboard struct {
	latch input.Latch
	state input.State

	move, aim, left, right, button float64
}

func newKeyboard() *keyboard { return &keyboard{} }

func (k *keyboard) Source() input.Source { return &k.latch }

// press reports whether key is a game control.
func (k *keyboard) press(key string) bool {
	switch key {
	case "left", "a":
		k.state.Move, k.move = cp.Vector{X: -1}, keyHold
	case "right", "d":
		k.state.Move, k.move = cp.Vector{X: 1}, keyHold
	case "up", "w":
		k.state.Move, k.move = cp.Vector{Y: 1}, keyHold
	case "down", "s":
		k.state.Move, k.move = cp.Vector{Y: -1}, keyHold
	case "j":
		k.state.Aim, k.aim = cp.Vector{X: -1}, keyHold
	case "l":
		k.state.Aim, k.aim = cp.Vector{X: 1}, keyHold
	case "i":
		k.state.Aim, k.aim = cp.Vector{Y: 1}, keyHold
	case "k":
		k.state.Aim, k.aim = cp.Vector{Y: -1}, keyHold
	case "q":
		k.state.LeftTrigger, k.left = 1, keyHold
	case "e":
		k.state.RightTrigger, k.right = 1, keyHold
	case " ":
		k.state.Buttons |= input.ButtonGravityBall
		k.button = keyHold
	default:
		return false
	}
	k.latch.Set(k.state)
	return true
}

// tick ages the held controls by dt and releases the expired ones.
func (k *keyboard) tick(dt float64) {
	release := func(timer *float64, clear func()) {
		if *timer <= 0 {
			return
		}
		if *timer -= dt; *timer <= 0 {
			clear()
		}
	}
	release(&k.move, func() { k.state.Move = cp.Vector{} })
	release(&k.aim, func() { k.state.Aim = cp.Vector{} })
	release(&k.left, func() { k.state.LeftTrigger = 0 })
	release(&k.right, func() { k.state.RightTrigger = 0 })
	release(&k.button, func() { k.state.Buttons &^= input.ButtonGravityBall })
	k.latch.Set(k.state)
}

func (k *keyboard) reset() {
	*k = keyboard{}
}
