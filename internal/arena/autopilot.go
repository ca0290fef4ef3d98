package arena

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/san-kum/fieldpong/internal/input"
)

const (
	// autopilotReach is the horizontal offset at which the stick is fully over.
	autopilotReach = 120.0
	autopilotSpin  = 80.0
	// autopilotLob is how far upfield the ball must be before a gravity ball
	// is worth firing.
	autopilotLob = 250.0
)

// Autopilot plays the player paddle: it tracks the ball horizontally, spins
// into it at close range and shoots at it while it is upfield.
type Autopilot struct {
	world *World
}

func NewAutopilot(w *World) *Autopilot { return &Autopilot{world: w} }

func (a *Autopilot) Poll() input.State {
	paddle, ball := a.world.Player(), a.world.Ball()
	if paddle == nil || ball == nil || !paddle.Alive() || !ball.Alive() {
		return input.State{}
	}
	d := ball.Position().Sub(paddle.Position())

	var st input.State
	st.Move = cp.Vector{X: math.Max(-1, math.Min(1, d.X/autopilotReach))}
	if d.Length() < autopilotSpin+paddleWidth/2 {
		if d.X > 0 {
			st.RightTrigger = 1
		} else {
			st.LeftTrigger = 1
		}
	}
	if d.Y < 0 {
		// Sticks are Y-up; the screen is Y-down.
		st.Aim = cp.Vector{X: d.X, Y: -d.Y}.Normalize()
		if -d.Y > autopilotLob {
			st.Buttons |= input.ButtonGravityBall
		}
	}
	return st
}
