// Package input defines the per-frame controller snapshot consumed by the
// paddle behaviors, plus a few simple sources.
package input

import "github.com/jakecoffman/cp"

type Button uint8

const (
	// ButtonGravityBall fires a gravity ball.
	ButtonGravityBall Button = 1 << iota
	ButtonPause
)

// State is one frame of controller input. Stick vectors use a Y-up convention
// with components in [-1, 1]; triggers are in [0, 1].
type State struct {
	Move         cp.Vector
	Aim          cp.Vector
	LeftTrigger  float64
	RightTrigger float64
	Buttons      Button
}

func (s State) Pressed(b Button) bool { return s.Buttons&b != 0 }

// Source produces the input for the current frame.
type Source interface {
	Poll() State
}

// Rumbler drives force feedback. Zero on both motors stops vibration.
type Rumbler interface {
	Rumble(low, high float64)
}

// SourceFunc adapts a function to Source.
type SourceFunc func() State

func (f SourceFunc) Poll() State { return f() }

// Idle never reports any input.
type Idle struct{}

func (Idle) Poll() State { return State{} }

// Script replays a fixed sequence of states, then holds the last one.
type Script struct {
	frames []State
	next   int
}

func NewScript(frames ...State) *Script {
	return &Script{frames: frames}
}

func (s *Script) Poll() State {
	if len(s.frames) == 0 {
		return State{}
	}
	st := s.frames[min(s.next, len(s.frames)-1)]
	if s.next < len(s.frames) {
		s.next++
	}
	return st
}

// Latch holds the most recent state written by an event-driven front end,
// such as the terminal viewer.
type Latch struct {
	state State
}

func (l *Latch) Set(s State) { l.state = s }
func (l *Latch) Poll() State { return l.state }
func (l *Latch) Reset()      { l.state = State{} }

// Recorder is a Rumbler that remembers the last request.
type Recorder struct {
	Low, High float64
	Calls     int
}

func (r *Recorder) Rumble(low, high float64) {
	r.Low, r.High = low, high
	r.Calls++
}
