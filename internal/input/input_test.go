package input

import (
	"testing"

	"github.com/jakecoffman/cp"
)

func TestScriptHoldsLastFrame(t *testing.T) {
	s := NewScript(State{Move: cp.Vector{X: 1}}, State{Buttons: ButtonGravityBall})
	if got := s.Poll(); got.Move.X != 1 {
		t.Errorf("frame 0 = %+v", got)
	}
	for i := 0; i < 3; i++ {
		if got := s.Poll(); !got.Pressed(ButtonGravityBall) {
			t.Errorf("poll %d should hold the last frame, got %+v", i, got)
		}
	}
	if (&Script{}).Poll() != (State{}) {
		t.Error("empty script should be idle")
	}
}

func TestLatch(t *testing.T) {
	var l Latch
	l.Set(State{RightTrigger: 1})
	if l.Poll().RightTrigger != 1 {
		t.Error("latch lost state")
	}
	l.Reset()
	if l.Poll() != (State{}) {
		t.Error("reset should clear state")
	}
}

func TestPressed(t *testing.T) {
	s := State{Buttons: ButtonPause}
	if s.Pressed(ButtonGravityBall) || !s.Pressed(ButtonPause) {
		t.Errorf("unexpected button state %b", s.Buttons)
	}
}
