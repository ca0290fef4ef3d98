package behavior

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/san-kum/fieldpong/internal/physics"
)

func TestFireProbability(t *testing.T) {
	tests := []struct {
		level int
		want  float64
	}{
		{1, 0.001},
		{10, 0.1},
		{31, 0.961},
		{32, 1},
		{100, 1},
	}
	for _, tt := range tests {
		if got := FireProbability(tt.level); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("FireProbability(%d) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestAISteersTowardBall(t *testing.T) {
	r := newRig(t)
	r.registerProjectiles(t)
	ball := r.spawn(t, cp.Vector{X: 800, Y: 130}, 10, physics.CategoryNone)
	p := NewAIPaddle(r.actors, DefaultTuning(), r.rng)
	paddle := r.spawn(t, cp.Vector{X: 300, Y: 100}, 13, physics.CategoryNone, p)
	r.settle(t)
	p.SetBall(ball.Handle())
	p.SetLevel(10)

	if err := p.Update(1.0 / 60); err != nil {
		t.Fatal(err)
	}
	if paddle.Body().Torque() <= 0 {
		t.Errorf("aligned ball to the right should spin positive, torque %v", paddle.Body().Torque())
	}
	r.eng.Step(1.0 / 60)
	if v := paddle.Body().LinearVelocity(); v.X <= 0 {
		t.Errorf("expected to move right, velocity %v", v)
	}
}

func TestAICertainFireAtHighLevel(t *testing.T) {
	r := newRig(t)
	r.registerProjectiles(t)
	ball := r.spawn(t, cp.Vector{X: 500, Y: 600}, 10, physics.CategoryNone)
	p := NewAIPaddle(r.actors, DefaultTuning(), r.rng)
	r.spawn(t, cp.Vector{X: 500, Y: 100}, 13, physics.CategoryNone, p)
	r.settle(t)
	p.SetBall(ball.Handle())
	p.SetLevel(40)

	if err := p.Update(0.01); err != nil {
		t.Fatal(err)
	}
	// One gravity ball and one bullet aimed at the ball below.
	if got := r.actors.PendingCount(); got != 2 {
		t.Errorf("expected both projectiles, pending = %d", got)
	}
}

func TestAIHoldsFireAtBallAbove(t *testing.T) {
	r := newRig(t)
	r.registerProjectiles(t)
	ball := r.spawn(t, cp.Vector{X: 500, Y: 50}, 10, physics.CategoryNone)
	p := NewAIPaddle(r.actors, DefaultTuning(), r.rng)
	r.spawn(t, cp.Vector{X: 500, Y: 100}, 13, physics.CategoryNone, p)
	r.settle(t)
	p.SetBall(ball.Handle())
	p.SetLevel(40)

	if err := p.Update(0.01); err != nil {
		t.Fatal(err)
	}
	if got := r.actors.PendingCount(); got != 1 {
		t.Errorf("expected only the gravity ball, pending = %d", got)
	}
}

func TestAIWithoutBallIsIdle(t *testing.T) {
	r := newRig(t)
	p := NewAIPaddle(r.actors, DefaultTuning(), r.rng)
	paddle := r.spawn(t, cp.Vector{X: 500, Y: 100}, 13, physics.CategoryNone, p)
	p.SetLevel(40)
	if err := p.Update(0.01); err != nil {
		t.Fatal(err)
	}
	if paddle.Body().Torque() != 0 || r.actors.PendingCount() != 1 {
		t.Error("AI acted without a ball")
	}
}
