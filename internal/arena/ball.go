package arena

import (
	"github.com/jakecoffman/cp"
	"github.com/san-kum/fieldpong/internal/actor"
	"github.com/san-kum/fieldpong/internal/behavior"
)

// servedBall adapts the ball actor to round.Ball.
type servedBall struct {
	a *actor.Actor
}

func (b servedBall) Position() cp.Vector { return b.a.Position() }

func (b servedBall) Pin(at cp.Vector) {
	body := b.a.Body()
	body.SetPosition(at)
	body.SetRotation(0)
	body.SetStatic(true)
}

func (b servedBall) Release() {
	b.a.Body().SetStatic(false)
	if l, ok := actor.BehaviorOf[*behavior.Launch](b.a); ok {
		l.Rearm()
	}
}
