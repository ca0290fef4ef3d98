package behavior

import (
	"errors"
	"fmt"

	"github.com/san-kum/fieldpong/internal/actor"
	"github.com/san-kum/fieldpong/internal/physics"
)

var (
	// ErrUnbound indicates a behavior that was updated before being bound to an actor.
	ErrUnbound = errors.New("behavior: not bound to an actor")

	// ErrNoBody indicates an owner without a rigid body.
	ErrNoBody = errors.New("behavior: actor has no body")

	// ErrNoGeom indicates an owner without collision geometry.
	ErrNoGeom = errors.New("behavior: actor has no geometry")
)

func ownerBody(b *actor.Base) (physics.Body, error) {
	a := b.Owner()
	if a == nil {
		return nil, ErrUnbound
	}
	if a.Body() == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoBody, a)
	}
	return a.Body(), nil
}

func ownerGeom(b *actor.Base) (physics.Geom, error) {
	a := b.Owner()
	if a == nil {
		return nil, ErrUnbound
	}
	if a.Geom() == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoGeom, a)
	}
	return a.Geom(), nil
}
