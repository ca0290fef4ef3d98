package actor

import "errors"

var (
	// ErrUnknownTemplate indicates Instantiate was called with a name that was never registered.
	ErrUnknownTemplate = errors.New("actor: unknown template")

	// ErrInvalidQuery indicates a capability query for a value that is not a behavior kind.
	ErrInvalidQuery = errors.New("actor: invalid behavior kind")

	// ErrNotTemplate indicates an actor that is already live was offered as a template.
	ErrNotTemplate = errors.New("actor: live actor cannot be a template")

	// ErrNilActor indicates a nil actor was passed to the manager.
	ErrNilActor = errors.New("actor: nil actor")
)
