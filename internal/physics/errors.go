package physics

import "errors"

var (
	// ErrInvalidRect indicates a rectangle with non-positive width or height.
	ErrInvalidRect = errors.New("physics: invalid rectangle")

	// ErrInvalidShape indicates a body or geometry definition without usable dimensions.
	ErrInvalidShape = errors.New("physics: invalid shape definition")

	// ErrForeignHandle indicates a handle created by a different engine.
	ErrForeignHandle = errors.New("physics: handle does not belong to this engine")
)
