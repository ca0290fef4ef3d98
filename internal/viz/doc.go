// Package viz is the terminal viewer for a live match.
//
// [Model] is a Bubble Tea program that steps an [arena.World] every tick and
// draws it on a braille [Canvas]: the lattice as a mesh, rectangles as
// outlines and round actors as glyphs.
//
// # Key Bindings
//
//	Arrows/WASD - Move the paddle
//	IJKL        - Aim and fire bullets
//	Q/E         - Spin
//	Space       - Fire a gravity ball
//	Tab         - Toggle autopilot
//	P           - Pause/Resume
//	R           - Restart the match
//	Esc         - Quit
//
// The terminal reports key presses but not releases, so each press holds its
// control for a short while.
package viz
