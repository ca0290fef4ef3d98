// Package physics is the rigid-body boundary of the arena.
//
// Game code talks to the engine only through the interfaces in this package:
//
//   - [Engine]: creates, clones, adds, removes and steps bodies and geometries
//   - [Body]: position, rotation, velocities, mass, force and torque accumulation
//   - [Geom]: collision shape with a category/collides-with mask pair and an
//     optional [CollisionFunc]
//
// [Space] implements [Engine] on top of Chipmunk2D (github.com/jakecoffman/cp).
//
// # Collision filtering
//
// Two geometries collide when the category of either one intersects the
// collides-with mask of the other. A geometry whose mask is empty can still be
// hit by a geometry whose mask names its category.
//
// # Thread Safety
//
// An Engine is NOT thread-safe. All calls must come from the goroutine that
// drives the frame loop. Additions and removals requested while [Engine.Step]
// is running (for example from a collision callback) are deferred until the
// step returns.
package physics
