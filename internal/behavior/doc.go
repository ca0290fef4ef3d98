// Package behavior holds the closed set of actor behaviors: paddle control
// (input and AI), lattice distortion, gravity wells and attraction, region
// confinement, timed expiry, kill on collision and random launch.
//
// Behaviors are constructed with every collaborator they need (the actor
// manager, the lattice, the region cache, an input source, the world's random
// generator). Clone copies those references; only per-actor scalars such as
// fire timers and fade progress are duplicated.
package behavior
