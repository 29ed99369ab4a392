// Package game holds the machinery shared by every board game: the working
// projection of the snapshot stack, commit and failsafe handling, and the
// capability interface concrete games implement.
//
// # Commit Gate
//
// A committed move must validate as Complete and must be listed by the
// game's move generator. A move that passes validation but is missing from
// the generator is a failsafe error and is never committed.
package game
