// Package snapshot holds the append-only history of game states and its
// serialized document form.
//
// # Stack Model
//
// The stack never shrinks below one snapshot. Reads return clones so the
// working state of a game can never alias stored history.
//
// # Document
//
// A document carries the game uid, player count, variants, end state and
// the full stack. It is plain JSON, optionally wrapped in a zstd frame.
package snapshot
