// Package walls implements a claiming game on a rectangular board where a
// turn either claims a cell or builds a wall on an inner edge.
//
// Horizontal walls are named after the cell south of them and vertical
// walls after the cell west of them. The game ends when nothing is left to
// claim or build; the player owning more cells wins.
package walls
