// Package graph builds the two-row sowing board topology.
//
// Every cell has exactly two outbound edges, one per rotation. Clockwise
// runs rightward along the top row, drops to the bottom row at the right
// edge, runs leftward, and climbs back at the left edge. Counterclockwise is
// the mirror cycle over the same cells.
package graph
