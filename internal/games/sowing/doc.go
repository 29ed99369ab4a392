// Package sowing implements a two-row sowing game on the board topology
// graph.
//
// Each player owns one row: player 1 the bottom row, player 2 the top row.
// A move lifts every seed from an owned pit and sows them one per pit in
// the rotation picked by a neighbouring pit, written "<pit>-<neighbour>".
// When the last seed lands in an opponent pit that then holds two or three
// seeds, they are captured. The game ends when the player to move has no
// legal move; the higher score wins.
package sowing
