// Package pyramid implements a ball stacking game on a square pyramid.
//
// Balls on the base layer go anywhere. A ball on any higher layer rests on
// the four balls beneath it. Both players share the same placements, and
// whoever places the apex ball wins.
package pyramid
