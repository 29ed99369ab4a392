// Package games registers every playable game and dispatches creation and
// loading by game uid.
package games
