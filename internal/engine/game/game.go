package game

import (
	"math/rand"

	"github.com/louisbranch/boardplay/internal/engine/render"
	"github.com/louisbranch/boardplay/internal/engine/result"
	"github.com/louisbranch/boardplay/internal/engine/validation"
)

// Variant describes one selectable rule or board variant.
type Variant struct {
	UID   string `json:"uid"`
	Group string `json:"group,omitempty"`
}

// Info is the static metadata of a game implementation.
type Info struct {
	Name         string    `json:"name"`
	UID          string    `json:"uid"`
	Version      string    `json:"version"`
	DateAdded    string    `json:"dateAdded"`
	Description  string    `json:"description"`
	PlayerCounts []int     `json:"playercounts"`
	Variants     []Variant `json:"variants,omitempty"`
	Flags        []string  `json:"flags,omitempty"`
}

// MoveOptions controls how a move is applied.
type MoveOptions struct {
	// Partial applies the move to the working board without committing it.
	Partial bool
	// Trusted skips validation. Only moves from the generator are trusted.
	Trusted bool
}

// Click is a renderer event.
type Click struct {
	// Move is the pending move string being built.
	Move  string
	Row   int
	Col   int
	Piece string
}

// ClickResult is the translated candidate and its validation.
type ClickResult struct {
	Move string `json:"move"`
	validation.Result
	Opts *render.Options `json:"opts,omitempty"`
}

// Game is the capability interface shared by every game.
type Game interface {
	Info() Info
	NumPlayers() int
	CurrentPlayer() int
	GameOver() bool
	Winner() []int
	Variants() []string
	Results() []result.Event
	StackLen() int

	// Moves lists every legal move for the current player.
	Moves() ([]string, error)
	RandomMove(rng *rand.Rand) (string, error)
	// ValidateMove classifies a candidate. The error is set only for fatal
	// conditions; user input problems come back as an invalid result.
	ValidateMove(move string) (validation.Result, error)
	HandleClick(click Click) (ClickResult, error)
	Move(move string, opts MoveOptions) error
	// Load rebuilds the working state from the snapshot at idx.
	Load(idx int) error
	Render(opts render.Options) (render.Rep, error)
	Chat(player string) []string
	Status() string

	Serialize() ([]byte, error)
	SerializeCompressed() ([]byte, error)
	Clone() (Game, error)
}
