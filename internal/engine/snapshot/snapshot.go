package snapshot

import (
	"fmt"
	"strconv"
	"time"

	"github.com/louisbranch/boardplay/internal/engine/result"
	apperrors "github.com/louisbranch/boardplay/internal/platform/errors"
)

// Board is the contents of one snapshot. Clone must return a deep copy and
// Validate must accept a nil receiver and report it as an error.
type Board[B any] interface {
	Clone() B
	Validate() error
}

// Snapshot is one immutable historical state.
type Snapshot[B Board[B]] struct {
	Version    string         `json:"_version"`
	Results    []result.Event `json:"_results"`
	Timestamp  time.Time      `json:"_timestamp"`
	CurrPlayer int            `json:"currplayer"`
	LastMove   string         `json:"lastmove,omitempty"`
	Board      B              `json:"board"`
}

// Clone returns a copy that shares nothing with s.
func (s Snapshot[B]) Clone() Snapshot[B] {
	s.Results = result.Clone(s.Results)
	s.Board = s.Board.Clone()
	return s
}

func (s Snapshot[B]) validate(numPlayers int) error {
	if s.Version == "" {
		return fmt.Errorf("version is required")
	}
	if s.Timestamp.IsZero() {
		return fmt.Errorf("timestamp is required")
	}
	if s.CurrPlayer < 1 || s.CurrPlayer > numPlayers {
		return fmt.Errorf("current player %d outside 1..%d", s.CurrPlayer, numPlayers)
	}
	if err := result.ValidateAll(s.Results); err != nil {
		return err
	}
	if err := s.Board.Validate(); err != nil {
		return fmt.Errorf("board: %w", err)
	}
	return nil
}

// Stack is the ordered history of snapshots. Index 0 is the initial state
// and the stack is never empty.
type Stack[B Board[B]] struct {
	entries []Snapshot[B]
}

// NewStack seeds a stack with its initial snapshot.
func NewStack[B Board[B]](initial Snapshot[B]) *Stack[B] {
	return &Stack[B]{entries: []Snapshot[B]{initial.Clone()}}
}

// Len returns the number of snapshots.
func (s *Stack[B]) Len() int {
	return len(s.entries)
}

// Normalize resolves idx, counting negative values from the end.
// It fails with INDEX_OUT_OF_RANGE when idx addresses no snapshot.
func (s *Stack[B]) Normalize(idx int) (int, error) {
	n := idx
	if n < 0 {
		n += len(s.entries)
	}
	if n < 0 || n >= len(s.entries) {
		return 0, apperrors.WithMetadata(apperrors.CodeIndexOutOfRange, "could not load the requested state from the stack", map[string]string{
			"index":  strconv.Itoa(idx),
			"length": strconv.Itoa(len(s.entries)),
		})
	}
	return n, nil
}

// At returns a copy of the snapshot at idx.
func (s *Stack[B]) At(idx int) (Snapshot[B], error) {
	n, err := s.Normalize(idx)
	if err != nil {
		return Snapshot[B]{}, err
	}
	return s.entries[n].Clone(), nil
}

// Latest returns a copy of the most recent snapshot.
func (s *Stack[B]) Latest() Snapshot[B] {
	return s.entries[len(s.entries)-1].Clone()
}

// Push appends a copy of snap. Earlier snapshots are never touched.
func (s *Stack[B]) Push(snap Snapshot[B]) {
	s.entries = append(s.entries, snap.Clone())
}

// Truncate discards every snapshot after idx, making it the latest.
func (s *Stack[B]) Truncate(idx int) error {
	n, err := s.Normalize(idx)
	if err != nil {
		return err
	}
	s.entries = s.entries[:n+1:n+1]
	return nil
}

// Entries returns copies of every snapshot in order.
func (s *Stack[B]) Entries() []Snapshot[B] {
	out := make([]Snapshot[B], len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Clone()
	}
	return out
}

// Clone returns an independent stack.
func (s *Stack[B]) Clone() *Stack[B] {
	return &Stack[B]{entries: s.Entries()}
}
