package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	apperrors "github.com/louisbranch/boardplay/internal/platform/errors"
)

// Document is the serialized form of a game.
type Document[B Board[B]] struct {
	Game       string        `json:"game"`
	NumPlayers int           `json:"numplayers"`
	Variants   []string      `json:"variants"`
	GameOver   bool          `json:"gameover"`
	Winner     []int         `json:"winner"`
	Stack      []Snapshot[B] `json:"stack"`
}

// NewDocument captures a stack and the game-level fields into a document.
func NewDocument[B Board[B]](game string, numPlayers int, variants []string, gameOver bool, winner []int, stack *Stack[B]) Document[B] {
	return Document[B]{
		Game:       game,
		NumPlayers: numPlayers,
		Variants:   nonNil(variants),
		GameOver:   gameOver,
		Winner:     nonNil(winner),
		Stack:      stack.Entries(),
	}
}

// History rebuilds the stack held by the document.
func (d Document[B]) History() *Stack[B] {
	s := &Stack[B]{entries: make([]Snapshot[B], len(d.Stack))}
	for i, e := range d.Stack {
		s.entries[i] = e.Clone()
	}
	return s
}

// Encode serializes a document to JSON.
func Encode[B Board[B]](doc Document[B]) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode %s state: %w", doc.Game, err)
	}
	return data, nil
}

// Decode parses a document and checks that it belongs to game. A document
// for another game fails with WRONG_GAME; anything that cannot be rebuilt
// into snapshots fails with MALFORMED_STATE.
func Decode[B Board[B]](data []byte, game string) (Document[B], error) {
	var doc Document[B]
	if err := json.Unmarshal(data, &doc); err != nil {
		if apperrors.IsCode(err, apperrors.CodeMalformedState) {
			return Document[B]{}, err
		}
		return Document[B]{}, apperrors.Wrap(apperrors.CodeMalformedState, "decode state document", err)
	}
	if doc.Game != game {
		return Document[B]{}, apperrors.WithMetadata(apperrors.CodeWrongGame, "state belongs to another game", map[string]string{
			"want": game,
			"got":  doc.Game,
		})
	}
	if err := doc.validate(); err != nil {
		return Document[B]{}, apperrors.Wrap(apperrors.CodeMalformedState, "invalid state document", err)
	}
	doc.Variants = nonNil(doc.Variants)
	doc.Winner = nonNil(doc.Winner)
	return doc, nil
}

func (d Document[B]) validate() error {
	if d.NumPlayers < 1 {
		return fmt.Errorf("numplayers must be positive")
	}
	if len(d.Stack) == 0 {
		return fmt.Errorf("stack is empty")
	}
	for i, s := range d.Stack {
		if err := s.validate(d.NumPlayers); err != nil {
			return fmt.Errorf("snapshot %d: %w", i, err)
		}
	}
	for _, p := range d.Winner {
		if p < 1 || p > d.NumPlayers {
			return fmt.Errorf("winner %d outside 1..%d", p, d.NumPlayers)
		}
	}
	return nil
}

// EncodeCompressed serializes a document and compresses it with zstd.
func EncodeCompressed[B Board[B]](doc Document[B]) ([]byte, error) {
	data, err := Encode(doc)
	if err != nil {
		return nil, err
	}
	compressed := bytes.NewBuffer(nil)
	w, err := zstd.NewWriter(compressed, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd writer: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("compress state: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close zstd writer: %w", err)
	}
	return compressed.Bytes(), nil
}

// Decompress inflates a zstd-compressed document.
func Decompress(data []byte) ([]byte, error) {
	r, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeMalformedState, "create zstd reader", err)
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeMalformedState, "decompress state", err)
	}
	return out, nil
}

// DecodeCompressed inflates and decodes a document produced by
// EncodeCompressed.
func DecodeCompressed[B Board[B]](data []byte, game string) (Document[B], error) {
	raw, err := Decompress(data)
	if err != nil {
		return Document[B]{}, err
	}
	return Decode[B](raw, game)
}

func nonNil[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
