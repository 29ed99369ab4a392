package game

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/louisbranch/boardplay/internal/engine/result"
	"github.com/louisbranch/boardplay/internal/engine/snapshot"
	"github.com/louisbranch/boardplay/internal/engine/validation"
	apperrors "github.com/louisbranch/boardplay/internal/platform/errors"
	"github.com/louisbranch/boardplay/internal/platform/logging"
	"github.com/louisbranch/boardplay/internal/random"
	"go.uber.org/zap"
)

// Option configures a Base.
type Option func(*settings)

type settings struct {
	logger *zap.Logger
	locale string
	now    func() time.Time
}

// WithLogger sets the logger used for load, commit and failsafe events.
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithLocale sets the locale of validation messages.
func WithLocale(locale string) Option {
	return func(s *settings) { s.locale = locale }
}

// WithClock sets the clock used to timestamp snapshots.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

func buildSettings(opts []Option) settings {
	s := settings{locale: apperrors.DefaultLocale, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	s.logger = logging.OrNop(s.logger)
	if s.now == nil {
		s.now = time.Now
	}
	if strings.TrimSpace(s.locale) == "" {
		s.locale = apperrors.DefaultLocale
	}
	return s
}

// Base is the working projection of a snapshot stack. Concrete games embed
// it and mutate Board, CurrPlayer, Log and LastMove while building a
// move; Save turns the working fields into a new snapshot.
type Base[B snapshot.Board[B]] struct {
	info       Info
	numPlayers int
	variants   []string
	gameOver   bool
	winner     []int
	stack      *snapshot.Stack[B]
	settings   settings

	Board      B
	CurrPlayer int
	Log        []result.Event
	LastMove   string
}

// NewBase seeds a one-snapshot stack with board and player 1 to move.
func NewBase[B snapshot.Board[B]](info Info, numPlayers int, variants []string, board B, opts ...Option) *Base[B] {
	s := buildSettings(opts)
	b := &Base[B]{
		info:       info,
		numPlayers: numPlayers,
		variants:   copyStrings(variants),
		winner:     []int{},
		settings:   s,
	}
	b.stack = snapshot.NewStack(snapshot.Snapshot[B]{
		Version:    info.Version,
		Results:    []result.Event{},
		Timestamp:  s.now(),
		CurrPlayer: 1,
		Board:      board,
	})
	b.restore(b.stack.Latest())
	return b
}

// LoadBase rebuilds a Base from a serialized document. Compressed documents
// are detected by their zstd frame header.
func LoadBase[B snapshot.Board[B]](info Info, data []byte, opts ...Option) (*Base[B], error) {
	if IsCompressed(data) {
		raw, err := snapshot.Decompress(data)
		if err != nil {
			return nil, err
		}
		data = raw
	}
	doc, err := snapshot.Decode[B](data, info.UID)
	if err != nil {
		return nil, err
	}
	b := &Base[B]{
		info:       info,
		numPlayers: doc.NumPlayers,
		variants:   doc.Variants,
		gameOver:   doc.GameOver,
		winner:     doc.Winner,
		stack:      doc.History(),
		settings:   buildSettings(opts),
	}
	b.restore(b.stack.Latest())
	b.settings.logger.Debug("loaded game state",
		zap.String("game", info.UID),
		zap.Int("stack", b.stack.Len()),
		zap.Int("player", b.CurrPlayer),
	)
	return b, nil
}

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// IsCompressed reports whether data starts with a zstd frame.
func IsCompressed(data []byte) bool {
	if len(data) < len(zstdMagic) {
		return false
	}
	for i, c := range zstdMagic {
		if data[i] != c {
			return false
		}
	}
	return true
}

func (b *Base[B]) restore(s snapshot.Snapshot[B]) {
	b.Board = s.Board
	b.CurrPlayer = s.CurrPlayer
	b.Log = s.Results
	b.LastMove = s.LastMove
}

// Load rebuilds the working fields from the snapshot at idx. Negative
// indexes count from the end of the stack.
func (b *Base[B]) Load(idx int) error {
	s, err := b.stack.At(idx)
	if err != nil {
		return err
	}
	b.restore(s)
	return nil
}

// Rollback discards every snapshot after idx and loads it. The game only
// reopens when snapshots were actually discarded.
func (b *Base[B]) Rollback(idx int) error {
	before := b.stack.Len()
	if err := b.stack.Truncate(idx); err != nil {
		return err
	}
	if b.stack.Len() < before {
		b.gameOver = false
		b.winner = []int{}
	}
	return b.Load(-1)
}

// Info returns the game metadata.
func (b *Base[B]) Info() Info { return b.info }

// NumPlayers returns the number of seats.
func (b *Base[B]) NumPlayers() int { return b.numPlayers }

// CurrentPlayer returns the 1-indexed player to move.
func (b *Base[B]) CurrentPlayer() int { return b.CurrPlayer }

// GameOver reports whether the game has concluded.
func (b *Base[B]) GameOver() bool { return b.gameOver }

// Winner returns the winning players.
func (b *Base[B]) Winner() []int { return append([]int{}, b.winner...) }

// Variants returns the active variants.
func (b *Base[B]) Variants() []string { return copyStrings(b.variants) }

// Results returns the result log of the working state.
func (b *Base[B]) Results() []result.Event { return result.Clone(b.Log) }

// StackLen returns the number of snapshots.
func (b *Base[B]) StackLen() int { return b.stack.Len() }

// Locale returns the message locale.
func (b *Base[B]) Locale() string { return b.settings.locale }

// Logger returns the game logger.
func (b *Base[B]) Logger() *zap.Logger { return b.settings.logger }

// Options returns options reproducing this game's settings, for clones.
func (b *Base[B]) Options() []Option {
	s := b.settings
	return []Option{WithLogger(s.logger), WithLocale(s.locale), WithClock(s.now)}
}

// NextPlayer returns the player after the current one, wrapping to 1.
func (b *Base[B]) NextPlayer() int {
	return b.CurrPlayer%b.numPlayers + 1
}

// CheckMove normalizes a move and runs the commit gate. A concluded game
// rejects every move. Untrusted moves must validate; a committed move must
// be complete and, as a failsafe, listed by the generator. The failsafe
// signals validator and generator drift and is fatal.
func (b *Base[B]) CheckMove(move string, opts MoveOptions, validate func(string) (validation.Result, error), moves func() ([]string, error)) (string, error) {
	if b.gameOver {
		return "", apperrors.New(apperrors.CodeMovesGameOver, "move submitted after the game ended")
	}
	move = validation.Normalize(move)
	if opts.Trusted {
		return move, nil
	}
	res, err := validate(move)
	if err != nil {
		return "", err
	}
	if !res.Valid {
		return "", res.Err(move)
	}
	if opts.Partial {
		return move, nil
	}
	if res.Complete != validation.Complete {
		return "", apperrors.WithMetadata(apperrors.CodeIncompleteMove, "move is not complete", map[string]string{"move": move})
	}
	list, err := moves()
	if err != nil {
		return "", err
	}
	legal := validation.MoveSet(list)
	if !legal.Has(move) {
		b.settings.logger.Error("validated move missing from generator",
			zap.String("game", b.info.UID),
			zap.String("move", move),
			zap.Int("player", b.CurrPlayer),
			zap.Int("stack", b.stack.Len()),
		)
		return "", apperrors.WithMetadata(apperrors.CodeFailsafe, "validated move is not generated", map[string]string{"move": move})
	}
	return move, nil
}

// Advance records move as the last move and passes the turn.
func (b *Base[B]) Advance(move string) {
	b.LastMove = move
	b.CurrPlayer = b.NextPlayer()
}

// FinishGame concludes the game and appends the eog and winners results.
func (b *Base[B]) FinishGame(reason string, winners []int) {
	b.gameOver = true
	b.winner = append([]int{}, winners...)
	b.Log = append(b.Log, result.EOG(reason), result.Winners(winners))
}

// Save pushes the working fields as a new snapshot.
func (b *Base[B]) Save() {
	b.stack.Push(snapshot.Snapshot[B]{
		Version:    b.info.Version,
		Results:    result.Clone(b.Log),
		Timestamp:  b.settings.now(),
		CurrPlayer: b.CurrPlayer,
		LastMove:   b.LastMove,
		Board:      b.Board.Clone(),
	})
	b.settings.logger.Debug("committed move",
		zap.String("game", b.info.UID),
		zap.String("move", b.LastMove),
		zap.Int("player", b.CurrPlayer),
		zap.Int("stack", b.stack.Len()),
	)
}

// Document captures the game as a serializable document.
func (b *Base[B]) Document() snapshot.Document[B] {
	return snapshot.NewDocument(b.info.UID, b.numPlayers, b.variants, b.gameOver, b.winner, b.stack)
}

// Serialize encodes the game as JSON.
func (b *Base[B]) Serialize() ([]byte, error) {
	return snapshot.Encode(b.Document())
}

// SerializeCompressed encodes the game as zstd-compressed JSON.
func (b *Base[B]) SerializeCompressed() ([]byte, error) {
	return snapshot.EncodeCompressed(b.Document())
}

// RandomMove picks a uniformly random legal move with rng.
func RandomMove(rng *rand.Rand, moves func() ([]string, error)) (string, error) {
	list, err := moves()
	if err != nil {
		return "", err
	}
	move, ok := random.Pick(rng, list)
	if !ok {
		return "", fmt.Errorf("no legal moves to choose from")
	}
	return move, nil
}

// Chat renders the working results for player.
func (b *Base[B]) Chat(player string) []string {
	return result.Chat(b.Log, player, b.settings.locale)
}

// Status returns a markdown summary of the game settings.
func (b *Base[B]) Status() string {
	var sb strings.Builder
	if len(b.variants) > 0 {
		sb.WriteString("**Variants**: " + strings.Join(b.variants, ", ") + "\n\n")
	}
	if b.gameOver {
		winners := make([]string, len(b.winner))
		for i, w := range b.winner {
			winners[i] = fmt.Sprintf("%d", w)
		}
		sb.WriteString("**Winner**: " + strings.Join(winners, ", ") + "\n\n")
	}
	return sb.String()
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
