package game

import (
	"errors"
	"testing"
	"time"

	"github.com/louisbranch/boardplay/internal/board/cells"
	"github.com/louisbranch/boardplay/internal/engine/result"
	"github.com/louisbranch/boardplay/internal/engine/validation"
	apperrors "github.com/louisbranch/boardplay/internal/platform/errors"
	"github.com/louisbranch/boardplay/internal/random"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tally struct {
	Cells *cells.Map[int] `json:"cells"`
}

func (t *tally) Clone() *tally {
	if t == nil {
		return nil
	}
	return &tally{Cells: t.Cells.Clone()}
}

func (t *tally) Validate() error {
	if t == nil || t.Cells == nil {
		return errors.New("missing cells")
	}
	return nil
}

var testInfo = Info{Name: "Tally", UID: "tally", Version: "20240501", PlayerCounts: []int{2, 3}}

func clock() func() time.Time {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(time.Minute)
		return now
	}
}

func newTally(t *testing.T, players int) *Base[*tally] {
	t.Helper()
	return NewBase(testInfo, players, []string{"size-3"}, &tally{Cells: cells.New[int]()}, WithClock(clock()))
}

func legal(b *Base[*tally]) func() ([]string, error) {
	return func() ([]string, error) {
		var out []string
		for _, c := range []string{"a1", "b1", "c1"} {
			if !b.Board.Cells.Has(c) {
				out = append(out, c)
			}
		}
		return out, nil
	}
}

func validator(b *Base[*tally]) func(string) (validation.Result, error) {
	return validation.Pipeline{
		Game:   "sowing",
		Locale: "en-US",
		Occupancy: func(m string) error {
			if b.Board.Cells.Has(m) {
				return apperrors.WithMetadata(apperrors.CodeOccupied, "taken", map[string]string{"where": m})
			}
			return nil
		},
		Partial: func(m string) (bool, error) { return m == "a", nil },
		Moves:   legal(b),
	}.Validate
}

func place(t *testing.T, b *Base[*tally], move string) {
	t.Helper()
	m, err := b.CheckMove(move, MoveOptions{}, validator(b), legal(b))
	require.NoError(t, err)
	b.Log = []result.Event{result.Place(m, "")}
	b.Board.Cells.Set(m, b.CurrPlayer)
	b.Advance(m)
	b.Save()
}

func TestNewBaseSeedsInitialSnapshot(t *testing.T) {
	b := newTally(t, 2)
	assert.Equal(t, 1, b.StackLen())
	assert.Equal(t, 1, b.CurrentPlayer())
	assert.False(t, b.GameOver())
	assert.Empty(t, b.Results())
	assert.Equal(t, []string{"size-3"}, b.Variants())
	assert.Equal(t, "en-US", b.Locale())
	assert.NotNil(t, b.Logger())
}

func TestNextPlayerWraps(t *testing.T) {
	b := newTally(t, 3)
	seen := []int{}
	for i := 0; i < 4; i++ {
		seen = append(seen, b.CurrPlayer)
		b.CurrPlayer = b.NextPlayer()
	}
	assert.Equal(t, []int{1, 2, 3, 1}, seen)
}

func TestCheckMoveGate(t *testing.T) {
	b := newTally(t, 2)

	m, err := b.CheckMove(" A1 ", MoveOptions{}, validator(b), legal(b))
	require.NoError(t, err)
	assert.Equal(t, "a1", m)

	_, err = b.CheckMove("a", MoveOptions{}, validator(b), legal(b))
	assert.True(t, apperrors.IsCode(err, apperrors.CodeIncompleteMove))
	assert.True(t, apperrors.IsUserFacing(err))

	m, err = b.CheckMove("a", MoveOptions{Partial: true}, validator(b), legal(b))
	require.NoError(t, err)
	assert.Equal(t, "a", m)

	_, err = b.CheckMove("", MoveOptions{}, validator(b), legal(b))
	assert.True(t, apperrors.IsCode(err, apperrors.CodeIncompleteMove))

	b.Board.Cells.Set("b1", 1)
	_, err = b.CheckMove("b1", MoveOptions{}, validator(b), legal(b))
	assert.True(t, apperrors.IsCode(err, apperrors.CodeOccupied))
	assert.Equal(t, "b1", apperrors.GetMetadata(err)["where"])

	m, err = b.CheckMove("anything", MoveOptions{Trusted: true}, validator(b), legal(b))
	require.NoError(t, err)
	assert.Equal(t, "anything", m)
}

func TestCheckMoveFailsafeIsFatal(t *testing.T) {
	b := newTally(t, 2)
	drifted := func(string) (validation.Result, error) { return validation.Ready("en-US"), nil }

	_, err := b.CheckMove("z9", MoveOptions{}, drifted, legal(b))
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeFailsafe))
	assert.True(t, apperrors.IsFatal(err))
	assert.Equal(t, 1, b.StackLen())
}

func TestCheckMoveAfterGameOver(t *testing.T) {
	b := newTally(t, 2)
	b.FinishGame("", []int{1})
	_, err := b.CheckMove("a1", MoveOptions{Trusted: true}, validator(b), legal(b))
	assert.True(t, apperrors.IsCode(err, apperrors.CodeMovesGameOver))
	assert.True(t, apperrors.IsUserFacing(err))
}

func TestCommitPushesSnapshotsAndLoadRebuilds(t *testing.T) {
	b := newTally(t, 2)
	place(t, b, "a1")
	place(t, b, "c1")

	assert.Equal(t, 3, b.StackLen())
	assert.Equal(t, 1, b.CurrentPlayer())
	assert.Equal(t, "c1", b.LastMove)

	require.NoError(t, b.Load(1))
	assert.Equal(t, 2, b.CurrentPlayer())
	assert.Equal(t, []string{"a1"}, b.Board.Cells.Keys())
	assert.Equal(t, []result.Event{result.Place("a1", "")}, b.Results())

	// Mutating the working board never touches history.
	b.Board.Cells.Set("b1", 2)
	require.NoError(t, b.Load(1))
	assert.False(t, b.Board.Cells.Has("b1"))

	err := b.Load(3)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeIndexOutOfRange))
	err = b.Load(-4)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeIndexOutOfRange))

	require.NoError(t, b.Load(-1))
	assert.Equal(t, []string{"a1", "c1"}, b.Board.Cells.Keys())
}

func TestRollback(t *testing.T) {
	b := newTally(t, 2)
	place(t, b, "a1")
	place(t, b, "b1")
	b.FinishGame("", []int{2})

	require.NoError(t, b.Rollback(1))
	assert.Equal(t, 2, b.StackLen())
	assert.False(t, b.GameOver())
	assert.Equal(t, []string{"a1"}, b.Board.Cells.Keys())
}

func TestRollbackToLatestKeepsGameOver(t *testing.T) {
	b := newTally(t, 2)
	place(t, b, "a1")
	b.FinishGame("", []int{1})
	b.Save()

	require.NoError(t, b.Rollback(-1))
	assert.True(t, b.GameOver())
	assert.Equal(t, []int{1}, b.Winner())
	assert.Equal(t, 3, b.StackLen())
}

func TestFinishGameAppendsEOGThenWinners(t *testing.T) {
	b := newTally(t, 2)
	b.Log = []result.Event{result.Place("a1", "")}
	b.FinishGame("", []int{1, 2})
	require.Len(t, b.Log, 3)
	assert.Equal(t, result.TypeEOG, b.Log[1].Type)
	assert.Equal(t, result.TypeWinners, b.Log[2].Type)
	assert.Equal(t, []int{1, 2}, b.Winner())
	assert.Contains(t, b.Status(), "**Winner**: 1, 2")
	assert.Contains(t, b.Status(), "**Variants**: size-3")
}

func TestSerializeRoundTrip(t *testing.T) {
	b := newTally(t, 2)
	place(t, b, "b1")
	place(t, b, "a1")

	data, err := b.Serialize()
	require.NoError(t, err)
	loaded, err := LoadBase[*tally](testInfo, data)
	require.NoError(t, err)
	assert.Equal(t, b.StackLen(), loaded.StackLen())
	assert.True(t, cells.Equal(b.Board.Cells, loaded.Board.Cells))
	assert.Equal(t, b.CurrentPlayer(), loaded.CurrentPlayer())
	assert.Equal(t, b.LastMove, loaded.LastMove)

	compressed, err := b.SerializeCompressed()
	require.NoError(t, err)
	assert.True(t, IsCompressed(compressed))
	loaded, err = LoadBase[*tally](testInfo, compressed)
	require.NoError(t, err)
	assert.Equal(t, []string{"b1", "a1"}, loaded.Board.Cells.Keys())

	other := testInfo
	other.UID = "other"
	_, err = LoadBase[*tally](other, data)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeWrongGame))

	_, err = LoadBase[*tally](testInfo, []byte(`{"game":"tally"`))
	assert.True(t, apperrors.IsCode(err, apperrors.CodeMalformedState))
}

func TestRandomMoveIsDeterministic(t *testing.T) {
	b := newTally(t, 2)
	first, err := RandomMove(random.NewRNG(3), legal(b))
	require.NoError(t, err)
	second, err := RandomMove(random.NewRNG(3), legal(b))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	_, err = RandomMove(random.NewRNG(3), func() ([]string, error) { return nil, nil })
	assert.Error(t, err)
}

func TestChat(t *testing.T) {
	b := newTally(t, 2)
	place(t, b, "a1")
	assert.Equal(t, []string{"Ada placed a piece at a1."}, b.Chat("Ada"))
}
