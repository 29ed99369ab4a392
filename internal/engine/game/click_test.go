package game

import (
	"testing"

	"github.com/louisbranch/boardplay/internal/engine/validation"
	apperrors "github.com/louisbranch/boardplay/internal/platform/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleClickValidCandidate(t *testing.T) {
	b := newTally(t, 2)
	translate := func(c Click) (string, error) { return "A1", nil }

	got, err := HandleClick(Click{Row: 0, Col: 0}, "en-US", translate, validator(b))
	require.NoError(t, err)
	assert.True(t, got.Valid)
	assert.Equal(t, validation.Complete, got.Complete)
	assert.Equal(t, "a1", got.Move)
}

func TestHandleClickInvalidCandidateClearsMove(t *testing.T) {
	b := newTally(t, 2)
	b.Board.Cells.Set("a1", 1)
	translate := func(c Click) (string, error) { return "a1", nil }

	got, err := HandleClick(Click{Move: "x"}, "en-US", translate, validator(b))
	require.NoError(t, err)
	assert.False(t, got.Valid)
	assert.Equal(t, "", got.Move)
	assert.Equal(t, apperrors.CodeOccupied, got.Code)
}

func TestHandleClickTranslationFailureKeepsMove(t *testing.T) {
	b := newTally(t, 2)
	translate := func(c Click) (string, error) { return "", InvalidClick(c, "off the board") }

	got, err := HandleClick(Click{Move: "a", Row: 9, Col: 4}, "en-US", translate, validator(b))
	require.NoError(t, err)
	assert.False(t, got.Valid)
	assert.Equal(t, "a", got.Move)
	assert.Equal(t, "The click at row 9, column 4 could not be understood (off the board).", got.Message)
}

func TestHandleClickFatalTranslationPropagates(t *testing.T) {
	b := newTally(t, 2)
	translate := func(c Click) (string, error) {
		return "", apperrors.New(apperrors.CodeTopologyInconsistent, "broken")
	}
	_, err := HandleClick(Click{}, "en-US", translate, validator(b))
	assert.True(t, apperrors.IsCode(err, apperrors.CodeTopologyInconsistent))
}
