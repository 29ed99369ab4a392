package coords

import (
	"testing"

	apperrors "github.com/louisbranch/boardplay/internal/platform/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecRoundTrip(t *testing.T) {
	for _, height := range []int{1, 2, 7, 12} {
		codec := Codec{Height: height}
		for x := 0; x < len(Columns); x++ {
			for y := 0; y < height; y++ {
				id := codec.ToAlgebraic(x, y)
				gotX, gotY, err := codec.FromAlgebraic(id)
				require.NoError(t, err, id)
				assert.Equal(t, x, gotX, id)
				assert.Equal(t, y, gotY, id)
			}
		}
	}
}

func TestCodecRowsAreInverted(t *testing.T) {
	codec := Codec{Height: 2}
	assert.Equal(t, "a2", codec.ToAlgebraic(0, 0))
	assert.Equal(t, "a1", codec.ToAlgebraic(0, 1))
	assert.Equal(t, "f1", codec.ToAlgebraic(5, 1))
}

func TestCodecRejectsInvalidCells(t *testing.T) {
	codec := Codec{Height: 2}
	for _, id := range []string{"", "1a", "A1", "a", "ax", "?3"} {
		_, _, err := codec.FromAlgebraic(id)
		require.Error(t, err, id)
		assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidCell), id)
		assert.True(t, apperrors.IsUserFacing(err), id)
	}
}

func TestCodecInBounds(t *testing.T) {
	codec := Codec{Height: 2}
	assert.True(t, codec.InBounds(0, 0, 6))
	assert.True(t, codec.InBounds(5, 1, 6))
	assert.False(t, codec.InBounds(6, 1, 6))
	assert.False(t, codec.InBounds(0, 2, 6))
	assert.False(t, codec.InBounds(-1, 0, 6))
}

func TestLayeredRoundTrip(t *testing.T) {
	codec := NewLayered(4)
	for layer := 0; layer < 4; layer++ {
		for col := 0; col < 4-layer; col++ {
			for row := 0; row < 4-layer; row++ {
				id := codec.FromLayer(col, row, layer)
				x, y, gotLayer, err := codec.FromAlgebraic(id)
				require.NoError(t, err, id)
				assert.Equal(t, 2*col+layer, x, id)
				assert.Equal(t, 2*row+layer, y, id)
				assert.Equal(t, layer, gotLayer, id)
			}
		}
	}
}

func TestLayeredIDs(t *testing.T) {
	codec := NewLayered(4)
	assert.Equal(t, "1a7", codec.FromLayer(0, 0, 0))
	assert.Equal(t, "2b6", codec.FromLayer(0, 0, 1))
	assert.Equal(t, "4d4", codec.FromLayer(0, 0, 3))
	assert.Equal(t, "a7", StripLayer("1a7"))
	assert.Equal(t, "d4", StripLayer("d4"))
}

func TestLayeredPosition(t *testing.T) {
	codec := NewLayered(3)
	col, row, err := codec.Position(codec.FromLayer(1, 0, 1), 3)
	require.NoError(t, err)
	assert.Equal(t, 1, col)
	assert.Equal(t, 3, row)
}

func TestLayeredRejectsMissingLayer(t *testing.T) {
	codec := NewLayered(4)
	for _, id := range []string{"a7", "0a7", "1", "1?7"} {
		_, _, _, err := codec.FromAlgebraic(id)
		require.Error(t, err, id)
		assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidCell), id)
	}
}

func TestWalls(t *testing.T) {
	codec := Codec{Height: 5}
	assert.True(t, IsWall("c3h"))
	assert.True(t, IsWall("c3v"))
	assert.False(t, IsWall("c3"))
	assert.False(t, IsWall("h"))

	x, y, orient, err := codec.SplitWall("c3h")
	require.NoError(t, err)
	assert.Equal(t, 2, x)
	assert.Equal(t, 2, y)
	assert.Equal(t, Horizontal, orient)

	_, _, _, err = codec.SplitWall("c3")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidCell))
}

func TestRenderToWall(t *testing.T) {
	codec := Codec{Height: 5}
	tests := []struct {
		row, col int
		side     string
		want     string
	}{
		{2, 2, "N", "c3h"},
		{2, 2, "S", "c2h"},
		{2, 2, "E", "c3v"},
		{2, 2, "W", "b3v"},
		{0, 0, "W", "z5v"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, codec.RenderToWall(tc.row, tc.col, tc.side))
	}
}
