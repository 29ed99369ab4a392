package coords

import (
	"strconv"

	apperrors "github.com/louisbranch/boardplay/internal/platform/errors"
)

// Layered addresses a stacked board. Each cell id carries a leading layer
// digit (layer+1) followed by a plain cell id on the flattened grid.
//
// A pyramid of base size n is flattened onto a (2n-1) square grid. Layer l
// cell (col, row) sits at x = 2*col + l, y = 2*row + l, so cells of even
// layers occupy even coordinates and odd layers odd ones.
type Layered struct {
	Codec
}

// NewLayered returns the codec for a pyramid with the given base size.
func NewLayered(size int) Layered {
	return Layered{Codec: Codec{Height: 2*size - 1}}
}

// ToAlgebraic returns the layered cell id for (x, y) on layer.
func (l Layered) ToAlgebraic(x, y, layer int) string {
	return strconv.Itoa(layer+1) + l.Codec.ToAlgebraic(x, y)
}

// FromAlgebraic parses a layered cell id into (x, y, layer).
func (l Layered) FromAlgebraic(cell string) (int, int, int, error) {
	if len(cell) < 3 || cell[0] < '1' || cell[0] > '9' {
		return 0, 0, 0, apperrors.WithMetadata(apperrors.CodeInvalidCell, "layer prefix is missing", map[string]string{"cell": cell})
	}
	x, y, err := l.Codec.FromAlgebraic(cell[1:])
	if err != nil {
		return 0, 0, 0, apperrors.WrapWithMetadata(apperrors.CodeInvalidCell, "parse layered cell", map[string]string{"cell": cell}, err)
	}
	return x, y, int(cell[0]-'1'), nil
}

// FromLayer converts intuitive per-layer (col, row) into a layered cell id.
func (l Layered) FromLayer(col, row, layer int) string {
	return l.ToAlgebraic(2*col+layer, 2*row+layer, layer)
}

// Position returns the per-layer (col, row) of a cell, with rows of upper
// layers stacked after the rows of the layers beneath them.
func (l Layered) Position(cell string, size int) (int, int, error) {
	x, y, layer, err := l.FromAlgebraic(cell)
	if err != nil {
		return 0, 0, err
	}
	row := (y - layer) / 2
	for i := 0; i < layer; i++ {
		row += size - i
	}
	return (x - layer) / 2, row, nil
}

// StripLayer removes the leading layer digits from a cell id.
func StripLayer(cell string) string {
	i := 0
	for i < len(cell) && cell[i] >= '0' && cell[i] <= '9' {
		i++
	}
	return cell[i:]
}
