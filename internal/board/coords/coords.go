// Package coords converts between Cartesian board coordinates and algebraic
// cell identifiers.
//
// Columns map left to right onto the letters a..z. Rows are stored inverted
// so that row 1 is the bottom row: the label of row y is height - y.
package coords

import (
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/boardplay/internal/platform/errors"
)

// Columns is the column alphabet. Boards never exceed its length.
const Columns = "abcdefghijklmnopqrstuvwxyz"

// Codec maps coordinates on a board of the given height.
type Codec struct {
	Height int
}

// ToAlgebraic returns the cell id of (x, y).
func (c Codec) ToAlgebraic(x, y int) string {
	return ColumnLabel(x) + strconv.Itoa(c.Height-y)
}

// FromAlgebraic parses a cell id back into (x, y).
// It fails with INVALID_CELL when the column letter is unknown or the row
// suffix is not a number. Range checks are left to the caller.
func (c Codec) FromAlgebraic(cell string) (int, int, error) {
	if cell == "" {
		return 0, 0, invalidCell(cell)
	}
	x := strings.IndexByte(Columns, cell[0])
	if x < 0 {
		return 0, 0, invalidCell(cell)
	}
	row, err := strconv.Atoi(cell[1:])
	if err != nil {
		return 0, 0, apperrors.WrapWithMetadata(apperrors.CodeInvalidCell, "row label is not a number", map[string]string{"cell": cell}, err)
	}
	return x, c.Height - row, nil
}

// InBounds reports whether (x, y) lies on a width by Height board.
func (c Codec) InBounds(x, y, width int) bool {
	return x >= 0 && x < width && y >= 0 && y < c.Height
}

// ColumnLabel returns the letter of column x. Columns off the alphabet map
// to "z", which only boards 26 columns wide accept.
func ColumnLabel(x int) string {
	if x < 0 || x >= len(Columns) {
		return "z"
	}
	return Columns[x : x+1]
}

func invalidCell(cell string) error {
	return apperrors.WithMetadata(apperrors.CodeInvalidCell, "column label is invalid", map[string]string{"cell": cell})
}
