package coords

import (
	"strconv"

	apperrors "github.com/louisbranch/boardplay/internal/platform/errors"
)

// Wall orientations.
const (
	Horizontal = "h"
	Vertical   = "v"
)

// IsWall reports whether id carries a wall orientation suffix.
func IsWall(id string) bool {
	if len(id) < 2 {
		return false
	}
	last := id[len(id)-1:]
	return last == Horizontal || last == Vertical
}

// SplitWall parses a wall id into the coordinates of its cell and the
// orientation. A horizontal wall runs along the north edge of its cell and a
// vertical wall along the east edge.
func (c Codec) SplitWall(id string) (int, int, string, error) {
	if !IsWall(id) {
		return 0, 0, "", apperrors.WithMetadata(apperrors.CodeInvalidCell, "wall orientation is missing", map[string]string{"cell": id})
	}
	x, y, err := c.FromAlgebraic(id[:len(id)-1])
	if err != nil {
		return 0, 0, "", err
	}
	return x, y, id[len(id)-1:], nil
}

// RenderToWall converts a renderer edge click into a wall id. Sides are the
// compass tags N, S, E and W. Walls left of column 0 encode the column as "z".
func (c Codec) RenderToWall(row, col int, side string) string {
	orientation := Vertical
	if side == "N" || side == "S" {
		orientation = Horizontal
	}
	rowLabel := c.Height - row
	if side == "S" {
		rowLabel--
	}
	if side == "W" {
		col--
	}
	return ColumnLabel(col) + strconv.Itoa(rowLabel) + orientation
}
