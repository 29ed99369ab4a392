package graph

import (
	"strconv"

	"github.com/louisbranch/boardplay/internal/board/coords"
	apperrors "github.com/louisbranch/boardplay/internal/platform/errors"
)

// Height is fixed at two rows.
const Height = 2

// MaxWidth is bounded by the column alphabet.
const MaxWidth = len(coords.Columns)

// Direction tags an outbound edge.
type Direction string

const (
	CW  Direction = "CW"
	CCW Direction = "CCW"
)

// Flip returns the opposite rotation.
func (d Direction) Flip() Direction {
	if d == CW {
		return CCW
	}
	return CW
}

// Valid reports whether d is one of the two rotations.
func (d Direction) Valid() bool {
	return d == CW || d == CCW
}

func (d Direction) slot() int {
	if d == CCW {
		return 1
	}
	return 0
}

type node struct {
	id  string
	out [2]int
}

// Graph is an immutable adjacency table. Nodes are stored in row-major
// order, top row first.
type Graph struct {
	width int
	codec coords.Codec
	nodes []node
	index map[string]int
}

// New builds the graph for a board of the given width.
func New(width int) (*Graph, error) {
	if width < 1 || width > MaxWidth {
		return nil, apperrors.WithMetadata(apperrors.CodeInvalidBoardSize, "sowing board width out of range", map[string]string{"size": strconv.Itoa(width)})
	}
	g := &Graph{
		width: width,
		codec: coords.Codec{Height: Height},
		nodes: make([]node, 0, width*Height),
		index: make(map[string]int, width*Height),
	}
	for row := 0; row < Height; row++ {
		for col := 0; col < width; col++ {
			id := g.codec.ToAlgebraic(col, row)
			g.index[id] = len(g.nodes)
			g.nodes = append(g.nodes, node{id: id})
		}
	}
	for row := 0; row < Height; row++ {
		for col := 0; col < width; col++ {
			n := &g.nodes[g.at(col, row)]
			n.out[CW.slot()] = g.clockwise(col, row)
			n.out[CCW.slot()] = g.counterclockwise(col, row)
		}
	}
	return g, nil
}

func (g *Graph) at(col, row int) int {
	return row*g.width + col
}

func (g *Graph) clockwise(col, row int) int {
	switch {
	case row == 1 && col == 0:
		return g.at(0, 0)
	case row == 0 && col == g.width-1:
		return g.at(g.width-1, 1)
	case row == 0:
		return g.at(col+1, 0)
	default:
		return g.at(col-1, 1)
	}
}

func (g *Graph) counterclockwise(col, row int) int {
	switch {
	case row == 1 && col == g.width-1:
		return g.at(g.width-1, 0)
	case row == 0 && col == 0:
		return g.at(0, 1)
	case row == 0:
		return g.at(col-1, 0)
	default:
		return g.at(col+1, 1)
	}
}

// Width returns the number of columns.
func (g *Graph) Width() int { return g.width }

// Height returns the number of rows.
func (g *Graph) Height() int { return Height }

// Codec returns the coordinate codec for this board.
func (g *Graph) Codec() coords.Codec { return g.codec }

// Coords converts a cell to (x, y).
func (g *Graph) Coords(cell string) (int, int, error) { return g.codec.FromAlgebraic(cell) }

// Algebraic converts (x, y) to a cell.
func (g *Graph) Algebraic(x, y int) string { return g.codec.ToAlgebraic(x, y) }

// HasNode reports whether cell is on the board.
func (g *Graph) HasNode(cell string) bool {
	_, ok := g.index[cell]
	return ok
}

// Path returns nil: sowing boards have no fixed linear path.
func (g *Graph) Path() []string { return nil }

// Next returns the cell reached by following one edge in direction d.
func (g *Graph) Next(cell string, d Direction) (string, bool) {
	i, ok := g.index[cell]
	if !ok || !d.Valid() {
		return "", false
	}
	return g.nodes[g.nodes[i].out[d.slot()]].id, true
}

// Neighbours returns the distinct cells adjacent to cell, clockwise
// neighbour first. Unknown cells have no neighbours.
func (g *Graph) Neighbours(cell string) []string {
	i, ok := g.index[cell]
	if !ok {
		return nil
	}
	n := g.nodes[i]
	cw, ccw := n.out[CW.slot()], n.out[CCW.slot()]
	out := make([]string, 0, 2)
	if cw != i {
		out = append(out, g.nodes[cw].id)
	}
	if ccw != i && ccw != cw {
		out = append(out, g.nodes[ccw].id)
	}
	return out
}

// GetDirection reports which edge leads from one cell to an adjacent one.
// Unknown or non-adjacent cells report false.
func (g *Graph) GetDirection(from, to string) (Direction, bool) {
	i, ok := g.index[from]
	if !ok {
		return "", false
	}
	j, ok := g.index[to]
	if !ok || i == j {
		return "", false
	}
	for _, d := range []Direction{CW, CCW} {
		if g.nodes[i].out[d.slot()] == j {
			return d, true
		}
	}
	return "", false
}

// Cells returns every cell id in row-major order.
func (g *Graph) Cells() []string {
	out := make([]string, len(g.nodes))
	for i, n := range g.nodes {
		out[i] = n.id
	}
	return out
}

// Rows returns the cell ids grouped by row, top row first.
func (g *Graph) Rows() [][]string {
	out := make([][]string, Height)
	for row := 0; row < Height; row++ {
		out[row] = make([]string, g.width)
		for col := 0; col < g.width; col++ {
			out[row][col] = g.nodes[g.at(col, row)].id
		}
	}
	return out
}
