package graph

import (
	"testing"

	apperrors "github.com/louisbranch/boardplay/internal/platform/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGraph(t *testing.T, width int) *Graph {
	t.Helper()
	g, err := New(width)
	require.NoError(t, err)
	return g
}

func TestNewRejectsWidthOutOfRange(t *testing.T) {
	for _, width := range []int{-1, 0, MaxWidth + 1} {
		_, err := New(width)
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidBoardSize))
	}
}

func TestEveryDirectionIsOneHamiltonianCycle(t *testing.T) {
	for _, width := range []int{1, 2, 3, 6, 12, MaxWidth} {
		g := mustGraph(t, width)
		for _, d := range []Direction{CW, CCW} {
			for _, start := range g.Cells() {
				seen := map[string]bool{}
				curr := start
				steps := 0
				for {
					next, ok := g.Next(curr, d)
					require.True(t, ok)
					steps++
					if next == start {
						break
					}
					require.False(t, seen[next], "revisited %s from %s", next, start)
					seen[next] = true
					curr = next
				}
				assert.Equal(t, width*2, steps, "width %d %s from %s", width, d, start)
			}
		}
	}
}

func TestEveryNodeHasOneInboundEdgePerDirection(t *testing.T) {
	g := mustGraph(t, 6)
	for _, d := range []Direction{CW, CCW} {
		inbound := map[string]int{}
		for _, cell := range g.Cells() {
			next, ok := g.Next(cell, d)
			require.True(t, ok)
			inbound[next]++
		}
		require.Len(t, inbound, 12)
		for cell, count := range inbound {
			assert.Equal(t, 1, count, "%s %s", cell, d)
		}
	}
}

func TestClockwiseWrapsAtCorners(t *testing.T) {
	g := mustGraph(t, 6)
	next, _ := g.Next("f2", CW)
	assert.Equal(t, "f1", next)
	next, _ = g.Next("a1", CW)
	assert.Equal(t, "a2", next)
	next, _ = g.Next("c2", CW)
	assert.Equal(t, "d2", next)
	next, _ = g.Next("c1", CW)
	assert.Equal(t, "b1", next)

	next, _ = g.Next("f1", CCW)
	assert.Equal(t, "f2", next)
	next, _ = g.Next("a2", CCW)
	assert.Equal(t, "a1", next)

	_, ok := g.Next("z9", CW)
	assert.False(t, ok)
}

func TestNeighbours(t *testing.T) {
	g := mustGraph(t, 6)
	assert.Equal(t, []string{"d2", "b2"}, g.Neighbours("c2"))
	assert.Equal(t, []string{"f1", "e2"}, g.Neighbours("f2"))
	assert.Nil(t, g.Neighbours("g2"))

	narrow := mustGraph(t, 1)
	assert.Equal(t, []string{"a1"}, narrow.Neighbours("a2"))
}

func TestGetDirection(t *testing.T) {
	g := mustGraph(t, 6)
	d, ok := g.GetDirection("c2", "d2")
	require.True(t, ok)
	assert.Equal(t, CW, d)
	d, ok = g.GetDirection("c2", "b2")
	require.True(t, ok)
	assert.Equal(t, CCW, d)
	d, ok = g.GetDirection("a1", "a2")
	require.True(t, ok)
	assert.Equal(t, CW, d)

	for _, pair := range [][2]string{{"c2", "e2"}, {"c2", "c1"}, {"z1", "a1"}, {"a1", "z1"}, {"a1", "a1"}} {
		_, ok := g.GetDirection(pair[0], pair[1])
		assert.False(t, ok, "%v", pair)
	}
}

func TestCellsAndRows(t *testing.T) {
	g := mustGraph(t, 3)
	assert.Equal(t, []string{"a2", "b2", "c2", "a1", "b1", "c1"}, g.Cells())
	assert.Equal(t, [][]string{{"a2", "b2", "c2"}, {"a1", "b1", "c1"}}, g.Rows())
	assert.True(t, g.HasNode("c1"))
	assert.False(t, g.HasNode("d1"))
	assert.Nil(t, g.Path())
	assert.Equal(t, 3, g.Width())
	assert.Equal(t, 2, g.Height())
}

func TestCoordsPassthrough(t *testing.T) {
	g := mustGraph(t, 3)
	x, y, err := g.Coords("c1")
	require.NoError(t, err)
	assert.Equal(t, 2, x)
	assert.Equal(t, 1, y)
	assert.Equal(t, "a2", g.Algebraic(0, 0))
	_, _, err = g.Coords("a")
	assert.Error(t, err)
}

func TestDirectionFlip(t *testing.T) {
	assert.Equal(t, CCW, CW.Flip())
	assert.Equal(t, CW, CCW.Flip())
	assert.False(t, Direction("UP").Valid())
}
