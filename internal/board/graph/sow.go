package graph

import (
	"strconv"

	apperrors "github.com/louisbranch/boardplay/internal/platform/errors"
)

// Sow walks distance steps from start and returns the visited cells in
// order. A negative distance walks the same number of steps in the opposite
// rotation. Zero returns an empty slice.
func (g *Graph) Sow(start string, d Direction, distance int) ([]string, error) {
	curr, ok := g.index[start]
	if !ok {
		return nil, apperrors.WithMetadata(apperrors.CodeUnknownNode, "sow start is not on the board", map[string]string{"cell": start})
	}
	if !d.Valid() {
		return nil, apperrors.WithMetadata(apperrors.CodeTopologyInconsistent, "unknown sowing direction", map[string]string{"cell": start, "direction": string(d)})
	}
	if distance < 0 {
		d = d.Flip()
		distance = -distance
	}
	visited := make([]string, 0, distance)
	for step := 0; step < distance; step++ {
		next, err := g.follow(curr, d)
		if err != nil {
			return nil, err
		}
		visited = append(visited, g.nodes[next].id)
		curr = next
	}
	return visited, nil
}

// follow resolves the single outbound edge of curr tagged d.
func (g *Graph) follow(curr int, d Direction) (int, error) {
	next := g.nodes[curr].out[d.slot()]
	if next < 0 || next >= len(g.nodes) || (next == curr && len(g.nodes) > 1) {
		return 0, apperrors.WithMetadata(apperrors.CodeTopologyInconsistent, "outbound edge does not resolve to one other node", map[string]string{
			"cell":      g.nodes[curr].id,
			"direction": string(d),
			"target":    strconv.Itoa(next),
		})
	}
	return next, nil
}
