package sowing

import (
	"math/rand"
	"strconv"
	"strings"

	"github.com/louisbranch/boardplay/internal/board/cells"
	"github.com/louisbranch/boardplay/internal/board/graph"
	"github.com/louisbranch/boardplay/internal/engine/game"
	"github.com/louisbranch/boardplay/internal/engine/render"
	"github.com/louisbranch/boardplay/internal/engine/result"
	"github.com/louisbranch/boardplay/internal/engine/validation"
	apperrors "github.com/louisbranch/boardplay/internal/platform/errors"
)

const (
	numPlayers   = 2
	defaultWidth = 6
	seedsPerPit  = 4
	minWidth     = 2
)

// Info describes the sowing game.
var Info = game.Info{
	Name:         "Sowing",
	UID:          "sowing",
	Version:      "20240501",
	DateAdded:    "2024-05-01",
	Description:  "Two-row sowing game with captures of two or three seeds.",
	PlayerCounts: []int{numPlayers},
	Variants: []game.Variant{
		{UID: "size-4", Group: "board"},
		{UID: "size-8", Group: "board"},
	},
	Flags: []string{"experimental", "scores"},
}

// Game is a sowing game instance.
type Game struct {
	*game.Base[*Board]
	graph *graph.Graph
	// dots highlights the neighbours of a selected pit.
	dots []string
}

// New starts a fresh game.
func New(variants []string, opts ...game.Option) (*Game, error) {
	width, err := game.SizeVariant(variants, defaultWidth, minWidth, graph.MaxWidth)
	if err != nil {
		return nil, err
	}
	g, err := graph.New(width)
	if err != nil {
		return nil, err
	}
	board := &Board{Pits: cells.New[int](), Scores: make([]int, numPlayers)}
	for _, pit := range g.Cells() {
		board.Pits.Set(pit, seedsPerPit)
	}
	return &Game{
		Base:  game.NewBase(Info, numPlayers, variants, board, opts...),
		graph: g,
	}, nil
}

// Load restores a game from a serialized document.
func Load(data []byte, opts ...game.Option) (*Game, error) {
	base, err := game.LoadBase[*Board](Info, data, opts...)
	if err != nil {
		return nil, err
	}
	width, err := game.SizeVariant(base.Variants(), defaultWidth, minWidth, graph.MaxWidth)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeMalformedState, "sowing variants", err)
	}
	g, err := graph.New(width)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeMalformedState, "sowing board", err)
	}
	if base.NumPlayers() != numPlayers {
		return nil, apperrors.New(apperrors.CodeMalformedState, "sowing is a two player game")
	}
	if base.Board.Pits.Len() != len(g.Cells()) {
		return nil, apperrors.New(apperrors.CodeMalformedState, "pit count does not match the board width")
	}
	for _, pit := range base.Board.Pits.Keys() {
		if !g.HasNode(pit) {
			return nil, apperrors.WithMetadata(apperrors.CodeMalformedState, "pit is not on the board", map[string]string{"cell": pit})
		}
	}
	return &Game{Base: base, graph: g}, nil
}

// Owner returns the player owning pit: player 1 owns row 1.
func Owner(pit string) int {
	if strings.HasSuffix(pit, "1") {
		return 1
	}
	return 2
}

// Load rebuilds the working state from the snapshot at idx.
func (g *Game) Load(idx int) error {
	g.dots = nil
	return g.Base.Load(idx)
}

// Moves lists "<pit>-<neighbour>" for every non-empty owned pit.
func (g *Game) Moves() ([]string, error) {
	if g.GameOver() {
		return []string{}, nil
	}
	return g.movesFor(g.CurrPlayer), nil
}

func (g *Game) movesFor(player int) []string {
	moves := []string{}
	for _, pit := range g.graph.Cells() {
		if Owner(pit) != player || g.Board.seeds(pit) == 0 {
			continue
		}
		for _, n := range g.graph.Neighbours(pit) {
			moves = append(moves, pit+"-"+n)
		}
	}
	return moves
}

// RandomMove picks a legal move with rng.
func (g *Game) RandomMove(rng *rand.Rand) (string, error) {
	return game.RandomMove(rng, g.Moves)
}

func split(move string) (string, string) {
	pit, neighbour, _ := strings.Cut(move, "-")
	return pit, neighbour
}

func (g *Game) pipeline() validation.Pipeline {
	codec := g.graph.Codec()
	return validation.Pipeline{
		Game:   Info.UID,
		Locale: g.Locale(),
		Parse: func(m string) error {
			if strings.Count(m, "-") > 1 {
				return apperrors.WithMetadata(apperrors.CodeInvalidCell, "too many move parts", map[string]string{"cell": m})
			}
			pit, neighbour := split(m)
			if _, _, err := codec.FromAlgebraic(pit); err != nil {
				return err
			}
			if strings.Contains(m, "-") {
				if _, _, err := codec.FromAlgebraic(neighbour); err != nil {
					return err
				}
			}
			return nil
		},
		Bounds: func(m string) error {
			pit, neighbour := split(m)
			for _, cell := range []string{pit, neighbour} {
				if cell != "" && !g.graph.HasNode(cell) {
					return apperrors.WithMetadata(apperrors.CodeInvalidCell, "cell is off the board", map[string]string{"cell": cell})
				}
			}
			return nil
		},
		Occupancy: func(m string) error {
			pit, neighbour := split(m)
			if Owner(pit) != g.CurrPlayer {
				return apperrors.WithMetadata(apperrors.CodeNotYourPit, "pit belongs to the opponent", map[string]string{"where": pit})
			}
			if g.Board.seeds(pit) == 0 {
				return apperrors.WithMetadata(apperrors.CodeEmptyPit, "pit is empty", map[string]string{"where": pit})
			}
			if neighbour == "" {
				return nil
			}
			if _, ok := g.graph.GetDirection(pit, neighbour); !ok {
				return apperrors.WithMetadata(apperrors.CodeNotAdjacent, "direction pit is not adjacent", map[string]string{"from": pit, "to": neighbour})
			}
			return nil
		},
		Partial: func(m string) (bool, error) {
			return !strings.Contains(m, "-"), nil
		},
		Moves: g.Moves,
	}
}

// ValidateMove classifies a candidate move.
func (g *Game) ValidateMove(move string) (validation.Result, error) {
	if g.GameOver() {
		return validation.Reject(apperrors.New(apperrors.CodeMovesGameOver, "game is over"), g.Locale())
	}
	return g.pipeline().Validate(move)
}

// HandleClick turns a pit click into a move. The first click selects a
// pit, the second picks the neighbour giving the direction. Clicking the
// selected pit again clears the selection.
func (g *Game) HandleClick(click game.Click) (game.ClickResult, error) {
	translate := func(c game.Click) (string, error) {
		if c.Row < 0 || c.Row >= graph.Height || c.Col < 0 || c.Col >= g.graph.Width() {
			return "", game.InvalidClick(c, "outside the board")
		}
		cell := g.graph.Codec().ToAlgebraic(c.Col, c.Row)
		pending := validation.Normalize(c.Move)
		switch {
		case pending == "" || strings.Contains(pending, "-"):
			return cell, nil
		case pending == cell:
			return "", nil
		default:
			return pending + "-" + cell, nil
		}
	}
	return game.HandleClick(click, g.Locale(), translate, g.ValidateMove)
}

// Move applies a move. Partial moves update the working state only.
func (g *Game) Move(move string, opts game.MoveOptions) error {
	m, err := g.CheckMove(move, opts, g.ValidateMove, g.Moves)
	if err != nil {
		return err
	}
	if m == "" {
		return nil
	}
	pit, neighbour := split(m)
	if neighbour == "" {
		// Only partial moves reach here: highlight the possible directions.
		g.dots = g.graph.Neighbours(pit)
		return nil
	}
	if err := g.sow(pit, neighbour); err != nil {
		return err
	}
	if opts.Partial {
		return nil
	}
	g.dots = nil
	g.Advance(m)
	g.checkEOG()
	g.Save()
	return nil
}

func (g *Game) sow(pit, neighbour string) error {
	dir, ok := g.graph.GetDirection(pit, neighbour)
	if !ok {
		return apperrors.WithMetadata(apperrors.CodeTopologyInconsistent, "sowing direction could not be resolved", map[string]string{"cell": pit})
	}
	seeds := g.Board.seeds(pit)
	path, err := g.graph.Sow(pit, dir, seeds)
	if err != nil {
		return err
	}
	g.Board.Pits.Set(pit, 0)
	for _, cell := range path {
		g.Board.Pits.Set(cell, g.Board.seeds(cell)+1)
	}
	g.Log = []result.Event{result.Move(pit, neighbour, "sow", seeds)}
	if len(path) == 0 {
		return nil
	}
	last := path[len(path)-1]
	if n := g.Board.seeds(last); Owner(last) != g.CurrPlayer && (n == 2 || n == 3) {
		g.Board.Pits.Set(last, 0)
		g.Board.Scores[g.CurrPlayer-1] += n
		g.Log = append(g.Log, result.Capture(last, n))
	}
	return nil
}

func (g *Game) checkEOG() {
	if len(g.movesFor(g.CurrPlayer)) > 0 {
		return
	}
	scores := g.Board.Scores
	switch {
	case scores[0] > scores[1]:
		g.FinishGame("", []int{1})
	case scores[1] > scores[0]:
		g.FinishGame("", []int{2})
	default:
		g.FinishGame("", []int{1, 2})
	}
}

func (g *Game) locate(cell string) (render.RowCol, bool) {
	if !g.graph.HasNode(cell) {
		return render.RowCol{}, false
	}
	x, y, err := g.graph.Codec().FromAlgebraic(cell)
	if err != nil {
		return render.RowCol{}, false
	}
	return render.RowCol{Row: y, Col: x}, true
}

// Render describes the pits as numerals.
func (g *Game) Render(render.Options) (render.Rep, error) {
	rows := g.graph.Rows()
	labels := make([][]string, len(rows))
	for i, row := range rows {
		labels[i] = make([]string, len(row))
		for j, pit := range row {
			labels[i][j] = strconv.Itoa(g.Board.seeds(pit))
		}
	}
	rep := render.Rep{
		Board: render.Board{
			Style:  "sowing-numerals",
			Width:  g.graph.Width(),
			Height: graph.Height,
			Markers: []render.Marker{
				{Type: "edge", Edge: "S", Colour: 1},
				{Type: "edge", Edge: "N", Colour: 2},
			},
		},
		Legend:      map[string][]render.Glyph{},
		Pieces:      render.Pieces(labels),
		Annotations: render.Annotate(g.Log, g.locate),
	}
	if dots, ok := render.Dots(g.dots, g.locate); ok {
		rep.Annotations = append(rep.Annotations, dots)
	}
	return rep, nil
}

// Status adds the scores to the shared summary.
func (g *Game) Status() string {
	return g.Base.Status() + "**Scores**: " + strconv.Itoa(g.Board.Scores[0]) + " - " + strconv.Itoa(g.Board.Scores[1]) + "\n\n"
}

// Clone returns an independent copy through a serialization round trip.
func (g *Game) Clone() (game.Game, error) {
	data, err := g.Serialize()
	if err != nil {
		return nil, err
	}
	return Load(data, g.Options()...)
}

var _ game.Game = (*Game)(nil)
