package walls

import (
	"fmt"
	"math/rand"

	"github.com/louisbranch/boardplay/internal/board/cells"
	"github.com/louisbranch/boardplay/internal/board/coords"
	"github.com/louisbranch/boardplay/internal/engine/game"
	"github.com/louisbranch/boardplay/internal/engine/render"
	"github.com/louisbranch/boardplay/internal/engine/result"
	"github.com/louisbranch/boardplay/internal/engine/validation"
	apperrors "github.com/louisbranch/boardplay/internal/platform/errors"
)

const (
	numPlayers    = 2
	defaultWidth  = 5
	defaultHeight = 5
	minSide       = 2
	maxSide       = len(coords.Columns)

	highlight = "#FFFF00"
)

// Info describes the walls game.
var Info = game.Info{
	Name:         "Walls",
	UID:          "walls",
	Version:      "20240501",
	DateAdded:    "2024-05-01",
	Description:  "Claim cells or build walls between them until the board is full.",
	PlayerCounts: []int{numPlayers},
	Variants: []game.Variant{
		{UID: "size-4x4", Group: "board"},
		{UID: "size-6x7", Group: "board"},
	},
	Flags: []string{"experimental"},
}

// Board holds claimed cells and built walls with their owners.
type Board struct {
	Cells *cells.Map[int] `json:"cells"`
	Walls *cells.Map[int] `json:"walls"`
}

// Clone returns a deep copy.
func (b *Board) Clone() *Board {
	if b == nil {
		return nil
	}
	return &Board{Cells: b.Cells.Clone(), Walls: b.Walls.Clone()}
}

// Validate checks owners.
func (b *Board) Validate() error {
	if b == nil || b.Cells == nil || b.Walls == nil {
		return fmt.Errorf("cells or walls are missing")
	}
	for _, m := range []*cells.Map[int]{b.Cells, b.Walls} {
		var err error
		m.Each(func(id string, owner int) bool {
			if owner < 1 || owner > numPlayers {
				err = fmt.Errorf("%s has owner %d", id, owner)
				return false
			}
			return true
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Game is a walls game instance.
type Game struct {
	*game.Base[*Board]
	width, height int
	codec         coords.Codec
}

// New starts a fresh game.
func New(variants []string, opts ...game.Option) (*Game, error) {
	w, h, err := game.DimensionVariant(variants, defaultWidth, defaultHeight, minSide, maxSide)
	if err != nil {
		return nil, err
	}
	board := &Board{Cells: cells.New[int](), Walls: cells.New[int]()}
	return &Game{
		Base:   game.NewBase(Info, numPlayers, variants, board, opts...),
		width:  w,
		height: h,
		codec:  coords.Codec{Height: h},
	}, nil
}

// Load restores a game from a serialized document.
func Load(data []byte, opts ...game.Option) (*Game, error) {
	base, err := game.LoadBase[*Board](Info, data, opts...)
	if err != nil {
		return nil, err
	}
	w, h, err := game.DimensionVariant(base.Variants(), defaultWidth, defaultHeight, minSide, maxSide)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeMalformedState, "walls variants", err)
	}
	g := &Game{Base: base, width: w, height: h, codec: coords.Codec{Height: h}}
	for _, id := range append(base.Board.Cells.Keys(), base.Board.Walls.Keys()...) {
		if err := g.inBounds(id); err != nil {
			return nil, apperrors.WrapWithMetadata(apperrors.CodeMalformedState, "piece is off the board", map[string]string{"cell": id}, err)
		}
	}
	return g, nil
}

func (g *Game) wallInBounds(x, y int, orient string) bool {
	if orient == coords.Vertical {
		return x >= 0 && x < g.width-1 && y >= 0 && y < g.height
	}
	return x >= 0 && x < g.width && y >= 1 && y < g.height
}

func (g *Game) inBounds(id string) error {
	offBoard := apperrors.WithMetadata(apperrors.CodeInvalidCell, "off the board", map[string]string{"cell": id})
	if coords.IsWall(id) {
		x, y, orient, err := g.codec.SplitWall(id)
		if err != nil {
			return err
		}
		if !g.wallInBounds(x, y, orient) || g.codec.ToAlgebraic(x, y)+orient != id {
			return offBoard
		}
		return nil
	}
	x, y, err := g.codec.FromAlgebraic(id)
	if err != nil {
		return err
	}
	if !g.codec.InBounds(x, y, g.width) || g.codec.ToAlgebraic(x, y) != id {
		return offBoard
	}
	return nil
}

// Moves lists free cells column by column, then vertical walls, then
// horizontal walls.
func (g *Game) Moves() ([]string, error) {
	if g.GameOver() {
		return []string{}, nil
	}
	return g.moves(), nil
}

func (g *Game) moves() []string {
	moves := []string{}
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			if cell := g.codec.ToAlgebraic(x, y); !g.Board.Cells.Has(cell) {
				moves = append(moves, cell)
			}
		}
	}
	for _, orient := range []string{coords.Vertical, coords.Horizontal} {
		for x := 0; x < g.width; x++ {
			for y := 0; y < g.height; y++ {
				wall := g.codec.ToAlgebraic(x, y) + orient
				if g.wallInBounds(x, y, orient) && !g.Board.Walls.Has(wall) {
					moves = append(moves, wall)
				}
			}
		}
	}
	return moves
}

// RandomMove picks a legal move with rng.
func (g *Game) RandomMove(rng *rand.Rand) (string, error) {
	return game.RandomMove(rng, g.Moves)
}

func (g *Game) pipeline() validation.Pipeline {
	return validation.Pipeline{
		Game:   Info.UID,
		Locale: g.Locale(),
		Parse: func(m string) error {
			if coords.IsWall(m) {
				_, _, _, err := g.codec.SplitWall(m)
				return err
			}
			_, _, err := g.codec.FromAlgebraic(m)
			return err
		},
		Bounds: g.inBounds,
		Occupancy: func(m string) error {
			taken := g.Board.Cells.Has(m)
			if coords.IsWall(m) {
				taken = g.Board.Walls.Has(m)
			}
			if taken {
				return apperrors.WithMetadata(apperrors.CodeOccupied, "already taken", map[string]string{"where": m})
			}
			return nil
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

// HandleClick claims the clicked cell, or builds a wall when the click
// carries an edge tag (N, S, E or W) as its piece.
func (g *Game) HandleClick(click game.Click) (game.ClickResult, error) {
	translate := func(c game.Click) (string, error) {
		if !g.codec.InBounds(c.Col, c.Row, g.width) {
			return "", game.InvalidClick(c, "outside the board")
		}
		switch c.Piece {
		case "":
			return g.codec.ToAlgebraic(c.Col, c.Row), nil
		case "N", "S", "E", "W":
			return g.codec.RenderToWall(c.Row, c.Col, c.Piece), nil
		default:
			return "", game.InvalidClick(c, "unknown edge")
		}
	}
	return game.HandleClick(click, g.Locale(), translate, g.ValidateMove)
}

// Move claims a cell or builds a wall.
func (g *Game) Move(move string, opts game.MoveOptions) error {
	m, err := g.CheckMove(move, opts, g.ValidateMove, g.Moves)
	if err != nil {
		return err
	}
	if m == "" {
		return nil
	}
	if coords.IsWall(m) {
		g.Board.Walls.Set(m, g.CurrPlayer)
		g.Log = []result.Event{result.Place(m, m[len(m)-1:])}
	} else {
		g.Board.Cells.Set(m, g.CurrPlayer)
		g.Log = []result.Event{result.Place(m, "")}
	}
	if opts.Partial {
		return nil
	}
	g.Advance(m)
	g.checkEOG()
	g.Save()
	return nil
}

func (g *Game) checkEOG() {
	if len(g.moves()) > 0 {
		return
	}
	count := make([]int, numPlayers+1)
	g.Board.Cells.Each(func(_ string, owner int) bool {
		count[owner]++
		return true
	})
	switch {
	case count[1] > count[2]:
		g.FinishGame("", []int{1})
	case count[2] > count[1]:
		g.FinishGame("", []int{2})
	default:
		g.FinishGame("", []int{1, 2})
	}
}

func (g *Game) locate(cell string) (render.RowCol, bool) {
	if coords.IsWall(cell) {
		return render.RowCol{}, false
	}
	x, y, err := g.codec.FromAlgebraic(cell)
	if err != nil {
		return render.RowCol{}, false
	}
	return render.RowCol{Row: y, Col: x}, true
}

func (g *Game) wallLine(wall string, colour any, opacity float64) (render.Marker, bool) {
	x, y, orient, err := g.codec.SplitWall(wall)
	if err != nil {
		return render.Marker{}, false
	}
	points := []render.RowCol{{Row: y, Col: x}, {Row: y, Col: x + 1}}
	if orient == coords.Vertical {
		points = []render.RowCol{{Row: y + 1, Col: x + 1}, {Row: y, Col: x + 1}}
	}
	return render.Marker{Type: "line", Points: points, Colour: colour, Width: 6, Shorten: 0.075, Opacity: opacity}, true
}

// Render draws claimed cells as pieces and walls as line markers. The
// walls built by the last move are highlighted.
func (g *Game) Render(render.Options) (render.Rep, error) {
	rows := make([][]string, g.height)
	for y := range rows {
		rows[y] = make([]string, g.width)
		for x := range rows[y] {
			rows[y][x] = render.Empty
			switch owner, _ := g.Board.Cells.Get(g.codec.ToAlgebraic(x, y)); owner {
			case 1:
				rows[y][x] = "A"
			case 2:
				rows[y][x] = "B"
			}
		}
	}

	var markers []render.Marker
	g.Board.Walls.Each(func(wall string, owner int) bool {
		if line, ok := g.wallLine(wall, owner, 0); ok {
			markers = append(markers, line)
		}
		return true
	})
	for _, e := range g.Log {
		if e.Type != result.TypePlace || !coords.IsWall(e.Where) {
			continue
		}
		if line, ok := g.wallLine(e.Where, highlight, 0.5); ok {
			markers = append(markers, line)
		}
	}

	return render.Rep{
		Board: render.Board{
			Style:        "squares-beveled",
			Width:        g.width,
			Height:       g.height,
			StrokeWeight: 1,
			Markers:      markers,
		},
		Options: []string{"clickable-edges"},
		Legend: map[string][]render.Glyph{
			"A": {{Name: "piece", Colour: 1}},
			"B": {{Name: "piece", Colour: 2}},
		},
		Pieces:      render.Pieces(rows),
		Annotations: render.Annotate(g.Log, g.locate),
	}, nil
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
