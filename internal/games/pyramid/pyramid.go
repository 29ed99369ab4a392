package pyramid

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/louisbranch/boardplay/internal/board/cells"
	"github.com/louisbranch/boardplay/internal/board/coords"
	"github.com/louisbranch/boardplay/internal/engine/game"
	"github.com/louisbranch/boardplay/internal/engine/render"
	"github.com/louisbranch/boardplay/internal/engine/result"
	"github.com/louisbranch/boardplay/internal/engine/validation"
	apperrors "github.com/louisbranch/boardplay/internal/platform/errors"
)

const (
	numPlayers  = 2
	defaultSize = 4
	minSize     = 2
	// Layer prefixes are a single digit.
	maxSize = 9

	scrollPrefix = "scroll_newval_"
)

// Info describes the pyramid game.
var Info = game.Info{
	Name:         "Pyramid",
	UID:          "pyramid",
	Version:      "20240501",
	DateAdded:    "2024-05-01",
	Description:  "Stack balls into a pyramid; the player who crowns it wins.",
	PlayerCounts: []int{numPlayers},
	Variants: []game.Variant{
		{UID: "size-3", Group: "board"},
		{UID: "size-5", Group: "board"},
	},
	Flags: []string{"experimental", "limited-pieces"},
}

// Board maps ball cells to their owner.
type Board struct {
	Balls *cells.Map[int] `json:"balls"`
}

// Clone returns a deep copy.
func (b *Board) Clone() *Board {
	if b == nil {
		return nil
	}
	return &Board{Balls: b.Balls.Clone()}
}

// Validate checks ball owners.
func (b *Board) Validate() error {
	if b == nil || b.Balls == nil {
		return fmt.Errorf("balls are missing")
	}
	var err error
	b.Balls.Each(func(cell string, owner int) bool {
		if owner < 1 || owner > numPlayers {
			err = fmt.Errorf("ball %s has owner %d", cell, owner)
			return false
		}
		return true
	})
	return err
}

// Game is a pyramid game instance.
type Game struct {
	*game.Base[*Board]
	size  int
	codec coords.Layered
	// hideLayer is the layer drawn as ghosts; layers above it are hidden.
	hideLayer *int
}

// New starts a fresh game.
func New(variants []string, opts ...game.Option) (*Game, error) {
	size, err := game.SizeVariant(variants, defaultSize, minSize, maxSize)
	if err != nil {
		return nil, err
	}
	base := game.NewBase(Info, numPlayers, variants, &Board{Balls: cells.New[int]()}, opts...)
	return &Game{Base: base, size: size, codec: coords.NewLayered(size)}, nil
}

// Load restores a game from a serialized document.
func Load(data []byte, opts ...game.Option) (*Game, error) {
	base, err := game.LoadBase[*Board](Info, data, opts...)
	if err != nil {
		return nil, err
	}
	size, err := game.SizeVariant(base.Variants(), defaultSize, minSize, maxSize)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeMalformedState, "pyramid variants", err)
	}
	g := &Game{Base: base, size: size, codec: coords.NewLayered(size)}
	for _, cell := range base.Board.Balls.Keys() {
		x, y, layer, err := g.codec.FromAlgebraic(cell)
		if err != nil || !g.exists(x, y, layer) {
			return nil, apperrors.WithMetadata(apperrors.CodeMalformedState, "ball is off the pyramid", map[string]string{"cell": cell})
		}
	}
	return g, nil
}

// Load rebuilds the working state from the snapshot at idx.
func (g *Game) Load(idx int) error {
	g.hideLayer = nil
	return g.Base.Load(idx)
}

// exists reports whether (x, y) on the flattened grid holds a cell of layer.
func (g *Game) exists(x, y, layer int) bool {
	last := 2*(g.size-1) - layer
	return layer >= 0 && layer < g.size &&
		x >= layer && y >= layer && x <= last && y <= last &&
		(x-layer)%2 == 0 && (y-layer)%2 == 0
}

func (g *Game) supported(x, y, layer int) bool {
	if layer == 0 {
		return true
	}
	for _, d := range [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}} {
		if !g.Board.Balls.Has(g.codec.ToAlgebraic(x+d[0], y+d[1], layer-1)) {
			return false
		}
	}
	return true
}

// placeable returns the lowest free cell stacked over (x, y) if a ball can
// go there now.
func (g *Game) placeable(x, y int) (string, bool) {
	if x%2 != y%2 {
		return "", false
	}
	for layer := x % 2; g.exists(x, y, layer); layer += 2 {
		cell := g.codec.ToAlgebraic(x, y, layer)
		if g.Board.Balls.Has(cell) {
			continue
		}
		if !g.supported(x, y, layer) {
			return "", false
		}
		return cell, true
	}
	return "", false
}

func (g *Game) maxLayer() int {
	top := 0
	for _, cell := range g.Board.Balls.Keys() {
		if _, _, layer, err := g.codec.FromAlgebraic(cell); err == nil && layer > top {
			top = layer
		}
	}
	return top
}

// Moves lists every free supported cell, base layer first.
func (g *Game) Moves() ([]string, error) {
	if g.GameOver() {
		return []string{}, nil
	}
	moves := []string{}
	for layer := 0; layer < g.size; layer++ {
		for row := 0; row < g.size-layer; row++ {
			for col := 0; col < g.size-layer; col++ {
				cell := g.codec.FromLayer(col, row, layer)
				if g.Board.Balls.Has(cell) || !g.supported(2*col+layer, 2*row+layer, layer) {
					continue
				}
				moves = append(moves, cell)
			}
		}
	}
	return moves, nil
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
			_, _, _, err := g.codec.FromAlgebraic(m)
			return err
		},
		Bounds: func(m string) error {
			x, y, layer, _ := g.codec.FromAlgebraic(m)
			if !g.exists(x, y, layer) || g.codec.ToAlgebraic(x, y, layer) != m {
				return apperrors.WithMetadata(apperrors.CodeInvalidCell, "cell is off the pyramid", map[string]string{"cell": m})
			}
			return nil
		},
		Occupancy: func(m string) error {
			if g.Board.Balls.Has(m) {
				return apperrors.WithMetadata(apperrors.CodeOccupied, "cell holds a ball", map[string]string{"where": m})
			}
			x, y, layer, _ := g.codec.FromAlgebraic(m)
			if !g.supported(x, y, layer) {
				return apperrors.WithMetadata(apperrors.CodeNotPlaceable, "cell lacks support", map[string]string{"where": m})
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

// HandleClick places on the clicked stack or moves the layer scroll bar.
// Scroll bar clicks arrive as row and column -1 with the new value in the
// piece name; they only change which layers render.
func (g *Game) HandleClick(click game.Click) (game.ClickResult, error) {
	translate := func(c game.Click) (string, error) {
		if c.Row == -1 && c.Col == -1 {
			return c.Move, g.scroll(c)
		}
		grid := 2*g.size - 1
		if c.Row < 0 || c.Col < 0 || c.Row >= grid || c.Col >= grid {
			return "", game.InvalidClick(c, "outside the board")
		}
		cell, ok := g.placeable(c.Col, c.Row)
		if !ok {
			where := g.codec.Codec.ToAlgebraic(c.Col, c.Row)
			return "", apperrors.WithMetadata(apperrors.CodeNotPlaceable, "no ball fits the clicked stack", map[string]string{"where": where})
		}
		return cell, nil
	}
	res, err := game.HandleClick(click, g.Locale(), translate, g.ValidateMove)
	if err != nil {
		return game.ClickResult{}, err
	}
	res.Opts = &render.Options{HideLayer: g.hidden()}
	return res, nil
}

func (g *Game) scroll(c game.Click) error {
	if !strings.HasPrefix(c.Piece, scrollPrefix) {
		return game.InvalidClick(c, "unknown scroll bar value")
	}
	n, err := strconv.Atoi(strings.TrimPrefix(c.Piece, scrollPrefix))
	if err != nil {
		return game.InvalidClick(c, "scroll bar value is not a number")
	}
	switch {
	case n > g.maxLayer():
		g.hideLayer = nil
	case n < 1:
		n = 1
		g.hideLayer = &n
	default:
		g.hideLayer = &n
	}
	return nil
}

func (g *Game) hidden() *int {
	if g.hideLayer == nil {
		return nil
	}
	n := *g.hideLayer
	return &n
}

// Move places a ball. Committing the apex ends the game.
func (g *Game) Move(move string, opts game.MoveOptions) error {
	m, err := g.CheckMove(move, opts, g.ValidateMove, g.Moves)
	if err != nil {
		return err
	}
	if m == "" {
		return nil
	}
	g.Board.Balls.Set(m, g.CurrPlayer)
	g.Log = []result.Event{result.Place(m, "")}
	if opts.Partial {
		return nil
	}
	g.hideLayer = nil
	player := g.CurrPlayer
	g.Advance(m)
	if _, _, layer, err := g.codec.FromAlgebraic(m); err == nil && layer == g.size-1 {
		g.FinishGame("", []int{player})
	}
	g.Save()
	return nil
}

func (g *Game) locate(cell string) (render.RowCol, bool) {
	col, row, err := g.codec.Position(cell, g.size)
	if err != nil {
		return render.RowCol{}, false
	}
	return render.RowCol{Row: row, Col: col}, true
}

// Render stacks the layers bottom to top. Layers above the hidden layer
// are left out and the hidden layer itself is drawn as ghosts.
func (g *Game) Render(opts render.Options) (render.Rep, error) {
	hide := g.hidden()
	if opts.HideLayer != nil {
		n := *opts.HideLayer
		hide = &n
	}
	top := g.maxLayer()
	limit := top
	if hide != nil {
		limit = min(max(*hide, 0), g.size-1)
	}

	legend := map[string][]render.Glyph{}
	var rows [][]string
	for layer := 0; layer <= limit; layer++ {
		ghost := hide != nil && *hide <= layer
		for row := 0; row < g.size-layer; row++ {
			labels := make([]string, g.size-layer)
			for col := range labels {
				owner, ok := g.Board.Balls.Get(g.codec.FromLayer(col, row, layer))
				if !ok {
					labels[col] = render.Empty
					continue
				}
				key := pieceKey(owner, layer, ghost)
				labels[col] = key
				legend[key] = glyphs(owner, ghost, opts.AltDisplay)
			}
			rows = append(rows, labels)
		}
	}

	current := top + 1
	if hide != nil {
		current = *hide
	}
	return render.Rep{
		Board: render.Board{
			Style:  "squares-stacked",
			Width:  g.size,
			Height: g.size,
			Markers: []render.Marker{
				{Type: "edge", Edge: "N", Colour: 1},
				{Type: "edge", Edge: "S", Colour: 1},
				{Type: "edge", Edge: "E", Colour: 2},
				{Type: "edge", Edge: "W", Colour: 2},
			},
		},
		Legend:      legend,
		Pieces:      render.Pieces(rows),
		Annotations: render.Annotate(g.Log, g.locate),
		Areas: []render.Area{{
			Type:     "scrollBar",
			Position: "left",
			Min:      0,
			Max:      top + 1,
			Current:  current,
		}},
	}, nil
}

func pieceKey(owner, layer int, ghost bool) string {
	letters := "AB"
	if ghost {
		letters = "XY"
	}
	return letters[owner-1:owner] + strconv.Itoa(layer+1)
}

func glyphs(owner int, ghost bool, alt string) []render.Glyph {
	name := "piece"
	if alt == "orb-3d" {
		name = "orb"
	}
	if ghost {
		return []render.Glyph{{Name: "piece-borderless", Colour: owner, Scale: 1.15, Opacity: 0.25}}
	}
	return []render.Glyph{{Name: name, Colour: owner, Scale: 1.15}}
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
