// Package render describes boards for an external renderer.
//
// A Rep is a pure projection of the current game state: board shape, a
// flattened piece layout, a legend from piece labels to glyphs, and
// annotations derived from the latest results. Nothing here is read back
// into a game.
package render

import (
	"strings"

	"github.com/louisbranch/boardplay/internal/engine/result"
)

// RowCol addresses a board position in renderer coordinates.
type RowCol struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Glyph is one layer of a legend entry. Colour holds either a player number
// or a hex colour string.
type Glyph struct {
	Name    string  `json:"name,omitempty"`
	Text    string  `json:"text,omitempty"`
	Colour  any     `json:"colour,omitempty"`
	Scale   float64 `json:"scale,omitempty"`
	Opacity float64 `json:"opacity,omitempty"`
}

// Marker decorates the board itself.
type Marker struct {
	Type    string   `json:"type"`
	Edge    string   `json:"edge,omitempty"`
	Points  []RowCol `json:"points,omitempty"`
	Colour  any      `json:"colour,omitempty"`
	Width   float64  `json:"width,omitempty"`
	Shorten float64  `json:"shorten,omitempty"`
	Opacity float64  `json:"opacity,omitempty"`
}

// Board is the shape and style of the board.
type Board struct {
	Style        string   `json:"style"`
	Width        int      `json:"width"`
	Height       int      `json:"height"`
	StrokeWeight int      `json:"strokeWeight,omitempty"`
	Markers      []Marker `json:"markers,omitempty"`
}

// Annotation highlights positions after a move.
type Annotation struct {
	Type    string   `json:"type"`
	Targets []RowCol `json:"targets"`
}

// Area is an interactive control next to the board.
type Area struct {
	Type     string `json:"type"`
	Position string `json:"position,omitempty"`
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Current  int    `json:"current"`
}

// Rep is the full render description.
type Rep struct {
	Board       Board              `json:"board"`
	Options     []string           `json:"options,omitempty"`
	Legend      map[string][]Glyph `json:"legend"`
	Pieces      string             `json:"pieces"`
	Annotations []Annotation       `json:"annotations,omitempty"`
	Areas       []Area             `json:"areas,omitempty"`
}

// Options tune a render call.
type Options struct {
	// HideLayer hides stacked layers at or above the given index.
	HideLayer *int `json:"hideLayer,omitempty"`
	// AltDisplay selects an alternative legend.
	AltDisplay string `json:"altDisplay,omitempty"`
}

// Annotation types.
const (
	AnnotateEnter = "enter"
	AnnotateMove  = "move"
	AnnotateDots  = "dots"
)

// Empty is the layout token for an unoccupied position.
const Empty = "-"

// Pieces joins rows of labels into a layout string. Rows are separated by
// newlines and labels by commas when any label is longer than one
// character. Fully empty rows collapse to "_".
func Pieces(rows [][]string) string {
	sep := ""
	for _, row := range rows {
		for _, label := range row {
			if len(label) > 1 {
				sep = ","
			}
		}
	}
	lines := make([]string, len(rows))
	for i, row := range rows {
		empty := true
		for _, label := range row {
			if label != Empty {
				empty = false
				break
			}
		}
		if empty {
			lines[i] = "_"
			continue
		}
		lines[i] = strings.Join(row, sep)
	}
	return strings.Join(lines, "\n")
}

// Locator maps a cell id to renderer coordinates.
type Locator func(cell string) (RowCol, bool)

// Annotate derives enter and move annotations from a result log, in the
// order the effects happened. Cells the locator cannot place are skipped.
func Annotate(events []result.Event, locate Locator) []Annotation {
	var out []Annotation
	for _, e := range events {
		switch e.Type {
		case result.TypePlace:
			if at, ok := locate(e.Where); ok {
				out = append(out, Annotation{Type: AnnotateEnter, Targets: []RowCol{at}})
			}
		case result.TypeMove:
			from, okFrom := locate(e.From)
			to, okTo := locate(e.To)
			if okFrom && okTo {
				out = append(out, Annotation{Type: AnnotateMove, Targets: []RowCol{from, to}})
			}
		}
	}
	return out
}

// Dots converts highlighted cells into a dots annotation.
func Dots(cells []string, locate Locator) (Annotation, bool) {
	targets := make([]RowCol, 0, len(cells))
	for _, cell := range cells {
		if at, ok := locate(cell); ok {
			targets = append(targets, at)
		}
	}
	if len(targets) == 0 {
		return Annotation{}, false
	}
	return Annotation{Type: AnnotateDots, Targets: targets}, true
}
