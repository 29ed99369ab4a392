// Package result defines the move result events recorded on every snapshot.
//
// Events describe the effects of one move in the order they happened. A chat
// or localization front end turns each event into one sentence.
package result

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/louisbranch/boardplay/internal/platform/errors/i18n"
)

// Type names an event in the result vocabulary.
type Type string

const (
	TypePlace   Type = "place"
	TypeMove    Type = "move"
	TypeCapture Type = "capture"
	TypePass    Type = "pass"
	TypeEOG     Type = "eog"
	TypeWinners Type = "winners"
	TypeDraw    Type = "draw"
)

// Event is one tagged result record. Only the fields used by its Type are
// set.
type Event struct {
	Type    Type   `json:"type"`
	Where   string `json:"where,omitempty"`
	What    string `json:"what,omitempty"`
	From    string `json:"from,omitempty"`
	To      string `json:"to,omitempty"`
	How     string `json:"how,omitempty"`
	Count   int    `json:"count,omitempty"`
	Who     int    `json:"who,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Players []int  `json:"players,omitempty"`
}

// Place records a piece placed at where. what is optional.
func Place(where, what string) Event {
	return Event{Type: TypePlace, Where: where, What: what}
}

// Move records pieces moving between cells.
func Move(from, to, how string, count int) Event {
	return Event{Type: TypeMove, From: from, To: to, How: how, Count: count}
}

// Capture records count pieces taken at where.
func Capture(where string, count int) Event {
	return Event{Type: TypeCapture, Where: where, Count: count}
}

// Pass records a player passing.
func Pass(who int) Event {
	return Event{Type: TypePass, Who: who}
}

// EOG marks the end of the game.
func EOG(reason string) Event {
	return Event{Type: TypeEOG, Reason: reason}
}

// Winners lists the winning players.
func Winners(players []int) Event {
	return Event{Type: TypeWinners, Players: append([]int(nil), players...)}
}

// Validate reports whether e is a well-formed member of the vocabulary.
func (e Event) Validate() error {
	switch e.Type {
	case TypePlace:
		if e.Where == "" {
			return fmt.Errorf("place result requires where")
		}
	case TypeMove:
		if e.From == "" || e.To == "" {
			return fmt.Errorf("move result requires from and to")
		}
	case TypeCapture, TypePass, TypeEOG, TypeDraw:
	case TypeWinners:
		if len(e.Players) == 0 {
			return fmt.Errorf("winners result requires players")
		}
	default:
		return fmt.Errorf("unknown result type %q", e.Type)
	}
	return nil
}

// ValidateAll checks every event of a move.
func ValidateAll(events []Event) error {
	for i, e := range events {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("result %d: %w", i, err)
		}
	}
	return nil
}

// Clone copies a result log.
func Clone(events []Event) []Event {
	if events == nil {
		return []Event{}
	}
	out := make([]Event, len(events))
	for i, e := range events {
		e.Players = append([]int(nil), e.Players...)
		out[i] = e
	}
	return out
}

// Sentence renders e for player in locale through the results catalog.
func Sentence(e Event, player, locale string) string {
	catalog := i18n.GetNamespaceCatalog(locale, i18n.NamespaceResults)
	return catalog.Format(messageKey(e), e.metadata(player))
}

// Chat renders a result log into one sentence per event.
func Chat(events []Event, player, locale string) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, Sentence(e, player, locale))
	}
	return out
}

func messageKey(e Event) string {
	switch {
	case e.Type == TypePlace && (e.What == "h" || e.What == "v"):
		return "results.PLACE_WALL"
	case e.Type == TypeMove && e.How == "sow":
		return "results.SOW"
	case e.Type == TypeEOG && e.Reason != "":
		return "results.EOG_REASON"
	case e.Type == TypeWinners && len(e.Players) > 1:
		return "results.DRAW"
	}
	return "results." + strings.ToUpper(string(e.Type))
}

func (e Event) metadata(player string) map[string]string {
	players := make([]string, len(e.Players))
	for i, p := range e.Players {
		players[i] = strconv.Itoa(p)
	}
	return map[string]string{
		"player":  player,
		"where":   e.Where,
		"what":    e.What,
		"from":    e.From,
		"to":      e.To,
		"count":   strconv.Itoa(e.Count),
		"reason":  e.Reason,
		"players": strings.Join(players, ", "),
	}
}
