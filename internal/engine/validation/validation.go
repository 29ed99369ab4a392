package validation

import (
	"strings"
	"unicode"

	apperrors "github.com/louisbranch/boardplay/internal/platform/errors"
	"github.com/louisbranch/boardplay/internal/platform/errors/i18n"
	"github.com/zyedidia/generic/mapset"
)

// Completeness reports how far a valid move has been built.
type Completeness int

const (
	// Empty input: show instructions.
	Empty Completeness = -1
	// Partial input: needs more clicks.
	Partial Completeness = 0
	// Complete input: ready to commit.
	Complete Completeness = 1
)

// Result is the outcome of validating one candidate.
type Result struct {
	Valid     bool           `json:"valid"`
	Message   string         `json:"message"`
	Complete  Completeness   `json:"complete"`
	CanRender bool           `json:"canrender,omitempty"`
	Code      apperrors.Code `json:"code,omitempty"`
	// Metadata keeps the template values of a rejected candidate.
	Metadata map[string]string `json:"-"`
}

// Check inspects a normalized candidate. Returning a user input error marks
// the candidate invalid; any other error aborts validation.
type Check func(move string) error

// Pipeline validates candidates for one game state.
type Pipeline struct {
	// Game prefixes the game-specific message keys, e.g. "sowing".
	Game   string
	Locale string
	// Parse, Bounds and Occupancy run in that order. Nil checks are skipped.
	Parse     Check
	Bounds    Check
	Occupancy Check
	// Partial reports whether a candidate that passed every check is a
	// prefix still waiting for input. Nil means no move is ever partial.
	Partial func(move string) (bool, error)
	// Moves generates the legal moves for the current player.
	Moves func() ([]string, error)
}

// Normalize lowercases a move and strips all whitespace, Unicode spaces and
// the byte order mark included.
func Normalize(move string) string {
	return strings.Join(strings.FieldsFunc(strings.ToLower(move), isSpace), "")
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// Validate classifies move. The returned error is set only for fatal
// conditions.
func (p Pipeline) Validate(move string) (Result, error) {
	move = Normalize(move)
	if move == "" {
		return Instructions(p.Locale, p.Game), nil
	}
	for _, check := range []Check{p.Parse, p.Bounds, p.Occupancy} {
		if check == nil {
			continue
		}
		if err := check(move); err != nil {
			return Reject(err, p.Locale)
		}
	}
	if p.Partial != nil {
		partial, err := p.Partial(move)
		if err != nil {
			return Reject(err, p.Locale)
		}
		if partial {
			return Result{
				Valid:     true,
				Complete:  Partial,
				CanRender: true,
				Message:   message(p.Locale, p.Game+".PARTIAL"),
			}, nil
		}
	}
	if p.Moves == nil {
		return Result{}, apperrors.New(apperrors.CodeFailsafe, "no move generator configured")
	}
	moves, err := p.Moves()
	if err != nil {
		return Result{}, err
	}
	legal := MoveSet(moves)
	if !legal.Has(move) {
		return Reject(apperrors.WithMetadata(apperrors.CodeNotInMoveList, "move is not generated for the current player", map[string]string{"move": move}), p.Locale)
	}
	return Ready(p.Locale), nil
}

// MoveSet indexes generated moves for membership checks.
func MoveSet(moves []string) mapset.Set[string] {
	set := mapset.New[string]()
	for _, m := range moves {
		set.Put(m)
	}
	return set
}

// Instructions is the result for empty input.
func Instructions(locale, game string) Result {
	return Result{
		Valid:     true,
		Complete:  Empty,
		CanRender: true,
		Message:   message(locale, game+".INITIAL_INSTRUCTIONS"),
	}
}

// Ready is the result for a complete legal move.
func Ready(locale string) Result {
	return Result{Valid: true, Complete: Complete, Message: message(locale, "_general.VALID_MOVE")}
}

// Reject converts a user input error into an invalid result. Fatal errors
// are returned unchanged.
func Reject(err error, locale string) (Result, error) {
	if !apperrors.IsUserFacing(err) {
		return Result{}, err
	}
	code := apperrors.GetCode(err)
	metadata := apperrors.GetMetadata(err)
	return Result{
		Valid:    false,
		Message:  i18n.GetCatalog(locale).Format(string(code), metadata),
		Code:     code,
		Metadata: metadata,
	}, nil
}

// Err converts an invalid result back into a user input error.
func (r Result) Err(move string) error {
	if r.Valid {
		return nil
	}
	code := r.Code
	if code == "" {
		code = apperrors.CodeValidationGeneral
	}
	metadata := map[string]string{"move": move, "reason": r.Message}
	for k, v := range r.Metadata {
		metadata[k] = v
	}
	return apperrors.WithMetadata(code, r.Message, metadata)
}

func message(locale, key string) string {
	catalog := i18n.GetNamespaceCatalog(locale, i18n.NamespaceValidation)
	if !catalog.Has(key) {
		key = "_general.DEFAULT_HANDLER"
	}
	return catalog.Format(key, nil)
}
