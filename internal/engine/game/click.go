package game

import (
	"strconv"

	"github.com/louisbranch/boardplay/internal/engine/validation"
	apperrors "github.com/louisbranch/boardplay/internal/platform/errors"
)

// Translator turns a click into a candidate move. It returns a user input
// error when the click cannot form a candidate.
type Translator func(click Click) (string, error)

// HandleClick translates click and validates the candidate. Invalid
// candidates clear the pending move; translation failures keep it and carry
// the click parameters in the message. Fatal errors are returned.
func HandleClick(click Click, locale string, translate Translator, validate func(string) (validation.Result, error)) (ClickResult, error) {
	candidate, err := translate(click)
	if err != nil {
		if !apperrors.IsUserFacing(err) {
			return ClickResult{}, err
		}
		res, rejectErr := validation.Reject(withClick(err, click), locale)
		if rejectErr != nil {
			return ClickResult{}, rejectErr
		}
		return ClickResult{Move: click.Move, Result: res}, nil
	}
	res, err := validate(candidate)
	if err != nil {
		return ClickResult{}, err
	}
	out := ClickResult{Result: res}
	if res.Valid {
		out.Move = validation.Normalize(candidate)
	}
	return out, nil
}

// InvalidClick builds the user input error for a click that addresses
// nothing the game understands.
func InvalidClick(click Click, reason string) error {
	return apperrors.WithMetadata(apperrors.CodeInvalidClick, "click does not address a move", map[string]string{"reason": reason})
}

func withClick(err error, click Click) error {
	metadata := map[string]string{
		"move":  click.Move,
		"row":   strconv.Itoa(click.Row),
		"col":   strconv.Itoa(click.Col),
		"piece": click.Piece,
	}
	for k, v := range apperrors.GetMetadata(err) {
		metadata[k] = v
	}
	code := apperrors.GetCode(err)
	return apperrors.WrapWithMetadata(code, err.Error(), metadata, err)
}
