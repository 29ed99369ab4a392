// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Move input errors
	CodeInvalidCell       Code = "INVALID_CELL"
	CodeOccupied          Code = "OCCUPIED"
	CodeNotPlaceable      Code = "NOT_PLACEABLE"
	CodeNotInMoveList     Code = "NOT_IN_MOVE_LIST"
	CodeMovesGameOver     Code = "MOVES_GAMEOVER"
	CodeIncompleteMove    Code = "INCOMPLETE_MOVE"
	CodeInvalidClick      Code = "INVALID_CLICK"
	CodeValidationGeneral Code = "VALIDATION_GENERAL"

	// Sowing errors
	CodeEmptyPit    Code = "EMPTY_PIT"
	CodeNotYourPit  Code = "NOT_YOUR_PIT"
	CodeNotAdjacent Code = "NOT_ADJACENT"

	// Consistency errors
	CodeFailsafe             Code = "FAILSAFE"
	CodeUnknownNode          Code = "UNKNOWN_NODE"
	CodeTopologyInconsistent Code = "TOPOLOGY_INCONSISTENT"
	CodeIndexOutOfRange      Code = "INDEX_OUT_OF_RANGE"
	CodeWrongGame            Code = "WRONG_GAME"
	CodeUnknownGame          Code = "UNKNOWN_GAME"
	CodeInvalidBoardSize     Code = "INVALID_BOARD_SIZE"

	// State errors
	CodeMalformedState Code = "MALFORMED_STATE"
)

// Kind groups codes by how callers must react to them.
type Kind int

const (
	// KindUserInput errors are recoverable and shown to the player.
	KindUserInput Kind = iota
	// KindInternal errors indicate a bug; the operation aborts.
	KindInternal
	// KindMalformedState errors indicate a document that cannot be rebuilt.
	KindMalformedState
)

func (k Kind) String() string {
	switch k {
	case KindUserInput:
		return "user_input"
	case KindInternal:
		return "internal"
	case KindMalformedState:
		return "malformed_state"
	default:
		return "unknown"
	}
}

// Kind classifies the code. Unknown codes are internal.
func (c Code) Kind() Kind {
	switch c {
	case CodeInvalidCell,
		CodeOccupied,
		CodeNotPlaceable,
		CodeNotInMoveList,
		CodeMovesGameOver,
		CodeIncompleteMove,
		CodeInvalidClick,
		CodeValidationGeneral,
		CodeEmptyPit,
		CodeNotYourPit,
		CodeNotAdjacent:
		return KindUserInput
	case CodeMalformedState:
		return KindMalformedState
	default:
		return KindInternal
	}
}

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - malformed or illegal move input
	case CodeInvalidCell,
		CodeOccupied,
		CodeNotPlaceable,
		CodeNotInMoveList,
		CodeIncompleteMove,
		CodeInvalidClick,
		CodeValidationGeneral,
		CodeEmptyPit,
		CodeNotYourPit,
		CodeNotAdjacent:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow operation
	case CodeMovesGameOver:
		return codes.FailedPrecondition

	// NotFound - no such game implementation
	case CodeUnknownGame:
		return codes.NotFound

	// DataLoss - stored document cannot be reconstructed
	case CodeMalformedState:
		return codes.DataLoss

	default:
		return codes.Internal
	}
}
