package handler

import (
	"net/http"

	"github.com/mcoot/battleship-go/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest    = apierr.CodeInvalidRequest
	CodeUnauthorized      = apierr.CodeUnauthorized
	CodeOutOfBounds       = apierr.CodeOutOfBounds
	CodeAlreadyResolved   = apierr.CodeAlreadyResolved
	CodeIllegalMove       = apierr.CodeIllegalMove
	CodePlacementConflict = apierr.CodePlacementConflict
	CodeInvalidFleet      = apierr.CodeInvalidFleet
	CodeMatchNotFound     = apierr.CodeMatchNotFound
	CodeMatchNotStarted   = apierr.CodeMatchNotStarted
	CodeMatchFinished     = apierr.CodeMatchFinished
	CodeNotYourTurn       = apierr.CodeNotYourTurn
	CodeNotParticipant    = apierr.CodeNotParticipant
	CodeAlreadyPlaced     = apierr.CodeAlreadyPlaced
	CodeUnknownStrategy   = apierr.CodeUnknownStrategy
	CodeUserNotFound      = apierr.CodeUserNotFound
	CodeInternalError     = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}
