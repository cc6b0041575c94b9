package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/battleship-go/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeOutOfBounds       = "OUT_OF_BOUNDS"
	CodeAlreadyResolved   = "ALREADY_RESOLVED"
	CodeIllegalMove       = "ILLEGAL_MOVE"
	CodePlacementConflict = "PLACEMENT_CONFLICT"
	CodeInvalidFleet      = "INVALID_FLEET"
	CodeMatchNotFound     = "MATCH_NOT_FOUND"
	CodeMatchNotStarted   = "MATCH_NOT_STARTED"
	CodeMatchFinished     = "MATCH_FINISHED"
	CodeNotYourTurn       = "NOT_YOUR_TURN"
	CodeNotParticipant    = "NOT_PARTICIPANT"
	CodeAlreadyPlaced     = "ALREADY_PLACED"
	CodeUnknownStrategy   = "UNKNOWN_STRATEGY"
	CodeUserNotFound      = "USER_NOT_FOUND"
	CodeInternalError     = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// The specific move errors come before ErrIllegalMove, which wraps them
	switch {
	case errors.Is(err, model.ErrOutOfBounds):
		return &httpError{http.StatusBadRequest, APIError{CodeOutOfBounds, "Coordinate is off the board"}}
	case errors.Is(err, model.ErrAlreadyResolved), errors.Is(err, model.ErrAlreadyObserved):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyResolved, "Coordinate has already been fired at"}}
	case errors.Is(err, model.ErrIllegalMove):
		return &httpError{http.StatusBadRequest, APIError{CodeIllegalMove, "Illegal move"}}
	case errors.Is(err, model.ErrPlacementConflict), errors.Is(err, model.ErrInvalidShip):
		return &httpError{http.StatusBadRequest, APIError{CodePlacementConflict, err.Error()}}
	case errors.Is(err, model.ErrInvalidFleet):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidFleet, err.Error()}}
	case errors.Is(err, model.ErrInvalidBoardSize):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, err.Error()}}
	case errors.Is(err, model.ErrUnknownStrategy):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownStrategy, err.Error()}}
	case errors.Is(err, model.ErrMatchNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMatchNotFound, "Match not found"}}
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeUserNotFound, "User not found"}}
	case errors.Is(err, model.ErrNotParticipant):
		return &httpError{http.StatusForbidden, APIError{CodeNotParticipant, "Not a participant in this match"}}
	case errors.Is(err, model.ErrNotPlayerTurn), errors.Is(err, model.ErrAwaitingMove):
		return &httpError{http.StatusConflict, APIError{CodeNotYourTurn, "Not your turn"}}
	case errors.Is(err, model.ErrMatchNotStarted):
		return &httpError{http.StatusConflict, APIError{CodeMatchNotStarted, "Match has not started"}}
	case errors.Is(err, model.ErrMatchFinished), errors.Is(err, model.ErrMatchNotFinished):
		return &httpError{http.StatusConflict, APIError{CodeMatchFinished, "Match is over"}}
	case errors.Is(err, model.ErrAlreadyPlaced):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyPlaced, "Fleet already placed"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "X-User-ID header required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
