package model

import "errors"

// Common errors used across the application
var (
	// Board errors
	ErrOutOfBounds       = errors.New("coordinate is out of bounds")
	ErrAlreadyResolved   = errors.New("coordinate has already been fired upon")
	ErrPlacementConflict = errors.New("ship placement conflicts with the board")
	ErrInvalidShip       = errors.New("ship coordinates must form a straight contiguous line")

	// Observation errors
	ErrAlreadyObserved = errors.New("coordinate has already been observed")

	// Targeting errors
	ErrNoCandidates = errors.New("no unresolved coordinates remain")

	// Match errors
	ErrMatchNotFound    = errors.New("match not found")
	ErrIllegalMove      = errors.New("illegal move")
	ErrMatchNotStarted  = errors.New("match has not started")
	ErrMatchFinished    = errors.New("match is already finished")
	ErrMatchNotFinished = errors.New("match is not finished")
	ErrNotPlayerTurn    = errors.New("not this player's turn")
	ErrNotParticipant   = errors.New("player is not in this match")
	ErrAwaitingMove     = errors.New("player has not supplied a move")
	ErrAlreadyPlaced    = errors.New("player has already placed ships")
	ErrInvalidFleet     = errors.New("fleet does not match the required ship set")
	ErrUnknownStrategy  = errors.New("unknown bot strategy")
	ErrInvalidBoardSize = errors.New("board size is out of range")

	// User errors
	ErrUserNotFound = errors.New("user not found")
)
