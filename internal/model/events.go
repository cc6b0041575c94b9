package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventMatchStarted EventType = "match_started"
	EventMoveResolved EventType = "move_resolved"
	EventMatchOver    EventType = "match_over"
)

// Event is the base structure for all events
type Event struct {
	Type      EventType
	Timestamp time.Time
	MatchID   MatchID
	PlayerID  PlayerID // The player who triggered the event, empty for match-level events
	Payload   any      // Type-specific data
}

// MatchStartedPayload contains data for match started events
type MatchStartedPayload struct {
	Players     []PlayerID
	BoardSize   int
	FirstPlayer PlayerID
}

// MoveResolvedPayload contains data for move resolved events
type MoveResolvedPayload struct {
	Move MoveOutcome
}

// MatchOverPayload contains data for match over events
type MatchOverPayload struct {
	Winner         PlayerID
	TotalTurns     int
	VictoryMessage string // Only set when the human won
}
