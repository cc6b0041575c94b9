package model

import "time"

// UserID is the externally issued identifier of a human user
type UserID string

// User is a human who has started at least one match
type User struct {
	ID        UserID
	Username  string
	CreatedAt time.Time
}

// StatRecord is one persisted game result from a user's point of view
type StatRecord struct {
	ID          int64 // Assigned by storage
	UserID      UserID
	MatchID     MatchID
	NumPlayers  int
	Hits        int
	Misses      int
	TotalTurns  int
	Elapsed     time.Duration
	Winner      PlayerID
	PlayerTypes []Archetype
	CreatedAt   time.Time
}

// Won returns true if the user won the recorded match
func (r StatRecord) Won() bool {
	return r.Winner == PlayerID(r.UserID)
}

// UserStats aggregates a user's stat records
type UserStats struct {
	UserID       UserID
	Games        int
	Wins         int
	Losses       int
	Hits         int
	Misses       int
	Accuracy     float64 // Hits / (Hits + Misses), 0 when no shots
	AverageTurns float64
}
