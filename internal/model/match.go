package model

import (
	"fmt"
	"strings"
	"time"
)

// MatchID uniquely identifies a match
type MatchID string

// PlayerID identifies a participant within a match
type PlayerID string

// Archetype labels the kind of player in a match, e.g. "human" or a strategy name
type Archetype string

// ArchetypeHuman is the archetype for players whose moves come from outside the engine
const ArchetypeHuman Archetype = "human"

// MatchState represents the current phase of a match
type MatchState string

const (
	MatchStateSetup      MatchState = "setup"       // Waiting for both fleets
	MatchStateInProgress MatchState = "in_progress" // Players taking turns
	MatchStateGameOver   MatchState = "game_over"   // One fleet fully sunk
)

// Board size limits. The carrier needs five cells.
const (
	MinBoardSize = 5
	MaxBoardSize = 50
)

// MatchConfig holds the rules for a match
type MatchConfig struct {
	BoardSize            int
	ExtraTurnOnHit       bool // The mover keeps the turn after a hit
	ClearTargetsOnSink   bool // Hunter bots drop pending candidates when a ship sinks
	ForbidAdjacentShips  bool
	RequireStandardFleet bool // Human layouts must be exactly the standard fleet
}

// DefaultMatchConfig returns the classic ruleset: 10x10, strict alternation
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		BoardSize:            10,
		RequireStandardFleet: true,
	}
}

// Validate checks the rules can be played
func (c MatchConfig) Validate() error {
	if c.BoardSize < MinBoardSize || c.BoardSize > MaxBoardSize {
		return fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidBoardSize, c.BoardSize, MinBoardSize, MaxBoardSize)
	}
	return nil
}

// SunkShip identifies a ship that was sunk by a move
type SunkShip struct {
	ID   int
	Kind ShipKind
}

// MoveOutcome describes one resolved turn
type MoveOutcome struct {
	Turn     int // 1-indexed
	PlayerID PlayerID
	Target   Coordinate
	Outcome  Outcome
	SunkShip *SunkShip
	GameOver bool
	Winner   PlayerID // Empty unless GameOver
}

// PlayerStat holds per-player totals for a finished match
type PlayerStat struct {
	PlayerID  PlayerID
	Archetype Archetype
	Hits      int
	Misses    int
}

// GameStat is the summary a match produces when it ends
type GameStat struct {
	MatchID    MatchID
	NumPlayers int
	TotalTurns int
	Players    []PlayerStat
	Winner     PlayerID
	Elapsed    time.Duration
}

// PlayerTypes returns the archetypes in seat order
func (g GameStat) PlayerTypes() []Archetype {
	types := make([]Archetype, len(g.Players))
	for i, p := range g.Players {
		types[i] = p.Archetype
	}
	return types
}

// For returns the stats of the given player
func (g GameStat) For(id PlayerID) (PlayerStat, bool) {
	for _, p := range g.Players {
		if p.PlayerID == id {
			return p, true
		}
	}
	return PlayerStat{}, false
}

// JoinPlayerTypes serialises archetypes as a comma-separated list
func JoinPlayerTypes(types []Archetype) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}

// SplitPlayerTypes is the inverse of JoinPlayerTypes
func SplitPlayerTypes(s string) []Archetype {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	types := make([]Archetype, len(parts))
	for i, p := range parts {
		types[i] = Archetype(strings.TrimSpace(p))
	}
	return types
}
