package player

import "github.com/mcoot/battleship-go/internal/model"

// Human is a player whose moves are supplied from outside the engine
type Human struct {
	seat
	pending *model.Coordinate
}

var _ Player = (*Human)(nil)

// NewHuman creates a human player with an empty board
func NewHuman(id model.PlayerID, cfg model.MatchConfig) *Human {
	return &Human{seat: newSeat(id, cfg)}
}

// Archetype returns ArchetypeHuman
func (h *Human) Archetype() model.Archetype {
	return model.ArchetypeHuman
}

// Supply sets the move returned by the next ChooseMove call
func (h *Human) Supply(target model.Coordinate) {
	h.pending = &target
}

// ChooseMove returns and clears the supplied move
func (h *Human) ChooseMove() (model.Coordinate, error) {
	if h.pending == nil {
		return model.Coordinate{}, model.ErrAwaitingMove
	}
	target := *h.pending
	h.pending = nil
	return target, nil
}

// RecordOutcome stores the result of the human's shot
func (h *Human) RecordOutcome(target model.Coordinate, result model.ShotResult) error {
	return h.record(target, result)
}
