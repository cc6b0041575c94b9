package player

import (
	"fmt"

	"github.com/mcoot/battleship-go/internal/model"
)

// Player is one side of a match. Both implementations share a seat: their own
// board and their observations of the opponent.
type Player interface {
	ID() model.PlayerID
	Archetype() model.Archetype
	Board() *model.Board
	Observations() *model.ObservationGrid
	HasPlaced() bool

	// PlaceShips applies the whole layout or nothing
	PlaceShips(layout model.Layout) error
	// RecordOutcome stores the result of this player's own shot
	RecordOutcome(target model.Coordinate, result model.ShotResult) error
	// ChooseMove returns the next coordinate to fire at
	ChooseMove() (model.Coordinate, error)
}

// seat holds the state common to every player
type seat struct {
	id             model.PlayerID
	size           int
	forbidAdjacent bool
	board          *model.Board
	observations   *model.ObservationGrid
	placed         bool
}

func newSeat(id model.PlayerID, cfg model.MatchConfig) seat {
	board := model.NewBoard(cfg.BoardSize)
	board.ForbidAdjacent = cfg.ForbidAdjacentShips
	return seat{
		id:             id,
		size:           cfg.BoardSize,
		forbidAdjacent: cfg.ForbidAdjacentShips,
		board:          board,
		observations:   model.NewObservationGrid(cfg.BoardSize),
	}
}

// ID returns the player's identifier
func (s *seat) ID() model.PlayerID {
	return s.id
}

// Board returns the player's own board
func (s *seat) Board() *model.Board {
	return s.board
}

// Observations returns what the player knows about the opponent's board
func (s *seat) Observations() *model.ObservationGrid {
	return s.observations
}

// HasPlaced returns true once a layout has been applied
func (s *seat) HasPlaced() bool {
	return s.placed
}

// PlaceShips builds the layout on a fresh board and only swaps it in when
// every ship is placed
func (s *seat) PlaceShips(layout model.Layout) error {
	if s.placed {
		return model.ErrAlreadyPlaced
	}

	board := model.NewBoard(s.size)
	board.ForbidAdjacent = s.forbidAdjacent
	for _, p := range layout {
		ship, err := model.NewShip(p.ID, p.Kind, p.Coords)
		if err != nil {
			return fmt.Errorf("ship %d: %w", p.ID, err)
		}
		if err := board.Place(ship); err != nil {
			return fmt.Errorf("ship %d: %w", p.ID, err)
		}
	}

	s.board = board
	s.placed = true
	return nil
}

func (s *seat) record(target model.Coordinate, result model.ShotResult) error {
	return s.observations.Record(target, result.Outcome)
}
