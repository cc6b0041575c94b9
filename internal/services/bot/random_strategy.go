package bot

import (
	"github.com/mcoot/battleship-go/internal/dependencies/random"
	"github.com/mcoot/battleship-go/internal/model"
)

// RandomStrategy fires at a random unknown coordinate every turn
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

// NextTarget picks a random coordinate the player has not yet fired at
func (s *RandomStrategy) NextTarget(grid *model.ObservationGrid) (model.Coordinate, error) {
	return huntTarget(s.random, grid)
}

// Observe is a no-op; the random strategy keeps no state
func (s *RandomStrategy) Observe(model.Coordinate, model.ShotResult) {}
