package bot

import (
	"fmt"

	"github.com/mcoot/battleship-go/internal/dependencies/random"
	"github.com/mcoot/battleship-go/internal/model"
)

// Strategy decides where an automated player fires next.
// A Strategy carries per-match state and must not be shared between players.
type Strategy interface {
	// NextTarget selects the next coordinate to fire at using only the
	// player's own observations
	NextTarget(grid *model.ObservationGrid) (model.Coordinate, error)
	// Observe is called with the outcome of the last target returned by NextTarget
	Observe(target model.Coordinate, result model.ShotResult)
}

// Options configures a strategy built by New
type Options struct {
	BoardSize   int
	ClearOnSink bool
}

// New builds a fresh strategy by name
func New(name string, rnd random.Random, opts Options) (Strategy, error) {
	switch name {
	case model.BotStrategyHunter:
		return NewHunterStrategy(rnd, opts), nil
	case model.BotStrategyRandom:
		return NewRandomStrategy(rnd), nil
	default:
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownStrategy, name)
	}
}

// huntTarget picks uniformly among the grid's unknown coordinates
func huntTarget(rnd random.Random, grid *model.ObservationGrid) (model.Coordinate, error) {
	unresolved := grid.Unresolved()
	if len(unresolved) == 0 {
		return model.Coordinate{}, model.ErrNoCandidates
	}
	return unresolved[rnd.Intn(len(unresolved))], nil
}
