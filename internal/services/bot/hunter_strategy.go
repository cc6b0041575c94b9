package bot

import (
	"slices"

	"github.com/mcoot/battleship-go/internal/dependencies/random"
	"github.com/mcoot/battleship-go/internal/model"
)

// HunterStrategy hunts at random until it scores a hit, then works through
// the hit's neighbours, most recent first.
//
// Candidates are not deduplicated when pushed and survive a sink unless
// ClearOnSink is set. Stale candidates are skipped when popped.
type HunterStrategy struct {
	random      random.Random
	boardSize   int
	clearOnSink bool
	targets     targetStack
}

// NewHunterStrategy creates a HunterStrategy with an empty candidate stack
func NewHunterStrategy(rnd random.Random, opts Options) *HunterStrategy {
	return &HunterStrategy{
		random:      rnd,
		boardSize:   opts.BoardSize,
		clearOnSink: opts.ClearOnSink,
	}
}

// NextTarget pops the most recent candidate that is still unknown,
// falling back to a random hunt when none remain
func (s *HunterStrategy) NextTarget(grid *model.ObservationGrid) (model.Coordinate, error) {
	for {
		c, ok := s.targets.pop()
		if !ok {
			break
		}
		if c.InBounds(grid.Size) && !grid.IsKnown(c) {
			return c, nil
		}
	}
	return huntTarget(s.random, grid)
}

// Observe pushes the in-bounds neighbours of a hit. Misses leave the stack unchanged.
func (s *HunterStrategy) Observe(target model.Coordinate, result model.ShotResult) {
	if result.Outcome != model.OutcomeHit {
		return
	}
	if result.Sunk != nil && s.clearOnSink {
		s.targets.clear()
		return
	}
	for _, n := range target.Neighbors() {
		if n.InBounds(s.boardSize) {
			s.targets.push(n)
		}
	}
}

// Pending returns the candidate stack from bottom to top
func (s *HunterStrategy) Pending() []model.Coordinate {
	return slices.Clone(s.targets.items)
}

// PendingCount returns the number of queued candidates
func (s *HunterStrategy) PendingCount() int {
	return s.targets.len()
}
