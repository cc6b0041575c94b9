package bot_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/battleship-go/internal/dependencies/mocks"
	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/services/bot"
)

type HunterStrategySuite struct {
	suite.Suite
	mockRandom *mocks.MockRandom
	strategy   *bot.HunterStrategy
	grid       *model.ObservationGrid
}

func TestHunterStrategySuite(t *testing.T) {
	suite.Run(t, new(HunterStrategySuite))
}

func (s *HunterStrategySuite) SetupTest() {
	s.mockRandom = mocks.NewMockRandom()
	s.strategy = bot.NewHunterStrategy(s.mockRandom, bot.Options{BoardSize: 10})
	s.grid = model.NewObservationGrid(10)
}

// fire asks the strategy for a target and feeds back the given result
func (s *HunterStrategySuite) fire(result model.ShotResult) model.Coordinate {
	target, err := s.strategy.NextTarget(s.grid)
	s.Require().NoError(err)
	s.Require().NoError(s.grid.Record(target, result.Outcome))
	s.strategy.Observe(target, result)
	return target
}

func (s *HunterStrategySuite) TestHuntPicksFromUnresolvedRowMajor() {
	// (3,2) is index 23 in row-major order on a 10x10 grid
	s.mockRandom.QueueIntn(23)

	target, err := s.strategy.NextTarget(s.grid)
	s.Require().NoError(err)
	s.Equal(model.Coordinate{X: 3, Y: 2}, target)
}

func (s *HunterStrategySuite) TestHuntSkipsObservedCells() {
	s.Require().NoError(s.grid.Record(model.Coordinate{X: 0, Y: 0}, model.OutcomeMiss))
	s.Require().NoError(s.grid.Record(model.Coordinate{X: 1, Y: 0}, model.OutcomeMiss))
	// Index 0 is now (2,0)
	s.mockRandom.QueueIntn(0)

	target, err := s.strategy.NextTarget(s.grid)
	s.Require().NoError(err)
	s.Equal(model.Coordinate{X: 2, Y: 0}, target)
	// The pick is uniform over the 98 cells still unknown
	s.Equal([]int{98}, s.mockRandom.IntnBounds)
}

func (s *HunterStrategySuite) TestHuntNeverPicksKnownCell() {
	small := model.NewObservationGrid(2)
	strategy := bot.NewHunterStrategy(s.mockRandom, bot.Options{BoardSize: 2})
	s.Require().NoError(small.Record(model.Coordinate{X: 0, Y: 0}, model.OutcomeMiss))
	s.Require().NoError(small.Record(model.Coordinate{X: 1, Y: 0}, model.OutcomeMiss))
	s.Require().NoError(small.Record(model.Coordinate{X: 0, Y: 1}, model.OutcomeMiss))

	target, err := strategy.NextTarget(small)
	s.Require().NoError(err)
	s.Equal(model.Coordinate{X: 1, Y: 1}, target)
}

func (s *HunterStrategySuite) TestHitPushesNeighboursAndTargetsThemNext() {
	s.mockRandom.QueueIntn(23)
	hit := s.fire(model.ShotResult{Outcome: model.OutcomeHit})
	s.Equal(model.Coordinate{X: 3, Y: 2}, hit)

	expected := []model.Coordinate{
		{X: 2, Y: 2}, {X: 4, Y: 2}, {X: 3, Y: 1}, {X: 3, Y: 3},
	}
	s.ElementsMatch(expected, s.strategy.Pending())

	// No random value is queued: a hunt pick would return index 0, i.e. (0,0)
	next, err := s.strategy.NextTarget(s.grid)
	s.Require().NoError(err)
	s.Contains(expected, next)
}

func (s *HunterStrategySuite) TestMostRecentCandidateFirst() {
	s.mockRandom.QueueIntn(23)
	s.fire(model.ShotResult{Outcome: model.OutcomeHit})

	pending := s.strategy.Pending()
	next, err := s.strategy.NextTarget(s.grid)
	s.Require().NoError(err)
	s.Equal(pending[len(pending)-1], next)
}

func (s *HunterStrategySuite) TestMissLeavesStackUnchanged() {
	s.mockRandom.QueueIntn(23)
	s.fire(model.ShotResult{Outcome: model.OutcomeHit})
	before := s.strategy.Pending()

	s.strategy.Observe(model.Coordinate{X: 9, Y: 9}, model.ShotResult{Outcome: model.OutcomeMiss})
	s.Equal(before, s.strategy.Pending())
}

func (s *HunterStrategySuite) TestCornerHitFiltersOutOfBounds() {
	s.strategy.Observe(model.Coordinate{X: 0, Y: 0}, model.ShotResult{Outcome: model.OutcomeHit})
	s.ElementsMatch([]model.Coordinate{{X: 0, Y: 1}, {X: 1, Y: 0}}, s.strategy.Pending())
}

func (s *HunterStrategySuite) TestDuplicateAndStaleCandidatesAreSkipped() {
	// Two adjacent hits push overlapping neighbourhoods
	s.Require().NoError(s.grid.Record(model.Coordinate{X: 3, Y: 2}, model.OutcomeHit))
	s.strategy.Observe(model.Coordinate{X: 3, Y: 2}, model.ShotResult{Outcome: model.OutcomeHit})
	s.Require().NoError(s.grid.Record(model.Coordinate{X: 4, Y: 2}, model.OutcomeHit))
	s.strategy.Observe(model.Coordinate{X: 4, Y: 2}, model.ShotResult{Outcome: model.OutcomeHit})
	s.Equal(8, s.strategy.PendingCount())

	seen := map[model.Coordinate]bool{}
	for s.strategy.PendingCount() > 0 {
		target, err := s.strategy.NextTarget(s.grid)
		s.Require().NoError(err)
		s.False(s.grid.IsKnown(target), "picked known cell %s", target)
		s.False(seen[target], "picked %s twice", target)
		seen[target] = true
		s.Require().NoError(s.grid.Record(target, model.OutcomeMiss))
	}
	// (2,2) (5,2) (3,1) (3,3) (4,1) (4,3): the repeated (3,2) and (4,2) were skipped
	s.Len(seen, 6)
}

func (s *HunterStrategySuite) TestSinkKeepsCandidatesByDefault() {
	ship, err := model.NewShip(0, model.ShipCustom, []model.Coordinate{{X: 5, Y: 5}})
	s.Require().NoError(err)
	s.strategy.Observe(model.Coordinate{X: 5, Y: 5}, model.ShotResult{Outcome: model.OutcomeHit, Sunk: ship})
	s.Equal(4, s.strategy.PendingCount())
}

func (s *HunterStrategySuite) TestClearOnSinkEmptiesStack() {
	strategy := bot.NewHunterStrategy(s.mockRandom, bot.Options{BoardSize: 10, ClearOnSink: true})
	strategy.Observe(model.Coordinate{X: 3, Y: 2}, model.ShotResult{Outcome: model.OutcomeHit})
	s.Equal(4, strategy.PendingCount())

	ship, err := model.NewShip(0, model.ShipDestroyer, []model.Coordinate{{X: 3, Y: 2}, {X: 4, Y: 2}})
	s.Require().NoError(err)
	strategy.Observe(model.Coordinate{X: 4, Y: 2}, model.ShotResult{Outcome: model.OutcomeHit, Sunk: ship})
	s.Equal(0, strategy.PendingCount())
}

func (s *HunterStrategySuite) TestNoCandidatesWhenGridFull() {
	small := model.NewObservationGrid(1)
	s.Require().NoError(small.Record(model.Coordinate{X: 0, Y: 0}, model.OutcomeMiss))

	_, err := s.strategy.NextTarget(small)
	s.ErrorIs(err, model.ErrNoCandidates)
}

type RandomStrategySuite struct {
	suite.Suite
	mockRandom *mocks.MockRandom
	strategy   *bot.RandomStrategy
}

func TestRandomStrategySuite(t *testing.T) {
	suite.Run(t, new(RandomStrategySuite))
}

func (s *RandomStrategySuite) SetupTest() {
	s.mockRandom = mocks.NewMockRandom()
	s.strategy = bot.NewRandomStrategy(s.mockRandom)
}

func (s *RandomStrategySuite) TestIgnoresHits() {
	grid := model.NewObservationGrid(3)
	s.Require().NoError(grid.Record(model.Coordinate{X: 1, Y: 1}, model.OutcomeHit))
	s.strategy.Observe(model.Coordinate{X: 1, Y: 1}, model.ShotResult{Outcome: model.OutcomeHit})

	// 8 unknown cells remain; index 7 is (2,2)
	s.mockRandom.QueueIntn(7)
	target, err := s.strategy.NextTarget(grid)
	s.Require().NoError(err)
	s.Equal(model.Coordinate{X: 2, Y: 2}, target)
}

func TestNew(t *testing.T) {
	rnd := mocks.NewMockRandom()

	hunter, err := bot.New(model.BotStrategyHunter, rnd, bot.Options{BoardSize: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := hunter.(*bot.HunterStrategy); !ok {
		t.Errorf("expected *HunterStrategy, got %T", hunter)
	}

	random, err := bot.New(model.BotStrategyRandom, rnd, bot.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := random.(*bot.RandomStrategy); !ok {
		t.Errorf("expected *RandomStrategy, got %T", random)
	}

	if _, err := bot.New("psychic", rnd, bot.Options{}); err == nil {
		t.Error("expected error for unknown strategy")
	}
}
