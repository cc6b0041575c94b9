package factory

import (
	"time"

	"github.com/mcoot/battleship-go/internal/dependencies/mocks"
	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/storage/memory"
	"github.com/mcoot/battleship-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	return NewTestAppWithConfig(model.DefaultMatchConfig())
}

// NewTestAppWithConfig creates a test App with the given match rules
func NewTestAppWithConfig(cfg model.MatchConfig) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, cfg, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// StandardLayout is a legal standard fleet for the default 10x10 board
func StandardLayout() model.Layout {
	return model.Layout{
		{ID: 0, Kind: model.ShipCarrier, Coords: []model.Coordinate{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}, {X: 4, Y: 0}}},
		{ID: 1, Kind: model.ShipCruiser, Coords: []model.Coordinate{{X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}, {X: 3, Y: 2}}},
		{ID: 2, Kind: model.ShipSubmarine, Coords: []model.Coordinate{{X: 9, Y: 0}, {X: 9, Y: 1}, {X: 9, Y: 2}}},
		{ID: 3, Kind: model.ShipDestroyer, Coords: []model.Coordinate{{X: 5, Y: 9}, {X: 6, Y: 9}}},
	}
}
