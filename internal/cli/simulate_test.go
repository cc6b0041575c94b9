package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/battleship-go/internal/model"
)

func TestRunSimulationsTalliesEveryGame(t *testing.T) {
	report, err := runSimulations(context.Background(), "hunter", "random", 4, 0, model.MatchConfig{BoardSize: 8})
	require.NoError(t, err)

	assert.Equal(t, 4, report.Games)
	assert.Equal(t, 8, report.BoardSize)
	assert.Equal(t, 4, report.WinsA+report.WinsB)
	// Both fleets have 14 cells, so nobody can win before their 14th shot
	assert.GreaterOrEqual(t, report.MinTurns, 27)
	assert.LessOrEqual(t, report.MinTurns, report.MaxTurns)
	assert.LessOrEqual(t, report.MaxTurns, 2*8*8)
}

func TestRunSimulationsIsReproducibleWithSeed(t *testing.T) {
	first, err := runSimulations(context.Background(), "hunter", "hunter", 3, 1234, model.MatchConfig{BoardSize: 10})
	require.NoError(t, err)
	second, err := runSimulations(context.Background(), "hunter", "hunter", 3, 1234, model.MatchConfig{BoardSize: 10})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRunSimulationsUnknownStrategy(t *testing.T) {
	_, err := runSimulations(context.Background(), "psychic", "random", 1, 0, model.MatchConfig{BoardSize: 10})
	assert.ErrorIs(t, err, model.ErrUnknownStrategy)
}

func TestRunSimulationsRejectsInvalidBoardSize(t *testing.T) {
	for _, size := range []int{-1, 0, 4, 51} {
		_, err := runSimulations(context.Background(), "hunter", "random", 1, 1, model.MatchConfig{BoardSize: size})
		assert.ErrorIs(t, err, model.ErrInvalidBoardSize, "board size %d", size)
	}
}
