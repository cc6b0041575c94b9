package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/battleship-go/internal/model"
)

func TestObservationGridRecord(t *testing.T) {
	grid := model.NewObservationGrid(3)
	c := model.Coordinate{X: 1, Y: 2}

	assert.Equal(t, model.ObservationUnknown, grid.Get(c))
	require.NoError(t, grid.Record(c, model.OutcomeHit))
	assert.Equal(t, model.ObservationHit, grid.Get(c))

	err := grid.Record(c, model.OutcomeMiss)
	assert.ErrorIs(t, err, model.ErrAlreadyObserved)
	assert.Equal(t, model.ObservationHit, grid.Get(c))

	assert.ErrorIs(t, grid.Record(model.Coordinate{X: 3, Y: 0}, model.OutcomeMiss), model.ErrOutOfBounds)
}

func TestObservationGridUnresolvedRowMajor(t *testing.T) {
	grid := model.NewObservationGrid(2)
	require.NoError(t, grid.Record(model.Coordinate{X: 1, Y: 0}, model.OutcomeMiss))

	assert.Equal(t, []model.Coordinate{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}, grid.Unresolved())
	assert.Equal(t, 1, grid.Count(model.ObservationMiss))
	assert.Equal(t, 0, grid.Count(model.ObservationHit))
	assert.Equal(t, 3, grid.Count(model.ObservationUnknown))
}
