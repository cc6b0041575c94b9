package model

import "fmt"

// Observation is what a player knows about a cell on the opponent's board
type Observation int

const (
	ObservationUnknown Observation = iota
	ObservationHit
	ObservationMiss
)

func (o Observation) String() string {
	switch o {
	case ObservationHit:
		return "hit"
	case ObservationMiss:
		return "miss"
	default:
		return "unknown"
	}
}

// ObservationGrid records the outcomes of a player's own shots
type ObservationGrid struct {
	Size  int
	cells [][]Observation // Row-major: cells[y][x]
}

// NewObservationGrid creates a grid with every cell unknown
func NewObservationGrid(size int) *ObservationGrid {
	cells := make([][]Observation, size)
	for i := range cells {
		cells[i] = make([]Observation, size)
	}
	return &ObservationGrid{Size: size, cells: cells}
}

// Get returns the observation at c, or ObservationUnknown if c is off the grid
func (g *ObservationGrid) Get(c Coordinate) Observation {
	if !c.InBounds(g.Size) {
		return ObservationUnknown
	}
	return g.cells[c.Y][c.X]
}

// IsKnown returns true if c has a recorded outcome
func (g *ObservationGrid) IsKnown(c Coordinate) bool {
	return g.Get(c) != ObservationUnknown
}

// Record stores the outcome of a shot at c. Each cell is written at most once.
func (g *ObservationGrid) Record(c Coordinate, outcome Outcome) error {
	if !c.InBounds(g.Size) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, c)
	}
	if g.cells[c.Y][c.X] != ObservationUnknown {
		return fmt.Errorf("%w: %s", ErrAlreadyObserved, c)
	}
	if outcome == OutcomeHit {
		g.cells[c.Y][c.X] = ObservationHit
	} else {
		g.cells[c.Y][c.X] = ObservationMiss
	}
	return nil
}

// Unresolved lists every unknown coordinate in row-major order
func (g *ObservationGrid) Unresolved() []Coordinate {
	var coords []Coordinate
	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			if g.cells[y][x] == ObservationUnknown {
				coords = append(coords, Coordinate{X: x, Y: y})
			}
		}
	}
	return coords
}

// Count returns the number of cells holding the given observation
func (g *ObservationGrid) Count(o Observation) int {
	n := 0
	for _, row := range g.cells {
		for _, cell := range row {
			if cell == o {
				n++
			}
		}
	}
	return n
}
