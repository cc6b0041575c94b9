package model

import "fmt"

// CellState is the owner's view of a cell on their own board
type CellState int

const (
	CellEmpty       CellState = iota // Water, not fired upon
	CellShipUnknown                  // Ship present, not yet fired upon
	CellHit                          // Ship present, fired upon
	CellMiss                         // Water, fired upon
)

func (s CellState) String() string {
	switch s {
	case CellShipUnknown:
		return "ship"
	case CellHit:
		return "hit"
	case CellMiss:
		return "miss"
	default:
		return "empty"
	}
}

// Outcome is the result of firing at a cell
type Outcome string

const (
	OutcomeHit  Outcome = "hit"
	OutcomeMiss Outcome = "miss"
)

// ShotResult is returned by Board.Resolve. Sunk is only set on the shot
// that hit the last remaining cell of a ship.
type ShotResult struct {
	Outcome Outcome
	Sunk    *Ship
}

// Board is a player's own grid holding their fleet
type Board struct {
	Size           int
	ForbidAdjacent bool // Reject ships that touch another ship, diagonals included

	ships  []*Ship
	cells  [][]CellState // Row-major: cells[y][x]
	shipAt [][]*Ship
}

// NewBoard creates an empty board of the given size
func NewBoard(size int) *Board {
	cells := make([][]CellState, size)
	shipAt := make([][]*Ship, size)
	for i := range cells {
		cells[i] = make([]CellState, size)
		shipAt[i] = make([]*Ship, size)
	}
	return &Board{
		Size:   size,
		cells:  cells,
		shipAt: shipAt,
	}
}

// Place adds a ship to the board. On error the board is unchanged.
func (b *Board) Place(ship *Ship) error {
	for _, c := range ship.Coords {
		if !c.InBounds(b.Size) {
			return fmt.Errorf("%w: %s is off the board", ErrPlacementConflict, c)
		}
		if other := b.shipAt[c.Y][c.X]; other != nil {
			return fmt.Errorf("%w: %s overlaps ship %d", ErrPlacementConflict, c, other.ID)
		}
	}

	if b.ForbidAdjacent {
		for _, c := range ship.Coords {
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					n := Coordinate{X: c.X + dx, Y: c.Y + dy}
					if !n.InBounds(b.Size) {
						continue
					}
					if other := b.shipAt[n.Y][n.X]; other != nil {
						return fmt.Errorf("%w: %s touches ship %d", ErrPlacementConflict, c, other.ID)
					}
				}
			}
		}
	}

	for _, c := range ship.Coords {
		b.cells[c.Y][c.X] = CellShipUnknown
		b.shipAt[c.Y][c.X] = ship
	}
	b.ships = append(b.ships, ship)
	return nil
}

// Resolve fires at c and returns whether it hit, and which ship sank if any
func (b *Board) Resolve(c Coordinate) (ShotResult, error) {
	if !c.InBounds(b.Size) {
		return ShotResult{}, fmt.Errorf("%w: %s", ErrOutOfBounds, c)
	}

	switch b.cells[c.Y][c.X] {
	case CellHit, CellMiss:
		return ShotResult{}, fmt.Errorf("%w: %s", ErrAlreadyResolved, c)
	case CellShipUnknown:
		b.cells[c.Y][c.X] = CellHit
		ship := b.shipAt[c.Y][c.X]
		result := ShotResult{Outcome: OutcomeHit}
		if ship.markHit(c) {
			result.Sunk = ship
		}
		return result, nil
	default:
		b.cells[c.Y][c.X] = CellMiss
		return ShotResult{Outcome: OutcomeMiss}, nil
	}
}

// Cell returns the state at c, or CellEmpty if c is off the board
func (b *Board) Cell(c Coordinate) CellState {
	if !c.InBounds(b.Size) {
		return CellEmpty
	}
	return b.cells[c.Y][c.X]
}

// IsResolved returns true if c has already been fired upon
func (b *Board) IsResolved(c Coordinate) bool {
	s := b.Cell(c)
	return s == CellHit || s == CellMiss
}

// ShipAt returns the ship covering c, or nil
func (b *Board) ShipAt(c Coordinate) *Ship {
	if !c.InBounds(b.Size) {
		return nil
	}
	return b.shipAt[c.Y][c.X]
}

// Ships returns the placed ships in placement order
func (b *Board) Ships() []*Ship {
	return b.ships
}

// AllSunk returns true if at least one ship is placed and every ship is sunk
func (b *Board) AllSunk() bool {
	if len(b.ships) == 0 {
		return false
	}
	for _, s := range b.ships {
		if !s.IsSunk() {
			return false
		}
	}
	return true
}

// OccupiedCoordinates lists every cell covered by a ship, row-major
func (b *Board) OccupiedCoordinates() []Coordinate {
	var coords []Coordinate
	for y := 0; y < b.Size; y++ {
		for x := 0; x < b.Size; x++ {
			if b.shipAt[y][x] != nil {
				coords = append(coords, Coordinate{X: x, Y: y})
			}
		}
	}
	return coords
}
