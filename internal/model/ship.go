package model

import (
	"fmt"
	"slices"
)

// ShipKind names a class of ship
type ShipKind string

const (
	ShipCarrier   ShipKind = "carrier"
	ShipCruiser   ShipKind = "cruiser"
	ShipSubmarine ShipKind = "submarine"
	ShipDestroyer ShipKind = "destroyer"
	ShipCustom    ShipKind = "custom" // Any length, used for non-standard layouts
)

// Length returns the number of cells a ship of this kind occupies,
// or 0 for custom ships
func (k ShipKind) Length() int {
	switch k {
	case ShipCarrier:
		return 5
	case ShipCruiser:
		return 4
	case ShipSubmarine:
		return 3
	case ShipDestroyer:
		return 2
	default:
		return 0
	}
}

// Ship is a straight run of cells on a board with per-cell hit tracking
type Ship struct {
	ID     int
	Kind   ShipKind
	Coords []Coordinate // Sorted along the ship's axis
	hits   []bool
}

// NewShip validates the coordinates and builds an unhit ship.
// Coordinates may be supplied in any order along the line.
func NewShip(id int, kind ShipKind, coords []Coordinate) (*Ship, error) {
	if len(coords) == 0 {
		return nil, fmt.Errorf("%w: no coordinates", ErrInvalidShip)
	}
	if want := kind.Length(); want > 0 && len(coords) != want {
		return nil, fmt.Errorf("%w: %s needs %d cells, got %d", ErrInvalidShip, kind, want, len(coords))
	}

	sorted := slices.Clone(coords)
	slices.SortFunc(sorted, func(a, b Coordinate) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})

	horizontal := true
	vertical := true
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if cur == prev {
			return nil, fmt.Errorf("%w: duplicate coordinate %s", ErrInvalidShip, cur)
		}
		if cur.Y != prev.Y || cur.X != prev.X+1 {
			horizontal = false
		}
		if cur.X != prev.X || cur.Y != prev.Y+1 {
			vertical = false
		}
	}
	if !horizontal && !vertical {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShip, coords)
	}

	return &Ship{
		ID:     id,
		Kind:   kind,
		Coords: sorted,
		hits:   make([]bool, len(sorted)),
	}, nil
}

// Len returns the number of cells the ship occupies
func (s *Ship) Len() int {
	return len(s.Coords)
}

// index returns the position of c within the ship, or -1
func (s *Ship) index(c Coordinate) int {
	return slices.Index(s.Coords, c)
}

// Occupies reports whether the ship covers c
func (s *Ship) Occupies(c Coordinate) bool {
	return s.index(c) >= 0
}

// markHit records a hit on c and reports whether this hit sank the ship
func (s *Ship) markHit(c Coordinate) bool {
	i := s.index(c)
	if i < 0 || s.hits[i] {
		return false
	}
	s.hits[i] = true
	return s.IsSunk()
}

// IsHit reports whether the ship has been hit at c
func (s *Ship) IsHit(c Coordinate) bool {
	i := s.index(c)
	return i >= 0 && s.hits[i]
}

// HitCount returns the number of hit cells
func (s *Ship) HitCount() int {
	n := 0
	for _, h := range s.hits {
		if h {
			n++
		}
	}
	return n
}

// IsSunk returns true once every cell has been hit
func (s *Ship) IsSunk() bool {
	return s.HitCount() == len(s.hits)
}

// ShipPlacement describes a ship to be placed, as supplied by a caller
type ShipPlacement struct {
	ID     int
	Kind   ShipKind
	Coords []Coordinate
}

// Layout is a batch of ships placed together
type Layout []ShipPlacement
