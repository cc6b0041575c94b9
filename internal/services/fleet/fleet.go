package fleet

import (
	"fmt"

	"github.com/mcoot/battleship-go/internal/dependencies/random"
	"github.com/mcoot/battleship-go/internal/model"
)

// Standard returns the classic fleet in identifier order
func Standard() []model.ShipKind {
	return []model.ShipKind{
		model.ShipCarrier,
		model.ShipCruiser,
		model.ShipSubmarine,
		model.ShipDestroyer,
	}
}

// Validate checks that the layout holds each kind exactly once, at the kind's
// length. Geometry is checked later, when the ships are placed.
func Validate(layout model.Layout, kinds []model.ShipKind) error {
	if len(layout) != len(kinds) {
		return fmt.Errorf("%w: expected %d ships, got %d", model.ErrInvalidFleet, len(kinds), len(layout))
	}

	want := make(map[model.ShipKind]int, len(kinds))
	for _, k := range kinds {
		want[k]++
	}
	ids := make(map[int]bool, len(layout))
	for _, p := range layout {
		if want[p.Kind] == 0 {
			return fmt.Errorf("%w: unexpected %s", model.ErrInvalidFleet, p.Kind)
		}
		want[p.Kind]--
		if l := p.Kind.Length(); l > 0 && len(p.Coords) != l {
			return fmt.Errorf("%w: %s must have %d cells", model.ErrInvalidFleet, p.Kind, l)
		}
		if ids[p.ID] {
			return fmt.Errorf("%w: duplicate ship identifier %d", model.ErrInvalidFleet, p.ID)
		}
		ids[p.ID] = true
	}
	return nil
}

// RandomLayout places the given kinds one after another, each at a uniformly
// chosen position among those still legal on the board
func RandomLayout(rnd random.Random, size int, kinds []model.ShipKind, forbidAdjacent bool) (model.Layout, error) {
	scratch := model.NewBoard(size)
	scratch.ForbidAdjacent = forbidAdjacent

	layout := make(model.Layout, 0, len(kinds))
	for id, kind := range kinds {
		options := legalPlacements(scratch, id, kind)
		if len(options) == 0 {
			return nil, fmt.Errorf("%w: no room for %s on a %dx%d board", model.ErrPlacementConflict, kind, size, size)
		}
		ship := options[rnd.Intn(len(options))]
		if err := scratch.Place(ship); err != nil {
			return nil, err
		}
		layout = append(layout, model.ShipPlacement{ID: id, Kind: kind, Coords: ship.Coords})
	}
	return layout, nil
}

// legalPlacements lists every horizontal then vertical position the ship
// could take on b, origins in row-major order
func legalPlacements(b *model.Board, id int, kind model.ShipKind) []*model.Ship {
	length := kind.Length()
	var options []*model.Ship
	for _, horizontal := range []bool{true, false} {
		for y := 0; y < b.Size; y++ {
			for x := 0; x < b.Size; x++ {
				coords := make([]model.Coordinate, length)
				for i := range coords {
					if horizontal {
						coords[i] = model.Coordinate{X: x + i, Y: y}
					} else {
						coords[i] = model.Coordinate{X: x, Y: y + i}
					}
				}
				if !fits(b, coords) {
					continue
				}
				ship, err := model.NewShip(id, kind, coords)
				if err != nil {
					continue
				}
				options = append(options, ship)
			}
		}
	}
	return options
}

// fits reports whether coords could be placed on b without conflict
func fits(b *model.Board, coords []model.Coordinate) bool {
	for _, c := range coords {
		if !c.InBounds(b.Size) || b.ShipAt(c) != nil {
			return false
		}
		if !b.ForbidAdjacent {
			continue
		}
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if b.ShipAt(model.Coordinate{X: c.X + dx, Y: c.Y + dy}) != nil {
					return false
				}
			}
		}
	}
	return true
}
