package match

import (
	"slices"

	"github.com/mcoot/battleship-go/internal/model"
)

// ShipView is a player's own ship as shown to that player
type ShipView struct {
	ID     int
	Kind   model.ShipKind
	Coords []model.Coordinate
	Hits   int
	Sunk   bool
}

// View is one player's read-only picture of a match. It never exposes the
// opponent's ship positions.
type View struct {
	MatchID      model.MatchID
	State        model.MatchState
	BoardSize    int
	Turn         int
	Viewer       model.PlayerID
	Opponent     model.PlayerID
	OpponentType model.Archetype
	ActivePlayer model.PlayerID
	Winner       model.PlayerID

	OwnBoard     [][]model.CellState   // Row-major
	Observations [][]model.Observation // Row-major
	Ships        []ShipView
	SunkEnemy    []model.SunkShip
	Moves        []model.MoveOutcome
}

// Snapshot builds the view for one participant
func (m *Match) Snapshot(viewer model.PlayerID) (View, error) {
	self, err := m.Player(viewer)
	if err != nil {
		return View{}, err
	}
	opponent := m.players[0]
	if opponent.ID() == viewer {
		opponent = m.players[1]
	}

	size := m.Config.BoardSize
	own := make([][]model.CellState, size)
	obs := make([][]model.Observation, size)
	for y := 0; y < size; y++ {
		own[y] = make([]model.CellState, size)
		obs[y] = make([]model.Observation, size)
		for x := 0; x < size; x++ {
			c := model.Coordinate{X: x, Y: y}
			own[y][x] = self.Board().Cell(c)
			obs[y][x] = self.Observations().Get(c)
		}
	}

	ships := make([]ShipView, 0, len(self.Board().Ships()))
	for _, s := range self.Board().Ships() {
		ships = append(ships, ShipView{
			ID:     s.ID,
			Kind:   s.Kind,
			Coords: slices.Clone(s.Coords),
			Hits:   s.HitCount(),
			Sunk:   s.IsSunk(),
		})
	}

	var sunkEnemy []model.SunkShip
	for _, mv := range m.moves {
		if mv.PlayerID == viewer && mv.SunkShip != nil {
			sunkEnemy = append(sunkEnemy, *mv.SunkShip)
		}
	}

	v := View{
		MatchID:      m.ID,
		State:        m.State,
		BoardSize:    size,
		Turn:         m.turns,
		Viewer:       viewer,
		Opponent:     opponent.ID(),
		OpponentType: opponent.Archetype(),
		Winner:       m.winner,
		OwnBoard:     own,
		Observations: obs,
		Ships:        ships,
		SunkEnemy:    sunkEnemy,
		Moves:        m.Moves(),
	}
	if m.State == model.MatchStateInProgress {
		v.ActivePlayer = m.Active().ID()
	}
	return v, nil
}
