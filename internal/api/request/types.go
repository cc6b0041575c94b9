package request

import "github.com/mcoot/battleship-go/internal/model"

// Coordinate is a board position in a request body
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ToModel converts to a model.Coordinate
func (c Coordinate) ToModel() model.Coordinate {
	return model.Coordinate{X: c.X, Y: c.Y}
}

// Ship is one ship of a requested fleet layout
type Ship struct {
	Identifier int          `json:"identifier"`
	Kind       string       `json:"kind"`
	Spaces     []Coordinate `json:"spaces"`
}

// CreateMatchRequest is the request body for creating a match
type CreateMatchRequest struct {
	UserName       string `json:"user_name,omitempty"`
	VictoryMessage string `json:"victory_message,omitempty"`
	Opponent       string `json:"opponent,omitempty"`
	AutoPlace      bool   `json:"auto_place,omitempty"`
	Ships          []Ship `json:"ships,omitempty"`
}

// Layout converts the requested ships to a model.Layout
func (r CreateMatchRequest) Layout() model.Layout {
	layout := make(model.Layout, len(r.Ships))
	for i, s := range r.Ships {
		coords := make([]model.Coordinate, len(s.Spaces))
		for j, c := range s.Spaces {
			coords[j] = c.ToModel()
		}
		layout[i] = model.ShipPlacement{ID: s.Identifier, Kind: model.ShipKind(s.Kind), Coords: coords}
	}
	return layout
}

// FireRequest is the request body for firing at a coordinate
type FireRequest = Coordinate

// SimulationRequest is the request body for a bot-versus-bot simulation
type SimulationRequest struct {
	StrategyA string `json:"strategy_a"`
	StrategyB string `json:"strategy_b"`
	BoardSize int    `json:"board_size,omitempty"`
}
