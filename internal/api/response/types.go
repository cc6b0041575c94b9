package response

import (
	"strings"
	"time"

	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/services/match"
)

// Cell symbols used when rendering grids as rows of text
const (
	SymbolUnknown = '.'
	SymbolShip    = 'S'
	SymbolHit     = 'X'
	SymbolMiss    = 'o'
)

// Coordinate represents a board position
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// CoordinateFromModel converts a model.Coordinate
func CoordinateFromModel(c model.Coordinate) Coordinate {
	return Coordinate{X: c.X, Y: c.Y}
}

// SunkShip identifies a ship sunk by a move
type SunkShip struct {
	ID   int    `json:"id"`
	Kind string `json:"kind"`
}

func sunkShipFromModel(s model.SunkShip) SunkShip {
	return SunkShip{ID: s.ID, Kind: string(s.Kind)}
}

// Move represents one resolved turn
type Move struct {
	Turn     int        `json:"turn"`
	PlayerID string     `json:"player_id"`
	Target   Coordinate `json:"target"`
	Outcome  string     `json:"outcome"`
	SunkShip *SunkShip  `json:"sunk_ship,omitempty"`
	GameOver bool       `json:"game_over"`
	Winner   string     `json:"winner,omitempty"`
}

// MoveFromModel converts a model.MoveOutcome
func MoveFromModel(m model.MoveOutcome) Move {
	resp := Move{
		Turn:     m.Turn,
		PlayerID: string(m.PlayerID),
		Target:   CoordinateFromModel(m.Target),
		Outcome:  string(m.Outcome),
		GameOver: m.GameOver,
		Winner:   string(m.Winner),
	}
	if m.SunkShip != nil {
		s := sunkShipFromModel(*m.SunkShip)
		resp.SunkShip = &s
	}
	return resp
}

// MovesFromModel converts a slice of moves, never returning nil
func MovesFromModel(moves []model.MoveOutcome) []Move {
	resp := make([]Move, len(moves))
	for i, m := range moves {
		resp[i] = MoveFromModel(m)
	}
	return resp
}

// Ship represents one of the viewer's own ships
type Ship struct {
	ID     int          `json:"id"`
	Kind   string       `json:"kind"`
	Coords []Coordinate `json:"coords"`
	Hits   int          `json:"hits"`
	Sunk   bool         `json:"sunk"`
}

// Match is a participant's view of a match. Grids are rows of cell symbols.
type Match struct {
	ID           string     `json:"id"`
	State        string     `json:"state"`
	BoardSize    int        `json:"board_size"`
	Turn         int        `json:"turn"`
	Viewer       string     `json:"viewer"`
	Opponent     string     `json:"opponent"`
	OpponentType string     `json:"opponent_type"`
	ActivePlayer string     `json:"active_player,omitempty"`
	Winner       string     `json:"winner,omitempty"`
	OwnBoard     []string   `json:"own_board"`
	Observations []string   `json:"observations"`
	Ships        []Ship     `json:"ships"`
	SunkEnemy    []SunkShip `json:"sunk_enemy"`
	Moves        []Move     `json:"moves"`
}

// MatchFromView converts a match.View
func MatchFromView(v match.View) Match {
	ships := make([]Ship, len(v.Ships))
	for i, s := range v.Ships {
		coords := make([]Coordinate, len(s.Coords))
		for j, c := range s.Coords {
			coords[j] = CoordinateFromModel(c)
		}
		ships[i] = Ship{ID: s.ID, Kind: string(s.Kind), Coords: coords, Hits: s.Hits, Sunk: s.Sunk}
	}

	sunk := make([]SunkShip, len(v.SunkEnemy))
	for i, s := range v.SunkEnemy {
		sunk[i] = sunkShipFromModel(s)
	}

	return Match{
		ID:           string(v.MatchID),
		State:        string(v.State),
		BoardSize:    v.BoardSize,
		Turn:         v.Turn,
		Viewer:       string(v.Viewer),
		Opponent:     string(v.Opponent),
		OpponentType: string(v.OpponentType),
		ActivePlayer: string(v.ActivePlayer),
		Winner:       string(v.Winner),
		OwnBoard:     renderRows(v.OwnBoard, cellSymbol),
		Observations: renderRows(v.Observations, observationSymbol),
		Ships:        ships,
		SunkEnemy:    sunk,
		Moves:        MovesFromModel(v.Moves),
	}
}

func renderRows[T any](grid [][]T, symbol func(T) rune) []string {
	rows := make([]string, len(grid))
	for y, row := range grid {
		var sb strings.Builder
		for _, cell := range row {
			sb.WriteRune(symbol(cell))
		}
		rows[y] = sb.String()
	}
	return rows
}

func cellSymbol(c model.CellState) rune {
	switch c {
	case model.CellShipUnknown:
		return SymbolShip
	case model.CellHit:
		return SymbolHit
	case model.CellMiss:
		return SymbolMiss
	default:
		return SymbolUnknown
	}
}

func observationSymbol(o model.Observation) rune {
	switch o {
	case model.ObservationHit:
		return SymbolHit
	case model.ObservationMiss:
		return SymbolMiss
	default:
		return SymbolUnknown
	}
}

// FireResponse is the response for firing at a coordinate
type FireResponse struct {
	Moves []Move `json:"moves"`
	Match Match  `json:"match"`
}

// FireResponseFromResult converts a match.FireResult
func FireResponseFromResult(r match.FireResult) FireResponse {
	return FireResponse{
		Moves: MovesFromModel(r.Moves),
		Match: MatchFromView(r.View),
	}
}

// Event is a match event as sent to websocket subscribers
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	MatchID   string    `json:"match_id"`
	PlayerID  string    `json:"player_id,omitempty"`
	Payload   any       `json:"payload,omitempty"`
}

// MatchStarted is the payload of a match_started event
type MatchStarted struct {
	Players     []string `json:"players"`
	BoardSize   int      `json:"board_size"`
	FirstPlayer string   `json:"first_player"`
}

// MatchOver is the payload of a match_over event
type MatchOver struct {
	Winner         string `json:"winner"`
	TotalTurns     int    `json:"total_turns"`
	VictoryMessage string `json:"victory_message,omitempty"`
}

// EventFromModel converts a model.Event and its payload
func EventFromModel(e model.Event) Event {
	resp := Event{
		Type:      string(e.Type),
		Timestamp: e.Timestamp,
		MatchID:   string(e.MatchID),
		PlayerID:  string(e.PlayerID),
	}

	switch p := e.Payload.(type) {
	case model.MatchStartedPayload:
		players := make([]string, len(p.Players))
		for i, id := range p.Players {
			players[i] = string(id)
		}
		resp.Payload = MatchStarted{Players: players, BoardSize: p.BoardSize, FirstPlayer: string(p.FirstPlayer)}
	case model.MoveResolvedPayload:
		resp.Payload = MoveFromModel(p.Move)
	case model.MatchOverPayload:
		resp.Payload = MatchOver{Winner: string(p.Winner), TotalTurns: p.TotalTurns, VictoryMessage: p.VictoryMessage}
	default:
		resp.Payload = p
	}
	return resp
}

// StatRecord is one recorded game
type StatRecord struct {
	MatchID     string    `json:"match_id"`
	Won         bool      `json:"won"`
	Winner      string    `json:"winner"`
	Hits        int       `json:"hits"`
	Misses      int       `json:"misses"`
	TotalTurns  int       `json:"total_turns"`
	ElapsedMs   int64     `json:"elapsed_ms"`
	PlayerTypes []string  `json:"player_types"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserStats is the response for a user's statistics
type UserStats struct {
	UserID       string       `json:"user_id"`
	Games        int          `json:"games"`
	Wins         int          `json:"wins"`
	Losses       int          `json:"losses"`
	Hits         int          `json:"hits"`
	Misses       int          `json:"misses"`
	Accuracy     float64      `json:"accuracy"`
	AverageTurns float64      `json:"average_turns"`
	Records      []StatRecord `json:"records"`
}

// UserStatsFromModel converts a summary and the records behind it
func UserStatsFromModel(s *model.UserStats, records []model.StatRecord) UserStats {
	resp := UserStats{
		UserID:       string(s.UserID),
		Games:        s.Games,
		Wins:         s.Wins,
		Losses:       s.Losses,
		Hits:         s.Hits,
		Misses:       s.Misses,
		Accuracy:     s.Accuracy,
		AverageTurns: s.AverageTurns,
		Records:      make([]StatRecord, len(records)),
	}
	for i, r := range records {
		types := make([]string, len(r.PlayerTypes))
		for j, t := range r.PlayerTypes {
			types[j] = string(t)
		}
		resp.Records[i] = StatRecord{
			MatchID:     string(r.MatchID),
			Won:         r.Won(),
			Winner:      string(r.Winner),
			Hits:        r.Hits,
			Misses:      r.Misses,
			TotalTurns:  r.TotalTurns,
			ElapsedMs:   r.Elapsed.Milliseconds(),
			PlayerTypes: types,
			CreatedAt:   r.CreatedAt,
		}
	}
	return resp
}

// Health reports server liveness and load
type Health struct {
	Status        string `json:"status"`
	ActiveMatches int    `json:"active_matches"`
	EventHubs     int    `json:"event_hubs"`
}

// Strategy describes an available bot strategy
type Strategy struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// Strategies lists every bot strategy
func Strategies() []Strategy {
	names := model.ValidBotStrategies()
	resp := make([]Strategy, len(names))
	for i, n := range names {
		resp[i] = Strategy{Name: n, DisplayName: model.BotStrategyDisplayName(n)}
	}
	return resp
}

// PlayerStat is one player's totals in a finished match
type PlayerStat struct {
	PlayerID  string `json:"player_id"`
	Archetype string `json:"archetype"`
	Hits      int    `json:"hits"`
	Misses    int    `json:"misses"`
}

// Simulation is the result of a bot-versus-bot match
type Simulation struct {
	MatchID    string       `json:"match_id"`
	Winner     string       `json:"winner"`
	TotalTurns int          `json:"total_turns"`
	Players    []PlayerStat `json:"players"`
}

// SimulationFromModel converts a model.GameStat
func SimulationFromModel(g model.GameStat) Simulation {
	players := make([]PlayerStat, len(g.Players))
	for i, p := range g.Players {
		players[i] = PlayerStat{
			PlayerID:  string(p.PlayerID),
			Archetype: string(p.Archetype),
			Hits:      p.Hits,
			Misses:    p.Misses,
		}
	}
	return Simulation{
		MatchID:    string(g.MatchID),
		Winner:     string(g.Winner),
		TotalTurns: g.TotalTurns,
		Players:    players,
	}
}
