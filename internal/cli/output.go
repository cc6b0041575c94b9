package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to stdout
func NewOutput(format string) *Output {
	return &Output{format: format, w: os.Stdout}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Match:
		o.printMatch(v)
	case FireResult:
		o.printFireResult(v)
	case UserStats:
		o.printUserStats(v)
	case []Strategy:
		o.printStrategies(v)
	case SimulationReport:
		o.printSimulationReport(v)
	case Event:
		o.printEvent(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Coordinate response type (matches API)
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// SunkShip response type
type SunkShip struct {
	ID   int    `json:"id"`
	Kind string `json:"kind"`
}

// Move response type
type Move struct {
	Turn     int        `json:"turn"`
	PlayerID string     `json:"player_id"`
	Target   Coordinate `json:"target"`
	Outcome  string     `json:"outcome"`
	SunkShip *SunkShip  `json:"sunk_ship,omitempty"`
	GameOver bool       `json:"game_over"`
	Winner   string     `json:"winner,omitempty"`
}

// Ship response type
type Ship struct {
	ID     int          `json:"id"`
	Kind   string       `json:"kind"`
	Coords []Coordinate `json:"coords"`
	Hits   int          `json:"hits"`
	Sunk   bool         `json:"sunk"`
}

// Match response type
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

// FireResult response type
type FireResult struct {
	Moves []Move `json:"moves"`
	Match Match  `json:"match"`
}

// StatRecord response type
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

// UserStats response type
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

// Strategy response type
type Strategy struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// Event is a match event received over the websocket
type Event struct {
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	MatchID   string          `json:"match_id"`
	PlayerID  string          `json:"player_id,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// SimulationReport summarises a batch of local bot-versus-bot games
type SimulationReport struct {
	StrategyA    string  `json:"strategy_a"`
	StrategyB    string  `json:"strategy_b"`
	BoardSize    int     `json:"board_size"`
	Games        int     `json:"games"`
	WinsA        int     `json:"wins_a"`
	WinsB        int     `json:"wins_b"`
	AverageTurns float64 `json:"average_turns"`
	MinTurns     int     `json:"min_turns"`
	MaxTurns     int     `json:"max_turns"`
}

// HealthResult response type
type HealthResult struct {
	Status        string `json:"status"`
	ActiveMatches int    `json:"active_matches"`
	EventHubs     int    `json:"event_hubs"`
	LatencyMs     int64  `json:"latency_ms"`
}

func (o *Output) printMatch(m Match) {
	fmt.Fprintf(o.w, "Match: %s\n", m.ID)
	fmt.Fprintf(o.w, "State: %s\n", m.State)
	fmt.Fprintf(o.w, "Turn: %d\n", m.Turn)
	fmt.Fprintf(o.w, "Opponent: %s (%s)\n", m.Opponent, m.OpponentType)

	if m.ActivePlayer != "" {
		if m.ActivePlayer == m.Viewer {
			fmt.Fprintln(o.w, "Your move")
		} else {
			fmt.Fprintf(o.w, "Waiting for: %s\n", m.ActivePlayer)
		}
	}
	if m.Winner != "" {
		fmt.Fprintf(o.w, "Winner: %s\n", m.Winner)
	}

	fmt.Fprintln(o.w, "\nYour Fleet:")
	o.printGrid(m.OwnBoard)
	for _, s := range m.Ships {
		status := fmt.Sprintf("%d/%d hit", s.Hits, len(s.Coords))
		if s.Sunk {
			status = "sunk"
		}
		fmt.Fprintf(o.w, "  - %s #%d: %s\n", s.Kind, s.ID, status)
	}

	fmt.Fprintln(o.w, "\nYour Shots:")
	o.printGrid(m.Observations)
	if len(m.SunkEnemy) > 0 {
		kinds := make([]string, len(m.SunkEnemy))
		for i, s := range m.SunkEnemy {
			kinds[i] = s.Kind
		}
		fmt.Fprintf(o.w, "  Sunk: %s\n", strings.Join(kinds, ", "))
	}
}

// printGrid prints rows of cell symbols with column and row headers
func (o *Output) printGrid(rows []string) {
	size := len(rows)
	if size == 0 {
		return
	}

	// Print column headers
	fmt.Fprint(o.w, "    ")
	for col := 0; col < size; col++ {
		fmt.Fprintf(o.w, "%2d ", col)
	}
	fmt.Fprintln(o.w)

	// Print top border
	fmt.Fprint(o.w, "   +")
	fmt.Fprint(o.w, strings.Repeat("---", size))
	fmt.Fprintln(o.w, "+")

	// Print rows
	for row, cells := range rows {
		fmt.Fprintf(o.w, "%2d |", row)
		for _, cell := range cells {
			fmt.Fprintf(o.w, " %c ", cell)
		}
		fmt.Fprintln(o.w, "|")
	}

	// Print bottom border
	fmt.Fprint(o.w, "   +")
	fmt.Fprint(o.w, strings.Repeat("---", size))
	fmt.Fprintln(o.w, "+")
}

func (o *Output) printMove(m Move) {
	line := fmt.Sprintf("Turn %d: %s fired at %s: %s", m.Turn, m.PlayerID, m.Target, m.Outcome)
	if m.SunkShip != nil {
		line += fmt.Sprintf(" (sunk %s)", m.SunkShip.Kind)
	}
	fmt.Fprintln(o.w, line)
	if m.GameOver {
		fmt.Fprintf(o.w, "Game over! Winner: %s\n", m.Winner)
	}
}

func (o *Output) printFireResult(r FireResult) {
	for _, m := range r.Moves {
		o.printMove(m)
	}
	fmt.Fprintln(o.w)
	o.printMatch(r.Match)
}

func (o *Output) printUserStats(s UserStats) {
	fmt.Fprintf(o.w, "User: %s\n", s.UserID)
	fmt.Fprintf(o.w, "Games: %d (won %d, lost %d)\n", s.Games, s.Wins, s.Losses)
	fmt.Fprintf(o.w, "Shots: %d hits, %d misses (%.1f%% accuracy)\n", s.Hits, s.Misses, s.Accuracy*100)
	fmt.Fprintf(o.w, "Average turns: %.1f\n", s.AverageTurns)

	if len(s.Records) > 0 {
		fmt.Fprintln(o.w, "\nRecent games:")
		for _, r := range s.Records {
			result := "lost"
			if r.Won {
				result = "won"
			}
			fmt.Fprintf(o.w, "  %s  %s  %s in %d turns (%s)\n",
				r.CreatedAt.Format("2006-01-02 15:04"), r.MatchID, result, r.TotalTurns,
				strings.Join(r.PlayerTypes, " vs "))
		}
	}
}

func (o *Output) printStrategies(strategies []Strategy) {
	for _, s := range strategies {
		fmt.Fprintf(o.w, "%-10s %s\n", s.Name, s.DisplayName)
	}
}

func (o *Output) printSimulationReport(r SimulationReport) {
	fmt.Fprintf(o.w, "%s vs %s on a %dx%d board, %d games\n", r.StrategyA, r.StrategyB, r.BoardSize, r.BoardSize, r.Games)
	fmt.Fprintf(o.w, "  %s wins: %d\n", r.StrategyA, r.WinsA)
	fmt.Fprintf(o.w, "  %s wins: %d\n", r.StrategyB, r.WinsB)
	fmt.Fprintf(o.w, "  Turns: avg %.1f, min %d, max %d\n", r.AverageTurns, r.MinTurns, r.MaxTurns)
}

func (o *Output) printEvent(e Event) {
	timestamp := e.Timestamp.Format("2006-01-02 15:04:05")
	switch e.Type {
	case "move_resolved":
		var m Move
		if err := json.Unmarshal(e.Payload, &m); err == nil {
			fmt.Fprintf(o.w, "[%s] ", timestamp)
			o.printMove(m)
			return
		}
	case "match_over":
		var over struct {
			Winner         string `json:"winner"`
			TotalTurns     int    `json:"total_turns"`
			VictoryMessage string `json:"victory_message"`
		}
		if err := json.Unmarshal(e.Payload, &over); err == nil {
			fmt.Fprintf(o.w, "[%s] match over: %s won in %d turns\n", timestamp, over.Winner, over.TotalTurns)
			if over.VictoryMessage != "" {
				fmt.Fprintf(o.w, "  %q\n", over.VictoryMessage)
			}
			return
		}
	}
	fmt.Fprintf(o.w, "[%s] %s %s\n", timestamp, e.Type, string(e.Payload))
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Fprintf(o.w, "Status: %s (%dms)\n", h.Status, h.LatencyMs)
	fmt.Fprintf(o.w, "Active matches: %d\n", h.ActiveMatches)
	fmt.Fprintf(o.w, "Watched matches: %d\n", h.EventHubs)
}
