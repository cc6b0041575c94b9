package match

import (
	"fmt"
	"slices"
	"time"

	"github.com/mcoot/battleship-go/internal/dependencies/clock"
	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/services/player"
)

// Match is the turn state machine for two players. It is not safe for
// concurrent use; the Controller serialises access per match.
type Match struct {
	ID     model.MatchID
	Config model.MatchConfig
	State  model.MatchState

	players [2]player.Player
	active  int
	turns   int
	winner  model.PlayerID
	moves   []model.MoveOutcome

	clock     clock.Clock
	createdAt time.Time
	startedAt time.Time
	endedAt   time.Time
}

// New creates a match in the setup state. first moves first.
func New(id model.MatchID, cfg model.MatchConfig, first, second player.Player, clk clock.Clock) *Match {
	return &Match{
		ID:        id,
		Config:    cfg,
		State:     model.MatchStateSetup,
		players:   [2]player.Player{first, second},
		clock:     clk,
		createdAt: clk.Now(),
	}
}

// Players returns both players in turn order
func (m *Match) Players() []player.Player {
	return m.players[:]
}

// Player looks up a participant by ID
func (m *Match) Player(id model.PlayerID) (player.Player, error) {
	for _, p := range m.players {
		if p.ID() == id {
			return p, nil
		}
	}
	return nil, model.ErrNotParticipant
}

// Active returns the player whose turn it is
func (m *Match) Active() player.Player {
	return m.players[m.active]
}

// Opponent returns the player waiting for their turn
func (m *Match) Opponent() player.Player {
	return m.players[1-m.active]
}

// Turns returns the number of resolved moves
func (m *Match) Turns() int {
	return m.turns
}

// Winner returns the winner's ID, or empty while the match is running
func (m *Match) Winner() model.PlayerID {
	return m.winner
}

// Moves returns the resolved moves in order
func (m *Match) Moves() []model.MoveOutcome {
	return slices.Clone(m.moves)
}

// PlaceShips applies a player's fleet. The match starts once both have placed.
func (m *Match) PlaceShips(id model.PlayerID, layout model.Layout) error {
	if m.State == model.MatchStateGameOver {
		return model.ErrMatchFinished
	}

	p, err := m.Player(id)
	if err != nil {
		return err
	}
	if err := p.PlaceShips(layout); err != nil {
		return err
	}

	if m.players[0].HasPlaced() && m.players[1].HasPlaced() {
		m.State = model.MatchStateInProgress
		m.startedAt = m.clock.Now()
	}
	return nil
}

// SubmitMove supplies a human player's move and plays the turn
func (m *Match) SubmitMove(id model.PlayerID, target model.Coordinate) (model.MoveOutcome, error) {
	if err := m.checkPlayable(); err != nil {
		return model.MoveOutcome{}, err
	}

	human, ok := m.Active().(*player.Human)
	if !ok || human.ID() != id {
		return model.MoveOutcome{}, model.ErrNotPlayerTurn
	}

	human.Supply(target)
	return m.PlayTurn()
}

// PlayTurn asks the active player for a move and applies it to the opponent's board.
// Nothing changes if the move is rejected.
func (m *Match) PlayTurn() (model.MoveOutcome, error) {
	if err := m.checkPlayable(); err != nil {
		return model.MoveOutcome{}, err
	}

	mover := m.Active()
	opponent := m.Opponent()

	target, err := mover.ChooseMove()
	if err != nil {
		return model.MoveOutcome{}, err
	}
	if err := m.validate(mover, opponent, target); err != nil {
		return model.MoveOutcome{}, err
	}

	result, err := opponent.Board().Resolve(target)
	if err != nil {
		return model.MoveOutcome{}, fmt.Errorf("%w: %w", model.ErrIllegalMove, err)
	}
	if err := mover.RecordOutcome(target, result); err != nil {
		return model.MoveOutcome{}, err
	}

	m.turns++
	outcome := model.MoveOutcome{
		Turn:     m.turns,
		PlayerID: mover.ID(),
		Target:   target,
		Outcome:  result.Outcome,
	}
	if result.Sunk != nil {
		outcome.SunkShip = &model.SunkShip{ID: result.Sunk.ID, Kind: result.Sunk.Kind}
	}

	switch {
	case opponent.Board().AllSunk():
		m.State = model.MatchStateGameOver
		m.winner = mover.ID()
		m.endedAt = m.clock.Now()
		outcome.GameOver = true
		outcome.Winner = mover.ID()
	case result.Outcome == model.OutcomeHit && m.Config.ExtraTurnOnHit:
		// Mover keeps the turn
	default:
		m.active = 1 - m.active
	}

	m.moves = append(m.moves, outcome)
	return outcome, nil
}

// Summary returns the game statistics of a finished match
func (m *Match) Summary() (model.GameStat, error) {
	if m.State != model.MatchStateGameOver {
		return model.GameStat{}, model.ErrMatchNotFinished
	}

	stats := make([]model.PlayerStat, len(m.players))
	for i, p := range m.players {
		obs := p.Observations()
		stats[i] = model.PlayerStat{
			PlayerID:  p.ID(),
			Archetype: p.Archetype(),
			Hits:      obs.Count(model.ObservationHit),
			Misses:    obs.Count(model.ObservationMiss),
		}
	}

	return model.GameStat{
		MatchID:    m.ID,
		NumPlayers: len(m.players),
		TotalTurns: m.turns,
		Players:    stats,
		Winner:     m.winner,
		Elapsed:    m.endedAt.Sub(m.startedAt),
	}, nil
}

func (m *Match) checkPlayable() error {
	switch m.State {
	case model.MatchStateSetup:
		return model.ErrMatchNotStarted
	case model.MatchStateGameOver:
		return model.ErrMatchFinished
	default:
		return nil
	}
}

func (m *Match) validate(mover, opponent player.Player, target model.Coordinate) error {
	if !target.InBounds(m.Config.BoardSize) {
		return fmt.Errorf("%w: %w: %s", model.ErrIllegalMove, model.ErrOutOfBounds, target)
	}
	if opponent.Board().IsResolved(target) || mover.Observations().IsKnown(target) {
		return fmt.Errorf("%w: %w: %s", model.ErrIllegalMove, model.ErrAlreadyResolved, target)
	}
	return nil
}
