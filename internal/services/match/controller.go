package match

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/battleship-go/internal/dependencies/clock"
	"github.com/mcoot/battleship-go/internal/dependencies/random"
	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/services/bot"
	"github.com/mcoot/battleship-go/internal/services/fleet"
	"github.com/mcoot/battleship-go/internal/services/player"
	"github.com/mcoot/battleship-go/internal/storage"
)

const (
	// MatchIDAlphabet is the character set for generating match IDs
	MatchIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// MatchIDLength is the length of generated match IDs
	MatchIDLength = 12
	// PlayerIDAlphabet is the character set for generating bot player IDs
	PlayerIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	// PlayerIDLength is the length of generated bot player IDs
	PlayerIDLength = 16
	// MaxBotIterations is a safety limit for the bot turn loop
	MaxBotIterations = 1000
)

// Publisher receives match events
type Publisher interface {
	Publish(event model.Event)
}

// CreateRequest describes a new human-versus-bot match
type CreateRequest struct {
	UserID         model.UserID
	Username       string
	VictoryMessage string // Sent with match_over when the human wins
	Opponent       string // Bot strategy name, defaults to hunter
	Layout         model.Layout
	AutoPlace      bool // Ignore Layout and place the human's fleet at random
}

// FireResult is the outcome of a human move and the bot replies it triggered
type FireResult struct {
	Moves []model.MoveOutcome
	View  View
}

// SimulationRequest describes a headless bot-versus-bot match
type SimulationRequest struct {
	StrategyA string // Moves first, defaults to hunter
	StrategyB string // Defaults to random
	Config    model.MatchConfig
}

type session struct {
	mu             sync.Mutex
	match          *Match
	userID         model.UserID
	human          *player.Human
	victoryMessage string
	finishedAt     time.Time // Zero while the match is being played
}

// Controller hosts concurrent matches. Each match is guarded by its own lock.
type Controller struct {
	storage   storage.Storage
	publisher Publisher
	config    model.MatchConfig
	clock     clock.Clock
	random    random.Random
	logger    *slog.Logger

	mu       sync.RWMutex
	sessions map[model.MatchID]*session
}

// NewController creates a new match Controller. publisher may be nil.
func NewController(
	store storage.Storage,
	publisher Publisher,
	cfg model.MatchConfig,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:   store,
		publisher: publisher,
		config:    cfg,
		clock:     clk,
		random:    rnd,
		logger:    logger.With(slog.String("component", "match-controller")),
		sessions:  make(map[model.MatchID]*session),
	}
}

// Config returns the default rules applied to new matches
func (c *Controller) Config() model.MatchConfig {
	return c.config
}

// CreateMatch sets up a match between the user and a bot and places both fleets
func (c *Controller) CreateMatch(ctx context.Context, req CreateRequest) (View, error) {
	strategyName := req.Opponent
	if strategyName == "" {
		strategyName = model.BotStrategyHunter
	}
	if !model.IsValidBotStrategy(strategyName) {
		return View{}, fmt.Errorf("%w: %s", model.ErrUnknownStrategy, strategyName)
	}

	cfg := c.config
	layout := req.Layout
	if req.AutoPlace {
		var err error
		layout, err = fleet.RandomLayout(c.random, cfg.BoardSize, fleet.Standard(), cfg.ForbidAdjacentShips)
		if err != nil {
			return View{}, err
		}
	} else if cfg.RequireStandardFleet {
		if err := fleet.Validate(layout, fleet.Standard()); err != nil {
			return View{}, err
		}
	}

	human := player.NewHuman(model.PlayerID(req.UserID), cfg)
	opponent, err := c.newBot(strategyName, cfg)
	if err != nil {
		return View{}, err
	}

	m := New(c.newMatchID(), cfg, human, opponent, c.clock)
	if err := m.PlaceShips(human.ID(), layout); err != nil {
		return View{}, err
	}
	if err := c.placeRandomFleet(m, opponent); err != nil {
		return View{}, err
	}

	// Nothing is stored until both fleets are on the board
	if err := c.ensureUser(ctx, req.UserID, req.Username); err != nil {
		return View{}, err
	}

	c.mu.Lock()
	c.sessions[m.ID] = &session{
		match:          m,
		userID:         req.UserID,
		human:          human,
		victoryMessage: req.VictoryMessage,
	}
	c.mu.Unlock()

	c.logger.Info("match created",
		slog.String("match_id", string(m.ID)),
		slog.String("user_id", string(req.UserID)),
		slog.String("opponent", strategyName),
		slog.Int("board_size", cfg.BoardSize),
	)

	c.publish(model.Event{
		Type:      model.EventMatchStarted,
		Timestamp: c.clock.Now(),
		MatchID:   m.ID,
		PlayerID:  human.ID(),
		Payload: model.MatchStartedPayload{
			Players:     []model.PlayerID{human.ID(), opponent.ID()},
			BoardSize:   cfg.BoardSize,
			FirstPlayer: m.Active().ID(),
		},
	})

	return m.Snapshot(human.ID())
}

// GetMatch returns the user's view of a match
func (c *Controller) GetMatch(ctx context.Context, matchID model.MatchID, userID model.UserID) (View, error) {
	sess, err := c.session(matchID)
	if err != nil {
		return View{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.userID != userID {
		return View{}, model.ErrNotParticipant
	}
	return sess.match.Snapshot(sess.human.ID())
}

// Fire plays the user's move and then every bot turn that follows it
func (c *Controller) Fire(ctx context.Context, matchID model.MatchID, userID model.UserID, target model.Coordinate) (FireResult, error) {
	sess, err := c.session(matchID)
	if err != nil {
		return FireResult{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.userID != userID {
		return FireResult{}, model.ErrNotParticipant
	}

	m := sess.match
	outcome, err := m.SubmitMove(sess.human.ID(), target)
	if err != nil {
		return FireResult{}, err
	}
	c.publishMove(m.ID, outcome)

	moves := []model.MoveOutcome{outcome}
	botMoves, err := c.runBots(ctx, m)
	moves = append(moves, botMoves...)
	if err != nil {
		return FireResult{}, err
	}

	if m.State == model.MatchStateGameOver {
		c.finish(ctx, sess)
	}

	view, err := m.Snapshot(sess.human.ID())
	if err != nil {
		return FireResult{}, err
	}
	return FireResult{Moves: moves, View: view}, nil
}

// Simulate plays two bots against each other to completion without
// registering the match or recording statistics
func (c *Controller) Simulate(ctx context.Context, req SimulationRequest) (model.GameStat, error) {
	cfg := req.Config
	if cfg.BoardSize == 0 {
		cfg.BoardSize = c.config.BoardSize
	}
	if err := cfg.Validate(); err != nil {
		return model.GameStat{}, err
	}
	if req.StrategyA == "" {
		req.StrategyA = model.BotStrategyHunter
	}
	if req.StrategyB == "" {
		req.StrategyB = model.BotStrategyRandom
	}

	a, err := c.newBot(req.StrategyA, cfg)
	if err != nil {
		return model.GameStat{}, err
	}
	b, err := c.newBot(req.StrategyB, cfg)
	if err != nil {
		return model.GameStat{}, err
	}

	m := New(c.newMatchID(), cfg, a, b, c.clock)
	if err := c.placeRandomFleet(m, a); err != nil {
		return model.GameStat{}, err
	}
	if err := c.placeRandomFleet(m, b); err != nil {
		return model.GameStat{}, err
	}

	// Every cell of both boards can be fired at once
	limit := 2 * cfg.BoardSize * cfg.BoardSize
	for range limit {
		if m.State == model.MatchStateGameOver {
			break
		}
		if err := ctx.Err(); err != nil {
			return model.GameStat{}, err
		}
		if _, err := m.PlayTurn(); err != nil {
			c.logTurnError(m.ID, err)
			return model.GameStat{}, err
		}
	}

	stat, err := m.Summary()
	if err != nil {
		return model.GameStat{}, err
	}

	c.logger.Debug("simulation finished",
		slog.String("match_id", string(m.ID)),
		slog.String("winner", string(stat.Winner)),
		slog.Int("turns", stat.TotalTurns),
	)
	return stat, nil
}

// ActiveMatches returns the number of hosted matches still being played
func (c *Controller) ActiveMatches() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	active := 0
	for _, sess := range c.sessions {
		sess.mu.Lock()
		if sess.finishedAt.IsZero() {
			active++
		}
		sess.mu.Unlock()
	}
	return active
}

// PruneFinished forgets matches that ended at least retention ago. Until
// then a finished match can still be viewed.
func (c *Controller) PruneFinished(retention time.Duration) int {
	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	pruned := 0
	for id, sess := range c.sessions {
		sess.mu.Lock()
		expired := !sess.finishedAt.IsZero() && now.Sub(sess.finishedAt) >= retention
		sess.mu.Unlock()
		if expired {
			delete(c.sessions, id)
			pruned++
		}
	}
	if pruned > 0 {
		c.logger.Info("finished matches pruned", slog.Int("pruned", pruned))
	}
	return pruned
}

func (c *Controller) session(id model.MatchID) (*session, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	sess, ok := c.sessions[id]
	if !ok {
		return nil, model.ErrMatchNotFound
	}
	return sess, nil
}

// runBots plays automated turns until a human is due or the match ends
func (c *Controller) runBots(ctx context.Context, m *Match) ([]model.MoveOutcome, error) {
	var moves []model.MoveOutcome

	for range MaxBotIterations {
		if m.State != model.MatchStateInProgress {
			break
		}
		if _, ok := m.Active().(*player.Automated); !ok {
			break
		}
		if err := ctx.Err(); err != nil {
			return moves, err
		}

		outcome, err := m.PlayTurn()
		if err != nil {
			c.logTurnError(m.ID, err)
			return moves, err
		}
		c.publishMove(m.ID, outcome)
		moves = append(moves, outcome)
	}

	return moves, nil
}

// finish records the user's statistics and announces the result
func (c *Controller) finish(ctx context.Context, sess *session) {
	m := sess.match
	sess.finishedAt = c.clock.Now()
	stat, err := m.Summary()
	if err != nil {
		c.logger.Error("failed to summarise match",
			slog.String("match_id", string(m.ID)),
			slog.String("error", err.Error()),
		)
		return
	}

	own, _ := stat.For(sess.human.ID())
	record := &model.StatRecord{
		UserID:      sess.userID,
		MatchID:     m.ID,
		NumPlayers:  stat.NumPlayers,
		Hits:        own.Hits,
		Misses:      own.Misses,
		TotalTurns:  stat.TotalTurns,
		Elapsed:     stat.Elapsed,
		Winner:      stat.Winner,
		PlayerTypes: stat.PlayerTypes(),
		CreatedAt:   c.clock.Now(),
	}
	if err := c.storage.AppendGameStat(ctx, record); err != nil {
		c.logger.Error("failed to record game stat",
			slog.String("match_id", string(m.ID)),
			slog.String("user_id", string(sess.userID)),
			slog.String("error", err.Error()),
		)
	}

	payload := model.MatchOverPayload{
		Winner:     stat.Winner,
		TotalTurns: stat.TotalTurns,
	}
	if stat.Winner == sess.human.ID() {
		payload.VictoryMessage = sess.victoryMessage
	}
	c.publish(model.Event{
		Type:      model.EventMatchOver,
		Timestamp: c.clock.Now(),
		MatchID:   m.ID,
		PlayerID:  stat.Winner,
		Payload:   payload,
	})

	c.logger.Info("match finished",
		slog.String("match_id", string(m.ID)),
		slog.String("winner", string(stat.Winner)),
		slog.Int("turns", stat.TotalTurns),
		slog.Duration("elapsed", stat.Elapsed),
	)
}

func (c *Controller) ensureUser(ctx context.Context, id model.UserID, username string) error {
	user, err := c.storage.GetUser(ctx, id)
	switch {
	case errors.Is(err, model.ErrUserNotFound):
		if username == "" {
			username = string(id)
		}
		user = &model.User{ID: id, Username: username, CreatedAt: c.clock.Now()}
	case err != nil:
		return err
	case username == "" || user.Username == username:
		return nil
	default:
		user.Username = username
	}
	return c.storage.SaveUser(ctx, user)
}

func (c *Controller) newBot(strategyName string, cfg model.MatchConfig) (*player.Automated, error) {
	strategy, err := bot.New(strategyName, c.random, bot.Options{
		BoardSize:   cfg.BoardSize,
		ClearOnSink: cfg.ClearTargetsOnSink,
	})
	if err != nil {
		return nil, err
	}
	id := model.PlayerID("bot-" + c.random.String(PlayerIDLength, PlayerIDAlphabet))
	return player.NewAutomated(id, cfg, model.Archetype(strategyName), strategy), nil
}

func (c *Controller) placeRandomFleet(m *Match, p player.Player) error {
	layout, err := fleet.RandomLayout(c.random, m.Config.BoardSize, fleet.Standard(), m.Config.ForbidAdjacentShips)
	if err != nil {
		return err
	}
	return m.PlaceShips(p.ID(), layout)
}

func (c *Controller) newMatchID() model.MatchID {
	return model.MatchID(c.random.String(MatchIDLength, MatchIDAlphabet))
}

func (c *Controller) publishMove(id model.MatchID, outcome model.MoveOutcome) {
	c.publish(model.Event{
		Type:      model.EventMoveResolved,
		Timestamp: c.clock.Now(),
		MatchID:   id,
		PlayerID:  outcome.PlayerID,
		Payload:   model.MoveResolvedPayload{Move: outcome},
	})
}

func (c *Controller) publish(event model.Event) {
	if c.publisher != nil {
		c.publisher.Publish(event)
	}
}

func (c *Controller) logTurnError(id model.MatchID, err error) {
	if errors.Is(err, model.ErrNoCandidates) {
		c.logger.Error("bot has no target left in a running match",
			slog.String("match_id", string(id)),
			slog.String("error", err.Error()),
		)
		return
	}
	c.logger.Warn("turn rejected",
		slog.String("match_id", string(id)),
		slog.String("error", err.Error()),
	)
}
