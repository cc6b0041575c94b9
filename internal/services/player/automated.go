package player

import (
	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/services/bot"
)

// Automated is a player driven by a targeting strategy
type Automated struct {
	seat
	archetype model.Archetype
	strategy  bot.Strategy
}

var _ Player = (*Automated)(nil)

// NewAutomated creates a bot player. archetype is normally the strategy name.
func NewAutomated(id model.PlayerID, cfg model.MatchConfig, archetype model.Archetype, strategy bot.Strategy) *Automated {
	return &Automated{
		seat:      newSeat(id, cfg),
		archetype: archetype,
		strategy:  strategy,
	}
}

// Archetype returns the strategy label
func (a *Automated) Archetype() model.Archetype {
	return a.archetype
}

// Strategy returns the player's targeting strategy
func (a *Automated) Strategy() bot.Strategy {
	return a.strategy
}

// ChooseMove asks the strategy for a target using only this player's observations
func (a *Automated) ChooseMove() (model.Coordinate, error) {
	return a.strategy.NextTarget(a.observations)
}

// RecordOutcome stores the result and forwards it to the strategy
func (a *Automated) RecordOutcome(target model.Coordinate, result model.ShotResult) error {
	if err := a.record(target, result); err != nil {
		return err
	}
	a.strategy.Observe(target, result)
	return nil
}
