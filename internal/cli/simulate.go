package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/battleship-go/internal/factory"
	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/services/match"
)

func newSimulateCmd() *cobra.Command {
	var (
		strategyA string
		strategyB string
		games     int
		boardSize int
		adjacent  bool
		seed      uint64
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play bots against each other locally",
		Long: `Play bot-versus-bot matches in-process, without a server, and report
how often each strategy wins. Strategy A always moves first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if games < 1 {
				return errors.New("--games must be at least 1")
			}

			report, err := runSimulations(cmd.Context(), strategyA, strategyB, games, seed, model.MatchConfig{
				BoardSize:           boardSize,
				ForbidAdjacentShips: !adjacent,
			})
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(report)
			return nil
		},
	}

	cmd.Flags().StringVar(&strategyA, "a", model.BotStrategyHunter, "Strategy of the first player")
	cmd.Flags().StringVar(&strategyB, "b", model.BotStrategyRandom, "Strategy of the second player")
	cmd.Flags().IntVar(&games, "games", 100, "Number of games to play")
	cmd.Flags().IntVar(&boardSize, "board-size", 10, "Board size")
	cmd.Flags().BoolVar(&adjacent, "allow-adjacent", true, "Allow ships to touch")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for a reproducible run (0 picks a random one)")

	return cmd
}

func runSimulations(ctx context.Context, strategyA, strategyB string, games int, seed uint64, matchCfg model.MatchConfig) (SimulationReport, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := matchCfg.Validate(); err != nil {
		return SimulationReport{}, fmt.Errorf("--board-size: %w", err)
	}

	var logger *slog.Logger
	if cfg != nil && cfg.Verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	app, err := factory.New(factory.Config{Logger: logger, MatchConfig: matchCfg, RandomSeed: seed})
	if err != nil {
		return SimulationReport{}, err
	}
	defer func() { _ = app.Close() }()

	report := SimulationReport{
		StrategyA: strategyA,
		StrategyB: strategyB,
		BoardSize: matchCfg.BoardSize,
		Games:     games,
	}

	totalTurns := 0
	for i := range games {
		stat, err := app.MatchController.Simulate(ctx, match.SimulationRequest{
			StrategyA: strategyA,
			StrategyB: strategyB,
			Config:    matchCfg,
		})
		if err != nil {
			return SimulationReport{}, err
		}

		// Players are in turn order, so seat 0 is strategy A
		if stat.Winner == stat.Players[0].PlayerID {
			report.WinsA++
		} else {
			report.WinsB++
		}

		totalTurns += stat.TotalTurns
		if i == 0 || stat.TotalTurns < report.MinTurns {
			report.MinTurns = stat.TotalTurns
		}
		if stat.TotalTurns > report.MaxTurns {
			report.MaxTurns = stat.TotalTurns
		}
	}
	report.AverageTurns = float64(totalTurns) / float64(games)

	return report, nil
}
