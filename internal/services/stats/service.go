package stats

import (
	"context"
	"log/slog"

	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/storage"
)

// Service summarises users' recorded game statistics
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new stats Service
func New(store storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		logger:  logger.With(slog.String("component", "stats-service")),
	}
}

// ForUser returns the user's aggregate stats and the records they were built from
func (s *Service) ForUser(ctx context.Context, userID model.UserID) (*model.UserStats, []model.StatRecord, error) {
	if _, err := s.storage.GetUser(ctx, userID); err != nil {
		return nil, nil, err
	}

	records, err := s.storage.ListGameStats(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list game stats",
			slog.String("user_id", string(userID)),
			slog.String("error", err.Error()),
		)
		return nil, nil, err
	}

	summary := Summarize(userID, records)
	return &summary, records, nil
}

// Summarize aggregates a user's records
func Summarize(userID model.UserID, records []model.StatRecord) model.UserStats {
	result := model.UserStats{UserID: userID}

	totalTurns := 0
	for _, r := range records {
		result.Games++
		if r.Won() {
			result.Wins++
		} else {
			result.Losses++
		}
		result.Hits += r.Hits
		result.Misses += r.Misses
		totalTurns += r.TotalTurns
	}

	if shots := result.Hits + result.Misses; shots > 0 {
		result.Accuracy = float64(result.Hits) / float64(shots)
	}
	if result.Games > 0 {
		result.AverageTurns = float64(totalTurns) / float64(result.Games)
	}
	return result
}
