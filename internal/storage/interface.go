package storage

import (
	"context"

	"github.com/mcoot/battleship-go/internal/model"
)

// Storage defines the interface for persisting users and completed-match statistics
type Storage interface {
	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)

	// Game stat operations. Records are append-only; AppendGameStat assigns
	// record.ID and fails with model.ErrUserNotFound for unknown users.
	AppendGameStat(ctx context.Context, record *model.StatRecord) error
	ListGameStats(ctx context.Context, userID model.UserID) ([]model.StatRecord, error)
}
