package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	users  map[model.UserID]*model.User
	stats  map[model.UserID][]model.StatRecord
	nextID  int64
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users: make(map[model.UserID]*model.User),
		stats: make(map[model.UserID][]model.StatRecord),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := *user
	s.users[user.ID] = &u
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

// Game stat operations

func (s *Storage) AppendGameStat(ctx context.Context, record *model.StatRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[record.UserID]; !ok {
		return model.ErrUserNotFound
	}
	s.nextID++
	record.ID = s.nextID
	r := *record
	r.PlayerTypes = slices.Clone(record.PlayerTypes)
	s.stats[record.UserID] = append(s.stats[record.UserID], r)
	return nil
}

func (s *Storage) ListGameStats(ctx context.Context, userID model.UserID) ([]model.StatRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.stats[userID]), nil
}
