package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/battleship-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.StatsTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// User tests

func (s *StorageSuite) TestSaveAndGetUser() {
	user := &model.User{
		ID:        "user-1",
		Username:  "alice",
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	err := s.storage.SaveUser(s.ctx, user)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetUser(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(user.Username, retrieved.Username)
	s.True(user.CreatedAt.Equal(retrieved.CreatedAt))
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)
}

// Game stat tests

func (s *StorageSuite) TestAppendAndListGameStats() {
	s.Require().NoError(s.storage.SaveUser(s.ctx, &model.User{ID: "user-1", Username: "alice"}))

	first := &model.StatRecord{
		UserID:      "user-1",
		MatchID:     "M1",
		NumPlayers:  2,
		Hits:        17,
		Misses:      30,
		TotalTurns:  93,
		Elapsed:     90 * time.Second,
		Winner:      "user-1",
		PlayerTypes: []model.Archetype{model.ArchetypeHuman, "hunter"},
	}
	second := &model.StatRecord{UserID: "user-1", MatchID: "M2", Winner: "bot-x"}

	s.Require().NoError(s.storage.AppendGameStat(s.ctx, first))
	s.Require().NoError(s.storage.AppendGameStat(s.ctx, second))
	s.Equal(int64(1), first.ID)
	s.Equal(int64(2), second.ID)

	records, err := s.storage.ListGameStats(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal(first.MatchID, records[0].MatchID)
	s.Equal(first.Elapsed, records[0].Elapsed)
	s.Equal(first.PlayerTypes, records[0].PlayerTypes)
	s.True(records[0].Won())
	s.False(records[1].Won())
}

func (s *StorageSuite) TestAppendGameStatSetsTTL() {
	s.Require().NoError(s.storage.SaveUser(s.ctx, &model.User{ID: "user-1"}))
	s.Require().NoError(s.storage.AppendGameStat(s.ctx, &model.StatRecord{UserID: "user-1"}))

	s.Equal(time.Hour, s.mini.TTL(statsKey("user-1")))
}

func (s *StorageSuite) TestAppendGameStatUnknownUser() {
	err := s.storage.AppendGameStat(s.ctx, &model.StatRecord{UserID: "ghost"})
	s.ErrorIs(err, model.ErrUserNotFound)
	s.False(s.mini.Exists(statsKey("ghost")))
}

func (s *StorageSuite) TestListGameStatsEmpty() {
	records, err := s.storage.ListGameStats(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Empty(records)
}
