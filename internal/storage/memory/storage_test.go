package memory

import (
	"context"
	"testing"
	"time"

	"github.com/mcoot/battleship-go/internal/model"
	"github.com/stretchr/testify/suite"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// User tests

func (s *StorageSuite) TestSaveAndGetUser() {
	user := &model.User{ID: "user-1", Username: "alice", CreatedAt: time.Now()}

	err := s.storage.SaveUser(s.ctx, user)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetUser(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(user.Username, retrieved.Username)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestSaveUserOverwrites() {
	s.Require().NoError(s.storage.SaveUser(s.ctx, &model.User{ID: "user-1", Username: "alice"}))
	s.Require().NoError(s.storage.SaveUser(s.ctx, &model.User{ID: "user-1", Username: "alicia"}))

	retrieved, err := s.storage.GetUser(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal("alicia", retrieved.Username)
}

// Game stat tests

func (s *StorageSuite) TestAppendAndListGameStats() {
	s.Require().NoError(s.storage.SaveUser(s.ctx, &model.User{ID: "user-1", Username: "alice"}))

	first := &model.StatRecord{UserID: "user-1", MatchID: "M1", Hits: 17, Winner: "user-1",
		PlayerTypes: []model.Archetype{model.ArchetypeHuman, "hunter"}}
	second := &model.StatRecord{UserID: "user-1", MatchID: "M2", Hits: 5, Winner: "bot-x"}
	s.Require().NoError(s.storage.AppendGameStat(s.ctx, first))
	s.Require().NoError(s.storage.AppendGameStat(s.ctx, second))
	s.NotZero(first.ID)
	s.Greater(second.ID, first.ID)

	records, err := s.storage.ListGameStats(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal(model.MatchID("M1"), records[0].MatchID)
	s.Equal([]model.Archetype{model.ArchetypeHuman, "hunter"}, records[0].PlayerTypes)
	s.Equal(model.MatchID("M2"), records[1].MatchID)
}

func (s *StorageSuite) TestAppendGameStatUnknownUser() {
	err := s.storage.AppendGameStat(s.ctx, &model.StatRecord{UserID: "ghost"})
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestListGameStatsEmpty() {
	records, err := s.storage.ListGameStats(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Empty(records)
}
