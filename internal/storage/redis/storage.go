package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, userKey(user.ID), data, 0).Err()
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Game stat operations

func (s *Storage) AppendGameStat(ctx context.Context, record *model.StatRecord) error {
	exists, err := s.client.Exists(ctx, userKey(record.UserID)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return model.ErrUserNotFound
	}

	id, err := s.client.Incr(ctx, statSequenceKey()).Result()
	if err != nil {
		return err
	}
	record.ID = id

	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	// Use pipeline for atomic append + TTL refresh
	key := statsKey(record.UserID)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	if s.cfg.StatsTTL > 0 {
		pipe.Expire(ctx, key, s.cfg.StatsTTL)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ListGameStats(ctx context.Context, userID model.UserID) ([]model.StatRecord, error) {
	items, err := s.client.LRange(ctx, statsKey(userID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	records := make([]model.StatRecord, 0, len(items))
	for _, item := range items {
		var r model.StatRecord
		if err := json.Unmarshal([]byte(item), &r); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}
