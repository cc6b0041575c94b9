package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/battleship-go/internal/api/events"
	"github.com/mcoot/battleship-go/internal/dependencies/clock"
	"github.com/mcoot/battleship-go/internal/dependencies/random"
	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/services/match"
	"github.com/mcoot/battleship-go/internal/services/stats"
	"github.com/mcoot/battleship-go/internal/storage"
	"github.com/mcoot/battleship-go/internal/storage/memory"
	redisstorage "github.com/mcoot/battleship-go/internal/storage/redis"
	sqlitestorage "github.com/mcoot/battleship-go/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	MatchController *match.Controller
	StatsService    *stats.Service
	HubManager      *events.HubManager
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "sqlite")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SQLiteConfig holds database settings (optional if StorageType is "sqlite")
	// If nil, defaults to sqlite.DefaultConfig()
	SQLiteConfig *sqlitestorage.Config
	// RandomSeed, when non-zero, replaces the crypto random source with a
	// seeded one so that every placement and shot can be replayed
	RandomSeed uint64
	// MatchConfig holds the rules for new matches
	// The zero value means model.DefaultMatchConfig(). Otherwise a zero
	// BoardSize takes the default size and the other rules are kept as given.
	MatchConfig model.MatchConfig
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	matchCfg := cfg.MatchConfig
	switch {
	case matchCfg == (model.MatchConfig{}):
		matchCfg = model.DefaultMatchConfig()
	case matchCfg.BoardSize == 0:
		matchCfg.BoardSize = model.DefaultMatchConfig().BoardSize
	}
	if err := matchCfg.Validate(); err != nil {
		return nil, err
	}

	store, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	var rnd random.Random = random.New()
	if cfg.RandomSeed != 0 {
		rnd = random.NewSeeded(cfg.RandomSeed)
	}

	return newWithDependencies(store, clock.New(), rnd, matchCfg, logger), nil
}

func newStorage(cfg Config) (storage.Storage, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(*cfg.RedisConfig)
	case StorageTypeSQLite:
		sqliteCfg := sqlitestorage.DefaultConfig()
		if cfg.SQLiteConfig != nil {
			sqliteCfg = *cfg.SQLiteConfig
		}
		return sqlitestorage.New(sqliteCfg)
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'memory', 'redis' or 'sqlite'", storageType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, matchCfg model.MatchConfig, logger *slog.Logger) *App {
	hubManager := events.NewHubManager(clk, logger)
	matchController := match.NewController(store, hubManager, matchCfg, clk, rnd, logger)
	statsService := stats.New(store, logger)

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		MatchController: matchController,
		StatsService:    statsService,
		HubManager:      hubManager,
	}
}

// Sweep drops matches that finished more than retention ago and event hubs
// nobody is watching
func (a *App) Sweep(retention time.Duration) {
	a.MatchController.PruneFinished(retention)
	a.HubManager.CleanupEmptyHubs()
}

// Close releases the event hubs and the storage connection
func (a *App) Close() error {
	a.HubManager.Close()
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
