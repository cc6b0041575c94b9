package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/storage"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Storage is a SQLite-backed implementation of the storage interface
type Storage struct {
	db *sql.DB
}

// New opens (creating if missing) the database and applies pending migrations
func New(cfg Config) (*Storage, error) {
	dir := filepath.Dir(cfg.Path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	dsn := fmt.Sprintf("%s?_busy_timeout=%d&_journal_mode=WAL&_foreign_keys=on",
		cfg.Path, cfg.BusyTimeout.Milliseconds())
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	// SQLite allows one writer at a time
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// migrate applies each embedded migration once, in lexical order,
// recording applied files in _migrations
func migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY)`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRowContext(ctx, `SELECT 1 FROM _migrations WHERE name = ?`, f).Scan(&done)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		body, err := migrations.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, string(body)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO _migrations (name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, username, created_at_ms) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET username = excluded.username`,
		string(user.ID), user.Username, user.CreatedAt.UnixMilli(),
	)
	return err
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	var (
		user      model.User
		createdAt int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, created_at_ms FROM users WHERE id = ?`, string(id),
	).Scan(&user.ID, &user.Username, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	user.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &user, nil
}

// Game stat operations

func (s *Storage) AppendGameStat(ctx context.Context, record *model.StatRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = ?`, string(record.UserID)).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrUserNotFound
	}
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO game_stats (
			user_id, match_id, num_players, num_hits, num_misses,
			total_turns, elapsed_ms, winner, player_types, created_at_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(record.UserID),
		string(record.MatchID),
		record.NumPlayers,
		record.Hits,
		record.Misses,
		record.TotalTurns,
		record.Elapsed.Milliseconds(),
		string(record.Winner),
		model.JoinPlayerTypes(record.PlayerTypes),
		record.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	record.ID = id
	return nil
}

func (s *Storage) ListGameStats(ctx context.Context, userID model.UserID) ([]model.StatRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, match_id, num_players, num_hits, num_misses,
		       total_turns, elapsed_ms, winner, player_types, created_at_ms
		FROM game_stats WHERE user_id = ? ORDER BY id`, string(userID))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []model.StatRecord
	for rows.Next() {
		var (
			r           model.StatRecord
			elapsedMs   int64
			playerTypes string
			createdAtMs int64
		)
		if err := rows.Scan(
			&r.ID, &r.UserID, &r.MatchID, &r.NumPlayers, &r.Hits, &r.Misses,
			&r.TotalTurns, &elapsedMs, &r.Winner, &playerTypes, &createdAtMs,
		); err != nil {
			return nil, err
		}
		r.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		r.PlayerTypes = model.SplitPlayerTypes(playerTypes)
		r.CreatedAt = time.UnixMilli(createdAtMs).UTC()
		records = append(records, r)
	}
	return records, rows.Err()
}
