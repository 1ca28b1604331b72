package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

const schema = `
CREATE TABLE IF NOT EXISTS solutions (
	id            TEXT PRIMARY KEY,
	robot         TEXT NOT NULL,
	request       BLOB NOT NULL,
	moves         BLOB NOT NULL,
	num_moves     INTEGER NOT NULL,
	num_calc_move INTEGER NOT NULL,
	gif           BLOB,
	created_at    TEXT NOT NULL
);`

type sqlite struct {
	db *sql.DB
}

// OpenSQLite opens (and creates if missing) a SQLite backed Store at path.
func OpenSQLite(path string) (Store, func() error, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("create schema: %w", err)
	}
	log.Info().Str("path", path).Msg("solution store opened")
	return &sqlite{db: db}, db.Close, nil
}

func (s *sqlite) Save(ctx context.Context, sol *Solution) error {
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO solutions
		(id, robot, request, moves, num_moves, num_calc_move, gif, created_at)
		VALUES (?,?,?,?,?,?,?,?)`,
		sol.ID, sol.Robot, sol.Request, sol.Moves, sol.NumMoves, sol.NumCalcMove, sol.GIF,
		sol.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save solution %s: %w", sol.ID, err)
	}
	return nil
}

func (s *sqlite) Get(ctx context.Context, id string) (*Solution, error) {
	sol := &Solution{ID: id}
	var createdAt string
	err := s.db.QueryRowContext(ctx, `SELECT robot, request, moves, num_moves, num_calc_move, gif, created_at
		FROM solutions WHERE id=?`, id).
		Scan(&sol.Robot, &sol.Request, &sol.Moves, &sol.NumMoves, &sol.NumCalcMove, &sol.GIF, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get solution %s: %w", id, err)
	}
	if sol.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("solution %s created_at: %w", id, err)
	}
	return sol, nil
}
