package storage

import (
	"context"
	"database/sql"
	"fmt"

	// import the SQLite driver to register it with the database/sql package.
	_ "github.com/mattn/go-sqlite3"
)

type SQLiteStorage struct {
	Connection *sql.DB
}

func NewSQLite(path string) (*SQLiteStorage, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("can't open database: %w", err)
	}

	if err = conn.Ping(); err != nil {
		return nil, fmt.Errorf("can't connect to database: %w", err)
	}

	return &SQLiteStorage{Connection: conn}, nil
}

func (that *SQLiteStorage) Init(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS games (
			game_id     TEXT PRIMARY KEY,
			room_code   TEXT NOT NULL,
			player_x    TEXT,
			player_o    TEXT,
			winner      TEXT,
			status      TEXT NOT NULL,
			moves       INTEGER NOT NULL,
			started_at  TIMESTAMP,
			finished_at TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS game_statistics (
			stat_date          TEXT PRIMARY KEY,
			total_games        INTEGER NOT NULL DEFAULT 0,
			total_wins         INTEGER NOT NULL DEFAULT 0,
			total_draws        INTEGER NOT NULL DEFAULT 0,
			total_abandoned    INTEGER NOT NULL DEFAULT 0,
			fastest_win_moves  INTEGER NOT NULL DEFAULT 0,
			longest_game_moves INTEGER NOT NULL DEFAULT 0
		)`,
	}

	for _, query := range queries {
		if _, err := that.Connection.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("can't create table: %w", err)
		}
	}

	return nil
}

func (that *SQLiteStorage) Close() error {
	if err := that.Connection.Close(); err != nil {
		return fmt.Errorf("failed to close sqlite connection: %w", err)
	}

	return nil
}
