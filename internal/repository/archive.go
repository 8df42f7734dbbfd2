package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lunarhall/tictactoe-rooms/internal/entity"
)

var ErrRecordNotFound = errors.New("record not found")

// DateLayout is the day granularity used by the statistics tables.
const DateLayout = "2006-01-02"

type ArchiveRepository interface {
	Save(ctx context.Context, record *entity.GameRecord) error
	GetByGameID(ctx context.Context, gameID string) (*entity.GameRecord, error)
}

type dbArchive struct {
	conn *sql.DB
}

func NewArchiveRepository(conn *sql.DB) ArchiveRepository {
	return &dbArchive{
		conn: conn,
	}
}

func (that *dbArchive) Save(ctx context.Context, record *entity.GameRecord) error {
	query := `INSERT INTO games (game_id, room_code, player_x, player_o, winner, status, moves, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query,
		record.GameID,
		record.RoomCode,
		record.PlayerX,
		record.PlayerO,
		record.Winner,
		record.Status,
		record.Moves,
		record.StartedAt,
		record.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("can't save game record: %w", err)
	}

	return nil
}

func (that *dbArchive) GetByGameID(ctx context.Context, gameID string) (*entity.GameRecord, error) {
	query := `SELECT game_id, room_code, player_x, player_o, winner, status, moves, started_at, finished_at
		FROM games WHERE game_id = ?`

	var record entity.GameRecord

	err := that.conn.QueryRowContext(ctx, query, gameID).Scan(
		&record.GameID,
		&record.RoomCode,
		&record.PlayerX,
		&record.PlayerO,
		&record.Winner,
		&record.Status,
		&record.Moves,
		&record.StartedAt,
		&record.FinishedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't find game record: %w", err)
	}

	return &record, nil
}
