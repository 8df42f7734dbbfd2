package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/lunarhall/tictactoe-rooms/internal/entity"
)

type StatsRepository interface {
	RecordGame(ctx context.Context, record *entity.GameRecord) error
	GetByDate(ctx context.Context, date string) (*entity.DailyStats, error)
	Aggregate(ctx context.Context, days int) (*entity.StatsSummary, error)
}

type dbStats struct {
	conn *sql.DB
}

func NewStatsRepository(conn *sql.DB) StatsRepository {
	return &dbStats{
		conn: conn,
	}
}

// RecordGame - bumps the counters of the day the game finished on. One upsert
// keeps the day row consistent without a read-modify-write round trip.
func (that *dbStats) RecordGame(ctx context.Context, record *entity.GameRecord) error {
	var wins, draws, abandoned, fastestWin int

	switch record.Status {
	case entity.StatusXWins, entity.StatusOWins:
		wins = 1
		fastestWin = record.Moves
	case entity.StatusDraw:
		draws = 1
	case entity.StatusAbandoned:
		abandoned = 1
	}

	query := `INSERT INTO game_statistics
		(stat_date, total_games, total_wins, total_draws, total_abandoned, fastest_win_moves, longest_game_moves)
		VALUES (?, 1, ?, ?, ?, ?, ?)
		ON CONFLICT(stat_date) DO UPDATE SET
			total_games = total_games + 1,
			total_wins = total_wins + excluded.total_wins,
			total_draws = total_draws + excluded.total_draws,
			total_abandoned = total_abandoned + excluded.total_abandoned,
			fastest_win_moves = CASE
				WHEN excluded.fastest_win_moves > 0
					AND (fastest_win_moves = 0 OR excluded.fastest_win_moves < fastest_win_moves)
				THEN excluded.fastest_win_moves
				ELSE fastest_win_moves
			END,
			longest_game_moves = MAX(longest_game_moves, excluded.longest_game_moves)`

	statDate := record.FinishedAt.Format(DateLayout)

	_, err := that.conn.ExecContext(ctx, query, statDate, wins, draws, abandoned, fastestWin, record.Moves)
	if err != nil {
		return fmt.Errorf("can't record game statistics: %w", err)
	}

	return nil
}

// GetByDate - returns the day's counters; a day with no recorded games reads
// as all zeroes.
func (that *dbStats) GetByDate(ctx context.Context, date string) (*entity.DailyStats, error) {
	query := `SELECT total_games, total_wins, total_draws, total_abandoned, fastest_win_moves, longest_game_moves
		FROM game_statistics WHERE stat_date = ?`

	stats := entity.DailyStats{StatDate: date}

	err := that.conn.QueryRowContext(ctx, query, date).Scan(
		&stats.TotalGames,
		&stats.Wins,
		&stats.Draws,
		&stats.Abandoned,
		&stats.FastestWinMoves,
		&stats.LongestGameMoves,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return &stats, nil
	}
	if err != nil {
		return nil, fmt.Errorf("can't find daily statistics: %w", err)
	}

	return &stats, nil
}

func (that *dbStats) Aggregate(ctx context.Context, days int) (*entity.StatsSummary, error) {
	query := `SELECT
			COALESCE(SUM(total_games), 0),
			COALESCE(SUM(total_wins), 0),
			COALESCE(SUM(total_draws), 0),
			COALESCE(SUM(total_abandoned), 0),
			COALESCE(MIN(CASE WHEN fastest_win_moves > 0 THEN fastest_win_moves END), 0),
			COALESCE(MAX(longest_game_moves), 0)
		FROM game_statistics WHERE stat_date >= ?`

	since := time.Now().AddDate(0, 0, -(days - 1)).Format(DateLayout)

	summary := entity.StatsSummary{Days: days}

	err := that.conn.QueryRowContext(ctx, query, since).Scan(
		&summary.TotalGames,
		&summary.Wins,
		&summary.Draws,
		&summary.Abandoned,
		&summary.FastestWinMoves,
		&summary.LongestGameMoves,
	)
	if err != nil {
		return nil, fmt.Errorf("can't aggregate statistics: %w", err)
	}

	if summary.TotalGames > 0 {
		rate := float64(summary.Wins) / float64(summary.TotalGames) * 100
		summary.WinRate = math.Round(rate*100) / 100
	}

	return &summary, nil
}
