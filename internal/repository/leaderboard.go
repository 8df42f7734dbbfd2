package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/lunarhall/tictactoe-rooms/internal/entity"
)

const (
	OutcomeWin  = "win"
	OutcomeLoss = "loss"
	OutcomeDraw = "draw"
)

const (
	winsKey         = "leaderboard:wins"
	playerKeyPrefix = "leaderboard:player:"
)

type LeaderboardRepository interface {
	RecordResult(ctx context.Context, playerName, outcome string) error
	TopPlayers(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error)
}

type dbLeaderboard struct {
	client *redis.Client
}

func NewLeaderboardRepository(client *redis.Client) LeaderboardRepository {
	return &dbLeaderboard{
		client: client,
	}
}

// RecordResult - folds one decisive or drawn game into the player's standing.
func (that *dbLeaderboard) RecordResult(ctx context.Context, playerName, outcome string) error {
	playerKey := playerKeyPrefix + playerName

	if err := that.client.HIncrBy(ctx, playerKey, "total_games", 1).Err(); err != nil {
		return fmt.Errorf("failed to bump total games: %w", err)
	}

	switch outcome {
	case OutcomeWin:
		if err := that.client.HIncrBy(ctx, playerKey, "wins", 1).Err(); err != nil {
			return fmt.Errorf("failed to bump wins: %w", err)
		}

		if err := that.client.ZIncrBy(ctx, winsKey, 1, playerName).Err(); err != nil {
			return fmt.Errorf("failed to bump wins ranking: %w", err)
		}

		streak, err := that.client.HIncrBy(ctx, playerKey, "current_streak", 1).Result()
		if err != nil {
			return fmt.Errorf("failed to bump win streak: %w", err)
		}

		best, err := that.client.HGet(ctx, playerKey, "best_streak").Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("failed to get best streak: %w", err)
		}

		if streak > best {
			if err = that.client.HSet(ctx, playerKey, "best_streak", streak).Err(); err != nil {
				return fmt.Errorf("failed to set best streak: %w", err)
			}
		}
	case OutcomeLoss:
		if err := that.client.HIncrBy(ctx, playerKey, "losses", 1).Err(); err != nil {
			return fmt.Errorf("failed to bump losses: %w", err)
		}

		if err := that.client.HSet(ctx, playerKey, "current_streak", 0).Err(); err != nil {
			return fmt.Errorf("failed to reset win streak: %w", err)
		}
	case OutcomeDraw:
		if err := that.client.HIncrBy(ctx, playerKey, "draws", 1).Err(); err != nil {
			return fmt.Errorf("failed to bump draws: %w", err)
		}

		if err := that.client.HSet(ctx, playerKey, "current_streak", 0).Err(); err != nil {
			return fmt.Errorf("failed to reset win streak: %w", err)
		}
	default:
		return fmt.Errorf("unknown outcome: %q", outcome)
	}

	return nil
}

// TopPlayers - top entries ordered by wins.
func (that *dbLeaderboard) TopPlayers(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error) {
	names, err := that.client.ZRevRange(ctx, winsKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read wins ranking: %w", err)
	}

	entries := make([]entity.LeaderboardEntry, 0, len(names))
	for _, name := range names {
		fields, err := that.client.HGetAll(ctx, playerKeyPrefix+name).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to read player standing: %w", err)
		}

		entries = append(entries, entity.LeaderboardEntry{
			PlayerName:    name,
			TotalGames:    fieldInt(fields, "total_games"),
			Wins:          fieldInt(fields, "wins"),
			Losses:        fieldInt(fields, "losses"),
			Draws:         fieldInt(fields, "draws"),
			CurrentStreak: fieldInt(fields, "current_streak"),
			BestStreak:    fieldInt(fields, "best_streak"),
		})
	}

	return entries, nil
}

func fieldInt(fields map[string]string, name string) int {
	value, err := strconv.Atoi(fields[name])
	if err != nil {
		return 0
	}

	return value
}
