package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lunarhall/tictactoe-rooms/internal/entity"
	"github.com/lunarhall/tictactoe-rooms/internal/repository"
)

type archiveRepo interface {
	Save(ctx context.Context, record *entity.GameRecord) error
}

type statsRepo interface {
	RecordGame(ctx context.Context, record *entity.GameRecord) error
}

type leaderboardRepo interface {
	RecordResult(ctx context.Context, playerName, outcome string) error
}

type ResultService interface {
	RecordGame(ctx context.Context, record *entity.GameRecord) error
}

type resultService struct {
	logger *slog.Logger

	archiveRepo     archiveRepo
	statsRepo       statsRepo
	leaderboardRepo leaderboardRepo
}

func NewResultService(logger *slog.Logger, archiveRepo archiveRepo, statsRepo statsRepo, leaderboardRepo leaderboardRepo) ResultService {
	return &resultService{
		logger: logger.With("component", "results"),

		archiveRepo:     archiveRepo,
		statsRepo:       statsRepo,
		leaderboardRepo: leaderboardRepo,
	}
}

// RecordGame - persists a finished or abandoned game: archive row, daily
// counters, and leaderboard standings for decisive or drawn games. Each sink
// is attempted even when another one fails.
func (that *resultService) RecordGame(ctx context.Context, record *entity.GameRecord) error {
	var errs []error

	if err := that.archiveRepo.Save(ctx, record); err != nil {
		errs = append(errs, fmt.Errorf("failed to archive game: %w", err))
	}

	if err := that.statsRepo.RecordGame(ctx, record); err != nil {
		errs = append(errs, fmt.Errorf("failed to record statistics: %w", err))
	}

	if err := that.updateLeaderboard(ctx, record); err != nil {
		errs = append(errs, fmt.Errorf("failed to update leaderboard: %w", err))
	}

	return errors.Join(errs...)
}

// updateLeaderboard - abandoned games carry no leaderboard credit.
func (that *resultService) updateLeaderboard(ctx context.Context, record *entity.GameRecord) error {
	if record.PlayerX == "" || record.PlayerO == "" {
		return nil
	}

	var outcomeX, outcomeO string

	switch record.Status {
	case entity.StatusXWins:
		outcomeX, outcomeO = repository.OutcomeWin, repository.OutcomeLoss
	case entity.StatusOWins:
		outcomeX, outcomeO = repository.OutcomeLoss, repository.OutcomeWin
	case entity.StatusDraw:
		outcomeX, outcomeO = repository.OutcomeDraw, repository.OutcomeDraw
	default:
		return nil
	}

	if err := that.leaderboardRepo.RecordResult(ctx, record.PlayerX, outcomeX); err != nil {
		return fmt.Errorf("player %s: %w", record.PlayerX, err)
	}

	if err := that.leaderboardRepo.RecordResult(ctx, record.PlayerO, outcomeO); err != nil {
		return fmt.Errorf("player %s: %w", record.PlayerO, err)
	}

	return nil
}
