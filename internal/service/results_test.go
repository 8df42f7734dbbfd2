package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lunarhall/tictactoe-rooms/internal/entity"
	"github.com/lunarhall/tictactoe-rooms/internal/repository"
)

type stubArchive struct {
	saved []*entity.GameRecord
	err   error
}

func (that *stubArchive) Save(_ context.Context, record *entity.GameRecord) error {
	that.saved = append(that.saved, record)
	return that.err
}

type stubStats struct {
	recorded []*entity.GameRecord
	err      error
}

func (that *stubStats) RecordGame(_ context.Context, record *entity.GameRecord) error {
	that.recorded = append(that.recorded, record)
	return that.err
}

type stubLeaderboard struct {
	outcomes map[string]string
	err      error
}

func (that *stubLeaderboard) RecordResult(_ context.Context, playerName, outcome string) error {
	if that.outcomes == nil {
		that.outcomes = make(map[string]string)
	}
	that.outcomes[playerName] = outcome
	return that.err
}

type sinks struct {
	archive     *stubArchive
	stats       *stubStats
	leaderboard *stubLeaderboard
}

func newTestService(t *testing.T) (ResultService, *sinks) {
	t.Helper()

	s := &sinks{
		archive:     &stubArchive{},
		stats:       &stubStats{},
		leaderboard: &stubLeaderboard{},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewResultService(logger, s.archive, s.stats, s.leaderboard), s
}

func TestResultService_RecordGame(t *testing.T) {
	t.Run("Decisive game feeds all three sinks", func(t *testing.T) {
		// Given: a finished game won by X
		svc, s := newTestService(t)
		record := &entity.GameRecord{
			GameID:  "game-1",
			PlayerX: "alice",
			PlayerO: "bob",
			Winner:  entity.PlayerX,
			Status:  entity.StatusXWins,
			Moves:   5,
		}

		// When: the game is recorded
		require.NoError(t, svc.RecordGame(context.Background(), record))

		// Then: the archive and the daily counters got the record
		require.Len(t, s.archive.saved, 1)
		require.Len(t, s.stats.recorded, 1)

		// Then: the winner gets a win and the loser a loss
		require.Equal(t, repository.OutcomeWin, s.leaderboard.outcomes["alice"])
		require.Equal(t, repository.OutcomeLoss, s.leaderboard.outcomes["bob"])
	})

	t.Run("Draw credits both players with a draw", func(t *testing.T) {
		// Given: a drawn game
		svc, s := newTestService(t)
		record := &entity.GameRecord{
			GameID:  "game-1",
			PlayerX: "alice",
			PlayerO: "bob",
			Status:  entity.StatusDraw,
			Moves:   9,
		}

		// When: the game is recorded
		require.NoError(t, svc.RecordGame(context.Background(), record))

		// Then: both players drew
		require.Equal(t, repository.OutcomeDraw, s.leaderboard.outcomes["alice"])
		require.Equal(t, repository.OutcomeDraw, s.leaderboard.outcomes["bob"])
	})

	t.Run("Abandoned game skips the leaderboard", func(t *testing.T) {
		// Given: a game abandoned mid-play
		svc, s := newTestService(t)
		record := &entity.GameRecord{
			GameID:  "game-1",
			PlayerX: "alice",
			PlayerO: "bob",
			Status:  entity.StatusAbandoned,
			Moves:   3,
		}

		// When: the game is recorded
		require.NoError(t, svc.RecordGame(context.Background(), record))

		// Then: it still lands in the archive and the counters
		require.Len(t, s.archive.saved, 1)
		require.Len(t, s.stats.recorded, 1)

		// Then: nobody gets leaderboard credit
		require.Empty(t, s.leaderboard.outcomes)
	})

	t.Run("Game with an empty seat skips the leaderboard", func(t *testing.T) {
		// Given: a record missing the O seat
		svc, s := newTestService(t)
		record := &entity.GameRecord{
			GameID:  "game-1",
			PlayerX: "alice",
			Status:  entity.StatusXWins,
		}

		// When: the game is recorded
		require.NoError(t, svc.RecordGame(context.Background(), record))

		// Then: no leaderboard writes happen
		require.Empty(t, s.leaderboard.outcomes)
	})

	t.Run("One failing sink does not stop the others", func(t *testing.T) {
		// Given: an archive that always fails
		svc, s := newTestService(t)
		s.archive.err = errors.New("disk full")

		record := &entity.GameRecord{
			GameID:  "game-1",
			PlayerX: "alice",
			PlayerO: "bob",
			Status:  entity.StatusOWins,
		}

		// When: the game is recorded
		err := svc.RecordGame(context.Background(), record)

		// Then: the failure surfaces but the other sinks were still fed
		require.ErrorContains(t, err, "disk full")
		require.Len(t, s.stats.recorded, 1)
		require.Equal(t, repository.OutcomeWin, s.leaderboard.outcomes["bob"])
	})
}
