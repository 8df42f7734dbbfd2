package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lunarhall/tictactoe-rooms/internal/entity"
	"github.com/lunarhall/tictactoe-rooms/internal/repository/storage"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := storage.NewSQLite(filepath.Join(t.TempDir(), "games.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})

	require.NoError(t, db.Init(context.Background()))

	return db.Connection
}

func TestArchiveRepository_Save(t *testing.T) {
	t.Run("Round trip", func(t *testing.T) {
		// Given: an archive over a fresh database
		ctx := context.Background()
		repo := NewArchiveRepository(newTestDB(t))

		started := time.Now().Add(-2 * time.Minute)
		record := &entity.GameRecord{
			GameID:     "game-1",
			RoomCode:   "AB12CD",
			PlayerX:    "alice",
			PlayerO:    "bob",
			Winner:     entity.PlayerX,
			Status:     entity.StatusXWins,
			Moves:      5,
			StartedAt:  started,
			FinishedAt: time.Now(),
		}

		// When: the record is saved and read back
		require.NoError(t, repo.Save(ctx, record))

		found, err := repo.GetByGameID(ctx, "game-1")
		require.NoError(t, err)

		// Then: every field survives the round trip
		require.Equal(t, record.GameID, found.GameID)
		require.Equal(t, record.RoomCode, found.RoomCode)
		require.Equal(t, record.PlayerX, found.PlayerX)
		require.Equal(t, record.PlayerO, found.PlayerO)
		require.Equal(t, record.Winner, found.Winner)
		require.Equal(t, record.Status, found.Status)
		require.Equal(t, record.Moves, found.Moves)
		require.WithinDuration(t, record.StartedAt, found.StartedAt, time.Second)
		require.WithinDuration(t, record.FinishedAt, found.FinishedAt, time.Second)
	})

	t.Run("Duplicate game id is rejected", func(t *testing.T) {
		// Given: a saved record
		ctx := context.Background()
		repo := NewArchiveRepository(newTestDB(t))

		record := &entity.GameRecord{GameID: "game-1", RoomCode: "AB12CD", Status: entity.StatusDraw, Moves: 9}
		require.NoError(t, repo.Save(ctx, record))

		// When: the same game id is saved again
		err := repo.Save(ctx, record)

		// Then: the insert fails
		require.Error(t, err)
	})
}

func TestArchiveRepository_GetByGameID(t *testing.T) {
	// Given: an empty archive
	repo := NewArchiveRepository(newTestDB(t))

	// When: an unknown game is looked up
	_, err := repo.GetByGameID(context.Background(), "game-unknown")

	// Then: ErrRecordNotFound is returned
	require.ErrorIs(t, err, ErrRecordNotFound)
}
