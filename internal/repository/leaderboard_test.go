package repository

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lunarhall/tictactoe-rooms/testing/suite"
)

func TestLeaderboardRepository(t *testing.T) {
	// Given: a leaderboard over a disposable redis
	ctx, s := suite.New(t)
	repo := NewLeaderboardRepository(s.Storage)

	// When: alice wins three in a row, bob loses two and draws one,
	// and carol takes a single win
	results := []struct {
		player  string
		outcome string
	}{
		{"alice", OutcomeWin},
		{"bob", OutcomeLoss},
		{"alice", OutcomeWin},
		{"bob", OutcomeLoss},
		{"alice", OutcomeWin},
		{"bob", OutcomeDraw},
		{"carol", OutcomeWin},
	}
	for _, result := range results {
		require.NoError(t, repo.RecordResult(ctx, result.player, result.outcome))
	}

	// Then: the ranking is ordered by wins and every counter is folded in
	entries, err := repo.TopPlayers(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2) // bob never won, so he holds no rank

	require.Equal(t, "alice", entries[0].PlayerName)
	require.Equal(t, 3, entries[0].TotalGames)
	require.Equal(t, 3, entries[0].Wins)
	require.Equal(t, 3, entries[0].CurrentStreak)
	require.Equal(t, 3, entries[0].BestStreak)

	require.Equal(t, "carol", entries[1].PlayerName)
	require.Equal(t, 1, entries[1].Wins)

	t.Run("Loss resets the streak but keeps the best", func(t *testing.T) {
		// When: alice finally loses
		require.NoError(t, repo.RecordResult(ctx, "alice", OutcomeLoss))

		// Then: her streak resets while the best streak survives
		entries, err := repo.TopPlayers(ctx, 1)
		require.NoError(t, err)
		require.Len(t, entries, 1)

		require.Equal(t, "alice", entries[0].PlayerName)
		require.Equal(t, 4, entries[0].TotalGames)
		require.Equal(t, 1, entries[0].Losses)
		require.Equal(t, 0, entries[0].CurrentStreak)
		require.Equal(t, 3, entries[0].BestStreak)
	})

	t.Run("Unknown outcome is rejected", func(t *testing.T) {
		err := repo.RecordResult(ctx, "alice", "forfeit")
		require.Error(t, err)
	})
}
