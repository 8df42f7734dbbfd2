package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lunarhall/tictactoe-rooms/internal/entity"
)

type stubLeaderboard struct {
	entries   []entity.LeaderboardEntry
	err       error
	lastLimit int
}

func (that *stubLeaderboard) TopPlayers(_ context.Context, limit int) ([]entity.LeaderboardEntry, error) {
	that.lastLimit = limit
	return that.entries, that.err
}

type stubStats struct {
	daily    *entity.DailyStats
	summary  *entity.StatsSummary
	err      error
	lastDate string
	lastDays int
}

func (that *stubStats) GetByDate(_ context.Context, date string) (*entity.DailyStats, error) {
	that.lastDate = date
	return that.daily, that.err
}

func (that *stubStats) Aggregate(_ context.Context, days int) (*entity.StatsSummary, error) {
	that.lastDays = days
	return that.summary, that.err
}

func newTestHandlers(leaderboard *stubLeaderboard, stats *stubStats) Handlers {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandlers(logger, leaderboard, stats, func() string { return "2026-09-01" })
}

func TestPingHandler(t *testing.T) {
	// Given: the handler set
	h := newTestHandlers(&stubLeaderboard{}, &stubStats{})

	// When: ping is requested
	rec := httptest.NewRecorder()
	h.PingHandler(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	// Then: pong comes back
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "pong", rec.Body.String())
}

func TestLeaderboardHandler(t *testing.T) {
	t.Run("Returns the ranking as JSON", func(t *testing.T) {
		// Given: a leaderboard with one entry
		leaderboard := &stubLeaderboard{
			entries: []entity.LeaderboardEntry{{PlayerName: "alice", Wins: 3, TotalGames: 4}},
		}
		h := newTestHandlers(leaderboard, &stubStats{})

		// When: the leaderboard is requested without a limit
		rec := httptest.NewRecorder()
		h.LeaderboardHandler(rec, httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil))

		// Then: the default limit is used and the entries are encoded
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		require.Equal(t, defaultLeaderboardLimit, leaderboard.lastLimit)

		var entries []entity.LeaderboardEntry
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
		require.Len(t, entries, 1)
		require.Equal(t, "alice", entries[0].PlayerName)
	})

	t.Run("Honors the limit parameter", func(t *testing.T) {
		// Given: the handler set
		leaderboard := &stubLeaderboard{}
		h := newTestHandlers(leaderboard, &stubStats{})

		// When: a custom limit is passed
		rec := httptest.NewRecorder()
		h.LeaderboardHandler(rec, httptest.NewRequest(http.MethodGet, "/api/leaderboard?limit=3", nil))

		// Then: the repository sees it
		require.Equal(t, 3, leaderboard.lastLimit)
	})

	t.Run("Falls back on a bogus limit", func(t *testing.T) {
		// Given: the handler set
		leaderboard := &stubLeaderboard{}
		h := newTestHandlers(leaderboard, &stubStats{})

		// When: the limit is not a positive number
		rec := httptest.NewRecorder()
		h.LeaderboardHandler(rec, httptest.NewRequest(http.MethodGet, "/api/leaderboard?limit=-2", nil))

		// Then: the default is used instead
		require.Equal(t, defaultLeaderboardLimit, leaderboard.lastLimit)
	})

	t.Run("Repository failure", func(t *testing.T) {
		// Given: a failing repository
		leaderboard := &stubLeaderboard{err: errors.New("redis down")}
		h := newTestHandlers(leaderboard, &stubStats{})

		// When: the leaderboard is requested
		rec := httptest.NewRecorder()
		h.LeaderboardHandler(rec, httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil))

		// Then: a 500 comes back without leaking the cause
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestTodayStatsHandler(t *testing.T) {
	// Given: counters recorded for the current day
	stats := &stubStats{
		daily: &entity.DailyStats{StatDate: "2026-09-01", TotalGames: 7, Wins: 4},
	}
	h := newTestHandlers(&stubLeaderboard{}, stats)

	// When: today's stats are requested
	rec := httptest.NewRecorder()
	h.TodayStatsHandler(rec, httptest.NewRequest(http.MethodGet, "/api/stats/today", nil))

	// Then: the repository is asked for the handler's notion of today
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "2026-09-01", stats.lastDate)

	var daily entity.DailyStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &daily))
	require.Equal(t, 7, daily.TotalGames)
}

func TestSummaryStatsHandler(t *testing.T) {
	t.Run("Defaults to a 30-day window", func(t *testing.T) {
		// Given: an aggregate over the default window
		stats := &stubStats{
			summary: &entity.StatsSummary{Days: 30, TotalGames: 10, Wins: 6, WinRate: 60},
		}
		h := newTestHandlers(&stubLeaderboard{}, stats)

		// When: the summary is requested without a days parameter
		rec := httptest.NewRecorder()
		h.SummaryStatsHandler(rec, httptest.NewRequest(http.MethodGet, "/api/stats/summary", nil))

		// Then: the default window is used
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, defaultSummaryDays, stats.lastDays)

		var summary entity.StatsSummary
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
		require.Equal(t, 60.0, summary.WinRate)
	})

	t.Run("Honors the days parameter", func(t *testing.T) {
		// Given: the handler set
		stats := &stubStats{summary: &entity.StatsSummary{Days: 7}}
		h := newTestHandlers(&stubLeaderboard{}, stats)

		// When: a custom window is passed
		rec := httptest.NewRecorder()
		h.SummaryStatsHandler(rec, httptest.NewRequest(http.MethodGet, "/api/stats/summary?days=7", nil))

		// Then: the repository sees it
		require.Equal(t, 7, stats.lastDays)
	})
}
