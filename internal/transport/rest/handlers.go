package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/lunarhall/tictactoe-rooms/internal/entity"
)

const (
	defaultLeaderboardLimit = 10
	defaultSummaryDays      = 30
)

type leaderboardRepo interface {
	TopPlayers(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error)
}

type statsRepo interface {
	GetByDate(ctx context.Context, date string) (*entity.DailyStats, error)
	Aggregate(ctx context.Context, days int) (*entity.StatsSummary, error)
}

type Handlers interface {
	PingHandler(w http.ResponseWriter, r *http.Request)
	LeaderboardHandler(w http.ResponseWriter, r *http.Request)
	TodayStatsHandler(w http.ResponseWriter, r *http.Request)
	SummaryStatsHandler(w http.ResponseWriter, r *http.Request)
}

type handlers struct {
	logger      *slog.Logger
	leaderboard leaderboardRepo
	stats       statsRepo
	today       func() string
}

func NewHandlers(logger *slog.Logger, leaderboard leaderboardRepo, stats statsRepo, today func() string) Handlers {
	return &handlers{
		logger:      logger.With("component", "rest"),
		leaderboard: leaderboard,
		stats:       stats,
		today:       today,
	}
}

func (that *handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *handlers) LeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "LeaderboardHandler")

	limit := queryInt(r, "limit", defaultLeaderboardLimit)

	entries, err := that.leaderboard.TopPlayers(r.Context(), limit)
	if err != nil {
		log.Error("failed to load leaderboard", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, entries)
}

func (that *handlers) TodayStatsHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "TodayStatsHandler")

	stats, err := that.stats.GetByDate(r.Context(), that.today())
	if err != nil {
		log.Error("failed to load daily stats", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, stats)
}

func (that *handlers) SummaryStatsHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "SummaryStatsHandler")

	days := queryInt(r, "days", defaultSummaryDays)

	summary, err := that.stats.Aggregate(r.Context(), days)
	if err != nil {
		log.Error("failed to aggregate stats", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, summary)
}

func (that *handlers) writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}

	return value
}
