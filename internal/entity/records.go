package entity

import "time"

// GameRecord is the immutable snapshot of a finished or abandoned game, taken
// on the coordinator goroutine before it is handed to storage.
type GameRecord struct {
	GameID     string
	RoomCode   string
	PlayerX    string
	PlayerO    string
	Winner     string
	Status     string
	Moves      int
	StartedAt  time.Time
	FinishedAt time.Time
}

// LeaderboardEntry is one player's aggregate standing.
type LeaderboardEntry struct {
	PlayerName    string `json:"player_name"`
	TotalGames    int    `json:"total_games"`
	Wins          int    `json:"wins"`
	Losses        int    `json:"losses"`
	Draws         int    `json:"draws"`
	CurrentStreak int    `json:"current_win_streak"`
	BestStreak    int    `json:"best_win_streak"`
}

// DailyStats are the per-day counters bumped after every recorded game.
type DailyStats struct {
	StatDate         string `json:"stat_date"`
	TotalGames       int    `json:"total_games"`
	Wins             int    `json:"total_wins"`
	Draws            int    `json:"total_draws"`
	Abandoned        int    `json:"total_abandoned"`
	FastestWinMoves  int    `json:"fastest_win_moves,omitempty"`
	LongestGameMoves int    `json:"longest_game_moves"`
}

// StatsSummary aggregates daily counters over a date range.
type StatsSummary struct {
	Days             int     `json:"days"`
	TotalGames       int     `json:"total_games"`
	Wins             int     `json:"total_wins"`
	Draws            int     `json:"total_draws"`
	Abandoned        int     `json:"total_abandoned"`
	WinRate          float64 `json:"win_rate"`
	FastestWinMoves  int     `json:"fastest_win_moves,omitempty"`
	LongestGameMoves int     `json:"longest_game_moves"`
}
