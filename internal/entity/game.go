package entity

import (
	"fmt"
	"time"

	"github.com/lunarhall/tictactoe-rooms/internal/apperror"
)

const (
	StatusPlaying   = "playing"
	StatusXWins     = "X_wins"
	StatusOWins     = "O_wins"
	StatusDraw      = "draw"
	StatusAbandoned = "abandoned"

	PlayerX = "X"
	PlayerO = "O"

	EmptyCell = ""

	BoardSize = 9
)

// WinCombos - the 8 winning triples, evaluated in this fixed order:
// 3 rows, 3 columns, 2 diagonals.
var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Game represents the state of one match: the board, whose turn it is,
// and how the match ended if it did.
type Game struct {
	ID        string    `json:"id"`
	Board     [9]string `json:"board"`
	Turn      string    `json:"current_player"`
	Winner    string    `json:"winner,omitempty"`
	Status    string    `json:"status"`
	Moves     int       `json:"moves"`
	StartedAt time.Time `json:"-"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:        id,
		Board:     [9]string{},
		Turn:      PlayerX,
		Status:    StatusPlaying,
		StartedAt: time.Now(),
	}
}

// ApplyMove - writes the current-turn symbol into the cell and advances the
// game state. Rejected moves leave the game untouched.
func (that *Game) ApplyMove(cell int) error {
	if that.Status != StatusPlaying {
		return apperror.ErrGameFinished
	}

	if cell < 0 || cell >= BoardSize {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if that.Board[cell] != EmptyCell {
		return apperror.ErrCellOccupied
	}

	that.Board[cell] = that.Turn
	that.Moves++

	switch winner := DetermineWinner(that.Board); winner {
	case PlayerX:
		that.Winner = PlayerX
		that.Status = StatusXWins
		that.Turn = ""
	case PlayerO:
		that.Winner = PlayerO
		that.Status = StatusOWins
		that.Turn = ""
	default:
		if boardFull(that.Board) {
			that.Status = StatusDraw
			that.Turn = ""
			return nil
		}
		that.Turn = toggleSymbol(that.Turn)
	}

	return nil
}

func (that *Game) IsFinished() bool {
	return that.Status != StatusPlaying
}

// Abandon - marks an in-progress game as abandoned. A terminal status stays
// terminal.
func (that *Game) Abandon() {
	if that.Status != StatusPlaying {
		return
	}

	that.Status = StatusAbandoned
	that.Turn = ""
}

// DetermineWinner - returns the symbol of the first fully-matching, non-empty
// winning triple, or "" if no line exists.
func DetermineWinner(board [9]string) string {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	return ""
}

func boardFull(board [9]string) bool {
	for _, cell := range board {
		if cell == EmptyCell {
			return false
		}
	}
	return true
}

func toggleSymbol(symbol string) string {
	if symbol == PlayerX {
		return PlayerO
	}
	return PlayerX
}
