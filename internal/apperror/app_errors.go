package apperror

import "errors"

var (
	ErrRoomFull       = errors.New("room is full")
	ErrRoomNotFound   = errors.New("room not found")
	ErrRoomNotReady   = errors.New("room is not ready to start")
	ErrPlayerNotFound = errors.New("player not found")

	ErrGameFinished = errors.New("game is already finished")
	ErrNoActiveGame = errors.New("no active game")
	ErrNotYourTurn  = errors.New("it's not your turn")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrInvalidCell  = errors.New("invalid cell index")
)
