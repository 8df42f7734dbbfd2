package entity

import (
	"time"

	"github.com/lunarhall/tictactoe-rooms/internal/apperror"
)

const (
	RoomWaiting   = "waiting"
	RoomActive    = "active"
	RoomCompleted = "completed"

	roomCapacity = 2
)

// Room is a two-seat match container. It owns its players and its game:
// neither outlives the room.
type Room struct {
	Code         string
	Status       string
	Players      []*Player
	Game         *Game
	LastActivity time.Time
}

func NewRoom(code string) *Room {
	return &Room{
		Code:         code,
		Status:       RoomWaiting,
		Players:      make([]*Player, 0, roomCapacity),
		LastActivity: time.Now(),
	}
}

// AddPlayer - seats a player on the next free seat. The first joiner always
// gets X.
func (that *Room) AddPlayer(name, sessionID string) (*Player, error) {
	if that.IsFull() {
		return nil, apperror.ErrRoomFull
	}

	symbol := PlayerX
	if len(that.Players) == 1 {
		symbol = PlayerO
	}

	player := &Player{
		Name:      name,
		SessionID: sessionID,
		Symbol:    symbol,
	}

	that.Players = append(that.Players, player)

	return player, nil
}

// RemovePlayer - unseats the player owning the session, if present.
func (that *Room) RemovePlayer(sessionID string) *Player {
	for i, player := range that.Players {
		if player.SessionID == sessionID {
			that.Players = append(that.Players[:i], that.Players[i+1:]...)
			return player
		}
	}

	return nil
}

func (that *Room) PlayerBySession(sessionID string) *Player {
	for _, player := range that.Players {
		if player.SessionID == sessionID {
			return player
		}
	}

	return nil
}

func (that *Room) PlayerBySymbol(symbol string) *Player {
	for _, player := range that.Players {
		if player.Symbol == symbol {
			return player
		}
	}

	return nil
}

func (that *Room) IsFull() bool {
	return len(that.Players) >= roomCapacity
}

func (that *Room) IsEmpty() bool {
	return len(that.Players) == 0
}

// ReadyToStart - a game may start only with both seats filled and no game
// played in this room yet.
func (that *Room) ReadyToStart() bool {
	return len(that.Players) == roomCapacity && that.Status == RoomWaiting
}

// StartGame - creates the room's game with X to move and flips the room to
// active.
func (that *Room) StartGame(gameID string) (*Game, error) {
	if !that.ReadyToStart() {
		return nil, apperror.ErrRoomNotReady
	}

	that.Game = NewGame(gameID)
	that.Status = RoomActive

	return that.Game, nil
}

// CurrentGame - returns the in-progress game, or nil when none is playing.
func (that *Room) CurrentGame() *Game {
	if that.Game == nil || that.Game.IsFinished() {
		return nil
	}

	return that.Game
}

// CompleteGame - records that the room's game reached a terminal status.
func (that *Room) CompleteGame() {
	that.Status = RoomCompleted
}

// AbandonGame - detaches an in-progress game after a mid-game disconnect and
// returns it. The room drops back to waiting so a new opponent can join.
func (that *Room) AbandonGame() *Game {
	game := that.CurrentGame()
	if game == nil {
		return nil
	}

	game.Abandon()
	that.Game = nil
	that.Status = RoomWaiting

	return game
}

func (that *Room) Touch() {
	that.LastActivity = time.Now()
}
