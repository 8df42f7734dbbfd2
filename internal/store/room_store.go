// Package store holds the live room and session tables. A RoomStore is owned
// by the coordinator and mutated only on its goroutine; it carries no locks on
// purpose.
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/lunarhall/tictactoe-rooms/internal/apperror"
	"github.com/lunarhall/tictactoe-rooms/internal/entity"
	"github.com/lunarhall/tictactoe-rooms/internal/pkg"
)

const codeRetries = 5

var ErrCodeExhausted = errors.New("could not allocate a free room code")

type RoomStore struct {
	rooms    map[string]*entity.Room
	sessions map[string]string // session id -> room code

	newCode func() (string, error)
}

func NewRoomStore() *RoomStore {
	return &RoomStore{
		rooms:    make(map[string]*entity.Room),
		sessions: make(map[string]string),
		newCode:  pkg.GenerateRoomCode,
	}
}

// CreateRoom - allocates a room under a fresh code. Generation retries on the
// unlikely collision with a live room.
func (that *RoomStore) CreateRoom() (*entity.Room, error) {
	for i := 0; i < codeRetries; i++ {
		code, err := that.newCode()
		if err != nil {
			return nil, fmt.Errorf("failed to generate room code: %w", err)
		}

		if _, taken := that.rooms[code]; taken {
			continue
		}

		room := entity.NewRoom(code)
		that.rooms[code] = room

		return room, nil
	}

	return nil, ErrCodeExhausted
}

func (that *RoomStore) GetByCode(code string) (*entity.Room, error) {
	room, ok := that.rooms[code]
	if !ok {
		return nil, apperror.ErrRoomNotFound
	}

	return room, nil
}

// BindSession - remembers which room a session occupies. Lookup only, never
// ownership: the room still owns the player.
func (that *RoomStore) BindSession(sessionID, code string) {
	that.sessions[sessionID] = code
}

func (that *RoomStore) ReleaseSession(sessionID string) {
	delete(that.sessions, sessionID)
}

func (that *RoomStore) RoomBySession(sessionID string) (*entity.Room, error) {
	code, ok := that.sessions[sessionID]
	if !ok {
		return nil, apperror.ErrPlayerNotFound
	}

	return that.GetByCode(code)
}

// DeleteRoom - destroys the room and unbinds any sessions still pointing at
// it.
func (that *RoomStore) DeleteRoom(code string) {
	delete(that.rooms, code)

	for sessionID, roomCode := range that.sessions {
		if roomCode == code {
			delete(that.sessions, sessionID)
		}
	}
}

// IdleRooms - rooms with no activity since the cutoff, for the expiry sweep.
func (that *RoomStore) IdleRooms(cutoff time.Time) []*entity.Room {
	var idle []*entity.Room
	for _, room := range that.rooms {
		if room.LastActivity.Before(cutoff) {
			idle = append(idle, room)
		}
	}

	return idle
}

func (that *RoomStore) Len() int {
	return len(that.rooms)
}
