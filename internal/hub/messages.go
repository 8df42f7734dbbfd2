package hub

import (
	"encoding/json"
	"fmt"

	"github.com/lunarhall/tictactoe-rooms/internal/entity"
)

// Inbound message types.
const (
	TypeCreateRoom = "create_room"
	TypeJoinRoom   = "join_room"
	TypeStartGame  = "start_game"
	TypeMakeMove   = "make_move"
)

// Outbound message types.
const (
	TypeConnected    = "connected"
	TypeRoomCreated  = "room_created"
	TypePlayerJoined = "player_joined"
	TypeGameStarted  = "game_started"
	TypeMoveMade     = "move_made"
	TypePlayerLeft   = "player_left"
	TypeRoomExpired  = "room_expired"
	TypeError        = "error"
)

// Event is the closed set of things the coordinator reacts to. Every variant
// has exactly one handler in dispatch.
type Event interface {
	Session() string
}

type ConnectEvent struct {
	SessionID string
	Send      chan<- []byte
}

type DisconnectEvent struct {
	SessionID string
}

type CreateRoomEvent struct {
	SessionID  string
	PlayerName string
}

type JoinRoomEvent struct {
	SessionID  string
	RoomCode   string
	PlayerName string
}

type StartGameEvent struct {
	SessionID string
}

type MakeMoveEvent struct {
	SessionID string
	Position  *int
}

// MalformedEvent carries a payload that failed to parse; the coordinator
// answers it with an error reply and nothing else.
type MalformedEvent struct {
	SessionID string
	Reason    string
}

func (that ConnectEvent) Session() string    { return that.SessionID }
func (that DisconnectEvent) Session() string { return that.SessionID }
func (that CreateRoomEvent) Session() string { return that.SessionID }
func (that JoinRoomEvent) Session() string   { return that.SessionID }
func (that StartGameEvent) Session() string  { return that.SessionID }
func (that MakeMoveEvent) Session() string   { return that.SessionID }
func (that MalformedEvent) Session() string  { return that.SessionID }

// envelope is the raw JSON shape of every inbound message.
type envelope struct {
	Type       string `json:"type"`
	PlayerName string `json:"player_name"`
	RoomCode   string `json:"room_code"`
	Position   *int   `json:"position"`
}

// ParseMessage - turns a raw text payload into a typed event. A payload that
// is not a JSON object or names no known type becomes a MalformedEvent so the
// reply still reaches the originating connection.
func ParseMessage(sessionID string, payload []byte) Event {
	var msg envelope
	if err := json.Unmarshal(payload, &msg); err != nil {
		return MalformedEvent{SessionID: sessionID, Reason: "invalid JSON"}
	}

	switch msg.Type {
	case TypeCreateRoom:
		return CreateRoomEvent{SessionID: sessionID, PlayerName: msg.PlayerName}
	case TypeJoinRoom:
		return JoinRoomEvent{SessionID: sessionID, RoomCode: msg.RoomCode, PlayerName: msg.PlayerName}
	case TypeStartGame:
		return StartGameEvent{SessionID: sessionID}
	case TypeMakeMove:
		return MakeMoveEvent{SessionID: sessionID, Position: msg.Position}
	default:
		return MalformedEvent{SessionID: sessionID, Reason: fmt.Sprintf("unknown message type: %q", msg.Type)}
	}
}

// Outbound wire shapes.

type playerInfo struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

type gameInfo struct {
	ID     string    `json:"id"`
	Board  [9]string `json:"board"`
	Status string    `json:"status"`
}

type connectedMessage struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
}

type roomCreatedMessage struct {
	Type     string     `json:"type"`
	RoomCode string     `json:"room_code"`
	Player   playerInfo `json:"player"`
}

type playerJoinedMessage struct {
	Type         string       `json:"type"`
	RoomCode     string       `json:"room_code"`
	Players      []playerInfo `json:"players"`
	ReadyToStart bool         `json:"ready_to_start"`
}

type gameStartedMessage struct {
	Type          string   `json:"type"`
	Game          gameInfo `json:"game"`
	CurrentPlayer string   `json:"current_player"`
}

type moveMadeMessage struct {
	Type          string   `json:"type"`
	Game          gameInfo `json:"game"`
	Position      int      `json:"position"`
	Player        string   `json:"player"`
	CurrentPlayer string   `json:"current_player"`
	Winner        string   `json:"winner,omitempty"`
	Status        string   `json:"status"`
}

type playerLeftMessage struct {
	Type    string       `json:"type"`
	Players []playerInfo `json:"players"`
}

type roomExpiredMessage struct {
	Type     string `json:"type"`
	RoomCode string `json:"room_code"`
}

type errorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func playersOf(room *entity.Room) []playerInfo {
	players := make([]playerInfo, 0, len(room.Players))
	for _, player := range room.Players {
		players = append(players, playerInfo{Name: player.Name, Symbol: player.Symbol})
	}

	return players
}

func gameOf(game *entity.Game) gameInfo {
	return gameInfo{
		ID:     game.ID,
		Board:  game.Board,
		Status: game.Status,
	}
}
