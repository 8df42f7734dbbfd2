package hub

import (
	"errors"
	"fmt"

	"github.com/lunarhall/tictactoe-rooms/internal/apperror"
	"github.com/lunarhall/tictactoe-rooms/internal/pkg"
)

func (that *Hub) handleConnect(event ConnectEvent) {
	log := that.logger.With("method", "handleConnect")

	that.registry.Register(event.SessionID, event.Send)

	that.sendTo(event.SessionID, connectedMessage{
		Type:      TypeConnected,
		SessionID: event.SessionID,
	})

	log.Info("session connected", "sessionID", event.SessionID)
}

func (that *Hub) handleCreateRoom(event CreateRoomEvent) {
	log := that.logger.With("method", "handleCreateRoom")

	if event.PlayerName == "" {
		that.sendError(event.SessionID, "player_name is required")
		return
	}

	room, err := that.store.CreateRoom()
	if err != nil {
		log.Error("failed to create room", "error", err)
		that.sendError(event.SessionID, "failed to create room")
		return
	}

	player, err := room.AddPlayer(event.PlayerName, event.SessionID)
	if err != nil {
		log.Error("failed to seat creator", "roomCode", room.Code, "error", err)
		that.sendError(event.SessionID, "failed to create room")
		return
	}

	that.store.BindSession(event.SessionID, room.Code)
	room.Touch()

	that.sendTo(event.SessionID, roomCreatedMessage{
		Type:     TypeRoomCreated,
		RoomCode: room.Code,
		Player:   playerInfo{Name: player.Name, Symbol: player.Symbol},
	})

	log.Info("room created", "roomCode", room.Code, "player", player.Name)
}

func (that *Hub) handleJoinRoom(event JoinRoomEvent) {
	log := that.logger.With("method", "handleJoinRoom")

	if event.RoomCode == "" || event.PlayerName == "" {
		that.sendError(event.SessionID, "room_code and player_name are required")
		return
	}

	room, err := that.store.GetByCode(event.RoomCode)
	if errors.Is(err, apperror.ErrRoomNotFound) {
		that.sendError(event.SessionID, "room not found")
		return
	}
	if err != nil {
		log.Error("failed to look up room", "roomCode", event.RoomCode, "error", err)
		that.sendError(event.SessionID, "failed to join room")
		return
	}

	if _, err = room.AddPlayer(event.PlayerName, event.SessionID); err != nil {
		that.sendError(event.SessionID, "room is full")
		return
	}

	that.store.BindSession(event.SessionID, room.Code)
	room.Touch()

	that.broadcast(room, playerJoinedMessage{
		Type:         TypePlayerJoined,
		RoomCode:     room.Code,
		Players:      playersOf(room),
		ReadyToStart: room.ReadyToStart(),
	})

	log.Info("player joined room", "roomCode", room.Code, "player", event.PlayerName)
}

func (that *Hub) handleStartGame(event StartGameEvent) {
	log := that.logger.With("method", "handleStartGame")

	room, err := that.store.RoomBySession(event.SessionID)
	if err != nil {
		that.sendError(event.SessionID, "you are not in a room")
		return
	}

	game, err := room.StartGame(pkg.GenerateGameID())
	if errors.Is(err, apperror.ErrRoomNotReady) {
		that.sendError(event.SessionID, "room is not ready to start")
		return
	}
	if err != nil {
		log.Error("failed to start game", "roomCode", room.Code, "error", err)
		that.sendError(event.SessionID, "failed to start game")
		return
	}

	room.Touch()

	that.broadcast(room, gameStartedMessage{
		Type:          TypeGameStarted,
		Game:          gameOf(game),
		CurrentPlayer: game.Turn,
	})

	log.Info("game started", "roomCode", room.Code, "gameID", game.ID)
}

func (that *Hub) handleMakeMove(event MakeMoveEvent) {
	log := that.logger.With("method", "handleMakeMove")

	if event.Position == nil {
		that.sendError(event.SessionID, "position is required")
		return
	}

	room, err := that.store.RoomBySession(event.SessionID)
	if err != nil {
		that.sendError(event.SessionID, "you are not in a room")
		return
	}

	player := room.PlayerBySession(event.SessionID)
	if player == nil {
		that.sendError(event.SessionID, "you are not in a room")
		return
	}

	game := room.CurrentGame()
	if game == nil {
		that.sendError(event.SessionID, "no active game")
		return
	}

	// Turn authorization comes before cell validity: an out-of-turn move is
	// rejected even on a bad position.
	if player.Symbol != game.Turn {
		that.sendError(event.SessionID, apperror.ErrNotYourTurn.Error())
		return
	}

	if err = game.ApplyMove(*event.Position); err != nil {
		that.sendError(event.SessionID, moveErrorText(err))
		return
	}

	room.Touch()

	if game.IsFinished() {
		room.CompleteGame()
		that.recordResult(room, game)
	}

	that.broadcast(room, moveMadeMessage{
		Type:          TypeMoveMade,
		Game:          gameOf(game),
		Position:      *event.Position,
		Player:        player.Symbol,
		CurrentPlayer: game.Turn,
		Winner:        game.Winner,
		Status:        game.Status,
	})

	log.Info("move made", "roomCode", room.Code, "player", player.Symbol, "position", *event.Position)
}

func (that *Hub) handleDisconnect(event DisconnectEvent) {
	log := that.logger.With("method", "handleDisconnect")

	that.registry.Unregister(event.SessionID)

	room, err := that.store.RoomBySession(event.SessionID)
	if err != nil {
		log.Info("session disconnected", "sessionID", event.SessionID)
		return
	}

	// A mid-game disconnect abandons the game instead of forfeiting it; the
	// room goes back to waiting so a new opponent can take the empty seat.
	// Recorded while both seats are still known.
	if game := room.AbandonGame(); game != nil {
		that.recordResult(room, game)
	}

	room.RemovePlayer(event.SessionID)
	that.store.ReleaseSession(event.SessionID)

	if room.IsEmpty() {
		that.store.DeleteRoom(room.Code)
		log.Info("destroyed empty room", "roomCode", room.Code)
		return
	}

	room.Touch()

	that.broadcast(room, playerLeftMessage{
		Type:    TypePlayerLeft,
		Players: playersOf(room),
	})

	log.Info("player left room", "roomCode", room.Code, "sessionID", event.SessionID)
}

// moveErrorText - user-facing text for the expected move rejections.
func moveErrorText(err error) string {
	switch {
	case errors.Is(err, apperror.ErrGameFinished):
		return "game is already finished"
	case errors.Is(err, apperror.ErrCellOccupied):
		return "cell is already occupied"
	case errors.Is(err, apperror.ErrInvalidCell):
		return "position must be between 0 and 8"
	default:
		return fmt.Sprintf("failed to make move: %v", err)
	}
}
