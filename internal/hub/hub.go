// Package hub is the session coordinator: a single-goroutine reactor that
// owns the room tables and the connection registry. Every inbound event is
// handled to completion before the next one, which is the only thing keeping
// two near-simultaneous moves from corrupting a grid.
package hub

import (
	"context"
	"log/slog"
	"time"

	"github.com/lunarhall/tictactoe-rooms/internal/entity"
	"github.com/lunarhall/tictactoe-rooms/internal/store"
)

const (
	eventBuffer    = 256
	sweepInterval  = time.Minute
	recordTimeout  = 5 * time.Second
	faultReplyText = "internal server error"
)

type resultRecorder interface {
	RecordGame(ctx context.Context, record *entity.GameRecord) error
}

type Hub struct {
	logger   *slog.Logger
	store    *store.RoomStore
	registry *Registry
	results  resultRecorder

	events  chan Event
	idleTTL time.Duration
}

func New(logger *slog.Logger, roomStore *store.RoomStore, results resultRecorder, idleTTL time.Duration) *Hub {
	return &Hub{
		logger:   logger.With("component", "hub"),
		store:    roomStore,
		registry: NewRegistry(),
		results:  results,

		events:  make(chan Event, eventBuffer),
		idleTTL: idleTTL,
	}
}

// Connect - registers a connection's outbound channel under a fresh session.
func (that *Hub) Connect(sessionID string, send chan<- []byte) {
	that.events <- ConnectEvent{SessionID: sessionID, Send: send}
}

// Disconnect - tears down the session's room membership. The connection close
// is the only cancellation signal a session has.
func (that *Hub) Disconnect(sessionID string) {
	that.events <- DisconnectEvent{SessionID: sessionID}
}

// HandleMessage - parses one raw inbound payload and queues it for the
// reactor. Called from the connection's read goroutine, so messages of one
// session keep their arrival order.
func (that *Hub) HandleMessage(sessionID string, payload []byte) {
	that.events <- ParseMessage(sessionID, payload)
}

// Run - drives the reactor until the context is canceled.
func (that *Hub) Run(ctx context.Context) {
	log := that.logger.With("method", "Run")

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("coordinator stopped")
			return
		case event := <-that.events:
			that.dispatch(event)
		case now := <-ticker.C:
			that.sweepIdleRooms(now)
		}
	}
}

// dispatch - routes one event to its handler. A panicking handler must not
// take the reactor down with it: the originating connection gets a generic
// failure notice and the fault is logged.
func (that *Hub) dispatch(event Event) {
	defer func() {
		if r := recover(); r != nil {
			that.logger.Error("recovered from handler panic", "session", event.Session(), "panic", r)
			that.sendError(event.Session(), faultReplyText)
		}
	}()

	switch event := event.(type) {
	case ConnectEvent:
		that.handleConnect(event)
	case DisconnectEvent:
		that.handleDisconnect(event)
	case CreateRoomEvent:
		that.handleCreateRoom(event)
	case JoinRoomEvent:
		that.handleJoinRoom(event)
	case StartGameEvent:
		that.handleStartGame(event)
	case MakeMoveEvent:
		that.handleMakeMove(event)
	case MalformedEvent:
		that.sendError(event.SessionID, event.Reason)
	default:
		that.logger.Error("event without handler", "session", event.Session())
		that.sendError(event.Session(), faultReplyText)
	}
}

// sweepIdleRooms - destroys rooms with no activity for the idle TTL,
// notifying any occupants still connected.
func (that *Hub) sweepIdleRooms(now time.Time) {
	log := that.logger.With("method", "sweepIdleRooms")

	for _, room := range that.store.IdleRooms(now.Add(-that.idleTTL)) {
		if game := room.AbandonGame(); game != nil {
			that.recordResult(room, game)
		}

		that.broadcast(room, roomExpiredMessage{Type: TypeRoomExpired, RoomCode: room.Code})
		that.store.DeleteRoom(room.Code)

		log.Info("destroyed idle room", "roomCode", room.Code)
	}
}

// recordResult - snapshots the finished game and hands it to storage off the
// reactor goroutine.
func (that *Hub) recordResult(room *entity.Room, game *entity.Game) {
	record := &entity.GameRecord{
		GameID:     game.ID,
		RoomCode:   room.Code,
		Winner:     game.Winner,
		Status:     game.Status,
		Moves:      game.Moves,
		StartedAt:  game.StartedAt,
		FinishedAt: time.Now(),
	}

	if player := room.PlayerBySymbol(entity.PlayerX); player != nil {
		record.PlayerX = player.Name
	}
	if player := room.PlayerBySymbol(entity.PlayerO); player != nil {
		record.PlayerO = player.Name
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()

		if err := that.results.RecordGame(ctx, record); err != nil {
			that.logger.Error("failed to record game result", "gameID", record.GameID, "error", err)
		}
	}()
}
