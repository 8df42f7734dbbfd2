package hub

import (
	"encoding/json"

	"github.com/lunarhall/tictactoe-rooms/internal/entity"
)

// broadcast - delivers the message to every current occupant of the room.
// Best-effort, at-most-once: a session without a live channel is skipped, and
// delivery order across occupants is unspecified.
func (that *Hub) broadcast(room *entity.Room, message any) {
	payload, err := json.Marshal(message)
	if err != nil {
		that.logger.Error("failed to marshal broadcast", "error", err)
		return
	}

	for _, player := range room.Players {
		if !that.registry.Send(player.SessionID, payload) {
			that.logger.Warn("skipped broadcast to dead session", "sessionID", player.SessionID)
		}
	}
}

// sendTo - delivers the message to one session only.
func (that *Hub) sendTo(sessionID string, message any) {
	payload, err := json.Marshal(message)
	if err != nil {
		that.logger.Error("failed to marshal message", "error", err)
		return
	}

	if !that.registry.Send(sessionID, payload) {
		that.logger.Warn("skipped send to dead session", "sessionID", sessionID)
	}
}

// sendError - structured error reply to the originating connection; errors
// are never broadcast.
func (that *Hub) sendError(sessionID, text string) {
	that.sendTo(sessionID, errorMessage{Type: TypeError, Message: text})
}
