package websocket

import (
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024

	// Outbound buffer per connection. A full buffer means the consumer is too
	// slow and frames for it are dropped; nobody else waits.
	sendBufferSize = 32
)

type client struct {
	logger *slog.Logger
	hub    gameHub

	conn      *websocket.Conn
	sessionID string

	send chan []byte
	done chan struct{}
}

func newClient(logger *slog.Logger, hub gameHub, conn *websocket.Conn, sessionID string) *client {
	return &client{
		logger:    logger.With("sessionID", sessionID),
		hub:       hub,
		conn:      conn,
		sessionID: sessionID,
		send:      make(chan []byte, sendBufferSize),
		done:      make(chan struct{}),
	}
}

// readPump - forwards inbound text payloads to the coordinator until the
// connection dies, then surfaces the disconnect.
func (that *client) readPump() {
	defer func() {
		that.hub.Disconnect(that.sessionID)
		close(that.done)
		_ = that.conn.Close()
	}()

	that.conn.SetReadLimit(maxMessageSize)
	_ = that.conn.SetReadDeadline(time.Now().Add(pongWait))
	that.conn.SetPongHandler(func(string) error {
		return that.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, payload, err := that.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				that.logger.Error("unexpected close", "error", err)
			}
			return
		}

		that.hub.HandleMessage(that.sessionID, payload)
	}
}

// writePump - drains the outbound channel onto the wire and keeps the
// connection alive with pings.
func (that *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = that.conn.Close()
	}()

	for {
		select {
		case <-that.done:
			return
		case payload := <-that.send:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				that.logger.Error("failed to write message", "error", err)
				return
			}
		case <-ticker.C:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
