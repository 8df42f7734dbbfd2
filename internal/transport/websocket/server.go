package websocket

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lunarhall/tictactoe-rooms/internal/pkg"
)

// gameHub is the coordinator surface the transport needs: hand over a fresh
// session with its outbound channel, forward raw payloads, report the close.
type gameHub interface {
	Connect(sessionID string, send chan<- []byte)
	Disconnect(sessionID string)
	HandleMessage(sessionID string, payload []byte)
}

type Server struct {
	logger   *slog.Logger
	hub      gameHub
	upgrader websocket.Upgrader
}

func New(logger *slog.Logger, hub gameHub) *Server {
	return &Server{
		logger: logger,
		hub:    hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
	}
}

// Start - starts the WebSocket server.
func (that *Server) Start(port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.handleWS)

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		IdleTimeout: 30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// handleWS - upgrades the connection, mints its session identity and starts
// the pumps.
func (that *Server) handleWS(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "handleWS")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	sessionID := pkg.GenerateSessionID()

	client := newClient(that.logger, that.hub, conn, sessionID)
	that.hub.Connect(sessionID, client.send)

	log.Info("WebSocket connection established", "sessionID", sessionID)

	go client.writePump()
	client.readPump()
}
