package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lunarhall/tictactoe-rooms/internal/config"
	"github.com/lunarhall/tictactoe-rooms/internal/hub"
	"github.com/lunarhall/tictactoe-rooms/internal/repository"
	"github.com/lunarhall/tictactoe-rooms/internal/repository/storage"
	"github.com/lunarhall/tictactoe-rooms/internal/service"
	"github.com/lunarhall/tictactoe-rooms/internal/store"
	"github.com/lunarhall/tictactoe-rooms/internal/transport/rest"
	"github.com/lunarhall/tictactoe-rooms/internal/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedis(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	sqliteStorage, err := storage.NewSQLite(conf.SQLiteStoragePath)
	if err != nil {
		return fmt.Errorf("could not open sqlite storage: %w", err)
	}

	defer func() {
		if err = sqliteStorage.Close(); err != nil {
			log.Error("could not close sqlite storage", "error", err)
		}
	}()

	if err = sqliteStorage.Init(ctx); err != nil {
		return fmt.Errorf("could not init sqlite storage: %w", err)
	}

	archiveRepo := repository.NewArchiveRepository(sqliteStorage.Connection)
	statsRepo := repository.NewStatsRepository(sqliteStorage.Connection)
	leaderboardRepo := repository.NewLeaderboardRepository(redisStorage.Connection)

	resultService := service.NewResultService(logger, archiveRepo, statsRepo, leaderboardRepo)

	roomStore := store.NewRoomStore()
	gameHub := hub.New(logger, roomStore, resultService, conf.Room.IdleTTL)

	go gameHub.Run(ctx)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)

		handlers := rest.NewHandlers(logger, leaderboardRepo, statsRepo, func() string {
			return time.Now().Format(repository.DateLayout)
		})

		if httpErr := rest.Start(conf.HTTPPort, handlers); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run WebSocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)

		wsServer := websocket.New(logger, gameHub)
		if wsErr := wsServer.Start(conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
