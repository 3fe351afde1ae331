package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"commons-backend/internal/database"
	"commons-backend/internal/events"
	"commons-backend/internal/handlers"
	"commons-backend/internal/logger"
	"commons-backend/internal/middleware"
	"commons-backend/internal/repository"
	"commons-backend/internal/router"
	"commons-backend/internal/services"
	"commons-backend/internal/websocket"
)

var skipMigrations bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, websocket hub and expiry sweeper",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply migrations on startup")
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	logger.Logger.Info("Starting Commons Backend", zap.String("env", cfg.Env))

	// ──── PostgreSQL ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("postgres connection failed: %w", err)
	}
	defer pool.Close()
	logger.Logger.Info("PostgreSQL connected")

	if !skipMigrations {
		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("database migration failed: %w", err)
		}
	}

	// ──── Redis ────
	redisClients, err := database.NewRedisClients(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	defer redisClients.Close()
	logger.Logger.Info("Redis connected")

	// ──── Event bus ────
	bus, err := newEventBus(redisClients)
	if err != nil {
		return err
	}
	defer bus.Close()

	// ──── Services ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	checkInRepo := repository.NewCheckInRepo(pool)
	checkInService := services.NewCheckInService(checkInRepo, bus, cfg.MaxDurationMinutes)

	sweeper := services.NewExpirySweeper(checkInRepo, cfg.SweepInterval)
	sweeper.Start()
	defer sweeper.Stop()

	wsHub := websocket.NewHub(bus, jwtAuth)
	defer wsHub.Close()

	// ──── HTTP ────
	r := router.New(router.Deps{
		JWTAuth:     jwtAuth,
		RateLimiter: middleware.NewRateLimiter(redisClients.Commands, cfg.RateLimitRequests, cfg.RateLimitWindow, "rate:api"),
		CheckIns:    handlers.NewCheckInHandler(checkInService),
		Health: handlers.NewHealthHandler(map[string]handlers.Pinger{
			"postgres": pool,
			"redis":    redisClients,
		}),
		WebSocket:   wsHub.HandleWebSocket,
		FrontendURL: cfg.FrontendURL,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Logger.Info("Shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Logger.Error("HTTP shutdown failed", zap.Error(err))
		}
	}()

	logger.Logger.Info("Commons Backend ready",
		zap.String("api", fmt.Sprintf("http://localhost:%s/api/v1", cfg.Port)),
		zap.String("ws", fmt.Sprintf("ws://localhost:%s/api/v1/ws", cfg.Port)),
	)

	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	<-shutdownDone
	return nil
}

// newEventBus prefers NATS when NATS_URL is set and falls back to redis pub/sub.
func newEventBus(redisClients *database.RedisClients) (events.Bus, error) {
	if cfg.NATSURL == "" {
		logger.Logger.Info("Event bus: redis pub/sub")
		return events.NewRedisBus(redisClients.Commands, redisClients.PubSub), nil
	}

	bus, err := events.NewNATSBus(cfg.NATSURL)
	if err != nil {
		return nil, fmt.Errorf("nats connection failed: %w", err)
	}
	logger.Logger.Info("Event bus: NATS", zap.String("url", cfg.NATSURL))
	return bus, nil
}
