package main

import (
	"context"
	"ctchen222/Tic-Tac-Toe-Solo/internal/api/service"
	"ctchen222/Tic-Tac-Toe-Solo/internal/config"
	"ctchen222/Tic-Tac-Toe-Solo/internal/db"
	"ctchen222/Tic-Tac-Toe-Solo/internal/logger"
	"ctchen222/Tic-Tac-Toe-Solo/internal/repository"
	"ctchen222/Tic-Tac-Toe-Solo/internal/server"
	"ctchen222/Tic-Tac-Toe-Solo/internal/telemetry"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
)

func main() {
	help := flag.Bool("help-env", false, "print the supported environment variables and exit")
	flag.Parse()
	if *help {
		fmt.Println(config.Usage())
		return
	}

	ctx := context.Background()
	cfg := config.MustLoad()

	// Initialize telemetry
	shutdown, err := telemetry.InitOtel(ctx, cfg.Telemetry)
	if err != nil {
		log.Fatalf("failed to initialize telemetry: %v", err)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	// Logger after telemetry so the otelslog bridge picks up the provider
	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	// Game store
	var gameRepo repository.GameRepository
	if cfg.UsesRedis() {
		rdb, err := db.NewRedisClient(ctx, cfg.Redis.Addr)
		if err != nil {
			log.Fatalf("failed to initialize redis: %v", err)
		}
		defer rdb.Close()
		gameRepo = repository.NewGameRepository(rdb, cfg.Redis.SessionTTL)
		slog.Info("storing games in redis", "redis.addr", cfg.Redis.Addr, "session.ttl", cfg.Redis.SessionTTL)
	} else {
		gameRepo = repository.NewMemoryGameRepository()
		slog.Info("storing games in memory")
	}

	metrics, err := telemetry.NewMetrics(otel.Meter("tic-tac-toe-solo"))
	if err != nil {
		log.Fatalf("failed to create metrics: %v", err)
	}

	// Create services
	gameService := service.NewGameService(gameRepo, nil, metrics)

	// Create the Gin-based server
	gin.SetMode(gin.ReleaseMode)
	srv := server.NewServer(gameService, cfg.ComputerDelay)

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: srv.Engine(),
	}

	go func() {
		slog.Info("http server started", "http.addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-stop

	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	slog.Info("Server exiting")
}
