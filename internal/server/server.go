package server

import (
	"ctchen222/Tic-Tac-Toe-Solo/internal/api/controller"
	"ctchen222/Tic-Tac-Toe-Solo/internal/api/service"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("server")

type Server struct {
	engine   *gin.Engine
	games    service.GameService
	delay    time.Duration
	upgrader websocket.Upgrader
}

// NewServer wires the HTTP API and the websocket endpoint. delay is how long
// a websocket client waits before the computer replies.
func NewServer(games service.GameService, delay time.Duration) *Server {
	s := &Server{
		engine: gin.New(),
		games:  games,
		delay:  delay,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	s.engine.Use(gin.Recovery())
	s.registerHandlers()
	return s
}

func (s *Server) registerHandlers() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine.GET("/ws", s.handleWebSocket)

	controller.NewGameController(s.games).RegisterRoutes(s.engine.Group("/api"))
}

// Engine returns the handler to serve.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// handleWebSocket upgrades the connection and plays one session on it until
// the client goes away.
func (s *Server) handleWebSocket(c *gin.Context) {
	r := c.Request
	ctx, span := tracer.Start(r.Context(), "server.handleWebSocket", trace.WithAttributes(
		attribute.String("http.url", r.URL.String()),
		attribute.String("http.method", r.Method),
	))

	conn, err := s.upgrader.Upgrade(c.Writer, r, nil)
	if err != nil {
		slog.ErrorContext(ctx, "failed to upgrade connection", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to upgrade connection")
		span.End()
		return
	}

	gameID := r.URL.Query().Get("gameId")
	if gameID != "" {
		span.SetAttributes(attribute.String("game.id", gameID))
	}
	span.End()

	sess := newSession(conn, s.games, s.delay)
	sess.run(ctx, gameID)
}
