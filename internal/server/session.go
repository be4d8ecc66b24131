package server

import (
	"context"
	"ctchen222/Tic-Tac-Toe-Solo/internal/api/service"
	"ctchen222/Tic-Tac-Toe-Solo/internal/game"
	"ctchen222/Tic-Tac-Toe-Solo/internal/match"
	"ctchen222/Tic-Tac-Toe-Solo/internal/repository"
	"ctchen222/Tic-Tac-Toe-Solo/internal/validator"
	"ctchen222/Tic-Tac-Toe-Solo/pkg/proto"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Connection abstracts the websocket connection.
type Connection interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (int, []byte, error)
	Close() error
}

// session plays one game over one connection. All reads and writes happen on
// the goroutine calling run.
type session struct {
	conn   Connection
	games  service.GameService
	delay  time.Duration
	gameID string
}

func newSession(conn Connection, games service.GameService, delay time.Duration) *session {
	return &session{conn: conn, games: games, delay: delay}
}

// run attaches to gameID, or a fresh game when it is empty or unknown, and
// then reads client messages until the connection fails or ctx ends.
func (s *session) run(ctx context.Context, gameID string) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer s.conn.Close()

	view, err := s.attach(ctx, gameID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to start session", "game.id", gameID, "error", err)
		s.sendError(ctx, "failed to start game")
		return
	}
	s.sendUpdate(ctx, view)
	s.computerTurn(ctx, view)

	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.WarnContext(ctx, "player connection error", "game.id", s.gameID, "error", err)
			}
			return
		}
		s.handleMessage(ctx, msg)
	}
}

func (s *session) attach(ctx context.Context, gameID string) (*proto.GameView, error) {
	if gameID != "" {
		view, err := s.games.Get(ctx, gameID)
		switch {
		case err == nil:
			s.gameID = view.ID
			slog.InfoContext(ctx, "session resumed", "game.id", view.ID)
			return view, nil
		case errors.Is(err, repository.ErrGameNotFound):
			s.sendError(ctx, "game not found, starting a new one")
		default:
			return nil, err
		}
	}

	view, err := s.games.Create(ctx)
	if err != nil {
		return nil, err
	}
	s.gameID = view.ID
	return view, nil
}

// handleMessage decodes and dispatches a client message.
func (s *session) handleMessage(ctx context.Context, raw []byte) {
	ctx, span := tracer.Start(ctx, "session.handleMessage", trace.WithAttributes(
		attribute.String("game.id", s.gameID),
	))
	defer span.End()

	var message proto.ClientToServerMessage
	if err := json.Unmarshal(raw, &message); err != nil {
		slog.WarnContext(ctx, "error unmarshalling message", "game.id", s.gameID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Error unmarshalling message")
		s.sendError(ctx, "malformed message")
		return
	}

	if err := validator.Struct(message); err != nil {
		slog.WarnContext(ctx, "invalid message from player", "game.id", s.gameID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid message format")
		s.sendError(ctx, err.Error())
		return
	}

	span.SetAttributes(attribute.String("message.type", message.Type))

	var (
		view *proto.GameView
		err  error
	)
	switch message.Type {
	case proto.TypeMove:
		view, err = s.games.SubmitMove(ctx, s.gameID, message.Position[0], message.Position[1])
	case proto.TypeReset:
		view, err = s.games.Reset(ctx, s.gameID)
	}
	if err != nil {
		s.sendFailure(ctx, err)
		return
	}

	s.sendUpdate(ctx, view)
	s.computerTurn(ctx, view)
}

// computerTurn lets the computer reply after the configured pause when view
// is waiting on it.
func (s *session) computerTurn(ctx context.Context, view *proto.GameView) {
	if view.State != match.AwaitingComputer {
		return
	}

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
	}

	view, err := s.games.ComputerMove(ctx, s.gameID)
	if err != nil {
		s.sendFailure(ctx, err)
		return
	}
	s.sendUpdate(ctx, view)
}

func (s *session) sendFailure(ctx context.Context, err error) {
	switch {
	case game.IsRejection(err):
		s.sendError(ctx, err.Error())
	case errors.Is(err, repository.ErrGameNotFound):
		s.sendError(ctx, "game not found")
	default:
		slog.ErrorContext(ctx, "failed to apply message", "game.id", s.gameID, "error", err)
		s.sendError(ctx, "internal server error")
	}
}

func (s *session) sendUpdate(ctx context.Context, view *proto.GameView) {
	s.send(ctx, &proto.ServerToClientMessage{Type: proto.TypeUpdate, Game: view})
}

func (s *session) sendError(ctx context.Context, reason string) {
	s.send(ctx, &proto.ServerToClientMessage{Type: proto.TypeError, Reason: reason})
}

func (s *session) send(ctx context.Context, message *proto.ServerToClientMessage) {
	data, err := json.Marshal(message)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling message", "error", err)
		return
	}
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.ErrorContext(ctx, "error writing message to player", "game.id", s.gameID, "error", err)
	}
}
