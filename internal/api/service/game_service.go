package service

import (
	"context"
	"ctchen222/Tic-Tac-Toe-Solo/internal/bot"
	"ctchen222/Tic-Tac-Toe-Solo/internal/game"
	"ctchen222/Tic-Tac-Toe-Solo/internal/match"
	"ctchen222/Tic-Tac-Toe-Solo/internal/repository"
	"ctchen222/Tic-Tac-Toe-Solo/internal/telemetry"
	"ctchen222/Tic-Tac-Toe-Solo/pkg/proto"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("service.game")

const lockStripes = 64

// GameService defines the operations a presentation layer drives.
type GameService interface {
	Create(ctx context.Context) (*proto.GameView, error)
	Get(ctx context.Context, id string) (*proto.GameView, error)
	SubmitMove(ctx context.Context, id string, row, col int) (*proto.GameView, error)
	ComputerMove(ctx context.Context, id string) (*proto.GameView, error)
	Reset(ctx context.Context, id string) (*proto.GameView, error)
}

type gameService struct {
	repo    repository.GameRepository
	rng     bot.Rand
	metrics *telemetry.Metrics
	locks   [lockStripes]sync.Mutex
}

// NewGameService creates a GameService. rng must be safe for concurrent use;
// nil selects bot.NewRand. metrics may be nil.
func NewGameService(repo repository.GameRepository, rng bot.Rand, metrics *telemetry.Metrics) GameService {
	if rng == nil {
		rng = bot.NewRand()
	}
	return &gameService{repo: repo, rng: rng, metrics: metrics}
}

// lock serialises every operation on one game id.
func (s *gameService) lock(id string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return &s.locks[h.Sum32()%lockStripes]
}

// Create starts a new game under a fresh id.
func (s *gameService) Create(ctx context.Context) (*proto.GameView, error) {
	id := uuid.New().String()
	ctx, span := tracer.Start(ctx, "GameService.Create", trace.WithAttributes(
		attribute.String("game.id", id),
	))
	defer span.End()

	c := match.New(s.rng)
	if err := s.repo.Save(ctx, id, c.Snapshot()); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to save new game")
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	s.metrics.GameStarted(ctx)

	span.SetAttributes(attribute.String("game.state", string(c.State())))
	slog.InfoContext(ctx, "game created", "game.id", id, "game.state", c.State())
	return proto.NewGameView(id, c, nil), nil
}

// Get returns the current view of a game.
func (s *gameService) Get(ctx context.Context, id string) (*proto.GameView, error) {
	ctx, span := tracer.Start(ctx, "GameService.Get", trace.WithAttributes(
		attribute.String("game.id", id),
	))
	defer span.End()

	c, err := s.load(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to load game")
		return nil, err
	}
	return proto.NewGameView(id, c, nil), nil
}

// SubmitMove applies the human's move.
func (s *gameService) SubmitMove(ctx context.Context, id string, row, col int) (*proto.GameView, error) {
	ctx, span := tracer.Start(ctx, "GameService.SubmitMove", trace.WithAttributes(
		attribute.String("game.id", id),
		attribute.Int("move.row", row),
		attribute.Int("move.col", col),
	))
	defer span.End()

	return s.apply(ctx, span, id, func(c *match.Controller) (*match.Transition, error) {
		tr, err := c.SubmitHumanMove(row, col)
		if err != nil {
			return nil, err
		}
		return &tr, nil
	})
}

// ComputerMove lets the computer play. The caller decides when.
func (s *gameService) ComputerMove(ctx context.Context, id string) (*proto.GameView, error) {
	ctx, span := tracer.Start(ctx, "GameService.ComputerMove", trace.WithAttributes(
		attribute.String("game.id", id),
	))
	defer span.End()

	return s.apply(ctx, span, id, func(c *match.Controller) (*match.Transition, error) {
		tr, err := c.ComputerMove()
		if err != nil {
			return nil, err
		}
		span.SetAttributes(
			attribute.Int("move.row", tr.Move.Row),
			attribute.Int("move.col", tr.Move.Col),
			attribute.Bool("move.opening", tr.Opening),
			attribute.Int("search.nodes", tr.Nodes),
		)
		return &tr, nil
	})
}

// Reset starts the game over under the same id.
func (s *gameService) Reset(ctx context.Context, id string) (*proto.GameView, error) {
	ctx, span := tracer.Start(ctx, "GameService.Reset", trace.WithAttributes(
		attribute.String("game.id", id),
	))
	defer span.End()

	view, err := s.apply(ctx, span, id, func(c *match.Controller) (*match.Transition, error) {
		c.Reset()
		return nil, nil
	})
	if err == nil {
		s.metrics.GameStarted(ctx)
	}
	return view, err
}

func (s *gameService) load(ctx context.Context, id string) (*match.Controller, error) {
	snap, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c, err := match.Restore(snap, s.rng)
	if err != nil {
		return nil, fmt.Errorf("failed to restore game %s: %w", id, err)
	}
	return c, nil
}

// apply runs op on the stored game and saves the result. Rejected moves are
// returned as is and nothing is saved.
func (s *gameService) apply(ctx context.Context, span trace.Span, id string, op func(*match.Controller) (*match.Transition, error)) (*proto.GameView, error) {
	mu := s.lock(id)
	mu.Lock()
	defer mu.Unlock()

	c, err := s.load(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to load game")
		return nil, err
	}

	tr, err := op(c)
	if err != nil {
		if game.IsRejection(err) {
			slog.DebugContext(ctx, "move rejected", "game.id", id, "game.state", c.State(), "reason", err)
			span.SetAttributes(attribute.Bool("move.valid", false))
			return nil, err
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to apply move")
		return nil, err
	}

	if err := s.repo.Save(ctx, id, c.Snapshot()); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to save game")
		return nil, fmt.Errorf("failed to save game %s: %w", id, err)
	}

	if tr != nil {
		span.SetAttributes(attribute.Bool("move.valid", true), attribute.String("game.state", string(tr.State)))
		s.metrics.MoveApplied(ctx, *tr)
		slog.InfoContext(ctx, "move applied",
			"game.id", id,
			"move.mark", tr.Mark,
			"move.row", tr.Move.Row,
			"move.col", tr.Move.Col,
			"game.state", tr.State,
		)
		if tr.State == match.GameOver {
			slog.InfoContext(ctx, "game over", "game.id", id, "game.result", tr.Outcome.Result, "game.winner", tr.Outcome.Winner)
		}
	}
	return proto.NewGameView(id, c, tr), nil
}
