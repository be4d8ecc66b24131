package repository

import (
	"context"
	"ctchen222/Tic-Tac-Toe-Solo/internal/game"
	"ctchen222/Tic-Tac-Toe-Solo/internal/match"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel"
)

//go:generate mockgen -source=game_repository.go -destination=repomock/mock_game_repository.go -package=repomock

var tracer = otel.Tracer("repository.game")

// ErrGameNotFound is returned when no live game exists under an id.
var ErrGameNotFound = errors.New("game not found")

// Redis hash fields of a game.
const (
	FieldBoard          = "board"
	FieldState          = "state"
	FieldOpeningPending = "opening_pending"
)

// GameRepository stores the live state of each game. Only the current
// position is kept; a reset overwrites it.
type GameRepository interface {
	Save(ctx context.Context, id string, s match.Snapshot) error
	FindByID(ctx context.Context, id string) (match.Snapshot, error)
	Delete(ctx context.Context, id string) error
}

type redisGameRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewGameRepository creates a new Redis-based GameRepository. Games expire
// ttl after their last move; a zero ttl keeps them forever.
func NewGameRepository(rdb *redis.Client, ttl time.Duration) GameRepository {
	return &redisGameRepository{rdb: rdb, ttl: ttl}
}

func gameKey(id string) string {
	return fmt.Sprintf("game:%s", id)
}

// Save writes the game state in a single transaction.
func (r *redisGameRepository) Save(ctx context.Context, id string, s match.Snapshot) error {
	ctx, span := tracer.Start(ctx, "GameRepository.Save")
	defer span.End()

	boardJSON, err := json.Marshal(s.Board)
	if err != nil {
		return fmt.Errorf("failed to marshal board: %w", err)
	}

	key := gameKey(id)
	pipe := r.rdb.TxPipeline()
	pipe.HSet(ctx, key,
		FieldBoard, boardJSON,
		FieldState, string(s.State),
		FieldOpeningPending, strconv.FormatBool(s.OpeningPending),
	)
	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save game in redis: %w", err)
	}
	return nil
}

// FindByID retrieves the current game state from Redis.
func (r *redisGameRepository) FindByID(ctx context.Context, id string) (match.Snapshot, error) {
	ctx, span := tracer.Start(ctx, "GameRepository.FindByID")
	defer span.End()

	data, err := r.rdb.HGetAll(ctx, gameKey(id)).Result()
	if err != nil {
		return match.Snapshot{}, fmt.Errorf("failed to get game state from redis: %w", err)
	}
	if len(data) == 0 {
		return match.Snapshot{}, ErrGameNotFound
	}

	var board game.Board
	if err := json.Unmarshal([]byte(data[FieldBoard]), &board); err != nil {
		return match.Snapshot{}, fmt.Errorf("failed to unmarshal board: %w", err)
	}
	opening, err := strconv.ParseBool(data[FieldOpeningPending])
	if err != nil {
		return match.Snapshot{}, fmt.Errorf("failed to parse %s: %w", FieldOpeningPending, err)
	}

	return match.Snapshot{
		Board:          board,
		State:          match.State(data[FieldState]),
		OpeningPending: opening,
	}, nil
}

// Delete removes a game. Deleting a missing game is not an error.
func (r *redisGameRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "GameRepository.Delete")
	defer span.End()

	if err := r.rdb.Del(ctx, gameKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete game from redis: %w", err)
	}
	return nil
}
