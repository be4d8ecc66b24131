package telemetry

import (
	"context"
	"ctchen222/Tic-Tac-Toe-Solo/internal/game"
	"ctchen222/Tic-Tac-Toe-Solo/internal/match"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records game activity.
type Metrics struct {
	gamesStarted  metric.Int64Counter
	gamesFinished metric.Int64Counter
	moves         metric.Int64Counter
	searchNodes   metric.Int64Histogram
}

// NewMetrics creates the game instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	var (
		m   Metrics
		err error
	)
	if m.gamesStarted, err = meter.Int64Counter("ttt.games.started",
		metric.WithDescription("Games started, including resets")); err != nil {
		return nil, fmt.Errorf("failed to create games.started counter: %w", err)
	}
	if m.gamesFinished, err = meter.Int64Counter("ttt.games.finished",
		metric.WithDescription("Games that reached a win or a draw")); err != nil {
		return nil, fmt.Errorf("failed to create games.finished counter: %w", err)
	}
	if m.moves, err = meter.Int64Counter("ttt.moves",
		metric.WithDescription("Moves applied, by mark")); err != nil {
		return nil, fmt.Errorf("failed to create moves counter: %w", err)
	}
	if m.searchNodes, err = meter.Int64Histogram("ttt.search.nodes",
		metric.WithDescription("Positions visited by one minimax search"),
		metric.WithUnit("{node}")); err != nil {
		return nil, fmt.Errorf("failed to create search.nodes histogram: %w", err)
	}
	return &m, nil
}

// GameStarted counts a new or reset game.
func (m *Metrics) GameStarted(ctx context.Context) {
	if m == nil {
		return
	}
	m.gamesStarted.Add(ctx, 1)
}

// MoveApplied counts a move and, when it ended the game, the result.
func (m *Metrics) MoveApplied(ctx context.Context, tr match.Transition) {
	if m == nil {
		return
	}
	m.moves.Add(ctx, 1, metric.WithAttributes(attribute.String("mark", string(tr.Mark))))
	if tr.Mark == game.Computer && !tr.Opening {
		m.searchNodes.Record(ctx, int64(tr.Nodes))
	}
	if tr.State == match.GameOver {
		m.gamesFinished.Add(ctx, 1, metric.WithAttributes(
			attribute.String("result", string(tr.Outcome.Result)),
			attribute.String("winner", string(tr.Outcome.Winner)),
		))
	}
}
