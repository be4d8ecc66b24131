package match

import (
	"ctchen222/Tic-Tac-Toe-Solo/internal/bot"
	"ctchen222/Tic-Tac-Toe-Solo/internal/game"
	"fmt"
)

// Snapshot is the serialisable turn state of a game. The outcome is not
// part of it; it is recomputed from the board on restore.
type Snapshot struct {
	Board          game.Board `json:"board"`
	State          State      `json:"state"`
	OpeningPending bool       `json:"opening_pending"`
}

// Snapshot captures the controller's state.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Board:          c.board,
		State:          c.state,
		OpeningPending: c.openingPending,
	}
}

// Restore rebuilds a controller from a snapshot.
func Restore(s Snapshot, rng bot.Rand) (*Controller, error) {
	if !s.State.Valid() {
		return nil, fmt.Errorf("%w: %q", game.ErrInvalidState, s.State)
	}
	for r := range game.Size {
		for col := range game.Size {
			if m := s.Board[r][col]; m != game.None && !m.Valid() {
				return nil, fmt.Errorf("%w: %q at (%d, %d)", game.ErrInvalidMark, m, r, col)
			}
		}
	}

	outcome := game.Evaluate(s.Board)
	if outcome.Terminal() != (s.State == GameOver) {
		return nil, fmt.Errorf("%w: %s with board result %s", game.ErrInvalidState, s.State, outcome.Result)
	}

	if rng == nil {
		rng = bot.NewRand()
	}
	return &Controller{
		board:          s.Board,
		state:          s.State,
		outcome:        outcome,
		openingPending: s.OpeningPending,
		rng:            rng,
	}, nil
}
