package match

import (
	"ctchen222/Tic-Tac-Toe-Solo/internal/bot"
	"ctchen222/Tic-Tac-Toe-Solo/internal/bot/botmock"
	"ctchen222/Tic-Tac-Toe-Solo/internal/game"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	x = game.PlayerX
	o = game.PlayerO
	e = game.None
)

func newRand(t *testing.T) *botmock.MockRand {
	return botmock.NewMockRand(gomock.NewController(t))
}

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		draw  int
		state State
	}{
		{name: "Human moves first", draw: 0, state: AwaitingHuman},
		{name: "Computer moves first", draw: 1, state: AwaitingComputer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := newRand(t)
			rng.EXPECT().IntN(2).Return(tt.draw)

			c := New(rng)
			assert.Equal(t, tt.state, c.State())
			assert.Equal(t, game.Board{}, c.Board())
			assert.Equal(t, game.Outcome{Result: game.InProgress}, c.Outcome())
			assert.True(t, c.OpeningPending())
		})
	}
}

func TestController_HumanCentreThenRandomOpening(t *testing.T) {
	rng := newRand(t)
	gomock.InOrder(
		rng.EXPECT().IntN(2).Return(0),
		rng.EXPECT().IntN(8).Return(0),
	)
	c := New(rng)

	tr, err := c.SubmitHumanMove(1, 1)
	require.NoError(t, err)
	assert.Equal(t, Transition{
		Mark:    game.Human,
		Move:    game.Position{Row: 1, Col: 1},
		State:   AwaitingComputer,
		Outcome: game.Outcome{Result: game.InProgress},
	}, tr)

	tr, err = c.ComputerMove()
	require.NoError(t, err)
	assert.True(t, tr.Opening)
	assert.Equal(t, game.Position{Row: 0, Col: 0}, tr.Move)
	assert.Equal(t, game.Computer, c.Cell(0, 0))
	assert.Equal(t, AwaitingHuman, c.State())
	assert.False(t, c.OpeningPending())

	_, err = c.SubmitHumanMove(0, 2)
	require.NoError(t, err)

	// No randomness is consumed from here on.
	want, ok := bot.BestMove(c.Board())
	require.True(t, ok)
	tr, err = c.ComputerMove()
	require.NoError(t, err)
	assert.False(t, tr.Opening)
	assert.Equal(t, want, tr.Move)
	assert.Positive(t, tr.Nodes)
	assert.Equal(t, game.Position{Row: 2, Col: 0}, tr.Move, "computer blocks the anti-diagonal")
}

func TestController_ComputerOpensTheGame(t *testing.T) {
	rng := newRand(t)
	gomock.InOrder(
		rng.EXPECT().IntN(2).Return(1),
		rng.EXPECT().IntN(9).Return(8),
	)
	c := New(rng)

	_, err := c.SubmitHumanMove(0, 0)
	assert.ErrorIs(t, err, game.ErrOutOfTurn)
	assert.Equal(t, game.Board{}, c.Board())

	tr, err := c.ComputerMove()
	require.NoError(t, err)
	assert.True(t, tr.Opening)
	assert.Equal(t, game.Position{Row: 2, Col: 2}, tr.Move)
	assert.Equal(t, AwaitingHuman, tr.State)
}

func TestController_Rejections(t *testing.T) {
	c, err := Restore(Snapshot{
		Board: game.Board{
			{x, e, e},
			{e, o, e},
			{e, e, e},
		},
		State: AwaitingHuman,
	}, newRand(t))
	require.NoError(t, err)
	before := c.Snapshot()

	tests := []struct {
		name     string
		row, col int
		wantErr  error
	}{
		{name: "Occupied cell", row: 0, col: 0, wantErr: game.ErrCellOccupied},
		{name: "Row out of bounds", row: 3, col: 0, wantErr: game.ErrOutOfBounds},
		{name: "Column out of bounds", row: 0, col: -1, wantErr: game.ErrOutOfBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := c.SubmitHumanMove(tt.row, tt.col)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, game.IsRejection(err))
			assert.Equal(t, Transition{}, tr)
			assert.Equal(t, before, c.Snapshot())
		})
	}

	t.Run("Computer move out of turn", func(t *testing.T) {
		_, err := c.ComputerMove()
		assert.ErrorIs(t, err, game.ErrOutOfTurn)
		assert.Equal(t, before, c.Snapshot())
	})
}

func TestController_GameOver(t *testing.T) {
	tests := []struct {
		name     string
		snapshot Snapshot
		human    *game.Position
		want     game.Outcome
	}{
		{
			name: "Human completes the top row",
			snapshot: Snapshot{
				Board: game.Board{
					{x, x, e},
					{o, o, e},
					{e, e, e},
				},
				State: AwaitingHuman,
			},
			human: &game.Position{Row: 0, Col: 2},
			want:  game.Outcome{Result: game.Win, Winner: game.Human},
		},
		{
			name: "Computer completes the top row",
			snapshot: Snapshot{
				Board: game.Board{
					{o, o, e},
					{x, x, e},
					{x, e, e},
				},
				State: AwaitingComputer,
			},
			want: game.Outcome{Result: game.Win, Winner: game.Computer},
		},
		{
			name: "Last cell draws",
			snapshot: Snapshot{
				Board: game.Board{
					{x, o, x},
					{x, o, o},
					{o, x, e},
				},
				State: AwaitingHuman,
			},
			human: &game.Position{Row: 2, Col: 2},
			want:  game.Outcome{Result: game.Draw},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := newRand(t)
			c, err := Restore(tt.snapshot, rng)
			require.NoError(t, err)

			var tr Transition
			if tt.human != nil {
				tr, err = c.SubmitHumanMove(tt.human.Row, tt.human.Col)
			} else {
				tr, err = c.ComputerMove()
			}
			require.NoError(t, err)
			assert.Equal(t, GameOver, tr.State)
			assert.Equal(t, tt.want, tr.Outcome)
			assert.Equal(t, tt.want, c.Outcome())

			board := c.Board()
			_, err = c.SubmitHumanMove(2, 1)
			assert.ErrorIs(t, err, game.ErrOutOfTurn)
			_, err = c.ComputerMove()
			assert.ErrorIs(t, err, game.ErrOutOfTurn)
			assert.Equal(t, board, c.Board())

			rng.EXPECT().IntN(2).Return(0)
			c.Reset()
			assert.Equal(t, AwaitingHuman, c.State())
			assert.Equal(t, game.Board{}, c.Board())
			assert.True(t, c.OpeningPending())
		})
	}
}

func TestController_FullGameAgainstNaiveHuman(t *testing.T) {
	// The human plays the first empty cell every turn.
	rng := newRand(t)
	gomock.InOrder(
		rng.EXPECT().IntN(2).Return(0),
		rng.EXPECT().IntN(8).Return(7),
	)
	c := New(rng)
	for c.State() != GameOver {
		if c.State() == AwaitingHuman {
			moves := game.LegalMoves(c.Board())
			require.NotEmpty(t, moves)
			_, err := c.SubmitHumanMove(moves[0].Row, moves[0].Col)
			require.NoError(t, err)
			continue
		}
		_, err := c.ComputerMove()
		require.NoError(t, err)
	}
	assert.Equal(t, game.Outcome{Result: game.Win, Winner: game.Computer}, c.Outcome())
}
