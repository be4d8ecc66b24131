package match

import (
	"ctchen222/Tic-Tac-Toe-Solo/internal/game"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	rng := newRand(t)
	rng.EXPECT().IntN(2).Return(0)
	c := New(rng)
	_, err := c.SubmitHumanMove(2, 1)
	require.NoError(t, err)

	data, err := json.Marshal(c.Snapshot())
	require.NoError(t, err)

	var s Snapshot
	require.NoError(t, json.Unmarshal(data, &s))

	restored, err := Restore(s, rng)
	require.NoError(t, err)
	assert.Equal(t, c.Board(), restored.Board())
	assert.Equal(t, AwaitingComputer, restored.State())
	assert.True(t, restored.OpeningPending())
	assert.Equal(t, c.Outcome(), restored.Outcome())
}

func TestRestore_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		snapshot Snapshot
		wantErr  error
	}{
		{
			name:     "Unknown state",
			snapshot: Snapshot{State: "thinking"},
			wantErr:  game.ErrInvalidState,
		},
		{
			name: "Unknown mark",
			snapshot: Snapshot{
				Board: game.Board{{"Z", e, e}},
				State: AwaitingHuman,
			},
			wantErr: game.ErrInvalidMark,
		},
		{
			name: "Finished board still awaiting a move",
			snapshot: Snapshot{
				Board: game.Board{
					{x, x, x},
					{o, o, e},
					{e, e, e},
				},
				State: AwaitingComputer,
			},
			wantErr: game.ErrInvalidState,
		},
		{
			name:     "Open board marked over",
			snapshot: Snapshot{State: GameOver},
			wantErr:  game.ErrInvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Restore(tt.snapshot, nil)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
