package response

import (
	"ctchen222/Tic-Tac-Toe-Solo/internal/game"
	"ctchen222/Tic-Tac-Toe-Solo/internal/repository"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestFromDomain(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{name: "Not found", err: repository.ErrGameNotFound, wantCode: http.StatusNotFound, wantMsg: "game not found"},
		{name: "Out of turn", err: game.ErrOutOfTurn, wantCode: http.StatusConflict, wantMsg: game.ErrOutOfTurn.Error()},
		{name: "Occupied", err: game.ErrCellOccupied, wantCode: http.StatusConflict, wantMsg: game.ErrCellOccupied.Error()},
		{name: "Out of bounds", err: game.ErrOutOfBounds, wantCode: http.StatusUnprocessableEntity, wantMsg: game.ErrOutOfBounds.Error()},
		{name: "Wrapped not found", err: fmt.Errorf("lookup: %w", repository.ErrGameNotFound), wantCode: http.StatusNotFound, wantMsg: "lookup: game not found"},
		{name: "Internal", err: errors.New("redis: connection refused"), wantCode: http.StatusInternalServerError, wantMsg: "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromDomain(tt.err)
			if got.Code != tt.wantCode || got.Extras != tt.wantMsg || got.Success {
				t.Errorf("FromDomain() got = %+v, want code %d message %q", got, tt.wantCode, tt.wantMsg)
			}
		})
	}
}
