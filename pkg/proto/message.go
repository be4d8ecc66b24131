package proto

import (
	"ctchen222/Tic-Tac-Toe-Solo/internal/game"
	"ctchen222/Tic-Tac-Toe-Solo/internal/match"
)

// Client message types.
const (
	TypeMove  = "move"
	TypeReset = "reset"
)

// Server message types.
const (
	TypeUpdate = "update"
	TypeError  = "error"
)

// ClientToServerMessage represents a message from the client to the server.
type ClientToServerMessage struct {
	Type     string `json:"type" validate:"required,oneof=move reset"`
	Position []int  `json:"position,omitempty" validate:"required_if=Type move,omitempty,len=2"`
}

// ServerToClientMessage represents a message from the server to the client.
type ServerToClientMessage struct {
	Type   string    `json:"type" validate:"required"`
	Reason string    `json:"reason,omitempty"`
	Game   *GameView `json:"game,omitempty"`
}

// GameView is everything a client needs to render a game.
type GameView struct {
	ID       string              `json:"id"`
	Board    [][]game.PlayerMark `json:"board"`
	State    match.State         `json:"state"`
	Result   game.GameResult     `json:"result"`
	Winner   game.PlayerMark     `json:"winner,omitempty"`
	LastMove *match.Transition   `json:"last_move,omitempty"`
}

// NewGameView renders c. last is the move that produced the current board,
// if any.
func NewGameView(id string, c *match.Controller, last *match.Transition) *GameView {
	board := c.Board()
	outcome := c.Outcome()
	return &GameView{
		ID:       id,
		Board:    board.Rows(),
		State:    c.State(),
		Result:   outcome.Result,
		Winner:   outcome.Winner,
		LastMove: last,
	}
}
