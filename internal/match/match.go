package match

import (
	"ctchen222/Tic-Tac-Toe-Solo/internal/bot"
	"ctchen222/Tic-Tac-Toe-Solo/internal/game"
	"fmt"
)

// State is the position of a game in its turn cycle.
type State string

const (
	AwaitingHuman    State = "awaiting_human"
	AwaitingComputer State = "awaiting_computer"
	GameOver         State = "game_over"
)

// Valid reports whether s is a known state.
func (s State) Valid() bool {
	switch s {
	case AwaitingHuman, AwaitingComputer, GameOver:
		return true
	}
	return false
}

// Transition describes a move that was applied and where it left the game.
type Transition struct {
	Mark    game.PlayerMark `json:"mark"`
	Move    game.Position   `json:"move"`
	Opening bool            `json:"opening,omitempty"`
	Nodes   int             `json:"nodes,omitempty"`
	State   State           `json:"state"`
	Outcome game.Outcome    `json:"outcome"`
}

// Controller sequences one game between the human and the computer. It is
// not safe for concurrent use; callers serialise access per game.
type Controller struct {
	board          game.Board
	state          State
	outcome        game.Outcome
	openingPending bool
	rng            bot.Rand
}

// New starts a game with a cleared board and a randomly drawn first mover.
func New(rng bot.Rand) *Controller {
	if rng == nil {
		rng = bot.NewRand()
	}
	c := &Controller{rng: rng}
	c.Reset()
	return c
}

// Reset discards the current game and starts a new one.
func (c *Controller) Reset() {
	c.board.Clear()
	c.outcome = game.Outcome{Result: game.InProgress}
	c.openingPending = true
	if c.rng.IntN(2) == 0 {
		c.state = AwaitingHuman
	} else {
		c.state = AwaitingComputer
	}
}

// SubmitHumanMove places the human's mark at (row, col). A rejected move
// returns game.ErrOutOfTurn, game.ErrOutOfBounds or game.ErrCellOccupied and
// leaves the game unchanged.
func (c *Controller) SubmitHumanMove(row, col int) (Transition, error) {
	if c.state != AwaitingHuman {
		return Transition{}, game.ErrOutOfTurn
	}
	if err := c.board.Place(row, col, game.Human); err != nil {
		return Transition{}, err
	}
	return c.advance(game.Human, game.Position{Row: row, Col: col}, false), nil
}

// ComputerMove chooses and places the computer's mark. The first computer
// move of a game is drawn at random; every later one comes from the search.
func (c *Controller) ComputerMove() (Transition, error) {
	if c.state != AwaitingComputer {
		return Transition{}, game.ErrOutOfTurn
	}

	opening := c.openingPending
	var (
		move  game.Position
		ok    bool
		nodes int
	)
	if opening {
		move, ok = bot.RandomMove(c.board, c.rng)
	} else {
		a := bot.Analyze(c.board)
		move, ok, nodes = a.Move, a.Found, a.Nodes
	}
	if !ok {
		// A full board is always terminal, so this state is unreachable.
		return Transition{}, fmt.Errorf("%w: no legal move while awaiting computer", game.ErrInvalidState)
	}
	if err := c.board.Place(move.Row, move.Col, game.Computer); err != nil {
		return Transition{}, fmt.Errorf("failed to place computer move: %w", err)
	}
	c.openingPending = false
	tr := c.advance(game.Computer, move, opening)
	tr.Nodes = nodes
	return tr, nil
}

func (c *Controller) advance(mark game.PlayerMark, move game.Position, opening bool) Transition {
	c.outcome = game.Evaluate(c.board)
	switch {
	case c.outcome.Terminal():
		c.state = GameOver
	case mark == game.Human:
		c.state = AwaitingComputer
	default:
		c.state = AwaitingHuman
	}
	return Transition{
		Mark:    mark,
		Move:    move,
		Opening: opening,
		State:   c.state,
		Outcome: c.outcome,
	}
}

// Cell returns the mark at (row, col).
func (c *Controller) Cell(row, col int) game.PlayerMark {
	return c.board.Cell(row, col)
}

// State returns whose turn it is, or GameOver.
func (c *Controller) State() State {
	return c.state
}

// Board returns a copy of the board.
func (c *Controller) Board() game.Board {
	return c.board
}

// Outcome returns the outcome of the current board.
func (c *Controller) Outcome() game.Outcome {
	return c.outcome
}

// OpeningPending reports whether the computer has yet to play its random
// opening move.
func (c *Controller) OpeningPending() bool {
	return c.openingPending
}
