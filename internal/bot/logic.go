package bot

import (
	"ctchen222/Tic-Tac-Toe-Solo/internal/game"
	"fmt"
	"math/rand/v2"
)

// Scores of terminal positions, from the computer's point of view.
const (
	ScoreWin  = 1
	ScoreLoss = -1
	ScoreDraw = 0
)

//go:generate mockgen -source=logic.go -destination=botmock/mock_rand.go -package=botmock

// Rand is the source of randomness the engine consumes. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

type defaultRand struct{}

func (defaultRand) IntN(n int) int { return rand.IntN(n) }

// NewRand returns a Rand backed by the process-wide generator.
func NewRand() Rand {
	return defaultRand{}
}

// Analysis is the result of a full search from one position.
type Analysis struct {
	Move  game.Position
	Score int
	Nodes int
	Found bool
}

// RandomMove picks uniformly among the empty cells.
func RandomMove(board game.Board, rng Rand) (game.Position, bool) {
	moves := game.LegalMoves(board)
	if len(moves) == 0 {
		return game.Position{}, false
	}
	return moves[rng.IntN(len(moves))], true
}

// Minimax returns the game-theoretic value of board. When maximizing the
// computer is to move, otherwise the human.
func Minimax(board game.Board, maximizing bool) int {
	var s search
	return s.minimax(board, maximizing)
}

// BestMove returns the computer's optimal move. Among equally scored moves
// the first in row-major order is kept.
func BestMove(board game.Board) (game.Position, bool) {
	a := Analyze(board)
	return a.Move, a.Found
}

// Analyze searches every computer move from board and reports the best one.
func Analyze(board game.Board) Analysis {
	var s search
	best := Analysis{Score: ScoreLoss - 1}
	for _, m := range game.LegalMoves(board) {
		score := s.minimax(play(board, m, game.Computer), false)
		if score > best.Score {
			best.Score = score
			best.Move = m
			best.Found = true
		}
	}
	best.Nodes = s.nodes
	if !best.Found {
		best.Score = ScoreDraw
	}
	return best
}

type search struct {
	nodes int
}

func (s *search) minimax(board game.Board, maximizing bool) int {
	s.nodes++

	if m, ok := game.Winner(board); ok {
		if m == game.Computer {
			return ScoreWin
		}
		return ScoreLoss
	}
	if board.IsFull() {
		return ScoreDraw
	}

	if maximizing {
		best := ScoreLoss
		for _, m := range game.LegalMoves(board) {
			best = max(best, s.minimax(play(board, m, game.Computer), false))
		}
		return best
	}

	best := ScoreWin
	for _, m := range game.LegalMoves(board) {
		best = min(best, s.minimax(play(board, m, game.Human), true))
	}
	return best
}

// play returns a copy of board with mark placed at p. p always comes from
// LegalMoves, so a failed placement is a programming error.
func play(board game.Board, p game.Position, mark game.PlayerMark) game.Board {
	if err := board.Place(p.Row, p.Col, mark); err != nil {
		panic(fmt.Sprintf("bot: illegal tentative move %v: %v", p, err))
	}
	return board
}
