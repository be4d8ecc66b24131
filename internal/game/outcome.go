package game

// GameResult is the coarse result of a board.
type GameResult string

const (
	InProgress GameResult = "in_progress"
	Win        GameResult = "win"
	Draw       GameResult = "draw"
)

// Outcome is derived from a board on demand and never stored.
type Outcome struct {
	Result GameResult `json:"result"`
	Winner PlayerMark `json:"winner,omitempty"`
}

// Terminal reports whether the game has ended.
func (o Outcome) Terminal() bool {
	return o.Result != InProgress
}

// Line is one of the winning triples.
type Line [3]Position

// Lines holds the 8 winning triples in scan order: rows top to bottom,
// columns left to right, then the main and anti diagonals.
var Lines = [8]Line{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Winner returns the mark filling the first uniform line in Lines order.
func Winner(b Board) (PlayerMark, bool) {
	for _, l := range Lines {
		m := b[l[0].Row][l[0].Col]
		if m != None && m == b[l[1].Row][l[1].Col] && m == b[l[2].Row][l[2].Col] {
			return m, true
		}
	}
	return None, false
}

// IsDraw reports whether the board is full with no winner.
func IsDraw(b Board) bool {
	if _, ok := Winner(b); ok {
		return false
	}
	return b.IsFull()
}

// Evaluate computes the outcome of b. A win takes precedence over a draw.
func Evaluate(b Board) Outcome {
	if m, ok := Winner(b); ok {
		return Outcome{Result: Win, Winner: m}
	}
	if b.IsFull() {
		return Outcome{Result: Draw}
	}
	return Outcome{Result: InProgress}
}
