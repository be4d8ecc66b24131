package game

// PlayerMark represents the mark of a player (X, O) or an empty cell.
type PlayerMark string

const (
	// Player marks
	None    PlayerMark = ""
	PlayerX PlayerMark = "X"
	PlayerO PlayerMark = "O"

	// The human always plays X, the computer always plays O.
	Human    = PlayerX
	Computer = PlayerO

	// Board boundaries
	BorderMin = 0
	BorderMax = 2
	Size      = BorderMax - BorderMin + 1
)

// Valid reports whether m is a mark a player can place.
func (m PlayerMark) Valid() bool {
	return m == PlayerX || m == PlayerO
}

// Opponent returns the other player's mark, or None for an empty cell.
func (m PlayerMark) Opponent() PlayerMark {
	switch m {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	}
	return None
}

// Position addresses a single cell.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// InBounds reports whether p lies on the board.
func (p Position) InBounds() bool {
	return p.Row >= BorderMin && p.Row <= BorderMax && p.Col >= BorderMin && p.Col <= BorderMax
}

// Board is the 3x3 grid, row-major. The zero value is an empty board.
type Board [Size][Size]PlayerMark

// Place sets the cell at (row, col) to mark. The board is left untouched
// when an error is returned.
func (b *Board) Place(row, col int, mark PlayerMark) error {
	if !(Position{Row: row, Col: col}).InBounds() {
		return ErrOutOfBounds
	}
	if !mark.Valid() {
		return ErrInvalidMark
	}
	if b[row][col] != None {
		return ErrCellOccupied
	}
	b[row][col] = mark
	return nil
}

// Cell returns the mark at (row, col). Reads outside the board return None.
func (b *Board) Cell(row, col int) PlayerMark {
	if !(Position{Row: row, Col: col}).InBounds() {
		return None
	}
	return b[row][col]
}

// Clear resets every cell to None.
func (b *Board) Clear() {
	*b = Board{}
}

// IsFull reports whether no cell is empty.
func (b *Board) IsFull() bool {
	for r := range Size {
		for c := range Size {
			if b[r][c] == None {
				return false
			}
		}
	}
	return true
}

// Rows converts the board to a slice of slices, the shape clients render.
func (b *Board) Rows() [][]PlayerMark {
	rows := make([][]PlayerMark, Size)
	for i := range Size {
		rows[i] = make([]PlayerMark, Size)
		copy(rows[i], b[i][:])
	}
	return rows
}

// LegalMoves returns every empty cell in row-major order.
func LegalMoves(b Board) []Position {
	moves := make([]Position, 0, Size*Size)
	for r := range Size {
		for c := range Size {
			if b[r][c] == None {
				moves = append(moves, Position{Row: r, Col: c})
			}
		}
	}
	return moves
}
