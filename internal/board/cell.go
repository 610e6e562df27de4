package board

// Cell is the content of a single board cell.
type Cell uint8

const (
	Empty Cell = iota
	PlayerA
	PlayerB
)

// Other returns the opposing player. Empty maps to Empty.
func (c Cell) Other() Cell {
	switch c {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	default:
		return Empty
	}
}

// IsPlayer reports whether c is PlayerA or PlayerB.
func (c Cell) IsPlayer() bool {
	return c == PlayerA || c == PlayerB
}

// String returns the player name.
func (c Cell) String() string {
	switch c {
	case PlayerA:
		return "PlayerA"
	case PlayerB:
		return "PlayerB"
	default:
		return "Empty"
	}
}

// Char returns the notation character for the cell.
func (c Cell) Char() byte {
	switch c {
	case PlayerA:
		return 'X'
	case PlayerB:
		return 'O'
	default:
		return '.'
	}
}

// CellFromChar converts a notation character to a Cell.
func CellFromChar(ch byte) (Cell, bool) {
	switch ch {
	case '.':
		return Empty, true
	case 'X', 'x':
		return PlayerA, true
	case 'O', 'o':
		return PlayerB, true
	default:
		return Empty, false
	}
}
