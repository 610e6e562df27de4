package board

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidCell  = errors.New("invalid cell value")
	ErrFloatingCell = errors.New("disc floating above an empty cell")
)

// EmptyNotation is the notation string for the empty board.
const EmptyNotation = "......./......./......./......./......./......."

// Parse parses a board in notation form: six '/'-separated rows from top to
// bottom, each seven characters of '.', 'X' (PlayerA) or 'O' (PlayerB).
func Parse(s string) (*Board, error) {
	rows := strings.Split(strings.TrimSpace(s), "/")
	if len(rows) != Rows {
		return nil, fmt.Errorf("invalid board: need %d rows, got %d", Rows, len(rows))
	}

	b := NewBoard()
	for row, line := range rows {
		if len(line) != Cols {
			return nil, fmt.Errorf("invalid board: row %d has %d cells, want %d", row, len(line), Cols)
		}
		for col := 0; col < Cols; col++ {
			cell, ok := CellFromChar(line[col])
			if !ok {
				return nil, fmt.Errorf("invalid board: row %d col %d: %w (%q)", row, col, ErrInvalidCell, line[col])
			}
			b.Cells[row][col] = cell
		}
	}

	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("invalid board: %w", err)
	}
	return b, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// fixed positions.
func MustParse(s string) *Board {
	b, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return b
}

// String returns the board in notation form.
func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			sb.WriteByte(b.Cells[row][col].Char())
		}
		if row < Rows-1 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// Pretty returns a multi-line rendering with column numbers, for
// terminal output.
func (b *Board) Pretty() string {
	var sb strings.Builder
	for row := 0; row < Rows; row++ {
		sb.WriteString("| ")
		for col := 0; col < Cols; col++ {
			sb.WriteByte(b.Cells[row][col].Char())
			sb.WriteByte(' ')
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("  0 1 2 3 4 5 6\n")
	return sb.String()
}

// Apply plays a sequence of columns alternating from the side to move.
func (b *Board) Apply(cols ...int) error {
	player := b.SideToMove()
	for i, col := range cols {
		if _, err := b.Play(col, player); err != nil {
			return fmt.Errorf("move %d (column %d): %w", i+1, col, err)
		}
		player = player.Other()
	}
	return nil
}
