// Package board implements the 6x7 connection board and its win/draw primitives.
package board

import "errors"

// Board dimensions.
const (
	Rows = 6
	Cols = 7

	// ConnectN is the line length that wins.
	ConnectN = 4
)

// NoRow is returned by DropRow when a column is full.
const NoRow = -1

var (
	ErrInvalidColumn = errors.New("column out of range")
	ErrColumnFull    = errors.New("column is full")
)

// Square identifies a cell. Row 0 is the top row.
type Square struct {
	Row int
	Col int
}

// Board is a 6x7 grid of cells, row 0 at the top.
// Boards are plain values: assigning or calling Clone never aliases cells.
type Board struct {
	Cells [Rows][Cols]Cell
}

// directions are the four axes checked for lines: horizontal, vertical,
// and the two diagonals.
var directions = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// At returns the cell at (row, col).
func (b *Board) At(row, col int) Cell {
	return b.Cells[row][col]
}

// Set writes a cell without any gravity check. Used for scratch
// place/undo pairs inside the engines.
func (b *Board) Set(row, col int, c Cell) {
	b.Cells[row][col] = c
}

// InBounds reports whether (row, col) lies on the board.
func InBounds(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

// DropRow returns the lowest empty row in col, or NoRow if the column is
// full or out of range.
func (b *Board) DropRow(col int) int {
	if col < 0 || col >= Cols {
		return NoRow
	}
	for row := Rows - 1; row >= 0; row-- {
		if b.Cells[row][col] == Empty {
			return row
		}
	}
	return NoRow
}

// CanPlay reports whether col has at least one empty cell.
func (b *Board) CanPlay(col int) bool {
	return col >= 0 && col < Cols && b.Cells[0][col] == Empty
}

// ValidColumns returns the playable columns in ascending order.
func (b *Board) ValidColumns() []int {
	cols := make([]int, 0, Cols)
	for col := 0; col < Cols; col++ {
		if b.DropRow(col) != NoRow {
			cols = append(cols, col)
		}
	}
	return cols
}

// Play drops a disc for player into col and returns the row it landed on.
func (b *Board) Play(col int, player Cell) (int, error) {
	if col < 0 || col >= Cols {
		return NoRow, ErrInvalidColumn
	}
	row := b.DropRow(col)
	if row == NoRow {
		return NoRow, ErrColumnFull
	}
	b.Cells[row][col] = player
	return row, nil
}

// DetectWin checks the lines through the most recently placed disc at
// (row, col). It returns the cells of the first line of ConnectN or more
// matching discs, or nil. It is not a full-board scan.
func (b *Board) DetectWin(row, col int) []Square {
	if !InBounds(row, col) {
		return nil
	}
	player := b.Cells[row][col]
	if player == Empty {
		return nil
	}

	for _, d := range directions {
		line := []Square{{row, col}}
		for _, sign := range [2]int{1, -1} {
			dr, dc := d[0]*sign, d[1]*sign
			r, c := row+dr, col+dc
			for InBounds(r, c) && b.Cells[r][c] == player {
				line = append(line, Square{r, c})
				r += dr
				c += dc
			}
		}
		if len(line) >= ConnectN {
			return line
		}
	}
	return nil
}

// WinsAt reports whether the disc at (row, col) completes a line.
func (b *Board) WinsAt(row, col int) bool {
	return b.DetectWin(row, col) != nil
}

// IsDraw reports whether the top row is full. Callers must check for a
// win first.
func (b *Board) IsDraw() bool {
	for col := 0; col < Cols; col++ {
		if b.Cells[0][col] == Empty {
			return false
		}
	}
	return true
}

// Count returns the number of discs belonging to player.
func (b *Board) Count(player Cell) int {
	n := 0
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			if b.Cells[row][col] == player {
				n++
			}
		}
	}
	return n
}

// SideToMove derives the player to move assuming PlayerA moved first.
func (b *Board) SideToMove() Cell {
	if b.Count(PlayerA) > b.Count(PlayerB) {
		return PlayerB
	}
	return PlayerA
}

// Validate checks the gravity invariant: no empty cell below a disc.
func (b *Board) Validate() error {
	for col := 0; col < Cols; col++ {
		seenDisc := false
		for row := 0; row < Rows; row++ {
			cell := b.Cells[row][col]
			if cell > PlayerB {
				return ErrInvalidCell
			}
			if cell != Empty {
				seenDisc = true
			} else if seenDisc {
				return ErrFloatingCell
			}
		}
	}
	return nil
}
