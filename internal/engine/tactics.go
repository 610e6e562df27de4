package engine

import (
	"github.com/hailam/fourplay/internal/board"
)

// NoColumn means no column satisfied a search.
const NoColumn = -1

// lineDirections are the four axes walked when counting connected discs.
var lineDirections = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

// FindWinningMove returns the first column in cols where player wins
// immediately, or NoColumn. The board is restored before returning.
func FindWinningMove(b *board.Board, player board.Cell, cols []int) int {
	for _, col := range cols {
		row := b.DropRow(col)
		if row == board.NoRow {
			continue
		}
		b.Set(row, col, player)
		win := b.WinsAt(row, col)
		b.Set(row, col, board.Empty)
		if win {
			return col
		}
	}
	return NoColumn
}

// CountWinningReplies counts the columns where player would win immediately.
// It stops counting once limit is reached; limit <= 0 counts all.
func CountWinningReplies(b *board.Board, player board.Cell, limit int) int {
	count := 0
	for col := 0; col < board.Cols; col++ {
		row := b.DropRow(col)
		if row == board.NoRow {
			continue
		}
		b.Set(row, col, player)
		if b.WinsAt(row, col) {
			count++
		}
		b.Set(row, col, board.Empty)
		if limit > 0 && count >= limit {
			break
		}
	}
	return count
}

// FindDoubleThreat returns the lowest column where a disc for player leaves
// two or more immediate winning follow-ups, or NoColumn.
func FindDoubleThreat(b *board.Board, player board.Cell) int {
	for col := 0; col < board.Cols; col++ {
		row := b.DropRow(col)
		if row == board.NoRow {
			continue
		}
		b.Set(row, col, player)
		threats := CountWinningReplies(b, player, 2)
		b.Set(row, col, board.Empty)
		if threats >= 2 {
			return col
		}
	}
	return NoColumn
}

// connected counts player's discs in an unbroken run through (row, col)
// along direction d, including (row, col) itself, looking at most three
// cells each way.
func connected(b *board.Board, row, col int, d [2]int, player board.Cell) int {
	run := 1
	for _, sign := range [2]int{1, -1} {
		for i := 1; i < board.ConnectN; i++ {
			r, c := row+d[0]*i*sign, col+d[1]*i*sign
			if !board.InBounds(r, c) || b.Cells[r][c] != player {
				break
			}
			run++
		}
	}
	return run
}

// countPotentialThreats drops player's disc in col and counts the axes on
// which it forms a run of at least length.
func countPotentialThreats(b *board.Board, col int, player board.Cell, length int) int {
	row := b.DropRow(col)
	if row == board.NoRow {
		return 0
	}
	b.Set(row, col, player)
	n := countRunsAt(b, row, col, player, length)
	b.Set(row, col, board.Empty)
	return n
}

// countRunsAt counts the axes through an already placed disc at (row, col)
// with a run of at least length.
func countRunsAt(b *board.Board, row, col int, player board.Cell, length int) int {
	n := 0
	for _, d := range lineDirections {
		if connected(b, row, col, d, player) >= length {
			n++
		}
	}
	return n
}
