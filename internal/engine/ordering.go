package engine

import (
	"sort"

	"github.com/hailam/fourplay/internal/board"
)

// Move ordering weights for the minimax search.
const (
	orderThreatWeight   = 50  // multiplier for immediateThreatScore
	orderWinThreat      = 100 // column wins for PlayerA
	orderBlockThreat    = 80  // column wins for PlayerB
	orderAdjacentWeight = 5   // per occupied neighbour
)

// centerBonus is the minimax ordering bonus per column.
var centerBonus = [board.Cols]int{0, 5, 10, 20, 10, 5, 0}

// CenterPriority is the fallback column preference, center first.
var CenterPriority = [board.Cols]int{3, 2, 4, 1, 5, 0, 6}

type scoredColumn struct {
	col   int
	score int
}

// orderMoves returns the playable columns sorted best first. The ordering
// is derived from b alone; nothing is remembered between nodes.
func orderMoves(b *board.Board) []int {
	cols := b.ValidColumns()
	scored := make([]scoredColumn, len(cols))

	for i, col := range cols {
		score := centerBonus[col]
		score += immediateThreatScore(b, col) * orderThreatWeight
		score += adjacencyScore(b, col)
		scored[i] = scoredColumn{col: col, score: score}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	for i := range scored {
		cols[i] = scored[i].col
	}
	return cols
}

// immediateThreatScore checks whether a disc in col wins for PlayerA or for
// PlayerB. It always tests the fixed identities rather than the side to
// move; this only affects ordering, not the search result.
func immediateThreatScore(b *board.Board, col int) int {
	row := b.DropRow(col)
	if row == board.NoRow {
		return 0
	}

	b.Set(row, col, board.PlayerA)
	win := b.WinsAt(row, col)
	b.Set(row, col, board.Empty)
	if win {
		return orderWinThreat
	}

	b.Set(row, col, board.PlayerB)
	win = b.WinsAt(row, col)
	b.Set(row, col, board.Empty)
	if win {
		return orderBlockThreat
	}

	return 0
}

// adjacencyScore counts occupied cells in unbroken runs next to the drop
// cell of col along each axis, up to three cells each way.
func adjacencyScore(b *board.Board, col int) int {
	row := b.DropRow(col)
	if row == board.NoRow {
		return 0
	}

	score := 0
	for _, d := range lineDirections {
		occupied := 0
		for _, sign := range [2]int{1, -1} {
			for i := 1; i <= 3; i++ {
				r, c := row+d[0]*i*sign, col+d[1]*i*sign
				if !board.InBounds(r, c) || b.Cells[r][c] == board.Empty {
					break
				}
				occupied++
			}
		}
		score += occupied * orderAdjacentWeight
	}
	return score
}

// centerPriorityMove returns the first playable column in CenterPriority
// order, or NoColumn when the board is full.
func centerPriorityMove(b *board.Board) int {
	for _, col := range CenterPriority {
		if b.CanPlay(col) {
			return col
		}
	}
	return NoColumn
}
