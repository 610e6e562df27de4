package engine

import (
	"math"

	"github.com/hailam/fourplay/internal/board"
)

// Rollout constants.
const (
	rolloutPlies = 20
	rolloutScale = 0.001
)

// Rollout move weights.
var rolloutCenterBonus = [board.Cols]int{0, 8, 15, 30, 15, 8, 0}

const (
	rolloutTwoWeight   = 10
	rolloutThreeWeight = 25
)

// simulate plays a tactical playout from id and returns the outcome from the
// root player's point of view: +1 win, -1 loss, 0 when the board fills, or
// a tanh-squashed heuristic if the ply cap is reached first.
func (t *tree) simulate(id int) float64 {
	n := &t.nodes[id]
	if n.winner != board.Empty {
		return t.outcome(n.winner)
	}

	work := n.board
	mover := n.player

	for ply := 0; ply < rolloutPlies; ply++ {
		if FindWinningMove(&work, mover, allColumns) != NoColumn {
			return t.outcome(mover)
		}

		opponent := mover.Other()
		if col := FindWinningMove(&work, opponent, allColumns); col != NoColumn {
			work.Set(work.DropRow(col), col, mover)
			mover = opponent
			continue
		}

		valid := work.ValidColumns()
		if len(valid) == 0 {
			return 0
		}

		col := FindDoubleThreat(&work, mover)
		if col == NoColumn {
			// The mover takes the opponent's double-threat column itself.
			col = FindDoubleThreat(&work, opponent)
		}
		if col == NoColumn {
			col = rolloutMove(&work, mover, valid)
		}

		row := work.DropRow(col)
		work.Set(row, col, mover)
		if work.WinsAt(row, col) {
			return t.outcome(mover)
		}
		mover = opponent
	}

	return math.Tanh(float64(Heuristic(&work, t.rootPlayer)) * rolloutScale)
}

func (t *tree) outcome(winner board.Cell) float64 {
	if winner == t.rootPlayer {
		return 1
	}
	return -1
}

// rolloutMove picks the column in valid with the best center bonus plus
// two- and three-run counts through the dropped disc. Ties go to the lower
// column.
func rolloutMove(b *board.Board, player board.Cell, valid []int) int {
	best := valid[0]
	bestScore := math.MinInt
	for _, col := range valid {
		row := b.DropRow(col)
		score := rolloutCenterBonus[col]

		b.Set(row, col, player)
		score += countRunsAt(b, row, col, player, 2) * rolloutTwoWeight
		score += countRunsAt(b, row, col, player, 3) * rolloutThreeWeight
		b.Set(row, col, board.Empty)

		if score > bestScore {
			bestScore = score
			best = col
		}
	}
	return best
}
