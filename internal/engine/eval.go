package engine

import (
	"github.com/hailam/fourplay/internal/board"
)

// WindowWeights is the payoff table for a single four-cell window.
// Opponent weights are negative and smaller in magnitude so that advancing
// counts slightly more than blocking.
type WindowWeights struct {
	Four     int // four of the player's discs
	Three    int // three discs plus one empty
	Two      int // two discs plus two empty
	OppThree int // opponent three plus one empty
	OppTwo   int // opponent two plus two empty
}

var (
	// MinimaxWeights is used by the minimax static evaluation.
	MinimaxWeights = WindowWeights{Four: 1000, Three: 50, Two: 10, OppThree: -40, OppTwo: -5}

	// MCTSWeights is used by the MCTS node heuristic and rollout scoring.
	MCTSWeights = WindowWeights{Four: 10000, Three: 100, Two: 10, OppThree: -80, OppTwo: -5}
)

// Center control weights.
const (
	centerControlWeight = 3
	mobilityWeight      = 2
)

var centerColumns = [3]int{2, 3, 4}

// ScoreWindow scores four cells from player's point of view.
// Anything that is not player or opponent counts as empty.
func ScoreWindow(window [4]board.Cell, player, opponent board.Cell, w WindowWeights) int {
	var mine, theirs, empty int
	for _, c := range window {
		switch c {
		case player:
			mine++
		case opponent:
			theirs++
		default:
			empty++
		}
	}

	switch {
	case mine == 4:
		return w.Four
	case mine == 3 && empty == 1:
		return w.Three
	case mine == 2 && empty == 2:
		return w.Two
	case theirs == 3 && empty == 1:
		return w.OppThree
	case theirs == 2 && empty == 2:
		return w.OppTwo
	}
	return 0
}

// ScoreLines slides a four-cell window over every horizontal, vertical and
// diagonal placement that fits on the board and sums the window scores.
func ScoreLines(b *board.Board, player board.Cell, w WindowWeights) int {
	opponent := player.Other()
	score := 0

	for row := 0; row < board.Rows; row++ {
		for col := 0; col < board.Cols; col++ {
			if col <= board.Cols-4 {
				score += ScoreWindow([4]board.Cell{
					b.Cells[row][col], b.Cells[row][col+1], b.Cells[row][col+2], b.Cells[row][col+3],
				}, player, opponent, w)
			}
			if row <= board.Rows-4 {
				score += ScoreWindow([4]board.Cell{
					b.Cells[row][col], b.Cells[row+1][col], b.Cells[row+2][col], b.Cells[row+3][col],
				}, player, opponent, w)
			}
			if row <= board.Rows-4 && col <= board.Cols-4 {
				score += ScoreWindow([4]board.Cell{
					b.Cells[row][col], b.Cells[row+1][col+1], b.Cells[row+2][col+2], b.Cells[row+3][col+3],
				}, player, opponent, w)
			}
			if row <= board.Rows-4 && col >= 3 {
				score += ScoreWindow([4]board.Cell{
					b.Cells[row][col], b.Cells[row+1][col-1], b.Cells[row+2][col-2], b.Cells[row+3][col-3],
				}, player, opponent, w)
			}
		}
	}

	return score
}

// CenterControl rewards discs in columns 2-4.
func CenterControl(b *board.Board, player board.Cell) int {
	opponent := player.Other()
	score := 0
	for _, col := range centerColumns {
		for row := 0; row < board.Rows; row++ {
			switch b.Cells[row][col] {
			case player:
				score += centerControlWeight
			case opponent:
				score -= centerControlWeight
			}
		}
	}
	return score
}

// Mobility compares the mover's number of playable columns against the
// opponent's average number of playable columns one ply later.
func Mobility(b *board.Board, player board.Cell) float64 {
	opponent := player.Other()
	moves := b.ValidColumns()

	total := 0
	for _, col := range moves {
		row := b.DropRow(col)
		b.Set(row, col, opponent)
		total += len(b.ValidColumns())
		b.Set(row, col, board.Empty)
	}

	n := len(moves)
	if n < 1 {
		n = 1
	}
	avg := float64(total) / float64(n)
	return (float64(len(moves)) - avg) * mobilityWeight
}

// Evaluate is the minimax static evaluation from player's point of view:
// window lines, center control and mobility.
func Evaluate(b *board.Board, player board.Cell) float64 {
	score := ScoreLines(b, player, MinimaxWeights) + CenterControl(b, player)
	return float64(score) + Mobility(b, player)
}

// Heuristic is the MCTS static score from player's point of view.
func Heuristic(b *board.Board, player board.Cell) int {
	return ScoreLines(b, player, MCTSWeights)
}
