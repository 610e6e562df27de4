package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hailam/fourplay/internal/board"
)

func TestScoreWindow(t *testing.T) {
	const (
		e = board.Empty
		x = board.PlayerA
		o = board.PlayerB
	)
	tests := []struct {
		name    string
		window  [4]board.Cell
		minimax int
		mcts    int
	}{
		{"four", [4]board.Cell{x, x, x, x}, 1000, 10000},
		{"open three", [4]board.Cell{x, x, e, x}, 50, 100},
		{"two", [4]board.Cell{e, x, x, e}, 10, 10},
		{"opponent three", [4]board.Cell{o, o, o, e}, -40, -80},
		{"opponent two", [4]board.Cell{o, e, e, o}, -5, -5},
		{"mixed", [4]board.Cell{x, x, o, e}, 0, 0},
		{"blocked three", [4]board.Cell{x, x, x, o}, 0, 0},
		{"empty", [4]board.Cell{e, e, e, e}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.minimax, ScoreWindow(tt.window, x, o, MinimaxWeights))
			assert.Equal(t, tt.mcts, ScoreWindow(tt.window, x, o, MCTSWeights))
		})
	}
}

func TestScoreLinesEmptyBoard(t *testing.T) {
	b := board.NewBoard()
	assert.Zero(t, ScoreLines(b, board.PlayerA, MinimaxWeights))
	assert.Zero(t, Heuristic(b, board.PlayerB))
}

func TestScoreLinesCountsEveryOrientation(t *testing.T) {
	// A lone vertical pair in the corner sits in one vertical window with
	// two empties above it.
	b := board.MustParse("......./......./......./......./X....../X......")
	assert.Equal(t, 10, ScoreLines(b, board.PlayerA, MinimaxWeights))
	assert.Equal(t, -5, ScoreLines(b, board.PlayerB, MinimaxWeights))
}

func TestEvaluateIsAntisymmetricOnLines(t *testing.T) {
	b := board.MustParse("......./......./......./......./..O..../..XXX..")
	assert.Greater(t, Evaluate(b, board.PlayerA), 0.0)
	assert.Less(t, Evaluate(b, board.PlayerB), 0.0)
}

func TestCenterControl(t *testing.T) {
	b := board.MustParse("......./......./......./......./...O.../X.XX...")
	// X in columns 2 and 3, O in column 3; the X in column 0 is ignored.
	assert.Equal(t, 3, CenterControl(b, board.PlayerA))
	assert.Equal(t, -3, CenterControl(b, board.PlayerB))
}

func TestMobility(t *testing.T) {
	assert.Zero(t, Mobility(board.NewBoard(), board.PlayerA))

	// Column 0 has one free cell; filling it removes a move for the mover.
	b := board.MustParse("......./X....../O....../X....../O....../X......")
	// 7 moves now; after the reply in column 0 only 6 remain, elsewhere 7.
	want := (7.0 - (6.0+7*6)/7.0) * mobilityWeight
	assert.InDelta(t, want, Mobility(b, board.PlayerA), 1e-9)
}
