package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hailam/fourplay/internal/board"
)

func TestOrderMovesEmptyBoard(t *testing.T) {
	assert.Equal(t, []int{3, 2, 4, 1, 5, 0, 6}, orderMoves(board.NewBoard()))
}

func TestOrderMovesWinningColumnFirst(t *testing.T) {
	b := board.MustParse("......./......./......./......./......./XXX....")
	assert.Equal(t, 3, orderMoves(b)[0])
}

func TestOrderMovesSkipsFullColumns(t *testing.T) {
	b := board.MustParse(firstColumnFull)
	order := orderMoves(b)
	assert.Len(t, order, board.Cols-1)
	assert.NotContains(t, order, 0)
}

func TestImmediateThreatScoreFixedIdentities(t *testing.T) {
	// The score depends on who the line belongs to, not on who moves.
	a := board.MustParse("......./......./......./......./......./XXX....")
	b := board.MustParse("......./......./......./......./......./OOO....")
	assert.Equal(t, orderWinThreat, immediateThreatScore(a, 3))
	assert.Equal(t, orderBlockThreat, immediateThreatScore(b, 3))
	assert.Zero(t, immediateThreatScore(a, 5))
}

func TestAdjacencyScore(t *testing.T) {
	b := board.MustParse("......./......./......./......./......./XO.....")
	// Column 2 lands next to the run X O on the bottom row.
	assert.Equal(t, 2*orderAdjacentWeight, adjacencyScore(b, 2))
	// Column 0 lands on top of X: one neighbour below and one diagonal.
	assert.Equal(t, 2*orderAdjacentWeight, adjacencyScore(b, 0))
	assert.Zero(t, adjacencyScore(b, 6))
}

func TestCenterPriorityMove(t *testing.T) {
	assert.Equal(t, 3, centerPriorityMove(board.NewBoard()))

	b := board.MustParse("...O.../...X.../...O.../...X.../...O.../...X...")
	assert.Equal(t, 2, centerPriorityMove(b))
}

func TestFindWinningMove(t *testing.T) {
	b := board.MustParse(winInThree)
	before := *b
	assert.Equal(t, 3, FindWinningMove(b, board.PlayerA, allColumns))
	assert.Equal(t, NoColumn, FindWinningMove(b, board.PlayerB, allColumns))
	assert.Equal(t, before, *b, "board restored")
}

func TestCountWinningReplies(t *testing.T) {
	b := board.MustParse("......./......./......./......./......./.XXX...")
	assert.Equal(t, 2, CountWinningReplies(b, board.PlayerA, 0))
	assert.Equal(t, 1, CountWinningReplies(b, board.PlayerA, 1))
	assert.Zero(t, CountWinningReplies(b, board.PlayerB, 0))
}

func TestFindDoubleThreat(t *testing.T) {
	assert.Equal(t, 1, FindDoubleThreat(board.MustParse(doubleThreatAtOne), board.PlayerA))
	assert.Equal(t, NoColumn, FindDoubleThreat(board.NewBoard(), board.PlayerA))
}

func TestCountPotentialThreats(t *testing.T) {
	b := board.MustParse("......./......./......./......./......./.XX....")
	assert.Equal(t, 1, countPotentialThreats(b, 3, board.PlayerA, 3))
	assert.Equal(t, 1, countPotentialThreats(b, 0, board.PlayerA, 3))
	assert.Zero(t, countPotentialThreats(b, 5, board.PlayerA, 2))
	assert.Zero(t, countPotentialThreats(b, 3, board.PlayerB, 2))
}
