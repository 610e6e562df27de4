package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/fourplay/internal/board"
)

func TestMinimaxImmediateWinAnyDepth(t *testing.T) {
	for _, depth := range []int{1, 4, DefaultMaxDepth} {
		m := NewMinimax(depth, WithLogger(quietLogger()))
		col := m.SelectMove(board.MustParse(winInThree), board.PlayerA)
		assert.Equal(t, 3, col, "depth %d", depth)
		assert.Equal(t, PathWin, m.LastInfo().Path)
		assert.Zero(t, m.Nodes(), "fast path must not search")
	}
}

func TestMinimaxBlocksOpponent(t *testing.T) {
	m := NewMinimax(DefaultMaxDepth, WithLogger(quietLogger()))
	col := m.SelectMove(board.MustParse(blockAtThree), board.PlayerA)
	assert.Equal(t, 3, col)
	assert.Equal(t, PathBlock, m.LastInfo().Path)
}

func TestMinimaxDoubleThreat(t *testing.T) {
	m := NewMinimax(DefaultMaxDepth, WithLogger(quietLogger()))
	col := m.SelectMove(board.MustParse(doubleThreatAtOne), board.PlayerA)
	assert.Equal(t, 1, col)
	assert.Equal(t, PathDoubleThreat, m.LastInfo().Path)
}

func TestMinimaxEmptyBoardDepthOne(t *testing.T) {
	m := NewMinimax(1, WithLogger(quietLogger()))
	col := m.SelectMove(board.NewBoard(), board.PlayerA)

	assert.Equal(t, 3, col)
	assert.Equal(t, uint64(board.Cols), m.Nodes(), "one leaf per root move")
	assert.Zero(t, m.CacheHits())
}

func TestMinimaxDeterministic(t *testing.T) {
	b := board.NewBoard()
	require.NoError(t, b.Apply(3, 3, 2, 4))
	before := *b

	m := NewMinimax(5, WithLogger(quietLogger()))
	first := m.SelectMove(b, b.SideToMove())
	firstNodes := m.Nodes()
	second := m.SelectMove(b, b.SideToMove())

	assert.Equal(t, first, second)
	assert.Equal(t, firstNodes, m.Nodes(), "table is cleared between calls")
	assert.Equal(t, before, *b)
	assert.True(t, b.CanPlay(first))
}

func TestMinimaxUsesTranspositions(t *testing.T) {
	m := NewMinimax(6, WithLogger(quietLogger()))
	m.SelectMove(board.NewBoard(), board.PlayerA)
	assert.Positive(t, m.CacheHits())
	assert.Positive(t, m.tt.Len())
}

func TestTerminalScore(t *testing.T) {
	b := board.MustParse(winInThree)

	score, ok := terminalScore(b, 3, true, board.PlayerA)
	require.True(t, ok)
	assert.Equal(t, float64(WinScore+30), score)

	// PlayerB to move at a minimizing ply cannot win here.
	_, ok = terminalScore(b, 3, false, board.PlayerA)
	assert.False(t, ok)

	// From PlayerB's point of view the opponent wins at the minimizing ply.
	score, ok = terminalScore(b, 2, false, board.PlayerB)
	require.True(t, ok)
	assert.Equal(t, -float64(WinScore+20), score)
}

func TestTerminalScoreDraw(t *testing.T) {
	full := board.MustParse("OXOXOXO/OXOXOXO/XOXOXOX/XOXOXOX/OXOXOXO/OXOXOXO")
	score, ok := terminalScore(full, 4, true, board.PlayerA)
	require.True(t, ok)
	assert.Zero(t, score)
}
