package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/fourplay/internal/board"
)

func TestMCTSFastPathUsesNoIterations(t *testing.T) {
	m := NewMCTS(DefaultIterations, DefaultTimeLimit, WithLogger(quietLogger()))

	col := m.SelectMove(board.MustParse(winInThree), board.PlayerA)
	assert.Equal(t, 3, col)
	assert.Equal(t, PathWin, m.LastInfo().Path)
	assert.Zero(t, m.LastInfo().Iterations)

	col = m.SelectMove(board.MustParse(blockAtThree), board.PlayerA)
	assert.Equal(t, 3, col)
	assert.Equal(t, PathBlock, m.LastInfo().Path)
	assert.Zero(t, m.LastInfo().Iterations)
}

func TestMCTSRespectsIterationCap(t *testing.T) {
	m := NewMCTS(300, time.Minute, WithLogger(quietLogger()))
	b := board.NewBoard()
	before := *b

	col := m.SelectMove(b, board.PlayerA)

	assert.True(t, b.CanPlay(col))
	assert.Equal(t, 300, m.LastInfo().Iterations)
	assert.Equal(t, PathSearch, m.LastInfo().Path)
	assert.Equal(t, before, *b)
}

func TestMCTSDeterministic(t *testing.T) {
	b := board.NewBoard()
	require.NoError(t, b.Apply(3, 2, 3))

	m := NewMCTS(400, time.Minute, WithLogger(quietLogger()))
	first := m.SelectMove(b, b.SideToMove())
	second := m.SelectMove(b, b.SideToMove())
	assert.Equal(t, first, second)
}

func TestMCTSProgressCallback(t *testing.T) {
	var reports []int
	m := NewMCTS(2*infoInterval, time.Minute,
		WithLogger(quietLogger()),
		WithInfo(func(info SearchInfo) { reports = append(reports, info.Iterations) }))

	m.SelectMove(board.NewBoard(), board.PlayerA)
	assert.Equal(t, []int{infoInterval, 2 * infoInterval}, reports)
}

func TestTreeBestMoveWithoutChildren(t *testing.T) {
	tr := newTree(board.MustParse(firstColumnFull), board.PlayerA, 1)
	col, path := tr.bestMove()
	assert.Equal(t, 1, col, "first valid column")
	assert.Equal(t, PathNoChildren, path)

	full := board.MustParse("OXOXOXO/OXOXOXO/XOXOXOX/XOXOXOX/OXOXOXO/OXOXOXO")
	tr = newTree(full, board.PlayerA, 1)
	col, _ = tr.bestMove()
	assert.Equal(t, 0, col)
}

func TestTreeBestMoveVisitFilter(t *testing.T) {
	tr := newTree(board.NewBoard(), board.PlayerA, 8)
	a := tr.expand(0)
	b := tr.expand(0)
	require.NotEqual(t, noNode, a)
	require.NotEqual(t, noNode, b)

	// b has the better rate but too few visits.
	tr.nodes[a].visits, tr.nodes[a].wins = 10, 2
	tr.nodes[b].visits, tr.nodes[b].wins = 4, 4
	col, path := tr.bestMove()
	assert.Equal(t, tr.nodes[a].move, col)
	assert.Equal(t, PathSearch, path)

	// Nobody reaches the threshold: most visits wins.
	tr.nodes[a].visits, tr.nodes[a].wins = 3, -3
	tr.nodes[b].visits, tr.nodes[b].wins = 4, -4
	col, _ = tr.bestMove()
	assert.Equal(t, tr.nodes[b].move, col)
}

func TestTreeExpandStrongestFirst(t *testing.T) {
	tr := newTree(board.MustParse(winInThree), board.PlayerA, 4)
	child := tr.expand(0)
	require.NotEqual(t, noNode, child)

	n := tr.nodes[child]
	assert.Equal(t, 3, n.move)
	assert.Equal(t, board.PlayerA, n.winner)
	assert.Equal(t, board.PlayerB, n.player)
	assert.Empty(t, n.untried, "decided nodes are not expanded")
	assert.True(t, tr.isTerminal(child))
	assert.Equal(t, 1.0, tr.simulate(child))
}

func TestTreeHeuristicForSideToMove(t *testing.T) {
	b := board.NewBoard()
	require.NoError(t, b.Apply(3, 0, 4, 0))
	tr := newTree(b, board.PlayerA, 16)

	ids := []int{0}
	for {
		child := tr.expand(0)
		if child == noNode {
			break
		}
		ids = append(ids, child)
	}
	require.Greater(t, len(ids), 1)

	for _, id := range ids {
		n := &tr.nodes[id]
		assert.Equal(t, Heuristic(&n.board, n.player), n.heuristic, "move %d", n.move)
	}
	for _, id := range ids[1:] {
		assert.Equal(t, board.PlayerB, tr.nodes[id].player)
	}
}

func TestTreeSelectChildPrefersUnvisited(t *testing.T) {
	tr := newTree(board.NewBoard(), board.PlayerA, 8)
	a := tr.expand(0)
	b := tr.expand(0)
	tr.backpropagate(a, 1)

	assert.Equal(t, b, tr.selectChild(0))
}

func TestTreeBackpropagate(t *testing.T) {
	tr := newTree(board.NewBoard(), board.PlayerA, 8)
	child := tr.expand(0)
	grandchild := tr.expand(child)

	tr.backpropagate(grandchild, -1)
	tr.backpropagate(child, 0.5)

	assert.Equal(t, 2, tr.nodes[0].visits)
	assert.InDelta(t, -0.5, tr.nodes[0].wins, 1e-9)
	assert.Equal(t, 2, tr.nodes[child].visits)
	assert.Equal(t, 1, tr.nodes[grandchild].visits)
	assert.InDelta(t, -1.0, tr.nodes[grandchild].wins, 1e-9)
}

func TestSimulateOpponentWin(t *testing.T) {
	// PlayerB to move with an immediate win; the root player is PlayerA.
	tr := newTree(board.MustParse(blockAtThree), board.PlayerA, 1)
	tr.nodes[0].player = board.PlayerB
	assert.Equal(t, -1.0, tr.simulate(0))
}

func TestSimulateBounded(t *testing.T) {
	tr := newTree(board.NewBoard(), board.PlayerA, 1)
	result := tr.simulate(0)
	assert.GreaterOrEqual(t, result, -1.0)
	assert.LessOrEqual(t, result, 1.0)
}

func TestExpansionOrderWeakestFirst(t *testing.T) {
	order := expansionOrder(board.NewBoard(), board.PlayerA)
	require.Len(t, order, board.Cols)
	assert.Equal(t, 3, order[len(order)-1])
}

func TestRolloutMovePrefersCenter(t *testing.T) {
	b := board.NewBoard()
	assert.Equal(t, 3, rolloutMove(b, board.PlayerA, b.ValidColumns()))
}

func TestBudget(t *testing.T) {
	b := NewBudget(3, 0)
	b.Start()
	for i := 0; i < 3; i++ {
		assert.False(t, b.Exhausted())
		b.Tick()
	}
	assert.True(t, b.Exhausted())
	assert.Equal(t, 3, b.Iterations())

	now := time.Unix(0, 0)
	b = NewBudget(0, time.Second)
	b.now = func() time.Time { return now }
	b.Start()
	assert.False(t, b.Exhausted())
	now = now.Add(time.Second)
	assert.True(t, b.Exhausted())

	b = NewBudget(0, 0)
	assert.Equal(t, DefaultIterations, b.maxIterations)
}
