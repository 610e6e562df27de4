package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/fourplay/internal/board"
	"github.com/hailam/fourplay/internal/engine"
)

func TestNewGameDefaults(t *testing.T) {
	g := New(engine.KindMinimax)
	assert.Equal(t, board.PlayerA, g.Human())
	assert.Equal(t, board.PlayerB, g.AI())
	assert.Equal(t, board.PlayerA, g.Current())
	assert.False(t, g.Running())
	assert.False(t, g.Over())
	assert.True(t, g.HumanToMove())
	assert.False(t, g.EngineToMove())
	assert.Empty(t, g.History())
}

func TestHumanMoveStartsGame(t *testing.T) {
	g := New(engine.KindMinimax)

	m, err := g.PlayHuman(3)
	require.NoError(t, err)
	assert.Equal(t, Move{Number: 1, Player: board.PlayerA, Row: board.Rows - 1, Col: 3, By: HumanName}, m)
	assert.True(t, g.Running())
	assert.True(t, g.EngineToMove())

	_, err = g.PlayHuman(3)
	assert.ErrorIs(t, err, ErrNotYourTurn)

	m, err = g.PlayEngine(3)
	require.NoError(t, err)
	assert.Equal(t, "Minimax", m.By)
	assert.Equal(t, board.Rows-2, m.Row)
	assert.Equal(t, 2, m.Number)
}

func TestPlayRejectsFullColumn(t *testing.T) {
	g := New(engine.KindMCTS)
	for i := 0; i < board.Rows; i += 2 {
		_, err := g.PlayHuman(0)
		require.NoError(t, err)
		_, err = g.PlayEngine(0)
		require.NoError(t, err)
	}
	_, err := g.PlayHuman(0)
	assert.ErrorIs(t, err, board.ErrColumnFull)
	assert.Len(t, g.History(), board.Rows)
}

func TestWinRecordsCells(t *testing.T) {
	g := New(engine.KindMinimax)
	for col := 0; col < 3; col++ {
		_, err := g.PlayHuman(col)
		require.NoError(t, err)
		_, err = g.PlayEngine(col)
		require.NoError(t, err)
	}
	_, err := g.PlayHuman(3)
	require.NoError(t, err)

	assert.True(t, g.Over())
	assert.Equal(t, Won, g.Outcome())
	assert.Equal(t, board.PlayerA, g.Winner())
	assert.Len(t, g.WinningCells(), 4)
	assert.False(t, g.Running())
	assert.Equal(t, "Player wins!", g.StatusText())

	_, err = g.PlayEngine(4)
	assert.ErrorIs(t, err, ErrGameOver)
	assert.ErrorIs(t, g.Swap(), ErrGameOver)
}

func TestSwapAndToggleOnlyBetweenGames(t *testing.T) {
	g := New(engine.KindMinimax)

	require.NoError(t, g.Swap())
	assert.Equal(t, board.PlayerB, g.Human())
	assert.Equal(t, board.PlayerA, g.Current(), "PlayerA still moves first")
	assert.False(t, g.HumanToMove())
	assert.Equal(t, "Press Start to let the engine move.", g.StatusText())

	require.NoError(t, g.ToggleEngine())
	assert.Equal(t, engine.KindMCTS, g.Kind())

	require.NoError(t, g.Start())
	assert.True(t, g.EngineToMove())
	assert.ErrorIs(t, g.Swap(), ErrGameRunning)
	assert.ErrorIs(t, g.ToggleEngine(), ErrGameRunning)
	assert.Equal(t, "MCTS is thinking...", g.StatusText())
}

func TestResetKeepsSides(t *testing.T) {
	g := New(engine.KindMinimax)
	require.NoError(t, g.SetHuman(board.PlayerB))
	require.NoError(t, g.Start())
	_, err := g.PlayEngine(3)
	require.NoError(t, err)

	g.Reset()
	assert.Equal(t, board.PlayerB, g.Human())
	assert.Empty(t, g.History())
	assert.False(t, g.Running())
	_, ok := g.LastMove()
	assert.False(t, ok)

	assert.ErrorIs(t, g.SetHuman(board.Empty), ErrInvalidState)
}

func TestDraw(t *testing.T) {
	// Fill columns in an order that never connects four.
	g := New(engine.KindMinimax)
	order := []int{0, 1, 0, 1, 0, 1, 1, 0, 1, 0, 1, 0,
		2, 3, 2, 3, 2, 3, 3, 2, 3, 2, 3, 2,
		4, 5, 4, 5, 4, 5, 5, 4, 5, 4, 5, 4,
		6, 6, 6, 6, 6, 6}

	for i, col := range order {
		var err error
		if g.Current() == g.Human() {
			_, err = g.PlayHuman(col)
		} else {
			_, err = g.PlayEngine(col)
		}
		require.NoError(t, err, "move %d", i+1)
		if i < len(order)-1 {
			require.False(t, g.Over(), "move %d", i+1)
		}
	}

	assert.Equal(t, Draw, g.Outcome())
	assert.Equal(t, board.Empty, g.Winner())
	assert.Equal(t, "Draw!", g.StatusText())
}
