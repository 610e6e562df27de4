package board

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDropRow(t *testing.T) {
	b := NewBoard()
	assert.Equal(t, Rows-1, b.DropRow(3), "empty column drops to the bottom row")

	for i := 0; i < Rows; i++ {
		row, err := b.Play(3, PlayerA)
		require.NoError(t, err)
		assert.Equal(t, Rows-1-i, row)
	}

	assert.Equal(t, NoRow, b.DropRow(3), "full column")
	assert.Equal(t, NoRow, b.DropRow(-1))
	assert.Equal(t, NoRow, b.DropRow(Cols))

	_, err := b.Play(3, PlayerB)
	assert.ErrorIs(t, err, ErrColumnFull)
	_, err = b.Play(9, PlayerB)
	assert.ErrorIs(t, err, ErrInvalidColumn)
}

func TestGravityHoldsUnderRandomPlay(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for game := 0; game < 50; game++ {
		b := NewBoard()
		player := PlayerA
		for {
			cols := b.ValidColumns()
			if len(cols) == 0 {
				break
			}
			col := cols[rng.Intn(len(cols))]
			want := b.DropRow(col)
			row, err := b.Play(col, player)
			require.NoError(t, err)
			require.Equal(t, want, row)
			require.NoError(t, b.Validate(), "gravity violated after dropping in column %d", col)
			player = player.Other()
		}
		assert.True(t, b.IsDraw())
	}
}

func TestValidColumns(t *testing.T) {
	b := NewBoard()
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, b.ValidColumns())

	for i := 0; i < Rows; i++ {
		_, _ = b.Play(0, PlayerA)
		_, _ = b.Play(5, PlayerB)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 6}, b.ValidColumns())
}

func TestDetectWinHorizontal(t *testing.T) {
	b := NewBoard()
	for col := 0; col < 3; col++ {
		row, _ := b.Play(col, PlayerA)
		assert.Nil(t, b.DetectWin(row, col), "three in a row is not a win")
	}

	row, _ := b.Play(3, PlayerA)
	line := b.DetectWin(row, 3)
	require.NotNil(t, line)
	assert.GreaterOrEqual(t, len(line), ConnectN)
	for _, sq := range line {
		assert.Equal(t, Rows-1, sq.Row)
		assert.Equal(t, PlayerA, b.At(sq.Row, sq.Col))
	}
}

func TestDetectWinFromMiddleOfLine(t *testing.T) {
	b := NewBoard()
	for _, col := range []int{0, 1, 3, 4} {
		_, _ = b.Play(col, PlayerB)
	}
	row, _ := b.Play(2, PlayerB)
	line := b.DetectWin(row, 2)
	require.NotNil(t, line)
	assert.Len(t, line, 5)
}

func TestDetectWinVertical(t *testing.T) {
	b := NewBoard()
	var row int
	for i := 0; i < 4; i++ {
		row, _ = b.Play(6, PlayerB)
	}
	assert.Len(t, b.DetectWin(row, 6), 4)
}

func TestDetectWinDiagonals(t *testing.T) {
	// Rising diagonal for X from bottom-left.
	b := MustParse("......./......./...X.../..XO.../.XOO.../XOOX...")
	line := b.DetectWin(2, 3)
	require.NotNil(t, line)
	assert.Len(t, line, 4)

	// Falling diagonal for O.
	b = MustParse("......./......./O....../XO...../XXO..../XXXO...")
	assert.NotNil(t, b.DetectWin(2, 0))
	assert.NotNil(t, b.DetectWin(5, 3))
}

func TestDetectWinEmptyCell(t *testing.T) {
	b := NewBoard()
	assert.Nil(t, b.DetectWin(5, 0))
	assert.Nil(t, b.DetectWin(-1, 0))
}

func TestIsDraw(t *testing.T) {
	b := NewBoard()
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			if (row+col/2)%2 == 0 {
				b.Set(row, col, PlayerA)
			} else {
				b.Set(row, col, PlayerB)
			}
		}
	}
	b.Set(0, 6, Empty)
	assert.False(t, b.IsDraw(), "one empty top cell")
	assert.Equal(t, []int{6}, b.ValidColumns())

	b.Set(0, 6, PlayerB)
	assert.True(t, b.IsDraw())
	assert.Empty(t, b.ValidColumns())
}

func TestCloneIsolation(t *testing.T) {
	orig := NewBoard()
	_, _ = orig.Play(3, PlayerA)
	snapshot := orig.String()

	clone := orig.Clone()
	_, _ = clone.Play(3, PlayerB)
	clone.Set(0, 0, PlayerA)

	assert.Equal(t, snapshot, orig.String())
	assert.NotEqual(t, orig.String(), clone.String())
}

func TestSideToMove(t *testing.T) {
	b := NewBoard()
	assert.Equal(t, PlayerA, b.SideToMove())
	require.NoError(t, b.Apply(3))
	assert.Equal(t, PlayerB, b.SideToMove())
	require.NoError(t, b.Apply(3))
	assert.Equal(t, PlayerA, b.SideToMove())
}

func TestHash(t *testing.T) {
	a := NewBoard()
	require.NoError(t, a.Apply(3, 2, 4))
	b := NewBoard()
	require.NoError(t, b.Apply(4, 2, 3))
	assert.Equal(t, a.Hash(), b.Hash(), "transpositions hash equal")

	empty := NewBoard()
	assert.Zero(t, empty.Hash())
	assert.NotEqual(t, empty.Hash(), a.Hash())
}

func TestOther(t *testing.T) {
	assert.Equal(t, PlayerB, PlayerA.Other())
	assert.Equal(t, PlayerA, PlayerB.Other())
	assert.Equal(t, Empty, Empty.Other())
}
