package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/fourplay/internal/board"
)

func TestTranspositionStoreProbe(t *testing.T) {
	tt := NewTranspositionTable()
	b := board.MustParse(winInThree)
	hash := b.Hash()

	_, ok := tt.Probe(b, hash)
	assert.False(t, ok, "empty table")

	tt.Store(b, hash, 4, 12.5)
	entry, ok := tt.Probe(b, hash)
	require.True(t, ok)
	assert.Equal(t, 4, entry.Depth)
	assert.Equal(t, 12.5, entry.Score)
	assert.Equal(t, 1, tt.Len())
	assert.InDelta(t, 50.0, tt.HitRate(), 1e-9)
}

func TestTranspositionRejectsCollision(t *testing.T) {
	tt := NewTranspositionTable()
	a := board.MustParse(winInThree)
	b := board.MustParse(blockAtThree)

	// Force both boards under the same key.
	tt.Store(a, 42, 3, 1)
	_, ok := tt.Probe(b, 42)
	assert.False(t, ok)
}

func TestTranspositionClear(t *testing.T) {
	tt := NewTranspositionTable()
	b := board.NewBoard()
	tt.Store(b, b.Hash(), 1, 0)
	tt.Probe(b, b.Hash())

	tt.Clear()
	assert.Zero(t, tt.Len())
	assert.Zero(t, tt.HitRate())
	_, ok := tt.Probe(b, b.Hash())
	assert.False(t, ok)
}
