package engine

import (
	"github.com/hailam/fourplay/internal/board"
)

// TTEntry is a cached minimax result for one exact board.
type TTEntry struct {
	Board board.Board // Full board for verification (no false hits on hash collisions)
	Depth int         // Remaining depth the score was computed at
	Score float64
}

// TranspositionTable caches minimax scores keyed by exact board position.
// Entries are only meaningful for the root player of the search that wrote
// them, so the table must be cleared at the start of every search.
// Not safe for concurrent use.
type TranspositionTable struct {
	entries map[uint64]TTEntry

	// Statistics
	hits   uint64
	probes uint64
}

// NewTranspositionTable creates an empty table.
func NewTranspositionTable() *TranspositionTable {
	return &TranspositionTable{
		entries: make(map[uint64]TTEntry),
	}
}

// Probe looks up b. hash must be b.Hash().
func (tt *TranspositionTable) Probe(b *board.Board, hash uint64) (TTEntry, bool) {
	tt.probes++

	entry, ok := tt.entries[hash]
	if !ok || entry.Board != *b {
		return TTEntry{}, false
	}

	tt.hits++
	return entry, true
}

// Store saves the score for b, replacing any previous entry under hash.
func (tt *TranspositionTable) Store(b *board.Board, hash uint64, depth int, score float64) {
	tt.entries[hash] = TTEntry{
		Board: *b,
		Depth: depth,
		Score: score,
	}
}

// Clear removes all entries and resets statistics.
func (tt *TranspositionTable) Clear() {
	clear(tt.entries)
	tt.hits = 0
	tt.probes = 0
}

// Len returns the number of stored positions.
func (tt *TranspositionTable) Len() int {
	return len(tt.entries)
}

// HitRate returns the cache hit rate as a percentage.
func (tt *TranspositionTable) HitRate() float64 {
	if tt.probes == 0 {
		return 0
	}
	return float64(tt.hits) / float64(tt.probes) * 100
}
