package engine

import (
	"log/slog"
	"math"
	"time"

	"github.com/hailam/fourplay/internal/board"
)

// Search constants.
const (
	WinScore         = 10000
	winDepthBonus    = 10
	NearWinThreshold = 9000
	DefaultMaxDepth  = 8
)

var allColumns = []int{0, 1, 2, 3, 4, 5, 6}

// Minimax is an iterative-deepening alpha-beta searcher with a
// transposition table. Calls are independent but not safe concurrently.
type Minimax struct {
	maxDepth int
	tt       *TranspositionTable

	nodes     uint64
	cacheHits uint64

	logger  *slog.Logger
	metrics *Metrics
	onInfo  func(SearchInfo)
	last    SearchInfo
}

// NewMinimax creates a searcher that deepens up to maxDepth plies.
func NewMinimax(maxDepth int, opts ...Option) *Minimax {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	o := buildOptions(opts)
	return &Minimax{
		maxDepth: maxDepth,
		tt:       NewTranspositionTable(),
		logger:   o.logger,
		metrics:  o.metrics,
		onInfo:   o.onInfo,
	}
}

// MaxDepth returns the deepest iteration the searcher will run.
func (m *Minimax) MaxDepth() int {
	return m.maxDepth
}

// Nodes returns the number of nodes evaluated by the last search.
func (m *Minimax) Nodes() uint64 {
	return m.nodes
}

// CacheHits returns the usable transposition hits of the last search.
func (m *Minimax) CacheHits() uint64 {
	return m.cacheHits
}

// LastInfo returns the summary of the last SelectMove call.
func (m *Minimax) LastInfo() SearchInfo {
	return m.last
}

// SelectMove returns the column player should drop into. b is not modified.
// Calling it with no playable column returns NoColumn.
func (m *Minimax) SelectMove(b *board.Board, player board.Cell) int {
	start := time.Now()
	m.tt.Clear()
	m.nodes = 0
	m.cacheHits = 0

	work := b.Clone()
	ordered := orderMoves(work)

	if col := FindWinningMove(work, player, ordered); col != NoColumn {
		m.logger.Debug("minimax immediate win", "player", player, "column", col)
		return m.finish(SearchInfo{Move: col, Path: PathWin}, start)
	}
	if col := FindWinningMove(work, player.Other(), ordered); col != NoColumn {
		m.logger.Debug("minimax blocking opponent win", "player", player, "column", col)
		return m.finish(SearchInfo{Move: col, Path: PathBlock}, start)
	}
	if col := FindDoubleThreat(work, player); col != NoColumn {
		m.logger.Debug("minimax double threat", "player", player, "column", col)
		return m.finish(SearchInfo{Move: col, Path: PathDoubleThreat}, start)
	}

	bestMove := NoColumn
	bestScore := math.Inf(-1)
	completed := 0

	for depth := 1; depth <= m.maxDepth; depth++ {
		move, score := m.searchRoot(work, ordered, depth, player)
		if move == NoColumn {
			break
		}
		bestMove, bestScore, completed = move, score, depth

		info := SearchInfo{
			Engine:    KindMinimax,
			Depth:     depth,
			Score:     score,
			Move:      move,
			Nodes:     m.nodes,
			CacheHits: m.cacheHits,
			Time:      time.Since(start),
		}
		m.logger.Debug("minimax depth complete",
			"depth", depth, "move", move, "score", score, "nodes", m.nodes)
		if m.onInfo != nil {
			m.onInfo(info)
		}

		if score > NearWinThreshold {
			break
		}
	}

	if bestMove == NoColumn {
		return m.finish(SearchInfo{Move: centerPriorityMove(work), Path: PathCenterFallback}, start)
	}

	return m.finish(SearchInfo{
		Move:  bestMove,
		Path:  PathSearch,
		Depth: completed,
		Score: bestScore,
	}, start)
}

func (m *Minimax) finish(info SearchInfo, start time.Time) int {
	info.Engine = KindMinimax
	info.Nodes = m.nodes
	info.CacheHits = m.cacheHits
	info.Time = time.Since(start)
	m.last = info

	m.logger.Info("minimax move",
		"move", info.Move,
		"path", info.Path,
		"depth", info.Depth,
		"nodes", info.Nodes,
		"cache_hits", info.CacheHits,
		"elapsed", info.Time)
	m.metrics.observeSearch(info)
	return info.Move
}

// searchRoot scores each ordered root move at the given depth. The best
// move only changes on a strictly higher score, so ties keep the earlier,
// better-ordered column.
func (m *Minimax) searchRoot(b *board.Board, ordered []int, depth int, player board.Cell) (int, float64) {
	bestMove := NoColumn
	bestScore := math.Inf(-1)
	alpha, beta := math.Inf(-1), math.Inf(1)

	for _, col := range ordered {
		row := b.DropRow(col)
		if row == board.NoRow {
			continue
		}
		b.Set(row, col, player)
		score := m.alphaBeta(b, depth-1, alpha, beta, false, player)
		b.Set(row, col, board.Empty)

		if score > bestScore {
			bestScore = score
			bestMove = col
		}
		alpha = math.Max(alpha, bestScore)
	}

	return bestMove, bestScore
}

// alphaBeta returns the score of b from root's point of view. On the
// maximizing layer root is to move, on the minimizing layer its opponent.
func (m *Minimax) alphaBeta(b *board.Board, depth int, alpha, beta float64, maximizing bool, root board.Cell) float64 {
	m.nodes++

	hash := b.Hash()
	if entry, ok := m.tt.Probe(b, hash); ok && entry.Depth >= depth {
		m.cacheHits++
		return entry.Score
	}

	if score, ok := terminalScore(b, depth, maximizing, root); ok {
		return score
	}

	if depth == 0 {
		return Evaluate(b, root)
	}

	mover := root
	if !maximizing {
		mover = root.Other()
	}

	var best float64
	if maximizing {
		best = math.Inf(-1)
	} else {
		best = math.Inf(1)
	}

	for _, col := range orderMoves(b) {
		row := b.DropRow(col)
		b.Set(row, col, mover)
		score := m.alphaBeta(b, depth-1, alpha, beta, !maximizing, root)
		b.Set(row, col, board.Empty)

		if maximizing {
			best = math.Max(best, score)
			alpha = math.Max(alpha, best)
		} else {
			best = math.Min(best, score)
			beta = math.Min(beta, best)
		}
		if beta <= alpha {
			break
		}
	}

	m.tt.Store(b, hash, depth, best)
	return best
}

// terminalScore reports a decisive score if the side to move at this ply
// can win at once, or 0 if the board is full. Shallower wins and deeper
// losses score higher.
func terminalScore(b *board.Board, depth int, maximizing bool, root board.Cell) (float64, bool) {
	mover := root
	if !maximizing {
		mover = root.Other()
	}

	if FindWinningMove(b, mover, allColumns) != NoColumn {
		score := float64(WinScore + depth*winDepthBonus)
		if !maximizing {
			score = -score
		}
		return score, true
	}

	if b.IsDraw() {
		return 0, true
	}
	return 0, false
}
