package engine

import (
	"log/slog"
	"time"

	"github.com/hailam/fourplay/internal/board"
)

// MCTS defaults.
const (
	DefaultIterations = 5000
	DefaultTimeLimit  = 8 * time.Second

	// infoInterval is how many iterations pass between progress reports.
	infoInterval = 1000
)

// MCTS is a Monte-Carlo tree searcher with heuristic-ordered expansion and
// tactical rollouts. The tree is rebuilt for every call.
type MCTS struct {
	iterations int
	timeLimit  time.Duration

	logger  *slog.Logger
	metrics *Metrics
	onInfo  func(SearchInfo)
	last    SearchInfo
}

// NewMCTS creates a searcher bounded by an iteration cap and a time limit.
func NewMCTS(iterations int, timeLimit time.Duration, opts ...Option) *MCTS {
	o := buildOptions(opts)
	return &MCTS{
		iterations: iterations,
		timeLimit:  timeLimit,
		logger:     o.logger,
		metrics:    o.metrics,
		onInfo:     o.onInfo,
	}
}

// Iterations returns the configured iteration cap.
func (m *MCTS) Iterations() int {
	return m.iterations
}

// TimeLimit returns the configured wall-clock limit.
func (m *MCTS) TimeLimit() time.Duration {
	return m.timeLimit
}

// LastInfo returns the summary of the last SelectMove call.
func (m *MCTS) LastInfo() SearchInfo {
	return m.last
}

// SelectMove returns the column player should drop into. b is not modified.
func (m *MCTS) SelectMove(b *board.Board, player board.Cell) int {
	start := time.Now()
	work := b.Clone()

	if col := FindWinningMove(work, player, allColumns); col != NoColumn {
		m.logger.Debug("mcts immediate win", "player", player, "column", col)
		return m.finish(SearchInfo{Move: col, Path: PathWin}, start)
	}
	if col := FindWinningMove(work, player.Other(), allColumns); col != NoColumn {
		m.logger.Debug("mcts blocking opponent win", "player", player, "column", col)
		return m.finish(SearchInfo{Move: col, Path: PathBlock}, start)
	}

	budget := NewBudget(m.iterations, m.timeLimit)
	t := newTree(work, player, m.treeCapacity())

	budget.Start()
	for !budget.Exhausted() {
		id := t.selectLeaf()

		if len(t.nodes[id].untried) > 0 && !t.isTerminal(id) {
			if child := t.expand(id); child != noNode {
				id = child
			}
		}

		t.backpropagate(id, t.simulate(id))
		budget.Tick()

		if m.onInfo != nil && budget.Iterations()%infoInterval == 0 {
			m.onInfo(SearchInfo{
				Engine:     KindMCTS,
				Iterations: budget.Iterations(),
				Time:       budget.Elapsed(),
			})
		}
	}

	move, path := t.bestMove()
	m.logger.Debug("mcts search complete",
		"iterations", budget.Iterations(),
		"tree_size", len(t.nodes),
		"elapsed", budget.Elapsed())

	root := &t.nodes[0]
	info := SearchInfo{
		Move:       move,
		Path:       path,
		Iterations: budget.Iterations(),
	}
	if root.visits > 0 {
		info.Score = root.wins / float64(root.visits)
	}
	return m.finish(info, start)
}

func (m *MCTS) finish(info SearchInfo, start time.Time) int {
	info.Engine = KindMCTS
	info.Time = time.Since(start)
	m.last = info

	m.logger.Info("mcts move",
		"move", info.Move,
		"path", info.Path,
		"iterations", info.Iterations,
		"elapsed", info.Time)
	m.metrics.observeSearch(info)
	return info.Move
}

func (m *MCTS) treeCapacity() int {
	if m.iterations > 0 {
		return m.iterations + 1
	}
	return DefaultIterations + 1
}
