package engine

import (
	"math"
	"sort"

	"github.com/hailam/fourplay/internal/board"
)

// MCTS tuning constants.
const (
	ExplorationConstant = 1.414
	heuristicBiasScale  = 0.001
	minBestMoveVisits   = 5
)

// noNode marks the root's parent.
const noNode = -1

// Expansion ordering weights.
var mctsCenterBonus = [board.Cols]int{5, 12, 25, 50, 25, 12, 5}

const (
	expandThreatWeight     = 100
	expandDoubleWeight     = 75
	expandPositionalWeight = 20

	threatWin        = 200
	threatBlock      = 150
	threatOwnThree   = 15
	threatOppThree   = 12
	positionalOwn    = 8
	positionalOpp    = 6
	positionalRadius = 3
)

// mctsNode is one tree node. Nodes live in a tree arena and refer to each
// other by index.
type mctsNode struct {
	board  board.Board
	parent int
	move   int        // column that produced this node, NoColumn at the root
	player board.Cell // side to move at this node
	winner board.Cell // set when move completed four in a row

	children  []int
	untried   []int // weakest first; expansion pops from the end
	visits    int
	wins      float64
	heuristic int // static score for player, the side to move
}

// tree is the arena for a single search. It is discarded once the best
// move has been read.
type tree struct {
	nodes      []mctsNode
	rootPlayer board.Cell
}

func newTree(b *board.Board, player board.Cell, capacity int) *tree {
	t := &tree{
		nodes:      make([]mctsNode, 0, capacity),
		rootPlayer: player,
	}
	t.add(*b, noNode, NoColumn, player, board.Empty)
	return t
}

// add appends a node and returns its index. Pointers into t.nodes are
// invalid after add.
func (t *tree) add(b board.Board, parent, move int, player, winner board.Cell) int {
	n := mctsNode{
		board:  b,
		parent: parent,
		move:   move,
		player: player,
		winner: winner,
	}
	if winner == board.Empty {
		n.untried = expansionOrder(&n.board, player)
	}
	n.heuristic = Heuristic(&n.board, player)

	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

// selectLeaf descends from the root while the current node is fully
// expanded.
func (t *tree) selectLeaf() int {
	id := 0
	for {
		n := &t.nodes[id]
		if len(n.children) == 0 || len(n.untried) > 0 {
			return id
		}
		next := t.selectChild(id)
		if next == noNode {
			return id
		}
		id = next
	}
}

// selectChild picks the child with the highest UCB1 score plus heuristic
// bias. An unvisited child is returned immediately.
func (t *tree) selectChild(id int) int {
	parent := &t.nodes[id]
	best := noNode
	bestValue := math.Inf(-1)
	logVisits := math.Log(float64(parent.visits))

	for _, cid := range parent.children {
		child := &t.nodes[cid]
		if child.visits == 0 {
			return cid
		}

		visits := float64(child.visits)
		winRate := child.wins / visits
		exploration := math.Sqrt(logVisits / visits)
		bias := float64(child.heuristic) * heuristicBiasScale
		ucb := winRate + ExplorationConstant*exploration + bias

		if ucb > bestValue {
			bestValue = ucb
			best = cid
		}
	}
	return best
}

// isTerminal reports whether id is decided or will be decided next ply:
// its move won, the board is full, or either side has an immediate win.
func (t *tree) isTerminal(id int) bool {
	n := &t.nodes[id]
	if n.winner != board.Empty {
		return true
	}
	if n.board.IsDraw() {
		return true
	}
	return FindWinningMove(&n.board, board.PlayerA, allColumns) != NoColumn ||
		FindWinningMove(&n.board, board.PlayerB, allColumns) != NoColumn
}

// expand pops the strongest untried column of id and attaches the child.
// It returns noNode when no untried column is playable.
func (t *tree) expand(id int) int {
	for len(t.nodes[id].untried) > 0 {
		n := &t.nodes[id]
		col := n.untried[len(n.untried)-1]
		n.untried = n.untried[:len(n.untried)-1]

		row := n.board.DropRow(col)
		if row == board.NoRow {
			continue
		}

		mover := n.player
		next := n.board
		next.Set(row, col, mover)
		winner := board.Empty
		if next.WinsAt(row, col) {
			winner = mover
		}

		cid := t.add(next, id, col, mover.Other(), winner)
		t.nodes[id].children = append(t.nodes[id].children, cid)
		return cid
	}
	return noNode
}

// backpropagate adds result, always from the root player's point of view,
// to id and each of its ancestors.
func (t *tree) backpropagate(id int, result float64) {
	for id != noNode {
		n := &t.nodes[id]
		n.visits++
		n.wins += result
		id = n.parent
	}
}

// bestMove returns the root child with the best win rate among those with
// enough visits, else the most visited child. A root without children
// yields its first valid column, or 0.
func (t *tree) bestMove() (int, string) {
	root := &t.nodes[0]
	if len(root.children) == 0 {
		if cols := root.board.ValidColumns(); len(cols) > 0 {
			return cols[0], PathNoChildren
		}
		return 0, PathNoChildren
	}

	best := noNode
	bestRate := math.Inf(-1)
	for _, cid := range root.children {
		child := &t.nodes[cid]
		if child.visits < minBestMoveVisits {
			continue
		}
		rate := child.wins / float64(child.visits)
		if rate > bestRate {
			bestRate = rate
			best = cid
		}
	}

	if best == noNode {
		best = root.children[0]
		for _, cid := range root.children[1:] {
			if t.nodes[cid].visits > t.nodes[best].visits {
				best = cid
			}
		}
	}
	return t.nodes[best].move, PathSearch
}

// expansionOrder scores the playable columns for player and returns them
// weakest first.
func expansionOrder(b *board.Board, player board.Cell) []int {
	cols := b.ValidColumns()
	scored := make([]scoredColumn, len(cols))
	for i, col := range cols {
		score := mctsCenterBonus[col]
		score += immediateThreats(b, col, player) * expandThreatWeight
		score += doubleThreatPotential(b, col, player) * expandDoubleWeight
		score += positionalAdvantage(b, col, player) * expandPositionalWeight
		scored[i] = scoredColumn{col: col, score: score}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score < scored[j].score
	})

	for i := range scored {
		cols[i] = scored[i].col
	}
	return cols
}

// immediateThreats rates col for player: a win, a needed block, or the
// balance of three-runs each side could make there.
func immediateThreats(b *board.Board, col int, player board.Cell) int {
	row := b.DropRow(col)
	if row == board.NoRow {
		return 0
	}
	opponent := player.Other()

	b.Set(row, col, player)
	win := b.WinsAt(row, col)
	b.Set(row, col, board.Empty)
	if win {
		return threatWin
	}

	b.Set(row, col, opponent)
	win = b.WinsAt(row, col)
	b.Set(row, col, board.Empty)
	if win {
		return threatBlock
	}

	return countPotentialThreats(b, col, player, 3)*threatOwnThree -
		countPotentialThreats(b, col, opponent, 3)*threatOppThree
}

// doubleThreatPotential returns how many immediate wins (capped at 2)
// player would have after dropping in col.
func doubleThreatPotential(b *board.Board, col int, player board.Cell) int {
	row := b.DropRow(col)
	if row == board.NoRow {
		return 0
	}
	b.Set(row, col, player)
	n := CountWinningReplies(b, player, 2)
	b.Set(row, col, board.Empty)
	return n
}

// positionalAdvantage counts discs within three cells of the drop cell
// along each axis, gaps allowed.
func positionalAdvantage(b *board.Board, col int, player board.Cell) int {
	row := b.DropRow(col)
	if row == board.NoRow {
		return 0
	}
	opponent := player.Other()

	score := 0
	for _, d := range lineDirections {
		var mine, theirs int
		for i := 1; i <= positionalRadius; i++ {
			for _, sign := range [2]int{1, -1} {
				r, c := row+d[0]*i*sign, col+d[1]*i*sign
				if !board.InBounds(r, c) {
					continue
				}
				switch b.Cells[r][c] {
				case player:
					mine++
				case opponent:
					theirs++
				}
			}
		}
		score += mine*positionalOwn - theirs*positionalOpp
	}
	return score
}
