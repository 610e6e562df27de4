// Package game tracks a single human-versus-engine match: turns, move
// history, results and the controls that are only allowed between games.
package game

import (
	"errors"
	"fmt"

	"github.com/hailam/fourplay/internal/board"
	"github.com/hailam/fourplay/internal/engine"
)

var (
	ErrGameOver     = errors.New("game is over")
	ErrNotYourTurn  = errors.New("not this side's turn")
	ErrGameRunning  = errors.New("game in progress")
	ErrInvalidState = errors.New("invalid game state")
)

// HumanName is recorded in the history for moves made by the player.
const HumanName = "Human"

// Move is one entry of the move history.
type Move struct {
	Number int
	Player board.Cell
	Row    int
	Col    int
	By     string // HumanName or the engine name
}

// Outcome is the final state of a game.
type Outcome int

const (
	InProgress Outcome = iota
	Won
	Draw
)

// Game is the turn bookkeeping for one board. PlayerA always moves first;
// the human plays PlayerA unless the sides were swapped.
// Not safe for concurrent use.
type Game struct {
	board   *board.Board
	current board.Cell
	human   board.Cell
	kind    engine.Kind

	running bool
	outcome Outcome
	winner  board.Cell
	winning []board.Square
	history []Move
}

// New creates a game with the human as PlayerA against the given engine.
func New(kind engine.Kind) *Game {
	g := &Game{
		human: board.PlayerA,
		kind:  kind,
	}
	g.Reset()
	return g
}

// Reset clears the board and history. Sides and engine choice are kept.
func (g *Game) Reset() {
	g.board = board.NewBoard()
	g.current = board.PlayerA
	g.running = false
	g.outcome = InProgress
	g.winner = board.Empty
	g.winning = nil
	g.history = nil
}

// Start marks the game as running so the engine may move.
func (g *Game) Start() error {
	if g.Over() {
		return ErrGameOver
	}
	g.running = true
	return nil
}

// PlayHuman drops the human's disc into col. The first human move also
// starts the game.
func (g *Game) PlayHuman(col int) (Move, error) {
	if g.Over() {
		return Move{}, ErrGameOver
	}
	if g.current != g.human {
		return Move{}, ErrNotYourTurn
	}
	m, err := g.play(col, HumanName)
	if err != nil {
		return Move{}, err
	}
	g.running = !g.Over()
	return m, nil
}

// PlayEngine drops the engine's disc into col.
func (g *Game) PlayEngine(col int) (Move, error) {
	if g.Over() {
		return Move{}, ErrGameOver
	}
	if g.current != g.AI() {
		return Move{}, ErrNotYourTurn
	}
	return g.play(col, g.kind.DisplayName())
}

func (g *Game) play(col int, by string) (Move, error) {
	row, err := g.board.Play(col, g.current)
	if err != nil {
		return Move{}, fmt.Errorf("play column %d: %w", col, err)
	}

	m := Move{
		Number: len(g.history) + 1,
		Player: g.current,
		Row:    row,
		Col:    col,
		By:     by,
	}
	g.history = append(g.history, m)

	if line := g.board.DetectWin(row, col); line != nil {
		g.outcome = Won
		g.winner = g.current
		g.winning = line
		g.running = false
		return m, nil
	}
	if g.board.IsDraw() {
		g.outcome = Draw
		g.running = false
		return m, nil
	}

	g.current = g.current.Other()
	return m, nil
}

// Swap exchanges the human and engine sides and resets the board.
// Only allowed while no game is running.
func (g *Game) Swap() error {
	if g.running {
		return ErrGameRunning
	}
	if g.Over() {
		return ErrGameOver
	}
	g.human = g.human.Other()
	g.Reset()
	return nil
}

// ToggleEngine switches between minimax and MCTS and resets the board.
// Only allowed while no game is running.
func (g *Game) ToggleEngine() error {
	if g.running {
		return ErrGameRunning
	}
	if g.Over() {
		return ErrGameOver
	}
	g.kind = g.kind.Toggle()
	g.Reset()
	return nil
}

// SetHuman sets the human's side, e.g. from saved preferences, and resets
// the board.
func (g *Game) SetHuman(c board.Cell) error {
	if !c.IsPlayer() {
		return fmt.Errorf("%w: human side %v", ErrInvalidState, c)
	}
	g.human = c
	g.Reset()
	return nil
}

// SetKind sets the engine, e.g. from saved preferences, and resets the
// board.
func (g *Game) SetKind(k engine.Kind) {
	g.kind = k
	g.Reset()
}

// Board returns a copy of the current board.
func (g *Game) Board() *board.Board { return g.board.Clone() }

// Current returns the side to move.
func (g *Game) Current() board.Cell { return g.current }

// Human returns the human's side.
func (g *Game) Human() board.Cell { return g.human }

// AI returns the engine's side.
func (g *Game) AI() board.Cell { return g.human.Other() }

// Kind returns the engine in use.
func (g *Game) Kind() engine.Kind { return g.kind }

// Running reports whether the game has started and is not over.
func (g *Game) Running() bool { return g.running }

// Over reports whether the game has been won or drawn.
func (g *Game) Over() bool { return g.outcome != InProgress }

// Outcome returns how the game ended, or InProgress.
func (g *Game) Outcome() Outcome { return g.outcome }

// Winner returns the winning side, or Empty.
func (g *Game) Winner() board.Cell { return g.winner }

// WinningCells returns the line that won the game, for highlighting.
func (g *Game) WinningCells() []board.Square { return g.winning }

// History returns the moves played so far.
func (g *Game) History() []Move { return g.history }

// LastMove returns the most recent move, if any.
func (g *Game) LastMove() (Move, bool) {
	if len(g.history) == 0 {
		return Move{}, false
	}
	return g.history[len(g.history)-1], true
}

// HumanToMove reports whether a click may place a disc.
func (g *Game) HumanToMove() bool {
	return !g.Over() && g.current == g.human
}

// EngineToMove reports whether the engine should search now.
func (g *Game) EngineToMove() bool {
	return g.running && !g.Over() && g.current == g.AI()
}

// PlayerName returns the display name for side c.
func (g *Game) PlayerName(c board.Cell) string {
	if c == g.human {
		return "Player"
	}
	return g.kind.DisplayName() + " AI"
}

// StatusText describes the game state for the status line.
func (g *Game) StatusText() string {
	switch g.outcome {
	case Won:
		return g.PlayerName(g.winner) + " wins!"
	case Draw:
		return "Draw!"
	}
	if g.current == g.human {
		return "Your turn. Click a column to play."
	}
	if !g.running {
		return "Press Start to let the engine move."
	}
	return g.kind.DisplayName() + " is thinking..."
}
