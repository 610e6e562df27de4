package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/hailam/fourplay/internal/board"
	"github.com/hailam/fourplay/internal/engine"
)

var (
	ErrNoMoves       = errors.New("no playable column")
	ErrEngineFailure = errors.New("engine failure")
)

// Fallback reasons, also used as metric labels.
const (
	ReasonPanic         = "panic"
	ReasonInvalidColumn = "invalid_column"
)

// Selector is anything that picks a column for a player.
type Selector interface {
	SelectMove(b *board.Board, player board.Cell) int
}

// Dispatcher runs a Selector and substitutes a uniformly random legal
// column when the search panics or returns a column that cannot be played.
type Dispatcher struct {
	Rand    *rand.Rand      // nil uses the global source
	Logger  *slog.Logger    // nil uses slog.Default
	Metrics *engine.Metrics // may be nil
}

// Select returns the column to play for player on b. It returns
// ErrNoMoves if the board is full; any other failure is absorbed.
// The second result reports whether the fallback was used.
func (d *Dispatcher) Select(sel Selector, b *board.Board, player board.Cell) (int, bool, error) {
	valid := b.ValidColumns()
	if len(valid) == 0 {
		return engine.NoColumn, false, ErrNoMoves
	}

	col, err := search(sel, b, player)
	if err != nil {
		d.logger().Error("engine search failed, playing random move", "error", err)
		d.Metrics.RecordFallback(ReasonPanic)
		return d.random(valid), true, nil
	}

	if !b.CanPlay(col) {
		d.logger().Warn("engine chose invalid column, playing random move", "column", col)
		d.Metrics.RecordFallback(ReasonInvalidColumn)
		return d.random(valid), true, nil
	}

	return col, false, nil
}

// search runs sel on a copy of b and converts a panic into an error.
func search(sel Selector, b *board.Board, player board.Cell) (col int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrEngineFailure, r)
		}
	}()
	return sel.SelectMove(b.Clone(), player), nil
}

func (d *Dispatcher) random(valid []int) int {
	if d.Rand != nil {
		return valid[d.Rand.IntN(len(valid))]
	}
	return valid[rand.IntN(len(valid))]
}

func (d *Dispatcher) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}
