package game

import (
	"context"
	"fmt"

	"github.com/hailam/fourplay/internal/board"
)

// MatchResult is the outcome of an engine-versus-engine game.
type MatchResult struct {
	Winner    board.Cell // Empty on a draw
	Moves     []int
	Fallbacks int
	Final     *board.Board
}

// PlayMatch plays first (as PlayerA) against second from an empty board.
// The context is checked between moves; a search in progress always
// completes.
func PlayMatch(ctx context.Context, first, second Selector, d *Dispatcher) (MatchResult, error) {
	b := board.NewBoard()
	player := board.PlayerA
	var res MatchResult

	for {
		if err := ctx.Err(); err != nil {
			res.Final = b
			return res, err
		}

		sel := first
		if player == board.PlayerB {
			sel = second
		}

		col, degraded, err := d.Select(sel, b, player)
		if err != nil {
			res.Final = b
			return res, fmt.Errorf("move %d: %w", len(res.Moves)+1, err)
		}
		if degraded {
			res.Fallbacks++
		}

		row, err := b.Play(col, player)
		if err != nil {
			res.Final = b
			return res, fmt.Errorf("move %d: %w", len(res.Moves)+1, err)
		}
		res.Moves = append(res.Moves, col)

		if b.WinsAt(row, col) {
			res.Winner = player
			break
		}
		if b.IsDraw() {
			break
		}
		player = player.Other()
	}

	res.Final = b
	return res, nil
}
