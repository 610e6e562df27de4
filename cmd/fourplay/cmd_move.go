package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hailam/fourplay/internal/board"
	"github.com/hailam/fourplay/internal/engine"
	"github.com/hailam/fourplay/internal/game"
)

func newMoveCmd(a *app) *cobra.Command {
	var moves []int
	cmd := &cobra.Command{
		Use:   "move [notation|empty]",
		Short: "Print the engine's column for a position",
		Long: `Print the engine's column for a position. The notation lists six
rows top to bottom separated by '/', using '.', 'X' and 'O'. The side to
move is derived from the disc counts.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b := board.NewBoard()
			if len(args) == 1 && args[0] != "empty" {
				var err error
				if b, err = board.Parse(args[0]); err != nil {
					return err
				}
			}
			if err := b.Apply(moves...); err != nil {
				return err
			}

			eng := engine.New(a.cfg, engine.WithLogger(a.logger))
			d := &game.Dispatcher{Logger: a.logger}
			col, degraded, err := d.Select(eng, b, b.SideToMove())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, strings.TrimRight(b.Pretty(), "\n"))
			if degraded {
				fmt.Fprintln(out, "warning: engine failed, random move")
			} else {
				fmt.Fprintln(out, describe(eng.LastStats()))
			}
			fmt.Fprintf(out, "bestmove %d\n", col)
			return nil
		},
	}
	cmd.Flags().IntSliceVar(&moves, "moves", nil, "columns to play from the position first, e.g. 3,3,4")
	return cmd
}

func describe(info engine.SearchInfo) string {
	s := fmt.Sprintf("engine %s path %s move %d time %v", info.Engine, info.Path, info.Move, info.Time)
	switch {
	case info.Path != engine.PathSearch:
		return s
	case info.Engine == engine.KindMCTS:
		return s + fmt.Sprintf(" iterations %d score %.3f", info.Iterations, info.Score)
	default:
		return s + fmt.Sprintf(" depth %d score %.0f nodes %d cachehits %d", info.Depth, info.Score, info.Nodes, info.CacheHits)
	}
}
