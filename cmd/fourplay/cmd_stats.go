package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hailam/fourplay/internal/board"
)

func newStatsCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show human-versus-engine statistics and recent games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStorage()
			if err != nil {
				return err
			}
			defer store.Close()

			stats, err := store.LoadStats()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "games %d  wins %d  losses %d  draws %d  win rate %.1f%%\n",
				stats.GamesPlayed, stats.Wins, stats.Losses, stats.Draws, stats.GetWinRate())
			fmt.Fprintf(out, "streak %d  best streak %d  play time %v\n",
				stats.CurrentStreak, stats.LongestWinStrk, stats.TotalPlayTime.Round(time.Second))
			for _, k := range []string{"minimax", "mcts"} {
				fmt.Fprintf(out, "vs %-8s won %d lost %d\n", k, stats.WinsByEngine[k], stats.LossesByEngine[k])
			}

			records, err := store.ListGameRecords(limit)
			if err != nil {
				return err
			}
			if len(records) > 0 {
				fmt.Fprintln(out, "recent games:")
			}
			for _, r := range records {
				result := "draw"
				if r.Winner != board.Empty {
					result = r.Winner.String() + " won"
				}
				fmt.Fprintf(out, "  %s  %s (X) vs %s (O)  %s in %d plies  %v\n",
					r.PlayedAt.Format(time.DateTime), r.PlayerA, r.PlayerB, result, len(r.Moves), r.Duration.Round(time.Millisecond))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "recent games to list, 0 for all")
	return cmd
}
