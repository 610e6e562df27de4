package main

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/fourplay/internal/board"
	"github.com/hailam/fourplay/internal/engine"
	"github.com/hailam/fourplay/internal/game"
	"github.com/hailam/fourplay/internal/storage"
)

// matchTally counts results from the first engine's point of view.
type matchTally struct {
	mu        sync.Mutex
	wins      int
	losses    int
	draws     int
	fallbacks int
	plies     int
}

func (t *matchTally) add(firstWon, draw bool, plies, fallbacks int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch {
	case draw:
		t.draws++
	case firstWon:
		t.wins++
	default:
		t.losses++
	}
	t.plies += plies
	t.fallbacks += fallbacks
}

func newMatchCmd(a *app) *cobra.Command {
	var (
		games    int
		parallel int
		first    string
		second   string
		record   bool
	)
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Play engine-versus-engine games",
		Long: `Play engine-versus-engine games. Sides alternate every game so each
engine opens half of them. Games run concurrently; each game owns its engines.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			firstKind, err := engine.ParseKind(first)
			if err != nil {
				return fmt.Errorf("--first: %w", err)
			}
			secondKind, err := engine.ParseKind(second)
			if err != nil {
				return fmt.Errorf("--second: %w", err)
			}
			if games < 1 {
				return fmt.Errorf("--games must be positive")
			}

			var store *storage.Storage
			if record {
				if store, err = a.openStorage(); err != nil {
					return err
				}
				defer store.Close()
			}

			tally := &matchTally{}
			start := time.Now()
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(max(parallel, 1))

			for i := 0; i < games; i++ {
				g.Go(func() error {
					return a.playOne(ctx, i, firstKind, secondKind, tally, store)
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s vs %s: %d games, +%d -%d =%d, %.1f plies/game, %d fallbacks, %v\n",
				firstKind, secondKind, games, tally.wins, tally.losses, tally.draws,
				float64(tally.plies)/float64(games), tally.fallbacks, time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&games, "games", 10, "number of games")
	f.IntVar(&parallel, "parallel", runtime.NumCPU(), "games played at once")
	f.StringVar(&first, "first", "minimax", "first engine")
	f.StringVar(&second, "second", "mcts", "second engine")
	f.BoolVar(&record, "record", false, "save every game to the database")
	return cmd
}

// playOne plays game i. The first engine takes PlayerA on even games.
func (a *app) playOne(ctx context.Context, i int, firstKind, secondKind engine.Kind, tally *matchTally, store *storage.Storage) error {
	newEngine := func(k engine.Kind) *engine.Engine {
		cfg := a.cfg
		cfg.Engine = k
		return engine.New(cfg, engine.WithLogger(a.logger))
	}
	x, o := newEngine(firstKind), newEngine(secondKind)
	firstSide := board.PlayerA
	if i%2 == 1 {
		x, o = o, x
		firstSide = board.PlayerB
	}

	start := time.Now()
	res, err := game.PlayMatch(ctx, x, o, &game.Dispatcher{Logger: a.logger})
	if err != nil {
		return fmt.Errorf("game %d: %w", i+1, err)
	}
	elapsed := time.Since(start)
	a.logger.Info("game finished", "game", i+1, "winner", res.Winner, "plies", len(res.Moves), "time", elapsed)
	tally.add(res.Winner == firstSide, res.Winner == board.Empty, len(res.Moves), res.Fallbacks)

	if store == nil {
		return nil
	}
	return store.SaveGameRecord(&storage.GameRecord{
		PlayerA:  x.Kind().String(),
		PlayerB:  o.Kind().String(),
		Moves:    res.Moves,
		Winner:   res.Winner,
		Final:    res.Final.String(),
		Duration: elapsed,
	})
}
