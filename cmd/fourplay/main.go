// Command fourplay drives the engines from the command line: the text
// protocol, single-position analysis, engine-versus-engine matches and the
// stored statistics.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/pprof"
	"time"

	"github.com/spf13/cobra"

	"github.com/hailam/fourplay/internal/engine"
	"github.com/hailam/fourplay/internal/storage"
)

// app holds the persistent flags and what PersistentPreRunE builds from them.
type app struct {
	configPath string
	logLevel   string
	cpuProfile string
	dataDir    string

	engineName string
	depth      int
	iterations int
	timeLimit  time.Duration

	cfg     engine.Config
	logger  *slog.Logger
	profile *os.File
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "fourplay",
		Short:        "Connect-four engines: minimax and Monte-Carlo tree search",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.teardown()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML engine config file")
	pf.StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	pf.StringVar(&a.cpuProfile, "cpuprofile", "", "write a CPU profile to this file")
	pf.StringVar(&a.dataDir, "data-dir", "", "database directory (default: platform data dir)")
	pf.StringVar(&a.engineName, "engine", "", "engine: minimax or mcts")
	pf.IntVar(&a.depth, "depth", 0, "minimax maximum depth")
	pf.IntVar(&a.iterations, "iterations", 0, "MCTS iteration budget")
	pf.DurationVar(&a.timeLimit, "time-limit", 0, "MCTS time budget, e.g. 2s")

	root.AddCommand(
		newProtocolCmd(a),
		newMoveCmd(a),
		newMatchCmd(a),
		newStatsCmd(a),
	)
	return root
}

// setup configures logging, profiling and the engine config. Flags override
// the config file, which overrides the defaults.
func (a *app) setup(cmd *cobra.Command) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(a.logLevel)); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)

	cfg, err := engine.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("engine") {
		if cfg.Engine, err = engine.ParseKind(a.engineName); err != nil {
			return fmt.Errorf("--engine: %w", err)
		}
	}
	if flags.Changed("depth") {
		cfg.MaxDepth = a.depth
	}
	if flags.Changed("iterations") {
		cfg.Iterations = a.iterations
	}
	if flags.Changed("time-limit") {
		cfg.TimeLimit = a.timeLimit
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	if a.cpuProfile != "" {
		f, err := os.Create(a.cpuProfile)
		if err != nil {
			return fmt.Errorf("create cpu profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return fmt.Errorf("start cpu profile: %w", err)
		}
		a.profile = f
		a.logger.Info("cpu profiling enabled", "path", a.cpuProfile)
	}
	return nil
}

func (a *app) teardown() {
	if a.profile != nil {
		pprof.StopCPUProfile()
		a.profile.Close()
		a.profile = nil
	}
}

func (a *app) openStorage() (*storage.Storage, error) {
	if a.dataDir != "" {
		return storage.Open(a.dataDir)
	}
	return storage.OpenDefault()
}
