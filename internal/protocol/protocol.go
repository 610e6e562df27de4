// Package protocol implements a line-oriented text protocol, modelled on
// UCI, for driving the engines from another program.
package protocol

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/hailam/fourplay/internal/board"
	"github.com/hailam/fourplay/internal/engine"
	"github.com/hailam/fourplay/internal/game"
)

// Handler holds the protocol session state.
type Handler struct {
	cfg    engine.Config
	board  *board.Board
	player board.Cell

	out        io.Writer
	logger     *slog.Logger
	metrics    *engine.Metrics
	dispatcher *game.Dispatcher
}

// New creates a protocol handler writing replies to out.
// metrics may be nil.
func New(cfg engine.Config, out io.Writer, logger *slog.Logger, metrics *engine.Metrics) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		cfg:        cfg,
		board:      board.NewBoard(),
		player:     board.PlayerA,
		out:        out,
		logger:     logger,
		metrics:    metrics,
		dispatcher: &game.Dispatcher{Logger: logger, Metrics: metrics},
	}
}

// Run reads commands from r until "quit" or end of input.
func (h *Handler) Run(r io.Reader) error {
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "fourplay":
			h.handleHello()
		case "isready":
			h.println("readyok")
		case "newgame":
			h.handleNewGame()
		case "position":
			h.handlePosition(args)
		case "go":
			h.handleGo(args)
		case "engine":
			h.handleEngine(args)
		case "setoption":
			h.handleSetOption(args)
		case "d":
			h.handleDisplay()
		case "quit":
			return nil
		default:
			h.infoString("unknown command: %s", cmd)
		}
	}

	return scanner.Err()
}

// handleHello identifies the engine and lists its options.
func (h *Handler) handleHello() {
	h.println("id name FourPlay")
	h.println("id author FourPlay Team")
	h.println("")
	h.printf("option name Engine type combo default %s var minimax var mcts\n", h.cfg.Engine)
	h.printf("option name Depth type spin default %d min 1 max %d\n", h.cfg.MaxDepth, board.Rows*board.Cols)
	h.printf("option name Iterations type spin default %d min 0\n", h.cfg.Iterations)
	h.printf("option name TimeLimit type spin default %d min 0\n", h.cfg.TimeLimit.Milliseconds())
	h.println("fourplayok")
}

// handleNewGame clears the board.
func (h *Handler) handleNewGame() {
	h.board = board.NewBoard()
	h.player = board.PlayerA
}

// handlePosition sets up a board.
// Formats:
//   - position empty
//   - position empty moves 3 3 4
//   - position <notation>
//   - position <notation> moves 2
func (h *Handler) handlePosition(args []string) {
	if len(args) == 0 {
		h.infoString("invalid position: missing board")
		return
	}

	var b *board.Board
	if args[0] == "empty" {
		b = board.NewBoard()
	} else {
		parsed, err := board.Parse(args[0])
		if err != nil {
			h.infoString("invalid position: %v", err)
			return
		}
		b = parsed
	}

	if len(args) > 1 {
		if args[1] != "moves" {
			h.infoString("invalid position: expected moves, got %s", args[1])
			return
		}
		cols, err := parseColumns(args[2:])
		if err != nil {
			h.infoString("invalid move: %v", err)
			return
		}
		if err := b.Apply(cols...); err != nil {
			h.infoString("invalid move: %v", err)
			return
		}
	}

	h.board = b
	h.player = b.SideToMove()
}

func parseColumns(args []string) ([]int, error) {
	cols := make([]int, 0, len(args))
	for _, a := range args {
		col, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", a, board.ErrInvalidColumn)
		}
		cols = append(cols, col)
	}
	return cols, nil
}

// GoOptions holds parsed "go" command options.
type GoOptions struct {
	Depth      int
	Iterations int
	MoveTime   time.Duration
}

// parseGoOptions parses "go" command arguments. A non-numeric value is
// reported with the name of its option.
func parseGoOptions(args []string) (GoOptions, error) {
	opts := GoOptions{}

	for i := 0; i < len(args); i++ {
		name := args[i]
		if name != "depth" && name != "iterations" && name != "movetime" {
			continue
		}
		if i+1 >= len(args) {
			break
		}
		n, err := strconv.Atoi(args[i+1])
		if err != nil {
			return opts, fmt.Errorf("invalid %s %q", name, args[i+1])
		}
		i++

		switch name {
		case "depth":
			opts.Depth = n
		case "iterations":
			opts.Iterations = n
		case "movetime":
			opts.MoveTime = time.Duration(n) * time.Millisecond
		}
	}

	return opts, nil
}

// searchConfig applies go options to the session config. movetime only
// bounds MCTS; minimax is bounded by depth alone.
func (h *Handler) searchConfig(opts GoOptions) engine.Config {
	cfg := h.cfg
	if opts.Depth > 0 {
		cfg.MaxDepth = opts.Depth
	}
	if opts.Iterations > 0 {
		cfg.Iterations = opts.Iterations
	}
	if opts.MoveTime > 0 {
		cfg.TimeLimit = opts.MoveTime
	}
	return cfg
}

// handleGo searches the current board and prints the chosen column.
func (h *Handler) handleGo(args []string) {
	opts, err := parseGoOptions(args)
	if err != nil {
		h.infoString("%v", err)
		return
	}
	cfg := h.searchConfig(opts)
	if err := cfg.Validate(); err != nil {
		h.infoString("invalid search limits: %v", err)
		return
	}

	eng := engine.New(cfg,
		engine.WithLogger(h.logger),
		engine.WithMetrics(h.metrics),
		engine.WithInfo(h.sendInfo))

	col, degraded, err := h.dispatcher.Select(eng, h.board, h.player)
	if errors.Is(err, game.ErrNoMoves) {
		h.println("bestmove none")
		return
	}
	if degraded {
		h.infoString("search failed, playing random column")
	}
	h.printf("bestmove %d\n", col)
}

// sendInfo prints search progress.
func (h *Handler) sendInfo(info engine.SearchInfo) {
	var parts []string

	switch info.Engine {
	case engine.KindMCTS:
		parts = append(parts, fmt.Sprintf("iterations %d", info.Iterations))
	default:
		parts = append(parts, fmt.Sprintf("depth %d", info.Depth))
		if info.Score > engine.NearWinThreshold {
			parts = append(parts, "score win")
		} else if info.Score < -engine.NearWinThreshold {
			parts = append(parts, "score loss")
		} else {
			parts = append(parts, fmt.Sprintf("score %.0f", info.Score))
		}
		parts = append(parts, fmt.Sprintf("nodes %d", info.Nodes))
		parts = append(parts, fmt.Sprintf("cachehits %d", info.CacheHits))
		parts = append(parts, fmt.Sprintf("move %d", info.Move))
	}
	parts = append(parts, fmt.Sprintf("time %d", info.Time.Milliseconds()))

	h.printf("info %s\n", strings.Join(parts, " "))
}

// handleEngine switches between minimax and mcts.
func (h *Handler) handleEngine(args []string) {
	if len(args) == 0 {
		h.printf("info string engine %s\n", h.cfg.Engine)
		return
	}
	kind, err := engine.ParseKind(args[0])
	if err != nil {
		h.infoString("%v", err)
		return
	}
	h.cfg.Engine = kind
}

// handleSetOption processes "setoption" commands.
func (h *Handler) handleSetOption(args []string) {
	// Format: setoption name <name> value <value>
	var name, value string
	readingName := false
	readingValue := false

	for _, arg := range args {
		switch arg {
		case "name":
			readingName = true
			readingValue = false
		case "value":
			readingName = false
			readingValue = true
		default:
			if readingName {
				if name != "" {
					name += " "
				}
				name += arg
			} else if readingValue {
				if value != "" {
					value += " "
				}
				value += arg
			}
		}
	}

	cfg := h.cfg
	switch strings.ToLower(name) {
	case "engine":
		kind, err := engine.ParseKind(value)
		if err != nil {
			h.infoString("%v", err)
			return
		}
		cfg.Engine = kind
	case "depth":
		n, err := strconv.Atoi(value)
		if err != nil {
			h.infoString("invalid depth %q", value)
			return
		}
		cfg.MaxDepth = n
	case "iterations":
		n, err := strconv.Atoi(value)
		if err != nil {
			h.infoString("invalid iterations %q", value)
			return
		}
		cfg.Iterations = n
	case "timelimit":
		ms, err := strconv.Atoi(value)
		if err != nil {
			h.infoString("invalid time limit %q", value)
			return
		}
		cfg.TimeLimit = time.Duration(ms) * time.Millisecond
	default:
		h.infoString("unknown option: %s", name)
		return
	}

	if err := cfg.Validate(); err != nil {
		h.infoString("%v", err)
		return
	}
	h.cfg = cfg
}

// handleDisplay prints the board for debugging.
func (h *Handler) handleDisplay() {
	fmt.Fprint(h.out, h.board.Pretty())
	h.printf("position %s\n", h.board.String())
	h.printf("tomove %c hash %016x\n", h.player.Char(), h.board.Hash())
}

func (h *Handler) infoString(format string, args ...any) {
	h.printf("info string "+format+"\n", args...)
}

func (h *Handler) printf(format string, args ...any) {
	fmt.Fprintf(h.out, format, args...)
}

func (h *Handler) println(s string) {
	fmt.Fprintln(h.out, s)
}
