// Package engine implements the move-selection engines: an iterative
// deepening alpha-beta minimax and a Monte-Carlo tree search, plus the
// static evaluation they share.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hailam/fourplay/internal/board"
)

var ErrUnknownKind = errors.New("unknown engine kind")

// Kind selects one of the two engines.
type Kind uint8

const (
	KindMinimax Kind = iota
	KindMCTS
)

// String returns the lower-case engine name.
func (k Kind) String() string {
	switch k {
	case KindMinimax:
		return "minimax"
	case KindMCTS:
		return "mcts"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// DisplayName returns the name shown to players.
func (k Kind) DisplayName() string {
	switch k {
	case KindMinimax:
		return "Minimax"
	case KindMCTS:
		return "MCTS"
	}
	return k.String()
}

// Toggle returns the other engine kind.
func (k Kind) Toggle() Kind {
	if k == KindMCTS {
		return KindMinimax
	}
	return KindMCTS
}

// ParseKind parses an engine name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "minimax":
		return KindMinimax, nil
	case "mcts":
		return KindMCTS, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Decision paths reported in SearchInfo.Path.
const (
	PathWin            = "win"
	PathBlock          = "block"
	PathDoubleThreat   = "double_threat"
	PathSearch         = "search"
	PathCenterFallback = "center_fallback"
	PathNoChildren     = "no_children"
)

// SearchInfo contains information about a search in progress or the
// summary of a finished one. It is advisory only.
type SearchInfo struct {
	Engine     Kind
	Move       int
	Path       string
	Depth      int     // minimax: last completed depth
	Score      float64 // minimax: root score; mcts: root mean result
	Nodes      uint64  // minimax nodes evaluated
	CacheHits  uint64
	Iterations int // mcts iterations completed
	Time       time.Duration
}

// Option configures an engine.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	metrics *Metrics
	onInfo  func(SearchInfo)
}

// WithLogger sets the logger for search diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics records every search in m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithInfo registers a progress callback, called per completed minimax
// depth and periodically during MCTS.
func WithInfo(fn func(SearchInfo)) Option {
	return func(o *options) {
		o.onInfo = fn
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Engine is one of the two searchers, chosen by Kind. Exactly one of
// minimax and mcts is set.
type Engine struct {
	kind    Kind
	minimax *Minimax
	mcts    *MCTS
}

// New creates the engine selected by cfg.Engine. cfg should be validated.
func New(cfg Config, opts ...Option) *Engine {
	e := &Engine{kind: cfg.Engine}
	switch cfg.Engine {
	case KindMCTS:
		e.mcts = NewMCTS(cfg.Iterations, cfg.TimeLimit, opts...)
	default:
		e.kind = KindMinimax
		e.minimax = NewMinimax(cfg.MaxDepth, opts...)
	}
	return e
}

// Kind returns which searcher this engine runs.
func (e *Engine) Kind() Kind {
	return e.kind
}

// SelectMove returns the column player should drop into. b is not
// modified. The board must have at least one playable column.
func (e *Engine) SelectMove(b *board.Board, player board.Cell) int {
	if e.kind == KindMCTS {
		return e.mcts.SelectMove(b, player)
	}
	return e.minimax.SelectMove(b, player)
}

// LastStats returns the summary of the last SelectMove call.
func (e *Engine) LastStats() SearchInfo {
	if e.kind == KindMCTS {
		return e.mcts.LastInfo()
	}
	return e.minimax.LastInfo()
}
