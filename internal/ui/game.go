package ui

import (
	"errors"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/fourplay/internal/board"
	"github.com/hailam/fourplay/internal/engine"
	"github.com/hailam/fourplay/internal/game"
	"github.com/hailam/fourplay/internal/storage"
)

// UI Constants
const (
	CellSize     = 80
	HeaderHeight = CellSize // hover strip above the grid
	BoardWidth   = board.Cols * CellSize
	ScreenHeight = HeaderHeight + board.Rows*CellSize
	PanelWidth   = 300
	ScreenWidth  = BoardWidth + PanelWidth

	// AIMoveDelay keeps the human's disc visible before the engine replies.
	AIMoveDelay = 1000 * time.Millisecond
)

// UIScale is the global HiDPI scale factor, set by Game.Layout.
var UIScale = 1.0

// Options configures NewGame.
type Options struct {
	Config  engine.Config
	Storage *storage.Storage // nil disables preferences and statistics
	Logger  *slog.Logger
	Metrics *engine.Metrics
}

type aiResult struct {
	gen      int
	col      int
	degraded bool
	err      error
	info     engine.SearchInfo
}

// Game implements ebiten.Game for a human playing one of the engines.
type Game struct {
	session    *game.Game
	engines    map[engine.Kind]*engine.Engine
	dispatcher *game.Dispatcher
	logger     *slog.Logger

	storage *storage.Storage
	prefs   *storage.UserPreferences
	stats   *storage.GameStats
	started time.Time

	renderer *Renderer
	input    *InputHandler
	panel    *Panel
	feedback *FeedbackManager
	hoverCol int

	// aiThinking stays set until the goroutine's result is received, even
	// after a reset, so an engine never runs two searches at once.
	aiThinking bool
	aiMove     chan aiResult
	generation int
	lastSearch engine.SearchInfo
	hasSearch  bool

	scale float64
}

// NewGame creates the window state. Preferences are loaded from
// opts.Storage when it is set.
func NewGame(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	g := &Game{
		session:  game.New(opts.Config.Engine),
		engines:  make(map[engine.Kind]*engine.Engine),
		logger:   logger,
		storage:  opts.Storage,
		renderer: NewRenderer(CellSize, HeaderHeight),
		input:    NewInputHandler(),
		feedback: NewFeedbackManager(BoardWidth),
		hoverCol: -1,
		aiMove:   make(chan aiResult, 1),
		scale:    1.0,
	}
	g.dispatcher = &game.Dispatcher{Logger: logger, Metrics: opts.Metrics}

	for _, k := range []engine.Kind{engine.KindMinimax, engine.KindMCTS} {
		cfg := opts.Config
		cfg.Engine = k
		g.engines[k] = engine.New(cfg, engine.WithLogger(logger), engine.WithMetrics(opts.Metrics))
	}

	g.loadPreferences()
	g.panel = NewPanel(g)
	return g
}

func (g *Game) loadPreferences() {
	g.prefs = storage.DefaultPreferences()
	g.stats = storage.NewGameStats()
	if g.storage == nil {
		g.prefs.Engine = g.session.Kind()
		return
	}

	if prefs, err := g.storage.LoadPreferences(); err != nil {
		g.logger.Warn("failed to load preferences", "error", err)
	} else {
		g.prefs = prefs
	}
	if stats, err := g.storage.LoadStats(); err != nil {
		g.logger.Warn("failed to load stats", "error", err)
	} else {
		g.stats = stats
	}

	g.session.SetKind(g.prefs.Engine)
	if err := g.session.SetHuman(g.prefs.HumanSide()); err != nil {
		g.logger.Warn("ignoring saved side", "error", err)
	}
}

func (g *Game) savePreferences() {
	if g.storage == nil {
		return
	}
	g.prefs.Engine = g.session.Kind()
	g.prefs.HumanPlaysFirst = g.session.Human() == board.PlayerA
	if err := g.storage.SavePreferences(g.prefs); err != nil {
		g.logger.Warn("failed to save preferences", "error", err)
	}
}

// Update handles input and engine results once per tick.
func (g *Game) Update() error {
	g.input.Update()
	g.feedback.Update()

	g.checkAIMove()

	if g.input.KeyJustPressed(ebiten.KeyN) {
		g.ResetAction()
	}
	if g.input.KeyJustPressed(ebiten.KeyEnter) && g.CanStart() {
		g.StartAction()
	}

	if g.panel.HandleInput(g.input) {
		g.updateCursor()
		return nil
	}

	mx, my := g.input.MousePosition()
	g.hoverCol = g.renderer.ColumnAt(mx, my)
	switch {
	case g.input.IsLeftJustPressed() && g.hoverCol >= 0:
		g.humanMove(g.hoverCol)
	case g.input.ColumnKey() >= 0:
		g.humanMove(g.input.ColumnKey())
	}

	if g.session.EngineToMove() && !g.aiThinking && !g.feedback.Animations().Busy() {
		g.startAIThinking()
	}

	g.updateCursor()
	return nil
}

func (g *Game) updateCursor() {
	if g.panel.AnyButtonHovered() || (g.hoverCol >= 0 && g.canClick()) {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}

func (g *Game) canClick() bool {
	return g.session.HumanToMove() && !g.aiThinking
}

func (g *Game) humanMove(col int) {
	if g.session.Over() {
		return
	}
	if !g.canClick() {
		g.feedback.OnNotYourTurn()
		return
	}

	m, err := g.session.PlayHuman(col)
	switch {
	case errors.Is(err, board.ErrColumnFull):
		g.feedback.OnColumnFull(col)
		return
	case err != nil:
		g.logger.Warn("human move rejected", "column", col, "error", err)
		return
	}
	g.onMove(m)
}

func (g *Game) onMove(m game.Move) {
	if m.Number == 1 {
		g.started = time.Now()
	}
	g.feedback.OnMove(m)
	if g.session.Over() {
		g.finishGame()
	}
}

// startAIThinking runs the engine in a goroutine after AIMoveDelay.
func (g *Game) startAIThinking() {
	g.aiThinking = true
	gen := g.generation
	kind := g.session.Kind()
	eng := g.engines[kind]
	b := g.session.Board()
	player := g.session.AI()
	g.logger.Debug("engine thinking", "engine", kind, "player", player, "position", b.String())

	go func() {
		time.Sleep(AIMoveDelay)
		col, degraded, err := g.dispatcher.Select(eng, b, player)
		g.aiMove <- aiResult{gen: gen, col: col, degraded: degraded, err: err, info: eng.LastStats()}
	}()
}

// checkAIMove applies a finished search, if any.
func (g *Game) checkAIMove() {
	if !g.aiThinking {
		return
	}

	var res aiResult
	select {
	case res = <-g.aiMove:
	default:
		return
	}
	g.aiThinking = false

	if res.gen != g.generation {
		g.logger.Debug("discarding stale engine move", "column", res.col)
		return
	}
	if res.err != nil {
		g.logger.Error("engine produced no move", "error", res.err)
		return
	}
	if res.degraded {
		g.feedback.OnFallback(g.session.Kind().DisplayName())
	} else {
		g.lastSearch, g.hasSearch = res.info, true
	}

	m, err := g.session.PlayEngine(res.col)
	if err != nil {
		g.logger.Error("engine move rejected", "column", res.col, "error", err)
		return
	}
	g.onMove(m)
}

// finishGame stores the result and the game record.
func (g *Game) finishGame() {
	s := g.session
	humanWon := s.Outcome() == game.Won && s.Winner() == s.Human()
	g.feedback.OnGameOver(s.StatusText(), humanWon)

	if g.storage == nil {
		return
	}
	duration := time.Since(g.started)
	err := g.storage.RecordGame(storage.GameResult{
		Won:      humanWon,
		Draw:     s.Outcome() == game.Draw,
		Engine:   s.Kind(),
		Duration: duration,
	})
	if err != nil {
		g.logger.Warn("failed to record game", "error", err)
	}

	history := s.History()
	moves := make([]int, len(history))
	for i, m := range history {
		moves[i] = m.Col
	}
	rec := &storage.GameRecord{
		PlayerA:  g.recordName(board.PlayerA),
		PlayerB:  g.recordName(board.PlayerB),
		Moves:    moves,
		Winner:   s.Winner(),
		Final:    s.Board().String(),
		Duration: duration,
	}
	if err := g.storage.SaveGameRecord(rec); err != nil {
		g.logger.Warn("failed to save game record", "error", err)
	}

	if stats, err := g.storage.LoadStats(); err == nil {
		g.stats = stats
	}
}

func (g *Game) recordName(c board.Cell) string {
	if c == g.session.Human() {
		return "human:" + g.prefs.Username
	}
	return g.session.Kind().String()
}

// StartAction lets the engine make the first move.
func (g *Game) StartAction() {
	if err := g.session.Start(); err != nil {
		g.logger.Warn("cannot start", "error", err)
	}
}

// ResetAction clears the board. A search still in flight is discarded.
func (g *Game) ResetAction() {
	g.generation++
	g.session.Reset()
	g.feedback.Animations().Clear()
	g.hasSearch = false
}

// SwapAction exchanges sides between games.
func (g *Game) SwapAction() {
	if err := g.session.Swap(); err != nil {
		g.logger.Warn("cannot swap sides", "error", err)
		return
	}
	g.generation++
	g.savePreferences()
}

// SetEngineAction selects the engine between games.
func (g *Game) SetEngineAction(k engine.Kind) {
	if g.session.Kind() == k {
		return
	}
	if err := g.session.ToggleEngine(); err != nil {
		g.logger.Warn("cannot change engine", "error", err)
		return
	}
	g.generation++
	g.hasSearch = false
	g.savePreferences()
}

// CanStart reports whether the engine is waiting for Start.
func (g *Game) CanStart() bool {
	s := g.session
	return !s.Running() && !s.Over() && s.Current() == s.AI()
}

// Session returns the game being played.
func (g *Game) Session() *game.Game { return g.session }

// Thinking reports whether the engine is searching.
func (g *Game) Thinking() bool { return g.aiThinking }

// LastSearch returns the diagnostics of the engine's last move this game.
func (g *Game) LastSearch() (engine.SearchInfo, bool) { return g.lastSearch, g.hasSearch }

// Stats returns the stored human-versus-engine statistics.
func (g *Game) Stats() *storage.GameStats { return g.stats }

// Username returns the human's display name.
func (g *Game) Username() string { return g.prefs.Username }

// Draw renders the board, the overlays and the panel.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.SetScale(g.scale)
	screen.Fill(g.renderer.Theme().Background)

	s := g.session
	anims := g.feedback.Animations()
	g.renderer.DrawBoard(screen, s.Board(), anims)

	if !anims.Busy() {
		if m, ok := s.LastMove(); ok {
			g.renderer.DrawLastMove(screen, m.Row, m.Col)
		}
		if s.Over() {
			g.renderer.DrawWinningCells(screen, s.WinningCells())
		}
	}
	if g.canClick() && g.hoverCol >= 0 {
		g.renderer.DrawHover(screen, g.hoverCol, s.Human())
	}

	g.feedback.Draw(screen)
	g.panel.Draw(screen)
}

// Layout returns the screen size scaled for HiDPI displays.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scale = max(ebiten.Monitor().DeviceScaleFactor(), 1.0)
	UIScale = g.scale
	return int(float64(ScreenWidth) * g.scale), int(float64(ScreenHeight) * g.scale)
}

// Close releases the storage.
func (g *Game) Close() {
	if g.storage != nil {
		if err := g.storage.Close(); err != nil {
			g.logger.Warn("failed to close storage", "error", err)
		}
	}
}
