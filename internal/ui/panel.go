package ui

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/fourplay/internal/board"
	"github.com/hailam/fourplay/internal/engine"
)

// Panel dimensions
const (
	PanelPadding   = 20
	SectionSpacing = 24
	ButtonHeight   = 38
	TabHeight      = 32
	CardHeight     = 52
	SectionLabelH  = 20
	historyRowH    = 22
	statusBarH     = 92
)

// Panel colors
var (
	panelBg         = color.RGBA{38, 40, 45, 255}
	sectionBg       = color.RGBA{48, 52, 58, 255}
	tabActiveBg     = color.RGBA{76, 132, 96, 255}
	tabInactiveBg   = color.RGBA{50, 54, 60, 255}
	tabHoverBg      = color.RGBA{65, 70, 78, 255}
	buttonBg        = color.RGBA{50, 54, 60, 255}
	buttonHoverBg   = color.RGBA{65, 70, 78, 255}
	buttonPressedBg = color.RGBA{40, 44, 50, 255}
	buttonBorder    = color.RGBA{70, 75, 82, 255}
	accentColor     = color.RGBA{76, 175, 120, 255}
	accentHover     = color.RGBA{96, 195, 140, 255}
	accentPressed   = color.RGBA{56, 155, 100, 255}
	textPrimary     = color.RGBA{240, 240, 245, 255}
	textSecondary   = color.RGBA{160, 165, 175, 255}
	textMuted       = color.RGBA{120, 125, 135, 255}
	dividerColor    = color.RGBA{60, 65, 72, 255}
	moveRowAlt      = color.RGBA{44, 48, 54, 255}
	statusThinking  = color.RGBA{100, 180, 255, 255}
	statusGameOver  = color.RGBA{255, 200, 80, 255}
)

// Button is a clickable panel element. Enabled may be nil.
type Button struct {
	X, Y, W, H int
	Label      string
	OnClick    func()
	Enabled    func() bool
	hovered    bool
	pressed    bool
}

func (b *Button) enabled() bool {
	return b.Enabled == nil || b.Enabled()
}

func (b *Button) contains(mx, my int) bool {
	return mx >= b.X && mx < b.X+b.W && my >= b.Y && my < b.Y+b.H
}

// Panel is the side panel: player cards, controls, move list and status.
type Panel struct {
	game *Game

	startBtn   *Button
	resetBtn   *Button
	swapBtn    *Button
	engineTabs []*Button // indexed by engine.Kind

	cardsY   int
	historyY int

	scrollY    int
	maxScrollY int
}

// NewPanel creates the panel for g.
func NewPanel(g *Game) *Panel {
	p := &Panel{game: g}
	p.layout()
	return p
}

func (p *Panel) layout() {
	x := BoardWidth + PanelPadding
	w := PanelWidth - PanelPadding*2
	between := func() bool { return !p.game.Session().Running() && !p.game.Session().Over() }

	p.cardsY = PanelPadding + 36
	y := p.cardsY + 2*(CardHeight+8) + 4

	half := (w - 8) / 2
	p.startBtn = &Button{X: x, Y: y, W: half, H: ButtonHeight, Label: "Start",
		OnClick: p.game.StartAction,
		Enabled: func() bool { return p.game.CanStart() }}
	p.resetBtn = &Button{X: x + half + 8, Y: y, W: half, H: ButtonHeight, Label: "Reset",
		OnClick: p.game.ResetAction}

	y += ButtonHeight + 8
	p.swapBtn = &Button{X: x, Y: y, W: w, H: ButtonHeight - 6, Label: "Swap Sides",
		OnClick: p.game.SwapAction, Enabled: between}

	y += ButtonHeight - 6 + SectionSpacing + SectionLabelH - 4
	tabW := w / 2
	p.engineTabs = nil
	for i, k := range []engine.Kind{engine.KindMinimax, engine.KindMCTS} {
		k := k
		p.engineTabs = append(p.engineTabs, &Button{
			X: x + i*tabW, Y: y, W: tabW, H: TabHeight, Label: k.DisplayName(),
			OnClick: func() { p.game.SetEngineAction(k) },
			Enabled: between,
		})
	}

	p.historyY = y + TabHeight + SectionSpacing
}

func (p *Panel) buttons() []*Button {
	return append([]*Button{p.startBtn, p.resetBtn, p.swapBtn}, p.engineTabs...)
}

// HandleInput processes panel clicks and scrolling. It reports whether the
// input was consumed.
func (p *Panel) HandleInput(input *InputHandler) bool {
	mx, my := input.MousePosition()

	if _, wheelY := ebiten.Wheel(); wheelY != 0 && mx >= BoardWidth && my >= p.historyY && my < ScreenHeight-statusBarH {
		p.scrollY = min(max(p.scrollY-int(wheelY*30), 0), p.maxScrollY)
	}

	for _, btn := range p.buttons() {
		btn.hovered = btn.contains(mx, my) && btn.enabled()
		btn.pressed = btn.hovered && input.IsLeftPressed()
	}

	if !input.IsLeftJustPressed() {
		return false
	}
	for _, btn := range p.buttons() {
		if btn.hovered {
			btn.OnClick()
			return true
		}
	}
	return mx >= BoardWidth
}

// AnyButtonHovered reports whether the cursor is over an enabled button.
func (p *Panel) AnyButtonHovered() bool {
	for _, btn := range p.buttons() {
		if btn.hovered {
			return true
		}
	}
	return false
}

// Draw renders the panel.
func (p *Panel) Draw(screen *ebiten.Image) {
	x := BoardWidth + PanelPadding
	vector.DrawFilledRect(screen, sc(BoardWidth), 0, sc(PanelWidth), sc(ScreenHeight), panelBg, false)

	p.drawText(screen, "FourPlay", x, PanelPadding, textPrimary, titleFace)

	s := p.game.Session()
	for i, c := range []board.Cell{board.PlayerA, board.PlayerB} {
		p.drawPlayerCard(screen, c, p.cardsY+i*(CardHeight+8), c == s.Current() && !s.Over())
	}

	p.drawPrimaryButton(screen, p.startBtn)
	p.drawSecondaryButton(screen, p.resetBtn)
	p.drawSecondaryButton(screen, p.swapBtn)

	p.drawText(screen, "Engine", x, p.engineTabs[0].Y-SectionLabelH, textMuted, regularFace)
	for i, btn := range p.engineTabs {
		p.drawTab(screen, btn, engine.Kind(i) == s.Kind())
	}

	p.drawText(screen, "Moves", x, p.historyY, textMuted, regularFace)
	p.drawMoveHistory(screen, p.historyY+SectionLabelH+4)

	p.drawStatusBar(screen)
}

func (p *Panel) drawPlayerCard(screen *ebiten.Image, c board.Cell, y int, toMove bool) {
	x := BoardWidth + PanelPadding
	w := PanelWidth - PanelPadding*2
	vector.DrawFilledRect(screen, sc(float64(x)), sc(float64(y)), sc(float64(w)), sc(CardHeight), sectionBg, false)
	if toMove {
		vector.StrokeRect(screen, sc(float64(x)), sc(float64(y)), sc(float64(w)), sc(CardHeight), sc(2), accentColor, false)
	}

	clr := p.game.renderer.Theme().DiscA
	if c == board.PlayerB {
		clr = p.game.renderer.Theme().DiscB
	}
	vector.DrawFilledCircle(screen, sc(float64(x+26)), sc(float64(y+CardHeight/2)), sc(14), clr, true)

	s := p.game.Session()
	name := s.PlayerName(c)
	role := "Engine"
	if c == s.Human() {
		name = p.game.Username()
		role = "You"
	}
	p.drawText(screen, name, x+52, y+8, textPrimary, boldFace)
	p.drawText(screen, role, x+52, y+30, textSecondary, regularFace)
	if toMove {
		p.drawText(screen, "to move", x+w-70, y+CardHeight/2-8, accentColor, regularFace)
	}
}

func (p *Panel) drawPrimaryButton(screen *ebiten.Image, btn *Button) {
	bg := accentColor
	switch {
	case !btn.enabled():
		bg = tabInactiveBg
	case btn.pressed:
		bg = accentPressed
	case btn.hovered:
		bg = accentHover
	}
	p.drawButton(screen, btn, bg, accentPressed, textPrimary)
}

func (p *Panel) drawSecondaryButton(screen *ebiten.Image, btn *Button) {
	bg := buttonBg
	switch {
	case btn.pressed:
		bg = buttonPressedBg
	case btn.hovered:
		bg = buttonHoverBg
	}
	border := buttonBorder
	if btn.hovered {
		border = accentColor
	}
	fg := textSecondary
	if !btn.enabled() {
		fg = textMuted
	}
	p.drawButton(screen, btn, bg, border, fg)
}

func (p *Panel) drawTab(screen *ebiten.Image, btn *Button, active bool) {
	bg, border, fg := tabInactiveBg, buttonBorder, textSecondary
	switch {
	case active:
		bg, border, fg = tabActiveBg, tabActiveBg, textPrimary
	case btn.pressed:
		bg = buttonPressedBg
	case btn.hovered:
		bg, border = tabHoverBg, accentColor
	}
	p.drawButton(screen, btn, bg, border, fg)
}

func (p *Panel) drawButton(screen *ebiten.Image, btn *Button, bg, border, fg color.RGBA) {
	x, y := sc(float64(btn.X)), sc(float64(btn.Y))
	w, h := sc(float64(btn.W)), sc(float64(btn.H))
	vector.DrawFilledRect(screen, x, y, w, h, bg, false)
	vector.StrokeRect(screen, x, y, w, h, 1, border, false)
	p.drawTextCentered(screen, btn.Label, btn.X+btn.W/2, btn.Y+btn.H/2, fg)
}

func (p *Panel) drawMoveHistory(screen *ebiten.Image, startY int) {
	x := BoardWidth + PanelPadding
	moves := p.game.Session().History()
	if len(moves) == 0 {
		p.drawText(screen, "No moves yet", x, startY+5, textMuted, regularFace)
		return
	}

	maxY := ScreenHeight - statusBarH
	visible := maxY - startY
	content := len(moves) * historyRowH
	p.maxScrollY = max(content-visible, 0)
	p.scrollY = min(p.scrollY, p.maxScrollY)

	first := p.scrollY / historyRowH
	y := startY - p.scrollY%historyRowH
	for i := first; i < len(moves) && y <= maxY-historyRowH; i++ {
		m := moves[i]
		if i%2 == 1 {
			vector.DrawFilledRect(screen, sc(float64(x-4)), sc(float64(y-2)),
				sc(float64(PanelWidth-PanelPadding*2+8)), sc(historyRowH), moveRowAlt, false)
		}
		p.drawText(screen, fmt.Sprintf("%d.", m.Number), x, y, textMuted, regularFace)
		p.drawText(screen, m.By, x+36, y, textPrimary, regularFace)
		p.drawText(screen, fmt.Sprintf("column %d", m.Col+1), x+150, y, textSecondary, regularFace)
		y += historyRowH
	}
}

func (p *Panel) drawStatusBar(screen *ebiten.Image) {
	x := BoardWidth + PanelPadding
	y := ScreenHeight - statusBarH + 12
	vector.DrawFilledRect(screen, sc(float64(x)), sc(float64(y-10)),
		sc(float64(PanelWidth-PanelPadding*2)), 1, dividerColor, false)

	s := p.game.Session()
	clr := textPrimary
	switch {
	case s.Over():
		clr = statusGameOver
	case p.game.Thinking():
		clr = statusThinking
	}
	p.drawText(screen, s.StatusText(), x, y, clr, regularFace)

	if info, ok := p.game.LastSearch(); ok {
		p.drawText(screen, searchSummary(info), x, y+22, textSecondary, regularFace)
	}
	if st := p.game.Stats(); st != nil && st.GamesPlayed > 0 {
		line := fmt.Sprintf("W %d  L %d  D %d  (%.0f%%)", st.Wins, st.Losses, st.Draws, st.GetWinRate())
		p.drawText(screen, line, x, y+44, textMuted, regularFace)
	}
}

// searchSummary is the one-line diagnostic for the last engine move.
func searchSummary(info engine.SearchInfo) string {
	elapsed := info.Time.Round(10 * time.Millisecond)
	switch {
	case info.Path != engine.PathSearch:
		return fmt.Sprintf("%s: %s", info.Engine.DisplayName(), info.Path)
	case info.Engine == engine.KindMCTS:
		return fmt.Sprintf("MCTS: %d iterations, %v", info.Iterations, elapsed)
	default:
		return fmt.Sprintf("Minimax: depth %d, %d nodes, %v", info.Depth, info.Nodes, elapsed)
	}
}

func (p *Panel) drawText(screen *ebiten.Image, s string, x, y int, c color.Color, face *text.GoTextFace) {
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.GeoM.Scale(UIScale, UIScale)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

func (p *Panel) drawTextCentered(screen *ebiten.Image, s string, centerX, centerY int, c color.Color) {
	w, h := MeasureText(s, regularFace)
	p.drawText(screen, s, centerX-int(w/2), centerY-int(h/2), c, regularFace)
}
