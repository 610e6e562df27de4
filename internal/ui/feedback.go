package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/fourplay/internal/board"
	"github.com/hailam/fourplay/internal/game"
)

// ToastType selects a toast's colors.
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastWarning
	ToastError
	ToastSuccess
)

// Toast is a short notification drawn over the board.
type Toast struct {
	Message   string
	Type      ToastType
	StartTime time.Time
	Duration  time.Duration
}

// ToastManager keeps the most recent toasts.
type ToastManager struct {
	toasts   []*Toast
	maxStack int
	width    int // centered within this many logical pixels
}

// NewToastManager creates a toast manager centered over width pixels.
func NewToastManager(width int) *ToastManager {
	return &ToastManager{maxStack: 3, width: width}
}

// Show adds a toast, dropping the oldest once the stack is full.
func (tm *ToastManager) Show(message string, toastType ToastType, duration time.Duration) {
	tm.toasts = append(tm.toasts, &Toast{
		Message:   message,
		Type:      toastType,
		StartTime: time.Now(),
		Duration:  duration,
	})
	if len(tm.toasts) > tm.maxStack {
		tm.toasts = tm.toasts[1:]
	}
}

// Update removes expired toasts.
func (tm *ToastManager) Update() {
	active := tm.toasts[:0]
	for _, t := range tm.toasts {
		if time.Since(t.StartTime) < t.Duration {
			active = append(active, t)
		}
	}
	tm.toasts = active
}

var toastColors = map[ToastType][2]color.RGBA{
	ToastInfo:    {{50, 100, 150, 220}, {255, 255, 255, 255}},
	ToastWarning: {{180, 140, 20, 220}, {40, 30, 0, 255}},
	ToastError:   {{180, 50, 50, 220}, {255, 255, 255, 255}},
	ToastSuccess: {{50, 150, 50, 220}, {255, 255, 255, 255}},
}

// Draw renders the active toasts.
func (tm *ToastManager) Draw(screen *ebiten.Image) {
	face := regularFace
	if face == nil {
		return
	}

	y := 90.0
	for _, t := range tm.toasts {
		elapsed := time.Since(t.StartTime).Seconds()
		alpha := fade(elapsed, t.Duration.Seconds(), 0.2)

		colors := toastColors[t.Type]
		bg, fg := colors[0], colors[1]
		bg.A = uint8(float64(bg.A) * alpha)
		fg.A = uint8(float64(fg.A) * alpha)

		w, h := MeasureText(t.Message, face)
		padding := 12.0
		boxW, boxH := w+padding*2, h+padding*2
		x := float64(tm.width)/2 - boxW/2

		vector.DrawFilledRect(screen, sc(x), sc(y), sc(boxW), sc(boxH), bg, false)
		op := &text.DrawOptions{}
		op.GeoM.Translate(x+padding, y+padding)
		op.GeoM.Scale(UIScale, UIScale)
		op.ColorScale.ScaleWithColor(fg)
		text.Draw(screen, t.Message, face, op)

		y += boxH + 8
	}
}

// fade ramps alpha in and out over edge seconds at both ends.
func fade(elapsed, duration, edge float64) float64 {
	switch {
	case elapsed < edge:
		return elapsed / edge
	case elapsed > duration-edge:
		return math.Max(0, (duration-elapsed)/edge)
	}
	return 1
}

func sc(v float64) float32 {
	return float32(v * UIScale)
}

// DropAnimation is a disc falling from above the board into its cell.
type DropAnimation struct {
	Row, Col  int
	Player    board.Cell
	StartTime time.Time
	Duration  time.Duration
}

func (d *DropAnimation) progress() float64 {
	return math.Min(1, time.Since(d.StartTime).Seconds()/d.Duration.Seconds())
}

// Y interpolates from fromY to toY with gravity-like acceleration.
func (d *DropAnimation) Y(fromY, toY int) float64 {
	p := d.progress()
	return float64(fromY) + float64(toY-fromY)*p*p
}

// ShakeAnimation wobbles a column that refused a disc.
type ShakeAnimation struct {
	Col       int
	StartTime time.Time
	Duration  time.Duration
	Intensity float64
}

// AnimationManager tracks the falling disc and column shakes.
type AnimationManager struct {
	drop   *DropAnimation
	shakes []*ShakeAnimation
}

// NewAnimationManager creates an empty animation manager.
func NewAnimationManager() *AnimationManager {
	return &AnimationManager{}
}

// StartDrop animates a disc landing in (row, col). Lower rows fall longer.
func (am *AnimationManager) StartDrop(row, col int, player board.Cell) {
	am.drop = &DropAnimation{
		Row:       row,
		Col:       col,
		Player:    player,
		StartTime: time.Now(),
		Duration:  time.Duration(160+40*row) * time.Millisecond,
	}
}

// StartShake wobbles col.
func (am *AnimationManager) StartShake(col int) {
	am.shakes = append(am.shakes, &ShakeAnimation{
		Col:       col,
		StartTime: time.Now(),
		Duration:  300 * time.Millisecond,
		Intensity: 6.0,
	})
}

// Update drops finished animations.
func (am *AnimationManager) Update() {
	if am.drop != nil && am.drop.progress() >= 1 {
		am.drop = nil
	}
	active := am.shakes[:0]
	for _, s := range am.shakes {
		if time.Since(s.StartTime) < s.Duration {
			active = append(active, s)
		}
	}
	am.shakes = active
}

// Drop returns the disc in flight, or nil.
func (am *AnimationManager) Drop() *DropAnimation {
	return am.drop
}

// Busy reports whether a disc is still falling.
func (am *AnimationManager) Busy() bool {
	return am.drop != nil
}

// Clear stops every animation.
func (am *AnimationManager) Clear() {
	am.drop = nil
	am.shakes = nil
}

// ShakeOffset returns the horizontal offset for col.
func (am *AnimationManager) ShakeOffset(col int) float64 {
	for _, s := range am.shakes {
		if s.Col != col {
			continue
		}
		progress := time.Since(s.StartTime).Seconds() / s.Duration.Seconds()
		if progress >= 1.0 {
			return 0
		}
		// damped sine
		return s.Intensity * math.Exp(-5*progress) * math.Sin(40*progress)
	}
	return 0
}

// FeedbackManager turns game events into toasts, animations and sounds.
type FeedbackManager struct {
	toasts     *ToastManager
	animations *AnimationManager
	audio      *AudioManager
}

// NewFeedbackManager creates a feedback manager for a board width pixels wide.
func NewFeedbackManager(width int) *FeedbackManager {
	return &FeedbackManager{
		toasts:     NewToastManager(width),
		animations: NewAnimationManager(),
		audio:      NewAudioManager(),
	}
}

// Update advances toasts and animations.
func (fm *FeedbackManager) Update() {
	fm.toasts.Update()
	fm.animations.Update()
}

// Draw renders the toasts.
func (fm *FeedbackManager) Draw(screen *ebiten.Image) {
	fm.toasts.Draw(screen)
}

// Animations returns the animation manager for the renderer.
func (fm *FeedbackManager) Animations() *AnimationManager {
	return fm.animations
}

// OnMove animates a placed disc.
func (fm *FeedbackManager) OnMove(m game.Move) {
	fm.animations.StartDrop(m.Row, m.Col, m.Player)
	fm.audio.Play(SoundDrop)
}

// OnColumnFull rejects a click on a full column.
func (fm *FeedbackManager) OnColumnFull(col int) {
	fm.toasts.Show("That column is full", ToastWarning, 2*time.Second)
	fm.animations.StartShake(col)
	fm.audio.Play(SoundInvalid)
}

// OnNotYourTurn rejects a click while the engine is to move.
func (fm *FeedbackManager) OnNotYourTurn() {
	fm.toasts.Show("Not your turn", ToastWarning, 2*time.Second)
	fm.audio.Play(SoundInvalid)
}

// OnFallback reports that the engine failed and a random column was played.
func (fm *FeedbackManager) OnFallback(name string) {
	fm.toasts.Show(name+" failed, playing a random move", ToastError, 3*time.Second)
}

// OnGameOver announces the result.
func (fm *FeedbackManager) OnGameOver(status string, humanWon bool) {
	t := ToastInfo
	if humanWon {
		t = ToastSuccess
	}
	fm.toasts.Show(status, t, 5*time.Second)
	fm.audio.Play(SoundGameEnd)
}

// Audio returns the audio manager.
func (fm *FeedbackManager) Audio() *AudioManager {
	return fm.audio
}
