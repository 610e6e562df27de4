package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/fourplay/internal/board"
)

// Theme defines the board colors.
type Theme struct {
	Frame      color.RGBA
	FrameEdge  color.RGBA
	Hole       color.RGBA
	Background color.RGBA
	DiscA      color.RGBA // used when the sprites fail to load
	DiscB      color.RGBA
	WinRing    color.RGBA
	LastMove   color.RGBA
	HoverBand  color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		Frame:      color.RGBA{35, 85, 180, 255},
		FrameEdge:  color.RGBA{25, 60, 130, 255},
		Hole:       color.RGBA{40, 44, 52, 255},
		Background: color.RGBA{40, 44, 52, 255},
		DiscA:      color.RGBA{231, 76, 60, 255},
		DiscB:      color.RGBA{244, 208, 63, 255},
		WinRing:    color.RGBA{255, 255, 255, 230},
		LastMove:   color.RGBA{255, 255, 255, 160},
		HoverBand:  color.RGBA{255, 255, 255, 18},
	}
}

// Renderer draws the grid and discs. Coordinates passed in are logical;
// scale converts them for HiDPI screens.
type Renderer struct {
	sprites  *SpriteManager
	theme    *Theme
	cellSize int
	top      int // y of the first board row, below the hover strip
	scale    float64
}

// NewRenderer creates a renderer for cells of the given size.
func NewRenderer(cellSize, top int) *Renderer {
	return &Renderer{
		sprites:  NewSpriteManager(cellSize - 2*discInset),
		theme:    DefaultTheme(),
		cellSize: cellSize,
		top:      top,
		scale:    1.0,
	}
}

const discInset = 6

// SetScale sets the HiDPI scale factor.
func (r *Renderer) SetScale(scale float64) {
	r.scale = scale
}

func (r *Renderer) s(v int) float32 {
	return float32(float64(v) * r.scale)
}

// CellOrigin returns the top-left corner of a cell in logical coordinates.
func (r *Renderer) CellOrigin(row, col int) (int, int) {
	return col * r.cellSize, r.top + row*r.cellSize
}

// ColumnAt maps a logical x/y to a board column, or -1 when the point is
// outside the board and hover strip.
func (r *Renderer) ColumnAt(x, y int) int {
	if x < 0 || y < 0 || x >= board.Cols*r.cellSize || y >= r.top+board.Rows*r.cellSize {
		return -1
	}
	return x / r.cellSize
}

// DrawBoard draws the frame, the holes and every disc on b. The cell being
// animated by anims is left empty so the falling disc can be drawn on top.
func (r *Renderer) DrawBoard(screen *ebiten.Image, b *board.Board, anims *AnimationManager) {
	w := board.Cols * r.cellSize
	h := board.Rows * r.cellSize
	vector.DrawFilledRect(screen, 0, r.s(r.top), r.s(w), r.s(h), r.theme.Frame, true)
	vector.StrokeRect(screen, 0, r.s(r.top), r.s(w), r.s(h), r.s(3), r.theme.FrameEdge, true)

	var falling *DropAnimation
	if anims != nil {
		falling = anims.Drop()
	}

	for row := 0; row < board.Rows; row++ {
		for col := 0; col < board.Cols; col++ {
			x, y := r.CellOrigin(row, col)
			dx := 0.0
			if anims != nil {
				dx = anims.ShakeOffset(col)
			}
			cx := r.s(x+r.cellSize/2) + float32(dx*r.scale)
			cy := r.s(y + r.cellSize/2)
			vector.DrawFilledCircle(screen, cx, cy, r.s(r.cellSize/2-discInset), r.theme.Hole, true)

			c := b.At(row, col)
			if c == board.Empty || (falling != nil && falling.Row == row && falling.Col == col) {
				continue
			}
			r.drawDisc(screen, c, float64(x)+dx, float64(y), 1)
		}
	}

	if falling != nil {
		x, _ := r.CellOrigin(falling.Row, falling.Col)
		r.drawDisc(screen, falling.Player, float64(x), falling.Y(r.top-r.cellSize, r.top+falling.Row*r.cellSize), 1)
	}
}

func (r *Renderer) drawDisc(screen *ebiten.Image, c board.Cell, x, y float64, alpha float32) {
	px := (x + discInset) * r.scale
	py := (y + discInset) * r.scale
	if r.sprites.DrawDisc(screen, c, px, py, r.scale, alpha) {
		return
	}
	clr := r.theme.DiscA
	if c == board.PlayerB {
		clr = r.theme.DiscB
	}
	clr.A = uint8(float32(clr.A) * alpha)
	half := float64(r.cellSize) / 2
	vector.DrawFilledCircle(screen, float32((x+half)*r.scale), float32((y+half)*r.scale),
		r.s(r.cellSize/2-discInset), clr, true)
}

// DrawHover shades the hovered column and previews player's disc above it.
func (r *Renderer) DrawHover(screen *ebiten.Image, col int, player board.Cell) {
	if col < 0 || col >= board.Cols {
		return
	}
	x := col * r.cellSize
	vector.DrawFilledRect(screen, r.s(x), r.s(r.top), r.s(r.cellSize), r.s(board.Rows*r.cellSize), r.theme.HoverBand, false)
	r.drawDisc(screen, player, float64(x), float64(r.top-r.cellSize), 0.6)
}

// DrawWinningCells rings each cell of the winning line.
func (r *Renderer) DrawWinningCells(screen *ebiten.Image, cells []board.Square) {
	for _, sq := range cells {
		x, y := r.CellOrigin(sq.Row, sq.Col)
		vector.StrokeCircle(screen, r.s(x+r.cellSize/2), r.s(y+r.cellSize/2),
			r.s(r.cellSize/2-discInset/2), r.s(4), r.theme.WinRing, true)
	}
}

// DrawLastMove marks the most recent disc.
func (r *Renderer) DrawLastMove(screen *ebiten.Image, row, col int) {
	x, y := r.CellOrigin(row, col)
	vector.DrawFilledCircle(screen, r.s(x+r.cellSize/2), r.s(y+r.cellSize/2), r.s(5), r.theme.LastMove, true)
}

// CellSize returns the size of one cell in logical pixels.
func (r *Renderer) CellSize() int {
	return r.cellSize
}

// Theme returns the current theme.
func (r *Renderer) Theme() *Theme {
	return r.theme
}
