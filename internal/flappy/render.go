package flappy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Visual characters for rendering
const (
	BodyChar      = '●'
	BeakChar      = '▶'
	ObstacleChar  = '█'
	CapTopChar    = '▀'
	CapBottomChar = '▄'
	ButtonChar    = '░'
)

// Viewport maps the logical board onto a grid of terminal cells.
type Viewport struct {
	ScaleX float64
	ScaleY float64
}

// NewViewport stretches a board of boardW x boardH onto cols x rows cells.
func NewViewport(boardW, boardH float64, cols, rows int) Viewport {
	if boardW <= 0 || boardH <= 0 {
		return Viewport{}
	}
	return Viewport{
		ScaleX: float64(cols) / boardW,
		ScaleY: float64(rows) / boardH,
	}
}

// ToCells returns the cell span covered by r. Any non-empty rectangle covers
// at least one cell.
func (v Viewport) ToCells(r core.Rect) (x, y, w, h int) {
	x0 := int(math.Floor(r.X * v.ScaleX))
	y0 := int(math.Floor(r.Y * v.ScaleY))
	x1 := int(math.Ceil(r.Right() * v.ScaleX))
	y1 := int(math.Ceil(r.Bottom() * v.ScaleY))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return x0, y0, x1 - x0, y1 - y0
}

// ToBoard maps the centre of a cell back to board coordinates.
func (v Viewport) ToBoard(col, row int) (x, y float64) {
	if v.ScaleX == 0 || v.ScaleY == 0 {
		return 0, 0
	}
	return (float64(col) + 0.5) / v.ScaleX, (float64(row) + 0.5) / v.ScaleY
}

// stageBackdrop returns the fill for the empty sky of each stage.
func stageBackdrop(stage int) (rune, core.Color) {
	switch {
	case stage >= 3:
		return '·', core.ColorMagenta
	case stage == 2:
		return '·', core.ColorBlue
	default:
		return ' ', core.ColorDefault
	}
}

// Render draws snap onto dst, scaling the board to the whole screen.
func Render(dst *core.Screen, snap Snapshot) {
	vp := NewViewport(snap.Board.W, snap.Board.H, dst.Width(), dst.Height())

	r, c := stageBackdrop(snap.Stage)
	dst.Fill(r, c)

	switch snap.Phase {
	case PhaseMenu:
		renderMenu(dst, vp, snap)
		return
	case PhasePlaying:
		renderWorld(dst, vp, snap)
		if snap.Paused {
			dst.DrawTextCentered(dst.Height()/2-2, " PAUSED ", core.ColorYellow)
			dst.DrawTextCentered(dst.Height()/2-1, " press p to resume ", core.ColorGray)
		}
	case PhaseGameOver:
		renderWorld(dst, vp, snap)
		renderGameOver(dst, vp, snap)
	}
}

func renderWorld(dst *core.Screen, vp Viewport, snap Snapshot) {
	for _, o := range snap.Obstacles {
		drawObstacle(dst, vp, o)
	}

	x, y, w, h := vp.ToCells(snap.Body)
	dst.FillRect(x, y, w, h, BodyChar, core.ColorYellow)
	for dy := range h {
		dst.SetCell(x+w-1, y+dy, BeakChar, core.ColorOrange)
	}

	dst.DrawText(1, 0, fmt.Sprintf(" Score: %d ", snap.DisplayScore()), core.ColorWhite)
	dst.DrawText(1, 1, fmt.Sprintf(" Stage: %d ", snap.Stage), core.ColorWhite)
}

func drawObstacle(dst *core.Screen, vp Viewport, o ObstacleView) {
	x, y, w, h := vp.ToCells(o.Rect)
	dst.FillRect(x, y, w, h, ObstacleChar, core.ColorGreen)

	// Cap on the edge facing the gap
	capY, capChar := y, CapBottomChar
	if o.IsTop {
		capY, capChar = y+h-1, CapTopChar
	}
	for dx := range w {
		dst.SetCell(x+dx, capY, capChar, core.ColorBrightGreen)
	}
}

func renderMenu(dst *core.Screen, vp Viewport, snap Snapshot) {
	top := max(dst.Height()/4, 0)
	dst.DrawTextCentered(top, "F L A P P Y", core.ColorYellow)
	if snap.Username != "" {
		dst.DrawTextCentered(top+2, "Welcome, "+snap.Username, core.ColorWhite)
	}
	dst.DrawTextCentered(top+3, fmt.Sprintf("High Score: %d", int(snap.HighScore)), core.ColorGray)

	drawButton(dst, vp, snap.Buttons.Start, "START", core.ColorCyan)
	dst.DrawTextCentered(dst.Height()-1, "space/enter start  p pause  q quit", core.ColorGray)
}

func renderGameOver(dst *core.Screen, vp Viewport, snap Snapshot) {
	_, startY, _, _ := vp.ToCells(snap.Buttons.Start)
	line := max(startY-4, 0)
	dst.DrawTextCentered(line, " GAME OVER ", core.ColorRed)
	dst.DrawTextCentered(line+1, fmt.Sprintf(" Score: %d ", snap.DisplayScore()), core.ColorWhite)
	dst.DrawTextCentered(line+2, fmt.Sprintf(" High Score: %d ", int(snap.HighScore)), core.ColorWhite)

	drawButton(dst, vp, snap.Buttons.Start, "RESTART", core.ColorCyan)
	drawButton(dst, vp, snap.Buttons.Menu, "MENU", core.ColorCyan)
}

// drawButton shades the button region and centres its label on the middle row.
func drawButton(dst *core.Screen, vp Viewport, r core.Rect, label string, c core.Color) {
	x, y, w, h := vp.ToCells(r)
	dst.FillRect(x, y, w, h, ButtonChar, c)

	text := " " + label + " "
	tx := x + (w-len(text))/2
	dst.DrawText(max(tx, x), y+(h-1)/2, text, core.ColorWhite)
}
