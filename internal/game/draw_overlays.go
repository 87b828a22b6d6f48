package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// cellOrigin is the screen position of the top-left corner of square p on the map.
func (g *Game) cellOrigin(p Point) (float32, float32) {
	return float32(borderWidth + p.X*g.mapPx), float32(borderWidth + p.Y*g.mapPx)
}

// drawCone tints every square inside the selected antagonist's field of view.
// Nearer squares are tinted more strongly.
func (g *Game) drawCone(screen *ebiten.Image) {
	if len(g.cone) == 0 {
		return
	}
	far := g.cone[len(g.cone)-1].Dist
	s := float32(g.mapPx)
	for _, e := range g.cone {
		a := uint8(70)
		if far > 0 {
			a = uint8(30 + 50*(1-e.Dist/far))
		}
		x, y := g.cellOrigin(e.Cell)
		vector.FillRect(screen, x, y, s, s, color.RGBA{R: 255, G: 220, B: 60, A: a}, false)
	}
}

// drawTargets outlines the squares the selected antagonist can see, coloured
// by how much of the stack is visible.
func (g *Game) drawTargets(screen *ebiten.Image) {
	s := float32(g.mapPx)
	for _, t := range g.targets {
		var clr color.RGBA
		switch t.Visibility {
		case VisFull:
			clr = color.RGBA{R: 255, G: 40, B: 40, A: 255}
		case VisPartial:
			clr = color.RGBA{R: 255, G: 150, B: 40, A: 220}
		default:
			clr = color.RGBA{R: 200, G: 200, B: 200, A: 160}
		}
		x, y := g.cellOrigin(t.Cell)
		vector.StrokeRect(screen, x+1, y+1, s-2, s-2, 2.0, clr, false)
	}
	if g.inspector.cell != NoPoint {
		x, y := g.cellOrigin(g.inspector.cell)
		vector.StrokeRect(screen, x, y, s, s, 1.5, color.RGBA{R: 255, G: 255, B: 120, A: 255}, false)
	}
}

// drawMapFigures marks each antagonist with its facing, and the player start
// with a ring.
func (g *Game) drawMapFigures(screen *ebiten.Image) {
	half := float32(g.mapPx) / 2
	selected, _ := g.selectedPos()
	for _, p := range g.antagonists {
		f := g.occ.StackAt(p).Top()
		if f == nil {
			continue
		}
		x, y := g.cellOrigin(p)
		cx, cy := x+half, y+half
		d := f.Direction()
		clr := FigureColor(f.Kind)
		if p != selected {
			clr.A = 150
		}
		vector.FillCircle(screen, cx, cy, half*0.45, clr, true)
		vector.StrokeLine(screen, cx, cy, cx+float32(d.X())*half*1.6, cy+float32(d.Y())*half*1.6, 2.0, clr, true)
		if p == selected {
			vector.StrokeCircle(screen, cx, cy, half*0.9, 1.5, color.RGBA{R: 255, G: 255, B: 255, A: 200}, true)
		}
	}
	if start := g.land.PlayerStart(); start != NoPoint {
		x, y := g.cellOrigin(start)
		vector.StrokeCircle(screen, x+half, y+half, half*0.8, 2.0, FigureColor(FigureRobot), true)
	}
}

// drawHUD renders the legend at the bottom of the map panel.
// Text is drawn into hudBuf at 1x then composited onto the screen at hudScale.
func (g *Game) drawHUD(screen *ebiten.Image) {
	seekStr := "blocks+robots"
	if g.seek == SeekLoneTrees {
		seekStr = "lone trees"
	}
	spinStr := "spinning"
	if !g.rotating {
		spinStr = "held"
	}
	lines := []string{g.status}
	if pos, f := g.selectedPos(); f != nil {
		lines = append(lines, fmt.Sprintf("%s at %s phi=%.0f  %d targets", f.Kind, pos, f.Phi, len(g.targets)))
	}
	lines = append(lines,
		fmt.Sprintf("Tab=next antagonist  Space=%s", spinStr),
		fmt.Sprintf("T=seek [%s]  arrows=turn", seekStr),
		"Q/E=turn eye  R=new seed  C=copy",
		"[H] toggle HUD  click=inspect",
	)

	const lineH = 12 // debug font line height at 1x
	const charW = 6  // debug font char width at 1x
	const padX = 5
	const padY = 4

	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len(l))
	}
	boxW := float32(maxLen*charW + padX*2)
	boxH := float32(len(lines)*lineH + padY*2)

	// Position in unscaled coordinates (hudBuf is screen/hudScale).
	bx := float32(borderWidth/hudScale + 2)
	by := float32((borderWidth+g.panel)/hudScale) - boxH - 2

	g.hudBuf.Clear()
	vector.FillRect(g.hudBuf, bx, by, boxW, boxH, color.RGBA{R: 6, G: 10, B: 6, A: 210}, false)
	vector.StrokeRect(g.hudBuf, bx, by, boxW, boxH, 1.0, color.RGBA{R: 60, G: 100, B: 60, A: 180}, false)
	vector.StrokeLine(g.hudBuf, bx+1, by+1, bx+boxW-1, by+1, 1.0, color.RGBA{R: 80, G: 140, B: 80, A: 80}, false)

	for i, line := range lines {
		ebitenutil.DebugPrintAt(g.hudBuf, line, int(bx)+padX, int(by)+padY+i*lineH)
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(hudScale), float64(hudScale))
	screen.DrawImage(g.hudBuf, opts)
}
