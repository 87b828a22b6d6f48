package game

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Inspector panel, rendered into an offscreen buffer at 1x then blitted at inspScale.
const (
	inspScale = 2   // scale factor for inspector text rendering
	inspBufW  = 220 // buffer width in pixels (~36 chars at debug font)
	inspBufH  = 280 // buffer height in pixels
	inspPad   = 4   // padding in buffer-space pixels
	inspLineH = 13  // line height in buffer-space pixels
)

// Inspector holds the selected square and the last pick that produced it.
type Inspector struct {
	cell   Point
	pick   PickResult
	picked bool // selection came from the eye view
	text   string
}

// handleInspectorClick selects a square from a click on either panel.
// Returns true if a square was hit.
func (g *Game) handleInspectorClick(mx, my int) bool {
	side := g.panel
	if mx >= borderWidth && mx < borderWidth+side && my >= borderWidth && my < borderWidth+side {
		p := Point{(mx - borderWidth) / g.mapPx, (my - borderWidth) / g.mapPx}
		if g.land.Squares().InBounds(p.X, p.Y) {
			g.inspector = Inspector{cell: p, text: CellReport(g.land, g.occ, p)}
			return true
		}
	}

	x, y, ok := g.screenToNDC(mx, my)
	if !ok || mx < g.eyeX {
		return false
	}
	res, err := g.scanner.Pick(x, y, g.viewer, g.occ, g.land.PlayerStart())
	if err != nil {
		g.status = "pick: " + err.Error()
		return false
	}
	if !res.Hit {
		// Click on sky: deselect.
		g.inspector = Inspector{cell: NoPoint}
		return false
	}
	text := CellReport(g.land, g.occ, res.Cell)
	if res.Figure != nil {
		text = fmt.Sprintf("picked %s at stack index %d\n", res.Figure.Kind, res.StackIndex) + text
	}
	g.inspector = Inspector{cell: res.Cell, pick: res, picked: true, text: text}
	return true
}

// drawInspector renders the inspector panel into an offscreen buffer at 1x,
// then blits it onto the screen at inspScale for readability.
func (g *Game) drawInspector(screen *ebiten.Image) {
	g.inspBuf.Clear()

	buf := g.inspBuf
	bw := float32(inspBufW)
	bh := float32(inspBufH)

	panelBg := color.RGBA{R: 14, G: 16, B: 14, A: 230}
	panelBorder := color.RGBA{R: 55, G: 80, B: 55, A: 255}
	vector.FillRect(buf, 0, 0, bw, bh, panelBg, false)
	vector.StrokeRect(buf, 0, 0, bw, bh, 1.0, panelBorder, false)
	vector.StrokeLine(buf, 1, 1, bw-1, 1, 1.0, color.RGBA{R: 70, G: 110, B: 70, A: 60}, false)

	lx := inspPad
	ly := inspPad

	title := "[ no selection ]"
	if g.inspector.cell != NoPoint {
		src := "map"
		if g.inspector.picked {
			src = "eye"
		}
		title = fmt.Sprintf("[ %s  via %s ]", g.inspector.cell, src)
	}
	ebitenutil.DebugPrintAt(buf, title, lx, ly)
	ly += inspLineH + 2
	ebitenutil.DebugPrintAt(buf, "click map or eye view", lx, ly)
	ly += inspLineH + 4

	vector.StrokeLine(buf, float32(lx), float32(ly), bw-float32(inspPad), float32(ly), 1.0, panelBorder, false)
	ly += 4

	for _, line := range strings.Split(strings.TrimRight(g.inspector.text, "\n"), "\n") {
		if ly+inspLineH > inspBufH-inspPad {
			ebitenutil.DebugPrintAt(buf, "...", lx, ly)
			break
		}
		ebitenutil.DebugPrintAt(buf, line, lx, ly)
		ly += inspLineH
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(inspScale), float64(inspScale))
	opts.GeoM.Translate(float64(g.inspX), borderWidth)
	screen.DrawImage(buf, opts)
}
