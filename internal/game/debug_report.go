package game

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hsluv/hsluv-go"
	"golang.org/x/image/draw"
)

var (
	connectorColor = color.RGBA{0x70, 0x70, 0x70, 0xff}
	unknownColor   = color.RGBA{0xff, 0x00, 0xff, 0xff}
)

// figureColors marks figure kinds on heightmaps.
var figureColors = [figureKindCount]color.RGBA{
	FigureTree:     {0x10, 0x90, 0x20, 0xff},
	FigureBlock:    {0xd0, 0xd0, 0xd0, 0xff},
	FigureMeanie:   {0xff, 0x80, 0x00, 0xff},
	FigureRobot:    {0x20, 0x60, 0xff, 0xff},
	FigureSentry:   {0xff, 0x30, 0x30, 0xff},
	FigureSentinel: {0xff, 0x00, 0x00, 0xff},
	FigureTower:    {0x90, 0x00, 0x00, 0xff},
}

// FigureColor returns the marker colour of a figure kind.
func FigureColor(k FigureKind) color.RGBA {
	if k < 0 || k >= figureKindCount {
		return unknownColor
	}
	return figureColors[k]
}

// AltitudeColor maps an altitude to a band colour: hue walks from green
// lowlands to white-ish peaks while lightness climbs. Odd squares are a
// little darker so the checkerboard stays visible.
func AltitudeColor(altitude, peak int, odd bool) color.RGBA {
	frac := 0.0
	if peak > 0 {
		frac = float64(altitude) / float64(peak)
	}
	light := 30 + 55*frac
	if odd {
		light -= 6
	}
	r, g, b := hsluv.HsluvToRGB(130-110*frac, 70-40*frac, light)
	return color.RGBA{channel(r), channel(g), channel(b), 0xff}
}

// channel scales a colour component to a byte. HSLuv can land slightly
// outside [0, 1] near the gamut edge.
func channel(v float64) uint8 {
	return uint8(mgl64.Clamp(v, 0, 1) * 0xff)
}

// SquareColor is the heightmap colour of one terrain square.
func SquareColor(sq *Square, peak int) color.RGBA {
	switch {
	case sq == nil || sq.Kind == SquareUndefined:
		return unknownColor
	case sq.Kind == SquareConnection:
		return connectorColor
	default:
		return AltitudeColor(sq.Altitude, peak, sq.Kind == SquareOdd)
	}
}

// HeightmapImage renders one pixel per square, figures drawn as the colour of
// their top figure, then scales the result up by scale with nearest-neighbour
// sampling. Row 0 of the image is board row 0.
func HeightmapImage(l *Landscape, scale int) *image.RGBA {
	w, h := l.Width(), l.Height()
	small := image.NewRGBA(image.Rect(0, 0, w, h))
	l.squares.Each(func(x, y int, sq *Square) {
		small.SetRGBA(x, y, SquareColor(sq, l.peak))
	})
	if scale < 1 {
		scale = 1
	}
	big := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
	draw.NearestNeighbor.Scale(big, big.Bounds(), small, small.Bounds(), draw.Src, nil)

	// Figures are dots in the middle of their square.
	dot := max(1, scale/3)
	l.occupants.Each(func(x, y int, s Stack) {
		top := s.Top()
		if top == nil {
			return
		}
		cx, cy := x*scale+scale/2, y*scale+scale/2
		r := image.Rect(cx-dot/2, cy-dot/2, cx-dot/2+dot, cy-dot/2+dot)
		draw.Draw(big, r, image.NewUniform(FigureColor(top.Kind)), image.Point{}, draw.Src)
	})
	return big
}

// CellReport describes one square and its stack for the inspector and the
// clipboard.
func CellReport(l *Landscape, occ *Occupants, p Point) string {
	if !l.squares.InBounds(p.X, p.Y) {
		return fmt.Sprintf("%s is off the board\n", p)
	}
	var b strings.Builder
	sq := l.Square(p)
	fmt.Fprintf(&b, "--- square %s ---\n", p)
	if sq.Kind == SquareConnection {
		fmt.Fprintf(&b, "kind=%s corners=%.0f/%.0f/%.0f/%.0f\n", sq.Kind,
			sq.Corners[CornerMM], sq.Corners[CornerPM], sq.Corners[CornerPP], sq.Corners[CornerMP])
	} else {
		fmt.Fprintf(&b, "kind=%s altitude=%d plateau=%d\n", sq.Kind, sq.Altitude, sq.PlateauID)
	}
	stack := occ.StackAt(p)
	if len(stack) == 0 {
		b.WriteString("stack: empty\n")
		return b.String()
	}
	b.WriteString("stack:\n")
	for i := len(stack) - 1; i >= 0; i-- {
		f := stack[i]
		fmt.Fprintf(&b, "  %d) %s %s phi=%.0f fade=%.2f above=%d\n",
			i, f.Kind, f.State, f.Phi, f.Fade, stack.AltitudeAbove(i))
		for _, a := range f.Attacks {
			fmt.Fprintf(&b, "     attacking %s %s for %d frames\n", a.Cell, a.Visibility, a.Frames)
		}
	}
	return b.String()
}
