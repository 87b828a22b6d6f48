package game

import (
	"strings"
	"testing"
)

func TestHeightmapImage_SizeAndColours(t *testing.T) {
	ts := NewTestScene(
		WithSceneSize(4, 3),
		WithAltitudeAt(3, 0, 2),
		WithConnectionAt(2, 0),
		WithFigureAt(1, 1, FigureRobot, 0),
	)
	img := HeightmapImage(ts.Land, 6)
	if b := img.Bounds(); b.Dx() != 24 || b.Dy() != 18 {
		t.Fatalf("expected 24x18, got %v", b)
	}
	if got := img.RGBAAt(2*6, 0); got != connectorColor {
		t.Fatalf("connection pixel %v, want %v", got, connectorColor)
	}
	if got := img.RGBAAt(6+3, 6+3); got != FigureColor(FigureRobot) {
		t.Fatalf("robot dot %v, want %v", got, FigureColor(FigureRobot))
	}
	if img.RGBAAt(0, 0) == img.RGBAAt(6, 0) {
		t.Fatal("odd and even squares should differ")
	}
	if img.RGBAAt(3*6, 0) == img.RGBAAt(1*6, 0) {
		t.Fatal("different altitudes of the same parity should differ")
	}

	if b := HeightmapImage(ts.Land, 0).Bounds(); b.Dx() != 4 {
		t.Fatalf("scale below 1 should render one pixel per square, got %v", b)
	}
}

func TestSquareColor(t *testing.T) {
	if SquareColor(nil, 4) != unknownColor || SquareColor(&Square{}, 4) != unknownColor {
		t.Fatal("undefined squares use the unknown colour")
	}
	if FigureColor(FigureKind(-1)) != unknownColor || FigureColor(figureKindCount) != unknownColor {
		t.Fatal("unknown kinds use the unknown colour")
	}
	low, high := AltitudeColor(0, 6, false), AltitudeColor(6, 6, false)
	if low == high {
		t.Fatal("lowlands and peak share a colour")
	}
	if AltitudeColor(0, 0, false) != low {
		t.Fatal("a flat board colours like the lowlands")
	}
}

func TestChannel_ClampsOutOfGamut(t *testing.T) {
	cases := []struct {
		in   float64
		want uint8
	}{
		{-0.2, 0},
		{-1e-9, 0},
		{0, 0},
		{0.5, 127},
		{1, 0xff},
		{1 + 1e-9, 0xff},
		{1.3, 0xff},
	}
	for _, c := range cases {
		if got := channel(c.in); got != c.want {
			t.Fatalf("channel(%g) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestAltitudeColor_Opaque(t *testing.T) {
	for _, odd := range []bool{false, true} {
		for a := 0; a <= 12; a++ {
			if c := AltitudeColor(a, 12, odd); c.A != 0xff {
				t.Fatalf("altitude %d: alpha %d", a, c.A)
			}
		}
	}
	if AltitudeColor(0, 12, false) == AltitudeColor(12, 12, false) {
		t.Fatal("ground and peak should differ")
	}
}

func TestCellReport(t *testing.T) {
	ts := NewTestScene(
		WithAltitudeAt(2, 2, 1),
		WithConnectionAt(3, 2),
		WithFigureAt(2, 2, FigureBlock, 0),
		WithFigureAt(2, 2, FigureSentry, 45),
	)
	sentry := ts.Top(2, 2)
	sentry.MountAttacks([]Target{{Cell: Point{5, 5}, Visibility: VisPartial}})

	out := CellReport(ts.Land, ts.Occ, Point{2, 2})
	for _, want := range []string{
		"--- square (2,2) ---",
		"altitude=1",
		"1) sentry stable phi=45",
		"above=1",
		"0) block",
		"attacking (5,5) partial for 1 frames",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Index(out, "1) sentry") > strings.Index(out, "0) block") {
		t.Fatalf("stack should be listed top first:\n%s", out)
	}

	if out := CellReport(ts.Land, ts.Occ, Point{0, 0}); !strings.Contains(out, "stack: empty") {
		t.Fatalf("expected an empty stack:\n%s", out)
	}
	if out := CellReport(ts.Land, ts.Occ, Point{3, 2}); !strings.Contains(out, "kind=connection") {
		t.Fatalf("expected a connection report:\n%s", out)
	}
	if out := CellReport(ts.Land, ts.Occ, Point{9, 0}); !strings.Contains(out, "off the board") {
		t.Fatalf("expected an off-board report, got %q", out)
	}
}
