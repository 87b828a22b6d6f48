package game

import (
	"strings"
	"testing"
)

func TestValidate_TowerOnHighestGround(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		l, ok := generateOK(t, seed, 12, 12, 2, 2)
		if !ok {
			continue
		}
		if err := Validate(l); err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		highest := 0
		l.squares.Each(func(_, _ int, sq *Square) {
			if sq.Flat() {
				highest = max(highest, sq.Altitude)
			}
		})
		l.occupants.Each(func(x, y int, s Stack) {
			if s.Base() != nil && s.Base().Kind == FigureTower && l.Altitude(x, y) != highest {
				t.Fatalf("seed %d: tower at altitude %d, highest ground is %d", seed, l.Altitude(x, y), highest)
			}
		})
	}
}

func TestValidate_TerrainOnly(t *testing.T) {
	cfg := NewLandscapeConfig(WithSeed(5), WithBoardSize(16, 16), WithLogger(discardLogger()))
	l, err := GenerateTerrain(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := Validate(l); err != nil {
		t.Fatalf("terrain without figures should validate: %v", err)
	}
}

func TestValidate_DetectsPlateauMismatch(t *testing.T) {
	ts := NewTestScene(WithAltitudeAt(1, 1, 1), WithAltitudeAt(2, 1, 1))
	ts.Land.Square(Point{2, 1}).Altitude = 2

	errs := Violations(Validate(ts.Land))
	if len(errs) != 1 || !strings.Contains(errs[0].Error(), "plateau") {
		t.Fatalf("expected one plateau violation, got %v", errs)
	}
}

func TestValidate_DetectsAltitudeGap(t *testing.T) {
	ts := NewTestScene(WithAltitudeAt(3, 3, 5))
	errs := Violations(Validate(ts.Land))
	if len(errs) != 1 || !strings.Contains(errs[0].Error(), "gap") {
		t.Fatalf("expected one gap violation, got %v", errs)
	}
}

func TestValidate_DetectsMissingGround(t *testing.T) {
	ts := NewTestScene(WithBaseAltitude(1))
	ts.Land.squares.Set(0, 0, nil)

	errs := Violations(Validate(ts.Land))
	var never, lowest bool
	for _, err := range errs {
		never = never || strings.Contains(err.Error(), "never generated")
		lowest = lowest || strings.Contains(err.Error(), "lowest altitude")
	}
	if !never || !lowest {
		t.Fatalf("expected coverage and base-altitude violations, got %v", errs)
	}
}

func TestValidate_DetectsFigureProblems(t *testing.T) {
	ts := NewTestScene(
		WithAltitudeAt(5, 5, 2),
		WithFigureAt(1, 1, FigureRobot, 0),
		WithFigureAt(3, 3, FigureTree, 0),
	)
	ts.Occ.Set(1, 1, nil)

	errs := Violations(Validate(ts.Land))
	want := []string{"0 towers", "no robot"}
	for _, w := range want {
		found := false
		for _, err := range errs {
			found = found || strings.Contains(err.Error(), w)
		}
		if !found {
			t.Fatalf("missing violation %q in %v", w, errs)
		}
	}
}
