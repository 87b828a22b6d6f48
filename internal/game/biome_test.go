package game

import (
	"math/rand"
	"testing"
)

func terrainConfig(seed int64, w, h, gravity, age int) LandscapeConfig {
	return NewLandscapeConfig(
		WithSeed(seed),
		WithBoardSize(w, h),
		WithGravity(gravity),
		WithAge(age),
		WithLogger(discardLogger()),
	)
}

func mustTerrain(t *testing.T, cfg LandscapeConfig) *Landscape {
	t.Helper()
	l, err := GenerateTerrain(cfg)
	if err != nil {
		t.Fatalf("GenerateTerrain(seed=%d): %v", cfg.Seed, err)
	}
	return l
}

func TestGenerateTerrain_Deterministic(t *testing.T) {
	for _, seed := range []int64{1, 42, 977} {
		cfg := terrainConfig(seed, 24, 20, 2, 2)
		a := mustTerrain(t, cfg)
		b := mustTerrain(t, cfg)
		if BoardString(a.squares, false) != BoardString(b.squares, false) {
			t.Fatalf("seed %d: plateau layout differs between runs", seed)
		}
		if a.String() != b.String() {
			t.Fatalf("seed %d: altitudes differ between runs", seed)
		}
	}
}

func TestGenerateTerrain_DifferentSeedsDiffer(t *testing.T) {
	a := mustTerrain(t, terrainConfig(1, 32, 32, 2, 2))
	b := mustTerrain(t, terrainConfig(2, 32, 32, 2, 2))
	if a.String() == b.String() {
		t.Fatal("seeds 1 and 2 produced the same board")
	}
}

func TestGenerateTerrain_CoversBoard(t *testing.T) {
	l := mustTerrain(t, terrainConfig(7, 32, 32, 3, 1))
	l.squares.Each(func(x, y int, sq *Square) {
		if sq == nil {
			t.Fatalf("square (%d,%d) missing", x, y)
		}
		if sq.Kind == SquareUndefined {
			t.Fatalf("square (%d,%d) left undefined", x, y)
		}
	})
	if err := Validate(l); err != nil {
		t.Fatalf("terrain invalid: %v", err)
	}
}

func TestGenerateTerrain_RimIsGroundOrSlope(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		l := mustTerrain(t, terrainConfig(seed, 20, 20, 2, 2))
		l.squares.Each(func(x, y int, sq *Square) {
			if !l.onEdge(x, y) {
				return
			}
			if sq.Flat() && sq.Altitude != 0 {
				t.Fatalf("seed %d: rim square (%d,%d) at altitude %d", seed, x, y, sq.Altitude)
			}
		})
	}
}

func TestGenerateTerrain_InvalidConfig(t *testing.T) {
	cases := []LandscapeConfig{
		terrainConfig(1, 3, 10, 2, 2),
		terrainConfig(1, 10, 10, -1, 2),
		NewLandscapeConfig(WithBoardSize(10, 10), WithAntagonists(60, -5, 1)),
		NewLandscapeConfig(WithBoardSize(10, 10), WithSpinMode(SpinMode(9))),
		NewLandscapeConfig(WithBoardSize(10, 10), WithSentries(-1)),
	}
	for i, cfg := range cases {
		if _, err := GenerateTerrain(cfg); !isInvalidConfig(err) {
			t.Fatalf("case %d: expected ErrInvalidConfig, got %v", i, err)
		}
	}
}

func TestGenerateTerrain_LogsPhases(t *testing.T) {
	gl := NewGenLog()
	cfg := terrainConfig(5, 24, 24, 2, 2)
	cfg.GenLog = gl
	l := mustTerrain(t, cfg)

	for _, phase := range []string{"nuclei", "expand", "altitude", "bridge", "slope"} {
		if len(gl.Filter(phase, "")) == 0 {
			t.Fatalf("no %s entries in log:\n%s", phase, gl.Format())
		}
	}
	peak, ok := gl.LastOf("altitude", "peak")
	if !ok || int(peak.NumVal) != l.Peak() {
		t.Fatalf("expected peak entry %d, got %+v", l.Peak(), peak)
	}
	nuclei, _ := gl.LastOf("nuclei", "count")
	if int(nuclei.NumVal) != l.Plateaus() {
		t.Fatalf("expected %d nuclei logged, got %v", l.Plateaus(), nuclei.NumVal)
	}
	if len(gl.FilterSeed(5)) != len(gl.Entries()) {
		t.Fatal("entries recorded under a foreign seed")
	}
}

func TestNucleusTarget(t *testing.T) {
	cases := []struct{ w, h, age, want int }{
		{32, 32, 0, 17},
		{32, 32, 2, 37},
		{32, 32, 5, 56},
		{4, 4, 0, 2},
	}
	for _, c := range cases {
		if got := nucleusTarget(c.w, c.h, c.age); got != c.want {
			t.Fatalf("nucleusTarget(%d,%d,%d) = %d, want %d", c.w, c.h, c.age, got, c.want)
		}
	}
}

func TestMaxHeightForGravity(t *testing.T) {
	cases := []struct{ gravity, n, want int }{
		{2, 30, 9},
		{5, 30, 18},
		{5, 10, 8},
		{0, 3, 2},
		{0, 40, 4},
	}
	for _, c := range cases {
		if got := maxHeightForGravity(c.gravity, c.n); got != c.want {
			t.Fatalf("maxHeightForGravity(%d,%d) = %d, want %d", c.gravity, c.n, got, c.want)
		}
	}
}

func TestCubicAltitudes_StartAtZeroEndAtMax(t *testing.T) {
	alt := cubicAltitudes(9, 12, altitudeCurveX0, altitudeCurveX1)
	if len(alt) != 12 {
		t.Fatalf("expected 12 altitudes, got %d", len(alt))
	}
	if alt[0] != 0 || alt[len(alt)-1] != 9 {
		t.Fatalf("expected 0..9, got %v", alt)
	}
	for i := 1; i < len(alt); i++ {
		if alt[i] < alt[i-1] {
			t.Fatalf("altitudes decrease at %d: %v", i, alt)
		}
	}
}

func TestRemoveAltitudeGaps(t *testing.T) {
	alt := []int{0, 5, 6, 10}
	removeAltitudeGaps(alt)
	want := []int{0, 2, 4, 6}
	for i := range want {
		if alt[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, alt)
		}
	}
}

func TestRandomPermutation(t *testing.T) {
	l := &Landscape{rng: rand.New(rand.NewSource(42))}
	for _, n := range []int{0, 1, 4, 37} {
		perm := l.randomPermutation(n)
		if len(perm) != n {
			t.Fatalf("n=%d: got length %d", n, len(perm))
		}
		seen := make([]bool, n)
		for _, v := range perm {
			if v < 0 || v >= n || seen[v] {
				t.Fatalf("n=%d: not a permutation: %v", n, perm)
			}
			seen[v] = true
		}
	}
}

func TestSlopeCorners_PreferStraightNeighbours(t *testing.T) {
	ts := NewTestScene(
		WithSceneSize(5, 5),
		WithAltitudeAt(2, 1, 2), // above
		WithAltitudeAt(1, 2, 4), // left
		WithAltitudeAt(1, 1, 6), // diagonal never consulted for MM
		WithConnectionAt(2, 2),
	)
	sq := ts.Land.Square(Point{2, 2})
	if sq.Kind != SquareConnection {
		t.Fatalf("expected a connection, got %s", sq.Kind)
	}
	if sq.Corners[CornerMM] != 2 {
		t.Fatalf("MM corner should follow the square above, got %.0f", sq.Corners[CornerMM])
	}
	if sq.Corners[CornerMP] != 0 {
		t.Fatalf("MP corner should follow the square below, got %.0f", sq.Corners[CornerMP])
	}
	if sq.Corners[CornerPP] != 0 {
		t.Fatalf("PP corner should follow the right neighbour, got %.0f", sq.Corners[CornerPP])
	}
}

// growthLandscape runs the nucleus and expansion phases only and returns the
// squares claimed by each.
func growthLandscape(seed int64, w, h, age int) (l *Landscape, nuclei, neglect, thorough int) {
	l = &Landscape{
		cfg:         terrainConfig(seed, w, h, 2, age),
		rng:         rand.New(rand.NewSource(seed)),
		log:         discardLogger(),
		squares:     NewGrid[*Square](w, h),
		occupants:   NewOccupants(w, h),
		playerStart: NoPoint,
	}
	l.nuclei = l.generateNuclei()
	nuclei = len(l.nuclei)
	neglect = l.expandNuclei(nuclei, true)
	thorough = l.expandNuclei(nuclei, false)
	return l, nuclei, neglect, thorough
}

func countClaimed(l *Landscape) int {
	n := 0
	l.squares.Each(func(_, _ int, sq *Square) {
		if sq != nil {
			n++
		}
	})
	return n
}

func TestExpandNuclei_PlateausNeverTouch(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		for age := 0; age <= 3; age++ {
			l, nuclei, neglect, thorough := growthLandscape(seed, 24, 24, age)
			if nuclei < 2 {
				t.Fatalf("seed %d age %d: only %d nuclei", seed, age, nuclei)
			}
			if got := countClaimed(l); got != nuclei+neglect+thorough {
				t.Fatalf("seed %d age %d: %d squares claimed, passes report %d", seed, age, got, nuclei+neglect+thorough)
			}
			l.squares.Each(func(x, y int, sq *Square) {
				if sq == nil {
					return
				}
				l.neighbourhood(x, y, func(nx, ny int) bool {
					if nb := l.squares.At(nx, ny); nb != nil && nb.PlateauID != sq.PlateauID {
						t.Fatalf("seed %d age %d: plateaus %d at (%d,%d) and %d at (%d,%d) touch",
							seed, age, sq.PlateauID, x, y, nb.PlateauID, nx, ny)
					}
					return true
				})
			})
		}
	}
}

func TestExpandNuclei_ThoroughPassReachesFixedPoint(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		for age := 0; age <= 3; age++ {
			l, nuclei, _, _ := growthLandscape(seed, 24, 24, age)
			if more := l.expandNuclei(nuclei, false); more != 0 {
				t.Fatalf("seed %d age %d: another thorough pass claimed %d squares", seed, age, more)
			}
			// No empty interior square may still accept a plateau beside it.
			for x := 1; x < 23; x++ {
				for y := 1; y < 23; y++ {
					p := Point{x, y}
					for _, d := range growthSteps {
						nb := l.squares.At(x+d.X, y+d.Y)
						if nb != nil && l.acceptsPlateau(p, nb.PlateauID) {
							t.Fatalf("seed %d age %d: (%d,%d) can still join plateau %d", seed, age, x, y, nb.PlateauID)
						}
					}
				}
			}
		}
	}
}

func TestExpandNuclei_ClaimCounts(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		l := &Landscape{
			cfg:     terrainConfig(seed, 24, 24, 2, 1),
			rng:     rand.New(rand.NewSource(seed)),
			log:     discardLogger(),
			squares: NewGrid[*Square](24, 24),
		}
		l.nuclei = l.generateNuclei()
		n := len(l.nuclei)
		neglect := l.expandNuclei(n, true)
		if got := countClaimed(l); got != n+neglect {
			t.Fatalf("seed %d: neglect pass reports %d, board holds %d", seed, neglect, got-n)
		}
		thorough := l.expandNuclei(n, false)
		if got := countClaimed(l); got != n+neglect+thorough || got > 22*22 {
			t.Fatalf("seed %d: %d squares after both passes (neglect %d, thorough %d)", seed, got, neglect, thorough)
		}
	}
}

// holeyScene builds a flat board at base altitude and removes the squares at
// holes, leaving them for the bridging phase.
func holeyScene(base int, holes []Point, opts ...SceneOption) *TestScene {
	ts := NewTestScene(append([]SceneOption{WithSceneSize(6, 6), WithBaseAltitude(base)}, opts...)...)
	for _, p := range holes {
		ts.Land.squares.Set(p.X, p.Y, nil)
	}
	return ts
}

func TestBridgeEquiContourPlateaus(t *testing.T) {
	interior, rim, mixed := Point{2, 2}, Point{0, 3}, Point{4, 4}
	ts := holeyScene(3, []Point{interior, rim, mixed}, WithAltitudeAt(5, 5, 1))

	if got := ts.Land.bridgeEquiContourPlateaus(); got != 1 {
		t.Fatalf("expected one bridged square, got %d", got)
	}
	sq := ts.Land.Square(interior)
	if sq == nil || !sq.Flat() || sq.Altitude != 3 {
		t.Fatalf("interior hole should be filled at altitude 3, got %+v", sq)
	}
	if sq.PlateauID != ts.Land.Square(Point{1, 1}).PlateauID {
		t.Fatalf("bridged square should join its neighbours' plateau, got %d", sq.PlateauID)
	}
	if ts.Land.Square(rim) != nil {
		t.Fatal("rim hole beside altitude 3 must stay empty")
	}
	if ts.Land.Square(mixed) != nil {
		t.Fatal("hole between altitudes 3 and 1 must stay empty")
	}
}

func TestBridgeEquiContourPlateaus_GroundRim(t *testing.T) {
	ts := holeyScene(0, []Point{{0, 3}, {5, 0}})
	if got := ts.Land.bridgeEquiContourPlateaus(); got != 2 {
		t.Fatalf("expected both rim holes bridged, got %d", got)
	}
	for _, p := range []Point{{0, 3}, {5, 0}} {
		if sq := ts.Land.Square(p); sq == nil || sq.Altitude != 0 {
			t.Fatalf("rim hole %v should be ground, got %+v", p, sq)
		}
	}
}
