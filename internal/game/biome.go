package game

import (
	"fmt"
	"math"
)

// Growth directions for plateau expansion, indexed by a permutation of 0..3.
var growthSteps = [4]Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Cubic altitude curve bounds: many plateaus low, few near the peak.
const (
	altitudeCurveX0 = -0.3
	altitudeCurveX1 = 0.5
)

// maxAltitudeStep is the largest climbable difference between neighbouring
// plateau altitudes.
const maxAltitudeStep = 2

// randomPermutation returns a permutation of 0..n-1. Each value picks a random
// slot and probes forward to the next free one on collision.
func (l *Landscape) randomPermutation(n int) []int {
	perm := make([]int, n)
	if n == 0 {
		return perm
	}
	taken := make([]bool, n)
	for val := 0; val < n; val++ {
		idx := l.rng.Intn(n)
		for probes := 0; taken[idx]; probes++ {
			if probes > n {
				panic("randomPermutation: no free slot")
			}
			idx = (idx + 1) % n
		}
		taken[idx] = true
		perm[idx] = val
	}
	return perm
}

// neighbourhood visits the 3x3 block around (x0, y0), clamped to the board,
// x outer and y inner. fn returns false to stop early.
func (l *Landscape) neighbourhood(x0, y0 int, fn func(x, y int) bool) {
	w, h := l.cfg.Width, l.cfg.Height
	for x := max(0, x0-1); x <= min(w-1, x0+1); x++ {
		for y := max(0, y0-1); y <= min(h-1, y0+1); y++ {
			if !fn(x, y) {
				return
			}
		}
	}
}

func (l *Landscape) onEdge(x, y int) bool {
	return x == 0 || y == 0 || x == l.cfg.Width-1 || y == l.cfg.Height-1
}

func (l *Landscape) interior(x, y int) bool {
	return x > 0 && x < l.cfg.Width-1 && y > 0 && y < l.cfg.Height-1
}

// nucleusTarget is the requested nucleus count: older worlds get fewer, larger
// plateaus.
func nucleusTarget(width, height, age int) int {
	n := 2 * width * height / 3
	switch {
	case age <= 0:
		n /= 40
	case age == 1:
		n /= 30
	case age == 2:
		n /= 18
	default:
		n /= 12
	}
	return max(n, 2)
}

// nucleusCandidates lists interior squares whose whole neighbourhood is empty.
func (l *Landscape) nucleusCandidates() []Point {
	var out []Point
	for x := 1; x < l.cfg.Width-1; x++ {
		for y := 1; y < l.cfg.Height-1; y++ {
			free := true
			l.neighbourhood(x, y, func(nx, ny int) bool {
				free = l.squares.At(nx, ny) == nil
				return free
			})
			if free {
				out = append(out, Point{x, y})
			}
		}
	}
	return out
}

// generateNuclei seeds plateau ids 0..n-1. It stops early when no square is
// eligible, which only shrinks the plateau count.
func (l *Landscape) generateNuclei() []Point {
	n := nucleusTarget(l.cfg.Width, l.cfg.Height, l.cfg.Age)
	nuclei := make([]Point, 0, n)
	for id := 0; id < n; id++ {
		candidates := l.nucleusCandidates()
		if len(candidates) == 0 {
			break
		}
		p := candidates[l.rng.Intn(len(candidates))]
		l.squares.Set(p.X, p.Y, newPlateauSquare(id))
		nuclei = append(nuclei, p)
	}
	return nuclei
}

// acceptsPlateau reports whether the empty square at p may join plateau id:
// every neighbour must be empty or already belong to id.
func (l *Landscape) acceptsPlateau(p Point, id int) bool {
	if l.squares.At(p.X, p.Y) != nil {
		return false
	}
	ok := true
	l.neighbourhood(p.X, p.Y, func(x, y int) bool {
		sq := l.squares.At(x, y)
		ok = sq == nil || sq.PlateauID == id
		return ok
	})
	return ok
}

// plateauPositions groups claimed squares by plateau id, x outer and y inner.
func (l *Landscape) plateauPositions(n int) [][]Point {
	out := make([][]Point, n)
	for x := 0; x < l.cfg.Width; x++ {
		for y := 0; y < l.cfg.Height; y++ {
			sq := l.squares.At(x, y)
			if sq != nil && sq.PlateauID >= 0 && sq.PlateauID < n {
				out[sq.PlateauID] = append(out[sq.PlateauID], Point{x, y})
			}
		}
	}
	return out
}

// expandNuclei grows plateaus 0..n-1 one square per round each, in random
// order, until none can grow. With neglect the active pool shrinks by 20%
// every block of rounds, leaving some plateaus small. It returns the number
// of squares claimed.
func (l *Landscape) expandNuclei(n int, neglect bool) int {
	area := l.cfg.Width * l.cfg.Height
	blockSize := max(1, int(0.02*float64(area)))
	claimed := 0
	for round := 1; ; round++ {
		if round > area+1 {
			panic(fmt.Sprintf("expandNuclei: no fixed point after %d rounds", area))
		}
		if neglect && round%blockSize == 0 {
			n = int(0.8 * float64(n))
		}
		positions := l.plateauPositions(n)
		grew := false
		for _, id := range l.randomPermutation(n) {
			own := positions[id]
			if len(own) == 0 {
				panic(fmt.Sprintf("expandNuclei: plateau %d has no squares", id))
			}
			order := l.randomPermutation(len(own))
			dirs := l.randomPermutation(4)
			if l.growOnce(id, own, order, dirs) {
				grew = true
				claimed++
			}
		}
		if !grew {
			return claimed
		}
	}
}

func (l *Landscape) growOnce(id int, own []Point, order, dirs []int) bool {
	for _, i := range order {
		for _, d := range dirs {
			p := Point{own[i].X + growthSteps[d].X, own[i].Y + growthSteps[d].Y}
			if l.interior(p.X, p.Y) && l.acceptsPlateau(p, id) {
				l.squares.Set(p.X, p.Y, newPlateauSquare(id))
				return true
			}
		}
	}
	return false
}

// plateauSize counts the squares of plateau id.
func (l *Landscape) plateauSize(id int) int {
	n := 0
	l.squares.Each(func(_, _ int, sq *Square) {
		if sq != nil && sq.PlateauID == id {
			n++
		}
	})
	return n
}

// maxHeightForGravity is the peak altitude for a gravity level, clamped so
// that n plateaus can still climb to it in steps.
func maxHeightForGravity(gravity, n int) int {
	var h int
	switch gravity {
	case 0:
		h = 4
	case 1:
		h = 6
	case 2:
		h = 9
	case 3:
		h = 13
	case 4:
		h = 17
	default:
		h = 18
	}
	if h >= n-1 {
		h = n - 2
	}
	if h <= 1 {
		h = 2
	}
	return h
}

// cubicAltitudes samples n altitudes in [0, maxHeight] from the cubic through
// x0 and x1. The sequence is non-decreasing and starts at 0.
func cubicAltitudes(maxHeight, n int, x0, x1 float64) []int {
	alt := make([]int, 1, max(n, 1))
	denom := x1*x1*x1 + x0*x0*x0
	for k := 1; k < n; k++ {
		u := -x0 + float64(k)*(x1+x0)/float64(n-1)
		alt = append(alt, int(math.Round(float64(maxHeight)*(u*u*u+x0*x0*x0)/denom)))
	}
	return alt
}

// removeAltitudeGaps pulls later altitudes down so no step exceeds
// maxAltitudeStep.
func removeAltitudeGaps(alt []int) {
	for j := 1; j < len(alt); j++ {
		if diff := alt[j] - alt[j-1]; diff > maxAltitudeStep {
			alt[j] = alt[j-1] + maxAltitudeStep
		}
	}
}

// assignAltitudes gives the smallest plateau the peak and hands out the
// remaining altitudes in descending order by id, wrapping around. It writes
// altitude and parity into every claimed square.
func (l *Landscape) assignAltitudes() map[int]int {
	n := len(l.nuclei)
	smallest, smallestSize := -1, -1
	for id := 0; id < n; id++ {
		size := l.plateauSize(id)
		if smallest == -1 || size < smallestSize {
			smallest, smallestSize = id, size
		}
	}
	l.peak = maxHeightForGravity(l.cfg.Gravity, n)
	alt := cubicAltitudes(l.peak, n, altitudeCurveX0, altitudeCurveX1)
	removeAltitudeGaps(alt)

	byID := make(map[int]int, n)
	for j := smallest; j < smallest+n; j++ {
		byID[j%n] = alt[n-1-(j-smallest)]
	}
	l.squares.Each(func(x, y int, sq *Square) {
		if sq != nil {
			sq.flatten(x, y, byID[sq.PlateauID])
		}
	})
	return byID
}

// bridgeEquiContourPlateaus fills empty squares whose flat neighbours all share
// one altitude, repeating until nothing changes. Edge squares are only filled
// at altitude 0. It returns the number of bridged squares.
func (l *Landscape) bridgeEquiContourPlateaus() int {
	area := l.cfg.Width * l.cfg.Height
	bridged := 0
	for sweep := 0; ; sweep++ {
		if sweep > area {
			panic(fmt.Sprintf("bridgeEquiContourPlateaus: no fixed point after %d sweeps", area))
		}
		found := false
		for x0 := 0; x0 < l.cfg.Width; x0++ {
			for y0 := 0; y0 < l.cfg.Height; y0++ {
				if l.squares.At(x0, y0) != nil {
					continue
				}
				alt, id, ok := l.bridgeCandidate(x0, y0)
				if !ok {
					continue
				}
				sq := newPlateauSquare(id)
				sq.flatten(x0, y0, max(0, alt))
				l.squares.Set(x0, y0, sq)
				bridged++
				found = true
			}
		}
		if !found {
			return bridged
		}
	}
}

// bridgeCandidate reports the common neighbour altitude and the plateau id to
// adopt for the empty square at (x0, y0).
func (l *Landscape) bridgeCandidate(x0, y0 int) (alt, id int, ok bool) {
	alt, id = -1, -1
	edge := l.onEdge(x0, y0)
	bridge := true
	l.neighbourhood(x0, y0, func(x, y int) bool {
		nb := l.squares.At(x, y)
		if nb == nil {
			return true
		}
		if alt == -1 {
			alt, id = nb.Altitude, nb.PlateauID
			return true
		}
		if nb.Altitude != alt || (edge && nb.Altitude > 0) {
			bridge = false
		}
		return bridge
	})
	// The rim stays at ground level.
	if alt > 0 && edge {
		bridge = false
	}
	return alt, id, bridge && alt != -1
}

// assignParity refreshes the checkerboard kind of every flat square.
func (l *Landscape) assignParity() {
	l.squares.Each(func(x, y int, sq *Square) {
		if sq != nil && sq.Flat() {
			sq.Kind = parityKind(x, y)
		}
	})
}

// flatNeighbour returns the altitude of the flat square at offset (dx, dy)
// from (x, y), if there is one.
func (l *Landscape) flatNeighbour(x, y, dx, dy int) (float64, bool) {
	nx, ny := x+dx, y+dy
	if !l.squares.InBounds(nx, ny) {
		return 0, false
	}
	sq := l.squares.At(nx, ny)
	if sq == nil || !sq.Flat() {
		return 0, false
	}
	return float64(sq.Altitude), true
}

// cornerPriority lists, per corner, the neighbour offsets consulted in order:
// the two straight neighbours first, the diagonal last.
var cornerPriority = [4][3]Point{
	CornerMM: {{0, -1}, {-1, 0}, {-1, -1}},
	CornerPM: {{1, 0}, {0, -1}, {1, -1}},
	CornerPP: {{1, 0}, {0, 1}, {1, 1}},
	CornerMP: {{0, 1}, {-1, 0}, {-1, 1}},
}

// slopeCorners computes the four corner heights of a connection at (x, y).
// Corners without a flat neighbour sit at 0, which only happens at the rim.
func (l *Landscape) slopeCorners(x, y int) [4]float64 {
	var corners [4]float64
	for c, offsets := range cornerPriority {
		for _, o := range offsets {
			if alt, ok := l.flatNeighbour(x, y, o.X, o.Y); ok {
				corners[c] = alt
				break
			}
		}
	}
	return corners
}

// assignSlopes turns every remaining empty square into a connection and
// returns how many were built.
func (l *Landscape) assignSlopes() int {
	n := 0
	for x := 0; x < l.cfg.Width; x++ {
		for y := 0; y < l.cfg.Height; y++ {
			if l.squares.At(x, y) != nil {
				continue
			}
			sq := &Square{}
			sq.slope(x, y, l.slopeCorners(x, y))
			l.squares.Set(x, y, sq)
			n++
		}
	}
	return n
}
