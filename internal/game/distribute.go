package game

import (
	"fmt"
	"math/rand"

	"github.com/expr-lang/expr/vm"
)

const (
	figureTheta           = 90.0
	sentinelFadingPenalty = 2.5
)

// Distribute places the initial figures: the robot, the tower carrying the
// sentinel, the sentries and the trees. Calling it again starts over from an
// empty board with the generator's current random state.
func (l *Landscape) Distribute() error {
	l.occupants = NewOccupants(l.cfg.Width, l.cfg.Height)
	l.playerStart = NoPoint

	robotCells, err := l.coordinatesInBand(l.programs.robot)
	if err != nil {
		return err
	}
	site, ok := l.placeFigure(FigureRobot, robotCells)
	if !ok {
		return l.fail("distribute", "no free square in the robot band")
	}
	l.playerStart = site

	towerCells, err := l.coordinatesInBand(l.programs.tower)
	if err != nil {
		return err
	}
	site, ok = l.placeFigure(FigureTower, towerCells)
	if !ok {
		return l.fail("distribute", fmt.Sprintf("no free square at peak altitude %d", l.peak))
	}
	sentinel := l.newFigure(FigureSentinel)
	sentinel.FadingTime = l.cfg.FadingTime * sentinelFadingPenalty
	l.occupants.Push(site, sentinel)

	sentryCells, err := l.coordinatesInBand(l.programs.sentry)
	if err != nil {
		return err
	}
	sentries := 0
	for j := 0; j < l.cfg.Sentries; j++ {
		if _, ok := l.placeFigure(FigureSentry, sentryCells); ok {
			sentries++
		}
	}
	l.record("distribute", "sentries", sentries)

	trees := 0
	for level := 0; level <= l.peak; level++ {
		density, err := evalDensity(l.programs.treeDensity, l.env(level))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		if density <= 0 {
			continue
		}
		cells := l.CoordinatesByAltitude(level, level)
		for j := 0; j < int(float64(len(cells))*density); j++ {
			if _, ok := l.placeFigure(FigureTree, cells); ok {
				trees++
			}
		}
	}
	l.record("distribute", "trees", trees)
	return nil
}

func (l *Landscape) env(altitude int) placementEnv {
	return placementEnv{Altitude: altitude, Peak: l.peak, Trees: l.cfg.Trees}
}

// CoordinatesByAltitude lists squares with altitude in [lo, hi], y outer and
// x inner. A negative hi means no upper bound.
func (l *Landscape) CoordinatesByAltitude(lo, hi int) []Point {
	var out []Point
	l.squares.Each(func(x, y int, sq *Square) {
		alt := connectionAltitude
		if sq != nil {
			alt = sq.Altitude
		}
		if alt >= lo && (hi < 0 || alt <= hi) {
			out = append(out, Point{x, y})
		}
	})
	return out
}

// coordinatesInBand lists flat squares whose altitude satisfies a band rule.
func (l *Landscape) coordinatesInBand(prog *vm.Program) ([]Point, error) {
	allowed := make([]bool, l.peak+1)
	for alt := 0; alt <= l.peak; alt++ {
		ok, err := evalBand(prog, l.env(alt))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		allowed[alt] = ok
	}
	var out []Point
	l.squares.Each(func(x, y int, sq *Square) {
		if sq != nil && sq.Flat() && sq.Altitude <= l.peak && allowed[sq.Altitude] {
			out = append(out, Point{x, y})
		}
	})
	return out, nil
}

// pickFreeSquare starts at a random index into cells and returns the first
// unoccupied one, walking cyclically. It returns NoPoint when all are taken.
func pickFreeSquare(rng *rand.Rand, cells []Point, occ *Occupants) Point {
	n := len(cells)
	if n == 0 {
		return NoPoint
	}
	offset := rng.Intn(n)
	for j := 0; j < n; j++ {
		p := cells[(offset+j)%n]
		if !occ.Occupied(p) {
			return p
		}
	}
	return NoPoint
}

func (l *Landscape) spinSign() float64 {
	switch l.cfg.Spin {
	case SpinNegative:
		return -1
	case SpinRandom:
		return float64(l.rng.Intn(2)*2 - 1)
	default:
		return 1
	}
}

// newFigure draws the heading first and the spin sign second.
func (l *Landscape) newFigure(kind FigureKind) *Figure {
	phi := float64(l.rng.Intn(360))
	spin := l.spinSign() * l.cfg.SpinPeriod
	return NewFigure(kind, StateStable, phi, figureTheta, spin, l.cfg.FOV, l.cfg.FadingTime)
}

func (l *Landscape) placeFigure(kind FigureKind, cells []Point) (Point, bool) {
	site := pickFreeSquare(l.rng, cells, l.occupants)
	if site == NoPoint {
		return NoPoint, false
	}
	l.occupants.Push(site, l.newFigure(kind))
	return site, true
}

// HyperspaceSquare picks a random free flat square at or below maxAltitude,
// where a jumping robot may re-enter. It returns NoPoint when there is none.
func (l *Landscape) HyperspaceSquare(rng *rand.Rand, occ *Occupants, maxAltitude int) Point {
	var free []Point
	for _, p := range l.CoordinatesByAltitude(0, maxAltitude) {
		if !occ.Occupied(p) {
			free = append(free, p)
		}
	}
	return pickFreeSquare(rng, free, occ)
}
