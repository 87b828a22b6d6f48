package game

import (
	"fmt"
	"sort"

	"github.com/zyedidia/generic/mapset"
	"go.uber.org/multierr"
)

// Validate checks a generated landscape and returns every violation found,
// combined into one error. A nil result means the board is sound.
func Validate(l *Landscape) error {
	var err error
	err = multierr.Append(err, validateCoverage(l))
	err = multierr.Append(err, validatePlateaus(l))
	err = multierr.Append(err, validateAltitudeGaps(l))
	err = multierr.Append(err, validateSlopes(l))
	if l.playerStart != NoPoint {
		err = multierr.Append(err, validateFigures(l))
	}
	return err
}

// Violations splits a Validate result into its individual errors.
func Violations(err error) []error {
	return multierr.Errors(err)
}

func validateCoverage(l *Landscape) error {
	var err error
	l.squares.Each(func(x, y int, sq *Square) {
		switch {
		case sq == nil:
			err = multierr.Append(err, fmt.Errorf("square (%d,%d) was never generated", x, y))
		case sq.Kind == SquareUndefined:
			err = multierr.Append(err, fmt.Errorf("square (%d,%d) has no kind", x, y))
		case sq.Flat() && sq.Kind != parityKind(x, y):
			err = multierr.Append(err, fmt.Errorf("square (%d,%d) has parity %s", x, y, sq.Kind))
		}
	})
	return err
}

func validatePlateaus(l *Landscape) error {
	var err error
	l.squares.Each(func(x, y int, sq *Square) {
		if sq == nil || !sq.Flat() {
			return
		}
		want, ok := l.plateauAltitude[sq.PlateauID]
		if !ok {
			err = multierr.Append(err, fmt.Errorf("square (%d,%d) belongs to unknown plateau %d", x, y, sq.PlateauID))
			return
		}
		if sq.Altitude != want {
			err = multierr.Append(err, fmt.Errorf("square (%d,%d) of plateau %d has altitude %d, plateau has %d",
				x, y, sq.PlateauID, sq.Altitude, want))
		}
	})
	return err
}

// presentAltitudes returns the distinct flat altitudes on the board, ascending.
func presentAltitudes(l *Landscape) []int {
	set := mapset.New[int]()
	l.squares.Each(func(_, _ int, sq *Square) {
		if sq != nil && sq.Flat() {
			set.Put(sq.Altitude)
		}
	})
	out := make([]int, 0, set.Size())
	set.Each(func(a int) { out = append(out, a) })
	sort.Ints(out)
	return out
}

func validateAltitudeGaps(l *Landscape) error {
	alts := presentAltitudes(l)
	if len(alts) == 0 {
		return fmt.Errorf("board has no flat squares")
	}
	var err error
	if alts[0] != 0 {
		err = multierr.Append(err, fmt.Errorf("lowest altitude is %d, not 0", alts[0]))
	}
	for i := 1; i < len(alts); i++ {
		if alts[i]-alts[i-1] > maxAltitudeStep {
			err = multierr.Append(err, fmt.Errorf("altitude gap %d..%d exceeds %d", alts[i-1], alts[i], maxAltitudeStep))
		}
	}
	return err
}

func validateSlopes(l *Landscape) error {
	var err error
	l.squares.Each(func(x, y int, sq *Square) {
		if sq == nil || sq.Kind != SquareConnection {
			return
		}
		for c, offsets := range cornerPriority {
			h := sq.Corners[c]
			if h < 0 {
				err = multierr.Append(err, fmt.Errorf("connection (%d,%d) corner %d is negative", x, y, c))
				continue
			}
			matched, anyFlat := false, false
			for _, o := range offsets {
				if alt, ok := l.flatNeighbour(x, y, o.X, o.Y); ok {
					anyFlat = true
					matched = matched || alt == h
				}
			}
			if (anyFlat && !matched) || (!anyFlat && h != 0) {
				err = multierr.Append(err, fmt.Errorf("connection (%d,%d) corner %d at %.1f matches no neighbour", x, y, c, h))
			}
		}
	})
	return err
}

func validateFigures(l *Landscape) error {
	var err error
	towers := 0
	l.occupants.Each(func(x, y int, s Stack) {
		if len(s) == 0 {
			return
		}
		p := Point{x, y}
		sq := l.squares.At(x, y)
		if sq == nil || !sq.Flat() {
			err = multierr.Append(err, fmt.Errorf("figures stand on non-flat square %s", p))
			return
		}
		if s.Base().Kind == FigureTower {
			towers++
			if sq.Altitude != l.peak {
				err = multierr.Append(err, fmt.Errorf("tower at %s stands at altitude %d, peak is %d", p, sq.Altitude, l.peak))
			}
		}
	})
	if towers != 1 {
		err = multierr.Append(err, fmt.Errorf("board has %d towers", towers))
	}
	if alts := presentAltitudes(l); len(alts) > 0 && alts[len(alts)-1] != l.peak {
		err = multierr.Append(err, fmt.Errorf("highest altitude %d is not the peak %d", alts[len(alts)-1], l.peak))
	}

	start := l.occupants.StackAt(l.playerStart)
	if start.Base() == nil || start.Base().Kind != FigureRobot {
		err = multierr.Append(err, fmt.Errorf("no robot at player start %s", l.playerStart))
	}
	ok, evalErr := evalBand(l.programs.robot, l.env(l.Altitude(l.playerStart.X, l.playerStart.Y)))
	if evalErr != nil {
		err = multierr.Append(err, evalErr)
	} else if !ok {
		err = multierr.Append(err, fmt.Errorf("player start %s lies outside the robot band", l.playerStart))
	}
	return err
}
