package game

// Attack is an antagonist's running attack on one square.
type Attack struct {
	Cell       Point
	Visibility Visibility
	Frames     int // frames the target has been under attack, including this one
}

// MountAttacks updates the figure's attacks from this frame's targets. Attacks
// on squares that are still targeted keep their duration; new targets start
// fresh. Every attack then counts one more frame. Figures that are neither
// stable nor disintegrating do not fight and keep their previous attacks.
func (f *Figure) MountAttacks(targets []Target) []Attack {
	if !f.Targetable() {
		return nil
	}
	previous := make(map[Point]int, len(f.Attacks))
	for _, a := range f.Attacks {
		previous[a.Cell] = a.Frames
	}
	targeted := make(map[Point]Visibility, len(targets))
	for _, t := range targets {
		targeted[t.Cell] = t.Visibility
	}

	next := make([]Attack, 0, len(targets))
	for _, a := range f.Attacks {
		if vis, ok := targeted[a.Cell]; ok {
			next = append(next, Attack{Cell: a.Cell, Visibility: vis, Frames: a.Frames})
		}
	}
	for _, t := range targets {
		if _, ok := previous[t.Cell]; !ok {
			next = append(next, Attack{Cell: t.Cell, Visibility: t.Visibility})
		}
	}
	for i := range next {
		next[i].Frames++
	}
	f.Attacks = next
	return next
}

// AttackOn returns the figure's attack on cell, if any.
func (f *Figure) AttackOn(cell Point) (Attack, bool) {
	for _, a := range f.Attacks {
		if a.Cell == cell {
			return a, true
		}
	}
	return Attack{}, false
}
