package game

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/zyedidia/generic/mapset"
)

// --- Snapshot types ---

// LandscapeReport summarises one generated landscape.
type LandscapeReport struct {
	Seed          int64
	Width, Height int
	Plateaus      int
	Peak          int

	Flat, Connections int
	Odd, Even         int
	Altitudes         map[int]int // flat squares per altitude

	Figures     map[FigureKind]int
	Energy      int
	PlayerStart Point

	// GuardCoverage is the share of flat squares whose ground some
	// antagonist can see from where it stands.
	GuardCoverage float64
	// PlayerSeen counts antagonists that can see the player start at once.
	PlayerSeen int

	Violations []string
}

// BuildReport collects a LandscapeReport from l and its current occupants.
func BuildReport(l *Landscape) LandscapeReport {
	r := LandscapeReport{
		Seed:        l.Seed(),
		Width:       l.Width(),
		Height:      l.Height(),
		Plateaus:    l.Plateaus(),
		Peak:        l.Peak(),
		Altitudes:   make(map[int]int),
		Figures:     make(map[FigureKind]int),
		PlayerStart: l.PlayerStart(),
	}
	l.squares.Each(func(_, _ int, sq *Square) {
		switch {
		case sq == nil:
		case sq.Kind == SquareConnection:
			r.Connections++
		case sq.Flat():
			r.Flat++
			r.Altitudes[sq.Altitude]++
			if sq.Kind == SquareOdd {
				r.Odd++
			} else {
				r.Even++
			}
		}
	})
	l.occupants.Each(func(_, _ int, s Stack) {
		for _, f := range s {
			r.Figures[f.Kind]++
		}
	})
	r.Energy = l.occupants.Energy()
	r.GuardCoverage, r.PlayerSeen = guardCoverage(l)

	for _, err := range Violations(Validate(l)) {
		r.Violations = append(r.Violations, err.Error())
	}
	return r
}

// guardCoverage sweeps every antagonist's field of view and tests the ground
// of each flat square in it.
func guardCoverage(l *Landscape) (float64, int) {
	covered := mapset.New[Point]()
	playerSeen := 0
	flat := 0
	l.squares.Each(func(_, _ int, sq *Square) {
		if sq != nil && sq.Flat() {
			flat++
		}
	})
	for _, pos := range l.occupants.Antagonists() {
		stack := l.occupants.StackAt(pos)
		top := stack.Top()
		alt := l.Altitude(pos.X, pos.Y)
		if alt < 0 {
			continue
		}
		eye := top.EyeInWorld(pos, float64(alt+stack.AltitudeAbove(len(stack)-1)))
		view, err := PositionsInFOV(eye, top.Direction(), top.FOV, l.Width(), l.Height())
		if err != nil {
			continue
		}
		for _, e := range view {
			sq := l.Square(e.Cell)
			if sq == nil || !sq.Flat() {
				continue
			}
			if l.CanSee(eye, e.Cell, float64(sq.Altitude), false) {
				covered.Put(e.Cell)
				if e.Cell == l.playerStart {
					playerSeen++
				}
			}
		}
	}
	if flat == 0 {
		return 0, playerSeen
	}
	return float64(covered.Size()) / float64(flat), playerSeen
}

// Format returns the report as key=value lines.
func (r LandscapeReport) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "seed=%d\n", r.Seed)
	fmt.Fprintf(&sb, "size=%dx%d\n", r.Width, r.Height)
	fmt.Fprintf(&sb, "plateaus=%d\n", r.Plateaus)
	fmt.Fprintf(&sb, "peak=%d\n", r.Peak)
	fmt.Fprintf(&sb, "flat=%d connections=%d odd=%d even=%d\n", r.Flat, r.Connections, r.Odd, r.Even)

	alts := make([]int, 0, len(r.Altitudes))
	for a := range r.Altitudes {
		alts = append(alts, a)
	}
	sort.Ints(alts)
	sb.WriteString("altitudes=")
	for i, a := range alts {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d:%d", a, r.Altitudes[a])
	}
	sb.WriteByte('\n')

	sb.WriteString("figures=")
	first := true
	for k := FigureKind(0); k < figureKindCount; k++ {
		if r.Figures[k] == 0 {
			continue
		}
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		fmt.Fprintf(&sb, "%s:%d", k, r.Figures[k])
	}
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "energy=%d\n", r.Energy)
	fmt.Fprintf(&sb, "player_start=%s\n", r.PlayerStart)
	fmt.Fprintf(&sb, "guard_coverage=%.3f\n", r.GuardCoverage)
	fmt.Fprintf(&sb, "player_seen_by=%d\n", r.PlayerSeen)
	fmt.Fprintf(&sb, "violations=%d\n", len(r.Violations))
	for _, v := range r.Violations {
		fmt.Fprintf(&sb, "violation=%q\n", v)
	}
	return sb.String()
}

// --- Reporter ---

// SurveyReporter aggregates reports across many seeds.
type SurveyReporter struct {
	reports []LandscapeReport
	failed  []int64
}

// NewSurveyReporter creates an empty reporter.
func NewSurveyReporter() *SurveyReporter {
	return &SurveyReporter{}
}

// Collect adds one landscape's report.
func (r *SurveyReporter) Collect(rep LandscapeReport) {
	r.reports = append(r.reports, rep)
}

// Failed records a seed whose generation failed.
func (r *SurveyReporter) Failed(seed int64) {
	r.failed = append(r.failed, seed)
}

// Reports returns every collected report.
func (r *SurveyReporter) Reports() []LandscapeReport { return r.reports }

// SurveySummary is the aggregate over all collected reports.
type SurveySummary struct {
	Runs, Failed, Invalid int
	AvgPlateaus           float64
	AvgPeak               float64
	AvgTrees              float64
	AvgSentries           float64
	AvgCoverage           float64
	MinCoverage           float64
	MaxCoverage           float64
	PlayerExposed         int // boards where an antagonist sees the start square
}

// Summary aggregates the collected reports.
func (r *SurveyReporter) Summary() SurveySummary {
	s := SurveySummary{Runs: len(r.reports) + len(r.failed), Failed: len(r.failed)}
	if len(r.reports) == 0 {
		return s
	}
	s.MinCoverage = math.Inf(1)
	s.MaxCoverage = math.Inf(-1)
	for _, rep := range r.reports {
		if len(rep.Violations) > 0 {
			s.Invalid++
		}
		if rep.PlayerSeen > 0 {
			s.PlayerExposed++
		}
		s.AvgPlateaus += float64(rep.Plateaus)
		s.AvgPeak += float64(rep.Peak)
		s.AvgTrees += float64(rep.Figures[FigureTree])
		s.AvgSentries += float64(rep.Figures[FigureSentry])
		s.AvgCoverage += rep.GuardCoverage
		s.MinCoverage = math.Min(s.MinCoverage, rep.GuardCoverage)
		s.MaxCoverage = math.Max(s.MaxCoverage, rep.GuardCoverage)
	}
	n := float64(len(r.reports))
	s.AvgPlateaus /= n
	s.AvgPeak /= n
	s.AvgTrees /= n
	s.AvgSentries /= n
	s.AvgCoverage /= n
	return s
}

// Format returns the summary as key=value lines.
func (s SurveySummary) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "runs=%d failed=%d invalid=%d\n", s.Runs, s.Failed, s.Invalid)
	fmt.Fprintf(&sb, "avg_plateaus=%.2f avg_peak=%.2f\n", s.AvgPlateaus, s.AvgPeak)
	fmt.Fprintf(&sb, "avg_trees=%.2f avg_sentries=%.2f\n", s.AvgTrees, s.AvgSentries)
	if s.Runs > s.Failed {
		fmt.Fprintf(&sb, "guard_coverage avg=%.3f min=%.3f max=%.3f\n", s.AvgCoverage, s.MinCoverage, s.MaxCoverage)
	}
	fmt.Fprintf(&sb, "player_exposed=%d\n", s.PlayerExposed)
	return sb.String()
}
