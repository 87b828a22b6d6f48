package game

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Figure is one object on the board: a tree, block, robot or antagonist.
type Figure struct {
	Kind       FigureKind
	State      MatterState
	Fade       float64 // 0 invisible .. 1 solid
	FadingTime float64 // seconds for a full fade
	Phi        float64 // heading in degrees, counter-clockwise from +x
	Theta      float64 // inclination in degrees, 90 is horizontal
	SpinPeriod float64 // seconds per revolution; the sign is the spin direction
	FOV        float64 // horizontal field of view in degrees
	Attacks    []Attack

	origin      FigureKind // kind before the running transmutation
	transmuting bool
	byRobot     bool
}

// NewFigure creates a figure. Manifesting or gone figures start transparent.
func NewFigure(kind FigureKind, state MatterState, phi, theta, spinPeriod, fov, fadingTime float64) *Figure {
	fade := 1.0
	if state == StateManifesting || state == StateGone {
		fade = 0
	}
	return &Figure{
		Kind:       kind,
		State:      state,
		Fade:       fade,
		FadingTime: fadingTime,
		Phi:        phi,
		Theta:      theta,
		SpinPeriod: spinPeriod,
		FOV:        fov,
	}
}

// Clone returns an independent copy without attack history.
func (f *Figure) Clone() *Figure {
	c := NewFigure(f.Kind, f.State, f.Phi, f.Theta, f.SpinPeriod, f.FOV, f.FadingTime)
	c.Fade = f.Fade
	return c
}

// Stable reports whether the figure is fully present.
func (f *Figure) Stable() bool { return f.State == StateStable }

// Gone reports whether the figure has fully disintegrated.
func (f *Figure) Gone() bool { return f.State == StateGone }

// Targetable reports whether antagonists may attack or aim at the figure.
func (f *Figure) Targetable() bool {
	return f.State == StateStable || f.State == StateDisintegrating
}

// IsAntagonist reports whether the figure currently watches and attacks.
func (f *Figure) IsAntagonist() bool {
	if !f.Targetable() {
		return false
	}
	switch f.Kind {
	case FigureSentinel, FigureSentry, FigureMeanie:
		return true
	default:
		return false
	}
}

// Direction is the horizontal unit heading.
func (f *Figure) Direction() mgl64.Vec2 {
	rad := mgl64.DegToRad(f.Phi)
	return mgl64.Vec2{math.Cos(rad), math.Sin(rad)}
}

// EyeInWorld returns the eye position of the figure standing at pos with its
// feet at altitude.
func (f *Figure) EyeInWorld(pos Point, altitude float64) mgl64.Vec3 {
	rot := mgl64.Rotate3DZ(mgl64.DegToRad(f.Phi))
	eye := rot.Mul3x1(f.Kind.Profile().Eye)
	return eye.Add(mgl64.Vec3{float64(pos.X), float64(pos.Y), altitude})
}

// SetState changes the matter state. Only stable figures can be changed from
// outside; byRobot records who triggered an absorption.
func (f *Figure) SetState(s MatterState, byRobot bool) {
	if f.State != StateStable {
		return
	}
	f.State = s
	if s == StateDisintegrating {
		f.byRobot = byRobot
	}
}

// Transmute starts turning the figure into another kind.
func (f *Figure) Transmute(kind FigureKind) {
	if kind == f.Kind {
		panic(fmt.Sprintf("figure: transmuting %s into itself", kind))
	}
	f.origin = f.Kind
	f.transmuting = true
	f.Kind = kind
	f.State = StateTransmuting
	f.Fade = 0
}

// TransmutedFrom returns the previous kind while a transmutation runs.
func (f *Figure) TransmutedFrom() (FigureKind, bool) {
	return f.origin, f.transmuting
}

// Progress advances rotation and fading by dt seconds and reports whether
// anything changed.
func (f *Figure) Progress(dt float64, action AntagonistAction) bool {
	if f.State == StateGone {
		return false
	}
	changed := false
	if action != ActionStill {
		sign := 1.0
		if action == ActionBackward {
			sign = -1.0
		}
		factor := 1.0
		if f.Kind == FigureMeanie {
			factor = meanieSpeedFactor
		}
		if f.SpinPeriod != 0 {
			f.Phi += sign * 360 * dt * factor / f.SpinPeriod
		}
		if f.Phi >= 360 {
			f.Phi -= 360
		}
		if f.Phi < 0 {
			f.Phi += 360
		}
		changed = true
	}
	switch f.State {
	case StateManifesting, StateTransmuting, StateDisintegrating:
		sign := 1.0
		if f.State == StateDisintegrating {
			sign = -1.0
		}
		f.Fade += sign * dt / f.FadingTime
		if f.Fade > 1 {
			f.transmuting = false
			f.State = StateStable
			f.Fade = 1
		}
		if f.Fade <= 0 {
			f.State = StateGone
			f.Fade = 0
		}
		changed = true
	}
	return changed
}

// EnergyForRobot is the energy the robot gains when this figure is gone.
func (f *Figure) EnergyForRobot() int {
	if !f.byRobot {
		return 0
	}
	return f.Kind.Energy()
}

// maxStackDepth bounds a stack. Anything deeper is a corrupted board.
const maxStackDepth = 2000

// Stack is the column of figures on one square, bottom first.
type Stack []*Figure

// Base returns the bottom figure or nil.
func (s Stack) Base() *Figure {
	if len(s) == 0 {
		return nil
	}
	return s[0]
}

// Top returns the topmost figure or nil.
func (s Stack) Top() *Figure {
	if len(s) == 0 {
		return nil
	}
	return s[len(s)-1]
}

// Push puts f on top of the stack.
func (s *Stack) Push(f *Figure) {
	if len(*s) >= maxStackDepth {
		panic(fmt.Sprintf("stack: depth exceeds %d", maxStackDepth))
	}
	*s = append(*s, f)
}

// Above returns the figure directly above index i, or nil.
func (s Stack) Above(i int) *Figure {
	if i+1 >= len(s) {
		return nil
	}
	return s[i+1]
}

// Below returns the figure directly below index i, or nil.
func (s Stack) Below(i int) *Figure {
	if i <= 0 || i > len(s) {
		return nil
	}
	return s[i-1]
}

// AltitudeAbove is the height of everything beneath index i.
func (s Stack) AltitudeAbove(i int) int {
	alt := 0
	for _, f := range s[:i] {
		alt += f.Kind.Height()
	}
	return alt
}

// BlockRun counts consecutive blocks from the base upward.
func (s Stack) BlockRun() int {
	n := 0
	for _, f := range s {
		if f.Kind != FigureBlock {
			break
		}
		n++
	}
	return n
}

// Index returns the position of f in the stack or -1.
func (s Stack) Index(f *Figure) int {
	for i, g := range s {
		if g == f {
			return i
		}
	}
	return -1
}

// PopIfGone removes the top figure once it has fully disintegrated and
// returns the energy it yields the robot. The base figure is never removed.
func (s *Stack) PopIfGone() int {
	if len(*s) < 2 || !s.Top().Gone() {
		return 0
	}
	top := s.Top()
	*s = (*s)[:len(*s)-1]
	return top.EnergyForRobot()
}

// Clone deep-copies every figure.
func (s Stack) Clone() Stack {
	if s == nil {
		return nil
	}
	out := make(Stack, len(s))
	for i, f := range s {
		out[i] = f.Clone()
	}
	return out
}

// Occupants is the board of figure stacks.
type Occupants struct {
	*Grid[Stack]
}

// NewOccupants creates an empty occupant board.
func NewOccupants(width, height int) *Occupants {
	return &Occupants{Grid: NewGrid[Stack](width, height)}
}

// StackAt returns the stack at p.
func (o *Occupants) StackAt(p Point) Stack {
	return o.At(p.X, p.Y)
}

// Occupied reports whether any figure stands at p.
func (o *Occupants) Occupied(p Point) bool {
	return len(o.At(p.X, p.Y)) > 0
}

// Push puts f on top of the stack at p.
func (o *Occupants) Push(p Point, f *Figure) {
	o.Ref(p.X, p.Y).Push(f)
}

// Clone deep-copies the board and every figure on it.
func (o *Occupants) Clone() *Occupants {
	out := NewOccupants(o.Width(), o.Height())
	o.Each(func(x, y int, s Stack) {
		if len(s) > 0 {
			out.Set(x, y, s.Clone())
		}
	})
	return out
}

// Antagonists returns the positions of stacks whose top figure is an antagonist.
func (o *Occupants) Antagonists() []Point {
	var out []Point
	o.Each(func(x, y int, s Stack) {
		if top := s.Top(); top != nil && top.IsAntagonist() {
			out = append(out, Point{x, y})
		}
	})
	return out
}

// Energy sums the energy of every figure on the board.
func (o *Occupants) Energy() int {
	total := 0
	o.Each(func(_, _ int, s Stack) {
		for _, f := range s {
			total += f.Kind.Energy()
		}
	})
	return total
}
