package game

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Visibility is how exposed a target is to an observer.
type Visibility int

const (
	VisHidden Visibility = iota
	VisPartial
	VisFull
)

func (v Visibility) String() string {
	switch v {
	case VisHidden:
		return "hidden"
	case VisPartial:
		return "partial"
	case VisFull:
		return "full"
	default:
		return fmt.Sprintf("Visibility(%d)", int(v))
	}
}

// Seek selects which stacks an observer is interested in.
type Seek int

const (
	// SeekObstaclesAndFigures looks for stacks based on a block or a robot.
	SeekObstaclesAndFigures Seek = iota
	// SeekLoneTrees looks for stacks with a tree on top.
	SeekLoneTrees
)

// Target is one visible stack.
type Target struct {
	Cell       Point
	Visibility Visibility
}

func (s Seek) wants(stack Stack) bool {
	if s == SeekLoneTrees {
		return stack.Top().Kind == FigureTree
	}
	base := stack.Base().Kind
	return base == FigureBlock || base == FigureRobot
}

// AgentTargets classifies every wanted stack in the observer's field of view.
// The ground of the square is checked first, then the feet of the top figure
// on its blocks, then the top of its body; the first visible one decides
// between full, full and partial. Hidden stacks are left out.
func (l *Landscape) AgentTargets(eye mgl64.Vec3, dir mgl64.Vec2, hfov float64, occ *Occupants, seek Seek) ([]Target, error) {
	view, err := PositionsInFOV(eye, dir, hfov, l.cfg.Width, l.cfg.Height)
	if err != nil {
		return nil, err
	}
	var out []Target
	for _, e := range view {
		stack := occ.StackAt(e.Cell)
		if len(stack) == 0 || !seek.wants(stack) {
			continue
		}
		top := stack.Top()
		if !top.Targetable() {
			continue
		}
		blocks := stack.BlockRun()
		if top.Kind == FigureBlock {
			blocks--
		}
		ground := float64(l.Altitude(e.Cell.X, e.Cell.Y))
		feet := ground + float64(blocks)

		vis := VisHidden
		switch {
		case l.CanSee(eye, e.Cell, ground, false):
			vis = VisFull
		case l.CanSee(eye, e.Cell, feet, true):
			vis = VisFull
		case l.CanSee(eye, e.Cell, feet+top.Kind.MeshHeight(), true):
			vis = VisPartial
		}
		if vis != VisHidden {
			out = append(out, Target{Cell: e.Cell, Visibility: vis})
		}
	}
	return out, nil
}

// AgentTargetsFrom runs AgentTargets for the top figure of the stack at pos,
// using its eye, heading and field of view.
func (l *Landscape) AgentTargetsFrom(occ *Occupants, pos Point, seek Seek) ([]Target, error) {
	stack := occ.StackAt(pos)
	top := stack.Top()
	if top == nil {
		return nil, nil
	}
	alt := l.Altitude(pos.X, pos.Y)
	if alt < 0 {
		panic(fmt.Sprintf("agent targets: %s stands on connector %s", top.Kind, pos))
	}
	eye := top.EyeInWorld(pos, float64(alt+stack.AltitudeAbove(len(stack)-1)))
	return l.AgentTargets(eye, top.Direction(), top.FOV, occ, seek)
}
