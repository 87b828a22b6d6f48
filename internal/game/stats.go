package game

import "github.com/go-gl/mathgl/mgl64"

// --- Figure kinds ---

// FigureKind identifies an object that can stand on a square.
type FigureKind int

const (
	FigureTree FigureKind = iota
	FigureBlock
	FigureMeanie
	FigureRobot
	FigureSentry
	FigureSentinel
	FigureTower
	figureKindCount
)

// FigureProfile holds the fixed properties of a figure kind.
type FigureProfile struct {
	Name       string
	Height     int        // stacking height in altitude units
	MeshHeight float64    // visible body height, used for partial visibility
	Energy     int        // energy released when absorbed
	Eye        mgl64.Vec3 // eye offset relative to the figure's base, before rotation
}

var defaultEye = mgl64.Vec3{0, 0, 1.5}

var figureProfiles = [figureKindCount]FigureProfile{
	FigureTree:     {Name: "tree", Height: 2, MeshHeight: 2.5, Energy: 1, Eye: defaultEye},
	FigureBlock:    {Name: "block", Height: 1, MeshHeight: 1.0, Energy: 2, Eye: defaultEye},
	FigureMeanie:   {Name: "meanie", Height: 2, MeshHeight: 2.0, Energy: 1, Eye: mgl64.Vec3{0.2, 0, 1.625}},
	FigureRobot:    {Name: "robot", Height: 2, MeshHeight: 1.53, Energy: 3, Eye: mgl64.Vec3{0, 0, 1.45}},
	FigureSentry:   {Name: "sentry", Height: 2, MeshHeight: 1.8, Energy: 3, Eye: mgl64.Vec3{0.22, 0, 1.70}},
	FigureSentinel: {Name: "sentinel", Height: 2, MeshHeight: 2.0, Energy: 4, Eye: mgl64.Vec3{0.311, 0, 1.74}},
	FigureTower:    {Name: "tower", Height: 2, MeshHeight: 2.0, Energy: 0, Eye: defaultEye},
}

// Profile returns the fixed properties of this kind.
func (k FigureKind) Profile() FigureProfile {
	if k < 0 || k >= figureKindCount {
		return FigureProfile{Name: "unknown", Height: 2, MeshHeight: 2.0, Eye: defaultEye}
	}
	return figureProfiles[k]
}

func (k FigureKind) String() string {
	return k.Profile().Name
}

// Height is the stacking height: 1 for blocks, 2 for everything else.
func (k FigureKind) Height() int { return k.Profile().Height }

// MeshHeight is the height of the kind's body mesh.
func (k FigureKind) MeshHeight() float64 { return k.Profile().MeshHeight }

// Energy is the energy value of one figure of this kind.
func (k FigureKind) Energy() int { return k.Profile().Energy }

// HasEye reports whether the kind can look around.
func (k FigureKind) HasEye() bool {
	switch k {
	case FigureRobot, FigureSentry, FigureSentinel, FigureMeanie:
		return true
	default:
		return false
	}
}

// --- Matter states ---

// MatterState is the life cycle of a figure.
type MatterState int

const (
	StateStable MatterState = iota
	StateManifesting
	StateDisintegrating
	StateTransmuting
	StateGone
)

func (s MatterState) String() string {
	switch s {
	case StateStable:
		return "stable"
	case StateManifesting:
		return "manifesting"
	case StateDisintegrating:
		return "disintegrating"
	case StateTransmuting:
		return "transmuting"
	case StateGone:
		return "gone"
	default:
		return "unknown"
	}
}

// AntagonistAction is what an antagonist does during one Progress step.
type AntagonistAction int

const (
	ActionStill    AntagonistAction = iota
	ActionForward                   // turn along the spin direction
	ActionBackward                  // turn against it
)

// meanieSpeedFactor speeds up meanie rotation relative to other antagonists.
const meanieSpeedFactor = 4.0
