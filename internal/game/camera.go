package game

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Viewer defaults.
const (
	DefaultOpening = 45.0
	MinOpening     = 20.0
	MaxOpening     = 70.0
	viewerNear     = 0.4
	viewerFar      = 200.0
	maxHorizontal  = 120.0 // aspect*opening never exceeds this
)

// Viewer is the player's camera: where it stands, where it looks and how wide.
type Viewer struct {
	Site    mgl64.Vec3
	Dir     mgl64.Vec3
	Up      mgl64.Vec3
	Opening float64 // vertical opening angle in degrees
	Aspect  float64 // width / height of the view port
	Near    float64
	Far     float64
}

// NewViewer creates a viewer at the origin looking along +x.
func NewViewer(aspect float64) *Viewer {
	v := &Viewer{Aspect: aspect, Near: viewerNear, Far: viewerFar}
	v.SetOpening(DefaultOpening)
	v.SetDirection(0, 90, 0)
	return v
}

// SetOpening sets the vertical opening, clamped to [MinOpening, MaxOpening].
func (v *Viewer) SetOpening(deg float64) {
	v.Opening = math.Max(MinOpening, math.Min(MaxOpening, deg))
}

// SetDirection points the viewer at heading phi and inclination theta and
// rolls the up vector by alpha, all in degrees. Looking straight up or down
// uses -x as up.
func (v *Viewer) SetDirection(phi, theta, alpha float64) {
	p, t := mgl64.DegToRad(phi), mgl64.DegToRad(theta)
	st := math.Sin(t)
	v.Dir = mgl64.Vec3{math.Cos(p) * st, math.Sin(p) * st, math.Cos(t)}
	if st == 0 {
		v.Up = mgl64.Vec3{-1, 0, 0}
		return
	}
	v.Up = mgl64.Vec3{0, 0, 1}
	if alpha != 0 {
		v.Up = mgl64.HomogRotate3D(mgl64.DegToRad(alpha), v.Dir.Normalize()).Mul4x1(v.Up.Vec4(0)).Vec3()
	}
}

// Phi is the heading in degrees, in [0, 360).
func (v *Viewer) Phi() float64 {
	flat := mgl64.Vec2{v.Dir.X(), v.Dir.Y()}
	if flat.Len() < 1e-12 {
		return 0
	}
	flat = flat.Normalize()
	phi := mgl64.RadToDeg(math.Acos(mgl64.Clamp(flat.X(), -1, 1)))
	if flat.Y() < 0 {
		phi = 360 - phi
	}
	if phi >= 360 {
		phi -= 360
	}
	return phi
}

// Theta is the inclination in degrees; 90 is level.
func (v *Viewer) Theta() float64 {
	if v.Dir.Len() < 1e-12 {
		return 90
	}
	return mgl64.RadToDeg(math.Acos(mgl64.Clamp(v.Dir.Normalize().Z(), -1, 1)))
}

// TurnAround reverses the horizontal heading.
func (v *Viewer) TurnAround() {
	v.Dir = mgl64.Vec3{-v.Dir.X(), -v.Dir.Y(), v.Dir.Z()}
}

func (v *Viewer) opening() float64 {
	if v.Aspect > 0 && v.Aspect*v.Opening > maxHorizontal {
		return maxHorizontal / v.Aspect
	}
	return v.Opening
}

// HorizontalFOV is the horizontal opening in degrees implied by the vertical
// opening and the aspect ratio.
func (v *Viewer) HorizontalFOV() float64 {
	half := math.Atan(v.Aspect * math.Tan(mgl64.DegToRad(v.opening())/2))
	return mgl64.RadToDeg(2 * half)
}

// Camera is the combined projection and view matrix.
func (v *Viewer) Camera() mgl64.Mat4 {
	proj := mgl64.Perspective(mgl64.DegToRad(v.opening()), v.Aspect, v.Near, v.Far)
	view := mgl64.LookAtV(v.Site, v.Site.Add(v.Dir), v.Up)
	return proj.Mul4(view)
}

// TransferTo moves the viewer into the eye of robot standing at site, with its
// feet at altitude, and looks along the robot's heading.
func (v *Viewer) TransferTo(site Point, altitude float64, robot *Figure) {
	v.Site = robot.EyeInWorld(site, altitude)
	v.SetDirection(robot.Phi, robot.Theta, 0)
}

func (v *Viewer) String() string {
	return fmt.Sprintf("site=(%.2f,%.2f,%.2f) dir=(%.2f,%.2f,%.2f) opening=%.1f",
		v.Site.X(), v.Site.Y(), v.Site.Z(), v.Dir.X(), v.Dir.Y(), v.Dir.Z(), v.Opening)
}
