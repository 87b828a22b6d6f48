package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// minPickAngle is the smallest angle, in degrees, between the two projected
// edges of a triangle for it to count as clickable.
const minPickAngle = 1.0

// Scanner answers pointer queries against a landscape.
type Scanner struct {
	land   *Landscape
	meshes Meshes
}

// NewScanner checks that every figure kind has a mesh.
func NewScanner(l *Landscape, meshes Meshes) (*Scanner, error) {
	if l == nil {
		return nil, configError("scanner needs a landscape")
	}
	if err := meshes.Validate(); err != nil {
		return nil, err
	}
	return &Scanner{land: l, meshes: meshes}, nil
}

// Landscape returns the scanned landscape.
func (s *Scanner) Landscape() *Landscape { return s.land }

// PickResult is what lies under the pointer. Figure is nil when only a square
// was hit; Hit is false when nothing was.
type PickResult struct {
	Cell       Point
	Figure     *Figure
	StackIndex int
	Hit        bool
}

// Pick finds the square and the figure under the pointer at (mx, my) in
// normalized device coordinates. Only stable figures on squares closer than
// the hit square are considered, bottom of each stack first; figures on
// exclude, where the player stands, are ignored. A hit figure overrides the
// square.
func (s *Scanner) Pick(mx, my float64, v *Viewer, occ *Occupants, exclude Point) (PickResult, error) {
	dir := MouseDirection(v, mx, my)
	view, err := PositionsInFOV(v.Site, mgl64.Vec2{dir.X(), dir.Y()}, v.HorizontalFOV(), s.land.Width(), s.land.Height())
	if err != nil {
		return PickResult{}, err
	}
	candidates := Cells(view)
	camera := v.Camera()

	res := PickResult{Cell: NoPoint, StackIndex: -1}
	for _, p := range candidates {
		if squareUnderPointer(mx, my, s.land.Square(p), camera) {
			res.Cell, res.Hit = p, true
			break
		}
	}

	for _, p := range candidates {
		if p == res.Cell {
			break
		}
		if p == exclude {
			continue
		}
		stack := occ.StackAt(p)
		ground := float64(s.land.Altitude(p.X, p.Y))
		for i, f := range stack {
			if !f.Stable() {
				continue
			}
			model := camera.
				Mul4(mgl64.Translate3D(float64(p.X), float64(p.Y), ground+float64(stack.AltitudeAbove(i)))).
				Mul4(mgl64.HomogRotate3DZ(mgl64.DegToRad(f.Phi)))
			if meshUnderPointer(mx, my, s.meshes[f.Kind], model) {
				return PickResult{Cell: p, Figure: f, StackIndex: i, Hit: true}, nil
			}
		}
	}
	return res, nil
}

// project maps v through m and divides by w. It fails outside the depth range.
func project(m mgl64.Mat4, v mgl64.Vec3) (mgl64.Vec4, bool) {
	c := m.Mul4x1(v.Vec4(1))
	if math.Abs(c.W()) < 1e-12 {
		return c, false
	}
	c = c.Mul(1 / c.W())
	return c, c.Z() >= -1 && c.Z() <= 1
}

func squareUnderPointer(mx, my float64, sq *Square, camera mgl64.Mat4) bool {
	if sq == nil {
		return false
	}
	var q [4]mgl64.Vec4
	for i, v := range sq.Vertices {
		var ok bool
		if q[i], ok = project(camera, mgl64.Vec3(v)); !ok {
			return false
		}
	}
	return inTriangle(mx, my, q[0], q[1], q[2]) || inTriangle(mx, my, q[0], q[2], q[3])
}

// meshUnderPointer tests every triangle of m under model. Triangles leaving
// the depth range are skipped.
func meshUnderPointer(mx, my float64, m *Mesh, model mgl64.Mat4) bool {
	projected := make([]mgl64.Vec4, len(m.Vertices))
	inside := make([]bool, len(m.Vertices))
	for i, v := range m.Vertices {
		projected[i], inside[i] = project(model, v)
	}
	for t := 0; t+2 < len(m.Elements); t += 3 {
		i, j, k := m.Elements[t], m.Elements[t+1], m.Elements[t+2]
		if !inside[i] || !inside[j] || !inside[k] {
			continue
		}
		if inTriangle(mx, my, projected[i], projected[j], projected[k]) {
			return true
		}
	}
	return false
}

// inTriangle reports whether (x, y) lies in the screen projection of a, b, c.
// Depth and w are ignored.
func inTriangle(x, y float64, a, b, c mgl64.Vec4) bool {
	e1 := mgl64.Vec2{b.X() - a.X(), b.Y() - a.Y()}
	e2 := mgl64.Vec2{c.X() - a.X(), c.Y() - a.Y()}
	inv, ok := inverse2x2(e1, e2, minPickAngle)
	if !ok {
		return false
	}
	l := inv.Mul2x1(mgl64.Vec2{x - a.X(), y - a.Y()})
	return l.X() >= 0 && l.Y() >= 0 && l.X()+l.Y() <= 1
}

// inverse2x2 inverts the matrix with columns c1 and c2. It refuses when the
// columns are closer than minAngle degrees to parallel.
func inverse2x2(c1, c2 mgl64.Vec2, minAngle float64) (mgl64.Mat2, bool) {
	l1, l2 := c1.Len(), c2.Len()
	if l1 < 1e-12 || l2 < 1e-12 {
		return mgl64.Mat2{}, false
	}
	m := mgl64.Mat2{c1.X(), c1.Y(), c2.X(), c2.Y()}
	det := m.Det()
	if math.Abs(det)/(l1*l2) < math.Sin(mgl64.DegToRad(minAngle)) {
		return mgl64.Mat2{}, false
	}
	return m.Inv(), true
}
