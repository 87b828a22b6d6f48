package game

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/zyedidia/generic/mapset"
)

// fovStep is the sampling distance of the sweep, small enough that no square
// between two samples is skipped.
var fovStep = 1 / math.Sqrt2

// FOVEntry is one square of a field-of-view sweep with its squared horizontal
// distance from the eye.
type FOVEntry struct {
	Dist float64
	Cell Point
}

// CellAt returns the board square containing the world position (x, y).
func CellAt(x, y float64) Point {
	return Point{int(math.Round(x)), int(math.Round(y))}
}

// PositionsInFOV sweeps the horizontal cone of hfov degrees around dir from
// eye and returns every board square inside it, nearest first. The eye's own
// square is never included and each square appears once. The z components of
// eye and dir are ignored.
//
// The sweep walks lines across the cone, from the left edge to the right, at
// growing distance; it stops once a line past the first two yields no square.
func PositionsInFOV(eye mgl64.Vec3, dir mgl64.Vec2, hfov float64, width, height int) ([]FOVEntry, error) {
	if hfov < 0 {
		return nil, configError("negative field of view %g", hfov)
	}
	h := dir.Len()
	if h < 1e-12 {
		return nil, nil
	}
	dir = dir.Mul(1 / h)

	alpha := mgl64.DegToRad(hfov / 2)
	spread := 2 * math.Abs(math.Sin(alpha))
	left := mgl64.Rotate2D(-alpha).Mul2x1(dir)
	across := mgl64.Rotate2D(alpha).Mul2x1(dir).Sub(left)
	if l := across.Len(); l > 1e-12 {
		across = across.Mul(1 / l)
	}

	origin := mgl64.Vec2{eye.X(), eye.Y()}
	first := CellAt(origin.X(), origin.Y())
	inBoard := func(p Point) bool {
		return p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height
	}

	// Wide cones keep finding squares next to the eye; stop them once the
	// sweep has passed the whole board.
	centre := mgl64.Vec2{float64(width-1) / 2, float64(height-1) / 2}
	diagonal := math.Hypot(float64(width), float64(height))
	maxLines := int((2*diagonal+origin.Sub(centre).Len())/fovStep) + 3

	seen := mapset.New[Point]()
	var out []FOVEntry
	for c0 := 0; c0 <= maxLines; c0++ {
		start := origin.Add(left.Mul(float64(c0) * fovStep))
		limit := spread * float64(c0)
		found := false
		for c1 := 0; float64(c1) <= limit; c1++ {
			cur := start.Add(across.Mul(float64(c1) * fovStep))
			p := CellAt(cur.X(), cur.Y())
			if p == first || !inBoard(p) {
				continue
			}
			found = true
			if seen.Has(p) {
				continue
			}
			seen.Put(p)
			dx, dy := float64(p.X)-origin.X(), float64(p.Y)-origin.Y()
			out = append(out, FOVEntry{Dist: dx*dx + dy*dy, Cell: p})
		}
		if !found && float64(c0)*fovStep > 2 {
			break
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Dist < out[j].Dist })
	return out, nil
}

// Cells drops the distances of a sweep.
func Cells(entries []FOVEntry) []Point {
	out := make([]Point, len(entries))
	for i, e := range entries {
		out[i] = e.Cell
	}
	return out
}

// MouseDirection turns the viewer's direction towards the pointer at (mx, my)
// in normalized device coordinates: sideways by half the horizontal FOV
// about z, then up or down by half the opening about the horizontal axis.
// A vertical view tilts in the xz plane and keeps its vertical sense.
func MouseDirection(v *Viewer, mx, my float64) mgl64.Vec3 {
	dir := v.Dir
	alpha := mgl64.DegToRad(-mx * v.HorizontalFOV() / 2)
	dir = mgl64.Rotate3DZ(alpha).Mul3x1(dir)

	dtheta := mgl64.DegToRad(-my * v.opening() / 2)
	if dir.X() == 0 && dir.Y() == 0 {
		if dir.Z() > 0 {
			dir = mgl64.Vec3{math.Sin(dtheta), 0, math.Cos(dtheta)}
		} else {
			dir = mgl64.Vec3{-math.Sin(dtheta), 0, -math.Cos(dtheta)}
		}
	} else {
		axis := mgl64.Vec3{-dir.Y(), dir.X(), 0}.Normalize()
		dir = mgl64.HomogRotate3D(dtheta, axis).Mul4x1(dir.Vec4(0)).Vec3()
	}
	if dir.Len() < 1e-12 {
		return dir
	}
	return dir.Normalize()
}
