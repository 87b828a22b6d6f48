package game

import "github.com/go-gl/mathgl/mgl64"

// losSteps is the number of samples along a sight line.
const losSteps = 100

// CanSee reports whether the straight line from eye to the centre of target
// at altitude clears the terrain. A sample blocks when the altitude of the
// square beneath it reaches the sample's height; connectors never block. The
// line succeeds as soon as it leaves the board or enters the target square.
//
// Without fromBelow, targets at or above eye height are never visible.
func (l *Landscape) CanSee(eye mgl64.Vec3, target Point, altitude float64, fromBelow bool) bool {
	if !fromBelow && altitude >= eye.Z() {
		return false
	}
	end := mgl64.Vec3{float64(target.X), float64(target.Y), altitude}
	step := end.Sub(eye).Mul(1.0 / losSteps)
	cur := eye
	for j := 1; j < losSteps; j++ {
		cur = cur.Add(step)
		p := CellAt(cur.X(), cur.Y())
		if p == target || !l.squares.InBounds(p.X, p.Y) {
			return true
		}
		if float64(l.Altitude(p.X, p.Y)) >= cur.Z() {
			return false
		}
	}
	return true
}
