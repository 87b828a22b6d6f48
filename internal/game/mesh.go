package game

import "github.com/go-gl/mathgl/mgl64"

// Mesh is the triangle list of a figure kind in its own frame: origin at the
// centre of its base, +x along its heading. Every three Elements form one
// triangle.
type Mesh struct {
	Vertices []mgl64.Vec3
	Elements []int
}

// Triangles returns the number of triangles.
func (m *Mesh) Triangles() int { return len(m.Elements) / 3 }

func (m *Mesh) validate(kind FigureKind) error {
	if m == nil {
		return configError("no mesh for %s", kind)
	}
	if len(m.Elements)%3 != 0 {
		return configError("mesh for %s has %d elements, not a multiple of 3", kind, len(m.Elements))
	}
	for _, e := range m.Elements {
		if e < 0 || e >= len(m.Vertices) {
			return configError("mesh for %s references vertex %d of %d", kind, e, len(m.Vertices))
		}
	}
	return nil
}

// Meshes maps every figure kind to its mesh.
type Meshes map[FigureKind]*Mesh

// Validate reports a configuration error for any kind without a usable mesh.
func (ms Meshes) Validate() error {
	for k := FigureKind(0); k < figureKindCount; k++ {
		if err := ms[k].validate(k); err != nil {
			return err
		}
	}
	return nil
}

// boxMesh is an axis-aligned box of half-width r from z=0 to z=h.
func boxMesh(r, h float64) *Mesh {
	v := []mgl64.Vec3{
		{-r, -r, 0}, {r, -r, 0}, {r, r, 0}, {-r, r, 0},
		{-r, -r, h}, {r, -r, h}, {r, r, h}, {-r, r, h},
	}
	e := []int{
		0, 2, 1, 0, 3, 2, // bottom
		4, 5, 6, 4, 6, 7, // top
		0, 1, 5, 0, 5, 4,
		1, 2, 6, 1, 6, 5,
		2, 3, 7, 2, 7, 6,
		3, 0, 4, 3, 4, 7,
	}
	return &Mesh{Vertices: v, Elements: e}
}

// figureHalfWidth is the footprint of each kind's stand-in box.
var figureHalfWidth = [figureKindCount]float64{
	FigureTree:     0.25,
	FigureBlock:    0.5,
	FigureMeanie:   0.3,
	FigureRobot:    0.3,
	FigureSentry:   0.3,
	FigureSentinel: 0.35,
	FigureTower:    0.5,
}

// DefaultMeshes returns box meshes sized to each kind's mesh height.
func DefaultMeshes() Meshes {
	ms := make(Meshes, figureKindCount)
	for k := FigureKind(0); k < figureKindCount; k++ {
		ms[k] = boxMesh(figureHalfWidth[k], k.MeshHeight())
	}
	return ms
}
