package game

import (
	"fmt"
	"strings"
)

// Point addresses one square on the board.
type Point struct {
	X, Y int
}

// NoPoint marks a missing board position.
var NoPoint = Point{-1, -1}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Grid is a fixed-size, row-major board of cells.
// Access outside the board panics: callers are expected to check InBounds.
type Grid[T any] struct {
	width  int
	height int
	cells  []T
}

// NewGrid allocates a width x height grid of zero-valued cells.
func NewGrid[T any](width, height int) *Grid[T] {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("grid: invalid size %dx%d", width, height))
	}
	return &Grid[T]{width: width, height: height, cells: make([]T, width*height)}
}

// Width returns the number of columns.
func (g *Grid[T]) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid[T]) Height() int { return g.height }

// InBounds reports whether (x, y) lies on the board.
func (g *Grid[T]) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *Grid[T]) index(x, y int) int {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("grid: (%d,%d) outside %dx%d board", x, y, g.width, g.height))
	}
	return y*g.width + x
}

// At returns the cell at (x, y).
func (g *Grid[T]) At(x, y int) T {
	return g.cells[g.index(x, y)]
}

// Ref returns a pointer to the cell at (x, y) for in-place updates.
func (g *Grid[T]) Ref(x, y int) *T {
	return &g.cells[g.index(x, y)]
}

// Set replaces the cell at (x, y).
func (g *Grid[T]) Set(x, y int, v T) {
	g.cells[g.index(x, y)] = v
}

// Each visits every cell in row-major order (y outer, x inner).
func (g *Grid[T]) Each(fn func(x, y int, v T)) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			fn(x, y, g.cells[y*g.width+x])
		}
	}
}

// Clone returns a shallow copy of the grid.
func (g *Grid[T]) Clone() *Grid[T] {
	out := &Grid[T]{width: g.width, height: g.height, cells: make([]T, len(g.cells))}
	copy(out.cells, g.cells)
	return out
}

// SquareKind classifies a terrain square.
type SquareKind uint8

const (
	SquareUndefined  SquareKind = iota // not yet generated
	SquareOdd                          // flat, (x+y) odd
	SquareEven                         // flat, (x+y) even
	SquareConnection                   // slope between plateaus
)

func (k SquareKind) String() string {
	switch k {
	case SquareOdd:
		return "odd"
	case SquareEven:
		return "even"
	case SquareConnection:
		return "connection"
	default:
		return "undefined"
	}
}

// Corner indices for connection squares.
const (
	CornerMM = iota // (x-0.5, y-0.5)
	CornerPM        // (x+0.5, y-0.5)
	CornerPP        // (x+0.5, y+0.5)
	CornerMP        // (x-0.5, y+0.5)
)

// connectionAltitude is the altitude reported for slope squares.
const connectionAltitude = -1

// minVertexHeight keeps slope vertices off the zero plane.
const minVertexHeight = 0.0001

// quadPrototype is the unit square every terrain square is built from.
// Triangles are (0,1,2) and (0,2,3).
var quadPrototype = [4][2]float64{
	{-0.5, -0.5},
	{0.5, -0.5},
	{0.5, 0.5},
	{-0.5, 0.5},
}

var quadElements = [6]int{0, 1, 2, 0, 2, 3}

// Square is one terrain cell. PlateauID is -1 until the square joins a plateau.
type Square struct {
	Kind      SquareKind
	Altitude  int
	PlateauID int
	// Corners holds slope heights indexed by CornerMM..CornerMP.
	Corners [4]float64
	// Vertices are world-space corners in rendering order.
	Vertices [4][3]float64
}

// Flat reports whether the square is an odd or even flat square.
func (s *Square) Flat() bool {
	return s.Kind == SquareOdd || s.Kind == SquareEven
}

// parityKind returns the checkerboard kind for (x, y).
func parityKind(x, y int) SquareKind {
	if (x+y)%2 == 0 {
		return SquareEven
	}
	return SquareOdd
}

// newPlateauSquare is a square claimed by a plateau during growth.
func newPlateauSquare(id int) *Square {
	return &Square{Kind: SquareUndefined, PlateauID: id}
}

// flatten turns the square into a flat square of the given altitude at (x, y).
func (s *Square) flatten(x, y, altitude int) {
	s.Kind = parityKind(x, y)
	s.Altitude = altitude
	for i, c := range quadPrototype {
		s.Vertices[i] = [3]float64{c[0] + float64(x), c[1] + float64(y), float64(altitude)}
	}
}

// slope turns the square into a connection with the given corner heights.
// A negative corner is a generator defect.
func (s *Square) slope(x, y int, corners [4]float64) {
	for i, c := range corners {
		if c < 0 {
			panic(fmt.Sprintf("slope at (%d,%d): corner %d has negative height %.2f", x, y, i, c))
		}
	}
	s.Kind = SquareConnection
	s.Altitude = connectionAltitude
	s.PlateauID = -1
	s.Corners = corners
	for i, c := range quadPrototype {
		s.Vertices[i] = [3]float64{
			c[0] + float64(x),
			c[1] + float64(y),
			max(corners[cornerOf(c)], minVertexHeight),
		}
	}
	fixFlatFoot(&s.Vertices)
}

// cornerOf maps a prototype vertex to its corner slot by sign.
func cornerOf(c [2]float64) int {
	switch {
	case c[0] < 0 && c[1] < 0:
		return CornerMM
	case c[0] > 0 && c[1] < 0:
		return CornerPM
	case c[0] < 0 && c[1] > 0:
		return CornerMP
	default:
		return CornerPP
	}
}

// fixFlatFoot rotates the vertex order by one when a corner off the shared
// diagonal is the only one at its height. Otherwise one triangle of the quad
// would lie flat while the other folds away from it.
func fixFlatFoot(v *[4][3]float64) bool {
	var inFirst, inSecond [4]bool
	for k := 0; k < 3; k++ {
		inFirst[quadElements[k]] = true
		inSecond[quadElements[3+k]] = true
	}
	found := false
	for j := 0; j < 4; j++ {
		if inFirst[j] && inSecond[j] {
			continue
		}
		a0 := v[j][2]
		a1 := v[(j+1)%4][2]
		a2 := v[(j+2)%4][2]
		a3 := v[(j+3)%4][2]
		if a1 != a2 || a1 != a3 {
			continue
		}
		if a0 == a1 {
			continue
		}
		found = true
		break
	}
	if !found {
		return false
	}
	first := v[0]
	copy(v[:3], v[1:])
	v[3] = first
	return true
}

// BoardString renders the terrain one character per square: the plateau id
// (or altitude when byAltitude) mod 10, '.' for undefined cells and '/' for
// connections in altitude view.
func BoardString(g *Grid[*Square], byAltitude bool) string {
	var sb strings.Builder
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			sq := g.At(x, y)
			switch {
			case sq == nil:
				sb.WriteByte('.')
			case byAltitude && sq.Kind == SquareConnection:
				sb.WriteByte('/')
			case byAltitude:
				fmt.Fprintf(&sb, "%d", sq.Altitude%10)
			case sq.PlateauID < 0:
				sb.WriteByte('/')
			default:
				fmt.Fprintf(&sb, "%d", sq.PlateauID%10)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
