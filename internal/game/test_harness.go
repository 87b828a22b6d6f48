package game

import (
	"math/rand"
)

// TestScene is a hand-built board for scanner tests: no generation phases,
// just the terrain and figures the options describe.
type TestScene struct {
	Land *Landscape
	Occ  *Occupants

	width, height int
	base          int
	altitudes     map[Point]int
	connections   []Point
	figures       []sceneFigure
}

type sceneFigure struct {
	at   Point
	kind FigureKind
	phi  float64
}

// sceneOptionKind controls the pass in which an option is applied.
type sceneOptionKind int

const (
	sceneOptBoard   sceneOptionKind = iota // size and base altitude
	sceneOptTerrain                        // altitudes and connections
	sceneOptFigure                         // stacks, bottom first in option order
)

// SceneOption is a builder function applied to a TestScene during construction.
type SceneOption struct {
	kind sceneOptionKind
	fn   func(*TestScene)
}

// WithSceneSize sets the board dimensions.
func WithSceneSize(w, h int) SceneOption {
	return SceneOption{sceneOptBoard, func(ts *TestScene) {
		ts.width = w
		ts.height = h
	}}
}

// WithBaseAltitude sets the altitude of every square not set otherwise.
func WithBaseAltitude(a int) SceneOption {
	return SceneOption{sceneOptBoard, func(ts *TestScene) { ts.base = a }}
}

// WithAltitudeAt raises or lowers one square.
func WithAltitudeAt(x, y, a int) SceneOption {
	return SceneOption{sceneOptTerrain, func(ts *TestScene) {
		ts.altitudes[Point{x, y}] = a
	}}
}

// WithConnectionAt turns one square into a slope fitted to its neighbours.
func WithConnectionAt(x, y int) SceneOption {
	return SceneOption{sceneOptTerrain, func(ts *TestScene) {
		ts.connections = append(ts.connections, Point{x, y})
	}}
}

// WithFigureAt pushes a stable figure facing phi degrees onto the stack at (x, y).
func WithFigureAt(x, y int, kind FigureKind, phi float64) SceneOption {
	return SceneOption{sceneOptFigure, func(ts *TestScene) {
		ts.figures = append(ts.figures, sceneFigure{Point{x, y}, kind, phi})
	}}
}

// NewTestScene constructs a TestScene from the given options in ordered passes:
//  1. Board size and base altitude
//  2. Terrain overrides, then connections
//  3. Figures
func NewTestScene(opts ...SceneOption) *TestScene {
	ts := &TestScene{width: 8, height: 8, altitudes: make(map[Point]int)}
	for _, o := range opts {
		if o.kind == sceneOptBoard {
			o.fn(ts)
		}
	}
	for _, o := range opts {
		if o.kind == sceneOptTerrain {
			o.fn(ts)
		}
	}

	cfg := NewLandscapeConfig(WithBoardSize(ts.width, ts.height), WithLogger(discardLogger()))
	programs, err := cfg.Rules.compile()
	if err != nil {
		panic(err)
	}
	l := &Landscape{
		cfg:             cfg,
		programs:        programs,
		rng:             rand.New(rand.NewSource(1)), // #nosec G404 -- test harness default
		log:             cfg.Logger,
		squares:         NewGrid[*Square](ts.width, ts.height),
		occupants:       NewOccupants(ts.width, ts.height),
		plateauAltitude: make(map[int]int),
		playerStart:     NoPoint,
	}

	// Each distinct altitude is its own plateau.
	ids := make(map[int]int)
	for y := 0; y < ts.height; y++ {
		for x := 0; x < ts.width; x++ {
			alt, ok := ts.altitudes[Point{x, y}]
			if !ok {
				alt = ts.base
			}
			id, seen := ids[alt]
			if !seen {
				id = len(ids)
				ids[alt] = id
				l.plateauAltitude[id] = alt
				l.nuclei = append(l.nuclei, Point{x, y})
			}
			sq := newPlateauSquare(id)
			sq.flatten(x, y, alt)
			l.squares.Set(x, y, sq)
			l.peak = max(l.peak, alt)
		}
	}
	for _, p := range ts.connections {
		l.squares.Set(p.X, p.Y, nil)
	}
	for _, p := range ts.connections {
		sq := &Square{}
		sq.slope(p.X, p.Y, l.slopeCorners(p.X, p.Y))
		l.squares.Set(p.X, p.Y, sq)
	}
	ts.Land = l
	ts.Occ = l.occupants

	for _, o := range opts {
		if o.kind == sceneOptFigure {
			o.fn(ts)
		}
	}
	for _, f := range ts.figures {
		fig := NewFigure(f.kind, StateStable, f.phi, figureTheta, cfg.SpinPeriod, cfg.FOV, cfg.FadingTime)
		ts.Occ.Push(f.at, fig)
		if f.kind == FigureRobot && l.playerStart == NoPoint {
			l.playerStart = f.at
		}
	}
	return ts
}

// Top returns the top figure at (x, y).
func (ts *TestScene) Top(x, y int) *Figure {
	return ts.Occ.StackAt(Point{x, y}).Top()
}

// Scanner builds a scanner with the default meshes.
func (ts *TestScene) Scanner() *Scanner {
	s, err := NewScanner(ts.Land, DefaultMeshes())
	if err != nil {
		panic(err)
	}
	return s
}
