package game

import (
	"io"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// Landscape is a generated board: terrain squares plus the initial figures.
// Terrain is immutable once generation returns.
type Landscape struct {
	cfg       LandscapeConfig
	programs  *placementPrograms
	rng       *rand.Rand
	log       logrus.FieldLogger
	genLog    *GenLog
	squares   *Grid[*Square]
	occupants *Occupants

	nuclei          []Point
	plateauAltitude map[int]int
	peak            int
	playerStart     Point
}

// Generate builds a complete landscape from seed: terrain first, then the
// initial distribution of figures. The same inputs always give the same board.
func Generate(seed int64, width, height, gravity, age int, opts ...LandscapeOption) (*Landscape, error) {
	cfg := NewLandscapeConfig(opts...)
	cfg.Seed = seed
	cfg.Width = width
	cfg.Height = height
	cfg.Gravity = gravity
	cfg.Age = age
	return GenerateFromConfig(cfg)
}

// GenerateFromConfig runs every generation phase for cfg.
func GenerateFromConfig(cfg LandscapeConfig) (*Landscape, error) {
	l, err := GenerateTerrain(cfg)
	if err != nil {
		return nil, err
	}
	if err := l.Distribute(); err != nil {
		return nil, err
	}
	return l, nil
}

// GenerateTerrain runs the plateau phases only. Distribute must be called
// before figures are available.
func GenerateTerrain(cfg LandscapeConfig) (*Landscape, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	programs, err := cfg.Rules.compile()
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	l := &Landscape{
		cfg:         cfg,
		programs:    programs,
		rng:         rand.New(rand.NewSource(cfg.Seed)), // #nosec G404 -- reproducible terrain, not security
		log:         logger.WithField("seed", cfg.Seed),
		genLog:      cfg.GenLog,
		squares:     NewGrid[*Square](cfg.Width, cfg.Height),
		occupants:   NewOccupants(cfg.Width, cfg.Height),
		playerStart: NoPoint,
	}

	l.nuclei = l.generateNuclei()
	l.record("nuclei", "count", len(l.nuclei))
	if len(l.nuclei) == 0 {
		return nil, l.fail("nuclei", "no square can hold a plateau nucleus")
	}

	l.record("expand", "neglect_claimed", l.expandNuclei(len(l.nuclei), true))
	l.record("expand", "thorough_claimed", l.expandNuclei(len(l.nuclei), false))

	l.plateauAltitude = l.assignAltitudes()
	l.record("altitude", "peak", l.peak)

	l.record("bridge", "bridged", l.bridgeEquiContourPlateaus())
	l.assignParity()
	l.record("slope", "connections", l.assignSlopes())
	return l, nil
}

// discardLogger is used where generation should stay silent.
func discardLogger() logrus.FieldLogger {
	lg := logrus.New()
	lg.SetOutput(io.Discard)
	return lg
}

func (l *Landscape) record(phase, key string, n int) {
	l.genLog.Count(l.cfg.Seed, phase, key, n)
	l.log.WithFields(logrus.Fields{"phase": phase, key: n}).Debug("generation phase")
}

func (l *Landscape) fail(phase, reason string) error {
	l.genLog.Add(l.cfg.Seed, phase, "failed", reason, 1)
	l.log.WithField("phase", phase).Warn(reason)
	return &GenerationError{Seed: l.cfg.Seed, Phase: phase, Reason: reason}
}

// Config returns the configuration the landscape was generated with.
func (l *Landscape) Config() LandscapeConfig { return l.cfg }

// Seed returns the generator seed.
func (l *Landscape) Seed() int64 { return l.cfg.Seed }

// Width returns the board width.
func (l *Landscape) Width() int { return l.cfg.Width }

// Height returns the board height.
func (l *Landscape) Height() int { return l.cfg.Height }

// Squares returns the terrain board. Callers must not modify it.
func (l *Landscape) Squares() *Grid[*Square] { return l.squares }

// Square returns the terrain square at p.
func (l *Landscape) Square(p Point) *Square { return l.squares.At(p.X, p.Y) }

// Altitude returns the altitude at (x, y); connections report -1.
func (l *Landscape) Altitude(x, y int) int {
	sq := l.squares.At(x, y)
	if sq == nil {
		return connectionAltitude
	}
	return sq.Altitude
}

// Peak is the altitude reserved for the tower.
func (l *Landscape) Peak() int { return l.peak }

// Plateaus returns the number of plateau nuclei.
func (l *Landscape) Plateaus() int { return len(l.nuclei) }

// PlateauAltitude returns the altitude assigned to a plateau id.
func (l *Landscape) PlateauAltitude(id int) (int, bool) {
	a, ok := l.plateauAltitude[id]
	return a, ok
}

// PlayerStart is the square the robot starts on, or NoPoint before Distribute.
func (l *Landscape) PlayerStart() Point { return l.playerStart }

// Occupants returns the live figure board.
func (l *Landscape) Occupants() *Occupants { return l.occupants }

// InitialOccupants returns a fresh deep copy of the distributed figures.
func (l *Landscape) InitialOccupants() *Occupants { return l.occupants.Clone() }

// DiagonalLength is the length of the board diagonal.
func (l *Landscape) DiagonalLength() float64 {
	w, h := float64(l.cfg.Width), float64(l.cfg.Height)
	return math.Sqrt(w*w + h*h)
}

// String renders the board by altitude.
func (l *Landscape) String() string {
	return BoardString(l.squares, true)
}
