package game

import (
	"github.com/sirupsen/logrus"
)

// SpinMode selects the turning direction of distributed antagonists.
type SpinMode int

const (
	SpinPositive SpinMode = iota // counter-clockwise seen from above
	SpinNegative                 // clockwise
	SpinRandom                   // chosen per antagonist
)

// MinBoardSize is the smallest board edge Validate accepts. A board this small
// has room for a single plateau nucleus, so it never reaches the peak and
// generation fails for every seed; edges of 5 or more usually succeed.
const MinBoardSize = 4

// LandscapeConfig holds every knob of terrain generation and distribution.
type LandscapeConfig struct {
	Seed    int64
	Width   int
	Height  int
	Gravity int // 0 strong (flat) .. 5 weightless (towering)
	Age     int // 0 young (many small plateaus) .. 3+ old

	SpinPeriod float64 // seconds per antagonist revolution
	FOV        float64 // antagonist horizontal field of view in degrees
	FadingTime float64 // seconds to manifest or disintegrate

	Trees    int // trees per 200 squares of lowland, before banding
	Sentries int
	Spin     SpinMode
	Rules    PlacementRules

	Logger logrus.FieldLogger
	GenLog *GenLog
}

// DefaultLandscapeConfig is a mid-sized, mid-difficulty landscape.
var DefaultLandscapeConfig = LandscapeConfig{
	Width:      32,
	Height:     32,
	Gravity:    2,
	Age:        2,
	SpinPeriod: 60,
	FOV:        45,
	FadingTime: 1.0,
	Trees:      20,
	Sentries:   3,
	Spin:       SpinRandom,
	Rules:      DefaultPlacementRules,
}

// LandscapeOption adjusts a LandscapeConfig before generation.
type LandscapeOption func(*LandscapeConfig)

// WithSeed sets the generator seed.
func WithSeed(seed int64) LandscapeOption {
	return func(c *LandscapeConfig) { c.Seed = seed }
}

// WithBoardSize sets the board dimensions.
func WithBoardSize(w, h int) LandscapeOption {
	return func(c *LandscapeConfig) {
		c.Width = w
		c.Height = h
	}
}

// WithGravity sets the gravity level.
func WithGravity(g int) LandscapeOption {
	return func(c *LandscapeConfig) { c.Gravity = g }
}

// WithAge sets the age level.
func WithAge(a int) LandscapeOption {
	return func(c *LandscapeConfig) { c.Age = a }
}

// WithTrees sets the tree density.
func WithTrees(n int) LandscapeOption {
	return func(c *LandscapeConfig) { c.Trees = n }
}

// WithSentries sets how many sentries the distributor attempts to place.
func WithSentries(n int) LandscapeOption {
	return func(c *LandscapeConfig) { c.Sentries = n }
}

// WithSpinMode sets the antagonist spin direction policy.
func WithSpinMode(m SpinMode) LandscapeOption {
	return func(c *LandscapeConfig) { c.Spin = m }
}

// WithAntagonists sets spin period, field of view and fading time.
func WithAntagonists(spinPeriod, fov, fadingTime float64) LandscapeOption {
	return func(c *LandscapeConfig) {
		c.SpinPeriod = spinPeriod
		c.FOV = fov
		c.FadingTime = fadingTime
	}
}

// WithPlacementRules replaces the placement expressions.
func WithPlacementRules(r PlacementRules) LandscapeOption {
	return func(c *LandscapeConfig) { c.Rules = r }
}

// WithLogger routes phase logs to l.
func WithLogger(l logrus.FieldLogger) LandscapeOption {
	return func(c *LandscapeConfig) { c.Logger = l }
}

// WithGenLog records phase counters into gl.
func WithGenLog(gl *GenLog) LandscapeOption {
	return func(c *LandscapeConfig) { c.GenLog = gl }
}

// NewLandscapeConfig applies opts on top of DefaultLandscapeConfig.
func NewLandscapeConfig(opts ...LandscapeOption) LandscapeConfig {
	cfg := DefaultLandscapeConfig
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

// Validate rejects configurations that cannot produce a board.
func (c LandscapeConfig) Validate() error {
	if c.Width < MinBoardSize || c.Height < MinBoardSize {
		return configError("board %dx%d is smaller than %dx%d", c.Width, c.Height, MinBoardSize, MinBoardSize)
	}
	if c.Gravity < 0 || c.Age < 0 {
		return configError("gravity %d and age %d must not be negative", c.Gravity, c.Age)
	}
	if c.FOV < 0 {
		return configError("negative field of view %.1f", c.FOV)
	}
	if c.SpinPeriod <= 0 || c.FadingTime <= 0 {
		return configError("spin period %.2f and fading time %.2f must be positive", c.SpinPeriod, c.FadingTime)
	}
	if c.Trees < 0 || c.Sentries < 0 {
		return configError("trees %d and sentries %d must not be negative", c.Trees, c.Sentries)
	}
	if c.Spin < SpinPositive || c.Spin > SpinRandom {
		return configError("unknown spin mode %d", c.Spin)
	}
	if _, err := c.Rules.compile(); err != nil {
		return err
	}
	return nil
}
