package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlacementRules_DefaultsCompile(t *testing.T) {
	_, err := DefaultPlacementRules.compile()
	require.NoError(t, err)
	_, err = PlacementRules{}.compile()
	require.NoError(t, err, "empty rules fall back to the defaults")
}

func TestPlacementRules_WithDefaults(t *testing.T) {
	r := PlacementRules{Tower: "altitude == 1"}.withDefaults()
	assert.Equal(t, "altitude == 1", r.Tower)
	assert.Equal(t, DefaultPlacementRules.Robot, r.Robot)
	assert.Equal(t, DefaultPlacementRules.Sentry, r.Sentry)
	assert.Equal(t, DefaultPlacementRules.TreeDensity, r.TreeDensity)
}

func TestPlacementRules_RejectsBadRules(t *testing.T) {
	cases := []PlacementRules{
		{Robot: "altitude +"},
		{Sentry: "altitude"},
		{Tower: "height == peak"},
		{TreeDensity: "altitude > 1"},
	}
	for _, c := range cases {
		_, err := c.compile()
		assert.ErrorIs(t, err, ErrInvalidConfig, "%+v", c)
	}
}

func TestPlacementRules_DefaultBands(t *testing.T) {
	p, err := DefaultPlacementRules.compile()
	require.NoError(t, err)

	cases := []struct {
		name string
		run  func() (bool, error)
		want bool
	}{
		{"robot at 0", func() (bool, error) { return evalBand(p.robot, placementEnv{Altitude: 0, Peak: 6}) }, true},
		{"robot at 1", func() (bool, error) { return evalBand(p.robot, placementEnv{Altitude: 1, Peak: 6}) }, false},
		{"tower on peak", func() (bool, error) { return evalBand(p.tower, placementEnv{Altitude: 6, Peak: 6}) }, true},
		{"tower below peak", func() (bool, error) { return evalBand(p.tower, placementEnv{Altitude: 5, Peak: 6}) }, false},
		{"sentry at 6 of 9", func() (bool, error) { return evalBand(p.sentry, placementEnv{Altitude: 6, Peak: 9}) }, true},
		{"sentry at 5 of 9", func() (bool, error) { return evalBand(p.sentry, placementEnv{Altitude: 5, Peak: 9}) }, false},
		{"sentry at 8 of 8", func() (bool, error) { return evalBand(p.sentry, placementEnv{Altitude: 8, Peak: 8}) }, true},
	}
	for _, c := range cases {
		got, err := c.run()
		require.NoError(t, err, c.name)
		assert.Equal(t, c.want, got, c.name)
	}
}

func TestPlacementRules_TreeDensity(t *testing.T) {
	p, err := DefaultPlacementRules.compile()
	require.NoError(t, err)

	cases := []struct {
		altitude int
		want     float64
	}{
		{7, 0},
		{6, 0.06},
		{5, 0.06},
		{4, 0.12},
		{2, 0.12},
	}
	for _, c := range cases {
		got, err := evalDensity(p.treeDensity, placementEnv{Altitude: c.altitude, Peak: 8, Trees: 20})
		require.NoError(t, err)
		assert.InDelta(t, c.want, got, 1e-9, "altitude %d", c.altitude)
	}
}
