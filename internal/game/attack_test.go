package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMountAttacks_TracksDuration(t *testing.T) {
	f := stableFigure(FigureSentry, 0)

	first := f.MountAttacks([]Target{
		{Cell: Point{1, 1}, Visibility: VisFull},
		{Cell: Point{2, 2}, Visibility: VisPartial},
	})
	require.Len(t, first, 2)
	for _, a := range first {
		assert.Equal(t, 1, a.Frames, "new attack on %v", a.Cell)
	}

	second := f.MountAttacks([]Target{
		{Cell: Point{2, 2}, Visibility: VisFull},
		{Cell: Point{3, 3}, Visibility: VisPartial},
	})
	require.Len(t, second, 2)
	assert.Equal(t, Attack{Cell: Point{2, 2}, Visibility: VisFull, Frames: 2}, second[0])
	assert.Equal(t, Attack{Cell: Point{3, 3}, Visibility: VisPartial, Frames: 1}, second[1])

	_, ok := f.AttackOn(Point{1, 1})
	assert.False(t, ok, "attacks on squares no longer targeted are dropped")
	a, ok := f.AttackOn(Point{2, 2})
	assert.True(t, ok)
	assert.Equal(t, 2, a.Frames)
}

func TestMountAttacks_EmptyTargetsClear(t *testing.T) {
	f := stableFigure(FigureSentinel, 0)
	f.MountAttacks([]Target{{Cell: Point{4, 4}, Visibility: VisFull}})
	got := f.MountAttacks(nil)
	assert.Empty(t, got)
	assert.Empty(t, f.Attacks)
}

func TestMountAttacks_UntargetableFigureKeepsAttacks(t *testing.T) {
	f := stableFigure(FigureMeanie, 0)
	f.MountAttacks([]Target{{Cell: Point{1, 1}, Visibility: VisFull}, {Cell: Point{2, 1}, Visibility: VisFull}})
	f.State = StateTransmuting

	assert.Nil(t, f.MountAttacks([]Target{{Cell: Point{5, 5}, Visibility: VisFull}}))
	assert.Len(t, f.Attacks, 2)
	_, ok := f.AttackOn(Point{5, 5})
	assert.False(t, ok)
}
