package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timetable-cpsat-engine/internal/engine"
)

func TestBuildTimeGrid_StepIsShortestDuration(t *testing.T) {
	courses := []engine.Course{
		{ID: 1, Duration: 90},
		{ID: 2, Duration: 45},
		{ID: 3, Duration: 60},
	}

	grid, err := engine.BuildTimeGrid("09:00", "17:00", courses)
	require.NoError(t, err)
	assert.Equal(t, 45, grid.StepMinutes)
	assert.NotEmpty(t, grid.Slots)
	assert.Equal(t, engine.OperatingDays, grid.Days)
}

func TestBuildTimeGrid_EmptyWhenNoCourses(t *testing.T) {
	grid, err := engine.BuildTimeGrid("09:00", "17:00", nil)
	require.NoError(t, err)
	assert.Empty(t, grid.Slots)
}

func TestBuildTimeGrid_EmptyWhenWindowTooShort(t *testing.T) {
	courses := []engine.Course{{ID: 1, Duration: 120}}
	grid, err := engine.BuildTimeGrid("09:00", "09:30", courses)
	require.NoError(t, err)
	assert.Empty(t, grid.Slots)
}

// DurationSlots must ceiling-divide by the minute step, not by a slot count.
func TestDurationSlots_CeilsOnStep(t *testing.T) {
	grid, err := engine.BuildTimeGrid("09:00", "17:00", []engine.Course{{ID: 1, Duration: 30}})
	require.NoError(t, err)
	require.Equal(t, 30, grid.StepMinutes)

	assert.Equal(t, 1, grid.DurationSlots(30))
	assert.Equal(t, 2, grid.DurationSlots(45))
	assert.Equal(t, 3, grid.DurationSlots(61))
}

func TestFitsWindow(t *testing.T) {
	grid, err := engine.BuildTimeGrid("09:00", "10:00", []engine.Course{{ID: 1, Duration: 30}})
	require.NoError(t, err)
	require.Len(t, grid.Slots, 2) // 09:00 and 09:30

	assert.True(t, grid.FitsWindow(1, 30))  // 09:30 + 30 == 10:00
	assert.False(t, grid.FitsWindow(1, 45)) // would run past 10:00
	assert.False(t, grid.FitsWindow(5, 30)) // out of range
}
