package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseGoalType(t *testing.T) {
	for _, valid := range GoalTypes {
		parsed, err := ParseGoalType(string(valid))
		require.NoError(t, err)
		require.Equal(t, valid, parsed)
	}

	_, err := ParseGoalType("books_per_week")
	require.Error(t, err)

	_, err = ParseGoalType("")
	require.Error(t, err)
}

func TestGoalTypeScan(t *testing.T) {
	var gt GoalType
	require.NoError(t, gt.Scan("pages_per_day"))
	require.Equal(t, GoalPagesPerDay, gt)

	require.NoError(t, gt.Scan([]byte("reading_streak")))
	require.Equal(t, GoalReadingStreak, gt)

	require.Error(t, gt.Scan("sprints_per_day"))
	require.Error(t, gt.Scan(42))
}

func TestGoalTypeValue(t *testing.T) {
	v, err := GoalBooksPerYear.Value()
	require.NoError(t, err)
	require.Equal(t, "books_per_year", v)

	_, err = GoalType("bogus").Value()
	require.Error(t, err)
}

func TestGoalTypeDaily(t *testing.T) {
	require.True(t, GoalPagesPerDay.Daily())
	require.True(t, GoalMinutesPerDay.Daily())
	require.False(t, GoalBooksPerYear.Daily())
	require.False(t, GoalReadingStreak.Daily())
}

func TestProgressPercentage(t *testing.T) {
	goal := &ReadingGoal{TargetValue: 10, CurrentValue: 4}
	require.InDelta(t, 40.0, goal.ProgressPercentage(), 0.001)

	goal.CurrentValue = 15
	require.Equal(t, 100.0, goal.ProgressPercentage())

	goal.CurrentValue = 0
	require.Equal(t, 0.0, goal.ProgressPercentage())
}
