package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoal_ProgressAndStatus(t *testing.T) {
	tests := []struct {
		name      string
		saved     string
		target    string
		progress  string
		remaining string
		status    GoalStatus
	}{
		{name: "empty", saved: "0", target: "5000", progress: "0", remaining: "5000", status: StatusActive},
		{name: "partial", saved: "1300", target: "5000", progress: "0.26", remaining: "3700", status: StatusActive},
		{name: "exact", saved: "5000", target: "5000", progress: "1", remaining: "0", status: StatusCompleted},
		{name: "over", saved: "6000", target: "5000", progress: "1.2", remaining: "0", status: StatusCompleted},
		{name: "zero target", saved: "10", target: "0", progress: "0", remaining: "0", status: StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Goal{
				Name:   "Car",
				Saved:  decimal.RequireFromString(tt.saved),
				Target: decimal.RequireFromString(tt.target),
			}
			assert.True(t, decimal.RequireFromString(tt.progress).Equal(g.Progress()), "progress %s", g.Progress())
			assert.True(t, decimal.RequireFromString(tt.remaining).Equal(g.Remaining()), "remaining %s", g.Remaining())
			assert.Equal(t, tt.status, g.Status())
		})
	}
}

func TestGoal_CloneOwnsShown(t *testing.T) {
	g := Goal{Name: "Car", Shown: NewBadgeSet("quarter")}
	c := g.Clone()
	c.Shown.Add("half")

	assert.False(t, g.Shown.Has("half"))
	assert.True(t, c.Shown.Has("quarter"))

	empty := Goal{Name: "Bike"}.Clone()
	require.NotNil(t, empty.Shown)
	empty.Shown.Add("quarter")
}

func TestBadgeSet(t *testing.T) {
	s := NewBadgeSet("half", "quarter")
	s.Add("complete")
	s.Add("half")

	assert.True(t, s.Has("quarter"))
	assert.False(t, s.Has("three_quarters"))
	assert.Equal(t, []string{"complete", "half", "quarter"}, s.IDs())

	var nilSet BadgeSet
	assert.False(t, nilSet.Has("quarter"))
	assert.Empty(t, nilSet.IDs())
}

func TestDefaultBadgesAreOrdered(t *testing.T) {
	for i := 1; i < len(DefaultBadges); i++ {
		assert.True(t, DefaultBadges[i-1].Threshold.LessThan(DefaultBadges[i].Threshold))
	}
}
