package tracker

import (
	"testing"

	"github.com/Veraticus/nest-egg/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func badgeIDs(badges []model.Badge) []string {
	ids := make([]string, 0, len(badges))
	for _, b := range badges {
		ids = append(ids, b.ID)
	}
	return ids
}

func TestEarnedBadges(t *testing.T) {
	tests := []struct {
		name   string
		saved  string
		target string
		want   []string
	}{
		{name: "nothing saved", saved: "0", target: "5000", want: []string{}},
		{name: "just below quarter", saved: "1249.99", target: "5000", want: []string{}},
		{name: "exactly quarter", saved: "1250", target: "5000", want: []string{"quarter"}},
		{name: "26 percent", saved: "1300", target: "5000", want: []string{"quarter"}},
		{name: "76 percent", saved: "3800", target: "5000", want: []string{"quarter", "half", "three_quarters"}},
		{name: "complete", saved: "5000", target: "5000", want: []string{"quarter", "half", "three_quarters", "complete"}},
		{name: "over target", saved: "7000", target: "5000", want: []string{"quarter", "half", "three_quarters", "complete"}},
		{name: "zero target", saved: "100", target: "0", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goal := model.Goal{Name: "Car", Saved: dec(tt.saved), Target: dec(tt.target)}
			assert.Equal(t, tt.want, badgeIDs(EarnedBadges(goal, model.DefaultBadges)))
		})
	}
}

func TestEarnedBadges_Monotonic(t *testing.T) {
	goal := model.Goal{Name: "Car", Target: dec("5000")}
	step := dec("125")
	prev := 0
	for i := 0; i <= 48; i++ {
		goal.Saved = step.Mul(decimal.NewFromInt(int64(i)))
		n := len(EarnedBadges(goal, model.DefaultBadges))
		assert.GreaterOrEqual(t, n, prev, "saved %s", goal.Saved)
		prev = n
	}
	assert.Equal(t, len(model.DefaultBadges), prev)
}

func TestNewlyEarnedBadges(t *testing.T) {
	goal := model.Goal{Name: "Car", Saved: dec("3800"), Target: dec("5000")}

	fresh := NewlyEarnedBadges(goal, model.DefaultBadges, model.NewBadgeSet("quarter"))
	assert.Equal(t, []string{"half", "three_quarters"}, badgeIDs(fresh))

	fresh = NewlyEarnedBadges(goal, model.DefaultBadges, nil)
	assert.Len(t, fresh, 3)

	fresh = NewlyEarnedBadges(goal, model.DefaultBadges, model.NewBadgeSet("quarter", "half", "three_quarters"))
	assert.Empty(t, fresh)
}
