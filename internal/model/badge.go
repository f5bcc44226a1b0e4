package model

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Badge is an achievement unlocked when saved/target crosses Threshold.
type Badge struct {
	ID        string
	Title     string
	Threshold decimal.Decimal
}

// DefaultBadges is the static badge table, ordered by threshold.
var DefaultBadges = []Badge{
	{ID: "quarter", Title: "Quarter Way There", Threshold: decimal.RequireFromString("0.25")},
	{ID: "half", Title: "Halfway Hero", Threshold: decimal.RequireFromString("0.50")},
	{ID: "three_quarters", Title: "Almost There", Threshold: decimal.RequireFromString("0.75")},
	{ID: "complete", Title: "Goal Achieved", Threshold: decimal.RequireFromString("1.00")},
}

// BadgeSet is the set of badge ids already surfaced for one goal.
type BadgeSet map[string]struct{}

// NewBadgeSet builds a set from ids.
func NewBadgeSet(ids ...string) BadgeSet {
	s := make(BadgeSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set. A nil set is empty.
func (s BadgeSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id.
func (s BadgeSet) Add(id string) {
	s[id] = struct{}{}
}

// IDs returns the ids in sorted order.
func (s BadgeSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone copies the set; cloning nil yields an empty set.
func (s BadgeSet) Clone() BadgeSet {
	c := make(BadgeSet, len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}
