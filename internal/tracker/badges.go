package tracker

import "github.com/Veraticus/nest-egg/internal/model"

// EarnedBadges returns the badges whose threshold is at or below the goal's
// saved/target ratio. Goals without a positive target earn nothing.
func EarnedBadges(goal model.Goal, badges []model.Badge) []model.Badge {
	if !goal.Target.IsPositive() {
		return nil
	}
	progress := goal.Progress()

	var earned []model.Badge
	for _, b := range badges {
		if b.Threshold.LessThanOrEqual(progress) {
			earned = append(earned, b)
		}
	}
	return earned
}

// NewlyEarnedBadges returns earned badges that are not yet in shown.
func NewlyEarnedBadges(goal model.Goal, badges []model.Badge, shown model.BadgeSet) []model.Badge {
	var fresh []model.Badge
	for _, b := range EarnedBadges(goal, badges) {
		if !shown.Has(b.ID) {
			fresh = append(fresh, b)
		}
	}
	return fresh
}
