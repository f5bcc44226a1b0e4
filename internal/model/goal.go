// Package model defines the domain types for savings goals and their ledger.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoalStatus reports whether a goal has reached its target.
type GoalStatus string

const (
	// StatusActive means the goal is still below its target.
	StatusActive GoalStatus = "active"
	// StatusCompleted means the saved balance has reached the target.
	// A later withdrawal can move the goal back to active.
	StatusCompleted GoalStatus = "completed"
)

// Goal is a named savings target with a running balance.
type Goal struct {
	Date          time.Time
	CreatedAt     time.Time
	Shown         BadgeSet
	Name          string
	Target        decimal.Decimal
	MonthlyNeeded decimal.Decimal
	Saved         decimal.Decimal
}

// Progress returns Saved/Target, or zero when the target is not positive.
func (g Goal) Progress() decimal.Decimal {
	if !g.Target.IsPositive() {
		return decimal.Zero
	}
	return g.Saved.Div(g.Target)
}

// Status reports whether the goal is active or completed.
func (g Goal) Status() GoalStatus {
	if g.Saved.GreaterThanOrEqual(g.Target) {
		return StatusCompleted
	}
	return StatusActive
}

// Remaining returns how much is left to save, never negative.
func (g Goal) Remaining() decimal.Decimal {
	left := g.Target.Sub(g.Saved)
	if left.IsNegative() {
		return decimal.Zero
	}
	return left
}

// Clone returns a copy that shares no mutable state with g.
func (g Goal) Clone() Goal {
	g.Shown = g.Shown.Clone()
	return g
}
