package tracker

import (
	"github.com/Veraticus/nest-egg/internal/model"
	"github.com/shopspring/decimal"
)

// Summary aggregates every tracked goal for the dashboard.
type Summary struct {
	TotalSaved     decimal.Decimal
	TotalTarget    decimal.Decimal
	ActiveGoals    []model.Goal
	GoalCount      int
	CompletedCount int
}

// Progress is the saved share of all targets combined.
func (s Summary) Progress() decimal.Decimal {
	if !s.TotalTarget.IsPositive() {
		return decimal.Zero
	}
	return s.TotalSaved.Div(s.TotalTarget)
}

// Summary totals the current goals.
func (m *Manager) Summary() Summary {
	goals := m.Goals()

	s := Summary{
		TotalSaved:  decimal.Zero,
		TotalTarget: decimal.Zero,
		GoalCount:   len(goals),
	}
	for _, g := range goals {
		s.TotalSaved = s.TotalSaved.Add(g.Saved)
		s.TotalTarget = s.TotalTarget.Add(g.Target)
		if g.Status() == model.StatusCompleted {
			s.CompletedCount++
			continue
		}
		s.ActiveGoals = append(s.ActiveGoals, g)
	}
	return s
}
