// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/nest-egg/internal/model"
)

// GoalStore is the persistence collaborator for goals, their ledger and the
// shown-badge debounce state. Saves replace the stored snapshot.
type GoalStore interface {
	LoadGoals(ctx context.Context) ([]model.Goal, error)
	SaveGoals(ctx context.Context, goals []model.Goal) error
	LoadTransactions(ctx context.Context) ([]model.Transaction, error)
	SaveTransactions(ctx context.Context, transactions []model.Transaction) error
	LoadShownBadges(ctx context.Context) (map[string][]string, error)
	SaveShownBadges(ctx context.Context, shown map[string][]string) error
	Close() error
}

// Notifier is told once when a goal earns a badge.
type Notifier interface {
	BadgeEarned(ctx context.Context, goal model.Goal, badge model.Badge)
}

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock struct {
	T time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time { return c.T }

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
