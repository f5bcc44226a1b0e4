// Package tracker owns the set of savings goals, their transaction ledger and
// the badge notifications derived from progress.
//
// All mutations are applied to memory first and then handed to a single
// background writer. A failed write is logged and never rolls back memory.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Veraticus/nest-egg/internal/common"
	"github.com/Veraticus/nest-egg/internal/ledger"
	"github.com/Veraticus/nest-egg/internal/model"
	"github.com/Veraticus/nest-egg/internal/projection"
	"github.com/Veraticus/nest-egg/internal/service"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Goal lifecycle errors.
var (
	ErrDuplicateGoal = fmt.Errorf("%w: goal already exists", common.ErrDuplicateEntry)
	ErrGoalNotFound  = fmt.Errorf("goal %w", common.ErrNotFound)
	ErrClosed        = errors.New("tracker is closed")
)

// DefaultPersistTimeout bounds each store call.
const DefaultPersistTimeout = 5 * time.Second

// Option configures a Manager.
type Option func(*Manager)

// WithClock sets the time source.
func WithClock(c service.Clock) Option {
	return func(m *Manager) { m.clock = c }
}

// WithNotifier sets the badge notification sink.
func WithNotifier(n service.Notifier) Option {
	return func(m *Manager) { m.notifier = n }
}

// WithBadges replaces the badge table.
func WithBadges(b []model.Badge) Option {
	return func(m *Manager) { m.badges = b }
}

// WithPersistTimeout bounds each store call.
func WithPersistTimeout(d time.Duration) Option {
	return func(m *Manager) { m.timeout = d }
}

// WithRetry configures retries for store calls.
func WithRetry(o service.RetryOptions) Option {
	return func(m *Manager) { m.retry = o }
}

// Manager is the goal lifecycle manager. It is safe for concurrent use; every
// mutation runs to completion under one lock.
type Manager struct {
	clock    service.Clock
	notifier service.Notifier
	store    service.GoalStore
	persist  *persister
	ledger   *ledger.Ledger
	goals    []*model.Goal
	badges   []model.Badge
	retry    service.RetryOptions
	timeout  time.Duration
	mu       sync.Mutex
	closed   bool
}

// NewManager creates a manager backed by store. A nil store keeps state in
// memory only.
func NewManager(store service.GoalStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		clock:   service.SystemClock{},
		badges:  model.DefaultBadges,
		ledger:  ledger.New(nil),
		timeout: DefaultPersistTimeout,
		retry:   service.RetryOptions{MaxAttempts: 3, InitialDelay: 100 * time.Millisecond},
	}
	for _, opt := range opts {
		opt(m)
	}
	if store != nil {
		m.persist = newPersister(store, m.timeout, m.retry)
	}
	return m
}

// Load replaces the in-memory state with what the store holds.
func (m *Manager) Load(ctx context.Context) error {
	if m.store == nil {
		return nil
	}

	goals, err := m.store.LoadGoals(ctx)
	if err != nil {
		return &common.PersistenceError{Op: "load goals", Err: err}
	}
	txs, err := m.store.LoadTransactions(ctx)
	if err != nil {
		return &common.PersistenceError{Op: "load transactions", Err: err}
	}
	shown, err := m.store.LoadShownBadges(ctx)
	if err != nil {
		return &common.PersistenceError{Op: "load shown badges", Err: err}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.goals = make([]*model.Goal, 0, len(goals))
	for i := range goals {
		g := goals[i].Clone()
		for _, id := range shown[g.Name] {
			g.Shown.Add(id)
		}
		m.goals = append(m.goals, &g)
	}
	m.ledger = ledger.New(txs)

	slog.Debug("loaded goals", "goals", len(m.goals), "transactions", m.ledger.Len())
	return nil
}

// CreateGoal starts tracking a new goal with nothing saved. The newest goal
// is listed first.
func (m *Manager) CreateGoal(name string, target decimal.Decimal, date time.Time, monthlyNeeded decimal.Decimal) (model.Goal, error) {
	if strings.TrimSpace(name) == "" {
		return model.Goal{}, common.NewValidationError("goal name", "is required")
	}
	if !target.IsPositive() {
		return model.Goal{}, common.NewValidationError("target amount", "must be greater than zero")
	}
	if monthlyNeeded.IsNegative() {
		return model.Goal{}, common.NewValidationError("monthly contribution", "cannot be negative")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return model.Goal{}, ErrClosed
	}

	now := m.clock.Now()
	if !date.After(now) {
		return model.Goal{}, common.NewValidationError("target date", "must be in the future")
	}
	if m.find(name) >= 0 {
		return model.Goal{}, fmt.Errorf("%w: %q", ErrDuplicateGoal, name)
	}

	goal := &model.Goal{
		Name:          name,
		Target:        target,
		Date:          date,
		MonthlyNeeded: monthlyNeeded,
		Saved:         decimal.Zero,
		CreatedAt:     now,
		Shown:         model.NewBadgeSet(),
	}
	m.goals = append([]*model.Goal{goal}, m.goals...)
	m.schedule(saveGoals)

	slog.Info("Created goal",
		"name", name,
		"target", target.StringFixed(2),
		"monthly_needed", monthlyNeeded.StringFixed(2))

	return goal.Clone(), nil
}

// TrackPlan creates a goal from a successful target-based projection.
func (m *Manager) TrackPlan(name string, target decimal.Decimal, plan projection.ContributionPlan) (model.Goal, error) {
	return m.CreateGoal(name, target, plan.Date, plan.MonthlyNeeded)
}

// AddToGoal records a contribution and notifies any badge it unlocks.
func (m *Manager) AddToGoal(ctx context.Context, name string, amount decimal.Decimal) (model.Goal, error) {
	if !amount.IsPositive() {
		return model.Goal{}, common.NewValidationError("amount", "must be greater than zero")
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return model.Goal{}, ErrClosed
	}
	i := m.find(name)
	if i < 0 {
		m.mu.Unlock()
		return model.Goal{}, fmt.Errorf("%w: %q", ErrGoalNotFound, name)
	}

	goal := m.goals[i]
	goal.Saved = goal.Saved.Add(amount)
	m.record(goal.Name, model.TransactionAdd, amount)

	fresh := NewlyEarnedBadges(*goal, m.badges, goal.Shown)
	for _, b := range fresh {
		goal.Shown.Add(b.ID)
	}
	kinds := saveGoals | saveTransactions
	if len(fresh) > 0 {
		kinds |= saveShown
	}
	m.schedule(kinds)
	result := goal.Clone()
	m.mu.Unlock()

	slog.Debug("added to goal", "name", name, "amount", amount.StringFixed(2), "saved", result.Saved.StringFixed(2))

	m.notify(ctx, result, fresh)
	return result, nil
}

// WithdrawFromGoal records a withdrawal. Withdrawing more than the balance
// empties the goal instead of failing; the requested amount is recorded.
func (m *Manager) WithdrawFromGoal(_ context.Context, name string, amount decimal.Decimal) (model.Goal, error) {
	if !amount.IsPositive() {
		return model.Goal{}, common.NewValidationError("amount", "must be greater than zero")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return model.Goal{}, ErrClosed
	}
	i := m.find(name)
	if i < 0 {
		return model.Goal{}, fmt.Errorf("%w: %q", ErrGoalNotFound, name)
	}

	goal := m.goals[i]
	saved := goal.Saved.Sub(amount)
	if saved.IsNegative() {
		slog.Info("Withdrawal exceeds balance, emptying goal",
			"name", name,
			"requested", amount.StringFixed(2),
			"balance", goal.Saved.StringFixed(2))
		saved = decimal.Zero
	}
	goal.Saved = saved
	m.record(goal.Name, model.TransactionWithdraw, amount)
	m.schedule(saveGoals | saveTransactions)

	return goal.Clone(), nil
}

// DeleteGoal removes the goal together with its transactions and its
// shown-badge state. Asking the user for confirmation is the caller's job.
func (m *Manager) DeleteGoal(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	i := m.find(name)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrGoalNotFound, name)
	}

	m.goals = append(m.goals[:i], m.goals[i+1:]...)
	removed := m.ledger.RemoveGoal(name)
	m.schedule(saveAll)

	slog.Info("Deleted goal", "name", name, "transactions_removed", removed)
	return nil
}

// Goal returns a copy of the named goal.
func (m *Manager) Goal(name string) (model.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.find(name)
	if i < 0 {
		return model.Goal{}, fmt.Errorf("%w: %q", ErrGoalNotFound, name)
	}
	return m.goals[i].Clone(), nil
}

// Goals returns copies of every goal, newest first.
func (m *Manager) Goals() []model.Goal {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.Goal, len(m.goals))
	for i, g := range m.goals {
		out[i] = g.Clone()
	}
	return out
}

// Transactions returns the goal's ledger entries in insertion order.
func (m *Manager) Transactions(name string) ([]model.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.find(name) < 0 {
		return nil, fmt.Errorf("%w: %q", ErrGoalNotFound, name)
	}
	return m.ledger.ForGoal(name), nil
}

// AllTransactions returns every ledger entry in insertion order.
func (m *Manager) AllTransactions() []model.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ledger.All()
}

// Totals returns how much was added to and withdrawn from the goal.
func (m *Manager) Totals(name string) (added, withdrawn decimal.Decimal, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.find(name) < 0 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: %q", ErrGoalNotFound, name)
	}
	added, withdrawn = m.ledger.Totals(name)
	return added, withdrawn, nil
}

// EarnedBadges returns the badges the named goal currently qualifies for.
func (m *Manager) EarnedBadges(name string) ([]model.Badge, error) {
	goal, err := m.Goal(name)
	if err != nil {
		return nil, err
	}
	return EarnedBadges(goal, m.badges), nil
}

// Flush waits until every mutation so far has been handed to the store.
func (m *Manager) Flush(ctx context.Context) error {
	if m.persist == nil {
		return nil
	}
	return m.persist.flush(ctx)
}

// PersistError returns the most recent store failure, if any.
func (m *Manager) PersistError() error {
	if m.persist == nil {
		return nil
	}
	return m.persist.err()
}

// Close drains pending writes. The store itself stays open.
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	if m.persist == nil {
		return nil
	}
	return m.persist.close(ctx)
}

func (m *Manager) find(name string) int {
	for i, g := range m.goals {
		if g.Name == name {
			return i
		}
	}
	return -1
}

func (m *Manager) record(goal string, typ model.TransactionType, amount decimal.Decimal) {
	m.ledger.Append(model.Transaction{
		ID:     uuid.NewString(),
		Goal:   goal,
		Type:   typ,
		Amount: amount,
		Date:   m.clock.Now(),
	})
}

// schedule queues a snapshot of the requested collections. Callers hold mu,
// which keeps snapshots in mutation order.
func (m *Manager) schedule(kinds saveKind) {
	if m.persist == nil {
		return
	}

	s := snapshot{kinds: kinds}
	if kinds&saveGoals != 0 {
		s.goals = make([]model.Goal, len(m.goals))
		for i, g := range m.goals {
			s.goals[i] = g.Clone()
		}
	}
	if kinds&saveTransactions != 0 {
		s.transactions = m.ledger.All()
	}
	if kinds&saveShown != 0 {
		s.shown = make(map[string][]string, len(m.goals))
		for _, g := range m.goals {
			if len(g.Shown) > 0 {
				s.shown[g.Name] = g.Shown.IDs()
			}
		}
	}
	m.persist.enqueue(s)
}

func (m *Manager) notify(ctx context.Context, goal model.Goal, badges []model.Badge) {
	if m.notifier == nil {
		return
	}
	for _, b := range badges {
		m.notifier.BadgeEarned(ctx, goal, b)
	}
}
