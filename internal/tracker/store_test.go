package tracker

import (
	"context"
	"errors"
	"sync"

	"github.com/Veraticus/nest-egg/internal/model"
	"github.com/stretchr/testify/mock"
)

// memStore is an in-memory GoalStore.
type memStore struct {
	shown        map[string][]string
	goals        []model.Goal
	transactions []model.Transaction
	saves        int
	mu           sync.Mutex
}

func (s *memStore) LoadGoals(_ context.Context) ([]model.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Goal(nil), s.goals...), nil
}

func (s *memStore) SaveGoals(_ context.Context, goals []model.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals = append([]model.Goal(nil), goals...)
	s.saves++
	return nil
}

func (s *memStore) LoadTransactions(_ context.Context) ([]model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Transaction(nil), s.transactions...), nil
}

func (s *memStore) SaveTransactions(_ context.Context, txs []model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append([]model.Transaction(nil), txs...)
	s.saves++
	return nil
}

func (s *memStore) LoadShownBadges(_ context.Context) (map[string][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string][]string, len(s.shown))
	for k, v := range s.shown {
		out[k] = append([]string(nil), v...)
	}
	return out, nil
}

func (s *memStore) SaveShownBadges(_ context.Context, shown map[string][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shown = shown
	s.saves++
	return nil
}

func (s *memStore) Close() error { return nil }

var errDiskFull = errors.New("disk full")

// failingStore loads nothing and fails every save.
type failingStore struct {
	memStore
	loadErr error
}

func (s *failingStore) LoadGoals(ctx context.Context) ([]model.Goal, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.memStore.LoadGoals(ctx)
}

func (s *failingStore) SaveGoals(context.Context, []model.Goal) error { return errDiskFull }

func (s *failingStore) SaveTransactions(context.Context, []model.Transaction) error {
	return errDiskFull
}

func (s *failingStore) SaveShownBadges(context.Context, map[string][]string) error {
	return errDiskFull
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) BadgeEarned(_ context.Context, goal model.Goal, badge model.Badge) {
	m.Called(goal.Name, badge.ID)
}
