// Package testutil provides test helpers shared across nest-egg packages.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/nest-egg/internal/model"
	"github.com/Veraticus/nest-egg/internal/storage"
	"github.com/shopspring/decimal"
)

// TestDB represents a migrated in-memory test database.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// SetupTestDB creates a new in-memory test database. It automatically
// handles migrations and cleanup.
//
// Example:
//
//	db := testutil.SetupTestDB(t)
//	db.SeedGoals(testutil.Goal("Car", "5000", now))
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{
		Storage: store,
		t:       t,
	}
}

// SeedGoals stores goals as the current snapshot.
func (db *TestDB) SeedGoals(goals ...model.Goal) {
	db.t.Helper()
	if err := db.Storage.SaveGoals(context.Background(), goals); err != nil {
		db.t.Fatalf("failed to seed goals: %v", err)
	}
}

// SeedTransactions stores transactions as the current ledger.
func (db *TestDB) SeedTransactions(txs ...model.Transaction) {
	db.t.Helper()
	if err := db.Storage.SaveTransactions(context.Background(), txs); err != nil {
		db.t.Fatalf("failed to seed transactions: %v", err)
	}
}

// Goal builds a goal due one year after now with nothing saved.
func Goal(name, target string, now time.Time) model.Goal {
	return model.Goal{
		Name:          name,
		Target:        decimal.RequireFromString(target),
		Date:          now.AddDate(1, 0, 0),
		MonthlyNeeded: decimal.Zero,
		Saved:         decimal.Zero,
		CreatedAt:     now,
		Shown:         model.NewBadgeSet(),
	}
}
