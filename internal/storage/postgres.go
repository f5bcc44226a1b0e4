package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/nest-egg/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// postgresMigrations mirror the SQLite schema. The applied version is kept in
// schema_version since Postgres has no user_version pragma.
var postgresMigrations = []struct {
	Description string
	Queries     []string
	Version     int
}{
	{
		Version:     1,
		Description: "Initial schema",
		Queries: []string{
			`CREATE TABLE IF NOT EXISTS goals (
				position INTEGER NOT NULL,
				name TEXT PRIMARY KEY,
				target TEXT NOT NULL,
				target_date TIMESTAMPTZ NOT NULL,
				monthly_needed TEXT NOT NULL,
				saved TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS goal_transactions (
				seq INTEGER PRIMARY KEY,
				id TEXT UNIQUE NOT NULL,
				goal TEXT NOT NULL,
				type TEXT NOT NULL CHECK (type IN ('Add', 'Withdraw')),
				amount TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_goal_transactions_goal ON goal_transactions(goal)`,
		},
	},
	{
		Version:     2,
		Description: "Track badges already shown per goal",
		Queries: []string{
			`CREATE TABLE IF NOT EXISTS shown_badges (
				goal TEXT NOT NULL,
				badge_id TEXT NOT NULL,
				PRIMARY KEY (goal, badge_id)
			)`,
		},
	},
}

// PostgresStorage implements service.GoalStore on a pgx connection pool.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresStorage connects to dsn and verifies the connection.
func NewPostgresStorage(ctx context.Context, dsn string) (*PostgresStorage, error) {
	if err := validateString(dsn, "dsn"); err != nil {
		return nil, err
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStorage{pool: pool}, nil
}

// Close releases every pooled connection.
func (s *PostgresStorage) Close() error {
	s.pool.Close()
	return nil
}

// Migrate applies all pending schema migrations.
func (s *PostgresStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return fmt.Errorf("failed to create schema_version: %w", err)
	}

	var current int
	err := s.pool.QueryRow(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&current)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range postgresMigrations {
		if migration.Version <= current {
			continue
		}

		err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
			for _, q := range migration.Queries {
				if _, err := tx.Exec(ctx, q); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			_, err := tx.Exec(ctx, `INSERT INTO schema_version (version) VALUES ($1)`, migration.Version)
			return err
		})
		if err != nil {
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}
	return nil
}

// LoadGoals returns every goal in display order, newest first.
func (s *PostgresStorage) LoadGoals(ctx context.Context) ([]model.Goal, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT name, target, target_date, monthly_needed, saved, created_at
		FROM goals
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer rows.Close()

	var goals []model.Goal
	for rows.Next() {
		var (
			g                      model.Goal
			target, monthly, saved string
		)
		if err := rows.Scan(&g.Name, &target, &g.Date, &monthly, &saved, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		if g.Target, err = parseMoney("target", target); err != nil {
			return nil, err
		}
		if g.MonthlyNeeded, err = parseMoney("monthly_needed", monthly); err != nil {
			return nil, err
		}
		if g.Saved, err = parseMoney("saved", saved); err != nil {
			return nil, err
		}
		g.Date = g.Date.Local()
		g.CreatedAt = g.CreatedAt.Local()
		g.Shown = model.NewBadgeSet()
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// SaveGoals replaces the stored goals with the given snapshot.
func (s *PostgresStorage) SaveGoals(ctx context.Context, goals []model.Goal) error {
	if err := validateGoals(goals); err != nil {
		return err
	}

	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM goals`); err != nil {
			return fmt.Errorf("failed to clear goals: %w", err)
		}
		_, err := tx.CopyFrom(ctx,
			pgx.Identifier{"goals"},
			[]string{"position", "name", "target", "target_date", "monthly_needed", "saved", "created_at"},
			pgx.CopyFromSlice(len(goals), func(i int) ([]any, error) {
				g := goals[i]
				return []any{i, g.Name, g.Target.String(), g.Date.UTC(), g.MonthlyNeeded.String(), g.Saved.String(), g.CreatedAt.UTC()}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("failed to save goals: %w", err)
		}
		return nil
	})
}

// LoadTransactions returns the whole ledger in insertion order.
func (s *PostgresStorage) LoadTransactions(ctx context.Context) ([]model.Transaction, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, goal, type, amount, created_at
		FROM goal_transactions
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txns []model.Transaction
	for rows.Next() {
		var (
			txn         model.Transaction
			typ, amount string
			date        time.Time
		)
		if err := rows.Scan(&txn.ID, &txn.Goal, &typ, &amount, &date); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if txn.Type, err = model.ParseTransactionType(typ); err != nil {
			return nil, fmt.Errorf("transaction %s: %w", txn.ID, err)
		}
		if txn.Amount, err = parseMoney("amount", amount); err != nil {
			return nil, err
		}
		txn.Date = date.Local()
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}

// SaveTransactions replaces the stored ledger with the given snapshot.
func (s *PostgresStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	if err := validateTransactions(transactions); err != nil {
		return err
	}

	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM goal_transactions`); err != nil {
			return fmt.Errorf("failed to clear transactions: %w", err)
		}
		_, err := tx.CopyFrom(ctx,
			pgx.Identifier{"goal_transactions"},
			[]string{"seq", "id", "goal", "type", "amount", "created_at"},
			pgx.CopyFromSlice(len(transactions), func(i int) ([]any, error) {
				t := transactions[i]
				return []any{i, t.ID, t.Goal, string(t.Type), t.Amount.String(), t.Date.UTC()}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("failed to save transactions: %w", err)
		}
		return nil
	})
}

// LoadShownBadges returns the badge ids already surfaced, keyed by goal.
func (s *PostgresStorage) LoadShownBadges(ctx context.Context) (map[string][]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT goal, badge_id FROM shown_badges ORDER BY goal, badge_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query shown badges: %w", err)
	}
	defer rows.Close()

	shown := make(map[string][]string)
	for rows.Next() {
		var goal, badgeID string
		if err := rows.Scan(&goal, &badgeID); err != nil {
			return nil, fmt.Errorf("failed to scan shown badge: %w", err)
		}
		shown[goal] = append(shown[goal], badgeID)
	}
	return shown, rows.Err()
}

// SaveShownBadges replaces the stored shown-badge state.
func (s *PostgresStorage) SaveShownBadges(ctx context.Context, shown map[string][]string) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM shown_badges`); err != nil {
			return fmt.Errorf("failed to clear shown badges: %w", err)
		}

		batch := &pgx.Batch{}
		for _, goal := range sortedKeys(shown) {
			for _, id := range shown[goal] {
				batch.Queue(`INSERT INTO shown_badges (goal, badge_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, goal, id)
			}
		}
		if batch.Len() == 0 {
			return nil
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to save shown badges: %w", err)
		}
		return nil
	})
}

