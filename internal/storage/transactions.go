package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Veraticus/nest-egg/internal/model"
)

// LoadTransactions returns the whole ledger in insertion order.
func (s *SQLiteStorage) LoadTransactions(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, goal, type, amount, created_at
		FROM goal_transactions
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var txns []model.Transaction
	for rows.Next() {
		var (
			txn    model.Transaction
			typ    string
			amount string
			date   time.Time
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
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransactions(transactions); err != nil {
		return err
	}

	return s.replace(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM goal_transactions`); err != nil {
			return fmt.Errorf("failed to clear transactions: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO goal_transactions (seq, id, goal, type, amount, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for i, txn := range transactions {
			if _, err := stmt.ExecContext(ctx,
				i,
				txn.ID,
				txn.Goal,
				string(txn.Type),
				txn.Amount.String(),
				txn.Date.UTC(),
			); err != nil {
				return fmt.Errorf("failed to save transaction %s: %w", txn.ID, err)
			}
		}
		return nil
	})
}
