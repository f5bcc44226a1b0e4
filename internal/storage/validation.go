// Package storage persists goals, their transaction ledger and shown badges.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/nest-egg/internal/model"
	"github.com/shopspring/decimal"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrInvalidGoal        = errors.New("invalid goal")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrUnknownDriver      = errors.New("unknown storage driver")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateGoals checks a full goal snapshot. An empty snapshot is valid.
func validateGoals(goals []model.Goal) error {
	seen := make(map[string]struct{}, len(goals))
	for i := range goals {
		if err := validateGoal(&goals[i]); err != nil {
			return fmt.Errorf("goal at index %d: %w", i, err)
		}
		if _, dup := seen[goals[i].Name]; dup {
			return fmt.Errorf("%w: duplicate name %q", ErrInvalidGoal, goals[i].Name)
		}
		seen[goals[i].Name] = struct{}{}
	}
	return nil
}

func validateGoal(g *model.Goal) error {
	if strings.TrimSpace(g.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidGoal)
	}
	if !g.Target.IsPositive() {
		return fmt.Errorf("%w: target must be positive", ErrInvalidGoal)
	}
	if g.Saved.IsNegative() {
		return fmt.Errorf("%w: saved cannot be negative", ErrInvalidGoal)
	}
	if g.Date.IsZero() {
		return fmt.Errorf("%w: missing target date", ErrInvalidGoal)
	}
	return nil
}

// validateTransactions checks a full ledger snapshot. An empty ledger is valid.
func validateTransactions(transactions []model.Transaction) error {
	for i := range transactions {
		if err := validateTransaction(&transactions[i]); err != nil {
			return fmt.Errorf("transaction at index %d: %w", i, err)
		}
	}
	return nil
}

func validateTransaction(txn *model.Transaction) error {
	if txn.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidTransaction)
	}
	if txn.Goal == "" {
		return fmt.Errorf("%w: missing goal", ErrInvalidTransaction)
	}
	if txn.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidTransaction)
	}
	if _, err := model.ParseTransactionType(string(txn.Type)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTransaction, err)
	}
	if !txn.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidTransaction)
	}
	return nil
}

// parseMoney reads a decimal stored as text.
func parseMoney(column, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("corrupt %s %q: %w", column, s, err)
	}
	return d, nil
}
