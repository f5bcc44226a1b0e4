package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType identifies the direction of money moving in or out of a goal.
type TransactionType string

const (
	// TransactionAdd is a contribution towards a goal.
	TransactionAdd TransactionType = "Add"
	// TransactionWithdraw takes money out of a goal.
	TransactionWithdraw TransactionType = "Withdraw"
)

// ParseTransactionType accepts "add" or "withdraw" in any case.
func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "add":
		return TransactionAdd, nil
	case "withdraw":
		return TransactionWithdraw, nil
	default:
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
}

// Transaction is one recorded Add or Withdraw against a goal.
// Goal is a soft reference to the owning goal's name.
type Transaction struct {
	Date   time.Time
	ID     string
	Goal   string
	Type   TransactionType
	Amount decimal.Decimal
}

// Signed returns the amount with withdrawals negated.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == TransactionWithdraw {
		return t.Amount.Neg()
	}
	return t.Amount
}
