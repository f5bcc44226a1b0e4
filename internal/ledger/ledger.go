// Package ledger keeps the append-only log of contributions and withdrawals.
// Entries are stored in insertion order; callers reverse for display.
package ledger

import (
	"github.com/Veraticus/nest-egg/internal/model"
	"github.com/shopspring/decimal"
)

// Ledger is an insertion-ordered transaction log. It is not safe for
// concurrent use; the tracker serialises access to it.
type Ledger struct {
	entries []model.Transaction
}

// New creates a ledger seeded with previously stored entries.
func New(entries []model.Transaction) *Ledger {
	l := &Ledger{entries: make([]model.Transaction, 0, len(entries))}
	l.entries = append(l.entries, entries...)
	return l
}

// Append records tx at the end of the log.
func (l *Ledger) Append(tx model.Transaction) {
	l.entries = append(l.entries, tx)
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// All returns a copy of every entry in insertion order.
func (l *Ledger) All() []model.Transaction {
	out := make([]model.Transaction, len(l.entries))
	copy(out, l.entries)
	return out
}

// ForGoal returns the goal's entries in insertion order.
func (l *Ledger) ForGoal(goal string) []model.Transaction {
	var out []model.Transaction
	for _, tx := range l.entries {
		if tx.Goal == goal {
			out = append(out, tx)
		}
	}
	return out
}

// RemoveGoal deletes every entry owned by goal and reports how many went.
// This cascade is the only way entries leave the ledger.
func (l *Ledger) RemoveGoal(goal string) int {
	kept := l.entries[:0]
	removed := 0
	for _, tx := range l.entries {
		if tx.Goal == goal {
			removed++
			continue
		}
		kept = append(kept, tx)
	}
	clear(l.entries[len(kept):])
	l.entries = kept
	return removed
}

// Totals sums the goal's contributions and withdrawals separately.
func (l *Ledger) Totals(goal string) (added, withdrawn decimal.Decimal) {
	added, withdrawn = decimal.Zero, decimal.Zero
	for _, tx := range l.entries {
		if tx.Goal != goal {
			continue
		}
		switch tx.Type {
		case model.TransactionAdd:
			added = added.Add(tx.Amount)
		case model.TransactionWithdraw:
			withdrawn = withdrawn.Add(tx.Amount)
		}
	}
	return added, withdrawn
}

// NewestFirst returns a reversed copy of txs for display.
func NewestFirst(txs []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, len(txs))
	for i, tx := range txs {
		out[len(txs)-1-i] = tx
	}
	return out
}
