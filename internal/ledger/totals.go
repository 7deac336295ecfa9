package ledger

import "github.com/securityinshadows/sish/internal/model"

// Totals are recomputed from scratch on every call. Ledgers are small and
// the recompute keeps the cache the single source of truth; nothing is
// incrementally maintained or stored.

// TotalExpense sums all cached expense amounts. An empty ledger totals 0.
func (l *Ledger) TotalExpense() int64 {
	return sumAmounts(l.expenses)
}

// TotalIncome sums all cached income amounts. An empty ledger totals 0.
func (l *Ledger) TotalIncome() int64 {
	return sumAmounts(l.income)
}

// Balance is total income minus total expense.
func (l *Ledger) Balance() int64 {
	return l.TotalIncome() - l.TotalExpense()
}

func sumAmounts(records []model.Record) int64 {
	var total int64
	for _, rec := range records {
		total += rec.Amount
	}
	return total
}
