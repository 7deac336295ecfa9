// Package report formats ledger contents into human-readable text and
// delimited exports.
package report

import (
	"fmt"
	"io"

	"github.com/securityinshadows/sish/internal/model"
)

// Totals is the aggregate view a summary is rendered from. *ledger.Ledger
// satisfies it.
type Totals interface {
	TotalExpense() int64
	TotalIncome() int64
	Balance() int64
}

// WriteRecords renders records as ordered, 1-indexed text blocks, one line
// per attribute. The ordinal printed here is the selection key the edit
// and delete flows accept.
func WriteRecords(w io.Writer, label string, records []model.Record) error {
	for i, rec := range records {
		if _, err := fmt.Fprintf(w, "%s #%d:\n", label, i+1); err != nil {
			return fmt.Errorf("failed to write record block: %w", err)
		}
		_, err := fmt.Fprintf(w, "  ID: %d\n  Amount: %d\n  Category: %s\n  Date: %s\n",
			rec.ID, rec.Amount, rec.Category, rec.Date)
		if err != nil {
			return fmt.Errorf("failed to write record block: %w", err)
		}
	}
	return nil
}

// WriteSummary emits total expense, total income, and balance.
func WriteSummary(w io.Writer, totals Totals) error {
	_, err := fmt.Fprintf(w, "Total expenses: %d\nTotal income: %d\nBalance: %d\n",
		totals.TotalExpense(), totals.TotalIncome(), totals.Balance())
	if err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}
