package report

import (
	"fmt"
	"os"

	"github.com/securityinshadows/sish/internal/model"
)

// ExportCSV writes one "amount,category,date" line per record, no header.
// The file is truncated on each export. Values are not quoted or escaped:
// a category name containing a comma will produce an extra field. Known
// limitation, kept for compatibility with existing report consumers.
func ExportCSV(path string, records []model.Record) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close export file: %w", cerr)
		}
	}()

	for _, rec := range records {
		if _, err := fmt.Fprintf(f, "%d,%s,%s\n", rec.Amount, rec.Category, rec.Date); err != nil {
			return fmt.Errorf("failed to write export row: %w", err)
		}
	}
	return nil
}

// ExportSummaryCSV writes the three-line totals report.
func ExportSummaryCSV(path string, totals Totals) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close export file: %w", cerr)
		}
	}()

	_, err = fmt.Fprintf(f, "Total expenses: %d\nTotal income: %d\nTotal: %d\n",
		totals.TotalExpense(), totals.TotalIncome(), totals.Balance())
	if err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}
