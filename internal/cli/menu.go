package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/securityinshadows/sish/internal/ledger"
	"github.com/securityinshadows/sish/internal/model"
	"github.com/securityinshadows/sish/internal/report"
)

// maxAttempts bounds every re-prompt loop. Sustained bad input falls back
// to the main menu instead of looping (or recursing) forever.
const maxAttempts = 3

// errTooManyAttempts aborts the current flow after repeated invalid input.
var errTooManyAttempts = errors.New("too many invalid attempts")

// Menu drives the interactive tracker session: a top-level selection loop
// dispatching into create/manage/search/edit/report/delete flows. All
// flows run strictly sequentially; a confirmation declined leaves every
// piece of state untouched.
type Menu struct {
	ledger    *ledger.Ledger
	reader    *Reader
	out       io.Writer
	exportDir string
}

// NewMenu creates a menu over the given ledger, reading selections from in
// and writing to out. CSV exports land in exportDir.
func NewMenu(l *ledger.Ledger, in io.Reader, out io.Writer, exportDir string) *Menu {
	return &Menu{
		ledger:    l,
		reader:    NewReader(in),
		out:       out,
		exportDir: exportDir,
	}
}

// Run executes the menu loop until the user exits or input ends. Flow
// errors are reported and recovered; only input exhaustion, context
// cancellation, or a write failure on out ends the session.
func (m *Menu) Run(ctx context.Context) error {
	for {
		fmt.Fprintln(m.out, TitleStyle.Render("Welcome to SiSh Tracker."))
		fmt.Fprintln(m.out, "1 - Create Records")
		fmt.Fprintln(m.out, "2 - Category Manager")
		fmt.Fprintln(m.out, "3 - Search Records")
		fmt.Fprintln(m.out, "4 - Edit Records")
		fmt.Fprintln(m.out, "p - Print Tracker Report")
		fmt.Fprintln(m.out, "d - Delete Records")
		fmt.Fprintln(m.out, "e - Exit Program")

		choice, err := m.prompt(ctx, "Enter your choice: ")
		if err != nil {
			return m.sessionEnd(err)
		}

		var flowErr error
		switch strings.ToLower(choice) {
		case "1":
			flowErr = m.createRecords(ctx)
		case "2":
			flowErr = m.categoryManager(ctx)
		case "3":
			flowErr = m.searchRecords(ctx)
		case "4":
			flowErr = m.editRecords(ctx)
		case "p":
			flowErr = m.printReport(ctx)
		case "d":
			flowErr = m.deleteRecords(ctx)
		case "e":
			fmt.Fprintln(m.out, "See ya.")
			return nil
		default:
			fmt.Fprintln(m.out, ErrorStyle.Render("Invalid input, try again."))
			continue
		}

		if flowErr != nil {
			if errors.Is(flowErr, io.EOF) || errors.Is(flowErr, ErrInputCancelled) {
				return m.sessionEnd(flowErr)
			}
			// Recoverable: report it and return to the menu.
			fmt.Fprintln(m.out, ErrorStyle.Render(flowErr.Error()))
		}

		again, err := m.confirm(ctx, "Return to main menu?")
		if err != nil {
			return m.sessionEnd(err)
		}
		if !again {
			fmt.Fprintln(m.out, "See ya.")
			return nil
		}
	}
}

func (m *Menu) sessionEnd(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, ErrInputCancelled) || errors.Is(err, errTooManyAttempts) {
		return nil
	}
	return err
}

// createRecords is the "1 - Create Records" flow.
func (m *Menu) createRecords(ctx context.Context) error {
	ns, err := m.pickNamespace(ctx, "1 - Input expenses\n2 - Input incomes", "1", "2")
	if err != nil {
		return err
	}

	amount, err := m.promptAmount(ctx, fmt.Sprintf("Input the %s amount: ", ns))
	if err != nil {
		return err
	}

	category, err := m.selectCategory(ctx, ns)
	if err != nil {
		return err
	}

	date, err := m.promptDate(ctx)
	if err != nil {
		return err
	}

	rec, err := m.ledger.Add(ctx, ns, amount, category, date)
	if err != nil {
		return err
	}

	fmt.Fprintln(m.out, SuccessStyle.Render(fmt.Sprintf("%s saved (ID %d).", recordLabel(ns), rec.ID)))
	return nil
}

// categoryManager is the "2 - Category Manager" flow.
func (m *Menu) categoryManager(ctx context.Context) error {
	choice, err := m.choose(ctx, "1 - Create Categories\n2 - Delete Categories (Expense only)", "1", "2")
	if err != nil {
		return err
	}

	if choice == "1" {
		ns, nsErr := m.pickNamespace(ctx, "e - Expense category\ni - Income category", "e", "i")
		if nsErr != nil {
			return nsErr
		}
		name, nameErr := m.prompt(ctx, "Create a new category: ")
		if nameErr != nil {
			return nameErr
		}
		cat, createErr := m.ledger.Categories().Create(ctx, ns, name)
		if createErr != nil {
			return createErr
		}
		fmt.Fprintln(m.out, SuccessStyle.Render(fmt.Sprintf("Category %q saved.", cat.Name)))
		return nil
	}

	names := m.ledger.Categories().Names(model.NamespaceExpense)
	if len(names) == 0 {
		fmt.Fprintln(m.out, "No categories yet.")
		return nil
	}

	fmt.Fprintln(m.out, "Select a category to delete:")
	for i, name := range names {
		fmt.Fprintf(m.out, "Category #%d: %s\n", i+1, name)
	}

	ordinal, err := m.promptOrdinal(ctx, "Enter the category number: ", len(names))
	if err != nil {
		return err
	}
	name, err := ledger.Resolve(ordinal, names)
	if err != nil {
		return err
	}

	ok, err := m.confirm(ctx, fmt.Sprintf("Are you sure you want to delete the category %q?", name))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(m.out, WarningStyle.Render("Category deletion aborted."))
		return nil
	}

	if err := m.ledger.DeleteCategory(ctx, name); err != nil {
		return err
	}
	fmt.Fprintln(m.out, SuccessStyle.Render(fmt.Sprintf(
		"Category %q deleted; its records were moved to %q.", name, model.SentinelCategory)))
	return nil
}

// searchRecords is the "3 - Search Records" flow.
func (m *Menu) searchRecords(ctx context.Context) error {
	ns, err := m.pickNamespace(ctx, "e - Search expenses\ni - Search income", "e", "i")
	if err != nil {
		return err
	}

	choice, err := m.choose(ctx, "Search by:\n1 - Amount\n2 - Category\n3 - Date", "1", "2", "3")
	if err != nil {
		return err
	}

	var query ledger.Query
	switch choice {
	case "1":
		amount, aerr := m.promptAmount(ctx, "Enter the amount to search for: ")
		if aerr != nil {
			return aerr
		}
		query.Amount = amount
		query.ByAmount = true
	case "2":
		category, cerr := m.prompt(ctx, "Enter the category to search for: ")
		if cerr != nil {
			return cerr
		}
		query.Category = category
	case "3":
		date, derr := m.promptDate(ctx)
		if derr != nil {
			return derr
		}
		query.Date = date
	}

	var matches []model.Record
	for rec := range m.ledger.Search(ns, query) {
		matches = append(matches, rec)
	}
	if len(matches) == 0 {
		fmt.Fprintln(m.out, "No matching records found.")
		return nil
	}
	return report.WriteRecords(m.out, recordLabel(ns), matches)
}

// editRecords is the "4 - Edit Records" flow.
func (m *Menu) editRecords(ctx context.Context) error {
	ns, err := m.pickNamespace(ctx, "e - Edit expense records\ni - Edit income records", "e", "i")
	if err != nil {
		return err
	}

	records := m.ledger.Records(ns)
	if len(records) == 0 {
		fmt.Fprintf(m.out, "No %s records yet.\n", ns)
		return nil
	}
	if err := report.WriteRecords(m.out, recordLabel(ns), records); err != nil {
		return err
	}

	ordinal, err := m.promptOrdinal(ctx,
		fmt.Sprintf("Enter the %s record number you want to edit: ", ns), len(records))
	if err != nil {
		return err
	}

	choice, err := m.choose(ctx, "What would you like to edit?\n1 - Amount\n2 - Category\n3 - Date", "1", "2", "3")
	if err != nil {
		return err
	}

	var field ledger.Field
	var value string
	switch choice {
	case "1":
		field = ledger.FieldAmount
		value, err = m.prompt(ctx, "Enter the new amount: ")
	case "2":
		field = ledger.FieldCategory
		value, err = m.selectCategory(ctx, ns)
	case "3":
		field = ledger.FieldDate
		value, err = m.promptDate(ctx)
	}
	if err != nil {
		return err
	}

	if _, err := m.ledger.Edit(ctx, ns, ordinal, field, value); err != nil {
		return err
	}
	fmt.Fprintln(m.out, SuccessStyle.Render(fmt.Sprintf("%s updated successfully.", recordLabel(ns))))
	return nil
}

// deleteRecords is the "d - Delete Records" flow.
func (m *Menu) deleteRecords(ctx context.Context) error {
	ns, err := m.pickNamespace(ctx, "e - Delete expense records\ni - Delete income records", "e", "i")
	if err != nil {
		return err
	}

	records := m.ledger.Records(ns)
	if len(records) == 0 {
		fmt.Fprintf(m.out, "No %s records yet.\n", ns)
		return nil
	}
	if err := report.WriteRecords(m.out, recordLabel(ns), records); err != nil {
		return err
	}

	ordinal, err := m.promptOrdinal(ctx,
		fmt.Sprintf("Enter the %s record number you want to delete: ", ns), len(records))
	if err != nil {
		return err
	}

	ok, err := m.confirm(ctx, fmt.Sprintf("Are you sure you want to delete %s record #%d?", ns, ordinal))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(m.out, WarningStyle.Render("Deletion aborted."))
		return nil
	}

	rec, err := m.ledger.Delete(ctx, ns, ordinal)
	if err != nil {
		return err
	}
	fmt.Fprintln(m.out, SuccessStyle.Render(fmt.Sprintf(
		"%s record #%d (ID %d) deleted successfully.", recordLabel(ns), ordinal, rec.ID)))
	return nil
}

// printReport is the "p - Print Tracker Report" flow.
func (m *Menu) printReport(ctx context.Context) error {
	choice, err := m.choose(ctx,
		"Would you like to:\n1 - Print Expense Report\n2 - Print Income Report\n3 - Print Full Report",
		"1", "2", "3")
	if err != nil {
		return err
	}

	expenses := m.ledger.Records(model.NamespaceExpense)
	income := m.ledger.Records(model.NamespaceIncome)

	switch choice {
	case "1":
		if len(expenses) == 0 {
			fmt.Fprintln(m.out, "No expenses to report on.")
			return nil
		}
		fmt.Fprintln(m.out, "Here is your expense report:")
		if err := report.WriteRecords(m.out, "Expense", expenses); err != nil {
			return err
		}
		return m.offerExport(ctx, "expense_report.csv", expenses)

	case "2":
		if len(income) == 0 {
			fmt.Fprintln(m.out, "No income to report on.")
			return nil
		}
		fmt.Fprintln(m.out, "Here is your income report:")
		if err := report.WriteRecords(m.out, "Income", income); err != nil {
			return err
		}
		return m.offerExport(ctx, "income_report.csv", income)

	default:
		if len(expenses) == 0 && len(income) == 0 {
			fmt.Fprintln(m.out, "No transactions to report on.")
			return nil
		}
		fmt.Fprintln(m.out, "Here is your full report:")
		if err := report.WriteRecords(m.out, "Expense", expenses); err != nil {
			return err
		}
		if err := report.WriteRecords(m.out, "Income", income); err != nil {
			return err
		}
		if err := report.WriteSummary(m.out, m.ledger); err != nil {
			return err
		}

		ok, cerr := m.confirm(ctx, "Do you want to export the report as CSV?")
		if cerr != nil || !ok {
			return cerr
		}
		path := filepath.Join(m.exportDir, "total_report.csv")
		if err := report.ExportSummaryCSV(path, m.ledger); err != nil {
			return err
		}
		fmt.Fprintln(m.out, SuccessStyle.Render("Report written to "+path))
		return nil
	}
}

func (m *Menu) offerExport(ctx context.Context, filename string, records []model.Record) error {
	ok, err := m.confirm(ctx, "Do you want to export the report as CSV?")
	if err != nil || !ok {
		return err
	}
	path := filepath.Join(m.exportDir, filename)
	if err := report.ExportCSV(path, records); err != nil {
		return err
	}
	fmt.Fprintln(m.out, SuccessStyle.Render("Report written to "+path))
	return nil
}

// selectCategory renders a namespace's categories with 1-based ordinals
// and returns the picked name. In the expense namespace "c" creates a new
// category first; the loop stays bounded either way.
func (m *Menu) selectCategory(ctx context.Context, ns model.Namespace) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		names := m.ledger.Categories().Names(ns)

		if len(names) == 0 {
			if ns == model.NamespaceIncome {
				return "", fmt.Errorf("no income categories available")
			}
			fmt.Fprintln(m.out, "No categories yet. Create one first.")
			name, err := m.prompt(ctx, "Create a new category: ")
			if err != nil {
				return "", err
			}
			if _, err := m.ledger.Categories().Create(ctx, ns, name); err != nil {
				return "", err
			}
			continue
		}

		for i, name := range names {
			fmt.Fprintf(m.out, "Category #%d: %s\n", i+1, name)
		}
		promptText := "Enter the category number: "
		if ns == model.NamespaceExpense {
			promptText = "Enter the category number or 'c' to create: "
		}

		input, err := m.prompt(ctx, promptText)
		if err != nil {
			return "", err
		}

		if ns == model.NamespaceExpense && strings.EqualFold(input, "c") {
			name, perr := m.prompt(ctx, "Create a new category: ")
			if perr != nil {
				return "", perr
			}
			if _, cerr := m.ledger.Categories().Create(ctx, ns, name); cerr != nil {
				return "", cerr
			}
			continue
		}

		ordinal, err := strconv.Atoi(input)
		if err == nil {
			name, rerr := ledger.Resolve(ordinal, names)
			if rerr == nil {
				fmt.Fprintf(m.out, "You selected: %s\n", name)
				return name, nil
			}
		}
		fmt.Fprintln(m.out, ErrorStyle.Render("Invalid selection. Please try again."))
	}
	return "", errTooManyAttempts
}

func (m *Menu) pickNamespace(ctx context.Context, menu string, expenseKey, incomeKey string) (model.Namespace, error) {
	choice, err := m.choose(ctx, menu, expenseKey, incomeKey)
	if err != nil {
		return "", err
	}
	if choice == incomeKey {
		return model.NamespaceIncome, nil
	}
	return model.NamespaceExpense, nil
}

// choose prints a sub-menu and reads one of the valid keys,
// case-insensitively, re-prompting up to maxAttempts times.
func (m *Menu) choose(ctx context.Context, menu string, valid ...string) (string, error) {
	fmt.Fprintln(m.out, menu)
	for attempt := 0; attempt < maxAttempts; attempt++ {
		input, err := m.prompt(ctx, "Enter your choice: ")
		if err != nil {
			return "", err
		}
		for _, v := range valid {
			if strings.EqualFold(input, v) {
				return v, nil
			}
		}
		fmt.Fprintln(m.out, ErrorStyle.Render("Invalid input, try again."))
	}
	return "", errTooManyAttempts
}

func (m *Menu) promptAmount(ctx context.Context, msg string) (int64, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		input, err := m.prompt(ctx, msg)
		if err != nil {
			return 0, err
		}
		amount, err := strconv.ParseInt(input, 10, 64)
		if err == nil && amount > 0 {
			return amount, nil
		}
		fmt.Fprintln(m.out, ErrorStyle.Render("Amount must be a positive number. Try again."))
	}
	return 0, errTooManyAttempts
}

func (m *Menu) promptDate(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		input, err := m.prompt(ctx, "Input the date (YYYY-MM-DD or YYYY/MM/DD): ")
		if err != nil {
			return "", err
		}
		date, err := ledger.NormalizeDate(input)
		if err == nil {
			return date, nil
		}
		fmt.Fprintln(m.out, ErrorStyle.Render("Invalid date format. Please enter YYYY-MM-DD or YYYY/MM/DD."))
	}
	return "", errTooManyAttempts
}

func (m *Menu) promptOrdinal(ctx context.Context, msg string, count int) (int, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		input, err := m.prompt(ctx, msg)
		if err != nil {
			return 0, err
		}
		ordinal, err := strconv.Atoi(input)
		if err == nil && ordinal >= 1 && ordinal <= count {
			return ordinal, nil
		}
		fmt.Fprintln(m.out, ErrorStyle.Render("Invalid record number. Please try again."))
	}
	return 0, errTooManyAttempts
}

// confirm asks a y/n question. Anything other than an explicit "y" after
// maxAttempts counts as a decline, leaving state untouched.
func (m *Menu) confirm(ctx context.Context, msg string) (bool, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		input, err := m.prompt(ctx, msg+" (y/n): ")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(input) {
		case "y":
			return true, nil
		case "n":
			return false, nil
		}
		fmt.Fprintln(m.out, ErrorStyle.Render("Invalid input, try again."))
	}
	return false, nil
}

func (m *Menu) prompt(ctx context.Context, msg string) (string, error) {
	if _, err := fmt.Fprint(m.out, msg); err != nil {
		return "", err
	}
	return m.reader.ReadLine(ctx)
}

func recordLabel(ns model.Namespace) string {
	if ns == model.NamespaceIncome {
		return "Income"
	}
	return "Expense"
}
