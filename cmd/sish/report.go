package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/securityinshadows/sish/internal/cli"
	"github.com/securityinshadows/sish/internal/config"
	"github.com/securityinshadows/sish/internal/model"
	"github.com/securityinshadows/sish/internal/report"
)

func reportCmd() *cobra.Command {
	var toCSV bool

	cmd := &cobra.Command{
		Use:   "report [expense|income|all]",
		Short: "Print the tracker report",
		Long: `Print records with their selection ordinals, plus totals for the full
report. With --csv the report is also written as amount,category,date lines
(expense_report.csv, income_report.csv, or total_report.csv).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			scope := "all"
			if len(args) == 1 {
				scope = args[0]
			}
			if scope != "all" {
				if _, err := parseNamespace(scope); err != nil {
					return fmt.Errorf("report scope must be expense, income, or all, got %q", scope)
				}
			}

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			expenses := l.Records(model.NamespaceExpense)
			income := l.Records(model.NamespaceIncome)
			exportDir := config.ExportDir()

			switch scope {
			case "expense":
				if len(expenses) == 0 {
					fmt.Println("No expenses to report on.")
					return nil
				}
				if err := report.WriteRecords(os.Stdout, "Expense", expenses); err != nil {
					return err
				}
				if toCSV {
					return exportTo(filepath.Join(exportDir, "expense_report.csv"), expenses)
				}

			case "income":
				if len(income) == 0 {
					fmt.Println("No income to report on.")
					return nil
				}
				if err := report.WriteRecords(os.Stdout, "Income", income); err != nil {
					return err
				}
				if toCSV {
					return exportTo(filepath.Join(exportDir, "income_report.csv"), income)
				}

			default:
				if len(expenses) == 0 && len(income) == 0 {
					fmt.Println("No transactions to report on.")
					return nil
				}
				if err := report.WriteRecords(os.Stdout, "Expense", expenses); err != nil {
					return err
				}
				if err := report.WriteRecords(os.Stdout, "Income", income); err != nil {
					return err
				}
				if err := report.WriteSummary(os.Stdout, l); err != nil {
					return err
				}
				if toCSV {
					path := filepath.Join(exportDir, "total_report.csv")
					if err := report.ExportSummaryCSV(path, l); err != nil {
						return err
					}
					fmt.Println(cli.SuccessStyle.Render("Report written to " + path))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&toCSV, "csv", false, "also write the report as a CSV file")
	return cmd
}

func exportTo(path string, records []model.Record) error {
	if err := report.ExportCSV(path, records); err != nil {
		return err
	}
	fmt.Println(cli.SuccessStyle.Render("Report written to " + path))
	return nil
}
