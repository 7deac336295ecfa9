package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/securityinshadows/sish/internal/ledger"
	"github.com/securityinshadows/sish/internal/model"
	"github.com/securityinshadows/sish/internal/report"
)

func searchCmd() *cobra.Command {
	var (
		amount   int64
		category string
		date     string
	)

	cmd := &cobra.Command{
		Use:   "search <expense|income>",
		Short: "Search records by amount, category, or date",
		Long: `Search one namespace's records. Criteria combine: --amount matches
exactly, --category matches case-insensitively, --date matches the ISO date.
No matches is reported, not an error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			ns, err := parseNamespace(args[0])
			if err != nil {
				return err
			}

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			query := ledger.Query{
				Category: category,
				ByAmount: cmd.Flags().Changed("amount"),
				Amount:   amount,
			}
			if date != "" {
				query.Date, err = ledger.NormalizeDate(date)
				if err != nil {
					return err
				}
			}

			var matches []model.Record
			for rec := range l.Search(ns, query) {
				matches = append(matches, rec)
			}

			if len(matches) == 0 {
				fmt.Println("No matching records found.")
				return nil
			}

			label := "Expense"
			if ns == model.NamespaceIncome {
				label = "Income"
			}
			return report.WriteRecords(os.Stdout, label, matches)
		},
	}

	cmd.Flags().Int64Var(&amount, "amount", 0, "match records with exactly this amount")
	cmd.Flags().StringVar(&category, "category", "", "match records in this category")
	cmd.Flags().StringVar(&date, "date", "", "match records on this date (YYYY-MM-DD)")
	return cmd
}
