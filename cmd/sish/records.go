package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/securityinshadows/sish/internal/cli"
)

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <expense|income> <amount> <category> <date>",
		Short: "Record a new expense or income",
		Long: `Record a new ledger entry. The amount must be a positive whole number,
the category must already exist in the matching namespace, and the date is
YYYY-MM-DD (slashes accepted).`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			ns, err := parseNamespace(args[0])
			if err != nil {
				return err
			}
			amount, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("amount must be a whole number, got %q", args[1])
			}

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			rec, err := l.Add(ctx, ns, amount, args[2], args[3])
			if err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf(
				"Recorded %s of %d under %q on %s (ID %d)", ns, rec.Amount, rec.Category, rec.Date, rec.ID)))
			return nil
		},
	}
	return cmd
}
