package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/securityinshadows/sish/internal/cli"
	"github.com/securityinshadows/sish/internal/ledger"
)

func editCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <expense|income> <ordinal> <amount|category|date> <value>",
		Short: "Edit one field of a record",
		Long: `Edit a record selected by its 1-based position in the listed order
(the ordinal printed by "sish report"). The store is updated before the
cached record, so a failed write changes nothing.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			ns, err := parseNamespace(args[0])
			if err != nil {
				return err
			}
			ordinal, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("ordinal must be a number, got %q", args[1])
			}

			field := ledger.Field(args[2])
			switch field {
			case ledger.FieldAmount, ledger.FieldCategory, ledger.FieldDate:
			default:
				return fmt.Errorf("field must be amount, category, or date, got %q", args[2])
			}

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			rec, err := l.Edit(ctx, ns, ordinal, field, args[3])
			if err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf(
				"Updated %s #%d: amount=%d category=%s date=%s", ns, ordinal, rec.Amount, rec.Category, rec.Date)))
			return nil
		},
	}
	return cmd
}
