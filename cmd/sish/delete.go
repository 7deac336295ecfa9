package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/securityinshadows/sish/internal/cli"
)

func deleteCmd() *cobra.Command {
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:   "delete <expense|income> <ordinal>",
		Short: "Delete a record",
		Long: `Delete a record selected by its 1-based position in the listed order.
Declining the confirmation leaves everything unchanged.`,
		Args: cobra.ExactArgs(2),
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

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if !skipConfirm {
				fmt.Printf("Are you sure you want to delete %s record #%d? (y/n): ", ns, ordinal)
				var answer string
				if _, err := fmt.Scanln(&answer); err != nil || !strings.EqualFold(strings.TrimSpace(answer), "y") {
					fmt.Println("Deletion aborted.")
					return nil
				}
			}

			rec, err := l.Delete(ctx, ns, ordinal)
			if err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf(
				"Deleted %s record #%d (ID %d).", ns, ordinal, rec.ID)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
