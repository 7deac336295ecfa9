package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/securityinshadows/sish/internal/cli"
	"github.com/securityinshadows/sish/internal/config"
)

func menuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Run the interactive tracker session",
		Long: `Run the menu-driven session: create records, manage categories, search,
edit, print reports, and delete, one operation at a time.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			menu := cli.NewMenu(l, os.Stdin, os.Stdout, config.ExportDir())
			return menu.Run(ctx)
		},
	}
}
