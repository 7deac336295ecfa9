package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/securityinshadows/sish/internal/cli"
	"github.com/securityinshadows/sish/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage expense and income categories",
		Long:  `List, add, and delete the categories records are filed under.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		Long:  `Display both namespaces' categories with their selection ordinals.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			for _, ns := range []model.Namespace{model.NamespaceExpense, model.NamespaceIncome} {
				names := l.Categories().Names(ns)
				fmt.Fprintf(w, "%s\n", cli.TitleStyle.Render(strings.ToUpper(string(ns))+" CATEGORIES"))
				if len(names) == 0 {
					fmt.Fprintf(w, "%s\n", cli.SubtleStyle.Render("(none)"))
					continue
				}
				for i, name := range names {
					fmt.Fprintf(w, "#%d\t%s\n", i+1, name)
				}
			}
			return nil
		},
	}
}

func addCategoryCmd() *cobra.Command {
	var namespace string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Long:  `Create a new category in one namespace. Names are trimmed and lowercased.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			ns, err := parseNamespace(namespace)
			if err != nil {
				return err
			}

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			cat, err := l.Categories().Create(ctx, ns, args[0])
			if err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf(
				"Created %s category %q (ID %d)", ns, cat.Name, cat.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&namespace, "namespace", "n", "expense", "namespace to create in (expense or income)")
	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete an expense category",
		Long: `Delete an expense category. Every expense filed under it is moved to
the reserved "uncategorized" category first, so no record is left dangling.
Income categories cannot be deleted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			name := args[0]
			if !skipConfirm {
				fmt.Printf("Are you sure you want to delete the category %q? (y/n): ", name)
				var answer string
				if _, err := fmt.Scanln(&answer); err != nil || !strings.EqualFold(strings.TrimSpace(answer), "y") {
					fmt.Println("Category deletion aborted.")
					return nil
				}
			}

			if err := l.DeleteCategory(ctx, name); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf(
				"Category %q deleted; its records were moved to %q.", name, model.SentinelCategory)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
