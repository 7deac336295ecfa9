package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/securityinshadows/sish/internal/model"
)

func TestRootCommandStructure(t *testing.T) {
	expected := []string{
		"add", "categories", "search", "edit", "delete",
		"report", "auth", "menu", "version",
	}

	registered := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		registered[cmd.Name()] = true
	}

	for _, name := range expected {
		assert.True(t, registered[name], "command %q not registered", name)
	}
}

func TestCategoriesSubcommands(t *testing.T) {
	cmd := categoriesCmd()

	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}

	for _, name := range []string{"list", "add", "delete"} {
		assert.True(t, names[name], "subcommand %q not registered", name)
	}
}

func TestParseNamespace(t *testing.T) {
	tests := []struct {
		arg     string
		want    model.Namespace
		wantErr bool
	}{
		{arg: "expense", want: model.NamespaceExpense},
		{arg: "income", want: model.NamespaceIncome},
		{arg: "expenses", wantErr: true},
		{arg: "", wantErr: true},
		{arg: "Expense", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := parseNamespace(tt.arg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
