package main

import (
	"context"
	"fmt"

	"github.com/securityinshadows/sish/internal/config"
	"github.com/securityinshadows/sish/internal/ledger"
	"github.com/securityinshadows/sish/internal/model"
	"github.com/securityinshadows/sish/internal/service"
	"github.com/securityinshadows/sish/internal/storage"
)

// initStorage initializes the storage service with proper path expansion
// and runs migrations.
func initStorage(ctx context.Context) (service.Storage, error) {
	store, err := storage.NewSQLiteStorage(config.DatabasePath())
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// openLedger opens storage and loads the ledger for the default acting
// user. The caller must Close the returned storage.
func openLedger(ctx context.Context) (*ledger.Ledger, service.Storage, error) {
	store, err := initStorage(ctx)
	if err != nil {
		return nil, nil, err
	}

	l, err := ledger.New(ctx, store, model.DefaultUserID)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	return l, store, nil
}

// parseNamespace maps the expense/income argument used by most commands.
func parseNamespace(arg string) (model.Namespace, error) {
	ns := model.Namespace(arg)
	if !ns.Valid() {
		return "", fmt.Errorf("namespace must be %q or %q, got %q",
			model.NamespaceExpense, model.NamespaceIncome, arg)
	}
	return ns, nil
}
