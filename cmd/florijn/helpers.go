package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/florijnhq/florijn/internal/common"
	"github.com/florijnhq/florijn/internal/config"
	"github.com/florijnhq/florijn/internal/ingest"
	"github.com/florijnhq/florijn/internal/model"
	"github.com/florijnhq/florijn/internal/service"
	"github.com/florijnhq/florijn/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/florijn/florijn.db"
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	// Initialize storage
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("could not open the rule database at %s", dbPath), err)
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, common.NewUserError("could not upgrade the rule database schema", err)
	}

	return store, nil
}

// auditSink returns the audit sink for the engine, or nil when audit
// writes are disabled.
func auditSink(store *storage.SQLiteStorage, disabled bool) service.AuditSink {
	if disabled {
		return nil
	}
	return store
}

// currentUser returns the user scope for rules and audit records.
func currentUser() string {
	user := viper.GetString("user")
	if user == "" {
		user = "default"
	}
	return user
}

// readTransactions reads a transaction CSV file from disk.
func readTransactions(path string, strict bool) ([]model.Transaction, []ingest.RowError, error) {
	f, err := os.Open(path) // #nosec G304 -- user-supplied input file
	if err != nil {
		return nil, nil, common.NewUserError(fmt.Sprintf("could not open transactions file %s", path), err)
	}
	defer func() { _ = f.Close() }()

	reader := ingest.NewReader()
	reader.Strict = strict

	result, err := reader.Read(f)
	if err != nil {
		return nil, nil, common.NewUserError(fmt.Sprintf("could not read transactions from %s", path), err)
	}

	return result.Transactions, result.Skipped, nil
}
