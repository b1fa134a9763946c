package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/planme/internal/config"
	"github.com/julianstephens/planme/internal/constants"
	"github.com/julianstephens/planme/internal/keyring"
	"github.com/julianstephens/planme/internal/storage"
)

type DoctorCmd struct {
	Timeout time.Duration `help:"Timeout for the store check." default:"5s"`
}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	report := func(name string, err error) {
		if err != nil {
			fmt.Printf("❌ %s: FAIL\n", name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
			return
		}
		fmt.Printf("✓ %s: OK\n", name)
	}

	// Check 1: Planner config and credential
	report("Planner config", ctx.Config.ValidatePlanner())

	// Check 2: Keyring availability (warning only)
	if keyring.IsAvailable() {
		fmt.Printf("✓ OS keyring: OK\n")
	} else {
		fmt.Printf("⚠ OS keyring: WARNING\n")
		fmt.Printf("   keyring unavailable; credentials must come from %s\n", config.CredentialEnv(ctx.Config.Planner.Provider))
	}

	// Check 3: Mood service config
	report("Mood service config", ctx.Config.ValidateMoods())

	// Check 4: Store reachable, then schema checks for SQL stores
	storeCtx, cancel := context.WithTimeout(context.Background(), cmd.Timeout)
	defer cancel()

	store, err := checkStoreReachable(storeCtx, ctx.Config)
	report("Store reachable", err)
	if store != nil {
		defer store.Close(context.Background())
		report("Schema version", checkSchemaVersion(store))
		report("Migrations complete", checkMigrationsComplete(store))
	} else {
		fmt.Printf("⊘ Schema version: SKIPPED (store not reachable)\n")
	}

	// Check 5: Backups present (warning only, SQLite stores)
	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	}

	// Check 6: Clock/timezone sanity
	report("Clock/timezone", checkClockTimezone())

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx context.Context, cfg *config.Config) (storage.DocumentStore, error) {
	store, err := NewStore(cfg)
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", store.Describe(), err)
	}
	if err := store.Ping(ctx); err != nil {
		store.Close(context.Background())
		return nil, fmt.Errorf("failed to ping %s: %w", store.Describe(), err)
	}
	return store, nil
}

func checkSchemaVersion(store storage.DocumentStore) error {
	m, ok := store.(migratable)
	if !ok {
		// Document stores have no schema version
		return nil
	}

	runner, err := m.Runner()
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

func checkMigrationsComplete(store storage.DocumentStore) error {
	m, ok := store.(migratable)
	if !ok {
		return nil
	}

	runner, err := m.Runner()
	if err != nil {
		return err
	}
	pending, err := runner.Pending()
	if err != nil {
		return fmt.Errorf("failed to check migrations: %w", err)
	}
	if pending > 0 {
		return fmt.Errorf("migrations incomplete: %d pending", pending)
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		// Not a SQLite store
		return nil
	}
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s (run '%s backup create')", mgr.Dir(), constants.AppName)
	}
	fmt.Printf("✓ Backups present: OK (%d)\n", len(backups))
	return nil
}

func checkClockTimezone() error {
	now := time.Now()

	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	_, offset := now.Zone()
	if offset == 0 && now.Location() == time.UTC {
		fmt.Printf("   Note: timezone is UTC\n")
	}

	return nil
}
