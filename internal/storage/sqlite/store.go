package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/planme/internal/logger"
	"github.com/julianstephens/planme/internal/migration"
	"github.com/julianstephens/planme/internal/models"
	"github.com/julianstephens/planme/internal/storage"
	"github.com/julianstephens/planme/migrations"
)

type Store struct {
	path string
	db   *sql.DB

	snapshot func(context.Context) (string, error)
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

// SetSnapshotter registers fn to run before migrations are applied to a
// database that already has a schema.
func (s *Store) SetSnapshotter(fn func(context.Context) (string, error)) {
	s.snapshot = fn
}

// Init opens the database file, creating it and its directory if needed,
// and applies any pending migrations.
func (s *Store) Init(ctx context.Context) error {
	if s.db != nil {
		return nil
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows a single writer; serialize through one connection
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.runMigrations(ctx); err != nil {
		// Leave the store uninitialized so a later Init retries
		db.Close()
		s.db = nil
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("storage not initialized")
	}
	return s.db.PingContext(ctx)
}

func (s *Store) Close(context.Context) error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) runMigrations(ctx context.Context) error {
	runner, err := s.Runner()
	if err != nil {
		return err
	}

	if s.snapshot != nil {
		if err := s.snapshotBeforeMigrating(ctx, runner); err != nil {
			return err
		}
	}

	_, err = runner.ApplyMigrations(func(msg string) {
		logger.Info(msg, "store", "sqlite")
	})
	return err
}

func (s *Store) snapshotBeforeMigrating(ctx context.Context, runner *migration.Runner) error {
	current, err := runner.GetCurrentVersion()
	if err != nil {
		return err
	}
	pending, err := runner.Pending()
	if err != nil {
		return err
	}
	if current == 0 || pending == 0 {
		return nil
	}

	path, err := s.snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to back up database before migrating: %w", err)
	}
	logger.Info("Backed up database before migrating", "path", path, "from_version", current)
	return nil
}

// Runner exposes the migration runner for diagnostics
func (s *Store) Runner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS, migration.DialectSQLite), nil
}

func (s *Store) Upsert(ctx context.Context, key, field string, value models.MoodValue) error {
	if err := storage.ValidateKey(key, field); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_moods (user_id, log_date, mood, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, log_date) DO UPDATE SET
			mood = excluded.mood,
			updated_at = excluded.updated_at`,
		key, field, value.Mood, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to upsert mood: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (*models.UserDocument, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT log_date, mood FROM user_moods WHERE user_id = ?`, key)
	if err != nil {
		return nil, fmt.Errorf("failed to query moods: %w", err)
	}
	defer rows.Close()

	var doc *models.UserDocument
	for rows.Next() {
		var date, mood string
		if err := rows.Scan(&date, &mood); err != nil {
			return nil, err
		}
		if doc == nil {
			doc = &models.UserDocument{UserID: key, MoodLogs: make(map[string]models.MoodValue)}
		}
		doc.MoodLogs[date] = models.MoodValue{Mood: mood}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return doc, nil
}

func (s *Store) Describe() string {
	return s.path
}

// GetDB returns the underlying database connection.
// Returns nil if the database has not been initialized.
func (s *Store) GetDB() *sql.DB {
	return s.db
}
