package storage

import (
	"context"
	"errors"
	"strings"

	"github.com/julianstephens/planme/internal/models"
)

// DocumentStore is everything the mood service needs from storage: a per-user
// document holding a date-keyed map of moods.
type DocumentStore interface {
	// Lifecycle
	Init(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error

	// Upsert sets document[key].moodLogs[field] = value, creating the
	// document if it does not exist. Other fields are left untouched.
	Upsert(ctx context.Context, key, field string, value models.MoodValue) error
	// Get returns the document for key, or nil with no error if there is none.
	Get(ctx context.Context, key string) (*models.UserDocument, error)

	// Describe returns a non-sensitive name for the backing store
	Describe() string
}

// Kind names a store backend
type Kind string

const (
	KindMongo    Kind = "mongo"
	KindPostgres Kind = "postgres"
	KindSQLite   Kind = "sqlite"
)

// ErrEmptyKey is returned when a write is attempted without a user id or date
var ErrEmptyKey = errors.New("document key and field must not be empty")

// DetectKind picks the backend for a store URI. Anything that is not a Mongo
// or Postgres URI is treated as a SQLite file path.
func DetectKind(uri string) Kind {
	switch {
	case strings.HasPrefix(uri, "mongodb://"), strings.HasPrefix(uri, "mongodb+srv://"):
		return KindMongo
	case strings.HasPrefix(uri, "postgres://"), strings.HasPrefix(uri, "postgresql://"):
		return KindPostgres
	default:
		return KindSQLite
	}
}

// ValidateKey rejects empty keys before they reach a backend
func ValidateKey(key, field string) error {
	if key == "" || field == "" {
		return ErrEmptyKey
	}
	return nil
}
