package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianstephens/planme/internal/backup"
	"github.com/julianstephens/planme/internal/config"
	"github.com/julianstephens/planme/internal/constants"
	"github.com/julianstephens/planme/internal/llm"
	"github.com/julianstephens/planme/internal/llm/gemini"
	"github.com/julianstephens/planme/internal/llm/openrouter"
	"github.com/julianstephens/planme/internal/migration"
	"github.com/julianstephens/planme/internal/planner"
	"github.com/julianstephens/planme/internal/storage"
	"github.com/julianstephens/planme/internal/storage/mongo"
	"github.com/julianstephens/planme/internal/storage/postgres"
	"github.com/julianstephens/planme/internal/storage/sqlite"
)

type Context struct {
	Config *config.Config
}

// migratable is implemented by the SQL stores
type migratable interface {
	Runner() (*migration.Runner, error)
}

// NewStore picks the store backend from the configured URI.
func NewStore(cfg *config.Config) (storage.DocumentStore, error) {
	uri := strings.TrimSpace(cfg.Moods.Store)
	if uri == "" {
		return nil, fmt.Errorf("no store configured")
	}

	switch storage.DetectKind(uri) {
	case storage.KindMongo:
		return mongo.New(uri, cfg.Moods.Database), nil
	case storage.KindPostgres:
		if _, err := postgres.ValidateConnString(uri); err != nil {
			return nil, err
		}
		return postgres.New(uri), nil
	default:
		store := sqlite.NewStore(uri)
		store.SetSnapshotter(backup.NewManager(uri).Create)
		return store, nil
	}
}

// NewProvider builds the LLM provider named in the planner config.
func NewProvider(ctx context.Context, cfg *config.Config) (llm.Provider, error) {
	p := cfg.Planner
	switch p.Provider {
	case constants.ProviderOpenRouter:
		return openrouter.NewClient(p.BaseURL, p.APIKey, p.Model), nil
	case constants.ProviderGemini:
		provider, err := gemini.NewProvider(ctx, p.APIKey, p.Model)
		if err != nil {
			return nil, err
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", p.Provider)
	}
}

// NewPlanner wires the configured provider into a planner.
func NewPlanner(ctx context.Context, cfg *config.Config) (*planner.Planner, error) {
	provider, err := NewProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}

	opts := planner.DefaultOptions()
	opts.Temperature = cfg.Planner.Temperature
	opts.MaxTokens = cfg.Planner.MaxTokens

	return planner.New(provider, opts), nil
}
