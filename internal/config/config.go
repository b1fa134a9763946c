// Package config builds the explicit configuration object both services run on.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/planme/internal/constants"
	apperrors "github.com/julianstephens/planme/internal/errors"
	"github.com/julianstephens/planme/internal/keyring"
)

type Config struct {
	Planner PlannerConfig `toml:"planner" yaml:"planner" json:"planner"`
	Moods   MoodsConfig   `toml:"moods" yaml:"moods" json:"moods"`
	Log     LogConfig     `toml:"log" yaml:"log" json:"log"`
}

// PlannerConfig configures the planning service and its LLM provider.
type PlannerConfig struct {
	Addr     string `toml:"addr" yaml:"addr" json:"addr"`
	Provider string `toml:"provider" yaml:"provider" json:"provider"`
	// APIKey is normally left out of files and read from the environment or keyring.
	APIKey      string  `toml:"api_key" yaml:"api_key" json:"api_key,omitempty"`
	BaseURL     string  `toml:"base_url" yaml:"base_url" json:"base_url"`
	Model       string  `toml:"model" yaml:"model" json:"model"`
	Temperature float64 `toml:"temperature" yaml:"temperature" json:"temperature"`
	MaxTokens   int     `toml:"max_tokens" yaml:"max_tokens" json:"max_tokens"`
}

// MoodsConfig configures the mood-log service and its store.
type MoodsConfig struct {
	Addr string `toml:"addr" yaml:"addr" json:"addr"`
	// Store is a mongodb:// or postgres:// URI, or a SQLite file path.
	Store    string `toml:"store" yaml:"store" json:"store"`
	Database string `toml:"database" yaml:"database" json:"database"`
}

type LogConfig struct {
	Dir   string `toml:"dir" yaml:"dir" json:"dir"`
	Debug bool   `toml:"debug" yaml:"debug" json:"debug"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Planner: PlannerConfig{
			Addr:        constants.DefaultPlannerAddr,
			Provider:    constants.DefaultProvider,
			BaseURL:     constants.DefaultBaseURL,
			Temperature: constants.DefaultTemperature,
			MaxTokens:   constants.DefaultMaxTokens,
		},
		Moods: MoodsConfig{
			Addr:     constants.DefaultMoodsAddr,
			Store:    constants.DefaultStore,
			Database: constants.DefaultDatabase,
		},
	}
}

// Load layers defaults, the config file at path, the given .env files and the
// process environment, then falls back to the OS keyring for a missing API
// key. A missing config or .env file is not an error.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}

	if err := loadDotEnv(envFiles...); err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	cfg.resolveModel()
	cfg.ResolveCredential()

	return cfg, nil
}

// LoadFile merges the file at path into c, picking the decoder by extension.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".toml", "":
		if _, err := toml.Decode(string(data), c); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config format %q (use .toml or .yaml)", filepath.Ext(path))
	}

	return nil
}

func loadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		// godotenv.Load never overrides variables already set
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides c with any PLANME_* variables and the provider credential.
func (c *Config) ApplyEnv() {
	setFromEnv(&c.Planner.Addr, constants.EnvPlannerAddr)
	setFromEnv(&c.Planner.Provider, constants.EnvPlannerProvider)
	setFromEnv(&c.Planner.Model, constants.EnvPlannerModel)
	setFromEnv(&c.Planner.BaseURL, constants.EnvPlannerBaseURL)
	setFromEnv(&c.Moods.Addr, constants.EnvMoodsAddr)
	setFromEnv(&c.Moods.Store, constants.EnvMoodsStore)
	setFromEnv(&c.Moods.Database, constants.EnvMoodsDatabase)
	setFromEnv(&c.Log.Dir, constants.EnvLogDir)

	if env := CredentialEnv(c.Planner.Provider); env != "" {
		setFromEnv(&c.Planner.APIKey, env)
	}
}

func setFromEnv(dst *string, name string) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		*dst = v
	}
}

// CredentialEnv names the environment variable holding provider's API key.
func CredentialEnv(provider string) string {
	switch provider {
	case constants.ProviderOpenRouter:
		return constants.EnvOpenRouterAPIKey
	case constants.ProviderGemini:
		return constants.EnvGeminiAPIKey
	default:
		return ""
	}
}

func (c *Config) resolveModel() {
	if c.Planner.Model != "" {
		return
	}
	if c.Planner.Provider == constants.ProviderGemini {
		c.Planner.Model = constants.DefaultGeminiModel
		return
	}
	c.Planner.Model = constants.DefaultModel
}

// ResolveCredential reads the API key from the OS keyring when no other layer
// supplied one. Keyring errors leave the key empty for Validate to report.
func (c *Config) ResolveCredential() {
	if c.Planner.APIKey != "" {
		return
	}
	key, err := keyring.GetAPIKey(c.Planner.Provider)
	if err != nil {
		return
	}
	c.Planner.APIKey = key
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	if err := c.ValidatePlanner(); err != nil {
		return err
	}
	return c.ValidateMoods()
}

// ValidatePlanner checks everything the planning service needs at startup.
// A missing credential is reported as a CredentialMissing error.
func (c *Config) ValidatePlanner() error {
	p := c.Planner
	if p.Addr == "" {
		return fmt.Errorf("planner address must not be empty")
	}
	switch p.Provider {
	case constants.ProviderOpenRouter:
		if p.BaseURL == "" {
			return fmt.Errorf("base URL must not be empty for %s", p.Provider)
		}
	case constants.ProviderGemini:
	default:
		return fmt.Errorf("unknown provider %q (expected %s or %s)", p.Provider, constants.ProviderOpenRouter, constants.ProviderGemini)
	}
	if p.Model == "" {
		return fmt.Errorf("model must not be empty")
	}
	if p.Temperature < 0 || p.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2, got %v", p.Temperature)
	}
	if p.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got %d", p.MaxTokens)
	}
	if p.APIKey == "" {
		return apperrors.Newf(apperrors.KindCredentialMissing, "config",
			"no API key for %s: set %s or run '%s credential set %s'",
			p.Provider, CredentialEnv(p.Provider), constants.AppName, p.Provider)
	}
	return nil
}

// ValidateMoods checks everything the mood-log service needs at startup.
func (c *Config) ValidateMoods() error {
	if c.Moods.Addr == "" {
		return fmt.Errorf("moods address must not be empty")
	}
	if c.Moods.Store == "" {
		return fmt.Errorf("store must not be empty")
	}
	return nil
}
