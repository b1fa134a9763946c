package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/julianstephens/planme/internal/moods"
)

type DebugCmd struct {
	Config    DebugConfigCmd    `cmd:"" help:"Show the effective configuration as JSON."`
	DumpMoods DebugDumpMoodsCmd `cmd:"" help:"Dump a user's mood logs as JSON."`
}

// DebugConfigCmd prints the layered configuration with the API key masked
type DebugConfigCmd struct{}

func (cmd *DebugConfigCmd) Run(ctx *Context) error {
	cfg := *ctx.Config
	if cfg.Planner.APIKey != "" {
		cfg.Planner.APIKey = maskKey(cfg.Planner.APIKey)
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDumpMoodsCmd struct {
	UserID string `arg:"" help:"User whose mood logs to dump."`
}

func (cmd *DebugDumpMoodsCmd) Run(ctx *Context) error {
	store, err := NewStore(ctx.Config)
	if err != nil {
		return err
	}
	bg := context.Background()
	if err := store.Init(bg); err != nil {
		return fmt.Errorf("failed to open %s: %w", store.Describe(), err)
	}
	defer store.Close(bg)

	entries, err := moods.NewService(store).ListMoods(bg, cmd.UserID)
	if err != nil {
		return fmt.Errorf("failed to list moods: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal moods: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}
