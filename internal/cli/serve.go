package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/planme/internal/config"
	"github.com/julianstephens/planme/internal/constants"
	"github.com/julianstephens/planme/internal/logger"
	"github.com/julianstephens/planme/internal/moods"
	"github.com/julianstephens/planme/internal/server"
)

type ServeCmd struct {
	Planner ServePlannerCmd `cmd:"" help:"Run the planning service."`
	Moods   ServeMoodsCmd   `cmd:"" help:"Run the mood-log service."`
	All     ServeAllCmd     `cmd:"" help:"Run both services in one process."`
}

type ServePlannerCmd struct {
	Addr string `help:"Listen address (overrides config)."`
}

func (cmd *ServePlannerCmd) Run(ctx *Context) error {
	if cmd.Addr != "" {
		ctx.Config.Planner.Addr = cmd.Addr
	}
	if err := ctx.Config.ValidatePlanner(); err != nil {
		return err
	}
	if err := logger.Init(LogConfig(ctx.Config, "planner")); err != nil {
		return err
	}

	sigCtx, stop := signalContext()
	defer stop()

	return runPlanner(sigCtx, ctx)
}

type ServeMoodsCmd struct {
	Addr  string `help:"Listen address (overrides config)."`
	Store string `help:"Store URI or SQLite path (overrides config)."`
}

func (cmd *ServeMoodsCmd) Run(ctx *Context) error {
	if cmd.Addr != "" {
		ctx.Config.Moods.Addr = cmd.Addr
	}
	if cmd.Store != "" {
		ctx.Config.Moods.Store = cmd.Store
	}
	if err := ctx.Config.ValidateMoods(); err != nil {
		return err
	}
	if err := logger.Init(LogConfig(ctx.Config, "moods")); err != nil {
		return err
	}

	sigCtx, stop := signalContext()
	defer stop()

	return runMoods(sigCtx, ctx)
}

type ServeAllCmd struct {
	PlannerAddr string `help:"Planner listen address (overrides config)."`
	MoodsAddr   string `help:"Mood service listen address (overrides config)."`
	Store       string `help:"Store URI or SQLite path (overrides config)."`
}

func (cmd *ServeAllCmd) Run(ctx *Context) error {
	if cmd.PlannerAddr != "" {
		ctx.Config.Planner.Addr = cmd.PlannerAddr
	}
	if cmd.MoodsAddr != "" {
		ctx.Config.Moods.Addr = cmd.MoodsAddr
	}
	if cmd.Store != "" {
		ctx.Config.Moods.Store = cmd.Store
	}
	if err := ctx.Config.Validate(); err != nil {
		return err
	}
	if ctx.Config.Planner.Addr == ctx.Config.Moods.Addr {
		return fmt.Errorf("planner and mood service cannot share address %s", ctx.Config.Planner.Addr)
	}

	sigCtx, stop := signalContext()
	defer stop()

	// First failure cancels the group and stops the other server
	g, gctx := errgroup.WithContext(sigCtx)
	g.Go(func() error { return runPlanner(gctx, ctx) })
	g.Go(func() error { return runMoods(gctx, ctx) })

	return g.Wait()
}

// LogConfig builds the logger settings for one service. An empty service
// keeps the bare app name, which is what serve all uses.
func LogConfig(cfg *config.Config, service string) logger.Config {
	prefix := constants.AppName
	if service != "" {
		prefix += "/" + service
	}
	return logger.Config{Debug: cfg.Log.Debug, Dir: cfg.Log.Dir, Prefix: prefix}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runPlanner(ctx context.Context, appCtx *Context) error {
	p, err := NewPlanner(ctx, appCtx.Config)
	if err != nil {
		return fmt.Errorf("failed to create planner: %w", err)
	}
	return server.NewPlanner(p).Run(ctx, appCtx.Config.Planner.Addr)
}

func runMoods(ctx context.Context, appCtx *Context) error {
	store, err := NewStore(appCtx.Config)
	if err != nil {
		return err
	}
	if err := store.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize %s: %w", store.Describe(), err)
	}
	defer func() {
		if cerr := store.Close(context.Background()); cerr != nil {
			logger.Warn("Failed to close store", "store", store.Describe(), "error", cerr)
		}
	}()

	logger.Info("Using store", "store", store.Describe())
	return server.NewMoods(moods.NewService(store)).Run(ctx, appCtx.Config.Moods.Addr)
}
