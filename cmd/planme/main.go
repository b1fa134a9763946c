package main

import (
	"github.com/alecthomas/kong"

	"github.com/julianstephens/planme/internal/cli"
	"github.com/julianstephens/planme/internal/config"
	"github.com/julianstephens/planme/internal/constants"
	apperrors "github.com/julianstephens/planme/internal/errors"
	"github.com/julianstephens/planme/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string   `help:"Config file path (.toml or .yaml)." type:"path" default:"${config_path}"`
	EnvFile []string `help:"Dotenv files to load. Existing environment variables win." default:".env"`
	LogDir  string   `help:"Directory for the rotating log file (overrides config)." type:"path"`
	Verbose bool     `short:"v" help:"Enable debug logging."`

	Serve      cli.ServeCmd      `cmd:"" help:"Run the HTTP services."`
	Init       cli.InitCmd       `cmd:"" help:"Create the mood store schema."`
	Doctor     cli.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Credential cli.CredentialCmd `cmd:"" help:"Manage LLM API keys in the OS keyring."`
	Backup     cli.BackupCmd     `cmd:"" help:"Manage SQLite mood store backups."`
	Debug      cli.DebugCmd      `cmd:"" help:"Debug commands for troubleshooting."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("AI day planner and mood-log services"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	cfg, err := config.Load(CLI.Config, CLI.EnvFile...)
	if err != nil {
		apperrors.Fatal(err)
	}
	if CLI.LogDir != "" {
		cfg.Log.Dir = CLI.LogDir
	}
	if CLI.Verbose {
		cfg.Log.Debug = true
	}

	if err := logger.Init(cli.LogConfig(cfg, "")); err != nil {
		apperrors.Fatal(err)
	}

	apperrors.Fatal(ctx.Run(&cli.Context{Config: cfg}))
}
