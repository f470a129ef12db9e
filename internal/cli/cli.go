package cli

import (
	"context"
	"fmt"

	"github.com/indaco/tosemver/internal/clix"
	"github.com/indaco/tosemver/internal/commands/check"
	"github.com/indaco/tosemver/internal/commands/compare"
	"github.com/indaco/tosemver/internal/commands/convert"
	"github.com/indaco/tosemver/internal/commands/doctor"
	"github.com/indaco/tosemver/internal/commands/initialize"
	"github.com/indaco/tosemver/internal/commands/sources"
	"github.com/indaco/tosemver/internal/config"
	"github.com/indaco/tosemver/internal/logging"
	"github.com/indaco/tosemver/internal/printer"
	"github.com/indaco/tosemver/internal/rules"
	"github.com/indaco/tosemver/internal/tui"
	"github.com/indaco/tosemver/internal/version"
	urfavecli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// New builds and returns the root CLI command. The Before hook loads the
// config and the logger into env, which every subcommand reads at run time.
func New(env *clix.Env) *urfavecli.Command {
	return &urfavecli.Command{
		Name:                  "tosemver",
		Version:               fmt.Sprintf("v%s", version.GetVersion()),
		Usage:                 "Convert loose version strings to Semantic Versioning 2.0.0",
		EnableShellCompletion: true,
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to the config file (overridden by $" + config.EnvConfigPath + ")",
				DefaultText: config.DefaultConfigFile,
			},
			&urfavecli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
			&urfavecli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"V"},
				Usage:   "Enable debug logging on stderr",
			},
		},
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			return ctx, setup(cmd, env)
		},
		After: func(ctx context.Context, cmd *urfavecli.Command) error {
			_ = env.Logger.Sync()
			return nil
		},
		Commands: []*urfavecli.Command{
			convert.Run(env),
			sources.Run(env),
			compare.Run(env),
			check.Run(env),
			initialize.Run(env),
			doctor.Run(env),
		},
	}
}

func setup(cmd *urfavecli.Command, env *clix.Env) error {
	logger, err := logging.New(cmd.Bool("verbose"))
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	env.Logger = logger

	// init writes the config, so a broken one must not stop it.
	sub := cmd.Args().First()
	if sub == "init" {
		printer.SetNoColor(cmd.Bool("no-color"))
		return nil
	}

	path, err := config.ResolvePath(cmd.String("config"))
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfigFn(path)
	if err != nil {
		if sub != "doctor" {
			return err
		}
		logger.Warn("config did not load", zap.Error(err))
		env.ConfigErr = err
		cfg = &config.Config{}
	}
	env.Config = cfg

	// doctor reports bad rules itself instead of refusing to start.
	checker, err := rules.NewChecker(cfg.Rules)
	if err != nil {
		if sub != "doctor" {
			return fmt.Errorf("invalid rules in %q: %w", path, err)
		}
		logger.Warn("ignoring invalid rules", zap.Error(err))
	}
	env.Rules = checker

	printer.SetNoColor(cmd.Bool("no-color") || cfg.NoColor)
	tui.SetTheme(cfg.GetTheme())

	logger.Debug("config loaded",
		zap.String("path", path),
		zap.Int("sources", len(cfg.Sources)),
		zap.Bool("strict", cfg.Strict),
		zap.Int("rules", checker.Len()),
	)
	return nil
}
