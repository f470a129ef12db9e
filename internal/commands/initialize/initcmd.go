// Package initialize implements the "init" command.
package initialize

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/indaco/tosemver/internal/clix"
	"github.com/indaco/tosemver/internal/config"
	"github.com/indaco/tosemver/internal/parser"
	"github.com/indaco/tosemver/internal/printer"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// plainVersionFiles are raw version files picked up next to the manifests.
var plainVersionFiles = []string{"VERSION", ".version"}

// Run returns the "init" command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create a starter .tosemver.yaml",
		UsageText: `tosemver init [--dir path] [--force]

Looks for well-known version files (package.json, Cargo.toml, VERSION, ...)
in the directory and lists the ones found as sources.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dir",
				Usage: "Directory to scan for version files",
				Value: ".",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing config file",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runInitCmd(ctx, cmd, env)
		},
	}
}

func runInitCmd(ctx context.Context, cmd *cli.Command, env *clix.Env) error {
	path, err := config.ResolvePath(cmd.Root().String("config"))
	if err != nil {
		return err
	}

	if _, err := env.FS.Stat(ctx, path); err == nil {
		if !cmd.Bool("force") {
			return fmt.Errorf("config file %q already exists (use --force to overwrite)", path)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to check config file %q: %w", path, err)
	}

	srcs, err := DetectSources(ctx, env, cmd.String("dir"))
	if err != nil {
		return err
	}

	cfg := &config.Config{Sources: srcs}
	if err := config.SaveConfigFn(cfg, path); err != nil {
		return err
	}

	w := cmd.Root().Writer
	printer.FprintSuccess(w, fmt.Sprintf("%s Created %s", printer.SymbolOK, path))
	if len(srcs) == 0 {
		printer.FprintFaint(w, "No version files found; add entries under \"sources\".")
		return nil
	}
	for _, src := range srcs {
		_, _ = fmt.Fprintf(w, "  - %s %s\n", src.Path, printer.Faint("("+src.Format.String()+")"))
	}
	return nil
}

// DetectSources returns a source for every known version file in dir.
func DetectSources(ctx context.Context, env *clix.Env, dir string) ([]parser.Source, error) {
	names := append(parser.KnownFiles(), plainVersionFiles...)

	var srcs []parser.Source
	for _, name := range names {
		path := name
		if dir != "" && dir != "." {
			path = filepath.Join(dir, name)
		}

		info, err := env.FS.Stat(ctx, path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			env.Logger.Debug("skipping candidate", zap.String("path", path), zap.Error(err))
			continue
		}
		if info.IsDir() {
			continue
		}
		srcs = append(srcs, parser.DetectSource(parser.Source{Path: path}))
	}
	return srcs, nil
}
