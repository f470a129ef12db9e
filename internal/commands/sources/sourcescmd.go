// Package sources implements the "sources" command, which normalizes
// versions stored in project files.
package sources

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/indaco/tosemver/internal/clix"
	"github.com/indaco/tosemver/internal/operations"
	"github.com/indaco/tosemver/internal/parser"
	"github.com/indaco/tosemver/internal/printer"
	"github.com/indaco/tosemver/internal/tui"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// Prompter abstracts the write confirmation for testability.
type Prompter interface {
	Confirm(title, description string) (bool, error)
}

type tuiPrompter struct{}

func (tuiPrompter) Confirm(title, description string) (bool, error) {
	return tui.Confirm(title, description)
}

// Test hooks.
var (
	newPrompter   = func() Prompter { return tuiPrompter{} }
	isInteractive = tui.IsInteractive
)

// ErrNoSources is returned when neither the config nor the flags name a source.
var ErrNoSources = errors.New("no sources configured")

// Run returns the "sources" command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:    "sources",
		Aliases: []string{"files"},
		Usage:   "Normalize versions stored in project files",
		UsageText: `tosemver sources [options]

Reads the sources listed in .tosemver.yaml, or a single file given with
--path, and shows their canonical versions. With --write the changed files
are updated in place after confirmation. Here --format is the source file
format; choose text or json output with --output (-o).

  tosemver sources --path package.json --write --yes
  tosemver sources --path build.gradle --format regex --pattern "version = '(.+)'"`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "path",
				Aliases: []string{"p"},
				Usage:   "Ad-hoc source file (overrides configured sources)",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Source format: json, yaml, toml, raw, regex (detected from the file name when empty)",
			},
			&cli.StringFlag{
				Name:  "field",
				Usage: "Dot-notation field holding the version in structured files",
			},
			&cli.StringFlag{
				Name:  "pattern",
				Usage: "Regex whose first capture group is the version (regex format)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output format: text, json",
				Value:   "text",
			},
			&cli.BoolFlag{
				Name:    "write",
				Aliases: []string{"w"},
				Usage:   "Write canonical versions back to changed files",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Skip the confirmation prompt",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Reject versions that keep a revision component",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runSourcesCmd(ctx, cmd, env)
		},
	}
}

func runSourcesCmd(ctx context.Context, cmd *cli.Command, env *clix.Env) error {
	format, err := clix.ParseOutputFormat(cmd.String("output"))
	if err != nil {
		return err
	}

	srcs, err := selectSources(cmd, env)
	if err != nil {
		return err
	}

	svc := env.Service(cmd.Bool("strict"))
	outcomes, err := svc.NormalizeSources(ctx, srcs)
	if err != nil {
		return fmt.Errorf("failed to read sources: %w", err)
	}

	w := cmd.Root().Writer
	if format == clix.FormatJSON {
		if err := clix.WriteJSON(w, toJSON(outcomes)); err != nil {
			return err
		}
	} else {
		printOutcomes(w, outcomes)
	}

	if cmd.Bool("write") {
		if err := writeChanged(ctx, cmd, env.Logger, svc, outcomes, format == clix.FormatText); err != nil {
			return err
		}
	}

	if failed := operations.Failed(outcomes); failed > 0 {
		return fmt.Errorf("%d of %d sources could not be normalized", failed, len(outcomes))
	}
	return nil
}

// selectSources returns the ad-hoc source when --path is set, else the
// configured ones.
func selectSources(cmd *cli.Command, env *clix.Env) ([]parser.Source, error) {
	if path := cmd.String("path"); path != "" {
		src := parser.Source{
			Path:    path,
			Field:   cmd.String("field"),
			Pattern: cmd.String("pattern"),
		}
		if f := cmd.String("format"); f != "" {
			src.Format = parser.ParseFormat(f)
			if !src.Format.IsValid() {
				return nil, fmt.Errorf("invalid format %q (use json, yaml, toml, raw or regex)", f)
			}
		}
		if src.Pattern != "" && src.Format == "" {
			src.Format = parser.FormatRegex
		}
		return []parser.Source{src}, nil
	}

	srcs := env.Config.ResolvedSources()
	if len(srcs) == 0 {
		return nil, fmt.Errorf("%w: add sources to the config file or pass --path", ErrNoSources)
	}
	return srcs, nil
}

func writeChanged(ctx context.Context, cmd *cli.Command, logger *zap.Logger, svc *operations.Service, outcomes []operations.SourceOutcome, text bool) error {
	w := cmd.Root().Writer
	pending := operations.Pending(outcomes)
	if len(pending) == 0 {
		if text {
			printer.FprintInfo(w, "Nothing to write: all sources are already canonical")
		}
		return nil
	}

	if !cmd.Bool("yes") && isInteractive() {
		ok, err := newPrompter().Confirm(
			fmt.Sprintf("Write %d canonical version(s)?", len(pending)),
			"Changed files are rewritten in place.",
		)
		if err != nil {
			return fmt.Errorf("confirmation failed: %w", err)
		}
		if !ok {
			if text {
				printer.FprintWarning(w, "Aborted: no files written")
			}
			return nil
		}
	} else if !cmd.Bool("yes") {
		logger.Debug("non-interactive session, writing without confirmation")
	}

	err := tui.RunWithSpinner(ctx, "Writing versions...", func(ctx context.Context) error {
		return svc.WriteSources(ctx, outcomes)
	})
	if err != nil {
		return fmt.Errorf("failed to write sources: %w", err)
	}

	if text {
		for _, o := range pending {
			printer.FprintSuccess(w, fmt.Sprintf("%s Updated %s", printer.SymbolOK, o.Source.Path))
		}
	}
	return nil
}

func printOutcomes(w io.Writer, outcomes []operations.SourceOutcome) {
	for _, o := range outcomes {
		name := displayName(o.Source)
		switch {
		case !o.OK():
			_, _ = fmt.Fprintf(w, "%s %s\n", printer.Status(false, printer.Bold(name)), printer.Error(o.Err.Error()))
		case o.Changed:
			_, _ = fmt.Fprintf(w, "%s %s\n", printer.Status(true, printer.Bold(name)), printer.Conversion(o.Input, o.Version))
		default:
			_, _ = fmt.Fprintf(w, "%s %s %s\n", printer.Status(true, printer.Bold(name)), printer.Version(o.Version), printer.Faint("(unchanged)"))
		}
	}
}

func displayName(src parser.Source) string {
	name := filepath.Clean(src.Path)
	if src.Format.Structured() && src.Field != "" {
		name += ":" + src.Field
	}
	return name
}

type jsonOutcome struct {
	Path    string `json:"path"`
	Format  string `json:"format"`
	Field   string `json:"field,omitempty"`
	Input   string `json:"input,omitempty"`
	Version string `json:"version,omitempty"`
	Changed bool   `json:"changed"`
	Error   string `json:"error,omitempty"`
}

func toJSON(outcomes []operations.SourceOutcome) []jsonOutcome {
	out := make([]jsonOutcome, len(outcomes))
	for i, o := range outcomes {
		out[i] = jsonOutcome{
			Path:    o.Source.Path,
			Format:  o.Source.Format.String(),
			Field:   o.Source.Field,
			Input:   o.Input,
			Version: o.Version,
			Changed: o.Changed,
		}
		if o.Err != nil {
			out[i].Error = o.Err.Error()
		}
	}
	return out
}
