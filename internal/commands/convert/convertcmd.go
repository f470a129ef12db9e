// Package convert implements the "convert" command.
package convert

import (
	"context"
	"fmt"
	"io"

	"github.com/indaco/tosemver/internal/clix"
	"github.com/indaco/tosemver/internal/operations"
	"github.com/indaco/tosemver/internal/printer"
	"github.com/urfave/cli/v3"
)

// Run returns the "convert" command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:    "convert",
		Aliases: []string{"normalize"},
		Usage:   "Convert version strings to Semantic Versioning 2.0.0",
		UsageText: `tosemver convert [options] [version...]

Versions are read from the arguments, or one per line from stdin when no
arguments are given. Missing components become zero and a zero fourth
component is dropped:

  tosemver convert 23.01        # 23.1.0
  tosemver convert 1.1.1.0      # 1.1.1
  echo 1.2 | tosemver convert   # 1.2.0`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, json",
				Value:   "text",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Reject versions that keep a revision component",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runConvertCmd(ctx, cmd, env)
		},
	}
}

type jsonOutcome struct {
	Input   string `json:"input"`
	Version string `json:"version,omitempty"`
	Error   string `json:"error,omitempty"`
}

func runConvertCmd(_ context.Context, cmd *cli.Command, env *clix.Env) error {
	format, err := clix.ParseOutputFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	root := cmd.Root()
	inputs, err := clix.Inputs(cmd.Args().Slice(), root.Reader)
	if err != nil {
		return err
	}

	outcomes := env.Service(cmd.Bool("strict")).NormalizeAll(inputs)

	if format == clix.FormatJSON {
		if err := clix.WriteJSON(root.Writer, toJSON(outcomes)); err != nil {
			return err
		}
	} else {
		printText(root.Writer, root.ErrWriter, outcomes)
	}

	if failed := operations.Failed(outcomes); failed > 0 {
		return fmt.Errorf("%d of %d versions could not be converted", failed, len(outcomes))
	}
	return nil
}

// printText writes each canonical version on its own line so the output can
// be piped. Failures go to errW.
func printText(w, errW io.Writer, outcomes []operations.Outcome) {
	for _, o := range outcomes {
		if o.OK() {
			_, _ = fmt.Fprintln(w, o.Version)
			continue
		}
		printer.FprintError(errW, fmt.Sprintf("%s %v", printer.SymbolFail, o.Err))
	}
}

func toJSON(outcomes []operations.Outcome) []jsonOutcome {
	out := make([]jsonOutcome, len(outcomes))
	for i, o := range outcomes {
		out[i] = jsonOutcome{Input: o.Input, Version: o.Version}
		if o.Err != nil {
			out[i].Error = o.Err.Error()
		}
	}
	return out
}
