// Package compare implements the "compare" command.
package compare

import (
	"context"
	"fmt"

	"github.com/indaco/tosemver/internal/clix"
	"github.com/indaco/tosemver/internal/semver"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// Run returns the "compare" command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:      "compare",
		Usage:     "Compare two versions by SemVer precedence",
		UsageText: "tosemver compare [--format text|json] <a> <b>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, json",
				Value:   "text",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runCompareCmd(ctx, cmd, env)
		},
	}
}

type jsonResult struct {
	A      string `json:"a"`
	B      string `json:"b"`
	Result int    `json:"result"`
}

// runCompareCmd prints -1, 0 or 1. Both inputs are normalized first, so the
// revision component takes part in the comparison.
func runCompareCmd(_ context.Context, cmd *cli.Command, env *clix.Env) error {
	format, err := clix.ParseOutputFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	if cmd.NArg() != 2 {
		return fmt.Errorf("compare expects exactly two versions, got %d", cmd.NArg())
	}

	a, err := semver.Parse(cmd.Args().Get(0))
	if err != nil {
		return err
	}
	b, err := semver.Parse(cmd.Args().Get(1))
	if err != nil {
		return err
	}

	result := a.Compare(b)
	env.Logger.Debug("compared versions",
		zap.String("a", a.String()),
		zap.String("b", b.String()),
		zap.Int("result", result),
	)

	w := cmd.Root().Writer
	if format == clix.FormatJSON {
		return clix.WriteJSON(w, jsonResult{A: a.String(), B: b.String(), Result: result})
	}
	_, err = fmt.Fprintln(w, result)
	return err
}
