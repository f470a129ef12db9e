// Package check implements the "check" command.
package check

import (
	"context"
	"fmt"
	"io"

	"github.com/indaco/tosemver/internal/clix"
	"github.com/indaco/tosemver/internal/operations"
	"github.com/indaco/tosemver/internal/printer"
	"github.com/indaco/tosemver/internal/semver"
	"github.com/urfave/cli/v3"
)

// Run returns the "check" command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Report whether versions can be converted and whether they already are strict SemVer",
		UsageText: `tosemver check [options] [version...]

Exits non-zero when a version cannot be converted. With --require-strict it
also fails for versions that are valid but not yet strict SemVer.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, json",
				Value:   "text",
			},
			&cli.BoolFlag{
				Name:  "require-strict",
				Usage: "Fail unless every version is already strict SemVer",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runCheckCmd(ctx, cmd, env)
		},
	}
}

// Report describes one checked version.
type Report struct {
	Input     string `json:"input"`
	Valid     bool   `json:"valid"`
	Canonical string `json:"canonical,omitempty"`
	Strict    bool   `json:"strict"`
	Error     string `json:"error,omitempty"`
}

func runCheckCmd(_ context.Context, cmd *cli.Command, env *clix.Env) error {
	format, err := clix.ParseOutputFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	root := cmd.Root()
	inputs, err := clix.Inputs(cmd.Args().Slice(), root.Reader)
	if err != nil {
		return err
	}

	reports := buildReports(env.Service(false).NormalizeAll(inputs))

	if format == clix.FormatJSON {
		if err := clix.WriteJSON(root.Writer, reports); err != nil {
			return err
		}
	} else {
		printReports(root.Writer, reports)
	}

	invalid, loose := 0, 0
	for _, r := range reports {
		switch {
		case !r.Valid:
			invalid++
		case !r.Strict:
			loose++
		}
	}
	if invalid > 0 {
		return fmt.Errorf("%d of %d versions are invalid", invalid, len(reports))
	}
	if cmd.Bool("require-strict") && loose > 0 {
		return fmt.Errorf("%d of %d versions are not strict SemVer", loose, len(reports))
	}
	return nil
}

func buildReports(outcomes []operations.Outcome) []Report {
	reports := make([]Report, len(outcomes))
	for i, o := range outcomes {
		r := Report{Input: o.Input, Valid: o.OK(), Canonical: o.Version}
		if o.OK() {
			r.Strict = semver.IsStrict(o.Input)
		} else {
			r.Error = o.Err.Error()
		}
		reports[i] = r
	}
	return reports
}

func printReports(w io.Writer, reports []Report) {
	for _, r := range reports {
		var line string
		switch {
		case !r.Valid:
			line = printer.Status(false, r.Error)
		case r.Strict:
			line = printer.Status(true, fmt.Sprintf("%s %s", printer.Version(r.Canonical), printer.Faint("(strict)")))
		default:
			line = fmt.Sprintf("%s %s", printer.Warning(printer.SymbolWarn), printer.Conversion(r.Input, r.Canonical))
		}
		_, _ = fmt.Fprintln(w, line)
	}
}
