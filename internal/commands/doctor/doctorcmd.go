// Package doctor implements the "doctor" command.
package doctor

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/indaco/tosemver/internal/clix"
	"github.com/indaco/tosemver/internal/config"
	"github.com/indaco/tosemver/internal/parser"
	"github.com/indaco/tosemver/internal/printer"
	"github.com/urfave/cli/v3"
)

// Run returns the "doctor" command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:      "doctor",
		Usage:     "Validate the configuration and the configured sources",
		UsageText: "tosemver doctor",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runDoctorCmd(ctx, cmd, env)
		},
	}
}

func runDoctorCmd(ctx context.Context, cmd *cli.Command, env *clix.Env) error {
	var results []config.ValidationResult
	if env.ConfigErr != nil {
		results = append(results, config.ValidationResult{Category: "Config", Message: env.ConfigErr.Error()})
	} else {
		checks, err := config.NewValidator(env.FS, env.Config).Validate(ctx)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		results = append(checks, checkVersions(ctx, env)...)
	}

	w := cmd.Root().Writer
	printResults(w, results)

	errs, warns := config.ErrorCount(results), config.WarningCount(results)
	if errs > 0 {
		return fmt.Errorf("configuration has %d error(s)", errs)
	}
	if warns > 0 {
		printer.FprintWarning(w, fmt.Sprintf("Configuration is valid with %d warning(s)", warns))
		return nil
	}
	printer.FprintSuccess(w, "Configuration is valid")
	return nil
}

// checkVersions reads every configured source that exists and reports
// whether its version converts.
func checkVersions(ctx context.Context, env *clix.Env) []config.ValidationResult {
	var existing []parser.Source
	for _, src := range env.Config.ResolvedSources() {
		if !src.Format.IsValid() {
			continue
		}
		if _, err := env.FS.Stat(ctx, src.Path); err == nil {
			existing = append(existing, src)
		}
	}
	if len(existing) == 0 {
		return nil
	}

	outcomes, err := env.Service(false).NormalizeSources(ctx, existing)
	if err != nil {
		return []config.ValidationResult{{Category: "Versions", Message: err.Error()}}
	}

	results := make([]config.ValidationResult, 0, len(outcomes))
	for _, o := range outcomes {
		label := fmt.Sprintf("Version %q", o.Source.Path)
		switch {
		case !o.OK():
			results = append(results, config.ValidationResult{Category: label, Message: o.Err.Error()})
		case o.Changed:
			results = append(results, config.ValidationResult{
				Category: label,
				Passed:   true,
				Warning:  true,
				Message:  fmt.Sprintf("%s is not canonical (run \"tosemver sources --write\" to store %s)", o.Input, o.Version),
			})
		default:
			results = append(results, config.ValidationResult{Category: label, Passed: true, Message: o.Version})
		}
	}
	return results
}

func printResults(w io.Writer, results []config.ValidationResult) {
	printer.FprintInfo(w, "Configuration checks")
	printer.FprintFaint(w, strings.Repeat("-", 50))
	for _, r := range results {
		var symbol string
		switch {
		case !r.Passed:
			symbol = printer.Error(printer.SymbolFail)
		case r.Warning:
			symbol = printer.Warning(printer.SymbolWarn)
		default:
			symbol = printer.Success(printer.SymbolOK)
		}
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", symbol, printer.Bold(r.Category), r.Message)
	}
	printer.FprintFaint(w, strings.Repeat("-", 50))
}
