package config

import (
	"context"
	"fmt"

	"github.com/indaco/tosemver/internal/core"
	"github.com/indaco/tosemver/internal/parser"
	"github.com/indaco/tosemver/internal/tui"
)

// ValidationResult represents the result of a validation check.
type ValidationResult struct {
	// Category is the validation category (e.g., "Sources", "Theme").
	Category string

	// Passed indicates if the check passed.
	Passed bool

	// Message provides details about the validation result.
	Message string

	// Warning indicates if this is a warning rather than an error.
	Warning bool
}

// Validator validates configuration files and settings.
type Validator struct {
	fs          core.FileSystem
	cfg         *Config
	validations []ValidationResult
}

// NewValidator creates a new configuration validator.
func NewValidator(fs core.FileSystem, cfg *Config) *Validator {
	return &Validator{
		fs:          fs,
		cfg:         cfg,
		validations: make([]ValidationResult, 0),
	}
}

// Validate runs all validation checks and returns the results.
func (v *Validator) Validate(ctx context.Context) ([]ValidationResult, error) {
	v.validations = make([]ValidationResult, 0)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v.validateSources(ctx)
	v.validateRules()
	v.validateTheme()

	return v.validations, nil
}

func (v *Validator) validateSources(ctx context.Context) {
	if len(v.cfg.Sources) == 0 {
		v.addValidation("Sources", true, "No sources configured", true)
		return
	}

	for i, raw := range v.cfg.Sources {
		label := fmt.Sprintf("Source #%d", i+1)
		if raw.Path == "" {
			v.addValidation(label, false, "path is required", false)
			continue
		}
		label = fmt.Sprintf("Source %q", raw.Path)

		if raw.Format != "" && !raw.Format.IsValid() {
			v.addValidation(label, false, fmt.Sprintf("unknown format %q (use json, yaml, toml, raw or regex)", raw.Format), false)
			continue
		}

		src := parser.DetectSource(raw)
		if src.Format == parser.FormatRegex {
			if _, err := parser.CompilePattern(src.Pattern); err != nil {
				v.addValidation(label, false, err.Error(), false)
				continue
			}
		} else if raw.Pattern != "" {
			v.addValidation(label, true, fmt.Sprintf("pattern is ignored for %s format", src.Format), true)
		}

		if _, err := v.fs.Stat(ctx, src.Path); err != nil {
			v.addValidation(label, true, "file not found", true)
			continue
		}

		v.addValidation(label, true, fmt.Sprintf("%s source is valid", src.Format), false)
	}
}

func (v *Validator) validateRules() {
	for i, r := range v.cfg.Rules {
		label := fmt.Sprintf("Rule #%d", i+1)
		if err := r.Validate(); err != nil {
			v.addValidation(label, false, err.Error(), false)
			continue
		}
		v.addValidation(label, true, string(r.Type), false)
	}
}

func (v *Validator) validateTheme() {
	if v.cfg.Theme == "" {
		return
	}
	if !tui.IsValidTheme(v.cfg.Theme) {
		v.addValidation("Theme", false, fmt.Sprintf("unknown theme %q", v.cfg.Theme), false)
		return
	}
	v.addValidation("Theme", true, fmt.Sprintf("theme %q", v.cfg.Theme), false)
}

func (v *Validator) addValidation(category string, passed bool, message string, warning bool) {
	v.validations = append(v.validations, ValidationResult{
		Category: category,
		Passed:   passed,
		Message:  message,
		Warning:  warning,
	})
}

// HasErrors returns true if any validation failed.
func HasErrors(results []ValidationResult) bool {
	return ErrorCount(results) > 0
}

// ErrorCount returns the number of failed validations.
func ErrorCount(results []ValidationResult) int {
	count := 0
	for _, r := range results {
		if !r.Passed && !r.Warning {
			count++
		}
	}
	return count
}

// WarningCount returns the number of warnings.
func WarningCount(results []ValidationResult) int {
	count := 0
	for _, r := range results {
		if r.Warning {
			count++
		}
	}
	return count
}
