// Package rules applies project policies to canonical versions, on top of
// the format checks done by the normalizer.
package rules

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/indaco/tosemver/internal/semver"
)

// ErrRuleViolation is wrapped by every error a rule reports for a version.
var ErrRuleViolation = errors.New("version rule violated")

// RuleType defines the type of validation rule.
type RuleType string

const (
	RulePreReleaseFormat    RuleType = "pre-release-format"
	RuleMajorVersionMax     RuleType = "major-version-max"
	RuleMinorVersionMax     RuleType = "minor-version-max"
	RulePatchVersionMax     RuleType = "patch-version-max"
	RuleRequirePreRelease0x RuleType = "require-pre-release-for-0x"
	RuleMaxPreReleaseIter   RuleType = "max-prerelease-iterations"
	RuleRequireEvenMinor    RuleType = "require-even-minor"
	RuleNoBuildMetadata     RuleType = "no-build-metadata"
)

var knownTypes = []RuleType{
	RulePreReleaseFormat,
	RuleMajorVersionMax,
	RuleMinorVersionMax,
	RulePatchVersionMax,
	RuleRequirePreRelease0x,
	RuleMaxPreReleaseIter,
	RuleRequireEvenMinor,
	RuleNoBuildMetadata,
}

// Rule is one configured policy. Pattern is used by pre-release-format,
// Value by the *-max rules; the remaining types are switched on by listing them.
type Rule struct {
	Type    RuleType `yaml:"type"`
	Pattern string   `yaml:"pattern,omitempty"`
	Value   uint64   `yaml:"value,omitempty"`
}

// Validate reports configuration problems with the rule itself.
func (r Rule) Validate() error {
	known := false
	for _, t := range knownTypes {
		if r.Type == t {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown rule type %q", r.Type)
	}
	if r.Type == RulePreReleaseFormat {
		if r.Pattern == "" {
			return fmt.Errorf("rule %q requires a pattern", r.Type)
		}
		if _, err := regexp.Compile(r.Pattern); err != nil {
			return fmt.Errorf("invalid pre-release pattern %q: %w", r.Pattern, err)
		}
	}
	return nil
}

// Checker evaluates a fixed list of rules.
type Checker struct {
	rules    []Rule
	patterns map[int]*regexp.Regexp
}

// NewChecker validates rules and precompiles their patterns.
func NewChecker(rules []Rule) (*Checker, error) {
	c := &Checker{rules: rules, patterns: make(map[int]*regexp.Regexp)}
	for i, r := range rules {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("rule #%d: %w", i+1, err)
		}
		if r.Type == RulePreReleaseFormat {
			c.patterns[i] = regexp.MustCompile(r.Pattern)
		}
	}
	return c, nil
}

// Len returns the number of rules.
func (c *Checker) Len() int {
	if c == nil {
		return 0
	}
	return len(c.rules)
}

// Check returns the first rule violation for v, or nil.
func (c *Checker) Check(v semver.ParsedVersion) error {
	if c == nil {
		return nil
	}
	for i, r := range c.rules {
		if err := c.apply(i, r, v); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrRuleViolation, r.Type, err)
		}
	}
	return nil
}

func (c *Checker) apply(i int, r Rule, v semver.ParsedVersion) error {
	switch r.Type {
	case RulePreReleaseFormat:
		if v.PreRelease != "" && !c.patterns[i].MatchString(v.PreRelease) {
			return fmt.Errorf("pre-release label %q does not match %q", v.PreRelease, r.Pattern)
		}
	case RuleMajorVersionMax:
		return checkMax(r.Value, v.Major, "major")
	case RuleMinorVersionMax:
		return checkMax(r.Value, v.Minor, "minor")
	case RulePatchVersionMax:
		return checkMax(r.Value, v.Patch, "patch")
	case RuleRequirePreRelease0x:
		if v.Major == 0 && v.PreRelease == "" {
			return fmt.Errorf("0.x versions require a pre-release label (e.g. 0.%d.%d-alpha)", v.Minor, v.Patch)
		}
	case RuleMaxPreReleaseIter:
		if r.Value == 0 {
			return nil
		}
		if n, ok := trailingNumber(v.PreRelease); ok && n > r.Value {
			return fmt.Errorf("pre-release iteration %d exceeds maximum %d", n, r.Value)
		}
	case RuleRequireEvenMinor:
		if v.PreRelease == "" && v.Minor%2 != 0 {
			return fmt.Errorf("stable releases need an even minor version (got %d.%d.%d)", v.Major, v.Minor, v.Patch)
		}
	case RuleNoBuildMetadata:
		if v.Build != "" {
			return fmt.Errorf("build metadata %q is not allowed", v.Build)
		}
	}
	return nil
}

func checkMax(limit, value uint64, component string) error {
	if limit == 0 || value <= limit {
		return nil
	}
	return fmt.Errorf("%s version %d exceeds maximum %d", component, value, limit)
}

// trailingNumber returns the digits at the end of a pre-release label,
// so "alpha.6", "beta-2" and "rc3" yield 6, 2 and 3.
func trailingNumber(preRelease string) (uint64, bool) {
	start := len(preRelease)
	for start > 0 && preRelease[start-1] >= '0' && preRelease[start-1] <= '9' {
		start--
	}
	if start == len(preRelease) {
		return 0, false
	}

	n, err := strconv.ParseUint(preRelease[start:], 10, 64)
	return n, err == nil
}
