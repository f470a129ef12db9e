// Package operations connects version sources to the normalizer.
package operations

import (
	"context"
	"errors"
	"fmt"

	"github.com/indaco/tosemver/internal/core"
	"github.com/indaco/tosemver/internal/parser"
	"github.com/indaco/tosemver/internal/rules"
	"github.com/indaco/tosemver/internal/semver"
	"go.uber.org/zap"
)

// ErrRevisionNotAllowed is returned in strict mode when the canonical form
// keeps a fourth component.
var ErrRevisionNotAllowed = errors.New("revision component not allowed in strict mode")

// Outcome is the result of normalizing a single input.
type Outcome struct {
	Input   string
	Version string
	Err     error
}

// OK reports whether the input normalized successfully.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// SourceOutcome is the result of normalizing the version held by a source.
type SourceOutcome struct {
	Outcome
	Source parser.Source

	// Changed is true when the canonical form differs from the file contents.
	Changed bool
}

// Service normalizes literal inputs and versions stored in files.
type Service struct {
	rw     *parser.ReadWriter
	strict bool
	rules  *rules.Checker
	logger *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithStrict rejects results that keep a revision component.
func WithStrict(strict bool) Option {
	return func(s *Service) {
		s.strict = strict
	}
}

// WithRules checks every canonical version against c. A nil checker
// disables rule checks.
func WithRules(c *rules.Checker) Option {
	return func(s *Service) {
		s.rules = c
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates a Service reading and writing through fs.
func NewService(fs core.FileSystem, opts ...Option) *Service {
	s := &Service{
		rw:     parser.NewReadWriter(fs),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Normalize converts one input.
func (s *Service) Normalize(input string) Outcome {
	v, err := semver.Parse(input)
	if err != nil {
		s.logger.Debug("normalize failed", zap.String("input", input), zap.Error(err))
		return Outcome{Input: input, Err: err}
	}
	if s.strict && v.HasRevision() {
		return Outcome{Input: input, Err: fmt.Errorf("%q: %w", input, ErrRevisionNotAllowed)}
	}
	if err := s.rules.Check(v); err != nil {
		return Outcome{Input: input, Err: fmt.Errorf("%q: %w", input, err)}
	}

	out := v.String()
	s.logger.Debug("normalized", zap.String("input", input), zap.String("version", out))
	return Outcome{Input: input, Version: out}
}

// NormalizeAll converts every input and keeps going past failures.
// The result has one entry per input, in order.
func (s *Service) NormalizeAll(inputs []string) []Outcome {
	outcomes := make([]Outcome, len(inputs))
	for i, input := range inputs {
		outcomes[i] = s.Normalize(input)
	}
	return outcomes
}

// NormalizeSources reads and normalizes the version held by each source.
// Read and parse failures are recorded per source; only a cancelled context
// aborts the run.
func (s *Service) NormalizeSources(ctx context.Context, sources []parser.Source) ([]SourceOutcome, error) {
	outcomes := make([]SourceOutcome, 0, len(sources))

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}

		src = parser.DetectSource(src)
		res, err := s.rw.Read(ctx, src)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return outcomes, ctxErr
			}
			s.logger.Warn("read failed", zap.String("path", src.Path), zap.Error(err))
			outcomes = append(outcomes, SourceOutcome{Source: src, Outcome: Outcome{Err: err}})
			continue
		}

		o := s.Normalize(res.Version)
		outcomes = append(outcomes, SourceOutcome{
			Outcome: o,
			Source:  src,
			Changed: o.OK() && o.Version != res.Version,
		})
	}

	return outcomes, nil
}

// WriteSources stores the canonical version back into every source that
// normalized successfully and changed.
func (s *Service) WriteSources(ctx context.Context, outcomes []SourceOutcome) error {
	var errs []error
	for _, o := range outcomes {
		if !o.OK() || !o.Changed {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.rw.Write(ctx, o.Source, o.Version); err != nil {
			errs = append(errs, err)
			continue
		}
		s.logger.Debug("wrote version", zap.String("path", o.Source.Path), zap.String("version", o.Version))
	}
	return errors.Join(errs...)
}

// Pending returns the outcomes WriteSources would store.
func Pending(outcomes []SourceOutcome) []SourceOutcome {
	var out []SourceOutcome
	for _, o := range outcomes {
		if o.OK() && o.Changed {
			out = append(out, o)
		}
	}
	return out
}

// Failed counts outcomes that carry an error.
func Failed[T interface{ OK() bool }](outcomes []T) int {
	n := 0
	for _, o := range outcomes {
		if !o.OK() {
			n++
		}
	}
	return n
}
