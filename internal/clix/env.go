// Package clix holds state shared between the root command and subcommands.
package clix

import (
	"io"
	"os"

	"github.com/indaco/tosemver/internal/config"
	"github.com/indaco/tosemver/internal/core"
	"github.com/indaco/tosemver/internal/operations"
	"github.com/indaco/tosemver/internal/rules"
	"github.com/indaco/tosemver/internal/tui"
	"go.uber.org/zap"
)

// Env is filled in by the root command's Before hook and read by subcommands
// when their Action runs.
type Env struct {
	Config *config.Config
	Rules  *rules.Checker
	Logger *zap.Logger
	FS     core.FileSystem

	// ConfigErr is the load error doctor reports; Config is empty when set.
	ConfigErr error
}

// NewEnv returns an Env with an empty config, a no-op logger and the OS
// filesystem.
func NewEnv() *Env {
	return &Env{
		Config: &config.Config{},
		Logger: zap.NewNop(),
		FS:     core.NewOSFileSystem(),
	}
}

// Service builds a normalize service. strict is OR-ed with the config value.
func (e *Env) Service(strict bool) *operations.Service {
	return operations.NewService(e.FS,
		operations.WithStrict(strict || e.Config.Strict),
		operations.WithRules(e.Rules),
		operations.WithLogger(e.Logger),
	)
}

// HasPipedInput reports whether r carries data that is not typed at a
// terminal. Readers that are not files (tests, buffers) count as piped.
func HasPipedInput(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return r != nil
	}
	return tui.IsPiped(f)
}
