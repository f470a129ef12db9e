package tui

import (
	"os"

	"golang.org/x/term"
)

// ciEnvs are environment variables set by common CI/CD systems.
var ciEnvs = []string{
	"CI",                     // Generic CI indicator
	"CONTINUOUS_INTEGRATION", // Generic CI indicator
	"GITHUB_ACTIONS",         // GitHub Actions
	"GITLAB_CI",              // GitLab CI
	"CIRCLECI",               // CircleCI
	"TRAVIS",                 // Travis CI
	"JENKINS_HOME",           // Jenkins
	"BUILDKITE",              // Buildkite
	"BITBUCKET_BUILD_NUMBER", // Bitbucket Pipelines
	"DRONE",                  // Drone CI
	"TF_BUILD",               // Azure Pipelines
	"TEAMCITY_VERSION",       // TeamCity
	"bamboo_buildKey",        // Bamboo
}

// IsInteractive determines if the current environment supports interactive prompts.
// It returns false when stdout is not a terminal or a CI environment is detected.
func IsInteractive() bool {
	return IsTTY() && !IsCI()
}

// IsCI reports whether a known CI environment variable is set.
func IsCI() bool {
	for _, env := range ciEnvs {
		if os.Getenv(env) != "" {
			return true
		}
	}
	return false
}

// IsTTY checks if stdout is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) //nolint:gosec // G115: fd is a small value, no overflow risk
}

// IsPiped reports whether f is not a terminal, i.e. its content comes from a
// pipe or a redirected file.
func IsPiped(f *os.File) bool {
	return !term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: fd is a small value, no overflow risk
}
