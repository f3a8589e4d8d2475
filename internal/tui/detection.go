// Package tui decides whether interactive prompts are appropriate for
// the current environment.
package tui

import (
	"os"

	"golang.org/x/term"
)

// ciEnvVars are environment variables set by common CI systems. Any of
// them being non-empty means prompts must be skipped.
var ciEnvVars = []string{
	"CI",
	"CONTINUOUS_INTEGRATION",
	"GITHUB_ACTIONS",
	"GITLAB_CI",
	"CIRCLECI",
	"TRAVIS",
	"JENKINS_HOME",
	"BUILDKITE",
	"DRONE",
	"TF_BUILD",
}

// IsInteractive reports whether the current environment supports
// interactive prompts: stdout must be a terminal and no CI environment
// variable may be set.
func IsInteractive() bool {
	if !IsTTY() {
		return false
	}
	for _, env := range ciEnvVars {
		if os.Getenv(env) != "" {
			return false
		}
	}
	return true
}

// IsTTY checks if stdout is a terminal. This is a lower-level check
// than IsInteractive.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) //nolint:gosec // G115: fd is a small value, no overflow risk
}
