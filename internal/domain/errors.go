package domain

import (
	"fmt"
	"strings"
)

// ExitCodeConfig is the exit code stylelint uses for configuration problems.
const ExitCodeConfig = 78

// ConfigurationError reports missing or invalid configuration: lint config,
// syntax, or the ignore file.
type ConfigurationError struct {
	Message string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Message, e.Err)
	}
	return "configuration error: " + e.Message
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// MissingConfig reports whether the engine could not find any lint config.
func (e *ConfigurationError) MissingConfig() bool {
	return strings.Contains(e.Message, "No configuration provided")
}

// LintError is any other failure of the lint engine.
type LintError struct {
	Code    int
	Message string
	Stderr  string
	Err     error
}

func (e *LintError) Error() string {
	msg := fmt.Sprintf("stylelint failed (exit %d): %s", e.Code, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LintError) Unwrap() error { return e.Err }

// UnknownFrameworkError is returned when no test framework adapter is
// registered under the requested name.
type UnknownFrameworkError struct {
	Name  string
	Known []string
}

func (e *UnknownFrameworkError) Error() string {
	return fmt.Sprintf("unknown testing framework %q (valid: %s)", e.Name, strings.Join(e.Known, ", "))
}
