package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/openkraft/stylelint-aot/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestConfigurationError_MissingConfig(t *testing.T) {
	err := &domain.ConfigurationError{Message: "No configuration provided for /x/a.scss"}
	assert.True(t, err.MissingConfig())
	assert.False(t, (&domain.ConfigurationError{Message: "Unknown rule foo"}).MissingConfig())
}

func TestConfigurationError_Unwrap(t *testing.T) {
	inner := errors.New("permission denied")
	err := fmt.Errorf("loading: %w", &domain.ConfigurationError{Message: "reading .stylelintignore", Err: inner})

	var cfgErr *domain.ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "reading .stylelintignore: permission denied")
}

func TestLintError_Error(t *testing.T) {
	err := &domain.LintError{Code: 1, Message: "boom"}
	assert.Equal(t, "stylelint failed (exit 1): boom", err.Error())
}
