package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/openkraft/stylelint-aot/internal/domain"
	"gopkg.in/yaml.v3"
)

const fileName = ".stylelint-aot.yaml"

// legacyOptions holds settings from earlier releases that are translated
// into canonical fields at load time.
type legacyOptions struct {
	DisableConsoleLogging      *bool `yaml:"disableConsoleLogging"`
	DisableConsoleLoggingSnake *bool `yaml:"disable_console_logging"`
}

// YAMLLoader implements domain.ConfigLoader by reading .stylelint-aot.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .stylelint-aot.yaml from projectPath.
// Returns a zero config if the file does not exist.
func (l *YAMLLoader) Load(projectPath string) (domain.ProjectConfig, []string, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.ProjectConfig{}, nil, nil
		}
		return domain.ProjectConfig{}, nil, err
	}

	var cfg domain.ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ProjectConfig{}, nil, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	var legacy legacyOptions
	if err := yaml.Unmarshal(data, &legacy); err != nil {
		return domain.ProjectConfig{}, nil, fmt.Errorf("parsing %s: %w", fileName, err)
	}
	notices := translateLegacy(&cfg, legacy)

	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, nil, fmt.Errorf("invalid %s: %w", fileName, err)
	}

	return cfg, notices, nil
}

// translateLegacy maps deprecated logging switches onto cfg.Log. An
// explicit log setting always wins.
func translateLegacy(cfg *domain.ProjectConfig, legacy legacyOptions) []string {
	var notices []string
	for _, old := range []struct {
		name  string
		value *bool
	}{
		{"disableConsoleLogging", legacy.DisableConsoleLogging},
		{"disable_console_logging", legacy.DisableConsoleLoggingSnake},
	} {
		if old.value == nil {
			continue
		}
		notices = append(notices, fmt.Sprintf("%q is deprecated and will be removed, use \"log\" instead", old.name))
		if cfg.Log == nil {
			enabled := !*old.value
			cfg.Log = &enabled
		}
	}
	return notices
}
