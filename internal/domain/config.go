package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
)

// FormatterString is the only formatter requested from the lint engine.
const FormatterString = "string"

// DefaultFramework is used when no testing framework is configured.
const DefaultFramework = "qunit"

// LinterConfig holds the options forwarded to the lint engine.
type LinterConfig struct {
	ConfigFile    string   `yaml:"config_file"    json:"config_file,omitempty"`
	ConfigBasedir string   `yaml:"config_basedir" json:"config_basedir,omitempty"`
	Syntax        string   `yaml:"syntax"         json:"syntax,omitempty"`
	Formatter     string   `yaml:"formatter"      json:"formatter,omitempty"`
	Files         []string `yaml:"files"          json:"files,omitempty"`
}

// PolicyOptions are the raw test generation switches. Pointer types
// distinguish "not specified" from false.
type PolicyOptions struct {
	TestPassingFiles      *bool `yaml:"test_passing_files"      json:"test_passing_files,omitempty"`
	TestFailingFiles      *bool `yaml:"test_failing_files"      json:"test_failing_files,omitempty"`
	DisableTestGeneration *bool `yaml:"disable_test_generation" json:"disable_test_generation,omitempty"`
}

// GenerationPolicy decides which files get a test artifact.
type GenerationPolicy struct {
	TestPassingFiles bool `json:"test_passing_files"`
	TestFailingFiles bool `json:"test_failing_files"`
}

// Enabled reports whether any kind of test is generated.
func (p GenerationPolicy) Enabled() bool {
	return p.TestPassingFiles || p.TestFailingFiles
}

// ShouldGenerate reports whether a file with the given outcome gets a test.
func (p GenerationPolicy) ShouldGenerate(errored bool) bool {
	if errored {
		return p.TestFailingFiles
	}
	return p.TestPassingFiles
}

// ResolvePolicy turns raw switches into a policy. Unset switches default to
// true, or to !DisableTestGeneration when that one is set.
func ResolvePolicy(o PolicyOptions) GenerationPolicy {
	def := true
	if o.DisableTestGeneration != nil {
		def = !*o.DisableTestGeneration
	}
	p := GenerationPolicy{TestPassingFiles: def, TestFailingFiles: def}
	if o.TestPassingFiles != nil {
		p.TestPassingFiles = *o.TestPassingFiles
	}
	if o.TestFailingFiles != nil {
		p.TestFailingFiles = *o.TestFailingFiles
	}
	return p
}

// Options is the caller-facing configuration of a transform engine.
// It is never modified by NewConfig.
type Options struct {
	LinterConfig     LinterConfig  `yaml:"linter_config"     json:"linter_config"`
	TestingFramework string        `yaml:"testing_framework" json:"testing_framework,omitempty"`
	Group            string        `yaml:"group"             json:"group,omitempty"`
	Policy           PolicyOptions `yaml:",inline"           json:"policy"`
	Log              *bool         `yaml:"log"               json:"log,omitempty"`

	// RootDir is the input tree root; lint filenames are RootDir/relativePath.
	RootDir string `yaml:"-" json:"-"`

	OnError      func(LintResult) `yaml:"-" json:"-"`
	Console      LogSink          `yaml:"-" json:"-"`
	ErrorConsole LogSink          `yaml:"-" json:"-"`
}

// ProjectConfig is the content of .stylelint-aot.yaml: engine options plus
// settings of the build driver.
type ProjectConfig struct {
	Options `yaml:",inline"`

	Output  string   `yaml:"output"  json:"output,omitempty"`
	Command []string `yaml:"command" json:"command,omitempty"`
	Workers int      `yaml:"workers" json:"workers,omitempty"`
}

// Validate checks the engine options and driver settings.
func (c ProjectConfig) Validate() error {
	if err := c.Options.Validate(); err != nil {
		return err
	}
	if c.Workers < 0 {
		return &ConfigurationError{Message: fmt.Sprintf("workers = %d (must not be negative)", c.Workers)}
	}
	return nil
}

// Config is the resolved, immutable engine configuration.
type Config struct {
	Linter    LinterConfig
	Syntax    SyntaxResolution
	Policy    GenerationPolicy
	Framework string
	Group     string
	Log       bool
	RootDir   string

	OnError      func(LintResult)
	Console      LogSink
	ErrorConsole LogSink
}

// NewConfig resolves opts into a Config. The formatter is forced to the
// string form and files to nil so the engine is the only source of content.
func NewConfig(opts Options) (Config, error) {
	if err := opts.Validate(); err != nil {
		return Config{}, err
	}

	policy := ResolvePolicy(opts.Policy)
	syntax, err := ResolveSyntax(opts.LinterConfig.Syntax, policy)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Linter: LinterConfig{
			ConfigFile:    opts.LinterConfig.ConfigFile,
			ConfigBasedir: opts.LinterConfig.ConfigBasedir,
			Syntax:        syntax.LinterSyntax,
			Formatter:     FormatterString,
		},
		Syntax:       syntax,
		Policy:       policy,
		Framework:    opts.TestingFramework,
		Group:        opts.Group,
		Log:          opts.Log == nil || *opts.Log,
		RootDir:      opts.RootDir,
		OnError:      opts.OnError,
		Console:      opts.Console,
		ErrorConsole: opts.ErrorConsole,
	}
	if cfg.Framework == "" {
		cfg.Framework = DefaultFramework
	}
	if cfg.Console == nil {
		cfg.Console = WriterSink{W: os.Stderr}
	}
	if cfg.ErrorConsole == nil {
		cfg.ErrorConsole = WriterSink{W: os.Stderr}
	}
	return cfg, nil
}

// Validate checks the options for invalid values.
func (o Options) Validate() error {
	if o.LinterConfig.Syntax != "" && !isValidSyntax(o.LinterConfig.Syntax) {
		return &ConfigurationError{Message: fmt.Sprintf("unknown syntax %q (valid: %s)",
			o.LinterConfig.Syntax, strings.Join(ValidSyntaxes, ", "))}
	}
	if strings.ContainsAny(o.Group, `/\`) {
		return &ConfigurationError{Message: fmt.Sprintf("group %q must not contain path separators", o.Group)}
	}
	return nil
}

// Fingerprint identifies every setting that influences generated output.
func (c Config) Fingerprint() string {
	h := sha256.New()
	fmt.Fprintf(h, "config=%s\nbasedir=%s\nsyntax=%s\next=%s\npass=%t\nfail=%t\nfw=%s\ngroup=%s\nroot=%s\n",
		c.Linter.ConfigFile, c.Linter.ConfigBasedir, c.Linter.Syntax,
		strings.Join(c.Syntax.SourceExtensions, ","),
		c.Policy.TestPassingFiles, c.Policy.TestFailingFiles,
		c.Framework, c.Group, c.RootDir)
	return hex.EncodeToString(h.Sum(nil))
}

func isValidSyntax(s string) bool {
	for _, v := range ValidSyntaxes {
		if s == v {
			return true
		}
	}
	return false
}
