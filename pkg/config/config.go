// Package config defines core configuration types for gogd.
// These types are pure data structures; file discovery and loading live in
// internal/configloader.
package config

// Severity represents the severity level of a lint diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IsValid returns true if the severity is a known level.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// RuleConfig holds per-rule configuration options.
type RuleConfig struct {
	Enabled  *bool          `yaml:"enabled" toml:"enabled"`
	Severity *string        `yaml:"severity" toml:"severity"`
	Options  map[string]any `yaml:"options" toml:"options"`
}

// IndentType selects the indentation character for formatted output.
type IndentType string

const (
	IndentTabs   IndentType = "tabs"
	IndentSpaces IndentType = "spaces"
)

// FormatConfig controls the formatter.
type FormatConfig struct {
	// LineLength is the visual line-length limit used for reporting.
	LineLength int `yaml:"line_length" toml:"line_length"`

	// IndentType is "tabs" or "spaces".
	IndentType IndentType `yaml:"indent_type" toml:"indent_type"`

	// IndentSize is the number of spaces per level when IndentType is "spaces".
	IndentSize int `yaml:"indent_size" toml:"indent_size"`

	// Reorder enables declaration reordering after formatting.
	Reorder bool `yaml:"reorder" toml:"reorder"`
}

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// Config is the root configuration structure for gogd.
type Config struct {
	// Format configures the formatter.
	Format FormatConfig `yaml:"format" toml:"format"`

	// SeverityDefault is the default severity for rules that don't specify one.
	SeverityDefault string `yaml:"severity_default" toml:"severity_default"`

	// Rules contains per-rule configuration keyed by rule ID.
	Rules map[string]RuleConfig `yaml:"rules" toml:"rules"`

	// Exclude contains glob patterns for files to skip during discovery.
	Exclude []string `yaml:"exclude" toml:"exclude"`

	// CLI-level options (not persisted to config files).

	// Check reports whether files would change without writing them.
	Check bool `yaml:"-" toml:"-"`

	// Diff prints unified diffs instead of rewriting files.
	Diff bool `yaml:"-" toml:"-"`

	// Stdout prints formatted output to stdout instead of writing files.
	Stdout bool `yaml:"-" toml:"-"`

	// UnsafeSkipChecks disables the equivalence and idempotence verifiers.
	UnsafeSkipChecks bool `yaml:"-" toml:"-"`

	// Strict treats warnings as errors for exit-code purposes.
	Strict bool `yaml:"-" toml:"-"`

	// Output specifies the diagnostic output format.
	Output OutputFormat `yaml:"-" toml:"-"`

	// Jobs specifies the number of parallel workers. Zero means GOMAXPROCS.
	Jobs int `yaml:"-" toml:"-"`

	// EnableRules contains rule IDs to explicitly enable.
	EnableRules []string `yaml:"-" toml:"-"`

	// DisableRules contains rule IDs to explicitly disable.
	DisableRules []string `yaml:"-" toml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Format: FormatConfig{
			LineLength: 100,
			IndentType: IndentTabs,
			IndentSize: 4,
			Reorder:    false,
		},
		SeverityDefault: string(SeverityWarning),
		Rules:           make(map[string]RuleConfig),
		Exclude:         nil,
		Output:          FormatText,
		Jobs:            0,
	}
}
