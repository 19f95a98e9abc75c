package config

// DefaultTemplate is the commented starter configuration written by
// `gogd init`.
const DefaultTemplate = `# gogd configuration
# See 'gogd rules' for the full rule list.

format:
  # Visual line-length limit reported by the max-line-length rule.
  line_length: 100
  # Indentation for formatted output: "tabs" or "spaces".
  indent_type: tabs
  # Spaces per level when indent_type is "spaces".
  indent_size: 4
  # Reorder declarations to match the style guide after formatting.
  reorder: false

# Default severity for rules that don't set one: error, warning, or info.
severity_default: warning

# Glob patterns for files to skip.
exclude:
  - "addons/**"

# Per-rule overrides, keyed by rule ID.
rules: {}
#  max-line-length:
#    severity: error
#    options:
#      length: 120
#  unused-argument:
#    enabled: false
`
