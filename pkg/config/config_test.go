package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	assert.Equal(t, 100, cfg.Format.LineLength)
	assert.Equal(t, IndentTabs, cfg.Format.IndentType)
	assert.Equal(t, 4, cfg.Format.IndentSize)
	assert.False(t, cfg.Format.Reorder)
	assert.Equal(t, string(SeverityWarning), cfg.SeverityDefault)
	assert.NotNil(t, cfg.Rules)
	assert.Equal(t, FormatText, cfg.Output)
}

func TestSeverityIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, SeverityError.IsValid())
	assert.True(t, SeverityWarning.IsValid())
	assert.True(t, SeverityInfo.IsValid())
	assert.False(t, Severity("fatal").IsValid())
	assert.False(t, Severity("").IsValid())
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	data := []byte(`
format:
  line_length: 120
  indent_type: spaces
  indent_size: 2
  reorder: true
severity_default: error
exclude:
  - "addons/**"
  - "build/*.gd"
rules:
  max-line-length:
    severity: error
    options:
      length: 120
  unused-argument:
    enabled: false
`)

	cfg, err := FromYAML(data)
	require.NoError(t, err)

	assert.Equal(t, 120, cfg.Format.LineLength)
	assert.Equal(t, IndentSpaces, cfg.Format.IndentType)
	assert.Equal(t, 2, cfg.Format.IndentSize)
	assert.True(t, cfg.Format.Reorder)
	assert.Equal(t, "error", cfg.SeverityDefault)
	assert.Equal(t, []string{"addons/**", "build/*.gd"}, cfg.Exclude)

	mll, ok := cfg.Rules["max-line-length"]
	require.True(t, ok)
	require.NotNil(t, mll.Severity)
	assert.Equal(t, "error", *mll.Severity)
	assert.Equal(t, 120, mll.Options["length"])

	ua, ok := cfg.Rules["unused-argument"]
	require.True(t, ok)
	require.NotNil(t, ua.Enabled)
	assert.False(t, *ua.Enabled)
}

func TestFromYAMLFillsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := FromYAML([]byte("exclude:\n  - \"vendor/**\"\n"))
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.Format.LineLength)
	assert.Equal(t, IndentTabs, cfg.Format.IndentType)
	assert.Equal(t, string(SeverityWarning), cfg.SeverityDefault)
	assert.NotNil(t, cfg.Rules)
}

func TestFromYAMLInvalid(t *testing.T) {
	t.Parallel()

	_, err := FromYAML([]byte("format: [not, a, mapping]"))
	assert.Error(t, err)
}

func TestFromTOML(t *testing.T) {
	t.Parallel()

	data := []byte(`
severity_default = "info"
exclude = ["addons/**"]

[format]
line_length = 80
indent_type = "spaces"
indent_size = 4

[rules.max-line-length]
severity = "error"

[rules.max-line-length.options]
length = 80
`)

	cfg, err := FromTOML(data)
	require.NoError(t, err)

	assert.Equal(t, 80, cfg.Format.LineLength)
	assert.Equal(t, IndentSpaces, cfg.Format.IndentType)
	assert.Equal(t, "info", cfg.SeverityDefault)

	mll, ok := cfg.Rules["max-line-length"]
	require.True(t, ok)
	require.NotNil(t, mll.Severity)
	assert.Equal(t, "error", *mll.Severity)
}

func TestDecodeByExtension(t *testing.T) {
	t.Parallel()

	yamlCfg, err := Decode(".gogd.yaml", []byte("format:\n  line_length: 90\n"))
	require.NoError(t, err)
	assert.Equal(t, 90, yamlCfg.Format.LineLength)

	tomlCfg, err := Decode("gogd.toml", []byte("[format]\nline_length = 90\n"))
	require.NoError(t, err)
	assert.Equal(t, 90, tomlCfg.Format.LineLength)
}

func TestDefaultTemplateParses(t *testing.T) {
	t.Parallel()

	cfg, err := FromYAML([]byte(DefaultTemplate))
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Format.LineLength)
	assert.Equal(t, []string{"addons/**"}, cfg.Exclude)
}

func TestToYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	cfg.Format.LineLength = 110
	cfg.Exclude = []string{"addons/**"}

	data, err := cfg.ToYAML()
	require.NoError(t, err)

	back, err := FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, 110, back.Format.LineLength)
	assert.Equal(t, cfg.Exclude, back.Exclude)
}
