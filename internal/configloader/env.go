package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/gogd/pkg/config"
)

// envVarPrefix is the prefix for all gogd environment variables.
const envVarPrefix = "GOGD_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"SEVERITY_DEFAULT": {field: "severity_default", typ: envTypeString},
	"OUTPUT":           {field: "output", typ: envTypeString},
	"JOBS":             {field: "jobs", typ: envTypeInt},
	"LINE_LENGTH":      {field: "format.line_length", typ: envTypeInt},
	"INDENT_TYPE":      {field: "format.indent_type", typ: envTypeString},
	"INDENT_SIZE":      {field: "format.indent_size", typ: envTypeInt},
	"REORDER":          {field: "format.reorder", typ: envTypeBool},
	"EXCLUDE":          {field: "exclude", typ: envTypeSlice},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with GOGD_ (e.g., GOGD_LINE_LENGTH).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "severity_default":
		cfg.SeverityDefault = value
	case "output":
		cfg.Output = config.OutputFormat(value)
	case "format.indent_type":
		cfg.Format.IndentType = config.IndentType(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "format.reorder":
		cfg.Format.Reorder = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	case "format.line_length":
		cfg.Format.LineLength = value
	case "format.indent_size":
		cfg.Format.IndentSize = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field path.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "exclude":
		cfg.Exclude = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		"GOGD_SEVERITY_DEFAULT": "Default severity: error, warning, or info",
		"GOGD_OUTPUT":           "Output format: text or json",
		"GOGD_JOBS":             "Number of parallel workers (0 = auto)",
		"GOGD_LINE_LENGTH":      "Maximum visual line length",
		"GOGD_INDENT_TYPE":      "Indentation type: tabs or spaces",
		"GOGD_INDENT_SIZE":      "Spaces per indent level when using spaces",
		"GOGD_REORDER":          "Reorder declarations while formatting: true or false",
		"GOGD_EXCLUDE":          "Comma-separated list of exclude patterns",
	}
}
