package lint

// Option helpers for rule Configure implementations. YAML decodes integers as
// int, TOML as int64, so numeric lookups accept both plus float64.

// OptionInt returns an integer option, or the default.
func OptionInt(options map[string]any, key string, defaultValue int) int {
	v, ok := options[key]
	if !ok {
		return defaultValue
	}
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	default:
		return defaultValue
	}
}

// OptionString returns a string option, or the default.
func OptionString(options map[string]any, key string, defaultValue string) string {
	if s, ok := options[key].(string); ok {
		return s
	}
	return defaultValue
}

// OptionBool returns a boolean option, or the default.
func OptionBool(options map[string]any, key string, defaultValue bool) bool {
	if b, ok := options[key].(bool); ok {
		return b
	}
	return defaultValue
}

// OptionStringSlice returns a string slice option, or the default.
// YAML and TOML both decode lists as []any.
func OptionStringSlice(options map[string]any, key string, defaultValue []string) []string {
	v, ok := options[key]
	if !ok {
		return defaultValue
	}
	if slice, ok := v.([]string); ok {
		return slice
	}
	if iface, ok := v.([]any); ok {
		result := make([]string, 0, len(iface))
		for _, item := range iface {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
