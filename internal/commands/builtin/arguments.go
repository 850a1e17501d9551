// Package builtin provides the deploy command variants and the catalog that
// registers them in display order.
package builtin

import (
	"strconv"
	"strings"

	"deploykit/pkg/deploytypes"
)

// requiredValue returns the non-blank value bound to name.
func requiredValue(command string, args map[string]string, name string) (string, error) {
	value := strings.TrimSpace(args[name])
	if value == "" {
		return "", deploytypes.ErrorMissingArgument(command, name)
	}
	return value, nil
}

// flagValue reports whether a flag argument is set. A flag bound without a
// value is set; an explicit value must parse as a boolean ("-force:false").
func flagValue(args map[string]string, name string) (bool, error) {
	value, present := args[name]
	if !present {
		return false, nil
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return true, nil
	}
	set, err := strconv.ParseBool(value)
	if err != nil {
		return false, deploytypes.ErrorInvalidValue(name, value, err)
	}
	return set, nil
}

// optionalValue returns the trimmed value bound to name, or fallback when
// the argument is absent or bound without a value.
func optionalValue(args map[string]string, name string, fallback string) string {
	if value := strings.TrimSpace(args[name]); value != "" {
		return value
	}
	return fallback
}
