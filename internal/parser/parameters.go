// Package parser turns the command-line tokens that follow the command name
// into an ordered list of named arguments.
//
// Recognized shapes:
//
//	-name            flag without a value
//	-name:value      inline value, ':' or '=' separated
//	-name value      value taken from the following token
//
// The leading modifier may be "--", "-" or "/". Parsing is permissive:
// tokens that fit none of these shapes are dropped, never reported as errors.
package parser

import (
	"strings"

	"deploykit/internal/matcher"
	"deploykit/pkg/deploytypes"
)

// ParseParameters parses commandArguments into named arguments, preserving
// order and duplicates.
func ParseParameters(commandArguments []string) []deploytypes.ParsedArgument {
	return ParseParametersFunc(commandArguments, nil)
}

// ParseParametersFunc is ParseParameters with a callback invoked for each
// token that was dropped. discard may be nil.
func ParseParametersFunc(commandArguments []string, discard func(token string)) []deploytypes.ParsedArgument {
	if discard == nil {
		discard = func(string) {}
	}

	parsed := make([]deploytypes.ParsedArgument, 0, len(commandArguments))
	for i := 0; i < len(commandArguments); i++ {
		token := commandArguments[i]

		// A bare value here has no pending argument to attach to.
		if !matcher.HasModifierPrefix(token) {
			discard(token)
			continue
		}

		name, value, hasValue := splitInline(matcher.Normalize(token))
		if name == "" {
			discard(token)
			continue
		}

		if !hasValue && i+1 < len(commandArguments) && !matcher.HasModifierPrefix(commandArguments[i+1]) {
			value, hasValue = commandArguments[i+1], true
			i++
		}

		parsed = append(parsed, deploytypes.ParsedArgument{
			Name:     name,
			Value:    value,
			HasValue: hasValue,
		})
	}
	return parsed
}

// splitInline separates "name:value" or "name=value" at the first separator.
func splitInline(body string) (name string, value string, hasValue bool) {
	idx := strings.IndexAny(body, ":=")
	if idx < 0 {
		return strings.TrimSpace(body), "", false
	}
	return strings.TrimSpace(body[:idx]), unquote(body[idx+1:]), true
}

// unquote removes one pair of matching surrounding quotes.
func unquote(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '"' || first == '\'') && first == last {
			return value[1 : len(value)-1]
		}
	}
	return value
}
