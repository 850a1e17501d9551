package matcher

import (
	"strings"

	"deploykit/pkg/deploytypes"
)

// ArgumentNameMatcher matches supplied argument tokens such as "-pack" or
// "--Version" against a command's declared argument names.
type ArgumentNameMatcher struct{}

// IsMatch reports whether supplied denotes the canonical argument name.
// An empty canonical name is a wiring error; an empty or blank supplied token
// never matches.
func (ArgumentNameMatcher) IsMatch(canonical string, supplied string) (bool, error) {
	if strings.TrimSpace(canonical) == "" {
		return false, deploytypes.ErrorInvalidArgument("canonicalArgumentName", "must not be empty")
	}
	if strings.TrimSpace(supplied) == "" {
		return false, nil
	}
	return matchesName(canonical, Normalize(supplied)), nil
}

// Resolve returns the first declared name that supplied matches, in
// declaration order. The second result is false when nothing matches.
func (ArgumentNameMatcher) Resolve(declared []string, supplied string) (string, bool, error) {
	return resolve(declared, Normalize(supplied))
}

// ResolveParsed is Resolve for a name whose modifier prefix was already
// stripped by the parser. No further prefix is removed, so "---id" (parsed
// as "-id") does not match "id".
func (ArgumentNameMatcher) ResolveParsed(declared []string, name string) (string, bool, error) {
	return resolve(declared, strings.TrimSpace(name))
}

func resolve(declared []string, normalized string) (string, bool, error) {
	for _, name := range declared {
		if strings.TrimSpace(name) == "" {
			return "", false, deploytypes.ErrorInvalidArgument("canonicalArgumentName", "must not be empty")
		}
		if matchesName(name, normalized) {
			return name, true, nil
		}
	}
	return "", false, nil
}
