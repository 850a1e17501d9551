package matcher

import (
	"strings"

	"deploykit/pkg/deploytypes"
)

// CommandNameMatcher matches a command token against a command's canonical
// name (exact or abbreviated) and its alternative names (exact only).
type CommandNameMatcher struct{}

// IsMatch reports whether supplied denotes cmd. A nil command or a blank
// token is a caller error.
func (CommandNameMatcher) IsMatch(cmd deploytypes.Command, supplied string) (bool, error) {
	if cmd == nil {
		return false, deploytypes.ErrorInvalidArgument("command", "must not be nil")
	}
	if strings.TrimSpace(supplied) == "" {
		return false, deploytypes.ErrorInvalidArgument("suppliedToken", "must not be empty")
	}

	normalized := Normalize(supplied)
	desc := cmd.Describe()
	if matchesName(desc.CanonicalName, normalized) {
		return true, nil
	}

	folded := Fold(normalized)
	for _, alt := range desc.AlternativeNames {
		if folded != "" && Fold(alt) == folded {
			return true, nil
		}
	}
	return false, nil
}

// Matches returns every command in cmds that supplied denotes, preserving
// the order of cmds.
func (m CommandNameMatcher) Matches(cmds []deploytypes.Command, supplied string) ([]deploytypes.Command, error) {
	var matched []deploytypes.Command
	for _, cmd := range cmds {
		ok, err := m.IsMatch(cmd, supplied)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, cmd)
		}
	}
	return matched, nil
}
