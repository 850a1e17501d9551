// Package commands provides the command registry for deploykit.
// The registry is an ordered, immutable set of commands: its order is the
// help-listing order and the first-match precedence used during resolution.
package commands

import (
	"fmt"
	"strings"

	"deploykit/internal/matcher"
	"deploykit/pkg/deploytypes"
)

// Registry holds the available commands in display and precedence order.
// It is validated when built and never modified afterwards, so it can be
// shared between goroutines without locking.
type Registry struct {
	commands []deploytypes.Command
	names    map[string]int // folded canonical and alternative names to index
}

// NewRegistry builds a registry from cmds in the given order. It returns an
// error if a canonical name is empty or carries a modifier prefix, if two
// commands share a name case-insensitively (canonical or alternative), or if
// a command declares an empty or duplicate argument name.
func NewRegistry(cmds ...deploytypes.Command) (*Registry, error) {
	r := &Registry{
		commands: make([]deploytypes.Command, 0, len(cmds)),
		names:    make(map[string]int),
	}

	// Canonical names first, so an alias that shadows a later command's
	// canonical name is reported against that command.
	for i, cmd := range cmds {
		if cmd == nil {
			return nil, deploytypes.ErrorInvalidArgument("command", fmt.Sprintf("command at position %d is nil", i))
		}
		desc := cmd.Describe()
		if err := validateDescriptor(desc); err != nil {
			return nil, err
		}
		if err := r.claim(desc.CanonicalName, i, cmds); err != nil {
			return nil, err
		}
		r.commands = append(r.commands, cmd)
	}

	// Re-claiming a command's own canonical name is a no-op.
	for i, cmd := range r.commands {
		desc := cmd.Describe()
		for _, name := range desc.Names() {
			if strings.TrimSpace(name) == "" {
				return nil, deploytypes.ErrorInvalidArgument("alternativeName",
					fmt.Sprintf("command %s declares an empty alternative name", desc.CanonicalName))
			}
			if err := r.claim(name, i, cmds); err != nil {
				return nil, err
			}
		}
	}

	return r, nil
}

func (r *Registry) claim(name string, idx int, cmds []deploytypes.Command) error {
	key := matcher.Fold(name)
	if owner, exists := r.names[key]; exists {
		if owner == idx {
			// An alias repeating its own command's name is harmless.
			return nil
		}
		return deploytypes.ErrorRegistryConflict(name,
			cmds[owner].Describe().CanonicalName, cmds[idx].Describe().CanonicalName)
	}
	r.names[key] = idx
	return nil
}

func validateDescriptor(desc deploytypes.CommandDescriptor) error {
	if strings.TrimSpace(desc.CanonicalName) == "" {
		return deploytypes.ErrorInvalidArgument("canonicalName", "command name cannot be empty")
	}
	if matcher.HasModifierPrefix(desc.CanonicalName) {
		return deploytypes.ErrorInvalidArgument("canonicalName",
			fmt.Sprintf("command name %s must not start with a modifier prefix", desc.CanonicalName))
	}

	seen := make(map[string]struct{}, len(desc.ArgumentNames))
	for _, arg := range desc.ArgumentNames {
		if strings.TrimSpace(arg) == "" {
			return deploytypes.ErrorInvalidArgument("argumentName",
				fmt.Sprintf("command %s declares an empty argument name", desc.CanonicalName))
		}
		key := matcher.Fold(arg)
		if _, dup := seen[key]; dup {
			return deploytypes.ErrorInvalidArgument("argumentName",
				fmt.Sprintf("command %s declares argument %s twice", desc.CanonicalName, arg))
		}
		seen[key] = struct{}{}
	}
	return nil
}

// Commands returns the registered commands in registry order.
// The returned slice is a copy and can be safely modified.
func (r *Registry) Commands() []deploytypes.Command {
	out := make([]deploytypes.Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// Descriptors returns the descriptor of every command in registry order.
func (r *Registry) Descriptors() []deploytypes.CommandDescriptor {
	out := make([]deploytypes.CommandDescriptor, 0, len(r.commands))
	for _, cmd := range r.commands {
		out = append(out, cmd.Describe())
	}
	return out
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	return len(r.commands)
}

// Get retrieves a command by its full canonical or alternative name,
// ignoring case. Abbreviations are not resolved here; see the interpreter.
func (r *Registry) Get(name string) (deploytypes.Command, bool) {
	idx, ok := r.names[matcher.Fold(strings.TrimSpace(name))]
	if !ok {
		return nil, false
	}
	return r.commands[idx], true
}

// IsValidCommand checks if name is a full canonical or alternative name.
func (r *Registry) IsValidCommand(name string) bool {
	_, ok := r.Get(name)
	return ok
}
