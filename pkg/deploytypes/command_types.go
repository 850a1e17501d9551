// Package deploytypes defines command system types for deploykit.
// This file contains the static command metadata, the parsed argument pairs
// produced from the command line, and command execution results.
package deploytypes

import "strings"

// CommandDescriptor is the static metadata attached to each command variant.
// It is created once when the command is constructed and never modified.
type CommandDescriptor struct {
	CanonicalName    string   `json:"canonical_name"`              // Primary command name
	AlternativeNames []string `json:"alternative_names,omitempty"` // Exact-match-only aliases
	ArgumentNames    []string `json:"argument_names,omitempty"`    // Declared argument names, in match order
	Usage            string   `json:"usage"`                       // Usage syntax
	Description      string   `json:"description"`                 // One-line summary for help listings
}

// Names returns the canonical name followed by all alternative names, in
// the order the registry claims them.
func (d CommandDescriptor) Names() []string {
	names := make([]string, 0, 1+len(d.AlternativeNames))
	names = append(names, d.CanonicalName)
	return append(names, d.AlternativeNames...)
}

// ParsedArgument is a single named argument found on the command line.
// HasValue is false for flag-only arguments such as "-force".
type ParsedArgument struct {
	Name     string
	Value    string
	HasValue bool
}

// String renders the argument back into its inline command-line form.
func (p ParsedArgument) String() string {
	if !p.HasValue {
		return "-" + p.Name
	}
	if strings.ContainsAny(p.Value, " \t") {
		return "-" + p.Name + ":\"" + p.Value + "\""
	}
	return "-" + p.Name + ":" + p.Value
}

// Result is the outcome of executing a command.
type Result struct {
	ExitCode int
	Message  string
}

// Success returns a zero exit code result with the given message.
func Success(message string) Result {
	return Result{ExitCode: 0, Message: message}
}
