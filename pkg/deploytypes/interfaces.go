// Package deploytypes defines core interfaces and data structures used throughout deploykit.
//
// This package contains the types shared between the command resolution engine,
// the command variants, and the collaborator backends that perform domain actions.
//
// # Architecture Overview
//
// deploykit turns a raw argument vector into a fully bound command:
//
//   - Registry: the ordered, immutable set of available commands
//   - Interpreter: selects a command by name and binds named arguments onto it
//   - Commands: variants that execute a domain action through a collaborator
//   - Collaborators: narrow interfaces over package index, packaging, sources, updates
//
// # File Organization
//
// ## Command System Types (command_types.go)
//
//   - CommandDescriptor: static metadata for a command variant
//   - ParsedArgument: one named argument found on the command line
//   - Result: outcome of executing a command
//
// ## Core Interfaces (core_interfaces.go)
//
//   - Command: describe, bind and execute
//   - Collaborators: PackageManager, Cleaner, Packager, Publisher, SourceStore, Updater, HelpRenderer
//
// ## Errors (errors.go)
//
// Coded error constructors. Callers inspect codes with serum.Code.
//
// # Usage Patterns
//
// Commands are bound by the interpreter and executed by the caller:
//
//	cmd, err := interp.GetCommand(os.Args[1:])
//	if err != nil {
//		return err
//	}
//	if cmd == nil {
//		cmd = help
//	}
//	result, err := cmd.Execute(ctx)
package deploytypes
