package deploytypes

import (
	"github.com/serum-errors/go-serum"
)

const (
	ECodeInvalidArgument  = "deploy-error-invalid-argument"
	ECodeRegistryConflict = "deploy-error-registry-conflict"
	ECodeInvalidValue     = "deploy-error-invalid-value"
	ECodeMissingArgument  = "deploy-error-missing-argument"
	ECodeIo               = "deploy-error-io"
	ECodeSerialization    = "deploy-error-serialization"
	ECodeConfig           = "deploy-error-config"
	ECodeCollaborator     = "deploy-error-collaborator"
)

// ErrorInvalidArgument is returned when a caller passes a value that can only
// come from broken wiring, such as an empty canonical argument name.
//
// Errors:
//
//   - deploy-error-invalid-argument --
func ErrorInvalidArgument(param string, reason string) error {
	return serum.Error(ECodeInvalidArgument,
		serum.WithMessageTemplate("invalid argument {{param}}: {{reason}}"),
		serum.WithDetail("param", param),
		serum.WithDetail("reason", reason),
	)
}

// ErrorRegistryConflict is returned when two commands claim the same name.
//
// Errors:
//
//   - deploy-error-registry-conflict --
func ErrorRegistryConflict(name string, owner string, claimant string) error {
	return serum.Error(ECodeRegistryConflict,
		serum.WithMessageTemplate("name {{name}} of command {{claimant}} is already claimed by command {{owner}}"),
		serum.WithDetail("name", name),
		serum.WithDetail("owner", owner),
		serum.WithDetail("claimant", claimant),
	)
}

// ErrorInvalidValue is returned by Bind when an argument value is unusable.
//
// Errors:
//
//   - deploy-error-invalid-value --
func ErrorInvalidValue(argument string, value string, cause error) error {
	return serum.Error(ECodeInvalidValue,
		serum.WithMessageTemplate("invalid value {{value}} for argument {{argument}}"),
		serum.WithDetail("argument", argument),
		serum.WithDetail("value", value),
		serum.WithCause(cause),
	)
}

// ErrorMissingArgument is returned by Execute when a required argument was not bound.
//
// Errors:
//
//   - deploy-error-missing-argument --
func ErrorMissingArgument(command string, argument string) error {
	return serum.Error(ECodeMissingArgument,
		serum.WithMessageTemplate("command {{command}} requires argument -{{argument}}"),
		serum.WithDetail("command", command),
		serum.WithDetail("argument", argument),
	)
}

// ErrorIo wraps filesystem errors.
//
// Errors:
//
//   - deploy-error-io --
func ErrorIo(context string, path string, cause error) error {
	return serum.Error(ECodeIo,
		serum.WithMessageTemplate("io error: {{context}} ({{path}})"),
		serum.WithDetail("context", context),
		serum.WithDetail("path", path),
		serum.WithCause(cause),
	)
}

// ErrorSerialization is returned when a persisted document cannot be encoded or decoded.
//
// Errors:
//
//   - deploy-error-serialization --
func ErrorSerialization(context string, cause error) error {
	return serum.Errorf(ECodeSerialization, "serialization error: %s: %w", context, cause)
}

// ErrorConfig is returned when configuration cannot be loaded.
//
// Errors:
//
//   - deploy-error-config --
func ErrorConfig(source string, cause error) error {
	return serum.Error(ECodeConfig,
		serum.WithMessageTemplate("failed to load configuration from {{source}}"),
		serum.WithDetail("source", source),
		serum.WithCause(cause),
	)
}

// ErrorCollaborator wraps failures reported by a backend a command delegated to.
//
// Errors:
//
//   - deploy-error-collaborator --
func ErrorCollaborator(command string, cause error) error {
	return serum.Errorf(ECodeCollaborator, "%s failed: %w", command, cause)
}
