package builtin

import (
	"context"

	"deploykit/internal/version"
	"deploykit/pkg/deploytypes"
)

// VersionCommand implements "deploy version [-detailed]".
type VersionCommand struct {
	detailed bool
}

// Describe returns the version command's descriptor.
func (c *VersionCommand) Describe() deploytypes.CommandDescriptor {
	return deploytypes.CommandDescriptor{
		CanonicalName: "version",
		ArgumentNames: []string{"detailed"},
		Usage:         "deploy version [-detailed]",
		Description:   "Show deploykit version information",
	}
}

// Bind reads the optional "detailed" flag.
func (c *VersionCommand) Bind(args map[string]string) (deploytypes.Command, error) {
	detailed, err := flagValue(args, "detailed")
	if err != nil {
		return nil, err
	}
	return &VersionCommand{detailed: detailed}, nil
}

// Execute reports the one-line version, or the full build metadata
// including the release and prerelease tag when detailed is set.
func (c *VersionCommand) Execute(_ context.Context) (deploytypes.Result, error) {
	if c.detailed {
		return deploytypes.Success(version.GetDetailedVersion()), nil
	}
	return deploytypes.Success(version.GetFormattedVersion()), nil
}
