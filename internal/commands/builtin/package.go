package builtin

import (
	"context"

	"github.com/Masterminds/semver/v3"

	"deploykit/pkg/deploytypes"
)

// PackageCommand implements "deploy package", which builds a package from a
// specification file.
type PackageCommand struct {
	packager deploytypes.Packager
	req      deploytypes.PackRequest
	bound    bool
}

// NewPackageCommand creates an unbound package command.
func NewPackageCommand(packager deploytypes.Packager) *PackageCommand {
	return &PackageCommand{packager: packager}
}

// Describe returns the package command's descriptor.
func (c *PackageCommand) Describe() deploytypes.CommandDescriptor {
	return deploytypes.CommandDescriptor{
		CanonicalName:    "package",
		AlternativeNames: []string{"pack"},
		ArgumentNames:    []string{"spec", "output", "version"},
		Usage:            "deploy package -spec <file> [-output <directory>] [-version <version>]",
		Description:      "Build a package from a specification file",
	}
}

// Bind validates the specification file and the optional exact version.
// The output directory defaults to the current one.
func (c *PackageCommand) Bind(args map[string]string) (deploytypes.Command, error) {
	spec, err := requiredValue("package", args, "spec")
	if err != nil {
		return nil, err
	}
	ver := optionalValue(args, "version", "")
	if ver != "" {
		if _, err := semver.NewVersion(ver); err != nil {
			return nil, deploytypes.ErrorInvalidValue("version", ver, err)
		}
	}

	bound := *c
	bound.req = deploytypes.PackRequest{
		SpecFile:  spec,
		OutputDir: optionalValue(args, "output", "."),
		Version:   ver,
	}
	bound.bound = true
	return &bound, nil
}

// Execute builds the package and reports the artifact path.
func (c *PackageCommand) Execute(ctx context.Context) (deploytypes.Result, error) {
	if !c.bound {
		return deploytypes.Result{}, deploytypes.ErrorMissingArgument("package", "spec")
	}
	artifact, err := c.packager.Pack(ctx, c.req)
	if err != nil {
		return deploytypes.Result{}, deploytypes.ErrorCollaborator("package", err)
	}
	return deploytypes.Success("Created " + artifact), nil
}
