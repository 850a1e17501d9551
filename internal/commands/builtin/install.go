package builtin

import (
	"context"
	"fmt"

	"github.com/Masterminds/semver/v3"

	"deploykit/pkg/deploytypes"
)

// InstallCommand implements "deploy install", which installs a package
// through the PackageManager.
type InstallCommand struct {
	packages deploytypes.PackageManager
	req      deploytypes.InstallRequest
	bound    bool
}

// NewInstallCommand creates an unbound install command.
func NewInstallCommand(packages deploytypes.PackageManager) *InstallCommand {
	return &InstallCommand{packages: packages}
}

// Describe returns the install command's descriptor.
func (c *InstallCommand) Describe() deploytypes.CommandDescriptor {
	return deploytypes.CommandDescriptor{
		CanonicalName:    "install",
		AlternativeNames: []string{"i"},
		ArgumentNames:    []string{"id", "version", "source", "force", "prerelease"},
		Usage:            "deploy install -id <package> [-version <constraint>] [-source <name>] [-force] [-prerelease]",
		Description:      "Install a package",
	}
}

// Bind validates the package id and the version constraint.
func (c *InstallCommand) Bind(args map[string]string) (deploytypes.Command, error) {
	id, err := requiredValue("install", args, "id")
	if err != nil {
		return nil, err
	}
	constraint := optionalValue(args, "version", "")
	if constraint != "" {
		if _, err := semver.NewConstraint(constraint); err != nil {
			return nil, deploytypes.ErrorInvalidValue("version", constraint, err)
		}
	}
	force, err := flagValue(args, "force")
	if err != nil {
		return nil, err
	}
	prerelease, err := flagValue(args, "prerelease")
	if err != nil {
		return nil, err
	}

	bound := *c
	bound.req = deploytypes.InstallRequest{
		PackageID:  id,
		Version:    constraint,
		Source:     optionalValue(args, "source", ""),
		Force:      force,
		Prerelease: prerelease,
	}
	bound.bound = true
	return &bound, nil
}

// Execute installs the bound package. An unbound command reports a
// missing -id.
func (c *InstallCommand) Execute(ctx context.Context) (deploytypes.Result, error) {
	if !c.bound {
		return deploytypes.Result{}, deploytypes.ErrorMissingArgument("install", "id")
	}
	if err := c.packages.Install(ctx, c.req); err != nil {
		return deploytypes.Result{}, deploytypes.ErrorCollaborator("install", err)
	}

	msg := fmt.Sprintf("Installed %s", c.req.PackageID)
	if c.req.Version != "" {
		msg += fmt.Sprintf(" (%s)", c.req.Version)
	}
	return deploytypes.Success(msg), nil
}
