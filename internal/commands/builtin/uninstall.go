package builtin

import (
	"context"
	"fmt"

	"github.com/Masterminds/semver/v3"

	"deploykit/pkg/deploytypes"
)

// UninstallCommand implements "deploy uninstall", which removes an installed
// package through the PackageManager.
type UninstallCommand struct {
	packages deploytypes.PackageManager
	req      deploytypes.UninstallRequest
	bound    bool
}

// NewUninstallCommand creates an unbound uninstall command.
func NewUninstallCommand(packages deploytypes.PackageManager) *UninstallCommand {
	return &UninstallCommand{packages: packages}
}

// Describe returns the uninstall command's descriptor.
func (c *UninstallCommand) Describe() deploytypes.CommandDescriptor {
	return deploytypes.CommandDescriptor{
		CanonicalName:    "uninstall",
		AlternativeNames: []string{"remove"},
		ArgumentNames:    []string{"id", "version", "force"},
		Usage:            "deploy uninstall -id <package> [-version <version>] [-force]",
		Description:      "Remove an installed package",
	}
}

// Bind validates the package id and the optional exact version.
func (c *UninstallCommand) Bind(args map[string]string) (deploytypes.Command, error) {
	id, err := requiredValue("uninstall", args, "id")
	if err != nil {
		return nil, err
	}
	ver := optionalValue(args, "version", "")
	if ver != "" {
		if _, err := semver.NewVersion(ver); err != nil {
			return nil, deploytypes.ErrorInvalidValue("version", ver, err)
		}
	}
	force, err := flagValue(args, "force")
	if err != nil {
		return nil, err
	}

	bound := *c
	bound.req = deploytypes.UninstallRequest{PackageID: id, Version: ver, Force: force}
	bound.bound = true
	return &bound, nil
}

// Execute removes the bound package. An unbound command reports a
// missing -id.
func (c *UninstallCommand) Execute(ctx context.Context) (deploytypes.Result, error) {
	if !c.bound {
		return deploytypes.Result{}, deploytypes.ErrorMissingArgument("uninstall", "id")
	}
	if err := c.packages.Uninstall(ctx, c.req); err != nil {
		return deploytypes.Result{}, deploytypes.ErrorCollaborator("uninstall", err)
	}
	return deploytypes.Success(fmt.Sprintf("Uninstalled %s", c.req.PackageID)), nil
}
