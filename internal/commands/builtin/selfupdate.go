package builtin

import (
	"context"
	"fmt"

	"github.com/Masterminds/semver/v3"

	"deploykit/internal/version"
	"deploykit/pkg/deploytypes"
)

// SelfUpdateCommand implements "deploy selfupdate", which moves deploykit to
// the latest release or to a pinned version.
type SelfUpdateCommand struct {
	updater deploytypes.Updater
	target  string
	force   bool
}

// NewSelfUpdateCommand creates an unbound selfupdate command.
func NewSelfUpdateCommand(updater deploytypes.Updater) *SelfUpdateCommand {
	return &SelfUpdateCommand{updater: updater}
}

// Describe returns the selfupdate command's descriptor.
func (c *SelfUpdateCommand) Describe() deploytypes.CommandDescriptor {
	return deploytypes.CommandDescriptor{
		CanonicalName:    "selfupdate",
		AlternativeNames: []string{"self-update"},
		ArgumentNames:    []string{"version", "force"},
		Usage:            "deploy selfupdate [-version <version>] [-force]",
		Description:      "Update deploykit itself",
	}
}

// Bind validates the optional -version pin and reads -force.
func (c *SelfUpdateCommand) Bind(args map[string]string) (deploytypes.Command, error) {
	target := optionalValue(args, "version", "")
	if target != "" {
		if _, err := semver.NewVersion(target); err != nil {
			return nil, deploytypes.ErrorInvalidValue("version", target, err)
		}
	}
	force, err := flagValue(args, "force")
	if err != nil {
		return nil, err
	}

	bound := *c
	bound.target = target
	bound.force = force
	return &bound, nil
}

// Execute applies the target release when it is newer than the running
// version. -force applies it regardless.
func (c *SelfUpdateCommand) Execute(ctx context.Context) (deploytypes.Result, error) {
	target := c.target
	if target == "" {
		latest, err := c.updater.LatestVersion(ctx)
		if err != nil {
			return deploytypes.Result{}, deploytypes.ErrorCollaborator("selfupdate", err)
		}
		target = latest
	}

	cmp, err := version.CompareVersions(target, version.Version)
	if err != nil {
		return deploytypes.Result{}, deploytypes.ErrorInvalidValue("version", target, err)
	}
	if cmp <= 0 && !c.force {
		return deploytypes.Success(fmt.Sprintf("deploykit v%s is up to date", version.Version)), nil
	}

	if err := c.updater.Apply(ctx, target); err != nil {
		return deploytypes.Result{}, deploytypes.ErrorCollaborator("selfupdate", err)
	}
	return deploytypes.Success(fmt.Sprintf("Updated deploykit from v%s to v%s", version.Version, target)), nil
}
