package builtin

import (
	"context"
	"fmt"
	"strings"

	"deploykit/pkg/deploytypes"
)

// CleanupCommand implements "deploy cleanup", which removes leftover files
// from the package directory.
type CleanupCommand struct {
	cleaner    deploytypes.Cleaner
	defaultDir string
	req        deploytypes.CleanRequest
}

// NewCleanupCommand creates a cleanup command that works on defaultDir
// unless -directory is given.
func NewCleanupCommand(cleaner deploytypes.Cleaner, defaultDir string) *CleanupCommand {
	return &CleanupCommand{
		cleaner:    cleaner,
		defaultDir: defaultDir,
		req:        deploytypes.CleanRequest{Directory: defaultDir},
	}
}

// Describe returns the cleanup command's descriptor.
func (c *CleanupCommand) Describe() deploytypes.CommandDescriptor {
	return deploytypes.CommandDescriptor{
		CanonicalName:    "cleanup",
		AlternativeNames: []string{"clean"},
		ArgumentNames:    []string{"directory", "dryrun"},
		Usage:            "deploy cleanup [-directory <path>] [-dryrun]",
		Description:      "Remove leftover files from the package directory",
	}
}

// Bind reads -directory, defaulting to the configured package directory,
// and the -dryrun flag.
func (c *CleanupCommand) Bind(args map[string]string) (deploytypes.Command, error) {
	dryRun, err := flagValue(args, "dryrun")
	if err != nil {
		return nil, err
	}

	bound := *c
	bound.req = deploytypes.CleanRequest{
		Directory: optionalValue(args, "directory", c.defaultDir),
		DryRun:    dryRun,
	}
	return &bound, nil
}

// Execute asks the cleaner to remove leftover files and lists the paths it
// removed, or would remove in a dry run.
func (c *CleanupCommand) Execute(ctx context.Context) (deploytypes.Result, error) {
	if c.req.Directory == "" {
		return deploytypes.Result{}, deploytypes.ErrorMissingArgument("cleanup", "directory")
	}
	files, err := c.cleaner.Clean(ctx, c.req)
	if err != nil {
		return deploytypes.Result{}, deploytypes.ErrorCollaborator("cleanup", err)
	}

	verb := "Removed"
	if c.req.DryRun {
		verb = "Would remove"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d file(s) from %s", verb, len(files), c.req.Directory)
	for _, f := range files {
		fmt.Fprintf(&b, "\n  %s", f)
	}
	return deploytypes.Success(b.String()), nil
}
