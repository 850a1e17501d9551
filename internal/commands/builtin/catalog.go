package builtin

import (
	"deploykit/internal/commands"
	"deploykit/pkg/deploytypes"
)

// Dependencies are the collaborators the built-in commands delegate to.
type Dependencies struct {
	Packages    deploytypes.PackageManager
	Cleaner     deploytypes.Cleaner
	Packager    deploytypes.Packager
	Publisher   deploytypes.Publisher
	Sources     deploytypes.SourceStore
	Updater     deploytypes.Updater
	Help        deploytypes.HelpRenderer
	PackagesDir string
}

// NewCatalog builds the registry of built-in commands. The order is the help
// listing order and decides which command wins an ambiguous abbreviation.
func NewCatalog(deps Dependencies) (*commands.Registry, error) {
	var registry *commands.Registry
	help := NewHelpCommand(deps.Help, func() []deploytypes.Command {
		return registry.Commands()
	})

	registry, err := commands.NewRegistry(
		NewInstallCommand(deps.Packages),
		NewUninstallCommand(deps.Packages),
		NewCleanupCommand(deps.Cleaner, deps.PackagesDir),
		NewPackageCommand(deps.Packager),
		NewPublishCommand(deps.Publisher),
		NewSourcesCommand(deps.Sources),
		NewSelfUpdateCommand(deps.Updater),
		&VersionCommand{},
		help,
	)
	if err != nil {
		return nil, err
	}
	return registry, nil
}
