// Package deploytypes defines core architectural interfaces for deploykit.
// This file contains the Command contract used by the registry and interpreter,
// and the collaborator interfaces through which commands perform their actions.
package deploytypes

import "context"

// Command defines the interface that all deploykit commands must implement.
// Describe must be stable for the lifetime of the command.
//
// Bind receives values keyed by canonical argument name and returns a new
// command carrying them; the receiver is never modified. Flags present on the
// command line without a value are bound to the empty string.
type Command interface {
	Describe() CommandDescriptor
	Bind(args map[string]string) (Command, error)
	Execute(ctx context.Context) (Result, error)
}

// InstallRequest describes a package installation.
type InstallRequest struct {
	PackageID  string
	Version    string // semver constraint, empty for latest
	Source     string
	Force      bool
	Prerelease bool
}

// UninstallRequest describes a package removal.
type UninstallRequest struct {
	PackageID string
	Version   string
	Force     bool
}

// PackageManager installs and removes packages against a package index.
type PackageManager interface {
	Install(ctx context.Context, req InstallRequest) error
	Uninstall(ctx context.Context, req UninstallRequest) error
}

// CleanRequest describes a cleanup of installed package leftovers.
type CleanRequest struct {
	Directory string
	DryRun    bool
}

// Cleaner removes stale package artifacts and returns the removed paths.
type Cleaner interface {
	Clean(ctx context.Context, req CleanRequest) ([]string, error)
}

// PackRequest describes building a package from a specification file.
type PackRequest struct {
	SpecFile  string
	OutputDir string
	Version   string
}

// Packager builds packages and returns the path of the produced artifact.
type Packager interface {
	Pack(ctx context.Context, req PackRequest) (string, error)
}

// PublishRequest describes pushing a built package to a source.
type PublishRequest struct {
	File   string
	Source string
	APIKey string
}

// Publisher pushes packages to a package source.
type Publisher interface {
	Publish(ctx context.Context, req PublishRequest) error
}

// Source is a named package source.
type Source struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Disabled bool   `yaml:"disabled,omitempty"`
}

// SourceStore persists the configured package sources.
type SourceStore interface {
	List() ([]Source, error)
	Add(source Source) error
	Remove(name string) (bool, error)
}

// Updater finds and applies new releases of deploykit itself.
type Updater interface {
	LatestVersion(ctx context.Context) (string, error)
	Apply(ctx context.Context, version string) error
}

// HelpRenderer formats command descriptors for display.
type HelpRenderer interface {
	RenderList(descriptors []CommandDescriptor) (string, error)
	RenderCommand(descriptor CommandDescriptor) (string, error)
}
