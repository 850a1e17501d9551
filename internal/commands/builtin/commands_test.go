package builtin

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/serum-errors/go-serum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deploykit/internal/testutils"
	"deploykit/internal/version"
	"deploykit/pkg/deploytypes"
)

func execute(t *testing.T, cmd deploytypes.Command, args map[string]string) (deploytypes.Result, error) {
	t.Helper()
	bound, err := cmd.Bind(args)
	require.NoError(t, err)
	return bound.Execute(context.Background())
}

func TestInstallCommand_Describe(t *testing.T) {
	desc := NewInstallCommand(nil).Describe()
	assert.Equal(t, "install", desc.CanonicalName)
	assert.Equal(t, []string{"i"}, desc.AlternativeNames)
	assert.Equal(t, []string{"id", "version", "source", "force", "prerelease"}, desc.ArgumentNames)
}

func TestInstallCommand_Execute(t *testing.T) {
	backend := testutils.NewRecordingBackend("")
	cmd := NewInstallCommand(backend)

	res, err := execute(t, cmd, map[string]string{
		"id":         "Sample.Package",
		"version":    ">= 1.2, < 2.0",
		"source":     "main",
		"force":      "",
		"prerelease": "false",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "Installed Sample.Package (>= 1.2, < 2.0)", res.Message)

	require.Len(t, backend.Installs, 1)
	assert.Equal(t, deploytypes.InstallRequest{
		PackageID: "Sample.Package",
		Version:   ">= 1.2, < 2.0",
		Source:    "main",
		Force:     true,
	}, backend.Installs[0])
}

func TestInstallCommand_BindDoesNotMutateReceiver(t *testing.T) {
	cmd := NewInstallCommand(testutils.NewRecordingBackend(""))

	bound, err := cmd.Bind(map[string]string{"id": "A"})
	require.NoError(t, err)
	assert.NotSame(t, cmd, bound)
	assert.False(t, cmd.bound)
	assert.Empty(t, cmd.req.PackageID)
}

func TestInstallCommand_BindErrors(t *testing.T) {
	tests := []struct {
		name string
		args map[string]string
		code string
	}{
		{"missing id", map[string]string{}, deploytypes.ECodeMissingArgument},
		{"flag-only id", map[string]string{"id": ""}, deploytypes.ECodeMissingArgument},
		{"bad constraint", map[string]string{"id": "A", "version": "not a version"}, deploytypes.ECodeInvalidValue},
		{"bad flag value", map[string]string{"id": "A", "force": "maybe"}, deploytypes.ECodeInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInstallCommand(nil).Bind(tt.args)
			require.Error(t, err)
			assert.Equal(t, tt.code, serum.Code(err))
		})
	}
}

func TestInstallCommand_UnboundExecute(t *testing.T) {
	_, err := NewInstallCommand(testutils.NewRecordingBackend("")).Execute(context.Background())
	require.Error(t, err)
	assert.Equal(t, deploytypes.ECodeMissingArgument, serum.Code(err))
}

func TestInstallCommand_CollaboratorError(t *testing.T) {
	backend := testutils.NewRecordingBackend("")
	backend.Err = errors.New("index unavailable")

	_, err := execute(t, NewInstallCommand(backend), map[string]string{"id": "A"})
	require.Error(t, err)
	assert.Equal(t, deploytypes.ECodeCollaborator, serum.Code(err))
}

func TestUninstallCommand(t *testing.T) {
	backend := testutils.NewRecordingBackend("")

	res, err := execute(t, NewUninstallCommand(backend), map[string]string{"id": "A", "version": "1.0.0"})
	require.NoError(t, err)
	assert.Equal(t, "Uninstalled A", res.Message)
	assert.Equal(t, []deploytypes.UninstallRequest{{PackageID: "A", Version: "1.0.0"}}, backend.Uninstalls)

	_, err = NewUninstallCommand(backend).Bind(map[string]string{"id": "A", "version": ">= 1.0"})
	require.Error(t, err)
	assert.Equal(t, deploytypes.ECodeInvalidValue, serum.Code(err))
}

func TestCleanupCommand(t *testing.T) {
	backend := testutils.NewRecordingBackend("")
	backend.Cleaned = []string{"/pkgs/a.tmp", "/pkgs/b.bak"}
	cmd := NewCleanupCommand(backend, "/pkgs")

	res, err := execute(t, cmd, map[string]string{"dryrun": ""})
	require.NoError(t, err)
	assert.Equal(t, "Would remove 2 file(s) from /pkgs\n  /pkgs/a.tmp\n  /pkgs/b.bak", res.Message)

	_, err = execute(t, cmd, map[string]string{"directory": "/other"})
	require.NoError(t, err)

	assert.Equal(t, []deploytypes.CleanRequest{
		{Directory: "/pkgs", DryRun: true},
		{Directory: "/other"},
	}, backend.Cleans)
}

func TestCleanupCommand_NoDirectory(t *testing.T) {
	_, err := execute(t, NewCleanupCommand(testutils.NewRecordingBackend(""), ""), map[string]string{})
	require.Error(t, err)
	assert.Equal(t, deploytypes.ECodeMissingArgument, serum.Code(err))
}

func TestPackageCommand(t *testing.T) {
	backend := testutils.NewRecordingBackend("")

	res, err := execute(t, NewPackageCommand(backend), map[string]string{"spec": "a.nuspec", "version": "2.0.0-beta.1"})
	require.NoError(t, err)
	assert.Equal(t, "Created out/package.nupkg", res.Message)
	assert.Equal(t, []deploytypes.PackRequest{{SpecFile: "a.nuspec", OutputDir: ".", Version: "2.0.0-beta.1"}}, backend.Packs)

	_, err = NewPackageCommand(backend).Bind(map[string]string{"version": "1.0.0"})
	require.Error(t, err)
	assert.Equal(t, deploytypes.ECodeMissingArgument, serum.Code(err))
}

func TestPublishCommand(t *testing.T) {
	backend := testutils.NewRecordingBackend("")

	res, err := execute(t, NewPublishCommand(backend), map[string]string{"file": "a.nupkg", "source": "main", "apikey": "k"})
	require.NoError(t, err)
	assert.Equal(t, "Published a.nupkg to main", res.Message)
	assert.Equal(t, []deploytypes.PublishRequest{{File: "a.nupkg", Source: "main", APIKey: "k"}}, backend.Publishes)

	res, err = execute(t, NewPublishCommand(backend), map[string]string{"file": "b.nupkg"})
	require.NoError(t, err)
	assert.Equal(t, "Published b.nupkg", res.Message)
}

func TestSourcesCommand_ListIsDefault(t *testing.T) {
	store := testutils.NewMemorySourceStore(
		deploytypes.Source{Name: "main", URL: "https://packages.example.org"},
		deploytypes.Source{Name: "internal", URL: "https://nexus.local/feed", Disabled: true},
	)

	res, err := execute(t, NewSourcesCommand(store), map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, "main      https://packages.example.org\ninternal  https://nexus.local/feed  [disabled]", res.Message)

	res, err = execute(t, NewSourcesCommand(testutils.NewMemorySourceStore()), map[string]string{"list": ""})
	require.NoError(t, err)
	assert.Equal(t, "No package sources configured", res.Message)
}

func TestSourcesCommand_AddAndRemove(t *testing.T) {
	store := testutils.NewMemorySourceStore()
	cmd := NewSourcesCommand(store)

	res, err := execute(t, cmd, map[string]string{"add": "", "name": "main", "url": "https://packages.example.org", "disable": ""})
	require.NoError(t, err)
	assert.Equal(t, "Added source main (https://packages.example.org)", res.Message)

	sources, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []deploytypes.Source{{Name: "main", URL: "https://packages.example.org", Disabled: true}}, sources)

	res, err = execute(t, cmd, map[string]string{"remove": "", "name": "main"})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)

	res, err = execute(t, cmd, map[string]string{"remove": "", "name": "main"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.ExitCode)
	assert.Equal(t, "No source named main", res.Message)
}

func TestSourcesCommand_BindErrors(t *testing.T) {
	tests := []struct {
		name string
		args map[string]string
		code string
	}{
		{"two modes", map[string]string{"add": "", "remove": ""}, deploytypes.ECodeInvalidArgument},
		{"add without name", map[string]string{"add": "", "url": "https://a.example"}, deploytypes.ECodeMissingArgument},
		{"add without url", map[string]string{"add": "", "name": "a"}, deploytypes.ECodeMissingArgument},
		{"relative url", map[string]string{"add": "", "name": "a", "url": "packages/feed"}, deploytypes.ECodeInvalidValue},
		{"url without host", map[string]string{"add": "", "name": "a", "url": "https://"}, deploytypes.ECodeInvalidValue},
		{"remove without name", map[string]string{"remove": ""}, deploytypes.ECodeMissingArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSourcesCommand(testutils.NewMemorySourceStore()).Bind(tt.args)
			require.Error(t, err)
			assert.Equal(t, tt.code, serum.Code(err))
		})
	}
}

func TestSourcesCommand_FileURL(t *testing.T) {
	_, err := NewSourcesCommand(testutils.NewMemorySourceStore()).Bind(map[string]string{
		"add": "", "name": "local", "url": "file:///srv/packages",
	})
	assert.NoError(t, err)
}

func TestSelfUpdateCommand(t *testing.T) {
	original := version.Version
	version.Version = "1.4.0"
	t.Cleanup(func() { version.Version = original })

	tests := []struct {
		name    string
		latest  string
		args    map[string]string
		applied []string
		message string
	}{
		{"newer release", "1.5.0", map[string]string{}, []string{"1.5.0"}, "Updated deploykit from v1.4.0 to v1.5.0"},
		{"up to date", "1.4.0", map[string]string{}, nil, "deploykit v1.4.0 is up to date"},
		{"older release", "1.3.9", map[string]string{}, nil, "deploykit v1.4.0 is up to date"},
		{"forced", "1.4.0", map[string]string{"force": ""}, []string{"1.4.0"}, "Updated deploykit from v1.4.0 to v1.4.0"},
		{"pinned", "9.9.9", map[string]string{"version": "1.4.1"}, []string{"1.4.1"}, "Updated deploykit from v1.4.0 to v1.4.1"},
		{"pinned downgrade forced", "9.9.9", map[string]string{"version": "1.0.0", "force": "true"}, []string{"1.0.0"}, "Updated deploykit from v1.4.0 to v1.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := testutils.NewRecordingBackend(tt.latest)
			res, err := execute(t, NewSelfUpdateCommand(backend), tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.message, res.Message)
			assert.Equal(t, tt.applied, backend.Applied)
		})
	}
}

func TestSelfUpdateCommand_InvalidPin(t *testing.T) {
	_, err := NewSelfUpdateCommand(nil).Bind(map[string]string{"version": "latest"})
	require.Error(t, err)
	assert.Equal(t, deploytypes.ECodeInvalidValue, serum.Code(err))
}

func TestVersionCommand(t *testing.T) {
	originalVersion, originalCommit := version.Version, version.GitCommit
	version.Version, version.GitCommit = "2.1.0", "unknown"
	t.Cleanup(func() { version.Version, version.GitCommit = originalVersion, originalCommit })

	cmd := &VersionCommand{}
	assert.Equal(t, []string{"detailed"}, cmd.Describe().ArgumentNames)

	res, err := execute(t, cmd, nil)
	require.NoError(t, err)
	assert.Contains(t, res.Message, "deploykit v2.1.0")
	assert.NotContains(t, res.Message, "Go Version:")
}

func TestVersionCommand_Detailed(t *testing.T) {
	originalVersion := version.Version
	version.Version = "3.0.0-rc.2"
	t.Cleanup(func() { version.Version = originalVersion })

	res, err := execute(t, &VersionCommand{}, map[string]string{"detailed": ""})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.Message, "deploykit v3.0.0-rc.2\n"))
	assert.Contains(t, res.Message, "Release: 3.0.0 (prerelease rc.2)")
	assert.Contains(t, res.Message, "Go Version:")

	_, err = (&VersionCommand{}).Bind(map[string]string{"detailed": "maybe"})
	require.Error(t, err)
	assert.Equal(t, deploytypes.ECodeInvalidValue, serum.Code(err))
}
