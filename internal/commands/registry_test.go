package commands

import (
	"sync"
	"testing"

	"github.com/serum-errors/go-serum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deploykit/internal/testutils"
	"deploykit/pkg/deploytypes"
)

func TestRegistry_NewRegistry(t *testing.T) {
	registry, err := NewRegistry()

	require.NoError(t, err)
	assert.NotNil(t, registry)
	assert.Equal(t, 0, registry.Len())
	assert.Empty(t, registry.Commands())
}

func TestRegistry_PreservesOrder(t *testing.T) {
	registry, err := NewRegistry(
		testutils.NewMockCommand("install"),
		testutils.NewMockCommand("uninstall"),
		testutils.NewMockCommand("help"),
	)
	require.NoError(t, err)

	var names []string
	for _, desc := range registry.Descriptors() {
		names = append(names, desc.CanonicalName)
	}
	assert.Equal(t, []string{"install", "uninstall", "help"}, names)
	assert.Equal(t, 3, registry.Len())
}

func TestRegistry_Validation(t *testing.T) {
	tests := []struct {
		name     string
		commands []deploytypes.Command
		code     string
	}{
		{
			name:     "empty canonical name",
			commands: []deploytypes.Command{testutils.NewMockCommand("")},
			code:     deploytypes.ECodeInvalidArgument,
		},
		{
			name:     "canonical name with modifier prefix",
			commands: []deploytypes.Command{testutils.NewMockCommand("-install")},
			code:     deploytypes.ECodeInvalidArgument,
		},
		{
			name:     "nil command",
			commands: []deploytypes.Command{nil},
			code:     deploytypes.ECodeInvalidArgument,
		},
		{
			name: "duplicate canonical name ignoring case",
			commands: []deploytypes.Command{
				testutils.NewMockCommand("install"),
				testutils.NewMockCommand("Install"),
			},
			code: deploytypes.ECodeRegistryConflict,
		},
		{
			name: "alternative name shadows a later canonical name",
			commands: []deploytypes.Command{
				testutils.NewMockCommand("package").WithAliases("publish"),
				testutils.NewMockCommand("publish"),
			},
			code: deploytypes.ECodeRegistryConflict,
		},
		{
			name: "alternative name shadows an earlier canonical name",
			commands: []deploytypes.Command{
				testutils.NewMockCommand("help"),
				testutils.NewMockCommand("install").WithAliases("HELP"),
			},
			code: deploytypes.ECodeRegistryConflict,
		},
		{
			name: "two commands share an alternative name",
			commands: []deploytypes.Command{
				testutils.NewMockCommand("uninstall").WithAliases("rm"),
				testutils.NewMockCommand("cleanup").WithAliases("rm"),
			},
			code: deploytypes.ECodeRegistryConflict,
		},
		{
			name:     "empty alternative name",
			commands: []deploytypes.Command{testutils.NewMockCommand("install").WithAliases("")},
			code:     deploytypes.ECodeInvalidArgument,
		},
		{
			name:     "empty argument name",
			commands: []deploytypes.Command{testutils.NewMockCommand("install", "id", "")},
			code:     deploytypes.ECodeInvalidArgument,
		},
		{
			name:     "duplicate argument name",
			commands: []deploytypes.Command{testutils.NewMockCommand("install", "id", "ID")},
			code:     deploytypes.ECodeInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry, err := NewRegistry(tt.commands...)
			require.Error(t, err)
			assert.Nil(t, registry)
			assert.Equal(t, tt.code, serum.Code(err))
		})
	}
}

func TestRegistry_AliasRepeatingOwnName(t *testing.T) {
	_, err := NewRegistry(testutils.NewMockCommand("install").WithAliases("INSTALL", "i"))
	assert.NoError(t, err)
}

func TestRegistry_ClaimsEveryDescriptorName(t *testing.T) {
	install := testutils.NewMockCommand("install").WithAliases("i", "add")
	assert.Equal(t, []string{"install", "i", "add"}, install.Describe().Names())

	registry, err := NewRegistry(install, testutils.NewMockCommand("help"))
	require.NoError(t, err)
	for _, name := range install.Describe().Names() {
		cmd, ok := registry.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, "install", cmd.Describe().CanonicalName)
	}

	_, err = NewRegistry(install, testutils.NewMockCommand("add"))
	require.Error(t, err)
	assert.Equal(t, deploytypes.ECodeRegistryConflict, serum.Code(err))
}

func TestRegistry_Get(t *testing.T) {
	install := testutils.NewMockCommand("install").WithAliases("i")
	registry, err := NewRegistry(install, testutils.NewMockCommand("help"))
	require.NoError(t, err)

	tests := []struct {
		name     string
		lookup   string
		expected string
		found    bool
	}{
		{"canonical", "install", "install", true},
		{"canonical upper case", "INSTALL", "install", true},
		{"alternative", "i", "install", true},
		{"abbreviation is not a lookup", "inst", "", false},
		{"unknown", "publish", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, ok := registry.Get(tt.lookup)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.found, registry.IsValidCommand(tt.lookup))
			if tt.found {
				assert.Equal(t, tt.expected, cmd.Describe().CanonicalName)
			} else {
				assert.Nil(t, cmd)
			}
		})
	}
}

func TestRegistry_CommandsReturnsCopy(t *testing.T) {
	registry, err := NewRegistry(testutils.NewMockCommand("install"), testutils.NewMockCommand("help"))
	require.NoError(t, err)

	cmds := registry.Commands()
	cmds[0] = nil

	assert.NotNil(t, registry.Commands()[0])
}

func TestRegistry_ConcurrentReads(t *testing.T) {
	registry, err := NewRegistry(
		testutils.NewMockCommand("install").WithAliases("i"),
		testutils.NewMockCommand("help"),
	)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok := registry.Get("i")
			assert.True(t, ok)
			assert.Len(t, registry.Descriptors(), 2)
		}()
	}
	wg.Wait()
}
