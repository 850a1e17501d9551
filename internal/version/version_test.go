package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withVersion(t *testing.T, v, commit, date string) {
	t.Helper()
	oldVersion, oldCommit, oldDate := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = v, commit, date
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = oldVersion, oldCommit, oldDate
	})
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		v1, v2   string
		expected int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0.0", "1.0.1", -1},
		{"1.2.0", "1.1.9", 1},
		{"1.0.0-beta.1", "1.0.0", -1},
		{"v2.0.0", "2.0.0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.v1+"_"+tt.v2, func(t *testing.T) {
			result, err := CompareVersions(tt.v1, tt.v2)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}

	_, err := CompareVersions("not-a-version", "1.0.0")
	assert.Error(t, err)
	_, err = CompareVersions("1.0.0", "")
	assert.Error(t, err)
}

func TestInfo_ReleaseAndPrerelease(t *testing.T) {
	withVersion(t, "1.4.2-rc.1+77.abc1234", "unknown", "unknown")
	info, err := GetInfo()
	require.NoError(t, err)
	assert.Equal(t, "1.4.2", info.Release())
	assert.True(t, info.Prerelease())

	withVersion(t, "1.4.2", "unknown", "unknown")
	info, err = GetInfo()
	require.NoError(t, err)
	assert.False(t, info.Prerelease())

	withVersion(t, "garbage", "unknown", "unknown")
	_, err = GetInfo()
	assert.Error(t, err)
}

func TestGetFormattedVersion(t *testing.T) {
	withVersion(t, "1.0.0", "0123456789abcdef", "2026-10-01")
	assert.Equal(t, "deploykit v1.0.0, commit 0123456, built 2026-10-01", GetFormattedVersion())

	withVersion(t, "1.0.0", "unknown", "unknown")
	assert.Equal(t, "deploykit v1.0.0", GetFormattedVersion())

	withVersion(t, "bogus", "unknown", "unknown")
	assert.Equal(t, "deploykit vbogus (invalid version)", GetFormattedVersion())
}

func TestGetDetailedVersion(t *testing.T) {
	withVersion(t, "1.0.0+42.deadbee", "deadbeef", "2026-10-01")

	detailed := GetDetailedVersion()
	assert.True(t, strings.HasPrefix(detailed, "deploykit v1.0.0+42.deadbee"))
	assert.Contains(t, detailed, "Release: 1.0.0\n")
	assert.Contains(t, detailed, "Git Commit: deadbeef")
	assert.Contains(t, detailed, "Build Metadata: 42.deadbee")
	assert.Contains(t, detailed, "Go Version: ")
	assert.Contains(t, detailed, "Platform: ")
}

func TestGetDetailedVersion_Prerelease(t *testing.T) {
	withVersion(t, "2.0.0-beta.3", "unknown", "unknown")
	assert.Contains(t, GetDetailedVersion(), "Release: 2.0.0 (prerelease beta.3)")

	withVersion(t, "bogus", "unknown", "unknown")
	assert.True(t, strings.HasPrefix(GetDetailedVersion(), "deploykit vbogus (error: "))
}

func TestGetInfo(t *testing.T) {
	withVersion(t, "2.1.0", "unknown", "unknown")

	info, err := GetInfo()
	require.NoError(t, err)
	assert.Equal(t, "2.1.0", info.Version)
	assert.Equal(t, uint64(2), info.SemVer.Major())
	assert.NotEmpty(t, info.GoVersion)
}
