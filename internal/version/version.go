// Package version holds deploykit build metadata and the semantic version
// comparisons used by selfupdate.
package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Build information, injected with -ldflags "-X deploykit/internal/version.Version=...".
var (
	Version   = "0.4.1"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info is the parsed build metadata of the running binary.
type Info struct {
	Version   string          `json:"version"`
	GitCommit string          `json:"gitCommit"`
	BuildDate string          `json:"buildDate"`
	GoVersion string          `json:"goVersion"`
	Platform  string          `json:"platform"`
	SemVer    *semver.Version `json:"-"`
}

// GetInfo parses Version and collects the build metadata.
func GetInfo() (*Info, error) {
	sv, err := semver.NewVersion(Version)
	if err != nil {
		return nil, fmt.Errorf("invalid semantic version '%s': %w", Version, err)
	}
	return &Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		SemVer:    sv,
	}, nil
}

// Release is the major.minor.patch part of the version.
func (i *Info) Release() string {
	return fmt.Sprintf("%d.%d.%d", i.SemVer.Major(), i.SemVer.Minor(), i.SemVer.Patch())
}

// Prerelease reports whether the version carries a prerelease tag.
func (i *Info) Prerelease() bool {
	return i.SemVer.Prerelease() != ""
}

func known(value string) bool {
	return value != "" && value != "unknown"
}

// GetFormattedVersion returns the one-line form printed by "deploy version":
// "deploykit v1.2.0, commit 0123456, built 2026-10-01".
func GetFormattedVersion() string {
	info, err := GetInfo()
	if err != nil {
		return fmt.Sprintf("deploykit v%s (invalid version)", Version)
	}

	parts := []string{"deploykit v" + info.Version}
	if known(info.GitCommit) {
		commit := info.GitCommit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		parts = append(parts, "commit "+commit)
	}
	if known(info.BuildDate) {
		parts = append(parts, "built "+info.BuildDate)
	}
	return strings.Join(parts, ", ")
}

// GetDetailedVersion returns the multi-line form printed by
// "deploy version -detailed".
func GetDetailedVersion() string {
	info, err := GetInfo()
	if err != nil {
		return fmt.Sprintf("deploykit v%s (error: %v)", Version, err)
	}

	release := info.Release()
	if info.Prerelease() {
		release += " (prerelease " + info.SemVer.Prerelease() + ")"
	}

	lines := []string{
		"deploykit v" + info.Version,
		"Release: " + release,
		"Git Commit: " + info.GitCommit,
		"Build Date: " + info.BuildDate,
	}
	if meta := info.SemVer.Metadata(); meta != "" {
		lines = append(lines, "Build Metadata: "+meta)
	}
	lines = append(lines, "Go Version: "+info.GoVersion, "Platform: "+info.Platform)
	return strings.Join(lines, "\n")
}

// CompareVersions returns -1, 0 or 1 as v1 is older than, equal to or newer
// than v2.
func CompareVersions(v1, v2 string) (int, error) {
	sv1, err := semver.NewVersion(v1)
	if err != nil {
		return 0, fmt.Errorf("invalid version '%s': %w", v1, err)
	}
	sv2, err := semver.NewVersion(v2)
	if err != nil {
		return 0, fmt.Errorf("invalid version '%s': %w", v2, err)
	}
	return sv1.Compare(sv2), nil
}
