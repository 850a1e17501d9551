// Package services provides the collaborator backends that deploykit commands
// delegate their domain actions to.
package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/charmbracelet/log"

	"deploykit/internal/version"
	"deploykit/pkg/deploytypes"
)

// Action is one operation recorded by the PlanBackend.
type Action struct {
	Kind   string
	Target string
	Detail map[string]string
}

// String renders the action as "kind target key=value ...".
func (a Action) String() string {
	var b strings.Builder
	b.WriteString(a.Kind)
	b.WriteString(" ")
	b.WriteString(a.Target)
	for _, key := range slices.Sorted(maps.Keys(a.Detail)) {
		fmt.Fprintf(&b, " %s=%s", key, a.Detail[key])
	}
	return b.String()
}

// cleanupSuffixes are the leftovers removed by Clean.
var cleanupSuffixes = []string{".tmp", ".bak", ".old", ".backup"}

// PlanBackend records the actions that need a package index, packaging
// toolchain or release feed, and logs them instead of contacting anything.
// Clean operates on the local filesystem for real.
type PlanBackend struct {
	mu      sync.Mutex
	actions []Action
	log     *log.Logger
	latest  string
}

// NewPlanBackend creates a PlanBackend. latest is the release version reported
// by LatestVersion; empty means the running version is the latest.
func NewPlanBackend(l *log.Logger, latest string) *PlanBackend {
	return &PlanBackend{log: l, latest: latest}
}

// Actions returns a copy of the recorded actions in order.
func (p *PlanBackend) Actions() []Action {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Action, len(p.actions))
	copy(out, p.actions)
	return out
}

func (p *PlanBackend) record(a Action) {
	p.mu.Lock()
	p.actions = append(p.actions, a)
	p.mu.Unlock()
	p.log.Info("planned", "action", a.Kind, "target", a.Target)
}

func (p *PlanBackend) Install(_ context.Context, req deploytypes.InstallRequest) error {
	p.record(Action{Kind: "install", Target: req.PackageID, Detail: map[string]string{
		"version":    req.Version,
		"source":     req.Source,
		"force":      fmt.Sprint(req.Force),
		"prerelease": fmt.Sprint(req.Prerelease),
	}})
	return nil
}

func (p *PlanBackend) Uninstall(_ context.Context, req deploytypes.UninstallRequest) error {
	p.record(Action{Kind: "uninstall", Target: req.PackageID, Detail: map[string]string{
		"version": req.Version,
		"force":   fmt.Sprint(req.Force),
	}})
	return nil
}

// Pack returns the artifact path the packaging toolchain would produce:
// <output>/<spec name>.<version>.nupkg.
func (p *PlanBackend) Pack(_ context.Context, req deploytypes.PackRequest) (string, error) {
	base := strings.TrimSuffix(filepath.Base(req.SpecFile), filepath.Ext(req.SpecFile))
	name := base
	if req.Version != "" {
		name = base + "." + req.Version
	}
	artifact := filepath.Join(req.OutputDir, name+".nupkg")
	p.record(Action{Kind: "package", Target: req.SpecFile, Detail: map[string]string{
		"artifact": artifact,
	}})
	return artifact, nil
}

func (p *PlanBackend) Publish(_ context.Context, req deploytypes.PublishRequest) error {
	detail := map[string]string{"source": req.Source}
	if req.APIKey != "" {
		detail["apikey"] = "***"
	}
	p.record(Action{Kind: "publish", Target: req.File, Detail: detail})
	return nil
}

// Clean walks req.Directory and removes files with a leftover suffix,
// returning their paths. With DryRun set nothing is removed. A directory
// that does not exist has nothing to clean.
func (p *PlanBackend) Clean(ctx context.Context, req deploytypes.CleanRequest) ([]string, error) {
	var removed []string
	if _, err := os.Stat(req.Directory); errors.Is(err, fs.ErrNotExist) {
		p.log.Debug("package directory does not exist", "directory", req.Directory)
		p.recordClean(req, 0)
		return nil, nil
	}

	err := filepath.WalkDir(req.Directory, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || !hasCleanupSuffix(d.Name()) {
			return nil
		}
		if !req.DryRun {
			if err := os.Remove(path); err != nil {
				return err
			}
		}
		removed = append(removed, path)
		return nil
	})
	if err != nil {
		return removed, deploytypes.ErrorIo("cleaning package directory", req.Directory, err)
	}

	p.recordClean(req, len(removed))
	return removed, nil
}

func (p *PlanBackend) recordClean(req deploytypes.CleanRequest, files int) {
	p.record(Action{Kind: "cleanup", Target: req.Directory, Detail: map[string]string{
		"dryrun": fmt.Sprint(req.DryRun),
		"files":  fmt.Sprint(files),
	}})
}

func hasCleanupSuffix(name string) bool {
	lower := strings.ToLower(name)
	for _, suffix := range cleanupSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// LatestVersion returns the configured latest release, or the running
// version when none is configured.
func (p *PlanBackend) LatestVersion(_ context.Context) (string, error) {
	if p.latest == "" {
		return version.Version, nil
	}
	if _, err := semver.NewVersion(p.latest); err != nil {
		return "", deploytypes.ErrorInvalidValue("update.latest", p.latest, err)
	}
	return p.latest, nil
}

func (p *PlanBackend) Apply(_ context.Context, target string) error {
	p.record(Action{Kind: "selfupdate", Target: target, Detail: map[string]string{
		"from": version.Version,
	}})
	return nil
}
