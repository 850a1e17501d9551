package testutils

import (
	"context"
	"strings"
	"sync"

	"deploykit/pkg/deploytypes"
)

// RecordingBackend implements every command collaborator except the source
// store and records the requests it receives. Set Err to make every call fail.
type RecordingBackend struct {
	mu sync.Mutex

	Installs   []deploytypes.InstallRequest
	Uninstalls []deploytypes.UninstallRequest
	Cleans     []deploytypes.CleanRequest
	Packs      []deploytypes.PackRequest
	Publishes  []deploytypes.PublishRequest
	Applied    []string

	Err      error
	Latest   string
	Cleaned  []string
	Artifact string
}

// NewRecordingBackend creates a backend reporting latest as the newest release.
func NewRecordingBackend(latest string) *RecordingBackend {
	return &RecordingBackend{Latest: latest, Artifact: "out/package.nupkg"}
}

func (b *RecordingBackend) Install(_ context.Context, req deploytypes.InstallRequest) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Installs = append(b.Installs, req)
	return b.Err
}

func (b *RecordingBackend) Uninstall(_ context.Context, req deploytypes.UninstallRequest) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Uninstalls = append(b.Uninstalls, req)
	return b.Err
}

func (b *RecordingBackend) Clean(_ context.Context, req deploytypes.CleanRequest) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Cleans = append(b.Cleans, req)
	if b.Err != nil {
		return nil, b.Err
	}
	return b.Cleaned, nil
}

func (b *RecordingBackend) Pack(_ context.Context, req deploytypes.PackRequest) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Packs = append(b.Packs, req)
	if b.Err != nil {
		return "", b.Err
	}
	return b.Artifact, nil
}

func (b *RecordingBackend) Publish(_ context.Context, req deploytypes.PublishRequest) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Publishes = append(b.Publishes, req)
	return b.Err
}

func (b *RecordingBackend) LatestVersion(_ context.Context) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Err != nil {
		return "", b.Err
	}
	return b.Latest, nil
}

func (b *RecordingBackend) Apply(_ context.Context, version string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Applied = append(b.Applied, version)
	return b.Err
}

// MemorySourceStore is an in-memory deploytypes.SourceStore.
type MemorySourceStore struct {
	mu      sync.Mutex
	sources []deploytypes.Source
	Err     error
}

// NewMemorySourceStore creates a store holding sources in order.
func NewMemorySourceStore(sources ...deploytypes.Source) *MemorySourceStore {
	return &MemorySourceStore{sources: append([]deploytypes.Source(nil), sources...)}
}

func (s *MemorySourceStore) List() ([]deploytypes.Source, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]deploytypes.Source{}, s.sources...), nil
}

func (s *MemorySourceStore) Add(source deploytypes.Source) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for i := range s.sources {
		if strings.EqualFold(s.sources[i].Name, source.Name) {
			s.sources[i] = source
			return nil
		}
	}
	s.sources = append(s.sources, source)
	return nil
}

func (s *MemorySourceStore) Remove(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	for i := range s.sources {
		if strings.EqualFold(s.sources[i].Name, name) {
			s.sources = append(s.sources[:i], s.sources[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// PlainHelpRenderer renders descriptors as one canonical name per line for
// assertions that do not care about layout.
type PlainHelpRenderer struct{}

func (PlainHelpRenderer) RenderList(descriptors []deploytypes.CommandDescriptor) (string, error) {
	names := make([]string, len(descriptors))
	for i, d := range descriptors {
		names[i] = d.CanonicalName
	}
	return strings.Join(names, "\n") + "\n", nil
}

func (PlainHelpRenderer) RenderCommand(descriptor deploytypes.CommandDescriptor) (string, error) {
	return descriptor.CanonicalName + ": " + descriptor.Usage + "\n", nil
}
