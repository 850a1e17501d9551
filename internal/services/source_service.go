package services

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"deploykit/internal/logger"
	"deploykit/pkg/deploytypes"
)

// sourceFile is the on-disk layout of the sources file.
type sourceFile struct {
	Sources []deploytypes.Source `yaml:"sources"`
}

// SourceService persists package sources in a YAML file.
// Source names are compared case-insensitively.
type SourceService struct {
	path string
}

// NewSourceService creates a SourceService backed by the file at path.
// The file and its directory are created on the first write.
func NewSourceService(path string) *SourceService {
	return &SourceService{path: path}
}

// Path returns the backing file path.
func (s *SourceService) Path() string {
	return s.path
}

// List returns the configured sources in file order. A missing file is an
// empty source list.
func (s *SourceService) List() ([]deploytypes.Source, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []deploytypes.Source{}, nil
	}
	if err != nil {
		return nil, deploytypes.ErrorIo("reading sources file", s.path, err)
	}

	var file sourceFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, deploytypes.ErrorSerialization("parsing sources file "+s.path, err)
	}
	if file.Sources == nil {
		file.Sources = []deploytypes.Source{}
	}
	return file.Sources, nil
}

// Add stores source, replacing an existing source with the same name.
func (s *SourceService) Add(source deploytypes.Source) error {
	sources, err := s.List()
	if err != nil {
		return err
	}

	replaced := false
	for i := range sources {
		if strings.EqualFold(sources[i].Name, source.Name) {
			sources[i] = source
			replaced = true
			break
		}
	}
	if !replaced {
		sources = append(sources, source)
	}

	logger.Debug("Saving source", "name", source.Name, "url", source.URL, "replaced", replaced)
	return s.save(sources)
}

// Remove deletes the source called name. It reports whether one was removed.
func (s *SourceService) Remove(name string) (bool, error) {
	sources, err := s.List()
	if err != nil {
		return false, err
	}

	kept := sources[:0]
	removed := false
	for _, src := range sources {
		if strings.EqualFold(src.Name, name) {
			removed = true
			continue
		}
		kept = append(kept, src)
	}
	if !removed {
		return false, nil
	}
	return true, s.save(kept)
}

func (s *SourceService) save(sources []deploytypes.Source) error {
	data, err := yaml.Marshal(sourceFile{Sources: sources})
	if err != nil {
		return deploytypes.ErrorSerialization("encoding sources", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return deploytypes.ErrorIo("creating sources directory", filepath.Dir(s.path), err)
	}

	// readers must never observe a partially written file
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".sources-*.yaml")
	if err != nil {
		return deploytypes.ErrorIo("creating temporary sources file", s.path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return deploytypes.ErrorIo("writing sources file", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return deploytypes.ErrorIo("writing sources file", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return deploytypes.ErrorIo("replacing sources file", s.path, err)
	}
	return nil
}
