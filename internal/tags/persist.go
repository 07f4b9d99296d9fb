// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tags

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholar-tags/pkg/types"
)

// Persister loads and saves the full author → tags mapping. The store calls
// Load once at construction and Save after every mutation.
type Persister interface {
	Load() (types.TagMapping, error)
	Save(m types.TagMapping) error
}

// OpenPersister returns the persister selected by cfg.Backend. An empty
// backend means JSON.
func OpenPersister(cfg types.TagsConfig) (Persister, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("tags path is required")
	}
	switch cfg.Backend {
	case types.TagBackendJSON, "":
		return &JSONFile{Path: cfg.Path}, nil
	case types.TagBackendYAML:
		return &YAMLFile{Path: cfg.Path}, nil
	case types.TagBackendSQLite:
		return OpenSQLite(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported tags backend %q: use json, yaml, or sqlite", cfg.Backend)
	}
}

// JSONFile stores the mapping as a flat JSON object of author → [tags],
// indented with two spaces.
type JSONFile struct {
	Path string
}

// Load reads the mapping. A missing file is an empty mapping.
func (f *JSONFile) Load() (types.TagMapping, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.TagMapping{}, nil
		}
		return nil, fmt.Errorf("reading tags file %s: %w", f.Path, err)
	}
	var m types.TagMapping
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing tags file %s: %w", f.Path, err)
	}
	return m, nil
}

// Save writes the mapping.
func (f *JSONFile) Save(m types.TagMapping) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding tags: %w", err)
	}
	return writeFileAtomic(f.Path, append(data, '\n'))
}

// YAMLFile stores the mapping as a YAML document of author → [tags].
type YAMLFile struct {
	Path string
}

// Load reads the mapping. A missing file is an empty mapping.
func (f *YAMLFile) Load() (types.TagMapping, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.TagMapping{}, nil
		}
		return nil, fmt.Errorf("reading tags file %s: %w", f.Path, err)
	}
	var m types.TagMapping
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing tags file %s: %w", f.Path, err)
	}
	return m, nil
}

// Save writes the mapping.
func (f *YAMLFile) Save(m types.TagMapping) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding tags: %w", err)
	}
	return writeFileAtomic(f.Path, data)
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it over path, so readers never see a partial mapping.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming %s to %s: %w", tmpPath, path, err)
	}
	return nil
}
