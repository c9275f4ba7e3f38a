package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// LibraryConfig lists the directories watched by the library scanner, as
// parsed from library.yaml.
type LibraryConfig struct {
	Directories []string `yaml:"directories"`
}

// LoadLibrary reads the library YAML file at path. A missing file is not an
// error; it yields an empty config so a fresh install works without setup.
func LoadLibrary(path string) (*LibraryConfig, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the configured data dir
	if errors.Is(err, fs.ErrNotExist) {
		return &LibraryConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading library file %q: %w", path, err)
	}

	var lc LibraryConfig
	if err := yaml.Unmarshal(data, &lc); err != nil {
		return nil, fmt.Errorf("parsing library file %q: %w", path, err)
	}
	return &lc, nil
}

// EffectiveDirectories returns the configured directories, falling back to
// the app-level music directory when the library file lists none.
func (lc *LibraryConfig) EffectiveDirectories(musicDir string) []string {
	if len(lc.Directories) > 0 {
		return lc.Directories
	}
	if musicDir == "" {
		return nil
	}
	return []string{musicDir}
}
