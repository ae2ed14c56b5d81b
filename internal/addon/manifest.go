package addon

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultName is the human-readable add-on name.
	DefaultName = "Komodo Periphery"
	// DefaultSlug identifies the add-on inside the Home Assistant addons
	// directory.
	DefaultSlug = "komodo_periphery"
	// RepoName is the add-on repository name used in generated labels.
	RepoName = "komodo-periphery-addon"
)

// DefaultArchitectures lists every architecture the add-on can be built for.
var DefaultArchitectures = []string{"aarch64", "amd64", "armhf", "armv7", "i386"}

// Manifest holds the well-known keys this installer reads from the add-on's
// config.yaml. The full schema is owned by Home Assistant; everything else
// in the file is ignored.
type Manifest struct {
	Name    string   `yaml:"name"`
	Slug    string   `yaml:"slug"`
	Version string   `yaml:"version"`
	Arch    []string `yaml:"arch"`
}

// Load reads the add-on manifest from disk. A missing file yields the
// defaults so setup works in a freshly cloned tree; missing keys are filled
// in the same way.
func Load(path string) (Manifest, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Manifest{}, fmt.Errorf("read add-on manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(contents, &m); err != nil {
		return Manifest{}, fmt.Errorf("unmarshal add-on manifest: %w", err)
	}
	m.applyDefaults()
	return m, nil
}

// Default returns the manifest used when no config.yaml is present.
func Default() Manifest {
	m := Manifest{}
	m.applyDefaults()
	return m
}

func (m *Manifest) applyDefaults() {
	if m.Name == "" {
		m.Name = DefaultName
	}
	if m.Slug == "" {
		m.Slug = DefaultSlug
	}
	if m.Version == "" {
		m.Version = "latest"
	}
	if len(m.Arch) == 0 {
		m.Arch = append([]string(nil), DefaultArchitectures...)
	}
}
