package provision

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"komodosetup/internal/addon"
)

const baseImage = "ghcr.io/home-assistant/alpine-base:3.21"

type buildManifest struct {
	BuildFrom  map[string]string `yaml:"build_from"`
	Labels     map[string]string `yaml:"labels"`
	Args       map[string]string `yaml:"args"`
	Codenotary string            `yaml:"codenotary"`
}

// writeBuildManifest generates build.yaml with one base-image entry per
// supported architecture from the add-on manifest. Any prior manifest is
// replaced outright.
func (s *Service) writeBuildManifest(m addon.Manifest) error {
	buildFrom := make(map[string]string, len(m.Arch))
	for _, arch := range m.Arch {
		buildFrom[arch] = baseImage
	}

	manifest := buildManifest{
		BuildFrom: buildFrom,
		Labels: map[string]string{
			"org.opencontainers.image.title":       m.Name,
			"org.opencontainers.image.description": "Komodo Periphery agent for Home Assistant OS monitoring",
			"org.opencontainers.image.source":      fmt.Sprintf("https://github.com/your-username/%s", addon.RepoName),
			"org.opencontainers.image.licenses":    "MIT",
		},
		Args: map[string]string{
			"KOMODO_VERSION": "latest",
		},
		Codenotary: "your-email@example.com",
	}

	data, err := yaml.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("marshal build manifest: %w", err)
	}

	if err := os.WriteFile(s.Paths.BuildFile, data, 0o644); err != nil {
		return fmt.Errorf("write build manifest: %w", err)
	}

	s.Reporter.Info("Production deployment files created.")
	s.Logger.Printf("wrote %s", s.Paths.BuildFile)
	return nil
}
