package provision

import (
	"encoding/json"
	"fmt"
	"os"
)

type devContainer struct {
	Name            string              `json:"name"`
	Image           string              `json:"image"`
	WorkspaceFolder string              `json:"workspaceFolder"`
	Mounts          []string            `json:"mounts"`
	Features        map[string]struct{} `json:"features"`
	Customizations  devCustomizations   `json:"customizations"`
	PostCreateCmd   string              `json:"postCreateCommand"`
	RemoteUser      string              `json:"remoteUser"`
}

type devCustomizations struct {
	VSCode devVSCode `json:"vscode"`
}

type devVSCode struct {
	Extensions []string       `json:"extensions"`
	Settings   map[string]any `json:"settings"`
}

func defaultDevContainer() devContainer {
	return devContainer{
		Name:            "Home Assistant Add-on Development",
		Image:           "ghcr.io/home-assistant/devcontainer:addons",
		WorkspaceFolder: "/workspaces/${localWorkspaceFolderBasename}",
		Mounts: []string{
			"source=/var/run/docker.sock,target=/var/run/docker.sock,type=bind",
		},
		Features: map[string]struct{}{
			"ghcr.io/devcontainers/features/docker-in-docker:2": {},
			"ghcr.io/devcontainers/features/git:1":              {},
		},
		Customizations: devCustomizations{
			VSCode: devVSCode{
				Extensions: []string{
					"ms-vscode.vscode-json",
					"redhat.vscode-yaml",
					"ms-vscode.vscode-docker",
					"esbenp.prettier-vscode",
					"bradlc.vscode-tailwindcss",
				},
				Settings: map[string]any{
					"terminal.integrated.defaultProfile.linux": "bash",
					"editor.formatOnSave":                      true,
					"editor.codeActionsOnSave": map[string]any{
						"source.organizeImports": true,
					},
				},
			},
		},
		PostCreateCmd: "komodosetup --dev",
		RemoteUser:    "vscode",
	}
}

// writeDevContainer regenerates .devcontainer/devcontainer.json, replacing
// any previous version outright.
func (s *Service) writeDevContainer() error {
	s.Reporter.Info("Setting up VS Code devcontainer...")

	if err := os.MkdirAll(s.Paths.DevContainerDir, 0o755); err != nil {
		return fmt.Errorf("create devcontainer dir: %w", err)
	}

	data, err := json.MarshalIndent(defaultDevContainer(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal devcontainer config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(s.Paths.DevContainerFile, data, 0o644); err != nil {
		return fmt.Errorf("write devcontainer config: %w", err)
	}

	s.Reporter.Info("Devcontainer configuration created.")
	s.Logger.Printf("wrote %s", s.Paths.DevContainerFile)
	return nil
}
