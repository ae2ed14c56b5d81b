package provision

import (
	"context"
	"fmt"
	"os"

	"komodosetup/internal/execx"
	"komodosetup/internal/paths"
)

const gitIgnoreContent = `# Build artifacts
build/
dist/
*.log

# Development files
.DS_Store
Thumbs.db
*.tmp
*.temp

# VS Code
.vscode/settings.json
.vscode/launch.json

# Local configuration
local_config.yaml
secrets.yaml

# Backup files
*.backup.*
`

// initGit initializes version control for the project with a standard
// ignore file and one initial commit. Re-runs are no-ops once .git exists.
func (s *Service) initGit(ctx context.Context) error {
	exists, err := paths.DirExists(s.Paths.GitDir)
	if err != nil {
		return fmt.Errorf("stat git dir: %w", err)
	}
	if exists {
		return nil
	}

	s.Reporter.Info("Initializing Git repository...")

	opts := execx.RunOptions{Dir: s.Paths.Root, MustSucceed: true}
	if _, err := s.Runner.Run(ctx, "git", []string{"init"}, opts); err != nil {
		return err
	}

	if err := os.WriteFile(s.Paths.GitIgnoreFile, []byte(gitIgnoreContent), 0o644); err != nil {
		return fmt.Errorf("write gitignore: %w", err)
	}

	if _, err := s.Runner.Run(ctx, "git", []string{"add", "."}, opts); err != nil {
		return err
	}
	commitMsg := "Initial commit: Komodo Periphery Home Assistant Add-on"
	if _, err := s.Runner.Run(ctx, "git", []string{"commit", "-m", commitMsg}, opts); err != nil {
		return err
	}

	s.Reporter.Info("Git repository initialized.")
	s.Logger.Printf("initialized git repository at %s", s.Paths.Root)
	return nil
}
