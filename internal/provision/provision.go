// Package provision materializes the development or production workspace
// for the add-on.
package provision

import (
	"context"
	"log"
	"os"
	"time"

	"komodosetup/internal/addon"
	"komodosetup/internal/execx"
	"komodosetup/internal/haconfig"
	"komodosetup/internal/hostenv"
	"komodosetup/internal/paths"
	"komodosetup/internal/ui"
)

// Service runs the provisioning pipelines. Every collaborator is injected
// so the pipelines are testable against fakes.
type Service struct {
	Profile  hostenv.HostProfile
	Paths    paths.ProjectPaths
	Runner   execx.Runner
	Reporter *ui.Reporter
	Prompt   ui.Prompt
	Logger   *log.Logger
	// Now supplies backup timestamps; defaults to time.Now.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Development provisions the local development workspace: devcontainer
// files, a linked add-on tree inside the Home Assistant config directory, a
// local image build, documentation, and version control.
func (s *Service) Development(ctx context.Context) error {
	s.Reporter.Info("Setting up development environment...")
	s.Logger.Printf("development pipeline started")

	manifest, err := addon.Load(s.Paths.AddonConfigFile)
	if err != nil {
		return err
	}

	locator := haconfig.NewLocator(s.Profile.Family, homeDir(), nil, s.Reporter, s.Prompt)
	root, err := locator.Locate(ctx)
	if err != nil {
		return err
	}

	if err := s.writeDevContainer(); err != nil {
		return err
	}
	if err := s.linkAddon(root, manifest.Slug); err != nil {
		return err
	}
	if err := s.buildImage(ctx, manifest.Slug); err != nil {
		return err
	}
	if err := s.writeDocumentation(); err != nil {
		return err
	}
	if err := s.initGit(ctx); err != nil {
		return err
	}

	s.Reporter.Success("Development setup complete!")
	s.Reporter.Info("Next steps:")
	s.Reporter.Plain("1. Open this project in Visual Studio Code")
	s.Reporter.Plain("2. Install the 'Dev Containers' extension")
	s.Reporter.Plain("3. Use Ctrl+Shift+P and select 'Dev Containers: Reopen in Container'")
	s.Reporter.Plain("4. Find the add-on in Home Assistant Supervisor -> Add-on Store -> Local add-ons")

	s.Logger.Printf("development pipeline finished")
	return nil
}

// Production generates the files an external multi-architecture build
// system consumes. No image build and no workspace linking happen here.
func (s *Service) Production(ctx context.Context) error {
	s.Reporter.Info("Setting up production deployment...")
	s.Logger.Printf("production pipeline started")

	manifest, err := addon.Load(s.Paths.AddonConfigFile)
	if err != nil {
		return err
	}

	if err := s.writeBuildManifest(manifest); err != nil {
		return err
	}
	if err := s.writeDocumentation(); err != nil {
		return err
	}
	if err := s.initGit(ctx); err != nil {
		return err
	}

	s.Reporter.Success("Production setup complete!")
	s.Reporter.Info("Next steps:")
	s.Reporter.Plain("1. Update repository URL in build.yaml")
	s.Reporter.Plain("2. Create GitHub repository and push code")
	s.Reporter.Plain("3. GitHub Actions will build multi-architecture images")
	s.Reporter.Plain("4. Users can install from your repository")

	s.Logger.Printf("production pipeline finished")
	return nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}
