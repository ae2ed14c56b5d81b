package provision

import (
	"context"
	"fmt"

	"komodosetup/internal/execx"
	"komodosetup/internal/hostenv"
)

// buildImage builds the add-on container image for the host's build
// architecture. Build failure is fatal for the development pipeline.
func (s *Service) buildImage(ctx context.Context, slug string) error {
	s.Reporter.Info("Building addon Docker image...")

	arch := hostenv.BuildArch(s.Profile.Machine)
	image := fmt.Sprintf("ghcr.io/home-assistant/%s-%s:latest", slug, arch)

	if !execx.CommandExists(s.Runner, "docker") {
		s.Reporter.Error("Docker not available. Please install Docker to build the addon.")
		return fmt.Errorf("docker not available")
	}

	s.Reporter.Info("Building Docker image: %s", image)
	s.Logger.Printf("docker build arch=%s image=%s", arch, image)

	args := []string{"build", "--build-arg", "BUILD_ARCH=" + arch, "-t", image, "."}
	if _, err := s.Runner.Run(ctx, "docker", args, execx.RunOptions{Dir: s.Paths.Root, MustSucceed: true}); err != nil {
		s.Reporter.Error("Docker build failed.")
		return err
	}

	s.Reporter.Info("Build completed successfully!")
	return nil
}
