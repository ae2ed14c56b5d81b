package deps

import (
	"context"
	"fmt"
	"log"

	"komodosetup/internal/execx"
	"komodosetup/internal/ui"
)

type macInstaller struct {
	runner   execx.Runner
	reporter *ui.Reporter
	logger   *log.Logger
}

func (in *macInstaller) Ensure(ctx context.Context, missing []string) error {
	if len(missing) == 0 {
		in.reporter.Info("All required tools are already installed.")
		return nil
	}

	if !execx.CommandExists(in.runner, "brew") {
		in.reporter.Error("Homebrew not found. Please install Homebrew first:")
		in.reporter.Error("https://brew.sh/")
		return fmt.Errorf("homebrew not found: %w", &NoPackageManagerError{})
	}

	in.reporter.Info("Installing dependencies via Homebrew...")
	in.logger.Printf("installing %v via brew", missing)

	args := append(append([]string{"install"}, missing...), "jq")
	if _, err := in.runner.Run(ctx, "brew", args, execx.RunOptions{MustSucceed: true}); err != nil {
		return err
	}

	// Docker Desktop installs through a GUI package, so its absence is only
	// reported, never fatal.
	if !execx.CommandExists(in.runner, "docker") {
		in.reporter.Warn("Docker Desktop not found. Please install Docker Desktop for Mac:")
		in.reporter.Warn("https://docs.docker.com/desktop/install/mac-install/")
	}
	return nil
}
