package deps

import (
	"context"
	"log"

	"komodosetup/internal/ui"
)

// windowsInstaller never installs anything: no package manager is assumed,
// so it lists what is missing and asks whether to continue regardless.
type windowsInstaller struct {
	reporter *ui.Reporter
	prompt   ui.Prompt
	logger   *log.Logger
}

func (in *windowsInstaller) Ensure(ctx context.Context, missing []string) error {
	if len(missing) == 0 {
		in.reporter.Info("All required tools are already installed.")
		return nil
	}

	in.reporter.Warn("Missing required tools on Windows:")
	for _, tool := range missing {
		in.reporter.Warn("  - %s", tool)
	}
	in.reporter.Warn("Please install:")
	in.reporter.Warn("- Git for Windows: https://git-scm.com/download/win")
	in.reporter.Warn("- Docker Desktop: https://docs.docker.com/desktop/install/windows-install/")

	ok, err := in.prompt.Confirm(ctx, "Continue anyway?", false)
	if err != nil {
		return err
	}
	if !ok {
		in.logger.Printf("user declined to continue with missing tools %v", missing)
		return ErrDeclined
	}
	return nil
}
