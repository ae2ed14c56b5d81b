package cli

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"komodosetup/internal/deps"
	"komodosetup/internal/execx"
	"komodosetup/internal/haconfig"
	"komodosetup/internal/ui"
)

var (
	devMode  bool
	prodMode bool
)

// Execute runs the root cobra command, mapping every failure category to
// exit code 1 with a categorized diagnostic.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		reportFailure(os.Stderr, err, ctx.Err() != nil)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "komodosetup",
		Short:         "Komodo Periphery Home Assistant add-on setup",
		Long:          "Prepares a machine to develop or deploy the Komodo Periphery Home Assistant add-on.",
		RunE:          runSetup,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().BoolVar(&devMode, "dev", false, "Set up development environment (default)")
	cmd.Flags().BoolVar(&prodMode, "production", false, "Set up production deployment files")
	cmd.MarkFlagsMutuallyExclusive("dev", "production")

	cmd.AddCommand(newCheckCmd())

	return cmd
}

func reportFailure(out io.Writer, err error, interrupted bool) {
	rep := ui.NewReporter(out, false)

	var (
		unsupported *deps.UnsupportedPlatformError
		noManager   *deps.NoPackageManagerError
		invalidDir  *haconfig.InvalidConfigDirError
		cmdErr      *execx.CommandError
		pathErr     *fs.PathError
	)

	switch {
	case interrupted, errors.Is(err, context.Canceled), errors.Is(err, ui.ErrCanceled):
		rep.Warn("Installation cancelled by user.")
	case errors.Is(err, deps.ErrDeclined):
		rep.Error("Installation aborted: required tools are missing.")
	case errors.As(err, &unsupported), errors.As(err, &noManager), errors.As(err, &invalidDir):
		rep.Error("Installation failed: %v", err)
	case errors.As(err, &cmdErr):
		rep.Error("Installation failed with command error: %v", err)
	case errors.As(err, &pathErr):
		rep.Error("Installation failed with file system error: %v", err)
	default:
		rep.Error("Installation failed with unexpected error: %v", err)
	}
}
