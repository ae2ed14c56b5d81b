package cli

import (
	"github.com/spf13/cobra"

	"komodosetup/internal/deps"
	"komodosetup/internal/execx"
	"komodosetup/internal/hostenv"
	"komodosetup/internal/logx"
	"komodosetup/internal/paths"
	"komodosetup/internal/provision"
	"komodosetup/internal/ui"
)

// setupState tracks the orchestration progress. Failed is terminal; any
// error at any state lands there and the process exits non-zero.
type setupState string

const (
	stateStart               setupState = "start"
	stateDependenciesChecked setupState = "dependencies-checked"
	stateProvisioned         setupState = "provisioned"
	stateDone                setupState = "done"
	stateFailed              setupState = "failed"
)

func runSetup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	profile := hostenv.Detect()
	rep := ui.NewReporter(cmd.OutOrStdout(), profile.Interactive)
	rep.Header("Komodo Periphery HA Add-on Installer")

	logger, closer, err := logx.New()
	if err != nil {
		rep.Warn("Could not open run log: %v", err)
		logger = logx.Discard()
	} else {
		defer closer.Close()
	}

	prompt := ui.NewPrompt(cmd.InOrStdin(), cmd.OutOrStdout(), profile.Interactive)
	runner := execx.CmdRunner{}

	state := stateStart
	logger.Printf("state: %s (os=%s machine=%s)", state, profile.Family, profile.Machine)

	fail := func(err error) error {
		state = stateFailed
		logger.Printf("state: %s (%v)", state, err)
		return err
	}

	// The dependency step is never skipped, regardless of mode.
	rep.Info("Installing dependencies...")
	installer, err := deps.ForFamily(profile.Family, runner, rep, prompt, logger)
	if err != nil {
		return fail(err)
	}
	missing := deps.Missing(runner, deps.RequiredTools)
	if err := installer.Ensure(ctx, missing); err != nil {
		return fail(err)
	}
	state = stateDependenciesChecked
	logger.Printf("state: %s", state)

	pp, err := paths.Resolve("")
	if err != nil {
		return fail(err)
	}

	svc := &provision.Service{
		Profile:  profile,
		Paths:    pp,
		Runner:   runner,
		Reporter: rep,
		Prompt:   prompt,
		Logger:   logger,
	}

	if prodMode {
		err = svc.Production(ctx)
	} else {
		err = svc.Development(ctx)
	}
	if err != nil {
		return fail(err)
	}
	state = stateProvisioned
	logger.Printf("state: %s", state)

	rep.Success("Installation completed successfully!")
	state = stateDone
	logger.Printf("state: %s", state)
	return nil
}
