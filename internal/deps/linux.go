package deps

import (
	"context"
	"log"
	"os"

	"komodosetup/internal/execx"
	"komodosetup/internal/ui"
)

// packageManagers is a strict priority order, not an availability ranking:
// the first executable found on the search path wins.
var packageManagers = []string{"apt-get", "yum", "dnf", "pacman", "zypper"}

// auxiliaryPackages are installed alongside any missing tools on Linux: the
// compose helper and the JSON query tool the add-on workflow uses.
var auxiliaryPackages = []string{"docker-compose", "jq"}

type linuxInstaller struct {
	runner   execx.Runner
	reporter *ui.Reporter
	logger   *log.Logger
}

func (in *linuxInstaller) Ensure(ctx context.Context, missing []string) error {
	if len(missing) == 0 {
		in.reporter.Info("All required tools are already installed.")
		return nil
	}

	manager := DetectPackageManager(in.runner)
	if manager == "" {
		in.reporter.Error("No supported package manager found.")
		in.reporter.Error("Please install git, docker, and docker-compose manually.")
		return &NoPackageManagerError{}
	}

	in.reporter.Info("Installing dependencies via %s...", manager)
	in.logger.Printf("installing %v via %s", missing, manager)

	packages := append(append([]string(nil), missing...), auxiliaryPackages...)

	var commands [][]string
	switch manager {
	case "apt-get":
		commands = [][]string{
			{"sudo", "apt-get", "update"},
			append([]string{"sudo", "apt-get", "install", "-y"}, packages...),
		}
	case "yum", "dnf":
		commands = [][]string{
			{"sudo", manager, "update", "-y"},
			append([]string{"sudo", manager, "install", "-y"}, packages...),
		}
	case "pacman":
		commands = [][]string{
			append([]string{"sudo", "pacman", "-Syu", "--noconfirm"}, packages...),
		}
	case "zypper":
		commands = [][]string{
			{"sudo", "zypper", "refresh"},
			append([]string{"sudo", "zypper", "install", "-y"}, packages...),
		}
	}

	for _, argv := range commands {
		if _, err := in.runner.Run(ctx, argv[0], argv[1:], execx.RunOptions{MustSucceed: true}); err != nil {
			return err
		}
	}

	if contains(missing, "docker") {
		in.configureDockerService(ctx)
	}
	return nil
}

// configureDockerService enables the engine's background service and grants
// the invoking user group access. Service configuration is best-effort: any
// failure is downgraded to a warning.
func (in *linuxInstaller) configureDockerService(ctx context.Context) {
	user := os.Getenv("USER")
	if user == "" {
		user = "user"
	}

	commands := [][]string{
		{"sudo", "systemctl", "enable", "docker"},
		{"sudo", "systemctl", "start", "docker"},
		{"sudo", "usermod", "-aG", "docker", user},
	}

	for _, argv := range commands {
		if _, err := in.runner.Run(ctx, argv[0], argv[1:], execx.RunOptions{MustSucceed: true}); err != nil {
			in.reporter.Warn("Could not configure Docker service. Please configure manually.")
			in.logger.Printf("docker service configuration failed: %v", err)
			return
		}
	}

	in.reporter.Warn("You may need to log out and back in for Docker group changes to take effect.")
}

// DetectPackageManager returns the first supported package manager found on
// the search path, or the empty string when none resolves.
func DetectPackageManager(runner execx.Runner) string {
	for _, manager := range packageManagers {
		if execx.CommandExists(runner, manager) {
			return manager
		}
	}
	return ""
}
