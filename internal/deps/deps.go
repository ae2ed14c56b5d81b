// Package deps checks for the external tools the add-on workflow needs and
// installs what is missing, with one strategy per host platform.
package deps

import (
	"context"
	"errors"
	"fmt"
	"log"

	"komodosetup/internal/execx"
	"komodosetup/internal/hostenv"
	"komodosetup/internal/ui"
)

// RequiredTools lists the commands every setup run depends on.
var RequiredTools = []string{"git", "docker"}

// ErrDeclined is returned when the user chooses not to continue with
// missing tools.
var ErrDeclined = errors.New("setup declined by user")

// NoPackageManagerError indicates no supported package manager was found on
// a platform where automated installation is expected.
type NoPackageManagerError struct{}

func (*NoPackageManagerError) Error() string {
	return "no supported package manager found"
}

// UnsupportedPlatformError indicates the host OS has no installation
// strategy at all.
type UnsupportedPlatformError struct {
	Family hostenv.OSFamily
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported operating system: %s", e.Family)
}

// Installer ensures the given missing tools become available, or explains
// why they cannot.
type Installer interface {
	Ensure(ctx context.Context, missing []string) error
}

// ForFamily selects the installation strategy for the host platform. The
// choice happens once at startup; each variant carries its own rules.
func ForFamily(family hostenv.OSFamily, runner execx.Runner, reporter *ui.Reporter, prompt ui.Prompt, logger *log.Logger) (Installer, error) {
	switch family {
	case hostenv.Linux:
		return &linuxInstaller{runner: runner, reporter: reporter, logger: logger}, nil
	case hostenv.MacOS:
		return &macInstaller{runner: runner, reporter: reporter, logger: logger}, nil
	case hostenv.Windows:
		return &windowsInstaller{reporter: reporter, prompt: prompt, logger: logger}, nil
	default:
		return nil, &UnsupportedPlatformError{Family: family}
	}
}

// Missing returns the subset of tools that do not resolve on the search
// path.
func Missing(runner execx.Runner, tools []string) []string {
	var missing []string
	for _, tool := range tools {
		if !execx.CommandExists(runner, tool) {
			missing = append(missing, tool)
		}
	}
	return missing
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
