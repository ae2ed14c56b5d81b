package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"komodosetup/internal/deps"
	"komodosetup/internal/execx"
	"komodosetup/internal/haconfig"
	"komodosetup/internal/hostenv"
	"komodosetup/internal/ui"
)

var checkJSON bool

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check host environment readiness without installing anything",
		RunE:  runCheck,
	}
	cmd.Flags().BoolVar(&checkJSON, "json", false, "Output machine-readable JSON")
	return cmd
}

type healthCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "warning", "error"
	Summary string `json:"summary"`
}

func runCheck(cmd *cobra.Command, _ []string) error {
	profile := hostenv.Detect()
	runner := execx.CmdRunner{}

	var checks []healthCheck
	checks = append(checks, checkPlatform(profile))
	checks = append(checks, checkPackageManager(profile, runner))
	checks = append(checks, checkTools(runner))
	checks = append(checks, checkHAConfig(profile))

	return writeCheckResult(cmd, profile, checks)
}

func checkPlatform(profile hostenv.HostProfile) healthCheck {
	summary := fmt.Sprintf("%s/%s", profile.Family, profile.Machine)
	if profile.Family == hostenv.Unsupported {
		return healthCheck{Name: "Platform", Status: "error", Summary: summary}
	}
	return healthCheck{Name: "Platform", Status: "ok", Summary: summary}
}

func checkPackageManager(profile hostenv.HostProfile, runner execx.Runner) healthCheck {
	switch profile.Family {
	case hostenv.Linux:
		if manager := deps.DetectPackageManager(runner); manager != "" {
			return healthCheck{Name: "Package manager", Status: "ok", Summary: manager}
		}
		return healthCheck{Name: "Package manager", Status: "error", Summary: "no supported package manager found"}
	case hostenv.MacOS:
		if execx.CommandExists(runner, "brew") {
			return healthCheck{Name: "Package manager", Status: "ok", Summary: "brew"}
		}
		return healthCheck{Name: "Package manager", Status: "error", Summary: "Homebrew not found (https://brew.sh/)"}
	case hostenv.Windows:
		return healthCheck{Name: "Package manager", Status: "warning", Summary: "manual installation only"}
	default:
		return healthCheck{Name: "Package manager", Status: "error", Summary: "unsupported platform"}
	}
}

func checkTools(runner execx.Runner) healthCheck {
	missing := deps.Missing(runner, deps.RequiredTools)
	if len(missing) == 0 {
		return healthCheck{Name: "Tools", Status: "ok", Summary: joinComma(deps.RequiredTools)}
	}
	return healthCheck{
		Name:    "Tools",
		Status:  "warning",
		Summary: fmt.Sprintf("missing: %s", joinComma(missing)),
	}
}

func checkHAConfig(profile hostenv.HostProfile) healthCheck {
	home, err := os.UserHomeDir()
	if err != nil {
		return healthCheck{Name: "HA config", Status: "warning", Summary: err.Error()}
	}

	locator := haconfig.NewLocator(profile.Family, home, nil, ui.NewReporter(os.Stdout, false), nil)
	if root, ok := locator.Discover(); ok {
		return healthCheck{Name: "HA config", Status: "ok", Summary: root.Path}
	}
	return healthCheck{Name: "HA config", Status: "warning", Summary: "configuration directory not found"}
}

func writeCheckResult(cmd *cobra.Command, profile hostenv.HostProfile, checks []healthCheck) error {
	out := cmd.OutOrStdout()

	if checkJSON {
		data, err := json.MarshalIndent(checks, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	bold := lipgloss.NewStyle().Bold(true).Inline(true)
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Inline(true)
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Inline(true)
	red := lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Inline(true)
	styled := profile.Interactive

	render := func(s lipgloss.Style, text string) string {
		if !styled {
			return text
		}
		return s.Render(text)
	}

	fmt.Fprintln(out, render(bold, "ENVIRONMENT:"))
	for _, c := range checks {
		var statusStr string
		switch c.Status {
		case "ok":
			statusStr = render(green, "OK")
		case "warning":
			statusStr = render(yellow, "WARN")
		case "error":
			statusStr = render(red, "ERROR")
		}
		fmt.Fprintf(out, "  %-18s %-6s %s\n", c.Name+":", statusStr, c.Summary)
	}
	return nil
}

func joinComma(items []string) string {
	if len(items) == 0 {
		return ""
	}
	result := items[0]
	for _, item := range items[1:] {
		result += ", " + item
	}
	return result
}
