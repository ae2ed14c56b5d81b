package hostenv

import (
	"os"
	"runtime"
	"strings"
)

// OSFamily identifies the host platform variants the installer knows how to
// provision. The set is closed; anything else is Unsupported.
type OSFamily int

const (
	Unsupported OSFamily = iota
	Linux
	MacOS
	Windows
)

func (f OSFamily) String() string {
	switch f {
	case Linux:
		return "linux"
	case MacOS:
		return "macos"
	case Windows:
		return "windows"
	default:
		return "unsupported"
	}
}

// HostProfile captures the host environment facts the installer needs. It is
// computed once at startup and never mutated afterwards.
type HostProfile struct {
	Family      OSFamily
	Machine     string
	Interactive bool
}

// Detect inspects the running process environment and returns the profile.
func Detect() HostProfile {
	return HostProfile{
		Family:      familyFromGOOS(runtime.GOOS),
		Machine:     runtime.GOARCH,
		Interactive: interactiveTerminal(os.Stdout),
	}
}

func familyFromGOOS(goos string) OSFamily {
	switch goos {
	case "linux":
		return Linux
	case "darwin":
		return MacOS
	case "windows":
		return Windows
	default:
		return Unsupported
	}
}

// interactiveTerminal reports whether the writer is a character device that
// can interpret color escape sequences. Legacy Windows consoles and
// redirected output both render status lines as plain text instead.
func interactiveTerminal(out *os.File) bool {
	if out == nil {
		return false
	}
	info, err := out.Stat()
	if err != nil {
		return false
	}
	if info.Mode()&os.ModeCharDevice == 0 {
		return false
	}
	if runtime.GOOS != "windows" {
		term := os.Getenv("TERM")
		if term == "" || strings.EqualFold(term, "dumb") {
			return false
		}
	}
	return true
}

// buildArchMap maps reported hardware identifiers to add-on build
// architectures. Both uname-style and Go runtime identifiers appear because
// callers may supply either.
var buildArchMap = map[string]string{
	"x86_64":  "amd64",
	"amd64":   "amd64",
	"aarch64": "aarch64",
	"arm64":   "aarch64",
	"armv7l":  "armv7",
	"arm":     "armv7",
}

// BuildArch resolves a machine identifier to the container build
// architecture, defaulting to amd64 for anything unrecognized.
func BuildArch(machine string) string {
	if arch, ok := buildArchMap[strings.ToLower(machine)]; ok {
		return arch
	}
	return "amd64"
}
