// Package haconfig discovers the Home Assistant configuration directory on
// the host.
package haconfig

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"komodosetup/internal/hostenv"
	"komodosetup/internal/ui"
)

const (
	// MarkerFile confirms a candidate directory is a valid configuration
	// root.
	MarkerFile = "configuration.yaml"
	// EnvOverride names an explicit configuration directory and beats every
	// built-in candidate.
	EnvOverride = "HA_CONFIG_PATH"
)

// ConfigRoot is an accepted Home Assistant configuration directory.
type ConfigRoot struct {
	Path string
}

// AddonsDir returns the local add-ons directory under the configuration
// root.
func (c ConfigRoot) AddonsDir() string {
	return filepath.Join(c.Path, "addons")
}

// InvalidConfigDirError reports a user-supplied path without the marker
// file.
type InvalidConfigDirError struct {
	Path string
}

func (e *InvalidConfigDirError) Error() string {
	return fmt.Sprintf("invalid Home Assistant configuration directory: %s", e.Path)
}

// Locator searches well-known directories for a configuration root and
// falls back to asking the user.
type Locator struct {
	family   hostenv.OSFamily
	home     string
	getenv   func(string) string
	reporter *ui.Reporter
	prompt   ui.Prompt
}

// NewLocator builds a locator for the host platform. home and getenv are
// explicit so tests can point the search at a scratch tree.
func NewLocator(family hostenv.OSFamily, home string, getenv func(string) string, reporter *ui.Reporter, prompt ui.Prompt) *Locator {
	if getenv == nil {
		getenv = os.Getenv
	}
	return &Locator{family: family, home: home, getenv: getenv, reporter: reporter, prompt: prompt}
}

// Candidates returns the ordered search list. The environment override, when
// set, always comes first; after that the order is fixed per platform and
// first match wins.
func (l *Locator) Candidates() []string {
	var candidates []string
	if override := l.getenv(EnvOverride); override != "" {
		candidates = append(candidates, override)
	}

	if l.family == hostenv.Windows {
		candidates = append(candidates,
			filepath.Join(l.home, ".homeassistant"),
			filepath.Join(l.home, "homeassistant"),
			filepath.Join(l.home, "Documents", "HomeAssistant"),
			filepath.Join(l.home, "Development", "homeassistant"),
			`C:\homeassistant`,
			`C:\config`,
		)
		return candidates
	}

	candidates = append(candidates,
		filepath.Join(l.home, ".homeassistant"),
		filepath.Join(l.home, "homeassistant"),
		"/usr/share/hassio/homeassistant",
		"/config",
		filepath.Join(l.home, "Documents", "HomeAssistant"),
		filepath.Join(l.home, "Development", "homeassistant"),
	)
	return candidates
}

// Discover scans the candidate list and returns the first directory
// containing the marker file.
func (l *Locator) Discover() (ConfigRoot, bool) {
	for _, candidate := range l.Candidates() {
		if hasMarker(candidate) {
			return ConfigRoot{Path: candidate}, true
		}
	}
	return ConfigRoot{}, false
}

// Locate finds the configuration root, prompting for a path when no
// candidate matches. A manual path without the marker file is fatal.
func (l *Locator) Locate(ctx context.Context) (ConfigRoot, error) {
	l.reporter.Info("Looking for Home Assistant configuration directory...")

	if root, ok := l.Discover(); ok {
		l.reporter.Info("Found Home Assistant config at: %s", root.Path)
		return root, nil
	}

	l.reporter.Warn("Home Assistant configuration directory not found automatically.")
	answer, err := l.prompt.Ask(ctx, "Please enter the path to your Home Assistant config directory:")
	if err != nil {
		return ConfigRoot{}, err
	}

	if !hasMarker(answer) {
		l.reporter.Error("Invalid Home Assistant configuration directory.")
		return ConfigRoot{}, &InvalidConfigDirError{Path: answer}
	}

	root := ConfigRoot{Path: answer}
	l.reporter.Info("Using Home Assistant config at: %s", root.Path)
	return root, nil
}

func hasMarker(dir string) bool {
	if dir == "" {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, MarkerFile))
	return err == nil && info.Mode().IsRegular()
}
