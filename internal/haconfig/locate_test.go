package haconfig

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"komodosetup/internal/hostenv"
	"komodosetup/internal/ui"
)

func writeMarker(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, MarkerFile), []byte("homeassistant:\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

type staticPrompt struct {
	answer string
	err    error
}

func (p *staticPrompt) Ask(context.Context, string) (string, error) {
	return p.answer, p.err
}

func (p *staticPrompt) Confirm(context.Context, string, bool) (bool, error) {
	return false, nil
}

func newTestLocator(home string, env map[string]string, prompt ui.Prompt) *Locator {
	getenv := func(key string) string { return env[key] }
	if prompt == nil {
		prompt = &staticPrompt{}
	}
	return NewLocator(hostenv.Linux, home, getenv, ui.NewReporter(io.Discard, false), prompt)
}

func TestDiscoverFirstCandidateWins(t *testing.T) {
	home := t.TempDir()
	first := filepath.Join(home, ".homeassistant")
	second := filepath.Join(home, "homeassistant")
	writeMarker(t, first)
	writeMarker(t, second)

	root, ok := newTestLocator(home, nil, nil).Discover()
	if !ok {
		t.Fatal("expected a discovered root")
	}
	if root.Path != first {
		t.Fatalf("root = %s, want %s", root.Path, first)
	}
}

func TestDiscoverSkipsDirsWithoutMarker(t *testing.T) {
	home := t.TempDir()
	if err := os.MkdirAll(filepath.Join(home, ".homeassistant"), 0o755); err != nil {
		t.Fatal(err)
	}
	valid := filepath.Join(home, "homeassistant")
	writeMarker(t, valid)

	root, ok := newTestLocator(home, nil, nil).Discover()
	if !ok || root.Path != valid {
		t.Fatalf("root = %v ok = %v, want %s", root, ok, valid)
	}
}

func TestEnvOverrideBeatsBuiltinCandidates(t *testing.T) {
	home := t.TempDir()
	builtin := filepath.Join(home, ".homeassistant")
	writeMarker(t, builtin)

	override := filepath.Join(t.TempDir(), "custom-config")
	writeMarker(t, override)

	loc := newTestLocator(home, map[string]string{EnvOverride: override}, nil)
	root, ok := loc.Discover()
	if !ok || root.Path != override {
		t.Fatalf("root = %v ok = %v, want override %s", root, ok, override)
	}
}

func TestEnvOverrideWithoutMarkerFallsThrough(t *testing.T) {
	home := t.TempDir()
	builtin := filepath.Join(home, "homeassistant")
	writeMarker(t, builtin)

	loc := newTestLocator(home, map[string]string{EnvOverride: filepath.Join(home, "nope")}, nil)
	root, ok := loc.Discover()
	if !ok || root.Path != builtin {
		t.Fatalf("root = %v ok = %v, want %s", root, ok, builtin)
	}
}

func TestLocatePromptFallbackValidPath(t *testing.T) {
	home := t.TempDir()
	manual := filepath.Join(t.TempDir(), "ha")
	writeMarker(t, manual)

	loc := newTestLocator(home, nil, &staticPrompt{answer: manual})
	root, err := loc.Locate(context.Background())
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if root.Path != manual {
		t.Fatalf("root = %s, want %s", root.Path, manual)
	}
}

func TestLocatePromptFallbackInvalidPathIsFatal(t *testing.T) {
	home := t.TempDir()
	loc := newTestLocator(home, nil, &staticPrompt{answer: filepath.Join(home, "nowhere")})

	_, err := loc.Locate(context.Background())

	var invalid *InvalidConfigDirError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidConfigDirError, got %v", err)
	}
}

func TestLocatePropagatesPromptError(t *testing.T) {
	loc := newTestLocator(t.TempDir(), nil, &staticPrompt{err: ui.ErrCanceled})

	if _, err := loc.Locate(context.Background()); !errors.Is(err, ui.ErrCanceled) {
		t.Fatalf("expected ErrCanceled, got %v", err)
	}
}

func TestAddonsDir(t *testing.T) {
	root := ConfigRoot{Path: "/srv/homeassistant"}
	if got := root.AddonsDir(); got != filepath.Join("/srv/homeassistant", "addons") {
		t.Fatalf("addons dir = %s", got)
	}
}

func TestWindowsCandidateList(t *testing.T) {
	loc := NewLocator(hostenv.Windows, `C:\Users\dev`, func(string) string { return "" }, ui.NewReporter(io.Discard, false), &staticPrompt{})
	candidates := loc.Candidates()

	if len(candidates) != 6 {
		t.Fatalf("expected 6 candidates, got %d: %v", len(candidates), candidates)
	}
	if candidates[4] != `C:\homeassistant` || candidates[5] != `C:\config` {
		t.Fatalf("fixed drive candidates missing: %v", candidates)
	}
}
