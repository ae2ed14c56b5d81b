package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"komodosetup/internal/deps"
	"komodosetup/internal/execx"
	"komodosetup/internal/hostenv"
	"komodosetup/internal/ui"
)

func TestMutuallyExclusiveModeFlags(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--dev", "--production"})
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for mutually exclusive flags")
	}
}

func TestUnknownFlagFails(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--bogus"})
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if !strings.Contains(err.Error(), "bogus") {
		t.Fatalf("error does not name the flag: %v", err)
	}
}

func TestReportFailureCategories(t *testing.T) {
	cases := []struct {
		name        string
		err         error
		interrupted bool
		want        string
	}{
		{"interrupt", context.Canceled, true, "cancelled by user"},
		{"prompt canceled", ui.ErrCanceled, false, "cancelled by user"},
		{"declined", deps.ErrDeclined, false, "aborted"},
		{"no package manager", &deps.NoPackageManagerError{}, false, "no supported package manager"},
		{"unsupported", &deps.UnsupportedPlatformError{Family: hostenv.Unsupported}, false, "unsupported operating system"},
		{"command", &execx.CommandError{Command: "docker", ExitCode: 1}, false, "command error"},
		{"unexpected", errors.New("boom"), false, "unexpected error"},
	}

	for _, tc := range cases {
		var buf bytes.Buffer
		reportFailure(&buf, tc.err, tc.interrupted)
		if !strings.Contains(buf.String(), tc.want) {
			t.Errorf("%s: output %q missing %q", tc.name, buf.String(), tc.want)
		}
	}
}

type fakeRunner struct {
	available map[string]bool
}

func (f *fakeRunner) Run(_ context.Context, command string, args []string, _ execx.RunOptions) (execx.Result, error) {
	return execx.Result{}, nil
}

func (f *fakeRunner) LookPath(command string) (string, error) {
	if f.available[command] {
		return "/usr/bin/" + command, nil
	}
	return "", fmt.Errorf("%s: executable file not found", command)
}

func TestCheckPlatform(t *testing.T) {
	ok := checkPlatform(hostenv.HostProfile{Family: hostenv.Linux, Machine: "amd64"})
	if ok.Status != "ok" || !strings.Contains(ok.Summary, "linux") {
		t.Fatalf("unexpected check: %+v", ok)
	}

	bad := checkPlatform(hostenv.HostProfile{Family: hostenv.Unsupported})
	if bad.Status != "error" {
		t.Fatalf("unexpected check: %+v", bad)
	}
}

func TestCheckPackageManager(t *testing.T) {
	linux := hostenv.HostProfile{Family: hostenv.Linux}

	got := checkPackageManager(linux, &fakeRunner{available: map[string]bool{"dnf": true}})
	if got.Status != "ok" || got.Summary != "dnf" {
		t.Fatalf("unexpected check: %+v", got)
	}

	got = checkPackageManager(linux, &fakeRunner{})
	if got.Status != "error" {
		t.Fatalf("unexpected check: %+v", got)
	}

	got = checkPackageManager(hostenv.HostProfile{Family: hostenv.Windows}, &fakeRunner{})
	if got.Status != "warning" {
		t.Fatalf("unexpected check: %+v", got)
	}
}

func TestCheckTools(t *testing.T) {
	got := checkTools(&fakeRunner{available: map[string]bool{"git": true, "docker": true}})
	if got.Status != "ok" {
		t.Fatalf("unexpected check: %+v", got)
	}

	got = checkTools(&fakeRunner{available: map[string]bool{"git": true}})
	if got.Status != "warning" || !strings.Contains(got.Summary, "docker") {
		t.Fatalf("unexpected check: %+v", got)
	}
}
