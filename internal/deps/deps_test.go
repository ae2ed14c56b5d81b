package deps

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"komodosetup/internal/execx"
	"komodosetup/internal/hostenv"
	"komodosetup/internal/logx"
	"komodosetup/internal/ui"
)

type fakeRunner struct {
	available map[string]bool
	calls     [][]string
	failOn    string
}

func (f *fakeRunner) Run(_ context.Context, command string, args []string, opts execx.RunOptions) (execx.Result, error) {
	argv := append([]string{command}, args...)
	f.calls = append(f.calls, argv)
	if f.failOn != "" && strings.Contains(strings.Join(argv, " "), f.failOn) {
		err := &execx.CommandError{Command: command, Args: args, ExitCode: 1, Stderr: "simulated failure"}
		if opts.MustSucceed {
			return execx.Result{ExitCode: 1}, err
		}
		return execx.Result{ExitCode: 1}, nil
	}
	return execx.Result{}, nil
}

func (f *fakeRunner) LookPath(command string) (string, error) {
	if f.available[command] {
		return "/usr/bin/" + command, nil
	}
	return "", fmt.Errorf("%s: executable file not found", command)
}

type fakePrompt struct {
	confirm bool
	asked   []string
}

func (f *fakePrompt) Ask(_ context.Context, question string) (string, error) {
	f.asked = append(f.asked, question)
	return "", nil
}

func (f *fakePrompt) Confirm(_ context.Context, question string, _ bool) (bool, error) {
	f.asked = append(f.asked, question)
	return f.confirm, nil
}

func newInstaller(t *testing.T, family hostenv.OSFamily, runner execx.Runner, prompt ui.Prompt) Installer {
	t.Helper()
	in, err := ForFamily(family, runner, ui.NewReporter(io.Discard, false), prompt, logx.Discard())
	if err != nil {
		t.Fatalf("ForFamily(%s): %v", family, err)
	}
	return in
}

func TestEnsureNothingMissingRunsNoCommands(t *testing.T) {
	for _, family := range []hostenv.OSFamily{hostenv.Linux, hostenv.MacOS, hostenv.Windows} {
		runner := &fakeRunner{available: map[string]bool{}}
		in := newInstaller(t, family, runner, &fakePrompt{})

		if err := in.Ensure(context.Background(), nil); err != nil {
			t.Errorf("%s: ensure with empty missing set: %v", family, err)
		}
		if len(runner.calls) != 0 {
			t.Errorf("%s: expected zero invocations, got %v", family, runner.calls)
		}
	}
}

func TestForFamilyUnsupported(t *testing.T) {
	_, err := ForFamily(hostenv.Unsupported, &fakeRunner{}, ui.NewReporter(io.Discard, false), &fakePrompt{}, logx.Discard())

	var unsupported *UnsupportedPlatformError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedPlatformError, got %v", err)
	}
}

func TestLinuxNoPackageManager(t *testing.T) {
	runner := &fakeRunner{available: map[string]bool{}}
	in := newInstaller(t, hostenv.Linux, runner, &fakePrompt{})

	err := in.Ensure(context.Background(), []string{"git", "docker"})

	var noMgr *NoPackageManagerError
	if !errors.As(err, &noMgr) {
		t.Fatalf("expected NoPackageManagerError, got %v", err)
	}
	if len(runner.calls) != 0 {
		t.Fatalf("no commands expected, got %v", runner.calls)
	}
}

func TestLinuxPackageManagerPriority(t *testing.T) {
	// apt-get must win even when later managers are also present.
	runner := &fakeRunner{available: map[string]bool{"apt-get": true, "pacman": true, "zypper": true}}
	if got := DetectPackageManager(runner); got != "apt-get" {
		t.Fatalf("detected %q, want apt-get", got)
	}

	runner = &fakeRunner{available: map[string]bool{"pacman": true, "zypper": true}}
	if got := DetectPackageManager(runner); got != "pacman" {
		t.Fatalf("detected %q, want pacman", got)
	}
}

func TestLinuxAptInstall(t *testing.T) {
	runner := &fakeRunner{available: map[string]bool{"apt-get": true}}
	in := newInstaller(t, hostenv.Linux, runner, &fakePrompt{})

	if err := in.Ensure(context.Background(), []string{"git"}); err != nil {
		t.Fatalf("ensure: %v", err)
	}

	want := [][]string{
		{"sudo", "apt-get", "update"},
		{"sudo", "apt-get", "install", "-y", "git", "docker-compose", "jq"},
	}
	assertCalls(t, runner.calls, want)
}

func TestLinuxZypperInstall(t *testing.T) {
	runner := &fakeRunner{available: map[string]bool{"zypper": true}}
	in := newInstaller(t, hostenv.Linux, runner, &fakePrompt{})

	if err := in.Ensure(context.Background(), []string{"git"}); err != nil {
		t.Fatalf("ensure: %v", err)
	}

	want := [][]string{
		{"sudo", "zypper", "refresh"},
		{"sudo", "zypper", "install", "-y", "git", "docker-compose", "jq"},
	}
	assertCalls(t, runner.calls, want)
}

func TestLinuxDockerServiceBootstrap(t *testing.T) {
	runner := &fakeRunner{available: map[string]bool{"dnf": true}}
	in := newInstaller(t, hostenv.Linux, runner, &fakePrompt{})

	if err := in.Ensure(context.Background(), []string{"docker"}); err != nil {
		t.Fatalf("ensure: %v", err)
	}

	var sawEnable, sawStart, sawUsermod bool
	for _, argv := range runner.calls {
		joined := strings.Join(argv, " ")
		switch {
		case strings.HasPrefix(joined, "sudo systemctl enable docker"):
			sawEnable = true
		case strings.HasPrefix(joined, "sudo systemctl start docker"):
			sawStart = true
		case strings.HasPrefix(joined, "sudo usermod -aG docker"):
			sawUsermod = true
		}
	}
	if !sawEnable || !sawStart || !sawUsermod {
		t.Fatalf("service bootstrap incomplete: %v", runner.calls)
	}
}

func TestLinuxDockerServiceFailureIsNotFatal(t *testing.T) {
	runner := &fakeRunner{available: map[string]bool{"apt-get": true}, failOn: "systemctl"}
	in := newInstaller(t, hostenv.Linux, runner, &fakePrompt{})

	if err := in.Ensure(context.Background(), []string{"docker"}); err != nil {
		t.Fatalf("service configuration failure must be downgraded, got %v", err)
	}
}

func TestLinuxInstallFailurePropagates(t *testing.T) {
	runner := &fakeRunner{available: map[string]bool{"apt-get": true}, failOn: "install"}
	in := newInstaller(t, hostenv.Linux, runner, &fakePrompt{})

	err := in.Ensure(context.Background(), []string{"git"})

	var cmdErr *execx.CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected CommandError, got %v", err)
	}
}

func TestMacNoHomebrew(t *testing.T) {
	runner := &fakeRunner{available: map[string]bool{}}
	in := newInstaller(t, hostenv.MacOS, runner, &fakePrompt{})

	err := in.Ensure(context.Background(), []string{"git"})

	var noMgr *NoPackageManagerError
	if !errors.As(err, &noMgr) {
		t.Fatalf("expected NoPackageManagerError, got %v", err)
	}
}

func TestMacBrewInstall(t *testing.T) {
	runner := &fakeRunner{available: map[string]bool{"brew": true, "docker": true}}
	in := newInstaller(t, hostenv.MacOS, runner, &fakePrompt{})

	if err := in.Ensure(context.Background(), []string{"git"}); err != nil {
		t.Fatalf("ensure: %v", err)
	}

	want := [][]string{{"brew", "install", "git", "jq"}}
	assertCalls(t, runner.calls, want)
}

func TestMacMissingDockerIsWarningOnly(t *testing.T) {
	runner := &fakeRunner{available: map[string]bool{"brew": true}}
	in := newInstaller(t, hostenv.MacOS, runner, &fakePrompt{})

	if err := in.Ensure(context.Background(), []string{"docker"}); err != nil {
		t.Fatalf("docker absence on macOS must not be fatal, got %v", err)
	}
}

func TestWindowsDeclinedAborts(t *testing.T) {
	runner := &fakeRunner{available: map[string]bool{}}
	prompt := &fakePrompt{confirm: false}
	in := newInstaller(t, hostenv.Windows, runner, prompt)

	err := in.Ensure(context.Background(), []string{"git", "docker"})
	if !errors.Is(err, ErrDeclined) {
		t.Fatalf("expected ErrDeclined, got %v", err)
	}
	if len(runner.calls) != 0 {
		t.Fatalf("windows must not attempt installation, got %v", runner.calls)
	}
	if len(prompt.asked) != 1 {
		t.Fatalf("expected one confirmation prompt, got %v", prompt.asked)
	}
}

func TestWindowsAcceptedContinues(t *testing.T) {
	in := newInstaller(t, hostenv.Windows, &fakeRunner{}, &fakePrompt{confirm: true})

	if err := in.Ensure(context.Background(), []string{"git"}); err != nil {
		t.Fatalf("ensure: %v", err)
	}
}

func TestMissing(t *testing.T) {
	runner := &fakeRunner{available: map[string]bool{"git": true}}

	got := Missing(runner, RequiredTools)
	if len(got) != 1 || got[0] != "docker" {
		t.Fatalf("missing = %v, want [docker]", got)
	}

	runner.available["docker"] = true
	if got := Missing(runner, RequiredTools); len(got) != 0 {
		t.Fatalf("missing = %v, want none", got)
	}
}

func assertCalls(t *testing.T, got, want [][]string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d calls %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if strings.Join(got[i], " ") != strings.Join(want[i], " ") {
			t.Errorf("call %d = %v, want %v", i, got[i], want[i])
		}
	}
}
