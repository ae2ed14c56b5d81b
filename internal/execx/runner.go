package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
)

// RunOptions configures a single external command invocation.
type RunOptions struct {
	Dir     string
	Env     []string
	Timeout time.Duration
	Stdout  io.Writer
	Stderr  io.Writer
	// MustSucceed turns a non-zero exit into a *CommandError.
	MustSucceed bool
}

// Result carries the captured output of a completed command.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Runner executes external commands. The production implementation spawns
// real processes; tests inject fakes so orchestration logic never touches
// the host.
type Runner interface {
	Run(ctx context.Context, command string, args []string, opts RunOptions) (Result, error)
	LookPath(command string) (string, error)
}

// CommandError reports a command that exited non-zero while MustSucceed was
// set. The captured stderr travels with the error so the caller can surface
// a useful diagnostic.
type CommandError struct {
	Command  string
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	argv := e.Command
	if len(e.Args) > 0 {
		argv += " " + strings.Join(e.Args, " ")
	}
	msg := fmt.Sprintf("command failed (exit %d): %s", e.ExitCode, argv)
	if trimmed := strings.TrimSpace(e.Stderr); trimmed != "" {
		msg += ": " + trimmed
	}
	return msg
}

// CmdRunner is the real Runner backed by os/exec.
type CmdRunner struct{}

func (CmdRunner) Run(ctx context.Context, command string, args []string, opts RunOptions) (Result, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, command, args...)
	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}
	if len(opts.Env) > 0 {
		cmd.Env = append(os.Environ(), opts.Env...)
	}

	var stdoutBuf, stderrBuf bytes.Buffer

	stdoutWriter := io.Writer(&stdoutBuf)
	if opts.Stdout != nil {
		stdoutWriter = io.MultiWriter(&stdoutBuf, opts.Stdout)
	}
	stderrWriter := io.Writer(&stderrBuf)
	if opts.Stderr != nil {
		stderrWriter = io.MultiWriter(&stderrBuf, opts.Stderr)
	}

	cmd.Stdout = stdoutWriter
	cmd.Stderr = stderrWriter

	err := cmd.Run()
	result := Result{Stdout: stdoutBuf.Bytes(), Stderr: stderrBuf.Bytes()}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run %s: %w", command, ctx.Err())
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return result, nil
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
		if opts.MustSucceed {
			return result, &CommandError{
				Command:  command,
				Args:     args,
				ExitCode: result.ExitCode,
				Stderr:   stderrBuf.String(),
			}
		}
		return result, nil
	default:
		return result, fmt.Errorf("run %s: %w", command, err)
	}
}

func (CmdRunner) LookPath(command string) (string, error) {
	return exec.LookPath(command)
}

var _ Runner = CmdRunner{}

// CommandExists reports whether the named command resolves on the search
// path of the supplied runner.
func CommandExists(r Runner, command string) bool {
	_, err := r.LookPath(command)
	return err == nil
}
