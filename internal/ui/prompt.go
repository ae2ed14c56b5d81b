package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrCanceled is returned when the user abandons an interactive prompt.
var ErrCanceled = errors.New("input canceled")

// Prompt asks the user questions. Orchestration code receives this as an
// injected capability so it stays testable without a real terminal.
type Prompt interface {
	// Ask poses a free-form question and returns the trimmed answer.
	Ask(ctx context.Context, question string) (string, error)
	// Confirm poses a yes/no question; def is returned on an empty answer.
	Confirm(ctx context.Context, question string, def bool) (bool, error)
}

// NewPrompt returns the terminal prompt when the session is interactive and
// a plain line-reader otherwise (piped stdin, CI).
func NewPrompt(in io.Reader, out io.Writer, interactive bool) Prompt {
	if interactive {
		return &terminalPrompt{in: in, out: out}
	}
	return &plainPrompt{in: in, out: out}
}

type plainPrompt struct {
	in  io.Reader
	out io.Writer
}

func (p *plainPrompt) Ask(_ context.Context, question string) (string, error) {
	fmt.Fprintf(p.out, "%s ", question)
	scanner := bufio.NewScanner(p.in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("read answer: %w", err)
		}
		return "", ErrCanceled
	}
	return strings.TrimSpace(scanner.Text()), nil
}

func (p *plainPrompt) Confirm(ctx context.Context, question string, def bool) (bool, error) {
	answer, err := p.Ask(ctx, question+" "+confirmSuffix(def))
	if err != nil {
		return false, err
	}
	return parseConfirm(answer, def), nil
}

func confirmSuffix(def bool) string {
	if def {
		return "(Y/n):"
	}
	return "(y/N):"
}

func parseConfirm(answer string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	case "":
		return def
	default:
		return false
	}
}
