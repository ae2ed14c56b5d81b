package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// terminalPrompt renders an inline text input when the session is attached
// to an interactive terminal.
type terminalPrompt struct {
	in  io.Reader
	out io.Writer
}

func (p *terminalPrompt) Ask(ctx context.Context, question string) (string, error) {
	program := tea.NewProgram(
		newInputModel(question),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
		tea.WithContext(ctx),
	)

	final, err := program.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
			return "", ErrCanceled
		}
		return "", fmt.Errorf("prompt: %w", err)
	}

	model, ok := final.(inputModel)
	if !ok || model.canceled {
		return "", ErrCanceled
	}
	answer := strings.TrimSpace(model.input.Value())
	fmt.Fprintf(p.out, "%s %s\n", question, answer)
	return answer, nil
}

func (p *terminalPrompt) Confirm(ctx context.Context, question string, def bool) (bool, error) {
	answer, err := p.Ask(ctx, question+" "+confirmSuffix(def))
	if err != nil {
		return false, err
	}
	return parseConfirm(answer, def), nil
}

type inputModel struct {
	question  string
	input     textinput.Model
	submitted bool
	canceled  bool
}

func newInputModel(question string) inputModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Focus()
	return inputModel{question: question, input: ti}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.submitted = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.canceled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.submitted || m.canceled {
		return ""
	}
	return m.question + " " + m.input.View()
}
