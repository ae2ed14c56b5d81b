package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Inline(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Inline(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Inline(true)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Inline(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true).Inline(true)
)

// Reporter renders status messages for the installer. A single value is
// threaded through every component; styling is decided once at construction
// instead of through process-wide toggles.
type Reporter struct {
	out    io.Writer
	styled bool
}

// NewReporter builds a reporter writing to out. When styled is false every
// message degrades to plain text with no escape sequences.
func NewReporter(out io.Writer, styled bool) *Reporter {
	return &Reporter{out: out, styled: styled}
}

func (r *Reporter) render(style lipgloss.Style, text string) string {
	if !r.styled {
		return text
	}
	return style.Render(text)
}

// Info prints a status message with a green [INFO] tag.
func (r *Reporter) Info(format string, args ...any) {
	fmt.Fprintf(r.out, "%s %s\n", r.render(infoStyle, "[INFO]"), fmt.Sprintf(format, args...))
}

// Warn prints a warning with a yellow [WARN] tag.
func (r *Reporter) Warn(format string, args ...any) {
	fmt.Fprintf(r.out, "%s %s\n", r.render(warnStyle, "[WARN]"), fmt.Sprintf(format, args...))
}

// Error prints an error with a red [ERROR] tag.
func (r *Reporter) Error(format string, args ...any) {
	fmt.Fprintf(r.out, "%s %s\n", r.render(errorStyle, "[ERROR]"), fmt.Sprintf(format, args...))
}

// Plain prints an untagged line, used for enumerated next-step text.
func (r *Reporter) Plain(format string, args ...any) {
	fmt.Fprintf(r.out, "%s\n", fmt.Sprintf(format, args...))
}

// Success prints a highlighted completion message.
func (r *Reporter) Success(format string, args ...any) {
	fmt.Fprintf(r.out, "\n%s\n\n", r.render(successStyle, fmt.Sprintf(format, args...)))
}

// Header prints the boxed installer banner.
func (r *Reporter) Header(title string) {
	rule := strings.Repeat("=", 46)
	fmt.Fprintf(r.out, "\n%s\n%s\n%s\n\n",
		r.render(headerStyle, rule),
		r.render(headerStyle, "  "+title),
		r.render(headerStyle, rule),
	)
}
