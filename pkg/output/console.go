package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	isatty "github.com/mattn/go-isatty"
)

var (
	styleOK      = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)  // green
	styleFail    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true) // red
	styleWarnLbl = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true) // yellow
	styleWarnTxt = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))            // yellow
	styleSection = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)  // bright white
	styleNote    = lipgloss.NewStyle().Foreground(lipgloss.Color("45")).Faint(true) // teal dim
	styleDesc    = lipgloss.NewStyle().Faint(true)                                  // dim
	colorEnabled = true
)

// InitConsole configures color output based on noColor flag and TTY detection
func InitConsole(noColor bool) {
	tty := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	colorEnabled = tty && !noColor
}

func r(st lipgloss.Style, s string) string {
	if !colorEnabled {
		return s
	}
	return st.Render(s)
}

// OK returns a green checkmark status line.
func OK(format string, a ...interface{}) string {
	return r(styleOK, "✓") + " " + fmt.Sprintf(format, a...)
}

// Fail returns a red cross status line.
func Fail(format string, a ...interface{}) string {
	return r(styleFail, "✗") + " " + fmt.Sprintf(format, a...)
}

// Warn returns a yellow warning status line.
func Warn(format string, a ...interface{}) string {
	return r(styleWarnLbl, "⚠") + " " + r(styleWarnTxt, fmt.Sprintf(format, a...))
}

// Header returns a bright banner line for a run phase.
func Header(s string) string {
	return r(styleSection, s)
}

// Notef returns a faint informational line (used for reminders, file paths, etc.)
func Notef(format string, a ...interface{}) string {
	return r(styleNote, fmt.Sprintf(format, a...))
}

// ListItems returns a numbered list of follow-up items, faint.
func ListItems(items []string) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	for i, it := range items {
		b.WriteString(r(styleDesc, fmt.Sprintf("%d. %s", i+1, it)))
		b.WriteByte('\n')
	}
	return b.String()
}

// ShortError attempts to condense verbose awx client stderr into a short reason.
func ShortError(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	var candidate string
	for _, ln := range lines {
		t := strings.TrimSpace(ln)
		if t == "" {
			continue
		}
		// Skip traceback noise from the awx client
		if strings.HasPrefix(t, "Traceback") || strings.HasPrefix(t, "File \"") {
			continue
		}
		candidate = t
	}
	if strings.Contains(strings.ToLower(candidate), "already exists") {
		return "resource already exists"
	}
	if candidate == "" && len(lines) > 0 {
		candidate = strings.TrimSpace(lines[0])
	}
	return candidate
}
