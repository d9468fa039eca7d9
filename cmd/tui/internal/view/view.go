package view

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/notify"
)

// View is the interface that all TUI screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel is embedded by all views.
type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// StatusMsg updates the status line at the bottom of the screen.
type StatusMsg struct {
	Text     string
	Severity notify.Severity
}

// Notifier delivers notifications to the running program as StatusMsg.
// Notify must only be called from commands, never from Update.
type Notifier struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func (n *Notifier) Attach(p *tea.Program) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.send = p.Send
}

func (n *Notifier) Notify(_ context.Context, message string, severity notify.Severity) {
	n.mu.Lock()
	send := n.send
	n.mu.Unlock()

	if send != nil {
		send(StatusMsg{Text: message, Severity: severity})
	}
}

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

// RenderStatus styles a status line by severity.
func RenderStatus(s StatusMsg) string {
	if s.Text == "" {
		return ""
	}

	if s.Severity == notify.SeverityError {
		return errorStyle.Render("✗ " + s.Text)
	}

	return successStyle.Render("✓ " + s.Text)
}

func activeStyle(s string) string {
	return accentStyle.Render(s)
}
