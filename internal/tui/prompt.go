package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type Decision int

const (
	Continue Decision = iota
	Cancel
)

func (d Decision) String() string {
	if d == Cancel {
		return "cancel"
	}
	return "continue"
}

// PromptModel asks whether to cancel the remaining queue. It resolves on
// the first keypress or when the timeout runs out, whichever comes first.
type PromptModel struct {
	remaining int
	timeout   time.Duration
	interval  time.Duration
	elapsed   time.Duration
	decision  Decision
	done      bool
}

type tickMsg time.Time

func NewPrompt(remaining int, timeout, interval time.Duration) PromptModel {
	return PromptModel{remaining: remaining, timeout: timeout, interval: interval}
}

func (m PromptModel) Decision() Decision {
	return m.decision
}

func (m PromptModel) Done() bool {
	return m.done
}

func (m PromptModel) Init() tea.Cmd {
	if m.timeout <= 0 {
		return tea.Quit
	}
	return tick(m.interval)
}

func (m PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.done {
		return m, nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.done = true
		if isCancelKey(msg) {
			m.decision = Cancel
		}
		return m, tea.Quit
	case tickMsg:
		m.elapsed += m.interval
		if m.elapsed >= m.timeout {
			m.done = true
			return m, tea.Quit
		}
		return m, tick(m.interval)
	default:
		return m, nil
	}
}

func (m PromptModel) View() string {
	if m.done {
		return ""
	}

	left := m.timeout - m.elapsed
	if left < 0 {
		left = 0
	}
	seconds := int((left + time.Second - 1) / time.Second)

	lines := []string{
		promptTitleStyle.Render(fmt.Sprintf("%d file(s) left in the queue", m.remaining)),
		keyStyle.Render("c") + promptTextStyle.Render("  cancel all remaining work"),
		keyStyle.Render("any key") + promptTextStyle.Render("  continue now"),
		promptDimStyle.Render(fmt.Sprintf("continuing in %ds", seconds)),
	}
	return strings.Join(lines, "\n") + "\n"
}

// ctrl+c cancels the queue as well; the terminal is in raw mode while the
// prompt is up, so it arrives here as a key instead of a signal.
func isCancelKey(msg tea.KeyMsg) bool {
	if msg.Type == tea.KeyCtrlC {
		return true
	}
	return msg.Type == tea.KeyRunes && len(msg.Runes) == 1 &&
		(msg.Runes[0] == 'c' || msg.Runes[0] == 'C')
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

var (
	promptTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	promptTextStyle  = lipgloss.NewStyle().Foreground(ColorInk)
	promptDimStyle   = lipgloss.NewStyle().Foreground(ColorDim)
	keyStyle         = lipgloss.NewStyle().Bold(true).Foreground(ColorWarn)
)
