package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/flashdeck/internal/notify"
)

const maxToasts = 3

// toast is a notice on screen until its timer fires.
type toast struct {
	id     int
	notice notify.Notice
}

// pushToast shows n and schedules its removal.
func (m *Model) pushToast(n notify.Notice) tea.Cmd {
	m.nextToastID++
	id := m.nextToastID
	m.toasts = append(m.toasts, toast{id: id, notice: n})
	if len(m.toasts) > maxToasts {
		m.toasts = m.toasts[len(m.toasts)-maxToasts:]
	}
	return tea.Tick(n.Kind.Duration(), func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func (m *Model) dropToast(id int) {
	for i, t := range m.toasts {
		if t.id == id {
			m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
			return
		}
	}
}

// renderToasts stacks active toasts against the right edge, newest last.
func (m Model) renderToasts() string {
	if len(m.toasts) == 0 {
		return ""
	}
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	bg := NewBgStyle(m.theme.SurfaceAlt)
	width := min(max(m.width/3, 30), max(m.width, 1))

	rows := make([]string, 0, len(m.toasts))
	for _, t := range m.toasts {
		titleStyle := styles.InfoText.Bold(true)
		border := m.theme.Info
		switch t.notice.Kind {
		case notify.Success:
			titleStyle = styles.SuccessText
			border = m.theme.Success
		case notify.Error:
			titleStyle = styles.DangerText
			border = m.theme.Danger
		}

		body := bg.Render(t.notice.Title, titleStyle)
		if t.notice.Message != "" {
			body += "\n" + bg.Render(wrap(t.notice.Message, width-4), styles.Text)
		}
		box := lipgloss.NewStyle().
			Background(lipgloss.Color(m.theme.SurfaceAlt)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(border)).
			Padding(0, 1).
			Width(width).
			Render(body)
		rows = append(rows, lipgloss.PlaceHorizontal(m.width, lipgloss.Right, box))
	}
	return strings.Join(rows, "\n")
}
