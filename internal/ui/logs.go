package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/flashdeck/internal/logtail"
)

const logLineLimit = 400

// handleLogsKey processes keyboard input for the activity log pane.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Logs):
		m.currentView = ViewMain
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.logViewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

func (m *Model) handleLogLines(msg logLinesMsg) {
	if msg.err != nil {
		m.logErr = msg.err.Error()
		return
	}
	m.logErr = ""
	m.logLines = msg.lines
	m.updateLogViewport()
}

func (m *Model) resizeLogViewport() {
	m.logViewport.Width = max(m.width, 10)
	// header, command bar and pane title
	m.logViewport.Height = max(m.height-4, 3)
	m.updateLogViewport()
}

// updateLogViewport refreshes the content and stays pinned to the bottom
// unless the user scrolled up.
func (m *Model) updateLogViewport() {
	follow := m.logViewport.AtBottom() || m.logViewport.TotalLineCount() == 0
	m.logViewport.SetContent(m.renderLogLines())
	if follow {
		m.logViewport.GotoBottom()
	}
}

func (m Model) renderLogLines() string {
	styles := m.theme.Styles()
	if len(m.logLines) == 0 {
		return styles.FaintText.Render("No activity yet.")
	}

	limit := max(m.logViewport.Width-1, 10)
	var b strings.Builder
	for i, entry := range logtail.ParseAll(m.logLines) {
		if i > 0 {
			b.WriteString("\n")
		}
		style := styles.Text
		switch entry.Level {
		case "ERROR":
			style = styles.DangerText
		case "WARN":
			style = styles.WarningText
		case "DEBUG":
			style = styles.FaintText
		}
		b.WriteString(style.Render(truncate(entry.Summary(), limit)))
	}
	return b.String()
}

// renderLogs renders the activity log pane.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	title := styles.AccentText.Bold(true).Render("Activity log")
	if m.logFile != "" {
		title += "  " + styles.FaintText.Render(truncateMiddle(m.logFile, max(m.width-16, 10)))
	}
	if m.logErr != "" {
		title += "  " + styles.DangerText.Render(m.logErr)
	}
	return title + "\n" + m.logViewport.View()
}
