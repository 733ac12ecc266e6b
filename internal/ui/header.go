package ui

import (
	"strings"
)

// renderHeader renders the status bar: logo, backend badge, phase and API base.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	phase := m.state.Phase().String()
	parts := []string{
		bg.Render("flashdeck", styles.Logo),
		m.connectionBadge(styles, bg),
		styles.StatusStyle(phase).Render(strings.ToUpper(phase)),
	}

	if m.state.Loading {
		parts = append(parts, m.spinner.View()+bg.Space()+bg.Render("Generating...", styles.InfoText))
	}

	compact := m.width < 90
	if !compact && m.apiBase != "" {
		parts = append(parts,
			bg.Render("api", styles.FaintText)+bg.Space()+
				bg.Render(truncateMiddle(m.apiBase, 48), styles.MutedText))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

// connectionBadge shows the last health probe result.
func (m Model) connectionBadge(styles Styles, bg BgStyle) string {
	switch {
	case !m.state.Checked:
		return bg.Render("● CHECKING", styles.MutedText)
	case m.state.Connected:
		return bg.Render("● CONNECTED", styles.SuccessText)
	default:
		return bg.Render("● DISCONNECTED", styles.DangerText)
	}
}

// renderCommandBar renders the key hints for the active view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct {
		key, desc string
		disabled  bool
	}
	var commands []cmd

	switch m.currentView {
	case ViewPicker:
		commands = []cmd{
			{key: "↑/↓", desc: "Move"},
			{key: "enter", desc: "Choose"},
			{key: "←", desc: "Up a folder"},
			{key: "esc", desc: "Cancel"},
		}
	case ViewLogs:
		commands = []cmd{
			{key: "j/k", desc: "Scroll"},
			{key: "G", desc: "Bottom"},
			{key: "esc", desc: "Back"},
		}
	default:
		commands = []cmd{
			{key: "o", desc: "Open"},
			{key: "g", desc: "Generate", disabled: !m.state.CanGenerate()},
			{key: "p/n", desc: "Prev/Next", disabled: len(m.state.Cards) == 0},
			{key: "space", desc: "Answer", disabled: len(m.state.Cards) == 0},
			{key: "r", desc: "Check"},
			{key: "L", desc: "Log"},
			{key: "?", desc: "More"},
		}
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		keyStyle, descStyle := styles.AccentText, styles.MutedText
		if c.disabled {
			keyStyle, descStyle = styles.FaintText, styles.FaintText
		}
		segments = append(segments, bg.Render(c.key, keyStyle)+colon+bg.Render(c.desc, descStyle))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}
