package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderSession renders the document panel, any error and the card panel.
func (m Model) renderSession() string {
	styles := m.theme.Styles()
	panelWidth := max(m.width-2, 20)
	textWidth := max(panelWidth-4, 10)

	blocks := []string{m.renderDocument(styles, panelWidth, textWidth)}

	if m.state.Checked && !m.state.Connected {
		banner := fmt.Sprintf("Backend not connected at %s. Start the server and press r to check again.", m.apiBase)
		blocks = append(blocks, styles.DangerText.Render(wrap(banner, panelWidth)))
	}
	if m.state.Err != "" {
		blocks = append(blocks, styles.DangerText.Render(wrap(m.state.Err, panelWidth)))
	}

	blocks = append(blocks, m.renderCard(styles, panelWidth, textWidth))
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func (m Model) renderDocument(styles Styles, panelWidth, textWidth int) string {
	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Document"))
	b.WriteString("\n")

	f := m.state.File
	if f == nil {
		b.WriteString(styles.MutedText.Render("No PDF selected. Press o to choose one."))
		return styles.Panel.Width(panelWidth).Render(b.String())
	}

	b.WriteString(styles.Text.Bold(true).Render(truncateMiddle(f.Name, textWidth)))
	b.WriteString("\n")
	details := []string{humanBytes(f.Size)}
	if f.Pages > 0 {
		details = append(details, pluralize(f.Pages, "page"))
	}
	b.WriteString(styles.MutedText.Render(strings.Join(details, " · ")))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(truncateMiddle(f.Path, textWidth)))
	return styles.Panel.Width(panelWidth).Render(b.String())
}

func (m Model) renderCard(styles Styles, panelWidth, textWidth int) string {
	var b strings.Builder

	switch {
	case m.state.Loading:
		name := ""
		if m.state.File != nil {
			name = m.state.File.Name
		}
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(styles.InfoText.Render("Generating flashcards from " + name + "..."))
		return styles.Panel.Width(panelWidth).Render(b.String())

	case len(m.state.Cards) == 0:
		hint := "Press g to generate flashcards."
		if !m.state.CanGenerate() {
			hint = "Select a PDF and make sure the backend is connected to generate flashcards."
		}
		b.WriteString(styles.MutedText.Render(wrap(hint, textWidth)))
		return styles.Panel.Width(panelWidth).Render(b.String())
	}

	card, _ := m.state.Current()
	b.WriteString(styles.AccentText.Bold(true).Render(m.state.Position()))
	b.WriteString("\n\n")
	b.WriteString(styles.WarningText.Render("Q "))
	b.WriteString(styles.Text.Bold(true).Render(wrap(card.Question, textWidth-2)))
	b.WriteString("\n\n")
	if m.state.AnswerVisible {
		b.WriteString(styles.SuccessText.Render("A "))
		b.WriteString(styles.Text.Render(wrap(card.Answer, textWidth-2)))
	} else {
		b.WriteString(styles.FaintText.Render("Press space to show the answer"))
	}
	b.WriteString("\n\n")

	prev := styles.FaintText.Render("← previous")
	if m.state.HasPrevious() {
		prev = styles.AccentText.Render("← previous")
	}
	next := styles.FaintText.Render("next →")
	if m.state.HasNext() {
		next = styles.AccentText.Render("next →")
	}
	b.WriteString(prev + "   " + next)

	return styles.FocusPanel.Width(panelWidth).Render(b.String())
}

// renderPicker renders the file picker with a title.
func (m Model) renderPicker() string {
	styles := m.theme.Styles()
	title := styles.AccentText.Bold(true).Render("Choose a PDF")
	dir := styles.FaintText.Render(truncateMiddle(m.picker.CurrentDirectory, max(m.width-4, 10)))
	return lipgloss.JoinVertical(lipgloss.Left, title, dir, "", m.picker.View())
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
