package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/flashdeck/internal/backend"
	"github.com/five82/flashdeck/internal/document"
	"github.com/five82/flashdeck/internal/logtail"
	"github.com/five82/flashdeck/internal/session"
)

// Messages

type tickMsg time.Time

type healthMsg struct {
	err    error
	manual bool
}

type inspectedMsg struct {
	path string
	file document.File
	err  error
}

type generatedMsg struct {
	cards []backend.Flashcard
	err   error
}

type toastExpiredMsg struct {
	id int
}

type logLinesMsg struct {
	lines []string
	err   error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func healthCmd(ctx context.Context, api backend.API, manual bool) tea.Cmd {
	return func() tea.Msg {
		if api == nil {
			return healthMsg{err: errors.New("no backend configured"), manual: manual}
		}
		return healthMsg{err: api.Health(ctx), manual: manual}
	}
}

func inspectCmd(inspect session.Inspector, path string) tea.Cmd {
	return func() tea.Msg {
		f, err := inspect(path)
		return inspectedMsg{path: path, file: f, err: err}
	}
}

// generateCmd uploads f. It always yields a generatedMsg so the loading
// state is cleared even when the upload panics.
func generateCmd(ctx context.Context, api backend.API, f document.File) tea.Cmd {
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = generatedMsg{err: fmt.Errorf("generate: %v", r)}
			}
		}()

		body, err := f.Open()
		if err != nil {
			return generatedMsg{err: err}
		}
		defer body.Close()

		cards, err := api.Generate(ctx, backend.Upload{
			Name:      f.Name,
			MediaType: f.MediaType,
			Size:      f.Size,
			Body:      body,
		})
		return generatedMsg{cards: cards, err: err}
	}
}

func readLogCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return logLinesMsg{}
		}
		lines, err := logtail.Read(path, logLineLimit)
		return logLinesMsg{lines: lines, err: err}
	}
}
