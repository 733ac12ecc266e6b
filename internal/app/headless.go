package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/five82/flashdeck/internal/backend"
	"github.com/five82/flashdeck/internal/notify"
	"github.com/five82/flashdeck/internal/session"
)

// ErrUnhealthy is returned by Health when the backend does not answer 200.
var ErrUnhealthy = errors.New("backend not reachable")

// Health probes the backend once and prints a colored status line.
func Health(ctx context.Context, env *Env, out io.Writer) error {
	base := env.Config.APIBase
	if err := env.Client.Health(ctx); err != nil {
		env.Logger.Warn("health check failed", "api_base", base, "error", err)
		_, _ = fmt.Fprintf(out, "%s backend not reachable at %s (%v)\n", color.New(color.FgRed, color.Bold).Sprint("●"), base, err)
		return ErrUnhealthy
	}
	_, _ = fmt.Fprintf(out, "%s backend reachable at %s\n", color.New(color.FgGreen, color.Bold).Sprint("●"), base)
	return nil
}

// GenerateOptions control the headless generate command.
type GenerateOptions struct {
	Path string
	JSON bool      // print the cards as JSON instead of text
	Out  io.Writer // cards
	Err  io.Writer // notices
}

// Generate runs one select-and-generate cycle without the TUI and prints the
// resulting cards.
func Generate(ctx context.Context, env *Env, opts GenerateOptions) error {
	notifier := notify.Tee{notify.Log{Logger: env.Logger}}
	if opts.Err != nil {
		notifier = append(notifier, notify.NewConsole(opts.Err))
	}
	ctrl := session.NewController(env.Client, notifier, session.WithLogger(env.Logger))

	ctrl.CheckConnectivity(ctx)
	if !ctrl.SelectFile(opts.Path) {
		return errors.New(ctrl.State().Err)
	}
	if err := ctrl.Generate(ctx); err != nil {
		if msg := ctrl.State().Err; msg != "" {
			return errors.New(msg)
		}
		return err
	}

	cards := ctrl.State().Cards
	if opts.JSON {
		enc := json.NewEncoder(opts.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string][]backend.Flashcard{"flashcards": cards})
	}
	return PrintCards(opts.Out, cards)
}

// PrintCards writes cards as numbered question/answer blocks.
func PrintCards(w io.Writer, cards []backend.Flashcard) error {
	heading := color.New(color.FgCyan, color.Bold)
	question := color.New(color.FgYellow)
	answer := color.New(color.FgGreen)

	var b strings.Builder
	for i, card := range cards {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(heading.Sprintf("Card %d of %d", i+1, len(cards)))
		b.WriteString("\n")
		b.WriteString(question.Sprint("Q: "))
		b.WriteString(card.Question)
		b.WriteString("\n")
		b.WriteString(answer.Sprint("A: "))
		b.WriteString(card.Answer)
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
