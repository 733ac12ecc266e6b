package session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/five82/flashdeck/internal/backend"
	"github.com/five82/flashdeck/internal/document"
	"github.com/five82/flashdeck/internal/notify"
)

// Inspector turns a path into a document.File.
type Inspector func(path string) (document.File, error)

// Controller drives Reduce synchronously: each method applies its events,
// forwards notices to the notifier and performs any requested network call
// before returning. It is not safe for concurrent use; like the UI it stands
// in for, it handles one event at a time.
type Controller struct {
	api      backend.API
	notifier notify.Notifier
	inspect  Inspector
	log      *slog.Logger
	state    State
}

// Option customizes a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for transition logging.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithInspector replaces document.Inspect.
func WithInspector(fn Inspector) Option {
	return func(c *Controller) {
		if fn != nil {
			c.inspect = fn
		}
	}
}

// NewController builds a Controller with a fresh session state.
func NewController(api backend.API, notifier notify.Notifier, opts ...Option) *Controller {
	if notifier == nil {
		notifier = notify.Discard
	}
	c := &Controller{
		api:      api,
		notifier: notifier,
		inspect:  document.Inspect,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a copy of the current session state.
func (c *Controller) State() State {
	return c.state.Clone()
}

// Dispatch applies one event and delivers its notices.
func (c *Controller) Dispatch(event Event) Effect {
	before := c.state.Phase()
	next, eff := Reduce(c.state, event)
	c.state = next
	c.log.Debug("session event",
		"event", event.eventName(),
		"from", before.String(),
		"to", next.Phase().String(),
		"cards", len(next.Cards),
		"index", next.Index)
	notify.Dispatch(c.notifier, eff.Notices)
	return eff
}

// CheckConnectivity probes the backend once and records the result.
func (c *Controller) CheckConnectivity(ctx context.Context) bool {
	err := c.api.Health(ctx)
	if err != nil {
		c.log.Warn("backend health check failed", "error", err)
	}
	c.Dispatch(HealthChecked{Err: err})
	return c.state.Connected
}

// SelectFile inspects path and offers it to the session. It reports whether
// the file was accepted.
func (c *Controller) SelectFile(path string) bool {
	f, err := c.inspect(path)
	if err != nil {
		c.Dispatch(FileFailed{Path: path, Err: err})
		return false
	}
	return c.Dispatch(FileSelected{File: f}).FileAccepted
}

// Generate uploads the selected file and replaces the cards with the
// result. Loading is cleared on every path out of this method.
func (c *Controller) Generate(ctx context.Context) error {
	eff := c.Dispatch(GenerateRequested{})
	if !eff.StartGenerate {
		if err := c.state.generateBlocker(); err != nil {
			return err
		}
		return errors.New(c.state.Err)
	}

	file := *c.state.File
	finished := false
	defer func() {
		if !finished {
			c.Dispatch(GenerateFinished{Err: errors.New("generate aborted")})
		}
	}()

	cards, err := c.upload(ctx, file)
	finished = true
	c.Dispatch(GenerateFinished{Cards: cards, Err: err})
	if err != nil {
		return err
	}
	if len(c.state.Cards) == 0 {
		return errors.New(c.state.Err)
	}
	return nil
}

func (c *Controller) upload(ctx context.Context, f document.File) ([]backend.Flashcard, error) {
	body, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return c.api.Generate(ctx, backend.Upload{
		Name:      f.Name,
		MediaType: f.MediaType,
		Size:      f.Size,
		Body:      body,
	})
}

// Next advances to the following card when there is one.
func (c *Controller) Next() {
	c.Dispatch(NextCard{})
}

// Previous returns to the preceding card when there is one.
func (c *Controller) Previous() {
	c.Dispatch(PreviousCard{})
}

// ToggleAnswer shows or hides the current answer.
func (c *Controller) ToggleAnswer() {
	c.Dispatch(ToggleAnswer{})
}
