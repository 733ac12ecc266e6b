// Package notify carries transient user-facing notices (toasts) from the
// session core to whatever front-end is showing them.
package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Kind classifies a notice.
type Kind int

const (
	Info Kind = iota
	Success
	Error
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Duration is how long a notice of this kind stays on screen.
func (k Kind) Duration() time.Duration {
	switch k {
	case Error:
		return 5 * time.Second
	default:
		return 3 * time.Second
	}
}

// Notice is a single notification.
type Notice struct {
	Kind    Kind
	Title   string
	Message string
}

// Notifier receives notices.
type Notifier interface {
	Notify(kind Kind, title, message string)
}

// Func adapts a plain function to Notifier.
type Func func(kind Kind, title, message string)

// Notify implements Notifier.
func (f Func) Notify(kind Kind, title, message string) {
	f(kind, title, message)
}

// Discard drops every notice.
var Discard Notifier = Func(func(Kind, string, string) {})

// Dispatch sends each notice to n in order.
func Dispatch(n Notifier, notices []Notice) {
	if n == nil {
		return
	}
	for _, notice := range notices {
		n.Notify(notice.Kind, notice.Title, notice.Message)
	}
}

// Recorder keeps every notice it receives. Safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

// Notify implements Notifier.
func (r *Recorder) Notify(kind Kind, title, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, Notice{Kind: kind, Title: title, Message: message})
}

// Notices returns a copy of the recorded notices.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notice, len(r.notices))
	copy(out, r.notices)
	return out
}

// Last returns the most recent notice, if any.
func (r *Recorder) Last() (Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}, false
	}
	return r.notices[len(r.notices)-1], true
}

// Console prints notices as colored lines, for the headless commands.
type Console struct {
	w io.Writer
}

// NewConsole builds a Console writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Notify implements Notifier.
func (c *Console) Notify(kind Kind, title, message string) {
	var badge *color.Color
	switch kind {
	case Success:
		badge = color.New(color.FgGreen, color.Bold)
	case Error:
		badge = color.New(color.FgRed, color.Bold)
	default:
		badge = color.New(color.FgCyan, color.Bold)
	}
	_, _ = fmt.Fprintf(c.w, "%s %s\n", badge.Sprintf("%s:", title), message)
}

// Log writes notices to a structured logger.
type Log struct {
	Logger *slog.Logger
}

// Notify implements Notifier.
func (l Log) Notify(kind Kind, title, message string) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	level := slog.LevelInfo
	if kind == Error {
		level = slog.LevelWarn
	}
	logger.Log(context.Background(), level, "notice", "kind", kind.String(), "title", title, "message", message)
}

// Tee fans a notice out to several notifiers.
type Tee []Notifier

// Notify implements Notifier.
func (t Tee) Notify(kind Kind, title, message string) {
	for _, n := range t {
		if n != nil {
			n.Notify(kind, title, message)
		}
	}
}
