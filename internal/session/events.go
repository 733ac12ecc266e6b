package session

import (
	"github.com/five82/flashdeck/internal/backend"
	"github.com/five82/flashdeck/internal/document"
	"github.com/five82/flashdeck/internal/notify"
)

// Event is an input to Reduce.
type Event interface {
	eventName() string
}

// HealthChecked reports the outcome of a health probe. Manual probes are
// user-triggered and announce their result.
type HealthChecked struct {
	Err    error
	Manual bool
}

// FileSelected carries an inspected file the user picked.
type FileSelected struct {
	File document.File
}

// FileFailed reports that a picked path could not be inspected.
type FileFailed struct {
	Path string
	Err  error
}

// GenerateRequested is the user pressing the generate trigger.
type GenerateRequested struct{}

// GenerateFinished carries the outcome of the upload.
type GenerateFinished struct {
	Cards []backend.Flashcard
	Err   error
}

// NextCard, PreviousCard and ToggleAnswer are review navigation.
type (
	NextCard     struct{}
	PreviousCard struct{}
	ToggleAnswer struct{}
)

func (HealthChecked) eventName() string     { return "health_checked" }
func (FileSelected) eventName() string      { return "file_selected" }
func (FileFailed) eventName() string        { return "file_failed" }
func (GenerateRequested) eventName() string { return "generate_requested" }
func (GenerateFinished) eventName() string  { return "generate_finished" }
func (NextCard) eventName() string          { return "next_card" }
func (PreviousCard) eventName() string      { return "previous_card" }
func (ToggleAnswer) eventName() string      { return "toggle_answer" }

// Effect is what a transition asks the driver to do.
type Effect struct {
	Notices       []notify.Notice
	StartGenerate bool
	// FileAccepted is set when a FileSelected event replaced the file.
	FileAccepted bool
}

func (e *Effect) notice(kind notify.Kind, title, message string) {
	e.Notices = append(e.Notices, notify.Notice{Kind: kind, Title: title, Message: message})
}
