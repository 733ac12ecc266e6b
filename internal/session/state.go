package session

import (
	"fmt"

	"github.com/five82/flashdeck/internal/backend"
	"github.com/five82/flashdeck/internal/document"
)

// Phase names where the session is in the upload-and-review flow.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFileSelected
	PhaseUploading
	PhaseViewing
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseFileSelected:
		return "file-selected"
	case PhaseUploading:
		return "uploading"
	case PhaseViewing:
		return "viewing-cards"
	case PhaseFailed:
		return "error"
	default:
		return "idle"
	}
}

// State is everything one review session holds. It lives in memory only.
//
// Index is always a valid position in Cards (0 when Cards is empty) and
// AnswerVisible is false right after any change of Index.
type State struct {
	File          *document.File
	Checked       bool // a health probe has completed
	Connected     bool
	Loading       bool
	Err           string
	Cards         []backend.Flashcard
	Index         int
	AnswerVisible bool
}

// Phase derives the flow position from the fields.
func (s State) Phase() Phase {
	switch {
	case s.Loading:
		return PhaseUploading
	case len(s.Cards) > 0:
		return PhaseViewing
	case s.Err != "":
		return PhaseFailed
	case s.File != nil:
		return PhaseFileSelected
	default:
		return PhaseIdle
	}
}

// Current returns the card at Index.
func (s State) Current() (backend.Flashcard, bool) {
	if s.Index < 0 || s.Index >= len(s.Cards) {
		return backend.Flashcard{}, false
	}
	return s.Cards[s.Index], true
}

// Position renders "Card i of n", or "" when there are no cards.
func (s State) Position() string {
	if len(s.Cards) == 0 {
		return ""
	}
	return fmt.Sprintf("Card %d of %d", s.Index+1, len(s.Cards))
}

// HasPrevious reports whether PreviousCard would move.
func (s State) HasPrevious() bool {
	return len(s.Cards) > 0 && s.Index > 0
}

// HasNext reports whether NextCard would move.
func (s State) HasNext() bool {
	return s.Index < len(s.Cards)-1
}

// CanGenerate reports whether the generate trigger is enabled.
func (s State) CanGenerate() bool {
	return s.generateBlocker() == nil
}

func (s State) generateBlocker() error {
	switch {
	case s.Loading:
		return ErrBusy
	case s.File == nil:
		return ErrNoFile
	case !s.Connected:
		return ErrDisconnected
	}
	return nil
}

// Clone returns a copy that shares no slices or pointers with s.
func (s State) Clone() State {
	if s.File != nil {
		f := *s.File
		s.File = &f
	}
	if s.Cards != nil {
		cards := make([]backend.Flashcard, len(s.Cards))
		copy(cards, s.Cards)
		s.Cards = cards
	}
	return s
}
