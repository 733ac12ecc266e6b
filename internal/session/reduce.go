package session

import (
	"fmt"

	"github.com/five82/flashdeck/internal/backend"
	"github.com/five82/flashdeck/internal/document"
	"github.com/five82/flashdeck/internal/notify"
)

// Reduce applies one event to the session state. It performs no I/O: any
// network work or notification is returned in the Effect for the caller.
func Reduce(s State, event Event) (State, Effect) {
	var eff Effect
	switch e := event.(type) {
	case HealthChecked:
		s.Checked = true
		s.Connected = e.Err == nil
		if e.Manual {
			if s.Connected {
				eff.notice(notify.Success, "Backend connected", "The backend server is reachable")
			} else {
				eff.notice(notify.Error, "Backend not connected", "Please ensure the backend server is running")
			}
		}

	case FileSelected:
		s = selectFile(s, e.File, &eff)

	case FileFailed:
		s.Err = fmt.Sprintf("Could not read %s: %v", e.Path, e.Err)
		eff.notice(notify.Error, "Invalid file", s.Err)

	case GenerateRequested:
		s = requestGenerate(s, &eff)

	case GenerateFinished:
		s = finishGenerate(s, e, &eff)

	case NextCard:
		if s.HasNext() {
			s.Index++
			s.AnswerVisible = false
		}

	case PreviousCard:
		if s.HasPrevious() {
			s.Index--
			s.AnswerVisible = false
		}

	case ToggleAnswer:
		if len(s.Cards) > 0 {
			s.AnswerVisible = !s.AnswerVisible
		}
	}
	return s, eff
}

func selectFile(s State, f document.File, eff *Effect) State {
	if !f.IsPDF() {
		s.Err = "Invalid file type. Please upload a PDF file"
		eff.notice(notify.Error, "Invalid file type", "Please upload a PDF file")
		return s
	}
	if f.TooLarge() {
		s.Err = "File too large. Maximum file size is 10MB"
		eff.notice(notify.Error, "File too large", "Maximum file size is 10MB")
		return s
	}
	s.File = &f
	s.Err = ""
	eff.FileAccepted = true
	eff.notice(notify.Success, "File selected", fmt.Sprintf("%s is ready to upload", f.Name))
	return s
}

func requestGenerate(s State, eff *Effect) State {
	switch s.generateBlocker() {
	case nil:
	case ErrBusy:
		// The trigger is disabled while loading.
		return s
	case ErrNoFile:
		s.Err = "No file selected. Please select a PDF file first"
		eff.notice(notify.Error, "No file selected", "Please select a PDF file first")
		return s
	case ErrDisconnected:
		s.Err = "Backend not connected. Please ensure the backend server is running"
		eff.notice(notify.Error, "Backend not connected", "Please ensure the backend server is running")
		return s
	}

	s.Loading = true
	s.Err = ""
	s.Cards = nil
	s.Index = 0
	s.AnswerVisible = false
	eff.StartGenerate = true
	return s
}

func finishGenerate(s State, e GenerateFinished, eff *Effect) State {
	if !s.Loading {
		return s
	}
	s.Loading = false

	err := e.Err
	if err == nil && len(e.Cards) == 0 {
		err = &backend.Error{Kind: backend.KindMalformed, Op: "generate"}
	}
	if err != nil {
		inline, toast := describeFailure(err)
		s.Err = inline
		s.Cards = nil
		s.Index = 0
		s.AnswerVisible = false
		eff.notice(notify.Error, "Error", toast)
		return s
	}

	cards := make([]backend.Flashcard, len(e.Cards))
	copy(cards, e.Cards)
	s.Cards = cards
	s.Index = 0
	s.AnswerVisible = false
	s.Err = ""
	eff.notice(notify.Success, "Success", fmt.Sprintf("Generated %d flashcards", len(cards)))
	return s
}
