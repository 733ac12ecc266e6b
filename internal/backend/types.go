package backend

import (
	"io"
	"strings"
)

// Flashcard is a question/answer pair produced by the backend. Cards carry no
// identity beyond their position in the returned list.
type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// GenerateResponse mirrors the body of a successful /flashcards/generate call.
// Flashcards is nil when the field is missing.
type GenerateResponse struct {
	Flashcards *[]Flashcard `json:"flashcards"`
}

// ErrorResponse is the error body the backend sends with non-2xx statuses.
// Detail is usually a string but validation failures send a list.
type ErrorResponse struct {
	Detail any `json:"detail"`
}

// Message returns the detail text when it is a non-empty string.
func (e ErrorResponse) Message() string {
	s, ok := e.Detail.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// Upload is a document to send for generation.
type Upload struct {
	Name      string
	MediaType string
	Size      int64
	Body      io.Reader
}
