package session

import (
	"errors"
	"fmt"

	"github.com/five82/flashdeck/internal/backend"
)

// Generate precondition failures.
var (
	ErrNoFile       = errors.New("no file selected")
	ErrDisconnected = errors.New("backend not connected")
	ErrBusy         = errors.New("generation already in progress")
)

const (
	msgTimeout     = "Request timed out. Please try again later."
	msgNetwork     = "Network error. Please check your internet connection and ensure the backend server is running."
	msgNoResponse  = "No response from server. Please ensure the backend server is running."
	msgUnexpected  = "An unexpected error occurred. Please try again later."
	msgFailedToGen = "Failed to generate flashcards"
)

// describeFailure returns the inline error text and the toast message for a
// failed generate call.
func describeFailure(err error) (inline, toast string) {
	if err == nil {
		return msgUnexpected, msgFailedToGen
	}
	toast = err.Error()

	var be *backend.Error
	if !errors.As(err, &be) {
		return msgUnexpected, toast
	}
	switch be.Kind {
	case backend.KindTimeout:
		return msgTimeout, toast
	case backend.KindNetwork:
		return msgNetwork, toast
	case backend.KindNoResponse:
		return msgNoResponse, toast
	case backend.KindServer:
		return fmt.Sprintf("Server error: %s", be.Error()), toast
	case backend.KindMalformed:
		return msgUnexpected, toast
	case backend.KindTooLarge:
		return "Error: Maximum file size is 10MB", toast
	default:
		return fmt.Sprintf("Error: %s", be.Error()), toast
	}
}
