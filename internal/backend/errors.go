package backend

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Kind classifies a failed backend call.
type Kind int

const (
	KindUnknown Kind = iota
	KindTimeout
	KindNetwork
	KindNoResponse
	KindServer
	KindMalformed
	KindTooLarge
	KindCanceled
)

func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindNetwork:
		return "network"
	case KindNoResponse:
		return "no_response"
	case KindServer:
		return "server"
	case KindMalformed:
		return "malformed"
	case KindTooLarge:
		return "too_large"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Error is returned by every Client method that fails.
type Error struct {
	Kind      Kind
	Op        string // "health" or "generate"
	Status    int    // HTTP status when a response arrived
	Detail    string // server-provided detail text, if any
	RequestID string
	Err       error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindServer:
		if e.Detail != "" {
			return e.Detail
		}
		return fmt.Sprintf("Request failed with status code %d", e.Status)
	case KindMalformed:
		if e.Err != nil {
			return fmt.Sprintf("Invalid response format: %v", e.Err)
		}
		return "Invalid response format"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, or KindUnknown when err is not an *Error.
func KindOf(err error) Kind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindUnknown
}

var errTooLarge = errors.New("document exceeds upload limit")

// classifyTransport maps an error from the HTTP round trip. ctx is the
// request-scoped context whose deadline enforces the client timeout.
func classifyTransport(ctx context.Context, err error) Kind {
	switch {
	case errors.Is(err, errTooLarge):
		return KindTooLarge
	case errors.Is(ctx.Err(), context.DeadlineExceeded), errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, context.Canceled):
		return KindCanceled
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return KindNetwork
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return KindNetwork
	}
	// The connection was made but nothing usable came back.
	return KindNoResponse
}
