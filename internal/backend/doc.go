// Package backend is the HTTP client for the flashcard generation service.
//
// # Contract
//
// The service exposes two endpoints under a configurable base URL
// (default http://localhost:8000/api/v1):
//
//	GET  /flashcards/health    200 means reachable
//	POST /flashcards/generate  multipart/form-data, field "file"
//	                           200 {"flashcards":[{"question":"...","answer":"..."}]}
//
// Failures carry {"detail": "..."} with a non-2xx status.
//
// # Error Classification
//
// Every failed call returns *Error whose Kind tells callers what went wrong
// without inspecting strings:
//
//   - KindTimeout: the per-call deadline expired (10s health, 2m generate)
//   - KindNetwork: the backend could not be reached (dial or DNS failure)
//   - KindNoResponse: the connection was made but no response arrived
//   - KindServer: a non-2xx status; Detail holds the server text if any
//   - KindMalformed: 200 without a non-empty flashcards list
//   - KindTooLarge: the document exceeds the 10MB upload ceiling
//   - KindCanceled: the caller's context was canceled
//
// There are no retries. Each request carries an X-Request-ID that is also
// logged, so a failed upload can be matched with backend logs.
package backend
