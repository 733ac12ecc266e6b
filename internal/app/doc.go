// Package app is the composition root for flashdeck.
//
// Setup turns command-line options into an Env: it loads and validates the
// TOML config, applies the --api override, opens the log file as a slog text
// handler and builds the backend client. The commands then share that Env:
//
//   - Run starts the Bubble Tea interface
//   - Health probes the backend once and prints the result
//   - Generate drives a session.Controller without the interface and prints
//     the cards as text or JSON
//   - ServeMock serves the mockserver double over HTTP for demos
//
// The log file is the only place logs go. The terminal belongs to the
// interface or to the command output.
package app
