// Package session holds the upload-and-review state machine.
//
// The flow is
//
//	idle -> file-selected -> uploading -> viewing-cards | error
//
// with next, previous and toggle-answer available while viewing cards.
//
// Reduce is a pure function from (State, Event) to (State, Effect). Effects
// name the notices to show and whether an upload should start; drivers do
// the I/O. Two drivers exist: Controller, which runs everything synchronously
// for the headless command, and the bubbletea model in package ui, which runs
// network calls as commands and feeds their results back as events.
package session
