// Package ui is the flashdeck terminal front-end, built on Bubble Tea.
//
// # Views
//
// Three views share a header (logo, backend badge, session phase, API base)
// and a command bar with the keys that apply right now:
//
//   - main: the selected document, any error, and the card panel showing
//     "Card i of n", the question and either the answer or a hint
//   - picker: a bubbles/filepicker limited to .pdf files
//   - logs: the tail of flashdeck's own log file in a viewport
//
// A help overlay built from the key map sits on top of any view.
//
// # Session
//
// Model holds a session.State and feeds every user action and command result
// through session.Reduce. Network calls (health probe, upload) and file
// inspection run as tea.Cmds and report back as messages, so the interface
// stays responsive while an upload is in flight. Notices from the reducer
// become toasts that expire on a tea.Tick and are also forwarded to the
// configured notify.Notifier.
//
// # Themes
//
// Nightfox, Kanagawa and Slate. T cycles them and the choice is saved to
// the prefs file.
package ui
