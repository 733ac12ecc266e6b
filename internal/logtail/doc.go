// Package logtail reads the tail of flashdeck's own log file for the
// activity pane.
//
// Read seeks backward from the end of the file in fixed-size chunks until it
// has seen enough newlines, so the cost depends on the number of lines asked
// for rather than on the size of the file:
//
//	lines, err := logtail.Read(cfg.LogFile, 200)
//
// Parse understands the key=value records written by log/slog's text
// handler and pulls out time, level and message so the UI can color by level.
// Anything else passes through as a plain message.
package logtail
