package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrFileRejected is reported when an attached file does not match the
	// accept filter of its widget.
	ErrFileRejected = errors.New("tui: file type not accepted")
)
