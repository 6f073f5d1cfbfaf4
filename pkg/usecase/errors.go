package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Input errors
	ErrInvalidInput = errors.New("invalid input provided")

	// Session errors
	ErrSessionLocked = errors.New("chat locked, max turns reached")

	// Triage errors
	ErrNoTranscript = errors.New("no chat history")

	// Not found errors
	ErrReportNotFound = errors.New("report not found")
	ErrNoteNotFound   = errors.New("note not found")
)
