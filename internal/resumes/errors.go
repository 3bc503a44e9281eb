package resumes

import "errors"

var (
	// ErrNotFound covers both a missing and an expired record; callers
	// cannot distinguish the two.
	ErrNotFound = errors.New("resume not found")
	// ErrInvalidInput indicates a missing file or unsupported file type.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoText indicates extraction produced no usable text.
	ErrNoText = errors.New("no text could be extracted")
)
