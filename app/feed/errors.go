package feed

import "errors"

var (
	// ErrNoDate indicates a timestamp that could not be parsed.
	ErrNoDate = errors.New("no parsable date")

	// ErrMissingLink and ErrMissingTitle mark entries that cannot be
	// rendered and are skipped.
	ErrMissingLink  = errors.New("entry has no link")
	ErrMissingTitle = errors.New("entry has no title")
)
