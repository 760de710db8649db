package replace

import "errors"

var (
	// ErrEmptySearch indicates a rule has no search text.
	ErrEmptySearch = errors.New("search text is empty")

	// ErrInvalidPattern indicates a regex rule's search text does not compile.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrOffsetOutOfRange indicates a dynamic token offset cannot be applied.
	ErrOffsetOutOfRange = errors.New("offset out of range")
)
