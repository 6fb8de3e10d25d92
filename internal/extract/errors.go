package extract

import (
	"errors"
	"fmt"
)

// Extraction failures. NoTitleFound and NoBodyFound are returned only when
// every fallback in the respective chain fails; partial fallback success
// degrades confidence instead.
var (
	ErrNoTitleFound    = errors.New("no title found")
	ErrNoBodyFound     = errors.New("no body found")
	ErrMalformedMarkup = errors.New("malformed markup")
)

// Error wraps an extraction failure with the article URL.
type Error struct {
	URL    string
	Reason error
}

func (e *Error) Error() string {
	return fmt.Sprintf("extract %s: %v", e.URL, e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Reason
}
