package fetch

import (
	"errors"
	"fmt"
)

// Kind partitions fetch failures by how callers must react.
type Kind string

const (
	// KindTransient covers timeouts, 5xx responses, and connection resets;
	// these are retried with backoff.
	KindTransient Kind = "TRANSIENT"
	// KindPermanent covers 4xx responses (except 403/429) and malformed
	// URLs; these fail immediately.
	KindPermanent Kind = "PERMANENT"
	// KindBotChallenge marks responses that look like an anti-bot
	// interstitial; they trigger one escalation to a rendered fetch.
	KindBotChallenge Kind = "BOT_CHALLENGE"
)

// Common fetch errors
var (
	ErrInvalidURL   = errors.New("invalid URL")
	ErrTimeout      = errors.New("request timeout")
	ErrBotChallenge = errors.New("bot challenge detected")
	ErrRenderFailed = errors.New("rendered fetch failed")
)

// Error wraps a fetch failure with its kind and HTTP status, when known.
type Error struct {
	Kind       Kind
	StatusCode int
	URL        string
	Underlying error
}

func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: fetch %s: %v", e.Kind, e.URL, e.Underlying)
	}
	return fmt.Sprintf("%s: fetch %s: status %d", e.Kind, e.URL, e.StatusCode)
}

func (e *Error) Unwrap() error {
	return e.Underlying
}

// Is matches other *Error values by kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return errors.Is(e.Underlying, target)
}

// Transient reports whether the failure should be retried with backoff.
// It satisfies the retry package's transience check.
func (e *Error) Transient() bool {
	return e.Kind == KindTransient
}

// GetStatusCode exposes the HTTP status for retry decisions.
func (e *Error) GetStatusCode() int {
	return e.StatusCode
}

// NewError creates a fetch Error.
func NewError(kind Kind, url string, status int, err error) *Error {
	return &Error{Kind: kind, URL: url, StatusCode: status, Underlying: err}
}

// IsBotChallenge reports whether err is a bot-challenge failure.
func IsBotChallenge(err error) bool {
	var fe *Error
	return errors.As(err, &fe) && fe.Kind == KindBotChallenge
}

// IsPermanent reports whether err is a permanent fetch failure.
func IsPermanent(err error) bool {
	var fe *Error
	return errors.As(err, &fe) && fe.Kind == KindPermanent
}

// classifyStatus maps an HTTP status code to an error kind, or "" when the
// status is a success.
func classifyStatus(status int) Kind {
	switch {
	case status >= 200 && status < 300:
		return ""
	case status == 403 || status == 429:
		return KindBotChallenge
	case status >= 500:
		return KindTransient
	case status >= 400:
		return KindPermanent
	default:
		return KindTransient
	}
}
