package dummy

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTransport marks failures to reach the remote API at all.
	ErrTransport = errors.New("dummy: transport failure")
	// ErrStatus marks non-2xx responses. Use errors.As with *StatusError for details.
	ErrStatus = errors.New("dummy: unexpected status")
	// ErrDecode marks response bodies that are not the expected JSON shape.
	ErrDecode = errors.New("dummy: malformed response body")
	// ErrEmptyBody marks empty or JSON null response bodies.
	ErrEmptyBody = errors.New("dummy: empty response body")
)

// StatusError carries the status code and a trimmed body snippet of a non-2xx response.
type StatusError struct {
	Code    int
	Snippet string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("dummy: unexpected status %d body: %s", e.Code, e.Snippet)
}

// Is lets errors.Is(err, ErrStatus) match any StatusError.
func (e *StatusError) Is(target error) bool { return target == ErrStatus }

// Outcome classifies err into a short label used for metrics and logs.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	case errors.Is(err, ErrStatus):
		return "status"
	case errors.Is(err, ErrDecode):
		return "decode"
	case errors.Is(err, ErrEmptyBody):
		return "empty"
	case errors.Is(err, ErrTransport):
		return "transport"
	default:
		return "error"
	}
}

func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}

// maskedError replaces an error whose text carried a secret. It keeps only the
// classification of the original so errors.Is/As and Outcome still work.
type maskedError struct {
	msg  string
	kind error
}

func (e *maskedError) Error() string { return e.msg }
func (e *maskedError) Unwrap() error { return e.kind }

// maskSecret returns err with every occurrence of secret replaced by "****".
// The original chain is dropped, since wrapped transport errors echo the request URL.
func maskSecret(err error, secret string) error {
	if err == nil || secret == "" || !strings.Contains(err.Error(), secret) {
		return err
	}
	mask := func(s string) string { return strings.ReplaceAll(s, secret, "****") }

	var kind error
	var se *StatusError
	switch {
	case errors.As(err, &se):
		kind = &StatusError{Code: se.Code, Snippet: mask(se.Snippet)}
	case errors.Is(err, context.Canceled):
		kind = context.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		kind = context.DeadlineExceeded
	case errors.Is(err, ErrDecode):
		kind = ErrDecode
	case errors.Is(err, ErrEmptyBody):
		kind = ErrEmptyBody
	case errors.Is(err, ErrTransport):
		kind = ErrTransport
	}
	return &maskedError{msg: mask(err.Error()), kind: kind}
}
