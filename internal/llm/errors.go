package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a failed call.
type ErrorKind int

const (
	// KindUnavailable covers transport failures, 5xx replies and calls the
	// guard refused.
	KindUnavailable ErrorKind = iota
	KindRateLimited
	// KindInvalidResponse means the reply had no JSON or broke the schema.
	KindInvalidResponse
	// KindTruncated means the reply hit MaxTokens before it was complete.
	KindTruncated
)

func (k ErrorKind) String() string {
	switch k {
	case KindRateLimited:
		return "rate limited"
	case KindInvalidResponse:
		return "invalid response"
	case KindTruncated:
		return "truncated"
	default:
		return "unavailable"
	}
}

// Error is the error every backend and decorator returns for a failed call.
type Error struct {
	Kind ErrorKind
	// Content is the raw reply, when there was one.
	Content json.RawMessage
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return "llm: " + e.Kind.String()
	}
	return fmt.Sprintf("llm: %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

func unavailable(err error) error {
	return &Error{Kind: KindUnavailable, Err: err}
}

func invalidResponse(content string, err error) error {
	return &Error{Kind: KindInvalidResponse, Content: json.RawMessage(content), Err: err}
}

// fromStatus classifies an SDK error by its HTTP status code.
func fromStatus(status int, err error) error {
	if status == http.StatusTooManyRequests {
		return &Error{Kind: KindRateLimited, Err: err}
	}
	return unavailable(err)
}
