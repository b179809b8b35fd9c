package models

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind classifies why a listing ended up in BatchResult.Failures.
type ErrorKind string

const (
	// KindTransientFetch covers timeouts, rate limiting and temporary upstream outages.
	KindTransientFetch ErrorKind = "TransientFetchError"
	// KindPermanentFetch means the URL does not resolve to a listing.
	KindPermanentFetch ErrorKind = "PermanentFetchError"
	// KindMalformedDocument means the page lacks the required structural fields.
	KindMalformedDocument ErrorKind = "MalformedDocumentError"
	// KindCanceled marks inputs stopped or never started because the run was canceled.
	KindCanceled ErrorKind = "Canceled"
)

var (
	ErrTransientFetch    = errors.New("transient fetch error")
	ErrPermanentFetch    = errors.New("permanent fetch error")
	ErrMalformedDocument = errors.New("malformed listing document")
	ErrInvalidConfig     = errors.New("invalid configuration")
)

// FetchError is returned by fetch adapters so the orchestrator can decide
// whether another attempt is worth it.
type FetchError struct {
	Kind       ErrorKind
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("%s for %s", e.Kind, e.URL)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is matches the sentinel of the error's kind.
func (e *FetchError) Is(target error) bool {
	switch target {
	case ErrTransientFetch:
		return e.Kind == KindTransientFetch
	case ErrPermanentFetch:
		return e.Kind == KindPermanentFetch
	}
	return false
}

// Transient wraps err as a retry-worthy fetch failure.
func Transient(url string, err error) error {
	return &FetchError{Kind: KindTransientFetch, URL: url, Err: err}
}

// Permanent wraps err as a fetch failure that retrying cannot fix.
func Permanent(url string, err error) error {
	return &FetchError{Kind: KindPermanentFetch, URL: url, Err: err}
}

// MalformedError reports a document that is missing a required field.
func MalformedError(url, field string) error {
	return fmt.Errorf("%w: %s missing for %s", ErrMalformedDocument, field, url)
}

// KindOf maps an error to its failure kind. Errors nobody classified are
// treated as transient, which matches the usual cause (network trouble).
func KindOf(err error) ErrorKind {
	var fe *FetchError
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded) && !errors.As(err, &fe):
		return KindCanceled
	case errors.Is(err, ErrMalformedDocument):
		return KindMalformedDocument
	case errors.Is(err, ErrPermanentFetch):
		return KindPermanentFetch
	default:
		return KindTransientFetch
	}
}

// IsRetryable reports whether another fetch attempt could succeed.
func IsRetryable(err error) bool {
	return err != nil && KindOf(err) == KindTransientFetch
}
