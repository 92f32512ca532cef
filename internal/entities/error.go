package entities

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("entity not found")
)

type ErrorKind int

const (
	_ ErrorKind = iota
	KindTimeout
	KindTransport
	KindHTTPStatus
	KindMalformed
	KindInvalidQuery
)

func (k ErrorKind) String() string {
	if k < KindTimeout || k > KindInvalidQuery {
		return fmt.Sprintf("fetch error kind %d", int(k))
	}
	return [...]string{"", "timeout", "transport error", "http status error", "malformed response", "invalid query"}[k]
}

// FetchError is the error returned by the rate client. Match it with errors.Is against
// the Err* sentinels and use errors.As to read Status.
type FetchError struct {
	Kind   ErrorKind
	Status int
	Cause  error
}

var (
	ErrTimeout           = &FetchError{Kind: KindTimeout}
	ErrTransport         = &FetchError{Kind: KindTransport}
	ErrHTTPStatus        = &FetchError{Kind: KindHTTPStatus}
	ErrMalformedResponse = &FetchError{Kind: KindMalformed}
	ErrInvalidQuery      = &FetchError{Kind: KindInvalidQuery}
)

func (e *FetchError) Error() string {
	msg := e.Kind.String()
	if e.Kind == KindHTTPStatus && e.Status != 0 {
		msg = fmt.Sprintf("%s: status %d", msg, e.Status)
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// Is matches on Kind, and on Status when the target sets one.
func (e *FetchError) Is(target error) bool {
	t, ok := target.(*FetchError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Status == 0 || t.Status == e.Status)
}

func Timeout(cause error) error {
	return &FetchError{Kind: KindTimeout, Cause: cause}
}

func Transport(cause error) error {
	return &FetchError{Kind: KindTransport, Cause: cause}
}

func HTTPStatus(status int) error {
	return &FetchError{Kind: KindHTTPStatus, Status: status}
}

func Malformed(format string, args ...any) error {
	return &FetchError{Kind: KindMalformed, Cause: fmt.Errorf(format, args...)}
}

func InvalidQuery(reason string) error {
	return &FetchError{Kind: KindInvalidQuery, Cause: errors.New(reason)}
}

// Upstream reports whether err is a failure of the remote side rather than of the caller
// or of the payload: timeouts, transport errors and non-200 statuses.
func Upstream(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrTransport) || errors.Is(err, ErrHTTPStatus)
}
