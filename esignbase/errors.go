package esignbase

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies an Error so callers can branch on the failure.
type ErrorKind int

const (
	// KindConfiguration means the credentials are invalid. Detected before any network call.
	KindConfiguration ErrorKind = iota + 1
	// KindInvalidArgument means an operation argument is missing or out of range.
	KindInvalidArgument
	// KindAuthentication means the token endpoint rejected the request or returned no usable token.
	KindAuthentication
	// KindNotAuthenticated means a resource operation was called before a successful Connect.
	KindNotAuthenticated
	// KindAPI means a resource endpoint answered with a non-2xx status.
	KindAPI
	// KindTransport means the request never produced an HTTP response (DNS, refused connection, timeout).
	KindTransport
)

var kindNames = map[ErrorKind]string{
	KindConfiguration:    "configuration error",
	KindInvalidArgument:  "invalid argument",
	KindAuthentication:   "authentication failed",
	KindNotAuthenticated: "not authenticated",
	KindAPI:              "api error",
	KindTransport:        "transport error",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("unknown error kind %d", int(k))
}

var (
	ErrNotConnected       = errors.New("client is not connected, call Connect first")
	ErrMissingAccessToken = errors.New("token response did not contain an access token")
)

// Error is the single error type returned by this package.
type Error struct {
	Kind ErrorKind
	// Op names the operation that failed, e.g. "connect" or "get document".
	Op string
	// StatusCode is the HTTP status for KindAuthentication and KindAPI, zero otherwise.
	StatusCode int
	// Message is the server-provided error message, when there was one.
	Message string
	// RequestID is the X-Request-Id sent with the failing request.
	RequestID string
	Err       error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("esignbase: ")
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	switch {
	case e.Message != "":
		b.WriteString(": ")
		b.WriteString(e.Message)
	case e.Err != nil:
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first *Error in err's chain, or zero.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// StatusCode returns the HTTP status carried by err, or zero.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

func newError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}
