package core

import (
	"errors"
	"fmt"
)

var (
	// ErrCACertNotFound is returned when the configured CA bundle does not exist
	ErrCACertNotFound = errors.New("CA certificate file not found")
	// ErrInvalidCACert is returned when the CA bundle holds no PEM certificates
	ErrInvalidCACert = errors.New("CA certificate file contains no valid certificates")
	// ErrNetBoxUnreachable is returned when the startup connectivity check fails
	ErrNetBoxUnreachable = errors.New("NetBox API is unreachable")
)

type LookupErrorKind string

const (
	LookupErrorTransport LookupErrorKind = "transport"
	LookupErrorStatus    LookupErrorKind = "status"
	LookupErrorEmptyBody LookupErrorKind = "empty_body"
	LookupErrorDecode    LookupErrorKind = "decode"
	LookupErrorShape     LookupErrorKind = "shape"
)

// LookupError describes a failed NetBox API request
type LookupError struct {
	Kind       LookupErrorKind
	Endpoint   string
	StatusCode int   // set for LookupErrorStatus
	Err        error // underlying cause, may be nil
}

func (e *LookupError) Error() string {
	msg := fmt.Sprintf("netbox lookup %q failed (%s)", e.Endpoint, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// IsMalformedResponse reports whether NetBox answered with a 2xx whose body
// could not be read as a results list. Search treats these as empty results.
func (e *LookupError) IsMalformedResponse() bool {
	switch e.Kind {
	case LookupErrorEmptyBody, LookupErrorDecode, LookupErrorShape:
		return true
	}
	return false
}

// IsLookupError checks if an error is a NetBox lookup error
func IsLookupError(err error) (*LookupError, bool) {
	var lookupErr *LookupError
	if errors.As(err, &lookupErr) {
		return lookupErr, true
	}
	return nil, false
}
