package dhcpmodel

import (
	"fmt"
)

// An error returned when an option value payload does not match its
// declared kind, e.g. invalid base64 or hex data or an unparseable
// domain name.
type MalformedValueError struct {
	Code uint8
	Kind OptionKind
	Err  error
}

// Creates new instance of the MalformedValueError.
func NewMalformedValueError(code uint8, kind OptionKind, err error) error {
	return &MalformedValueError{
		Code: code,
		Kind: kind,
		Err:  err,
	}
}

// Returns error string.
func (e MalformedValueError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("malformed value of option %d: %s", e.Code, e.Err)
	}
	return fmt.Sprintf("malformed %s value of option %d: %s", e.Kind, e.Code, e.Err)
}

// Returns the underlying decode failure.
func (e MalformedValueError) Unwrap() error {
	return e.Err
}
