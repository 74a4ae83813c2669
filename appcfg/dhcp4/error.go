package dhcp4config

import (
	"fmt"
)

// An error returned when an option value could not be rendered to
// the wire format. It wraps the MalformedValueError describing the
// offending payload.
type EncodeError struct {
	Code uint8
	Err  error
}

// Creates new instance of the EncodeError.
func NewEncodeError(code uint8, err error) error {
	return &EncodeError{
		Code: code,
		Err:  err,
	}
}

// Returns error string.
func (e EncodeError) Error() string {
	return fmt.Sprintf("failed to encode option %d: %s", e.Code, e.Err)
}

// Returns the underlying error.
func (e EncodeError) Unwrap() error {
	return e.Err
}

// An error returned when the canonical decoder rejects the option
// stream produced by the encoder. It always indicates a configuration
// error.
type BridgeDecodeError struct {
	Err error
}

// Creates new instance of the BridgeDecodeError.
func NewBridgeDecodeError(err error) error {
	return &BridgeDecodeError{
		Err: err,
	}
}

// Returns error string.
func (e BridgeDecodeError) Error() string {
	return fmt.Sprintf("encoded options rejected by the decoder: %s", e.Err)
}

// Returns the underlying decode error.
func (e BridgeDecodeError) Unwrap() error {
	return e.Err
}
