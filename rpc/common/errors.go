package common

import (
	"errors"
	"fmt"
	"io"
)

// --------------------------------------------------------------------------
// Session Error Kinds
// --------------------------------------------------------------------------

// All three error kinds are fatal for a session: the loop stops and the
// connection is dropped without a response frame.

// TransportError reports a socket read/write failure or an unexpected end-of-stream
type TransportError struct {
	Op  string // "read", "write", "close", ...
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsEOF reports whether the peer closed the stream
func (e *TransportError) IsEOF() bool {
	return errors.Is(e.Err, io.EOF) || errors.Is(e.Err, io.ErrUnexpectedEOF)
}

// ProtocolError reports a frame that is not a known control tag
type ProtocolError struct {
	Payload string
	Reason  string
}

func (e *ProtocolError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("protocol error: %s", e.Reason)
	}
	return fmt.Sprintf("protocol error: unrecognized control tag %q", e.Payload)
}

// SchemaError reports a problem payload that does not conform to the circuit schema
type SchemaError struct {
	Err error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error: %v", e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// ErrorKind returns a short label for the error kind, used for logging and metrics
func ErrorKind(err error) string {
	var transportErr *TransportError
	var protocolErr *ProtocolError
	var schemaErr *SchemaError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &transportErr):
		return "transport"
	case errors.As(err, &protocolErr):
		return "protocol"
	case errors.As(err, &schemaErr):
		return "schema"
	default:
		return "internal"
	}
}
