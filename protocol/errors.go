package protocol

import (
	"errors"
	"fmt"
	"time"
)

// ErrTimeout is returned by Transport.ReadByte when no byte arrives within
// the allotted window. Session methods translate it into a TimeoutError
// carrying the operation name.
var ErrTimeout = errors.New("read timed out")

// TimeoutError indicates that the programmer did not produce its prompt
// within the allotted window for a named operation.
type TimeoutError struct {
	// Op is the operation that was waiting, e.g. "handshake"
	Op string

	// Timeout is the window that elapsed
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: no prompt from device within %v", e.Op, e.Timeout)
}

// TransportError indicates a hard I/O failure on the serial link.
// The link is considered unrecoverable mid-session; callers report and stop.
type TransportError struct {
	// Op is the transport operation that failed ("read" or "write")
	Op string

	// Err is the underlying device error
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("serial %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsTimeout returns true if the error is ErrTimeout or a TimeoutError.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.Is(err, ErrTimeout) || errors.As(err, &te)
}
