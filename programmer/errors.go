package programmer

import "fmt"

// DestinationError indicates the download destination cannot be written.
// It is reported before any device I/O is attempted.
type DestinationError struct {
	Path string
	Err  error
}

func (e *DestinationError) Error() string {
	return fmt.Sprintf("destination %s is not writable: %v", e.Path, e.Err)
}

func (e *DestinationError) Unwrap() error { return e.Err }
