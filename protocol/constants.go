package protocol

import "time"

// Wire constants for the Prompro-8 command dialect.
const (
	// Prompt is the sentinel byte the programmer emits when it is idle
	// and ready for the next command
	Prompt = '*'

	// CR terminates every command sent to the programmer
	CR = '\r'

	// SelectCommand is the command letter that switches the programmer's
	// active EPROM-handling mode; it is followed by the type name and CR
	SelectCommand = 'S'
)

// Timeouts observed against the Prompro-8.
const (
	// DefaultTimeout bounds a single byte read and the handshake prompt wait
	DefaultTimeout = 2000 * time.Millisecond

	// SelectTimeout bounds the prompt wait after a type select.
	// Device-side mode switches are slower than ordinary commands.
	SelectTimeout = 6000 * time.Millisecond
)

// Operation names carried by TimeoutError so operators can tell which
// phase of the session failed.
const (
	OpHandshake = "handshake"
	OpSelect    = "Selecting PROMPRO EPROM type"
)
