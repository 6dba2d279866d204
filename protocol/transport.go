package protocol

import (
	"fmt"
	"io"
	"time"
)

// Conn is the byte channel the transport drives. go.bug.st/serial.Port
// satisfies it; tests provide in-memory implementations with programmable
// delays. A Read after SetReadTimeout returns (0, nil) when the window
// elapses without data, matching the serial backend's contract.
type Conn interface {
	io.ReadWriter

	// SetReadTimeout bounds subsequent Read calls
	SetReadTimeout(t time.Duration) error
}

// Direction tags a traced byte as host-to-device or device-to-host.
type Direction int

const (
	// Send is a byte written to the programmer
	Send Direction = iota

	// Recv is a byte read from the programmer
	Recv
)

// Tracer receives every byte transferred in either direction.
// Implementations should return quickly; they run inline with I/O.
type Tracer func(dir Direction, b byte)

// FormatByte renders a traced byte the way the debug stream shows it:
// printable ASCII verbatim, everything else as a two-digit hex escape.
func FormatByte(b byte) string {
	if b >= 0x20 && b <= 0x7E {
		return string(b)
	}
	return fmt.Sprintf("\\x%02X", b)
}

// Transport performs timeout-bounded byte I/O over a Conn.
// It owns no protocol knowledge; Session layers the prompt dialect on top.
type Transport struct {
	conn   Conn
	tracer Tracer
}

// NewTransport wraps a Conn. The tracer may be nil.
func NewTransport(conn Conn, tracer Tracer) *Transport {
	if conn == nil {
		panic("conn cannot be nil")
	}
	return &Transport{conn: conn, tracer: tracer}
}

// ReadByte performs exactly one single-byte read bounded by timeout.
// It returns ErrTimeout when the window elapses without data and a
// TransportError on a hard link failure. Interrupted-syscall retry is the
// serial backend's responsibility.
func (t *Transport) ReadByte(timeout time.Duration) (byte, error) {
	if err := t.conn.SetReadTimeout(timeout); err != nil {
		return 0, &TransportError{Op: "read", Err: err}
	}

	var buf [1]byte
	n, err := t.conn.Read(buf[:])
	if err != nil {
		return 0, &TransportError{Op: "read", Err: err}
	}
	if n == 0 {
		return 0, ErrTimeout
	}

	t.trace(Recv, buf[0])
	return buf[0], nil
}

// Write sends all of p, looping until every byte has been accepted by the
// device or a hard error occurs. Short writes are not errors.
func (t *Transport) Write(p []byte) error {
	for len(p) > 0 {
		n, err := t.conn.Write(p)
		if err != nil {
			return &TransportError{Op: "write", Err: err}
		}
		for _, b := range p[:n] {
			t.trace(Send, b)
		}
		p = p[n:]
	}
	return nil
}

func (t *Transport) trace(dir Direction, b byte) {
	if t.tracer != nil {
		t.tracer(dir, b)
	}
}
