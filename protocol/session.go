package protocol

import "time"

// Session turns the raw byte stream into a command/response exchange keyed
// on the programmer's prompt byte. It is the synchronization primitive all
// higher logic rests on.
type Session struct {
	transport *Transport
	timeout   time.Duration
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithDefaultTimeout overrides the per-read timeout used when a caller
// passes zero to AwaitPrompt and by Handshake.
func WithDefaultTimeout(d time.Duration) SessionOption {
	return func(s *Session) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewSession creates a Session over the given transport.
func NewSession(transport *Transport, opts ...SessionOption) *Session {
	if transport == nil {
		panic("transport cannot be nil")
	}
	s := &Session{
		transport: transport,
		timeout:   DefaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Transport exposes the underlying transport for callers that need raw
// byte exchanges after a command, such as segment data retrieval.
func (s *Session) Transport() *Transport { return s.transport }

// DefaultTimeout reports the session's per-read timeout.
func (s *Session) DefaultTimeout() time.Duration { return s.timeout }

// SendCommand writes text followed by a carriage return.
func (s *Session) SendCommand(text string) error {
	if err := s.transport.Write([]byte(text)); err != nil {
		return err
	}
	return s.transport.Write([]byte{CR})
}

// AwaitPrompt reads bytes, discarding everything until the prompt byte is
// seen, and reports whether it arrived. Each byte read is itself bounded by
// timeout (the session default when zero); a single timed-out read ends the
// wait with false. A transport failure is returned as an error.
func (s *Session) AwaitPrompt(timeout time.Duration) (bool, error) {
	if timeout <= 0 {
		timeout = s.timeout
	}

	for {
		b, err := s.transport.ReadByte(timeout)
		if err == ErrTimeout {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if b == Prompt {
			return true, nil
		}
	}
}

// Handshake confirms the programmer is present and responsive: a bare
// carriage return must be answered by a prompt within the default timeout.
// Failure means the device is absent or unready; it is not retried.
func (s *Session) Handshake() error {
	if err := s.transport.Write([]byte{CR}); err != nil {
		return err
	}

	ok, err := s.AwaitPrompt(s.timeout)
	if err != nil {
		return err
	}
	if !ok {
		return &TimeoutError{Op: OpHandshake, Timeout: s.timeout}
	}
	return nil
}
