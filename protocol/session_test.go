package protocol

import (
	"errors"
	"testing"
	"time"
)

func newTestSession(conn *scriptConn, opts ...SessionOption) *Session {
	return NewSession(NewTransport(conn, nil), opts...)
}

func TestSendCommand(t *testing.T) {
	conn := &scriptConn{}
	s := newTestSession(conn)

	if err := s.SendCommand("S27C256"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := conn.wrote.String(); got != "S27C256\r" {
		t.Errorf("wrote %q, want %q", got, "S27C256\r")
	}
}

func TestAwaitPrompt(t *testing.T) {
	tests := []struct {
		name   string
		script func(*scriptConn)
		want   bool
	}{
		{
			name:   "prompt immediately",
			script: func(c *scriptConn) { c.feed('*') },
			want:   true,
		},
		{
			name:   "garbage then prompt",
			script: func(c *scriptConn) { c.feed('P', 'R', 'O', 'M', 'P', 'R', 'O', '-', '8', '\r', '\n', '*') },
			want:   true,
		},
		{
			name:   "timeout with no bytes",
			script: func(c *scriptConn) { c.feedTimeout() },
			want:   false,
		},
		{
			name: "timeout after garbage",
			script: func(c *scriptConn) {
				c.feed('x', 'y')
				c.feedTimeout()
				c.feed('*') // never reached: first timed-out read ends the wait
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := &scriptConn{}
			tt.script(conn)

			s := newTestSession(conn)
			ok, err := s.AwaitPrompt(0)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tt.want {
				t.Errorf("AwaitPrompt = %v, want %v", ok, tt.want)
			}
		})
	}

	t.Run("transport error", func(t *testing.T) {
		conn := &scriptConn{readErr: errors.New("device unplugged")}
		s := newTestSession(conn)

		_, err := s.AwaitPrompt(0)
		var te *TransportError
		if !errors.As(err, &te) {
			t.Fatalf("error type = %T, want *TransportError", err)
		}
	})

	t.Run("zero timeout uses session default", func(t *testing.T) {
		conn := &scriptConn{}
		conn.feed('*')

		s := newTestSession(conn, WithDefaultTimeout(123*time.Millisecond))
		if _, err := s.AwaitPrompt(0); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if conn.lastTimeout != 123*time.Millisecond {
			t.Errorf("read timeout = %v, want 123ms", conn.lastTimeout)
		}
	})
}

func TestHandshake(t *testing.T) {
	t.Run("device ready", func(t *testing.T) {
		conn := &scriptConn{}
		conn.feed('\r', '\n', '*')

		s := newTestSession(conn)
		if err := s.Handshake(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := conn.wrote.String(); got != "\r" {
			t.Errorf("wrote %q, want bare CR", got)
		}
	})

	t.Run("device not ready", func(t *testing.T) {
		conn := &scriptConn{}
		conn.feedTimeout()

		s := newTestSession(conn)
		err := s.Handshake()

		var te *TimeoutError
		if !errors.As(err, &te) {
			t.Fatalf("error type = %T, want *TimeoutError", err)
		}
		if te.Op != OpHandshake {
			t.Errorf("Op = %q, want %q", te.Op, OpHandshake)
		}
		if !IsTimeout(err) {
			t.Error("IsTimeout = false, want true")
		}
	})

	t.Run("write failure", func(t *testing.T) {
		conn := &scriptConn{writeErr: errors.New("write failed")}
		s := newTestSession(conn)

		err := s.Handshake()
		var te *TransportError
		if !errors.As(err, &te) {
			t.Fatalf("error type = %T, want *TransportError", err)
		}
	})
}
