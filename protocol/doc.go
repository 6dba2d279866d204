// Package protocol implements the Prompro-8 serial command dialect.
//
// # Protocol Overview
//
// The programmer speaks a textual protocol over a raw serial line. Every
// command is a short string terminated by a carriage return; the device
// answers with free-form output ending in a prompt byte ('*') that marks
// it idle and ready for the next command:
//
//	Host:   <command> CR
//	Device: ...output... '*'
//
// # Layers
//
// Transport performs timeout-bounded single-byte reads and full writes
// over an injected Conn, optionally echoing every byte to a Tracer.
// Session layers the prompt exchange on top:
//
//	transport := protocol.NewTransport(port, nil)
//	session := protocol.NewSession(transport)
//	if err := session.Handshake(); err != nil {
//	    // device not responding
//	}
//	_ = session.SendCommand("S2764")
//	ok, err := session.AwaitPrompt(protocol.SelectTimeout)
//
// # Timeouts
//
// Each byte read is individually bounded; AwaitPrompt gives up on the
// first timed-out read regardless of bytes seen earlier. Handshake uses
// the 2000 ms default window, type selection the longer 6000 ms window
// because device-side mode switches are slower.
//
// # Error Handling
//
// A timed-out prompt wait is reported as a TimeoutError carrying the
// operation name. Hard link failures surface as TransportError and are
// never retried; the physical link is considered unrecoverable
// mid-session.
//
// # Hardware Independence
//
// The package does not open serial devices. Any Conn works: a
// go.bug.st/serial port, or an in-memory implementation with programmable
// delays for deterministic timeout tests.
package protocol
