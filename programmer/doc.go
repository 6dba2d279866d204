// Package programmer provides the high-level API for driving a Prompro-8
// EPROM programmer: selecting the device's active EPROM type and
// downloading multi-segment images.
//
// # Overview
//
// The programmer tracks the device's active type as a one-of-N state
// machine. A select command is only issued when the requested type
// differs from the active one, so an EPROM made of consecutive segments
// sharing a type costs exactly one mode switch:
//
//	Unselected --select(type)--> Selected(type)
//	Selected(t) --select(t)----> Selected(t)    (no device traffic)
//	Selected(t) --select(u)----> Selected(u)    (one select command)
//
// A failed select is terminal for the session.
//
// # Basic Usage
//
//	session := protocol.NewSession(protocol.NewTransport(port, nil))
//	if err := session.Handshake(); err != nil {
//	    log.Fatal(err)
//	}
//
//	prog := programmer.New(session)
//	typ, err := cfg.Catalog.Lookup("27C512")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := prog.Download(typ, "image.bin"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Downloads
//
// Download iterates the type's segments in order, switching the device
// mode per segment and placing each segment's bytes at its configured
// offset in the image buffer. The destination is validated before any
// device traffic, and the finished image is renamed into place only after
// every segment succeeded: an aborted download never leaves a file that
// looks complete.
//
// The exact read-segment wire exchange is a vendor protocol detail; it is
// injected via WithSegmentReader. The default treats the exchange as a raw
// stream of exactly the segment size.
//
// # Error Handling
//
// The package returns structured errors and never terminates the process:
//   - eprom.NoSegmentsError: type cannot be selected or downloaded
//   - DestinationError: output path not writable
//   - protocol.TimeoutError: no prompt after a select
//   - protocol.TransportError: hard link failure
package programmer
