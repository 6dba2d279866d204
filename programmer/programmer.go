package programmer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ve3wwg/prompro/eprom"
	"github.com/ve3wwg/prompro/protocol"
)

// Programmer orchestrates EPROM operations against a Prompro-8 session.
// It tracks which EPROM type is active on the physical device and only
// issues a type-select command when the type actually changes.
//
// Programmer is not safe for concurrent use: one session talks to exactly
// one device.
type Programmer struct {
	session *protocol.Session
	config  Config

	// active is the type currently selected on the device; empty until
	// the first successful select.
	active string
}

// New creates a Programmer over an established session.
//
// Example:
//
//	prog := programmer.New(session,
//	    programmer.WithLogger(myLogger),
//	    programmer.WithSelectTimeout(6*time.Second),
//	)
func New(session *protocol.Session, opts ...Option) *Programmer {
	if session == nil {
		panic("session cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Programmer{
		session: session,
		config:  cfg,
	}
}

// ActiveType reports the EPROM type currently selected on the device,
// or "" if no select has succeeded yet.
func (p *Programmer) ActiveType() string { return p.active }

// EnsureSelected switches the device's EPROM-handling mode to the
// segment's type. When the segment's type is already active this is a
// no-op: no device traffic is issued for consecutive segments sharing a
// type. The active type is only updated once the device acknowledges the
// switch with its prompt.
func (p *Programmer) EnsureSelected(seg eprom.Segment) error {
	if seg.Name == p.active {
		if p.config.Verbose {
			p.logInfo("EPROM type already selected", "type", seg.Name)
		}
		return nil
	}

	// Composite command: the select letter, the type name, CR.
	t := p.session.Transport()
	if err := t.Write([]byte{protocol.SelectCommand}); err != nil {
		return err
	}
	if err := t.Write([]byte(seg.Name)); err != nil {
		return err
	}
	if err := t.Write([]byte{protocol.CR}); err != nil {
		return err
	}

	ok, err := p.session.AwaitPrompt(p.config.SelectTimeout)
	if err != nil {
		return err
	}
	if !ok {
		return &protocol.TimeoutError{Op: protocol.OpSelect, Timeout: p.config.SelectTimeout}
	}

	p.active = seg.Name
	p.logDebug("selected EPROM type", "type", seg.Name)
	return nil
}

// SelectDefault puts the device in the mode of the type's first segment.
// Used before any user interaction. A type with no segments is a
// configuration error reported with the type's name.
func (p *Programmer) SelectDefault(typ eprom.Type) error {
	if len(typ.Segments) == 0 {
		return &eprom.NoSegmentsError{Type: typ.Name}
	}
	return p.EnsureSelected(typ.Segments[0])
}

// Download retrieves every segment of the EPROM type, in order, and writes
// the assembled image to dest. Each segment's bytes land at its configured
// offset, so the image is offset-addressed, not append-addressed.
//
// The destination is opened before any device traffic: an unwritable path
// fails fast without touching the device. The image is written to a
// temporary file beside dest and only renamed into place once every
// segment has been retrieved; a failed download leaves no file at dest.
func (p *Programmer) Download(typ eprom.Type, dest string) error {
	if len(typ.Segments) == 0 {
		return &eprom.NoSegmentsError{Type: typ.Name}
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*")
	if err != nil {
		return &DestinationError{Path: dest, Err: err}
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	start := time.Now()
	image := make([]byte, typ.ImageSize())
	bytesRead := 0
	total := len(typ.Segments)

	for i, seg := range typ.Segments {
		p.reportProgress(Progress{
			Phase:         "selecting",
			Segment:       i + 1,
			TotalSegments: total,
			BytesRead:     bytesRead,
			Percentage:    float64(i) / float64(total) * 95,
			Elapsed:       time.Since(start),
		})

		if err := p.EnsureSelected(seg); err != nil {
			return fmt.Errorf("segment %d (%s): %w", i+1, seg.Name, err)
		}

		p.reportProgress(Progress{
			Phase:         "reading",
			Segment:       i + 1,
			TotalSegments: total,
			BytesRead:     bytesRead,
			Percentage:    (float64(i) + 0.5) / float64(total) * 95,
			Elapsed:       time.Since(start),
		})

		buf := image[seg.Offset : seg.Offset+typ.SegSize]
		if err := p.config.SegmentReader(p.session, seg, buf); err != nil {
			return fmt.Errorf("segment %d (%s): %w", i+1, seg.Name, err)
		}
		bytesRead += len(buf)

		p.logDebug("segment retrieved",
			"segment", i+1,
			"type", seg.Name,
			"offset", seg.Offset,
			"bytes", len(buf),
		)
	}

	p.reportProgress(Progress{
		Phase:         "writing",
		Segment:       total,
		TotalSegments: total,
		BytesRead:     bytesRead,
		Percentage:    95,
		Elapsed:       time.Since(start),
	})

	if _, err := tmp.Write(image); err != nil {
		return &DestinationError{Path: dest, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &DestinationError{Path: dest, Err: err}
	}
	if err := os.Rename(tmpName, dest); err != nil {
		return &DestinationError{Path: dest, Err: err}
	}
	committed = true

	p.reportProgress(Progress{
		Phase:         "complete",
		Segment:       total,
		TotalSegments: total,
		BytesRead:     bytesRead,
		Percentage:    100,
		Elapsed:       time.Since(start),
	})

	p.logInfo("download complete",
		"type", typ.Name,
		"segments", total,
		"bytes", len(image),
		"dest", dest,
		"elapsed", time.Since(start).String(),
	)

	return nil
}

// readRawSegment is the default segment exchange: the device streams the
// segment's bytes back after the type select, each byte bounded by the
// session's default read timeout.
func readRawSegment(s *protocol.Session, seg eprom.Segment, buf []byte) error {
	timeout := s.DefaultTimeout()
	for i := range buf {
		b, err := s.Transport().ReadByte(timeout)
		if err == protocol.ErrTimeout {
			return &protocol.TimeoutError{Op: "retrieving segment data", Timeout: timeout}
		}
		if err != nil {
			return err
		}
		buf[i] = b
	}
	return nil
}

func (p *Programmer) reportProgress(progress Progress) {
	if p.config.ProgressCallback != nil {
		p.config.ProgressCallback(progress)
	}
}

func (p *Programmer) logDebug(msg string, keysAndValues ...interface{}) {
	if p.config.Logger != nil {
		p.config.Logger.Debug(msg, keysAndValues...)
	}
}

func (p *Programmer) logInfo(msg string, keysAndValues ...interface{}) {
	if p.config.Logger != nil {
		p.config.Logger.Info(msg, keysAndValues...)
	}
}
