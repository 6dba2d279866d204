package programmer

import (
	"time"

	"github.com/ve3wwg/prompro/eprom"
	"github.com/ve3wwg/prompro/protocol"
)

// SegmentReader retrieves one segment's data from the device into buf,
// which is exactly the segment size. It runs after the device has been
// switched to the segment's type. The Prompro-8's read-segment wire
// exchange is vendor-documented, not part of the prompt dialect, so the
// exchange is pluggable.
type SegmentReader func(s *protocol.Session, seg eprom.Segment, buf []byte) error

// Config holds the programmer configuration.
type Config struct {
	// Logger is used for logging operations (optional)
	Logger Logger

	// ProgressCallback is called during downloads to report progress (optional)
	ProgressCallback ProgressCallback

	// SelectTimeout bounds the prompt wait after a type select
	SelectTimeout time.Duration

	// SegmentReader performs the per-segment data exchange
	SegmentReader SegmentReader

	// Verbose enables notices about redundant selections being skipped
	Verbose bool
}

func defaultConfig() Config {
	return Config{
		SelectTimeout: protocol.SelectTimeout,
		SegmentReader: readRawSegment,
	}
}

// Option is a functional option for configuring the Programmer.
type Option func(*Config)

// WithLogger sets a logger for programmer operations.
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithProgressCallback sets a callback to track download progress.
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithSelectTimeout overrides the prompt wait after a type select.
// The device needs up to several seconds to switch modes.
func WithSelectTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.SelectTimeout = timeout
		}
	}
}

// WithSegmentReader replaces the per-segment data exchange.
func WithSegmentReader(reader SegmentReader) Option {
	return func(c *Config) {
		if reader != nil {
			c.SegmentReader = reader
		}
	}
}

// WithVerbose enables notices for operations that are skipped, such as a
// type select for the already-active type.
func WithVerbose(verbose bool) Option {
	return func(c *Config) {
		c.Verbose = verbose
	}
}
