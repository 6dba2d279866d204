package programmer

import "time"

// Progress contains information about a running download.
// Passed to ProgressCallback after each segment completes.
type Progress struct {
	// Phase describes the current operation phase:
	//   "selecting" - switching the device's EPROM-handling mode
	//   "reading"   - retrieving segment data
	//   "writing"   - writing the assembled image to disk
	//   "complete"  - download finished
	Phase string

	// Segment is the index of the current segment (1-based)
	Segment int

	// TotalSegments is the number of segments in the EPROM type
	TotalSegments int

	// BytesRead is the total number of bytes retrieved so far
	BytesRead int

	// Percentage is the completion percentage (0.0 to 100.0)
	Percentage float64

	// Elapsed is the time since the download started
	Elapsed time.Duration
}

// ProgressCallback is called as a download advances.
// Implementations should return quickly; they run inline with device I/O.
type ProgressCallback func(Progress)

// Logger is an optional logging interface. It allows integration with any
// logging framework; when nil, the programmer is silent.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
