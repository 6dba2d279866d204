// Command prompro drives a Prompro-8 EPROM programmer over a serial line:
// it selects an EPROM type, downloads EPROM images, and offers an
// interactive console session with the device.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ve3wwg/prompro/eprom"
	"github.com/ve3wwg/prompro/programmer"
	"github.com/ve3wwg/prompro/protocol"
	"github.com/ve3wwg/prompro/serialport"
)

// Exit codes. 1 through 4 match the original prompro tool; later codes
// distinguish the remaining fatal phases.
const (
	exitConfig      = 1 // missing/invalid configuration, unknown EPROM type
	exitOpen        = 2 // serial device cannot be opened or configured
	exitTransport   = 3 // hard I/O failure mid-session
	exitNotReady    = 4 // no prompt after handshake
	exitSelect      = 5 // no prompt after a type select
	exitDestination = 6 // download destination not writable
	exitNoSegments  = 7 // EPROM type has no segments
)

type options struct {
	configPath string
	epromType  string
	output     string
	console    bool
	verbose    bool
	debug      bool
}

func main() {
	os.Exit(run())
}

func run() int {
	var opts options
	flag.StringVar(&opts.configPath, "config", "",
		"configuration file (default ~/.prompro.xml overridden by ./.prompro.xml)")
	flag.StringVar(&opts.epromType, "type", "",
		"EPROM type to select (default taken from configuration)")
	flag.StringVar(&opts.output, "o", "",
		"download the EPROM image to this file")
	flag.BoolVar(&opts.console, "console", false,
		"interactive console session with the programmer")
	flag.BoolVar(&opts.verbose, "v", false,
		"verbose output")
	flag.BoolVar(&opts.debug, "debug", false,
		"echo every byte transferred on the serial line to stderr")
	flag.Parse()

	logger := newStderrLogger(opts.verbose)

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR %v\n", err)
		return exitConfig
	}

	typeName := opts.epromType
	if typeName == "" {
		typeName = cfg.DefaultType
	}
	if typeName == "" {
		fmt.Fprintln(os.Stderr, "ERROR no EPROM type given and no default configured")
		return exitConfig
	}

	typ, err := cfg.Catalog.Lookup(typeName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR %v\n", err)
		return exitConfig
	}

	fmt.Printf("Dev='%s', baud=%d, rtscts=%v, eprom=%s\n",
		cfg.Link.Device, cfg.Link.Baud, cfg.Link.RTSCTS, typ.Name)

	port, err := serialport.Open(cfg.Link)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR %v\n", err)
		return exitOpen
	}
	defer func() { _ = port.Close() }()

	var tracer protocol.Tracer
	if opts.debug {
		tracer = newStderrTracer()
	}

	session := protocol.NewSession(protocol.NewTransport(port, tracer))

	if err := session.Handshake(); err != nil {
		if protocol.IsTimeout(err) {
			fmt.Fprintln(os.Stderr, "PROMPRO-8 is not ready.")
		} else {
			fmt.Fprintf(os.Stderr, "ERROR %v\n", err)
		}
		return exitCodeFor(err)
	}
	fmt.Println("Ready.")

	prog := programmer.New(session,
		programmer.WithLogger(logger),
		programmer.WithVerbose(opts.verbose),
		programmer.WithProgressCallback(func(p programmer.Progress) {
			if opts.verbose {
				fmt.Printf("[%s] %.1f%% - segment %d/%d\n",
					p.Phase, p.Percentage, p.Segment, p.TotalSegments)
			}
		}),
	)

	if err := prog.SelectDefault(typ); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR %v\n", err)
		return exitCodeFor(err)
	}

	if opts.console {
		if err := runConsole(session); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR %v\n", err)
			return exitCodeFor(err)
		}
		return 0
	}

	if opts.output != "" {
		if err := prog.Download(typ, opts.output); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR %v\n", err)
			return exitCodeFor(err)
		}
		fmt.Printf("Wrote %s\n", opts.output)
	}

	return 0
}

func loadConfig(path string) (*eprom.Config, error) {
	if path != "" {
		return eprom.Load(path)
	}
	return eprom.LoadDefault()
}

// exitCodeFor maps a typed failure to its process exit code. Components
// return errors; this is the single place deciding how the process ends.
func exitCodeFor(err error) int {
	var (
		timeoutErr     *protocol.TimeoutError
		transportErr   *protocol.TransportError
		destErr        *programmer.DestinationError
		noSegmentsErr  *eprom.NoSegmentsError
		unknownTypeErr *eprom.UnknownTypeError
	)
	switch {
	case errors.As(err, &noSegmentsErr):
		return exitNoSegments
	case errors.As(err, &destErr):
		return exitDestination
	case errors.As(err, &unknownTypeErr):
		return exitConfig
	case errors.As(err, &timeoutErr):
		if timeoutErr.Op == protocol.OpHandshake {
			return exitNotReady
		}
		return exitSelect
	case errors.As(err, &transportErr):
		return exitTransport
	default:
		return exitConfig
	}
}

// stderrLogger adapts the standard log package to the programmer.Logger
// interface. Debug messages are dropped unless verbose is set.
type stderrLogger struct {
	l       *log.Logger
	verbose bool
}

func newStderrLogger(verbose bool) *stderrLogger {
	return &stderrLogger{
		l:       log.New(os.Stderr, "", log.Ltime),
		verbose: verbose,
	}
}

func (s *stderrLogger) Debug(msg string, kv ...interface{}) {
	if s.verbose {
		s.l.Println(append([]interface{}{"DEBUG", msg}, kv...)...)
	}
}

func (s *stderrLogger) Info(msg string, kv ...interface{}) {
	s.l.Println(append([]interface{}{msg}, kv...)...)
}

func (s *stderrLogger) Error(msg string, kv ...interface{}) {
	s.l.Println(append([]interface{}{"ERROR", msg}, kv...)...)
}

// newStderrTracer echoes every transferred byte to stderr, marking
// direction changes with "->" (host to device) and "<-" (device to host).
func newStderrTracer() protocol.Tracer {
	last := protocol.Direction(-1)
	return func(dir protocol.Direction, b byte) {
		if dir != last {
			if dir == protocol.Send {
				fmt.Fprint(os.Stderr, "\n-> ")
			} else {
				fmt.Fprint(os.Stderr, "\n<- ")
			}
			last = dir
		}
		fmt.Fprint(os.Stderr, protocol.FormatByte(b))
	}
}
