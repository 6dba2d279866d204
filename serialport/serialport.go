// Package serialport opens and configures the physical link to the
// Prompro-8. The programmer wants a raw 8-bit line with odd parity;
// everything returned here is ready for protocol.NewTransport.
package serialport

import (
	"fmt"

	"go.bug.st/serial"

	"github.com/ve3wwg/prompro/eprom"
)

// Open opens the configured device node in raw mode with the Prompro-8's
// line discipline (8 data bits, odd parity, one stop bit) and flushes any
// bytes in transit from a previous session.
func Open(link eprom.LinkConfig) (serial.Port, error) {
	mode := &serial.Mode{
		BaudRate: link.Baud,
		DataBits: 8,
		Parity:   serial.OddParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(link.Device, mode)
	if err != nil {
		return nil, fmt.Errorf("unable to open serial device %s: %w", link.Device, err)
	}

	if err := port.ResetInputBuffer(); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("flushing %s: %w", link.Device, err)
	}
	if err := port.ResetOutputBuffer(); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("flushing %s: %w", link.Device, err)
	}

	if link.RTSCTS {
		// The serial backend exposes no CRTSCTS toggle; asserting RTS
		// opens the programmer's CTS gate, which is all the Prompro-8
		// needs on a 3-wire-plus-RTS cable.
		if err := port.SetRTS(true); err != nil {
			_ = port.Close()
			return nil, fmt.Errorf("asserting RTS on %s: %w", link.Device, err)
		}
	}

	return port, nil
}
