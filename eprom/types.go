package eprom

// Segment is a named, offset-addressed region of an EPROM image.
// Name is the programmer's own type label for the device-side sub-mode
// that serves this region; Offset is where the segment's bytes belong in
// the assembled image. Immutable once loaded.
type Segment struct {
	Name   string
	Offset uint32
}

// Type describes one EPROM type: the byte length of each segment's data
// region and the ordered segments making up the full image.
type Type struct {
	Name     string
	SegSize  uint32
	Segments []Segment
}

// ImageSize is the size of the assembled image for this type:
// the largest segment offset plus the segment size.
func (t Type) ImageSize() uint32 {
	var size uint32
	for _, seg := range t.Segments {
		if end := seg.Offset + t.SegSize; end > size {
			size = end
		}
	}
	return size
}

// Catalog maps EPROM type names to their definitions.
// Built once at startup; read-only thereafter.
type Catalog map[string]Type

// Lookup finds a type by name.
func (c Catalog) Lookup(name string) (Type, error) {
	t, ok := c[name]
	if !ok {
		return Type{}, &UnknownTypeError{Name: name}
	}
	return t, nil
}

// LinkConfig holds the serial link parameters. Read-only after load.
type LinkConfig struct {
	// Device is the serial device node, e.g. /dev/ttyUSB0
	Device string

	// Baud is the line speed
	Baud int

	// RTSCTS enables hardware flow control
	RTSCTS bool
}
