package eprom

import "fmt"

// UnknownTypeError indicates the requested EPROM type is not in the catalog.
type UnknownTypeError struct {
	Name string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown EPROM type %q", e.Name)
}

// NoSegmentsError indicates an EPROM type was configured without segments.
// Such a type can never be selected or downloaded.
type NoSegmentsError struct {
	Type string
}

func (e *NoSegmentsError) Error() string {
	return fmt.Sprintf("EPROM type %q has no segments configured", e.Type)
}
