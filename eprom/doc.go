// Package eprom holds the configuration model for the Prompro-8 driver:
// the catalog of EPROM types with their ordered segments, the serial link
// parameters, and the .prompro.xml loader that populates them.
//
// An EPROM type is described by a segment size and an ordered list of
// segments. Each segment names the programmer-side sub-mode that serves it
// and the byte offset where its data belongs in the assembled image. A
// 27C512 read through a programmer that only handles 32 KiB banks, for
// example, is two segments of the same device type at offsets 0 and 32768.
//
// Configuration is read once at startup from ~/.prompro.xml and
// ./.prompro.xml (the latter overriding) and is read-only thereafter.
package eprom
