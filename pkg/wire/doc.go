// Package wire reads the subset of the protobuf wire format spoken by
// the OBS Lite sensor link.
package wire

// The sensor firmware emits hand-rolled protobuf messages, so only the
// wire types it actually uses are supported: varint, fixed64,
// length-delimited and fixed32. There is no schema compilation or
// reflection here; callers dispatch on field numbers themselves and
// skip what they don't know.
//
// The link is lossy. Decoding is therefore tolerant by default: a
// varint cut off by the end of the buffer yields its partial value
// rather than an error, matching the firmware's peer tooling.
//
// Producer: OBS Lite firmware
// Consumer: event decoder
