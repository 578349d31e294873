// Package event decodes sensor frames into typed event records.
package event

// One frame carries exactly one top-level Event message, and one frame
// always decodes to exactly one Event value: a frame with nothing
// recognizable in it yields Unknown rather than an error, and a frame
// whose declared payload runs past its end yields Truncated with
// enough raw context for post-hoc analysis.
//
// The decoder keeps the firmware's tolerances on purpose. A varint cut
// off at the end of a frame produces a partial value; a fixed32
// distance with fewer than four bytes left is skipped without failing
// the frame. Both conditions come from a radio/serial link that drops
// and truncates, not from a trusted peer.
