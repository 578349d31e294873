package event

import (
	"encoding/binary"
	"math"

	"github.com/obslite/obsmon/pkg/wire"
)

// DecodeMeasurement decodes a DistanceMeasurement submessage. Field 1
// (varint) is the source id, field 2 (fixed32) the distance as a
// little-endian float32; everything else is skipped. A distance field
// with fewer than four bytes remaining is skipped without setting
// HasDistance, and the rest of the submessage is abandoned since the
// field's bytes cannot be located past it.
func DecodeMeasurement(buf []byte) Measurement {
	var m Measurement
	pos := 0
	for pos < len(buf) {
		var tag uint64
		tag, pos = wire.DecodeVarint(buf, pos)
		fieldNum, wt := wire.SplitTag(tag)
		switch {
		case fieldNum == FieldSourceID && wt == wire.TypeVarint:
			m.SourceID, pos = wire.DecodeVarint(buf, pos)
		case fieldNum == FieldDistanceValue && wt == wire.TypeFixed32:
			if pos+4 > len(buf) {
				m.Underrun = true
				return m
			}
			m.Distance = math.Float32frombits(binary.LittleEndian.Uint32(buf[pos:]))
			m.HasDistance = true
			pos += 4
		default:
			var ok bool
			pos, ok = wire.Skip(buf, pos, wt)
			if !ok {
				return m
			}
		}
	}
	return m
}
