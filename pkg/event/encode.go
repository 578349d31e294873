package event

import (
	"math"

	"github.com/golang/protobuf/proto"

	"github.com/obslite/obsmon/pkg/wire"
)

// Marshal functions build frames byte-identical to what the firmware
// emits. The real producer is the device; these exist for the feed
// generator and for tests.

// MarshalMeasurement encodes m as a DistanceMeasurement submessage.
// Field 2 is emitted only when HasDistance is set, so both the
// explicit-zero and missing-field shapes can be produced.
func MarshalMeasurement(m Measurement) []byte {
	b := proto.NewBuffer(nil)
	b.EncodeVarint(wire.Tag(FieldSourceID, wire.TypeVarint))
	b.EncodeVarint(m.SourceID)
	if m.HasDistance {
		b.EncodeVarint(wire.Tag(FieldDistanceValue, wire.TypeFixed32))
		b.EncodeFixed32(uint64(math.Float32bits(m.Distance)))
	}
	return b.Bytes()
}

// MarshalEvent encodes ev as one top-level Event frame. Unknown and
// Truncated are diagnostic outputs, not wire messages, and cannot be
// marshaled; they encode as an empty frame.
func MarshalEvent(ev Event) []byte {
	b := proto.NewBuffer(nil)
	switch e := ev.(type) {
	case Distance:
		b.EncodeVarint(wire.Tag(FieldDistance, wire.TypeBytes))
		b.EncodeRawBytes(MarshalMeasurement(e.Measurement))
	case Geolocation:
		b.EncodeVarint(wire.Tag(FieldGeolocation, wire.TypeBytes))
		b.EncodeRawBytes(nil)
	case UserInput:
		b.EncodeVarint(wire.Tag(FieldUserInput, wire.TypeBytes))
		b.EncodeRawBytes(nil)
	case TextMessage:
		b.EncodeVarint(wire.Tag(FieldTextMessage, wire.TypeBytes))
		b.EncodeRawBytes(e.Raw)
	}
	return b.Bytes()
}
