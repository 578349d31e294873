package event

import (
	"github.com/obslite/obsmon/pkg/wire"
)

// Decode decodes one frame into exactly one Event; it never returns
// nil. The first recognized field wins the frame: later known fields
// are consumed but not reprocessed, matching the firmware's
// one-event-per-frame behavior. An unrecognized field number becomes
// the Unknown fallback label only while no recognized field has been
// seen.
//
// Truncation is unrecoverable mid-message: a length-delimited field
// declaring more bytes than remain stops decoding immediately and the
// whole frame is reported as Truncated.
func Decode(frame []byte) Event {
	var ev Event
	var recognized bool
	pos := 0
	for pos < len(frame) {
		var tag uint64
		tag, pos = wire.DecodeVarint(frame, pos)
		fieldNum, wt := wire.SplitTag(tag)
		if wt != wire.TypeBytes {
			var ok bool
			pos, ok = wire.Skip(frame, pos, wt)
			if !ok {
				break
			}
			continue
		}
		var length uint64
		length, pos = wire.DecodeVarint(frame, pos)
		if length > uint64(len(frame)-pos) {
			return Truncated{
				FieldNum:  fieldNum,
				Expected:  int(length),
				Available: len(frame) - pos,
				Frame:     frame,
			}
		}
		data := frame[pos : pos+int(length)]
		pos += int(length)
		switch fieldNum {
		case FieldDistance:
			if !recognized {
				ev, recognized = Distance{Measurement: DecodeMeasurement(data), Raw: data}, true
			}
		case FieldGeolocation:
			if !recognized {
				ev, recognized = Geolocation{}, true
			}
		case FieldUserInput:
			if !recognized {
				ev, recognized = UserInput{}, true
			}
		case FieldTextMessage:
			if !recognized {
				ev, recognized = TextMessage{Raw: data}, true
			}
		case FieldTime:
			// timestamp, not an event by itself
		default:
			if ev == nil {
				ev = Unknown{FieldNum: fieldNum, FrameLen: len(frame)}
			}
		}
	}
	if ev == nil {
		ev = Unknown{FrameLen: len(frame)}
	}
	return ev
}
