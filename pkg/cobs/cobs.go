// Package cobs implements Consistent Overhead Byte Stuffing as used on
// the sensor's USB serial link (PacketSerial compatible framing).
package cobs

import "errors"

// Delimiter is the reserved frame boundary byte. It never appears
// inside a well-formed encoded frame.
const Delimiter byte = 0x00

// maxCode is the largest run code: 0xff announces 254 literal bytes
// with no implied zero after them.
const maxCode byte = 0xff

// ErrTruncated indicates an encoded frame ended in the middle of a run.
var ErrTruncated = errors.New("cobs: truncated frame")

// Decode unstuffs one delimiter-free encoded frame into its payload.
// A zero code byte ends decoding at that point, keeping the output
// produced so far. The single trailing zero some encoders emit for the
// frame delimiter is stripped. Decode never panics on malformed input;
// on ErrTruncated the caller drops the frame and carries on.
func Decode(frame []byte) ([]byte, error) {
	out := make([]byte, 0, len(frame))
	i := 0
	for i < len(frame) {
		code := frame[i]
		if code == 0 {
			break
		}
		i++
		run := int(code) - 1
		if i+run > len(frame) {
			return nil, ErrTruncated
		}
		out = append(out, frame[i:i+run]...)
		i += run
		if code < maxCode && i < len(frame) {
			out = append(out, 0)
		}
	}
	if n := len(out); n > 0 && out[n-1] == 0 {
		out = out[:n-1]
	}
	return out, nil
}

// Encode stuffs payload so the result contains no Delimiter bytes.
// The frame delimiter itself is not appended; the transport writes it
// after the encoded frame. A payload ending in a zero byte gets an
// extra empty run so the peer's trailing-zero cleanup cannot eat it.
func Encode(payload []byte) []byte {
	out := make([]byte, 1, len(payload)+2+len(payload)/254)
	code, codeAt := byte(1), 0
	for _, b := range payload {
		if b == Delimiter {
			out[codeAt] = code
			code, codeAt = 1, len(out)
			out = append(out, 0)
			continue
		}
		out = append(out, b)
		if code++; code == maxCode {
			out[codeAt] = code
			code, codeAt = 1, len(out)
			out = append(out, 0)
		}
	}
	out[codeAt] = code
	if n := len(payload); n > 0 && payload[n-1] == Delimiter {
		out = append(out, 1)
	}
	return out
}
