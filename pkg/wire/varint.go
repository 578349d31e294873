package wire

// WireType is the 3-bit payload encoding tag.
type WireType int

// Wire types used by the sensor schema. Values 3 and 4 (groups) and
// anything above 5 are unsupported and end field iteration for the
// containing message.
const (
	TypeVarint  WireType = 0
	TypeFixed64 WireType = 1
	TypeBytes   WireType = 2
	TypeFixed32 WireType = 5
)

// maxVarintShift caps the accumulating shift so malformed input cannot
// shift a uint64 out of range. Extra continuation bytes are still
// consumed, their payload bits discarded.
const maxVarintShift = 63

// DecodeVarint reads a base-128 varint from buf starting at pos and
// returns the value with the position after the last byte consumed.
// Running out of buffer mid-varint is not an error: the partial value
// accumulated so far is returned with pos == len(buf).
func DecodeVarint(buf []byte, pos int) (uint64, int) {
	var v uint64
	var shift uint
	for pos < len(buf) {
		b := buf[pos]
		pos++
		if shift <= maxVarintShift {
			v |= uint64(b&0x7f) << shift
		}
		shift += 7
		if b&0x80 == 0 {
			break
		}
	}
	return v, pos
}

// AppendVarint appends the varint encoding of v to buf.
func AppendVarint(buf []byte, v uint64) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}
	return append(buf, byte(v))
}

// SplitTag splits a decoded field tag into field number and wire type.
func SplitTag(tag uint64) (int, WireType) {
	return int(tag >> 3), WireType(tag & 7)
}

// Tag composes the field tag for fieldNum with wire type wt.
func Tag(fieldNum int, wt WireType) uint64 {
	return uint64(fieldNum)<<3 | uint64(wt)
}
