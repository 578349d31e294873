package wire

// Skip advances pos past a field payload of wire type wt without
// interpreting it. ok is false for an unsupported wire type: the
// caller must end the field loop for the containing message, keeping
// the fields it already parsed.
//
// A length-delimited payload whose declared length exceeds the
// remaining buffer clamps to the buffer end; the caller's loop then
// terminates naturally. Fixed-size payloads may likewise push pos past
// len(buf).
func Skip(buf []byte, pos int, wt WireType) (newPos int, ok bool) {
	switch wt {
	case TypeVarint:
		_, pos = DecodeVarint(buf, pos)
	case TypeFixed64:
		pos += 8
	case TypeBytes:
		var n uint64
		n, pos = DecodeVarint(buf, pos)
		if n > uint64(len(buf)-pos) {
			return len(buf), true
		}
		pos += int(n)
	case TypeFixed32:
		pos += 4
	default:
		return pos, false
	}
	return pos, true
}
