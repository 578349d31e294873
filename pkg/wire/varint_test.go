package wire

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVarintRoundTrip(t *testing.T) {
	values := []uint64{
		0, 1, 0x7f, 0x80, 150, 300, 0x3fff, 0x4000,
		1<<32 - 1, 1 << 32, math.MaxUint64,
	}
	for _, v := range values {
		enc := AppendVarint(nil, v)
		got, pos := DecodeVarint(enc, 0)
		require.Equal(t, v, got, "value %d", v)
		require.Equal(t, len(enc), pos, "value %d", v)
	}
}

func TestVarintDecodeOffset(t *testing.T) {
	buf := append([]byte{0xde, 0xad}, AppendVarint(nil, 300)...)
	v, pos := DecodeVarint(buf, 2)
	require.Equal(t, uint64(300), v)
	require.Equal(t, len(buf), pos)
}

func TestVarintTruncatedReturnsPartial(t *testing.T) {
	// continuation bit set on the last byte: partial value, no error
	v, pos := DecodeVarint([]byte{0x96}, 0)
	require.Equal(t, uint64(0x16), v)
	require.Equal(t, 1, pos)

	v, pos = DecodeVarint(nil, 0)
	require.Equal(t, uint64(0), v)
	require.Equal(t, 0, pos)
}

func TestVarintShiftCapped(t *testing.T) {
	// 20 continuation bytes must not panic or shift out of range;
	// every byte is still consumed
	buf := make([]byte, 20)
	for i := range buf {
		buf[i] = 0xff
	}
	buf = append(buf, 0x01)
	_, pos := DecodeVarint(buf, 0)
	require.Equal(t, len(buf), pos)
}

func TestTagSplit(t *testing.T) {
	fieldNum, wt := SplitTag(Tag(10, TypeBytes))
	require.Equal(t, 10, fieldNum)
	require.Equal(t, TypeBytes, wt)

	fieldNum, wt = SplitTag(Tag(2, TypeFixed32))
	require.Equal(t, 2, fieldNum)
	require.Equal(t, TypeFixed32, wt)
}
