package stream

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/obslite/obsmon/pkg/cobs"
)

func encodedFrame(payload []byte) []byte {
	return append(cobs.Encode(payload), cobs.Delimiter)
}

func TestDeframerSingleFrame(t *testing.T) {
	var d Deframer
	frames, dropped := d.Feed(encodedFrame([]byte{0x11, 0x00, 0x22}))
	require.Zero(t, dropped)
	require.Equal(t, [][]byte{{0x11, 0x00, 0x22}}, frames)
	require.Zero(t, d.Pending())
}

func TestDeframerSplitAcrossReads(t *testing.T) {
	var d Deframer
	raw := encodedFrame([]byte{1, 2, 3, 4, 5})

	frames, dropped := d.Feed(raw[:2])
	require.Zero(t, dropped)
	require.Empty(t, frames)
	require.Equal(t, 2, d.Pending())

	frames, dropped = d.Feed(raw[2:])
	require.Zero(t, dropped)
	require.Equal(t, [][]byte{{1, 2, 3, 4, 5}}, frames)
}

func TestDeframerMultipleFramesOneRead(t *testing.T) {
	var d Deframer
	raw := append(encodedFrame([]byte{1}), encodedFrame([]byte{2, 0, 2})...)
	frames, dropped := d.Feed(raw)
	require.Zero(t, dropped)
	require.Equal(t, [][]byte{{1}, {2, 0, 2}}, frames)
}

func TestDeframerDiscardsEmptyFrames(t *testing.T) {
	var d Deframer
	raw := []byte{cobs.Delimiter, cobs.Delimiter}
	raw = append(raw, encodedFrame([]byte{7})...)
	raw = append(raw, cobs.Delimiter)

	frames, dropped := d.Feed(raw)
	require.Zero(t, dropped)
	require.Equal(t, [][]byte{{7}}, frames, "empty frames must not decode to events")
}

func TestDeframerDropsMalformedFrame(t *testing.T) {
	var d Deframer
	// code byte declares a longer run than the frame holds
	raw := []byte{0x09, 0x11, 0x22, cobs.Delimiter}
	raw = append(raw, encodedFrame([]byte{9})...)

	frames, dropped := d.Feed(raw)
	require.Equal(t, 1, dropped)
	require.Equal(t, [][]byte{{9}}, frames, "stream continues after a bad frame")
}

func TestDeframerTrailingBytesStayBuffered(t *testing.T) {
	var d Deframer
	raw := append(encodedFrame([]byte{1}), 0x05, 0x06)
	frames, _ := d.Feed(raw)
	require.Len(t, frames, 1)
	require.Equal(t, 2, d.Pending())
}
