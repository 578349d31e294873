// Package stream turns the sensor's continuous serial byte stream into
// decoded frames.
package stream

import (
	"bytes"
	"context"

	"github.com/obslite/obsmon/pkg/cobs"
)

// FrameHandler is called once per decoded frame.
type FrameHandler interface {
	HandleFrame(context.Context, []byte)
}

// HandleFrameFunc is func type of FrameHandler.
type HandleFrameFunc func(context.Context, []byte)

// HandleFrame implements FrameHandler.
func (f HandleFrameFunc) HandleFrame(ctx context.Context, frame []byte) {
	f(ctx, frame)
}

// Deframer accumulates raw serial bytes and extracts COBS frames
// bounded by the zero delimiter. It is owned by exactly one reader;
// no locking.
type Deframer struct {
	buf []byte
}

// Feed appends a raw chunk and returns the decoded payload of every
// complete frame found, in order, plus the count of frames dropped for
// failing COBS decoding. An empty frame (two consecutive delimiters)
// is discarded without decoding and without counting as dropped. Bytes
// after the last delimiter stay buffered for the next Feed.
func (d *Deframer) Feed(chunk []byte) (frames [][]byte, dropped int) {
	d.buf = append(d.buf, chunk...)
	for {
		i := bytes.IndexByte(d.buf, cobs.Delimiter)
		if i < 0 {
			return
		}
		frame := d.buf[:i]
		d.buf = d.buf[i+1:]
		if len(frame) == 0 {
			continue
		}
		payload, err := cobs.Decode(frame)
		if err != nil {
			dropped++
			continue
		}
		frames = append(frames, payload)
	}
}

// Pending reports how many bytes of an incomplete frame are buffered.
func (d *Deframer) Pending() int {
	return len(d.buf)
}
