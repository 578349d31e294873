package stream

import (
	"context"
	"io"

	"github.com/golang/glog"
)

// DefaultChunkSize is the read size used when Reader.ChunkSize is
// unset. It matches the sensor's serial throughput well enough that
// one read rarely spans more than a few frames.
const DefaultChunkSize = 256

// Reader pumps a serial byte stream through a Deframer and hands each
// decoded frame to a handler. The handler and the deframer run on the
// Run goroutine only, so decoding needs no locking; cancellation is
// honored between frames and never corrupts buffered state.
type Reader struct {
	Source    io.Reader
	Handler   FrameHandler
	OnDropped func(count int)
	ChunkSize int

	deframer Deframer
}

// NewReader creates a Reader over a raw byte source.
func NewReader(source io.Reader, handler FrameHandler) *Reader {
	return &Reader{Source: source, Handler: handler, ChunkSize: DefaultChunkSize}
}

// Run reads until ctx is canceled or the source fails. A clean EOF is
// not an error: the stream simply ended.
func (r *Reader) Run(ctx context.Context) error {
	chunkCh, errCh := make(chan []byte), make(chan error, 1)
	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go r.readLoop(subCtx, chunkCh, errCh)
	for {
		select {
		case chunk := <-chunkCh:
			frames, dropped := r.deframer.Feed(chunk)
			if dropped > 0 {
				glog.Warningf("dropped %d undecodable frame(s)", dropped)
				if r.OnDropped != nil {
					r.OnDropped(dropped)
				}
			}
			for _, frame := range frames {
				r.Handler.HandleFrame(ctx, frame)
			}
		case err := <-errCh:
			if err == io.EOF {
				return nil
			}
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (r *Reader) readLoop(ctx context.Context, chunkCh chan []byte, errCh chan error) {
	size := r.ChunkSize
	if size <= 0 {
		size = DefaultChunkSize
	}
	buf := make([]byte, size)
	for {
		select {
		case <-ctx.Done():
			return
		default:
			n, err := r.Source.Read(buf)
			if n > 0 {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				select {
				case chunkCh <- chunk:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				errCh <- err
				return
			}
		}
	}
}
