package base

import (
	"errors"
	"fmt"
	"github.com/ValentinKolb/hlbridge/rpc/common"
	"io"
)

// FrameQueue presents a single "read next frame" operation on top of a stream
// where one read may yield zero, one or many frames. Frames are delivered in
// wire order.
//
// A FrameQueue is owned by exactly one session and is not safe for concurrent use.
type FrameQueue struct {
	r       io.Reader
	decoder Decoder
	frames  [][]byte
	buf     []byte
	err     error // sticky, reported once the queued frames are drained

	// OnRead is called with the size of every successful read (optional)
	OnRead func(n int)
}

// NewFrameQueue creates a queue reading at most readSize bytes per read
func NewFrameQueue(r io.Reader, readSize int) *FrameQueue {
	if readSize < len(Delimiter) {
		readSize = common.DefaultReadBufferSize
	}
	return &FrameQueue{
		r:   r,
		buf: make([]byte, readSize),
	}
}

// NextFrame returns the oldest undelivered frame. If none is queued, it performs
// blocking reads until at least one frame is complete. A failed read or an
// end-of-stream with no queued frame results in a *common.TransportError.
// Frames completed by a failing read are delivered before the error, and once
// reported the error is returned by every later call.
func (q *FrameQueue) NextFrame() ([]byte, error) {
	for len(q.frames) == 0 {
		if q.err != nil {
			return nil, q.readError()
		}

		n, err := q.r.Read(q.buf)
		if n > 0 {
			if q.OnRead != nil {
				q.OnRead(n)
			}
			q.frames = append(q.frames, q.decoder.Feed(q.buf[:n])...)
		}
		if err != nil {
			q.err = err
		}
	}

	frame := q.frames[0]
	q.frames[0] = nil
	q.frames = q.frames[1:]
	return frame, nil
}

func (q *FrameQueue) readError() error {
	err := q.err
	if errors.Is(err, io.EOF) && q.decoder.Pending() > 0 {
		err = fmt.Errorf("%w (%d bytes of an incomplete frame discarded)", io.ErrUnexpectedEOF, q.decoder.Pending())
	}
	return &common.TransportError{Op: "read", Err: err}
}

// Buffered returns the number of decoded frames waiting to be delivered
func (q *FrameQueue) Buffered() int {
	return len(q.frames)
}

// Pending returns the number of bytes of an incomplete frame
func (q *FrameQueue) Pending() int {
	return q.decoder.Pending()
}
