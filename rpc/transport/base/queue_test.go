package base

import (
	"errors"
	"github.com/ValentinKolb/hlbridge/rpc/common"
	"io"
	"testing"
)

// chunkReader returns one predefined chunk per Read call, then the final error
type chunkReader struct {
	chunks [][]byte
	err    error
	reads  int
}

func (r *chunkReader) Read(p []byte) (int, error) {
	r.reads++
	if len(r.chunks) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		return 0, io.EOF
	}
	n := copy(p, r.chunks[0])
	if n < len(r.chunks[0]) {
		r.chunks[0] = r.chunks[0][n:]
	} else {
		r.chunks = r.chunks[1:]
	}
	return n, nil
}

func chunks(parts ...string) [][]byte {
	out := make([][]byte, len(parts))
	for i, p := range parts {
		out[i] = []byte(p)
	}
	return out
}

// TestFrameQueueOrder checks that frames of a single read are delivered in wire order
func TestFrameQueueOrder(t *testing.T) {
	r := &chunkReader{chunks: chunks("A#\n#B#\n#C#\n#")}
	q := NewFrameQueue(r, 2048)

	for _, want := range []string{"A", "B", "C"} {
		frame, err := q.NextFrame()
		if err != nil {
			t.Fatalf("NextFrame: %v", err)
		}
		if string(frame) != want {
			t.Errorf("got %q, want %q", frame, want)
		}
	}
	if r.reads != 1 {
		t.Errorf("expected a single read, got %d", r.reads)
	}
}

// TestFrameQueueSplitAcrossReads checks that incomplete trailing data is kept for the next read
func TestFrameQueueSplitAcrossReads(t *testing.T) {
	r := &chunkReader{chunks: chunks("#**#SETPRO", "BLEM#**##", "\n#pay", "load#\n", "##**#INIT#**##\n#")}
	q := NewFrameQueue(r, 2048)

	for _, want := range []string{"#**#SETPROBLEM#**#", "payload", "#**#INIT#**#"} {
		frame, err := q.NextFrame()
		if err != nil {
			t.Fatalf("NextFrame: %v", err)
		}
		if string(frame) != want {
			t.Errorf("got %q, want %q", frame, want)
		}
	}
}

// TestFrameQueueSmallReadBuffer forces a frame to span many reads
func TestFrameQueueSmallReadBuffer(t *testing.T) {
	r := &chunkReader{chunks: chunks("#**#GETSOLUTION#**##\n##**#TERMINATESERVER#**##\n#")}
	q := NewFrameQueue(r, 4)

	var sizes []int
	q.OnRead = func(n int) { sizes = append(sizes, n) }

	for _, want := range []string{"#**#GETSOLUTION#**#", "#**#TERMINATESERVER#**#"} {
		frame, err := q.NextFrame()
		if err != nil {
			t.Fatalf("NextFrame: %v", err)
		}
		if string(frame) != want {
			t.Errorf("got %q, want %q", frame, want)
		}
	}
	for _, n := range sizes {
		if n > 4 {
			t.Errorf("read of %d bytes exceeds the buffer", n)
		}
	}
}

func TestFrameQueueEOF(t *testing.T) {
	q := NewFrameQueue(&chunkReader{}, 2048)
	_, err := q.NextFrame()

	var transportErr *common.TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if !transportErr.IsEOF() || !errors.Is(err, io.EOF) {
		t.Errorf("expected EOF cause, got %v", transportErr.Err)
	}
}

func TestFrameQueueEOFWithIncompleteFrame(t *testing.T) {
	q := NewFrameQueue(&chunkReader{chunks: chunks("A#\n#trailing")}, 2048)

	frame, err := q.NextFrame()
	if err != nil || string(frame) != "A" {
		t.Fatalf("expected frame A, got %q, %v", frame, err)
	}
	if q.Pending() != len("trailing") {
		t.Errorf("expected %d pending bytes, got %d", len("trailing"), q.Pending())
	}

	_, err = q.NextFrame()
	var transportErr *common.TransportError
	if !errors.As(err, &transportErr) || !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected unexpected EOF TransportError, got %v", err)
	}
}

func TestFrameQueueReadError(t *testing.T) {
	boom := errors.New("connection reset")
	q := NewFrameQueue(&chunkReader{err: boom}, 2048)
	_, err := q.NextFrame()
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped read error, got %v", err)
	}
}

// TestFrameQueueDeliversBeforeError checks frames completed by a failing read are not lost
func TestFrameQueueDeliversBeforeError(t *testing.T) {
	q := NewFrameQueue(&frameThenEOFReader{data: []byte("A#\n#B#\n#")}, 2048)
	for _, want := range []string{"A", "B"} {
		frame, err := q.NextFrame()
		if err != nil {
			t.Fatalf("NextFrame: %v", err)
		}
		if string(frame) != want {
			t.Errorf("got %q, want %q", frame, want)
		}
	}
	if q.Buffered() != 0 {
		t.Errorf("expected empty queue, got %d", q.Buffered())
	}
	if _, err := q.NextFrame(); !errors.Is(err, io.EOF) {
		t.Errorf("expected EOF, got %v", err)
	}
}

// frameThenEOFReader returns data together with io.EOF in a single call
type frameThenEOFReader struct {
	data []byte
	done bool
}

func (r *frameThenEOFReader) Read(p []byte) (int, error) {
	if r.done {
		return 0, io.EOF
	}
	r.done = true
	return copy(p, r.data), io.EOF
}

// TestFrameQueueKeepsErrorAfterFrames checks that a read error arriving with
// complete frames is reported once those frames are drained
func TestFrameQueueKeepsErrorAfterFrames(t *testing.T) {
	reset := errors.New("connection reset")
	r := &frameThenErrorReader{data: []byte("A#\n#B#\n#"), err: reset}
	q := NewFrameQueue(r, 2048)

	for _, want := range []string{"A", "B"} {
		frame, err := q.NextFrame()
		if err != nil {
			t.Fatalf("NextFrame: %v", err)
		}
		if string(frame) != want {
			t.Errorf("got %q, want %q", frame, want)
		}
	}

	for i := 0; i < 2; i++ {
		_, err := q.NextFrame()
		var transportErr *common.TransportError
		if !errors.As(err, &transportErr) || !errors.Is(err, reset) {
			t.Fatalf("call %d: expected stored read error, got %v", i, err)
		}
	}
	if r.reads != 1 {
		t.Errorf("expected a single read, got %d", r.reads)
	}
}

// frameThenErrorReader returns data together with err in the first call and
// data only afterwards, so a dropped error would go unnoticed
type frameThenErrorReader struct {
	data  []byte
	err   error
	reads int
}

func (r *frameThenErrorReader) Read(p []byte) (int, error) {
	r.reads++
	if r.reads == 1 {
		return copy(p, r.data), r.err
	}
	return copy(p, "C#\n#"), nil
}
