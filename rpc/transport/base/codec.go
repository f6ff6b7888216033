package base

import (
	"bytes"
	"github.com/ValentinKolb/hlbridge/rpc/common"
	"io"
)

// Delimiter terminates every frame on the wire ('#', '\n', '#').
// Frame payloads are never escaped, so a payload must not contain it.
var Delimiter = []byte{0x23, 0x0A, 0x23}

// --------------------------------------------------------------------------
// Stateless helpers
// --------------------------------------------------------------------------

// Encode returns the wire form of a frame: payload followed by the delimiter.
// It does not check CanFrame, WriteFrame does.
func Encode(frame []byte) []byte {
	out := make([]byte, 0, len(frame)+len(Delimiter))
	out = append(out, frame...)
	return append(out, Delimiter...)
}

// Decode splits buffer at every delimiter occurrence, scanning left to right.
// A buffer with k delimiters yields exactly k frames. Bytes after the last
// delimiter are incomplete and returned as rest, never as a frame.
// The returned frames are copies and do not alias buffer.
func Decode(buffer []byte) (frames [][]byte, rest []byte) {
	for {
		idx := bytes.Index(buffer, Delimiter)
		if idx < 0 {
			break
		}
		frames = append(frames, bytes.Clone(buffer[:idx]))
		buffer = buffer[idx+len(Delimiter):]
	}
	return frames, bytes.Clone(buffer)
}

// CanFrame reports whether the payload survives a round trip as a single frame.
// This fails if the payload contains the delimiter, or ends with "#\n" which
// merges with the appended delimiter into an earlier match.
func CanFrame(frame []byte) bool {
	if bytes.Contains(frame, Delimiter) {
		return false
	}
	return !bytes.HasSuffix(frame, Delimiter[:2])
}

// WriteFrame writes the encoded frame with a single Write call, so a frame is
// never interleaved with other writes on the same stream. Payloads the receiver would split differently (see CanFrame) are rejected
// with a ProtocolError.
func WriteFrame(w io.Writer, frame []byte) error {
	if !CanFrame(frame) {
		return &common.ProtocolError{Reason: "frame payload collides with the delimiter"}
	}

	if _, err := w.Write(Encode(frame)); err != nil {
		return &common.TransportError{Op: "write", Err: err}
	}
	return nil
}

// --------------------------------------------------------------------------
// Stateful decoder
// --------------------------------------------------------------------------

// Decoder splits a byte stream that arrives in arbitrary chunks into frames.
// Bytes after the last delimiter of a chunk are retained and prefixed onto
// the next chunk, so a delimiter split across two reads is still recognized.
//
// A Decoder is not safe for concurrent use.
type Decoder struct {
	pending []byte
}

// Feed appends chunk to the retained bytes and returns all frames completed by it
func (d *Decoder) Feed(chunk []byte) [][]byte {
	if len(d.pending) == 0 {
		frames, rest := Decode(chunk)
		d.pending = rest
		return frames
	}

	buf := append(d.pending, chunk...)
	frames, rest := Decode(buf)
	d.pending = rest
	return frames
}

// Pending returns the number of retained bytes that do not form a complete frame yet
func (d *Decoder) Pending() int {
	return len(d.pending)
}

// Reset drops all retained bytes
func (d *Decoder) Reset() {
	d.pending = nil
}
