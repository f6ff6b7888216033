package base

import (
	"bytes"
	"errors"
	"github.com/ValentinKolb/hlbridge/rpc/common"
	"reflect"
	"testing"
)

// testPayloads are frame payloads that do not contain the delimiter
var testPayloads = [][]byte{
	{},
	[]byte("#**#INIT#**#"),
	[]byte("#"),
	[]byte("\n"),
	[]byte("\n#"),
	[]byte("#\n "),
	[]byte("##\n\n##"),
	{0x00, 0xff, 0x23, 0x0b, 0x23},
	bytes.Repeat([]byte("x"), 5000),
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for i, payload := range testPayloads {
		frames, rest := Decode(Encode(payload))
		if len(frames) != 1 {
			t.Errorf("payload %d: expected 1 frame, got %d", i, len(frames))
			continue
		}
		if !bytes.Equal(frames[0], payload) {
			t.Errorf("payload %d: got %q, want %q", i, frames[0], payload)
		}
		if len(rest) != 0 {
			t.Errorf("payload %d: unexpected rest %q", i, rest)
		}
	}
}

func TestDecode(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		frames []string
		rest   string
	}{
		{name: "empty", input: "", frames: nil, rest: ""},
		{name: "no delimiter", input: "abc", frames: nil, rest: "abc"},
		{name: "one frame", input: "abc#\n#", frames: []string{"abc"}, rest: ""},
		{name: "three frames", input: "A#\n#B#\n#C#\n#", frames: []string{"A", "B", "C"}, rest: ""},
		{name: "trailing bytes", input: "A#\n#B#\n#C", frames: []string{"A", "B"}, rest: "C"},
		{name: "partial delimiter", input: "A#\n#B#\n", frames: []string{"A"}, rest: "B#\n"},
		{name: "empty frames", input: "#\n##\n#", frames: []string{"", ""}, rest: ""},
		{name: "leading hash", input: "##\n#", frames: []string{"#"}, rest: ""},
		{name: "overlapping candidate", input: "#\n#\n#", frames: []string{""}, rest: "\n#"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			frames, rest := Decode([]byte(tc.input))
			got := make([]string, len(frames))
			for i, f := range frames {
				got[i] = string(f)
			}
			want := tc.frames
			if want == nil {
				want = []string{}
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("frames = %q, want %q", got, want)
			}
			if string(rest) != tc.rest {
				t.Errorf("rest = %q, want %q", rest, tc.rest)
			}
		})
	}
}

func TestDecodeDoesNotAlias(t *testing.T) {
	buf := []byte("abc#\n#def")
	frames, rest := Decode(buf)
	buf[0] = 'X'
	buf[len(buf)-1] = 'X'
	if string(frames[0]) != "abc" || string(rest) != "def" {
		t.Errorf("decoded data aliases the input buffer: %q %q", frames[0], rest)
	}
}

// TestDecoderSplitDelimiter feeds the stream byte by byte, so every delimiter is split across reads
func TestDecoderSplitDelimiter(t *testing.T) {
	var stream []byte
	for _, p := range testPayloads {
		stream = append(stream, Encode(p)...)
	}

	var d Decoder
	var frames [][]byte
	for i := range stream {
		frames = append(frames, d.Feed(stream[i:i+1])...)
	}

	if len(frames) != len(testPayloads) {
		t.Fatalf("expected %d frames, got %d", len(testPayloads), len(frames))
	}
	for i := range frames {
		if !bytes.Equal(frames[i], testPayloads[i]) {
			t.Errorf("frame %d: got %q, want %q", i, frames[i], testPayloads[i])
		}
	}
	if d.Pending() != 0 {
		t.Errorf("expected no pending bytes, got %d", d.Pending())
	}
}

// TestDecoderTrailingBytes checks that an undelimited tail is prefixed onto the next chunk
func TestDecoderTrailingBytes(t *testing.T) {
	var d Decoder

	frames := d.Feed([]byte("A#\n#B#\n#CC"))
	if len(frames) != 2 || string(frames[0]) != "A" || string(frames[1]) != "B" {
		t.Fatalf("unexpected frames %q", frames)
	}
	if d.Pending() != 2 {
		t.Fatalf("expected 2 pending bytes, got %d", d.Pending())
	}

	frames = d.Feed([]byte("C#"))
	if len(frames) != 0 {
		t.Fatalf("unexpected frames %q", frames)
	}

	frames = d.Feed([]byte("\n#D"))
	if len(frames) != 1 || string(frames[0]) != "CCC" {
		t.Fatalf("unexpected frames %q", frames)
	}
	if d.Pending() != 1 {
		t.Errorf("expected 1 pending byte, got %d", d.Pending())
	}

	d.Reset()
	if d.Pending() != 0 {
		t.Errorf("expected reset decoder to be empty")
	}
}

func TestCanFrame(t *testing.T) {
	for i, p := range testPayloads {
		if !CanFrame(p) {
			t.Errorf("payload %d should be framable", i)
		}
	}
	for _, p := range []string{"#\n#", "a#\n#b", "a#\n", "#\n"} {
		if CanFrame([]byte(p)) {
			t.Errorf("payload %q must not be framable", p)
		}
	}
}

func TestWriteFrame(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrame(&buf, []byte("#**#GETSOLUTION#**#")); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "#**#GETSOLUTION#**##\n#" {
		t.Errorf("unexpected wire bytes %q", buf.String())
	}
}

// countingWriter records every Write call separately
type countingWriter struct {
	writes [][]byte
}

func (c *countingWriter) Write(p []byte) (int, error) {
	c.writes = append(c.writes, bytes.Clone(p))
	return len(p), nil
}

func TestWriteFrameSingleWrite(t *testing.T) {
	for i, payload := range testPayloads {
		if !CanFrame(payload) {
			continue
		}
		w := &countingWriter{}
		if err := WriteFrame(w, payload); err != nil {
			t.Fatalf("payload %d: %v", i, err)
		}
		if len(w.writes) != 1 {
			t.Fatalf("payload %d: expected 1 write, got %d", i, len(w.writes))
		}
		if !bytes.Equal(w.writes[0], Encode(payload)) {
			t.Errorf("payload %d: wire bytes differ from Encode", i)
		}
	}
}

func TestWriteFrameRejectsDelimiter(t *testing.T) {
	var buf bytes.Buffer
	err := WriteFrame(&buf, []byte("a#\n#b"))
	var protocolErr *common.ProtocolError
	if !errors.As(err, &protocolErr) {
		t.Fatalf("expected ProtocolError, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("nothing must be written, got %q", buf.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestWriteFrameTransportError(t *testing.T) {
	err := WriteFrame(failingWriter{}, []byte("x"))
	var transportErr *common.TransportError
	if !errors.As(err, &transportErr) || transportErr.Op != "write" {
		t.Fatalf("expected write TransportError, got %v", err)
	}
}
