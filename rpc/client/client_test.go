package client

import (
	"errors"
	"github.com/ValentinKolb/hlbridge/lib/circuit"
	"github.com/ValentinKolb/hlbridge/rpc/common"
	"github.com/ValentinKolb/hlbridge/rpc/serializer"
	"testing"
)

// recordingTransport records sent frames and replays queued responses
type recordingTransport struct {
	sent      [][]byte
	responses [][]byte
	sendErr   error
	connected bool
	closed    bool
}

func (r *recordingTransport) Connect(config common.ClientConfig) error {
	r.connected = true
	return nil
}

func (r *recordingTransport) Send(frame []byte) error {
	if r.sendErr != nil {
		return r.sendErr
	}
	r.sent = append(r.sent, frame)
	return nil
}

func (r *recordingTransport) Receive() ([]byte, error) {
	if len(r.responses) == 0 {
		return nil, &common.TransportError{Op: "read", Err: errors.New("no response queued")}
	}
	resp := r.responses[0]
	r.responses = r.responses[1:]
	return resp, nil
}

func (r *recordingTransport) Close() error {
	r.closed = true
	return nil
}

func (r *recordingTransport) sentStrings() []string {
	out := make([]string, len(r.sent))
	for i, frame := range r.sent {
		out[i] = string(frame)
	}
	return out
}

func newTestClient(t *testing.T, tr *recordingTransport) IPlacerClient {
	t.Helper()
	c, err := NewPlacerClient(common.ClientConfig{}, tr, serializer.NewProtoSerializer())
	if err != nil {
		t.Fatalf("NewPlacerClient failed: %v", err)
	}
	if !tr.connected {
		t.Fatalf("Transport was not connected")
	}
	return c
}

func expectFrames(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Expected frames %q, got %q", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Frame %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func testProblem() *circuit.Description {
	desc := circuit.New()
	desc.AddMacro(circuit.Macro{ID: "m1", Width: 400, Height: 200})
	desc.AddMacro(circuit.Macro{ID: "m2", Width: 600, Height: 400})
	return desc
}

func TestTransmitProblem(t *testing.T) {
	tr := &recordingTransport{}
	c := newTestClient(t, tr)

	if err := c.TransmitProblem(testProblem()); err != nil {
		t.Fatalf("TransmitProblem failed: %v", err)
	}

	payload, _ := serializer.NewProtoSerializer().Serialize(testProblem())
	expectFrames(t, tr.sentStrings(),
		"#**#SETPROBLEM#**#",
		string(payload),
		"#**#INIT#**#",
	)
}

func TestSolveProblem(t *testing.T) {
	tr := &recordingTransport{}
	c := newTestClient(t, tr)

	if err := c.SolveProblem(); err != nil {
		t.Fatalf("SolveProblem failed: %v", err)
	}
	expectFrames(t, tr.sentStrings(), "#**#SOLVEPROBLEM#**#", "#**#INIT#**#")
}

func TestGetSolution(t *testing.T) {
	solution := testProblem()
	solution.PlaceAll(42, 42)
	solution.SetBounds(100, 100)
	payload, err := serializer.NewProtoSerializer().Serialize(solution)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	tr := &recordingTransport{responses: [][]byte{payload}}
	c := newTestClient(t, tr)

	got, err := c.GetSolution()
	if err != nil {
		t.Fatalf("GetSolution failed: %v", err)
	}
	expectFrames(t, tr.sentStrings(), "#**#GETSOLUTION#**#", "#**#INIT#**#")

	if got.Len() != 2 || got.Macros[1].X != 42 || got.Layout.UY != 100 {
		t.Errorf("Unexpected solution: %+v", got)
	}
}

func TestGetSolutionInvalidPayload(t *testing.T) {
	tr := &recordingTransport{responses: [][]byte{{0xff}}}
	c := newTestClient(t, tr)

	_, err := c.GetSolution()
	var schemaErr *common.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Expected schema error, got %v", err)
	}
}

func TestGetSolutionNoResponse(t *testing.T) {
	tr := &recordingTransport{}
	c := newTestClient(t, tr)

	_, err := c.GetSolution()
	var transportErr *common.TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("Expected transport error, got %v", err)
	}
	// INIT is not sent after a failed receive
	expectFrames(t, tr.sentStrings(), "#**#GETSOLUTION#**#")
}

func TestConfigureAndDisconnect(t *testing.T) {
	tr := &recordingTransport{}
	c := newTestClient(t, tr)

	if err := c.Configure(common.TagSolveProblem); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}
	if err := c.Disconnect(); err != nil {
		t.Fatalf("Disconnect failed: %v", err)
	}

	expectFrames(t, tr.sentStrings(), "#**#SOLVEPROBLEM#**#", "#**#TERMINATESERVER#**#")
	if !tr.closed {
		t.Errorf("Transport was not closed")
	}
}

func TestDisconnectClosesOnSendError(t *testing.T) {
	sendErr := &common.TransportError{Op: "write", Err: errors.New("broken pipe")}
	tr := &recordingTransport{sendErr: sendErr}
	c := newTestClient(t, tr)

	if err := c.Disconnect(); !errors.Is(err, sendErr) {
		t.Fatalf("Expected send error, got %v", err)
	}
	if !tr.closed {
		t.Errorf("Transport was not closed")
	}
}
