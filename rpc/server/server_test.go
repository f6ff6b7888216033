package server

import (
	"context"
	"errors"
	"github.com/ValentinKolb/hlbridge/lib/solver"
	"github.com/ValentinKolb/hlbridge/rpc/client"
	"github.com/ValentinKolb/hlbridge/rpc/common"
	"github.com/ValentinKolb/hlbridge/rpc/serializer"
	"github.com/ValentinKolb/hlbridge/rpc/transport"
	"github.com/ValentinKolb/hlbridge/rpc/transport/tcp"
	"github.com/ValentinKolb/hlbridge/rpc/transport/unix"
	"path/filepath"
	"testing"
	"time"
)

// testTransports is a map of transport name to server factory, client factory and endpoint
var testTransports = map[string]struct {
	server   func() transport.IRPCServerTransport
	client   func() transport.IRPCClientTransport
	endpoint func(t *testing.T) string
}{
	"TCP": {
		server:   tcp.NewTCPServerTransport,
		client:   tcp.NewTCPClientTransport,
		endpoint: func(t *testing.T) string { return "127.0.0.1:0" },
	},
	"Unix": {
		server:   unix.NewUnixServerTransport,
		client:   unix.NewUnixClientTransport,
		endpoint: func(t *testing.T) string { return filepath.Join(t.TempDir(), "hlbridge.sock") },
	},
}

// startServer binds a server and serves it in a separate goroutine
func startServer(t *testing.T, ctx context.Context, newTransport func() transport.IRPCServerTransport, endpoint string, maxSessions int) (*rpcServer, <-chan error) {
	t.Helper()

	config := testConfig()
	config.Transport.Endpoint = endpoint
	config.MaxSessions = maxSessions
	config.LogLevel = "warn"

	s := NewRPCServer(config, newTransport(), serializer.NewProtoSerializer(), solver.NewGeneticSolver())
	if err := s.Bind(); err != nil {
		t.Fatalf("Failed to bind server: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx) }()
	return s, done
}

func clientConfig(endpoint string) common.ClientConfig {
	return common.ClientConfig{
		TimeoutSecond: 5,
		Transport: common.ClientTransportConfig{
			Endpoint:      endpoint,
			FrameReadSize: common.DefaultReadBufferSize,
		},
	}
}

func waitServe(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve failed: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatalf("Server did not stop")
	}
}

// TestServerEndToEnd runs the three macro scenario of the placement tool against a real socket
func TestServerEndToEnd(t *testing.T) {
	for name, tt := range testTransports {
		t.Run(name, func(t *testing.T) {
			s, done := startServer(t, context.Background(), tt.server, tt.endpoint(t), 1)
			before := sessionsTotal.Get()

			c, err := client.NewPlacerClient(clientConfig(s.Addr().String()), tt.client(), serializer.NewProtoSerializer())
			if err != nil {
				t.Fatalf("Failed to connect: %v", err)
			}

			if err := c.TransmitProblem(testProblem()); err != nil {
				t.Fatalf("TransmitProblem failed: %v", err)
			}
			if err := c.SolveProblem(); err != nil {
				t.Fatalf("SolveProblem failed: %v", err)
			}
			solution, err := c.GetSolution()
			if err != nil {
				t.Fatalf("GetSolution failed: %v", err)
			}
			checkSolution(t, solution)

			if err := c.Disconnect(); err != nil {
				t.Fatalf("Disconnect failed: %v", err)
			}

			// the server stops after its single session
			waitServe(t, done)

			if got := sessionsTotal.Get() - before; got != 1 {
				t.Errorf("Expected 1 session, got %d", got)
			}
			if s.ActiveSessions() != 0 {
				t.Errorf("Expected no active sessions, got %d", s.ActiveSessions())
			}
		})
	}
}

// TestServerSequentialSessions checks that a failed session does not affect the next one
func TestServerSequentialSessions(t *testing.T) {
	s, done := startServer(t, context.Background(), tcp.NewTCPServerTransport, "127.0.0.1:0", 2)
	addr := s.Addr().String()
	protocolErrors := sessionErrors("protocol").Get()

	// first session: unknown control tag
	raw := tcp.NewTCPClientTransport()
	if err := raw.Connect(clientConfig(addr)); err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	if err := raw.Send([]byte("#**#SOLVE#**#")); err != nil {
		t.Fatalf("Failed to send: %v", err)
	}
	_, err := raw.Receive()
	var transportErr *common.TransportError
	if !errors.As(err, &transportErr) || !transportErr.IsEOF() {
		t.Fatalf("Expected the server to close the connection, got %v", err)
	}
	_ = raw.Close()

	// second session: regular cycle
	c, err := client.NewPlacerClient(clientConfig(addr), tcp.NewTCPClientTransport(), serializer.NewProtoSerializer())
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	if err := c.TransmitProblem(testProblem()); err != nil {
		t.Fatalf("TransmitProblem failed: %v", err)
	}
	solution, err := c.GetSolution()
	if err != nil {
		t.Fatalf("GetSolution failed: %v", err)
	}
	checkSolution(t, solution)
	if err := c.Disconnect(); err != nil {
		t.Fatalf("Disconnect failed: %v", err)
	}

	waitServe(t, done)

	if got := sessionErrors("protocol").Get() - protocolErrors; got != 1 {
		t.Errorf("Expected 1 protocol error, got %d", got)
	}
}

// TestServerCancel checks that canceling the context stops an idle server
func TestServerCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	_, done := startServer(t, ctx, tcp.NewTCPServerTransport, "127.0.0.1:0", 0)

	time.Sleep(50 * time.Millisecond)
	cancel()
	waitServe(t, done)
}

// TestServerCancelActiveSession checks that canceling the context ends a session blocked in a read
func TestServerCancelActiveSession(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s, done := startServer(t, ctx, tcp.NewTCPServerTransport, "127.0.0.1:0", 0)

	c, err := client.NewPlacerClient(clientConfig(s.Addr().String()), tcp.NewTCPClientTransport(), serializer.NewProtoSerializer())
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	if err := c.Configure(common.TagInit); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}

	// wait until the session is registered
	deadline := time.Now().Add(5 * time.Second)
	for s.ActiveSessions() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	waitServe(t, done)
	_ = c.Disconnect()
}
