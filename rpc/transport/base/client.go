package base

import (
	"fmt"
	"github.com/ValentinKolb/hlbridge/rpc/common"
	"github.com/ValentinKolb/hlbridge/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
	"net"
	"sync"
	"time"
)

var Logger = logger.GetLogger("transport/rpc")

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// IClientConnector defines the interface for transport-specific connection operations
type IClientConnector interface {
	// Connect establishes a single connection to the endpoint
	Connect(endpoint string) (net.Conn, error)

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string

	// UpgradeConnection applies protocol-specific settings to an established connection
	UpgradeConnection(conn net.Conn, config common.ClientConfig) error
}

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// clientTransport implements the core client transport functionality
// independent of the specific transport medium (unix, tcp, etc.)
type clientTransport struct {
	connector IClientConnector
	config    common.ClientConfig

	mu    sync.Mutex // Serializes writes and protects conn
	conn  net.Conn
	queue *FrameQueue
}

// -----------------------------------------------------------
// Transport Factory Method (used for tcp, unix, etc.)
// -----------------------------------------------------------

// NewBaseClientTransport creates a new base client transport with the specified connector
func NewBaseClientTransport(connector IClientConnector) transport.IRPCClientTransport {
	return &clientTransport{
		connector: connector,
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCClientTransport)
// --------------------------------------------------------------------------

func (t *clientTransport) Connect(config common.ClientConfig) error {
	if config.Transport.Endpoint == "" {
		return fmt.Errorf("no endpoint provided")
	}

	t.config = config
	_ = t.Close()

	// We always try at least once
	attempts := config.Transport.RetryCount + 1
	interval := time.Duration(config.Transport.RetryIntervalSecond) * time.Second

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			Logger.Infof("Retrying connection to %s in %s (attempt %d/%d)", config.Transport.Endpoint, interval, i+1, attempts)
			time.Sleep(interval)
		}

		conn, err := t.connector.Connect(config.Transport.Endpoint)
		if err != nil {
			lastErr = err
			Logger.Warningf("Failed to connect to %s: %v", config.Transport.Endpoint, err)
			continue
		}

		// Upgrade the connection with protocol-specific settings
		if err := t.connector.UpgradeConnection(conn, config); err != nil {
			_ = conn.Close()
			lastErr = err
			Logger.Warningf("Failed to upgrade connection to %s: %v", config.Transport.Endpoint, err)
			continue
		}

		t.mu.Lock()
		t.conn = conn
		t.queue = NewFrameQueue(conn, config.Transport.FrameReadSize)
		t.mu.Unlock()

		Logger.Infof("Connected to %s using %s transport", config.Transport.Endpoint, t.connector.GetName())
		return nil
	}

	return &common.TransportError{
		Op:  "connect",
		Err: fmt.Errorf("failed to connect to %s after %d attempts: %w", config.Transport.Endpoint, attempts, lastErr),
	}
}

func (t *clientTransport) Send(frame []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn == nil {
		return &common.TransportError{Op: "write", Err: net.ErrClosed}
	}

	if t.config.TimeoutSecond > 0 {
		timeout := time.Duration(t.config.TimeoutSecond) * time.Second
		if err := t.conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
			return &common.TransportError{Op: "write", Err: err}
		}
	}

	Logger.Debugf("Sending frame of %d bytes", len(frame))
	return WriteFrame(t.conn, frame)
}

func (t *clientTransport) Receive() ([]byte, error) {
	t.mu.Lock()
	conn, queue := t.conn, t.queue
	t.mu.Unlock()

	if conn == nil {
		return nil, &common.TransportError{Op: "read", Err: net.ErrClosed}
	}

	if t.config.TimeoutSecond > 0 {
		timeout := time.Duration(t.config.TimeoutSecond) * time.Second
		if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
			return nil, &common.TransportError{Op: "read", Err: err}
		}
	}

	frame, err := queue.NextFrame()
	if err != nil {
		return nil, err
	}
	Logger.Debugf("Received frame of %d bytes", len(frame))
	return frame, nil
}

func (t *clientTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	t.queue = nil
	return err
}
