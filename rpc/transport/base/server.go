package base

import (
	"context"
	"errors"
	"fmt"
	"github.com/ValentinKolb/hlbridge/rpc/common"
	"github.com/ValentinKolb/hlbridge/rpc/transport"
	"net"
	"sync"
	"time"
)

// acceptRetryDelay throttles the accept loop after a failed Accept
const acceptRetryDelay = 50 * time.Millisecond

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// IServerConnector defines the interface for transport-specific server operations
type IServerConnector interface {
	// Listen creates a listener and returns it
	Listen(config common.ServerConfig) (net.Listener, error)

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string

	// UpgradeConnection applies protocol-specific settings to an accepted connection
	UpgradeConnection(conn net.Conn, config common.ServerConfig) error
}

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// serverTransport implements the core server transport functionality
type serverTransport struct {
	connector IServerConnector
	handler   transport.SessionHandleFunc
	config    common.ServerConfig

	mu       sync.Mutex
	listener net.Listener
}

// -----------------------------------------------------------
// Transport Factory Method (used for tcp, unix, etc.)
// -----------------------------------------------------------

// NewBaseServerTransport creates a new base server transport with the specified connector
func NewBaseServerTransport(connector IServerConnector) transport.IRPCServerTransport {
	return &serverTransport{
		connector: connector,
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCServerTransport)
// --------------------------------------------------------------------------

func (t *serverTransport) RegisterHandler(handler transport.SessionHandleFunc) {
	t.handler = handler
}

func (t *serverTransport) Bind(config common.ServerConfig) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.listener != nil {
		return fmt.Errorf("%s transport is already bound to %s", t.connector.GetName(), t.listener.Addr())
	}

	listener, err := t.connector.Listen(config)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}

	t.config = config
	t.listener = listener
	return nil
}

func (t *serverTransport) Addr() net.Addr {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.listener == nil {
		return nil
	}
	return t.listener.Addr()
}

func (t *serverTransport) Listen(ctx context.Context, config common.ServerConfig) error {
	if err := t.Bind(config); err != nil {
		return err
	}
	return t.Serve(ctx)
}

func (t *serverTransport) Serve(ctx context.Context) error {
	t.mu.Lock()
	listener := t.listener
	t.mu.Unlock()

	if listener == nil {
		return fmt.Errorf("%s transport is not bound", t.connector.GetName())
	}
	if t.handler == nil {
		return fmt.Errorf("no session handler registered")
	}
	defer t.Close()

	// Close the listener on cancellation, this unblocks Accept
	stop := context.AfterFunc(ctx, func() { _ = listener.Close() })
	defer stop()

	Logger.Infof("Starting %s server on %s", t.connector.GetName(), listener.Addr())

	// Sessions are served strictly one after another
	for served := 0; t.config.MaxSessions == 0 || served < t.config.MaxSessions; {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				Logger.Infof("Stopped accepting connections on %s", listener.Addr())
				return nil
			}
			Logger.Errorf("Accept error: %v", err)
			time.Sleep(acceptRetryDelay)
			continue
		}

		if err := t.connector.UpgradeConnection(conn, t.config); err != nil {
			Logger.Warningf("Failed to upgrade connection from %s: %v", conn.RemoteAddr(), err)
		}

		Logger.Infof("Accepted connection from %s", conn.RemoteAddr())
		start := time.Now()

		// Handle the connection on this goroutine, the next one is accepted afterward
		if err := t.handler(ctx, conn); err != nil {
			Logger.Errorf("Session with %s ended with error after %s: %v", conn.RemoteAddr(), time.Since(start), err)
		} else {
			Logger.Infof("Session with %s finished after %s", conn.RemoteAddr(), time.Since(start))
		}
		served++
	}

	Logger.Infof("Served %d session(s), shutting down %s server", t.config.MaxSessions, t.connector.GetName())
	return nil
}

func (t *serverTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.listener == nil {
		return nil
	}
	err := t.listener.Close()
	if errors.Is(err, net.ErrClosed) {
		err = nil
	}
	return err
}
