package transport

import (
	"context"
	"github.com/ValentinKolb/hlbridge/rpc/common"
	"net"
)

// --------------------------------------------------------------------------
// Server Transport
// --------------------------------------------------------------------------

// SessionHandleFunc serves one accepted connection to completion.
// It owns the connection and must close it before returning.
type SessionHandleFunc func(ctx context.Context, conn net.Conn) error

// IRPCServerTransport is the interface for the server side of the frame transport
type IRPCServerTransport interface {
	// RegisterHandler registers the handler that is called for every accepted connection
	RegisterHandler(handler SessionHandleFunc)
	// Bind creates the listener without accepting connections yet
	Bind(config common.ServerConfig) error
	// Addr returns the bound address (nil before Bind)
	Addr() net.Addr
	// Serve accepts connections one at a time and runs the handler for each of them
	// on the calling goroutine. It returns once the configured number of sessions was
	// served or the context is canceled.
	Serve(ctx context.Context) error
	// Listen is Bind followed by Serve
	Listen(ctx context.Context, config common.ServerConfig) error
	// Close closes the listener
	Close() error
}

// --------------------------------------------------------------------------
// Client Transport
// --------------------------------------------------------------------------

// IRPCClientTransport is the interface for the client side of the frame transport
type IRPCClientTransport interface {
	// Connect establishes the connection, retrying as configured
	Connect(config common.ClientConfig) error
	// Send writes one frame
	Send(frame []byte) error
	// Receive returns the next frame sent by the server
	Receive() ([]byte, error)
	// Close closes the transport connection
	Close() error
}
