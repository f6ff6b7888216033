// Package transport defines the interfaces of the frame transport used between the
// placement tool and the backend. Frames are delimited by an in-band byte sequence
// (see the base package); the transport does not know anything about control tags.
//
// Key Components:
//
//   - IRPCServerTransport: Accepts connections sequentially and hands each one to
//     a SessionHandleFunc that serves it to completion.
//
//   - IRPCClientTransport: Connects to a backend and sends and receives single frames.
//
//   - SessionHandleFunc: Function type for the per-connection session callback.
package transport
