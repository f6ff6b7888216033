// Package rpc provides the communication layer between a placement frontend and the
// placement backend. Both sides exchange delimiter framed messages over a byte stream,
// control tags select what the backend does next.
//
// The package is organized into several subpackages:
//
//   - common: Core data structures and utilities used across the system, including
//     the control tags, session states, error kinds, configuration structures and logging.
//
//   - transport: Network communication abstractions with pluggable implementations
//     (TCP, Unix sockets) on top of the shared frame codec.
//
//   - serializer: Circuit description serialization (protobuf wire format, JSON, GOB)
//     for the problem and solution payloads.
//
//   - client: The frontend side of the protocol, one method per protocol step.
//
//   - server: The session automaton, the problem handler and the server loop.
package rpc
