// Package common provides core data structures and utilities shared across
// the placement bridge. It defines the protocol vocabulary, configuration
// structures and the error kinds used by the other packages.
//
// The package focuses on:
//   - Control tags and session states of the backend protocol
//   - Configuration structures for client and server components
//   - Typed, fatal session errors (transport, protocol, schema)
//   - Custom logging implementation plugged into the dragonboat logger registry
//
// Key Components:
//
//   - ControlTag: The five sentinels (INIT, SET_PROBLEM, SOLVE_PROBLEM, GET_SOLUTION,
//     TERMINATE) sent as a whole frame. ResolveTag maps a frame to a tag and
//     ControlTag.State names the session state a tag moves the session to.
//
//   - SessionState: Init, AwaitProblem, Solving, CollectingSolution and the sole
//     terminal state Terminated.
//
//   - TransportError, ProtocolError, SchemaError: The error kinds a session can
//     fail with. All of them end the session, the protocol has no error frame.
//
//   - ServerConfig / ClientConfig: Configuration of the backend and of the placer
//     client, including socket options and solver parameters.
//
//   - Logger: Custom logging implementation that integrates with dragonboat's
//     logger registry while providing consistent formatting across the application.
package common
