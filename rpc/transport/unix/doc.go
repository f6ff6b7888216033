// Package unix implements the frame transport using Unix domain sockets. It is meant
// for a placement frontend running on the same machine as the bridge.
//
// This package extends the base transport layer with Unix socket-specific connectors
// while inheriting the frame codec, the frame queue and the sequential session loop
// from the base package.
//
// Key Components:
//
//   - clientConnector: Establishes connections using Unix domain sockets
//
//   - serverConnector: Creates Unix socket listeners, replacing a stale socket file
//     left behind by a previous run
package unix
