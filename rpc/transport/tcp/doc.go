// Package tcp implements the TCP socket based frame transport of the placement bridge.
// It provides concrete implementations of the base package's connector interfaces.
//
// The historical backend listens on port 1111 on all interfaces; set the endpoint to
// 127.0.0.1:1111 to accept local connections only.
//
// Key Components:
//
//   - clientConnector: TCP-specific implementation of base.IClientConnector
//
//   - serverConnector: TCP-specific implementation of base.IServerConnector
//
// Both apply the configured TCP options (no delay, keep-alive, linger) and socket
// buffer sizes to every connection.
package tcp
