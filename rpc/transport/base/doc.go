// Package base provides the protocol-agnostic part of the frame transport: the frame
// codec, the inbound frame queue and the server and client transports that can be
// extended with protocol-specific connectors (TCP, Unix sockets).
//
// Wire format:
//
//	Every frame is its raw payload followed by the delimiter 0x23 0x0A 0x23 ("#\n#").
//	There is no length prefix and no escaping. A payload that contains the delimiter,
//	or ends with "#\n", cannot be transmitted (see CanFrame).
//
// Key Components:
//
//   - Encode/Decode: Stateless conversion between payloads and delimited bytes.
//     Decode returns exactly one frame per delimiter and hands back the undelimited
//     tail instead of dropping it.
//
//   - Decoder: Keeps the undelimited tail of a read and prefixes it onto the next one,
//     so a delimiter split by TCP segmentation is still recognized.
//
//   - FrameQueue: Turns "one read may yield zero, one or many frames" into a single
//     NextFrame operation delivering frames in wire order. End-of-stream with nothing
//     queued is reported as a common.TransportError.
//
//   - IClientConnector/IServerConnector: Interfaces for protocol-specific operations
//     that allow extending the base transport with different network protocols.
//
//   - serverTransport: Accepts one connection at a time and serves it to completion
//     on the accepting goroutine before the next Accept. There is never more than one
//     active session.
//
//   - clientTransport: Single connection with connect retries and optional deadlines.
//
// Thread Safety:
//
//	Decoder and FrameQueue are owned by a single session and use no locks. The client
//	transport serializes Send calls, Receive must only be called from one goroutine.
package base
