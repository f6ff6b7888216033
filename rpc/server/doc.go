// Package server implements the placement backend: the session automaton that is driven
// by control tags, the circuit problem handler and the server that feeds accepted
// connections into sessions.
//
// The package focuses on:
//   - Driving one session per connection through the states Init, AwaitProblem,
//     Solving, CollectingSolution and Terminated
//   - Decoding the problem, running the solver and encoding the solution
//   - Exporting process metrics and summarizing per-session statistics
//
// Key Components:
//
//   - Session: The automaton. On entering a state it performs that state's action,
//     afterwards the next frame must be a control tag naming the next state. Any tag is
//     accepted in any state. The problem payload following SETPROBLEM is the only frame
//     that is not interpreted as a tag.
//
//   - ProblemHandler: The per-state actions. SetProblem decodes the circuit description,
//     Solve runs the solver on its fixed instance and GetSolution encodes the description
//     with stand-in coordinates (every macro at 42,42, layout upper right at 100,100).
//
//   - NewRPCServer: Factory function creating a configured server with the specified
//     transport, serializer and solver.
//
// Session protocol (client view):
//
//	SETPROBLEM, <problem>, INIT       upload the circuit description
//	SOLVEPROBLEM, INIT                run the solver
//	GETSOLUTION, INIT                 receive one solution frame after GETSOLUTION
//	TERMINATESERVER                   close the session
//
// Errors:
//
//	Transport, protocol and schema errors all end the session. No error frame is sent,
//	the connection is closed and the error is logged together with the session statistics.
//
// Usage Example:
//
//	config := common.DefaultServerConfig()
//	config.Transport.Endpoint = "127.0.0.1:1111"
//
//	s := server.NewRPCServer(
//	  config,
//	  tcp.NewTCPServerTransport(),
//	  serializer.NewProtoSerializer(),
//	  solver.NewGeneticSolver(),
//	)
//
//	if err := s.Serve(ctx); err != nil {
//	  log.Fatalf("Server error: %v", err)
//	}
//
// Thread Safety:
//
//	Sessions are served strictly sequentially on the accepting goroutine, a Session is
//	never shared between goroutines. Context cancellation is the only cross-goroutine
//	interaction: it closes the connection of the active session.
package server
