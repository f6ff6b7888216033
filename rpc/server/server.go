package server

import (
	"context"
	"fmt"
	"github.com/ValentinKolb/hlbridge/lib/solver"
	"github.com/ValentinKolb/hlbridge/rpc/common"
	"github.com/ValentinKolb/hlbridge/rpc/serializer"
	"github.com/ValentinKolb/hlbridge/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
	"net"
	"os/signal"
	"runtime"
	"sync/atomic"
	"syscall"
)

var Logger = logger.GetLogger("rpc")

// NewRPCServer creates a new placement backend
// It takes a config, transport, serializer and solver as parameters
//
// Usage:
//
//	s := server.NewRPCServer(
//		common.DefaultServerConfig(),
//		tcp.NewTCPServerTransport(),
//		serializer.NewProtoSerializer(),
//		solver.NewGeneticSolver(),
//	)
//
//	if err := s.Serve(ctx); err != nil {
//		panic(err)
//	}
func NewRPCServer(
	config common.ServerConfig,
	transport transport.IRPCServerTransport,
	serializer serializer.ICircuitSerializer,
	solver solver.ISolver,
) *rpcServer {
	// https://github.com/golang/go/issues/17393
	if runtime.GOOS == "darwin" {
		signal.Ignore(syscall.Signal(0xd))
	}

	return &rpcServer{
		config:     config,
		transport:  transport,
		serializer: serializer,
		solver:     solver,
		sessions:   xsync.NewMapOf[uint64, *Session](),
	}
}

type rpcServer struct {
	config     common.ServerConfig
	transport  transport.IRPCServerTransport
	serializer serializer.ICircuitSerializer
	solver     solver.ISolver

	// sessions holds the active sessions, there is at most one at a time
	sessions *xsync.MapOf[uint64, *Session]
	nextID   atomic.Uint64
	bound    atomic.Bool
}

// Bind initializes logging and creates the listener without accepting connections.
// Calling Bind is optional, Serve binds if necessary.
func (s *rpcServer) Bind() error {
	if err := s.config.Validate(); err != nil {
		return fmt.Errorf("invalid server config: %w", err)
	}

	// Init logger
	if err := common.InitLoggers(s.config.LogLevel); err != nil {
		return err
	}

	Logger.Infof("Created placement backend")
	Logger.Infof("Configuration:%s", s.config.String())

	if err := s.transport.Bind(s.config); err != nil {
		return err
	}
	s.bound.Store(true)
	return nil
}

// Addr returns the address the server listens on (nil before Bind)
func (s *rpcServer) Addr() net.Addr {
	return s.transport.Addr()
}

// Serve accepts sessions one after another until the configured number of sessions
// was served or the context is canceled.
func (s *rpcServer) Serve(ctx context.Context) error {
	if !s.bound.Load() {
		if err := s.Bind(); err != nil {
			return err
		}
	}

	if s.config.MetricsEndpoint != "" {
		srv := serveMetrics(s.config.MetricsEndpoint)
		defer srv.Close()
	}

	s.transport.RegisterHandler(s.handleSession)

	err := s.transport.Serve(ctx)

	s.sessions.Range(func(id uint64, session *Session) bool {
		Logger.Warningf("session %d still active in state %s on shutdown", id, session.State())
		return true
	})
	return err
}

// ActiveSessions returns the number of sessions currently being served
func (s *rpcServer) ActiveSessions() int {
	return s.sessions.Size()
}

// handleSession serves a single connection (implements transport.SessionHandleFunc)
func (s *rpcServer) handleSession(ctx context.Context, conn net.Conn) error {
	id := s.nextID.Add(1)
	handler := NewProblemHandler(s.serializer, s.solver, s.config.Solver)
	session := NewSession(id, conn, handler, s.config)

	s.sessions.Store(id, session)
	defer s.sessions.Delete(id)

	Logger.Infof("session %d started for %s", id, conn.RemoteAddr())
	err := session.Run(ctx)
	recordSessionEnd(err)
	return err
}
