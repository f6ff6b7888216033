package server

import (
	"context"
	"errors"
	"github.com/ValentinKolb/hlbridge/rpc/common"
	"github.com/ValentinKolb/hlbridge/rpc/transport/base"
	"github.com/lni/dragonboat/v4/logger"
	"io"
	"net"
	"time"
)

var SessionLogger = logger.GetLogger("session")

// TransitionFunc is called after every state change of a session
type TransitionFunc func(from, to common.SessionState, tag common.ControlTag)

// Session drives the backend automaton for exactly one connection.
//
// The state is only ever changed by a received control tag, any tag is accepted in
// any state. The actions performed on entering a state never change the state themselves.
type Session struct {
	id      uint64
	state   common.SessionState
	conn    io.ReadWriteCloser
	queue   *base.FrameQueue
	handler *ProblemHandler
	stats   *sessionStats
	timeout time.Duration

	// OnTransition is called after every state change (optional)
	OnTransition TransitionFunc
}

// NewSession creates a session in the Init state. The session owns conn and closes it when Run returns.
func NewSession(id uint64, conn io.ReadWriteCloser, handler *ProblemHandler, config common.ServerConfig) *Session {
	s := &Session{
		id:      id,
		state:   common.StateInit,
		conn:    conn,
		queue:   base.NewFrameQueue(conn, config.Transport.FrameReadSize),
		handler: handler,
		stats:   newSessionStats(),
		timeout: time.Duration(config.TimeoutSecond) * time.Second,
	}
	s.queue.OnRead = func(n int) { bytesReceivedTotal.Add(n) }
	return s
}

// ID returns the session id
func (s *Session) ID() uint64 {
	return s.id
}

// State returns the current state
func (s *Session) State() common.SessionState {
	return s.state
}

// Run performs the action of the current state and then waits for the next control tag,
// until the session reaches the Terminated state. It returns nil after a regular
// termination. Transport, protocol and schema errors end the session: the connection is
// closed without sending an error frame and the typed error is returned.
//
// Canceling the context closes the connection, which unblocks a pending read.
func (s *Session) Run(ctx context.Context) error {
	sessionsTotal.Inc()
	stop := context.AfterFunc(ctx, func() { _ = s.conn.Close() })
	defer stop()

	for {
		SessionLogger.Debugf("State: %s", s.state)

		if err := s.act(ctx); err != nil {
			return s.fail(ctx, err)
		}
		if s.state == common.StateTerminated {
			SessionLogger.Infof("session %d terminated (%s)", s.id, s.stats.summary())
			return nil
		}

		if err := s.transition(); err != nil {
			return s.fail(ctx, err)
		}
	}
}

// --------------------------------------------------------------------------
// Helper Functions
// --------------------------------------------------------------------------

// act performs the action bound to the current state
func (s *Session) act(ctx context.Context) error {
	switch s.state {
	case common.StateInit:
		return nil
	case common.StateAwaitProblem:
		payload, err := s.nextFrame()
		if err != nil {
			return err
		}
		return s.handler.SetProblem(payload)
	case common.StateSolving:
		return s.handler.Solve(ctx)
	case common.StateCollectingSolution:
		payload, err := s.handler.GetSolution()
		if err != nil {
			return err
		}
		return s.writeFrame(payload)
	case common.StateTerminated:
		if err := s.conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			return &common.TransportError{Op: "close", Err: err}
		}
		return nil
	default:
		return nil
	}
}

// transition reads the next frame and moves to the state named by its control tag
func (s *Session) transition() error {
	frame, err := s.nextFrame()
	if err != nil {
		return err
	}

	tag, err := common.ResolveTag(frame)
	if err != nil {
		return err
	}

	from := s.state
	s.state = tag.State()
	s.stats.transition()

	if s.OnTransition != nil {
		s.OnTransition(from, s.state, tag)
	}
	return nil
}

func (s *Session) nextFrame() ([]byte, error) {
	frame, err := s.queue.NextFrame()
	if err != nil {
		return nil, err
	}
	s.stats.frameReceived(frame)
	return frame, nil
}

// writeFrame sends one response frame, bounded by the write timeout if configured
func (s *Session) writeFrame(payload []byte) error {
	if s.timeout > 0 {
		if dc, ok := s.conn.(interface{ SetWriteDeadline(time.Time) error }); ok {
			if err := dc.SetWriteDeadline(time.Now().Add(s.timeout)); err != nil {
				return &common.TransportError{Op: "write", Err: err}
			}
		}
	}

	if err := base.WriteFrame(s.conn, payload); err != nil {
		return err
	}
	framesSentTotal.Inc()
	SessionLogger.Debugf("session %d sent solution of %d bytes", s.id, len(payload))
	return nil
}

// fail closes the connection and returns the error that ended the session
func (s *Session) fail(ctx context.Context, err error) error {
	_ = s.conn.Close()

	if ctx.Err() != nil {
		err = errors.Join(context.Cause(ctx), err)
		SessionLogger.Infof("session %d canceled in state %s", s.id, s.state)
		return err
	}

	var transportErr *common.TransportError
	if errors.As(err, &transportErr) && transportErr.IsEOF() {
		SessionLogger.Warningf("session %d: peer closed the connection in state %s: %v", s.id, s.state, err)
	} else {
		SessionLogger.Errorf("session %d failed in state %s: %v", s.id, s.state, err)
	}
	SessionLogger.Infof("session %d aborted (%s)", s.id, s.stats.summary())
	return err
}
