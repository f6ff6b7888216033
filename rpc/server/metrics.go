package server

import (
	"errors"
	"fmt"
	"github.com/ValentinKolb/hlbridge/rpc/common"
	vm "github.com/VictoriaMetrics/metrics"
	gometrics "github.com/rcrowley/go-metrics"
	"net/http"
	"time"
)

// --------------------------------------------------------------------------
// Process metrics (exported in prometheus format)
// --------------------------------------------------------------------------

var (
	sessionsTotal       = vm.NewCounter("hlbridge_sessions_total")
	framesReceivedTotal = vm.NewCounter("hlbridge_frames_received_total")
	framesSentTotal     = vm.NewCounter("hlbridge_frames_sent_total")
	bytesReceivedTotal  = vm.NewCounter("hlbridge_bytes_received_total")
	solveDuration       = vm.NewHistogram("hlbridge_solve_duration_seconds")
)

// sessionErrors returns the error counter for the kind reported by common.ErrorKind
func sessionErrors(kind string) *vm.Counter {
	return vm.GetOrCreateCounter(fmt.Sprintf(`hlbridge_session_errors_total{kind=%q}`, kind))
}

// serveMetrics exposes all process metrics on /metrics until the server is closed
func serveMetrics(endpoint string) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, _ *http.Request) {
		vm.WritePrometheus(w, true)
	})

	srv := &http.Server{
		Addr:              endpoint,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		Logger.Infof("Exposing metrics on http://%s/metrics", endpoint)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			Logger.Errorf("metrics endpoint failed: %v", err)
		}
	}()
	return srv
}

// --------------------------------------------------------------------------
// Session statistics (private registry per session)
// --------------------------------------------------------------------------

const (
	statFrames      = "frames"
	statFrameSizes  = "frame.size"
	statTransitions = "transitions"
)

// sessionStats collects statistics of a single session. The registry is never shared,
// so the numbers of one session do not leak into the next one.
type sessionStats struct {
	registry    gometrics.Registry
	frames      gometrics.Counter
	frameSizes  gometrics.Histogram
	transitions gometrics.Counter
	started     time.Time
}

func newSessionStats() *sessionStats {
	r := gometrics.NewRegistry()
	return &sessionStats{
		registry:    r,
		frames:      gometrics.GetOrRegisterCounter(statFrames, r),
		frameSizes:  gometrics.GetOrRegisterHistogram(statFrameSizes, r, gometrics.NewUniformSample(1028)),
		transitions: gometrics.GetOrRegisterCounter(statTransitions, r),
		started:     time.Now(),
	}
}

// frameReceived records one inbound frame
func (s *sessionStats) frameReceived(frame []byte) {
	s.frames.Inc(1)
	s.frameSizes.Update(int64(len(frame)))
	framesReceivedTotal.Inc()
}

// transition records one state change
func (s *sessionStats) transition() {
	s.transitions.Inc(1)
}

// summary returns a single log line with the statistics of the session
func (s *sessionStats) summary() string {
	return fmt.Sprintf("frames=%d transitions=%d frame size mean=%.1f max=%d p95=%.0f duration=%s",
		s.frames.Count(),
		s.transitions.Count(),
		s.frameSizes.Mean(),
		s.frameSizes.Max(),
		s.frameSizes.Percentile(0.95),
		time.Since(s.started).Round(time.Millisecond),
	)
}

// recordSessionEnd updates the process metrics once a session is over
func recordSessionEnd(err error) {
	if kind := common.ErrorKind(err); kind != "" {
		sessionErrors(kind).Inc()
	}
}
