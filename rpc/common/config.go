package common

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Defaults
// --------------------------------------------------------------------------

const (
	// DefaultPort is the historical port of the placement backend
	DefaultPort = 1111
	// DefaultReadBufferSize is the number of bytes requested per socket read
	DefaultReadBufferSize = 2048
	// DefaultRetryIntervalSecond is the pause between two connection attempts of the client
	DefaultRetryIntervalSecond = 5
)

// DefaultEndpoint listens on all interfaces
var DefaultEndpoint = fmt.Sprintf("0.0.0.0:%d", DefaultPort)

// --------------------------------------------------------------------------
// Transport configuration structs
// --------------------------------------------------------------------------

// SocketConf holds the socket buffer sizes (0 keeps the OS default)
type SocketConf struct {
	WriteBufferSize int
	ReadBufferSize  int
}

// TCPConf holds TCP specific connection options
type TCPConf struct {
	TCPNoDelay      bool
	TCPKeepAliveSec int
	TCPLingerSec    int // negative keeps the OS default
}

// ServerTransportConfig configures the listening side of a transport
type ServerTransportConfig struct {
	// Endpoint is the listen address (host:port for tcp, a socket path for unix)
	Endpoint string
	// FrameReadSize is the size of the buffer used for a single read from the stream
	FrameReadSize int
	SocketConf
	TCPConf
}

// ClientTransportConfig configures the dialing side of a transport
type ClientTransportConfig struct {
	Endpoint            string
	RetryCount          int
	RetryIntervalSecond int
	FrameReadSize       int
	SocketConf
	TCPConf
}

// --------------------------------------------------------------------------
// Solver configuration struct
// --------------------------------------------------------------------------

// SolverConfig holds the parameters passed to the optimization engine
type SolverConfig struct {
	MaxGenerations int
	PopulationSize int
	Seed           int64
}

// --------------------------------------------------------------------------
// RPC server configuration struct
// --------------------------------------------------------------------------

// ServerConfig holds all configuration parameters of the placement backend
type ServerConfig struct {
	Transport ServerTransportConfig

	// TimeoutSecond bounds socket writes, 0 disables the deadline.
	// Reads always block, the protocol has no idle timeout.
	TimeoutSecond int64

	// MaxSessions is the number of sequential sessions served before Listen returns.
	// 0 serves sessions until the context is canceled.
	MaxSessions int

	// MetricsEndpoint exposes prometheus metrics on /metrics if not empty
	MetricsEndpoint string

	// Serializer is the name of the circuit schema serializer (proto, json, gob)
	Serializer string

	Solver SolverConfig

	// Logging configuration
	LogLevel string
}

// DefaultServerConfig returns the configuration of the historical backend
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Transport: ServerTransportConfig{
			Endpoint:      DefaultEndpoint,
			FrameReadSize: DefaultReadBufferSize,
			TCPConf: TCPConf{
				TCPNoDelay:   true,
				TCPLingerSec: -1,
			},
		},
		TimeoutSecond: 0,
		MaxSessions:   1,
		Serializer:    "proto",
		Solver: SolverConfig{
			MaxGenerations: 10,
			PopulationSize: 20,
			Seed:           1,
		},
		LogLevel: "info",
	}
}

// Validate checks the configuration for values the server cannot work with
func (c *ServerConfig) Validate() error {
	if c.Transport.Endpoint == "" {
		return fmt.Errorf("endpoint must not be empty")
	}
	if c.Transport.FrameReadSize < 3 {
		return fmt.Errorf("frame read size must be at least 3 bytes, got %d", c.Transport.FrameReadSize)
	}
	if c.MaxSessions < 0 {
		return fmt.Errorf("max sessions must not be negative, got %d", c.MaxSessions)
	}
	if c.Solver.MaxGenerations <= 0 {
		return fmt.Errorf("solver generations must be positive, got %d", c.Solver.MaxGenerations)
	}
	if c.Solver.PopulationSize < 2 {
		return fmt.Errorf("solver population must be at least 2, got %d", c.Solver.PopulationSize)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// String returns a formatted string representation of the configuration
func (c *ServerConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// RPC settings
	addSection("RPC Server")
	addField("Endpoint", c.Transport.Endpoint)
	addField("Frame Read Size", fmt.Sprintf("%d bytes", c.Transport.FrameReadSize))
	addField("Write Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	if c.MaxSessions == 0 {
		addField("Max Sessions", "unlimited")
	} else {
		addField("Max Sessions", strconv.Itoa(c.MaxSessions))
	}
	addField("Serializer", c.Serializer)

	// Socket settings
	addSection("Socket")
	addField("TCP No Delay", fmt.Sprintf("%t", c.Transport.TCPNoDelay))
	addField("TCP Keep Alive", fmt.Sprintf("%d sec", c.Transport.TCPKeepAliveSec))
	addField("TCP Linger", fmt.Sprintf("%d sec", c.Transport.TCPLingerSec))
	addField("Read Buffer", fmt.Sprintf("%d bytes", c.Transport.ReadBufferSize))
	addField("Write Buffer", fmt.Sprintf("%d bytes", c.Transport.WriteBufferSize))

	// Solver
	addSection("Solver")
	addField("Max Generations", strconv.Itoa(c.Solver.MaxGenerations))
	addField("Population Size", strconv.Itoa(c.Solver.PopulationSize))
	addField("Seed", strconv.FormatInt(c.Solver.Seed, 10))

	// Logging and metrics
	addSection("Logging")
	addField("Log Level", c.LogLevel)
	if c.MetricsEndpoint != "" {
		addField("Metrics", c.MetricsEndpoint)
	}

	return sb.String()
}

// --------------------------------------------------------------------------
// RPC client configuration struct
// --------------------------------------------------------------------------

type ClientConfig struct {
	TimeoutSecond int
	Transport     ClientTransportConfig
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// General Client Settings
	addSection("Client Configuration")
	addField("Endpoint", c.Transport.Endpoint)
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Retry Count", strconv.Itoa(c.Transport.RetryCount))
	addField("Retry Interval", fmt.Sprintf("%d sec", int(math.Max(0, float64(c.Transport.RetryIntervalSecond)))))

	return sb.String()
}
