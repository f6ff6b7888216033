package serve

import (
	"context"
	"fmt"
	cmdUtil "github.com/ValentinKolb/hlbridge/cmd/util"
	"github.com/ValentinKolb/hlbridge/lib/solver"
	"github.com/ValentinKolb/hlbridge/rpc/common"
	"github.com/ValentinKolb/hlbridge/rpc/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"os"
	"os/signal"
	"syscall"
)

var (
	serveCmdConfig = common.DefaultServerConfig()
	ServeCmd       = &cobra.Command{
		Use:   "serve",
		Short: "Start the placement backend",
		Long: `Start the placement backend with the specified configuration. The configuration can be set via command line flags or environment variables. The format of the environment variables is HLBRIDGE_<flag> (e.g. HLBRIDGE_MAX_SESSIONS=0).

By default the backend serves a single session on port 1111 of all interfaces and exits once that session ends.`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(cmdUtil.InitConfig)

	defaults := common.DefaultServerConfig()

	// add flags
	key := "endpoint"
	ServeCmd.PersistentFlags().String(key, defaults.Transport.Endpoint, cmdUtil.WrapString("The address on which the backend will listen (e.g. 127.0.0.1:1111, /tmp/hlbridge.sock, ...)"))

	key = "timeout"
	ServeCmd.PersistentFlags().Int64(key, defaults.TimeoutSecond, cmdUtil.WrapString("Write timeout in seconds for solution frames (0 disables it). Reads never time out"))

	key = "max-sessions"
	ServeCmd.PersistentFlags().Int(key, defaults.MaxSessions, cmdUtil.WrapString("Number of sessions to serve one after another before exiting (0 serves until interrupted)"))

	key = "metrics-endpoint"
	ServeCmd.PersistentFlags().String(key, "", cmdUtil.WrapString("If set, prometheus metrics are exposed on http://<metrics-endpoint>/metrics (e.g. 127.0.0.1:9111)"))

	key = "solver-generations"
	ServeCmd.PersistentFlags().Int(key, defaults.Solver.MaxGenerations, cmdUtil.WrapString("Number of generations the solver runs"))

	key = "solver-population"
	ServeCmd.PersistentFlags().Int(key, defaults.Solver.PopulationSize, cmdUtil.WrapString("Population size of the solver"))

	key = "solver-seed"
	ServeCmd.PersistentFlags().Int64(key, defaults.Solver.Seed, cmdUtil.WrapString("Seed of the solver's random number generator (0 picks a random seed per solve)"))

	key = "log-level"
	ServeCmd.PersistentFlags().String(key, defaults.LogLevel, cmdUtil.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))

	cmdUtil.SetupSocketFlags(ServeCmd)
}

// processConfig reads the configuration from the command line flags and environment variables and converts them to the server configuration
func processConfig(cmd *cobra.Command, _ []string) error {
	// bind the flags to viper
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// read the configuration from the command line flags and environment variables
	serveCmdConfig.Transport.Endpoint = viper.GetString("endpoint")
	serveCmdConfig.Transport.FrameReadSize = viper.GetInt("frame-read-size")
	serveCmdConfig.Transport.SocketConf = cmdUtil.GetSocketConf()
	serveCmdConfig.Transport.TCPConf = cmdUtil.GetTCPConf()
	serveCmdConfig.TimeoutSecond = viper.GetInt64("timeout")
	serveCmdConfig.MaxSessions = viper.GetInt("max-sessions")
	serveCmdConfig.MetricsEndpoint = viper.GetString("metrics-endpoint")
	serveCmdConfig.Serializer = viper.GetString("serializer")
	serveCmdConfig.Solver = common.SolverConfig{
		MaxGenerations: viper.GetInt("solver-generations"),
		PopulationSize: viper.GetInt("solver-population"),
		Seed:           viper.GetInt64("solver-seed"),
	}
	serveCmdConfig.LogLevel = viper.GetString("log-level")

	if err := serveCmdConfig.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// run starts the placement backend
func run(_ *cobra.Command, _ []string) error {

	// parse the serializer
	s, err := cmdUtil.GetSerializer()
	if err != nil {
		return err
	}

	// Parse the transport
	t, err := cmdUtil.GetServerTransport()
	if err != nil {
		return err
	}

	serv := server.NewRPCServer(
		serveCmdConfig,
		t,
		s,
		solver.NewGeneticSolver(),
	)

	// stop on interrupt, the active session is closed
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serv.Serve(ctx)
}
