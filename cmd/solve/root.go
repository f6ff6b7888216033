package solve

import (
	"fmt"
	"github.com/ValentinKolb/hlbridge/cmd/util"
	"github.com/ValentinKolb/hlbridge/lib/circuit"
	"github.com/ValentinKolb/hlbridge/rpc/client"
	"github.com/ValentinKolb/hlbridge/rpc/serializer"
	"github.com/spf13/cobra"
	"os"
	"time"
)

var (
	placer client.IPlacerClient

	// SolveCmd runs a full upload, solve, download cycle against a backend
	SolveCmd = &cobra.Command{
		Use:   "solve [problem.json]",
		Short: "Send a problem to a placement backend and print the solution",
		Long: `Send a circuit description to a running placement backend, let it solve the problem and print the returned solution as JSON.

The problem file contains a JSON circuit description ({"macros": [{"id": "<id>", "width": 400, "height": 200}], "layout": {...}}). Macros are echoed back in file order. Without a file the three macro test problem is sent.`,
		Args:              cobra.MaximumNArgs(1),
		PersistentPreRunE: setupPlacerClient,
		RunE:              run,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add RPC flags to the solve command
	util.SetupRPCClientFlags(SolveCmd)
}

// setupPlacerClient initializes the placer client
func setupPlacerClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	// Get client configuration components
	config := util.GetClientConfig()

	// Get serializer and transport
	s, err := util.GetSerializer()
	if err != nil {
		return err
	}

	t, err := util.GetClientTransport()
	if err != nil {
		return err
	}

	// Create the placer client
	placer, err = client.NewPlacerClient(
		*config,
		t,
		s,
	)

	return err
}

func run(cmd *cobra.Command, args []string) error {
	problem, err := loadProblem(args)
	if err != nil {
		return err
	}

	start := time.Now()

	if err := placer.TransmitProblem(problem); err != nil {
		return err
	}
	if err := placer.SolveProblem(); err != nil {
		return err
	}
	solution, err := placer.GetSolution()
	if err != nil {
		return err
	}

	if err := placer.Disconnect(); err != nil {
		return err
	}

	out, err := serializer.NewJSONSerializer().Serialize(solution)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	fmt.Fprintf(cmd.ErrOrStderr(), "solved %d macros in %s\n", solution.Len(), time.Since(start).Round(time.Millisecond))
	return nil
}

// loadProblem reads the problem file or returns the three macro test problem
func loadProblem(args []string) (*circuit.Description, error) {
	desc := circuit.New()

	if len(args) == 0 {
		desc.AddMacro(circuit.Macro{ID: "m1", Name: "m1", Width: 400, Height: 200})
		desc.AddMacro(circuit.Macro{ID: "m2", Name: "m2", Width: 600, Height: 400})
		desc.AddMacro(circuit.Macro{ID: "m3", Name: "m3", Width: 300, Height: 100})
		return desc, nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read problem file: %w", err)
	}
	if err := serializer.NewJSONSerializer().Deserialize(data, desc); err != nil {
		return nil, fmt.Errorf("invalid problem file %s: %w", args[0], err)
	}
	return desc, nil
}
