package server

import (
	"context"
	"fmt"
	"github.com/ValentinKolb/hlbridge/lib/circuit"
	"github.com/ValentinKolb/hlbridge/lib/solver"
	"github.com/ValentinKolb/hlbridge/lib/util"
	"github.com/ValentinKolb/hlbridge/rpc/common"
	"github.com/ValentinKolb/hlbridge/rpc/serializer"
	"time"
)

// Stand-in placement written into every solution. The solver result is not mapped
// back onto the circuit yet, the frontend only gets a syntactically valid answer.
const (
	solutionMacroX  = 42
	solutionMacroY  = 42
	solutionLayoutX = 100
	solutionLayoutY = 100
)

// ProblemHandler performs the per-state actions of a session on its circuit description
type ProblemHandler struct {
	serializer serializer.ICircuitSerializer
	solver     solver.ISolver
	solverConf common.SolverConfig

	circuit *circuit.Description // nil until the first problem was received
	result  *solver.Result      // nil until the first solve
}

// NewProblemHandler creates a handler without a circuit description
func NewProblemHandler(ser serializer.ICircuitSerializer, sol solver.ISolver, conf common.SolverConfig) *ProblemHandler {
	return &ProblemHandler{
		serializer: ser,
		solver:     sol,
		solverConf: conf,
	}
}

// SetProblem decodes the problem payload and replaces the current circuit description.
// A payload that does not conform to the schema results in a *common.SchemaError and
// leaves the previous description untouched.
func (h *ProblemHandler) SetProblem(payload []byte) error {
	desc := circuit.New()
	if err := h.serializer.Deserialize(payload, desc); err != nil {
		return &common.SchemaError{Err: fmt.Errorf("failed to decode %s problem: %w", h.serializer.Name(), err)}
	}

	h.circuit = desc
	Logger.Infof("Received problem with %d macros", desc.Len())
	for i, m := range desc.Macros {
		Logger.Debugf("  macro %d %q (%s): %dx%d", i, m.ID, m.Name, m.Width, m.Height)
	}
	return nil
}

// Solve runs the solver on its fixed instance and logs the named result values.
// The result is kept but not applied to the circuit description.
func (h *ProblemHandler) Solve(ctx context.Context) error {
	problem := solver.DefaultProblem()
	if h.solverConf.MaxGenerations > 0 {
		problem.MaxGenerations = h.solverConf.MaxGenerations
	}
	if h.solverConf.PopulationSize > 0 {
		problem.PopulationSize = h.solverConf.PopulationSize
	}
	if h.solverConf.Seed != 0 {
		problem.Seed = h.solverConf.Seed
	} else {
		problem.Seed = util.RandomSeed()
		Logger.Infof("Using random solver seed %d", problem.Seed)
	}

	start := time.Now()
	result, err := h.solver.Solve(ctx, problem)
	if err != nil {
		return fmt.Errorf("solver failed: %w", err)
	}
	solveDuration.UpdateDuration(start)

	for _, name := range result.Names() {
		v, _ := result.Get(name)
		Logger.Infof("%s: %g", name, v)
	}

	h.result = &result
	return nil
}

// GetSolution writes the stand-in placement into the circuit description and
// returns the serialized solution payload.
func (h *ProblemHandler) GetSolution() ([]byte, error) {
	if h.circuit == nil {
		return nil, &common.SchemaError{Err: fmt.Errorf("no problem has been received")}
	}

	h.circuit.PlaceAll(solutionMacroX, solutionMacroY)
	h.circuit.SetBounds(solutionLayoutX, solutionLayoutY)

	payload, err := h.serializer.Serialize(h.circuit)
	if err != nil {
		return nil, &common.SchemaError{Err: fmt.Errorf("failed to encode %s solution: %w", h.serializer.Name(), err)}
	}
	return payload, nil
}

// Circuit returns the current circuit description (nil if none was received)
func (h *ProblemHandler) Circuit() *circuit.Description {
	return h.circuit
}

// Result returns the result of the last solver run (nil if the solver did not run yet)
func (h *ProblemHandler) Result() *solver.Result {
	return h.result
}
