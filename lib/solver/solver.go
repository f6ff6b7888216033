package solver

import (
	"context"
	"fmt"
	"github.com/lni/dragonboat/v4/logger"
	"sort"
)

var Logger = logger.GetLogger("solver")

// Names of the result values reported by every solver
const (
	ResultBestQuality        = "BestQuality"
	ResultMeanQuality        = "MeanQuality"
	ResultQualityStdDev      = "QualityStdDev"
	ResultQualityVariation   = "QualityVariation" // std deviation / mean of the last generation
	ResultWorstQuality       = "WorstQuality"
	ResultGenerations        = "Generations"
	ResultEvaluatedSolutions = "EvaluatedSolutions"
	ResultLayoutWidth        = "LayoutWidth"
	ResultLayoutHeight       = "LayoutHeight"
)

// --------------------------------------------------------------------------
// Problem
// --------------------------------------------------------------------------

// Dimension is the width and height of a macro
type Dimension struct {
	Width  int64
	Height int64
}

// Problem is the instance handed to the optimization engine
type Problem struct {
	Macros         []Dimension
	MaxGenerations int
	PopulationSize int
	Seed           int64
}

// DefaultProblem returns the fixed instance the backend solves: three macros, ten generations
func DefaultProblem() Problem {
	return Problem{
		Macros: []Dimension{
			{Width: 400, Height: 200},
			{Width: 600, Height: 400},
			{Width: 300, Height: 100},
		},
		MaxGenerations: 10,
		PopulationSize: 20,
		Seed:           1,
	}
}

// Validate checks that the problem can be solved
func (p Problem) Validate() error {
	if len(p.Macros) == 0 {
		return fmt.Errorf("problem has no macros")
	}
	for i, m := range p.Macros {
		if m.Width <= 0 || m.Height <= 0 {
			return fmt.Errorf("macro %d has invalid dimensions %dx%d", i, m.Width, m.Height)
		}
	}
	if p.MaxGenerations <= 0 {
		return fmt.Errorf("max generations must be positive, got %d", p.MaxGenerations)
	}
	if p.PopulationSize < 2 {
		return fmt.Errorf("population size must be at least 2, got %d", p.PopulationSize)
	}
	return nil
}

// --------------------------------------------------------------------------
// Result
// --------------------------------------------------------------------------

// Position is the lower-left corner of a placed macro and whether it is rotated by 90 degrees
type Position struct {
	X       int64
	Y       int64
	Rotated bool
}

// Result holds the named result values of a run plus the best placement found
type Result struct {
	Values    map[string]float64
	Placement []Position // indexed like Problem.Macros
}

// Get returns a named result value
func (r Result) Get(name string) (float64, bool) {
	v, ok := r.Values[name]
	return v, ok
}

// Names returns the names of all result values in sorted order
func (r Result) Names() []string {
	names := make([]string, 0, len(r.Values))
	for name := range r.Values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// --------------------------------------------------------------------------
// Solver Interface
// --------------------------------------------------------------------------

// ISolver is the interface of an optimization engine
type ISolver interface {
	// Solve runs the engine on the problem and returns its named result values.
	// The context is checked between generations.
	Solve(ctx context.Context, problem Problem) (Result, error)
}
