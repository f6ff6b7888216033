// Package solver contains the optimization engine invoked by the backend when a
// session enters the Solving state.
//
// The engine is deliberately independent from the protocol layer: it receives a
// Problem (macro dimensions and run parameters) and returns a Result made of named
// values plus the best placement it found. The backend currently solves the fixed
// DefaultProblem instance and only logs the result values; mapping them onto the
// submitted circuit is not done yet.
//
// Key Components:
//
//   - ISolver: Interface of an optimization engine.
//
//   - NewGeneticSolver: A small genetic algorithm (tournament selection, order
//     crossover, swap and rotation mutation, elitism) minimizing the bounding box
//     area of a shelf packing. Runs are deterministic for a given Problem.Seed.
package solver
