package solver

import (
	"context"
	"github.com/ValentinKolb/hlbridge/lib/util"
	"math"
	"math/rand"
	"time"
)

const (
	tournamentSize   = 2
	swapMutationRate = 0.2
	flipMutationRate = 0.1
)

// NewGeneticSolver creates a genetic algorithm that optimizes the bounding box area
// of a shelf packing. A chromosome is a macro order plus one rotation bit per macro.
func NewGeneticSolver() ISolver {
	return &geneticSolver{}
}

type geneticSolver struct{}

// chromosome is one candidate solution
type chromosome struct {
	order   []int
	rotated []bool
	quality float64 // bounding box area, lower is better
}

// --------------------------------------------------------------------------
// Interface Methods (docu see solver.ISolver)
// --------------------------------------------------------------------------

func (g *geneticSolver) Solve(ctx context.Context, problem Problem) (Result, error) {
	if err := problem.Validate(); err != nil {
		return Result{}, err
	}

	start := time.Now()
	rng := rand.New(rand.NewSource(problem.Seed))
	n := len(problem.Macros)
	evaluated := 0

	evaluate := func(c *chromosome) {
		_, w, h := decode(problem.Macros, c)
		c.quality = float64(w * h)
		evaluated++
	}

	// initial population
	population := make([]*chromosome, problem.PopulationSize)
	for i := range population {
		c := &chromosome{order: rng.Perm(n), rotated: make([]bool, n)}
		for j := range c.rotated {
			c.rotated[j] = rng.Intn(2) == 1
		}
		evaluate(c)
		population[i] = c
	}

	best := fittest(population)
	var stats util.Stats

	for gen := 0; gen < problem.MaxGenerations; gen++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		next := make([]*chromosome, 0, problem.PopulationSize)
		next = append(next, best.clone()) // elitism

		for len(next) < problem.PopulationSize {
			a := tournament(rng, population)
			b := tournament(rng, population)
			child := orderCrossover(rng, a, b)
			mutate(rng, child)
			evaluate(child)
			next = append(next, child)
		}

		population = next
		if f := fittest(population); f.quality < best.quality {
			best = f
		}

		stats = populationStats(population)
		Logger.Debugf("generation %d: best=%.0f mean=%.1f std=%.1f cv=%.3f",
			gen+1, best.quality, stats.Mean, stats.StdDeviation, stats.CoefficientOfVariation())
	}

	placement, w, h := decode(problem.Macros, best)

	Logger.Infof("genetic algorithm finished after %d generations in %s (best quality %.0f)",
		problem.MaxGenerations, time.Since(start), best.quality)

	return Result{
		Values: map[string]float64{
			ResultBestQuality:        best.quality,
			ResultMeanQuality:        stats.Mean,
			ResultQualityStdDev:      stats.StdDeviation,
			ResultQualityVariation:   stats.CoefficientOfVariation(),
			ResultWorstQuality:       stats.Max,
			ResultGenerations:        float64(problem.MaxGenerations),
			ResultEvaluatedSolutions: float64(evaluated),
			ResultLayoutWidth:        float64(w),
			ResultLayoutHeight:       float64(h),
		},
		Placement: placement,
	}, nil
}

// --------------------------------------------------------------------------
// Helper Functions
// --------------------------------------------------------------------------

func (c *chromosome) clone() *chromosome {
	cp := &chromosome{
		order:   make([]int, len(c.order)),
		rotated: make([]bool, len(c.rotated)),
		quality: c.quality,
	}
	copy(cp.order, c.order)
	copy(cp.rotated, c.rotated)
	return cp
}

// decode places the macros shelf by shelf in chromosome order.
// The shelf width is the side of a square with the total macro area, widened to fit the widest macro.
func decode(macros []Dimension, c *chromosome) (placement []Position, width, height int64) {
	dims := make([]Dimension, len(macros))
	var area float64
	var widest int64
	for i, m := range macros {
		d := m
		if c.rotated[i] {
			d = Dimension{Width: m.Height, Height: m.Width}
		}
		dims[i] = d
		area += float64(d.Width * d.Height)
		if d.Width > widest {
			widest = d.Width
		}
	}

	shelfWidth := int64(math.Ceil(math.Sqrt(area)))
	if shelfWidth < widest {
		shelfWidth = widest
	}

	placement = make([]Position, len(macros))
	var x, y, shelfHeight int64
	for _, idx := range c.order {
		d := dims[idx]
		if x > 0 && x+d.Width > shelfWidth {
			y += shelfHeight
			x, shelfHeight = 0, 0
		}
		placement[idx] = Position{X: x, Y: y, Rotated: c.rotated[idx]}
		x += d.Width
		if x > width {
			width = x
		}
		if d.Height > shelfHeight {
			shelfHeight = d.Height
		}
	}
	height = y + shelfHeight
	return placement, width, height
}

func fittest(population []*chromosome) *chromosome {
	best := population[0]
	for _, c := range population[1:] {
		if c.quality < best.quality {
			best = c
		}
	}
	return best
}

func tournament(rng *rand.Rand, population []*chromosome) *chromosome {
	best := population[rng.Intn(len(population))]
	for i := 1; i < tournamentSize; i++ {
		c := population[rng.Intn(len(population))]
		if c.quality < best.quality {
			best = c
		}
	}
	return best
}

// orderCrossover copies a random slice of a's order and fills the rest in b's order.
// Rotation bits are inherited per macro from either parent.
func orderCrossover(rng *rand.Rand, a, b *chromosome) *chromosome {
	n := len(a.order)
	child := &chromosome{order: make([]int, n), rotated: make([]bool, n)}

	lo, hi := rng.Intn(n), rng.Intn(n)
	if lo > hi {
		lo, hi = hi, lo
	}

	used := make([]bool, n)
	for i := lo; i <= hi; i++ {
		child.order[i] = a.order[i]
		used[a.order[i]] = true
	}

	pos := (hi + 1) % n
	for _, gene := range b.order {
		if used[gene] {
			continue
		}
		child.order[pos] = gene
		used[gene] = true
		pos = (pos + 1) % n
	}

	for i := range child.rotated {
		if rng.Intn(2) == 0 {
			child.rotated[i] = a.rotated[i]
		} else {
			child.rotated[i] = b.rotated[i]
		}
	}
	return child
}

func mutate(rng *rand.Rand, c *chromosome) {
	n := len(c.order)
	if n > 1 && rng.Float64() < swapMutationRate {
		i, j := rng.Intn(n), rng.Intn(n)
		c.order[i], c.order[j] = c.order[j], c.order[i]
	}
	for i := range c.rotated {
		if rng.Float64() < flipMutationRate {
			c.rotated[i] = !c.rotated[i]
		}
	}
}

func populationStats(population []*chromosome) util.Stats {
	return util.Summarize(population, func(c *chromosome) float64 { return c.quality })
}
