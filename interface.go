package evolve

// FitnessFunc evaluates one chromosome, returning one value per objective.
// The vector length must be the same for every chromosome of a run, and
// every entry must be finite. Unless the run is declared dynamic, the
// function must be pure: the driver caches and reuses results by
// chromosome. It is called from multiple goroutines.
type FitnessFunc[T Gene] func(Chromosome[T]) FitnessVector

// RepairFunc optionally post-processes a chromosome after mutation, e.g.
// to push it back into a feasible region. It must preserve the chromosome
// length. Returning a different chromosome marks the candidate for
// re-evaluation.
type RepairFunc[T Gene] func(Chromosome[T]) Chromosome[T]

// Callback is invoked at the end of every generation.
type Callback func(*RunInfo)

// Selection picks the parents of each generation and the survivors of the
// parent+child union. Implementations are gene-agnostic: they only see
// fitness matrices.
//
// The driver calls Init once after the initial population is evaluated,
// Prepare once per generation before any Select, Select twice for each of
// the ceil(N/2) parent pairs of a generation, and NextPopulation once per
// generation on the union matrix of parents and children (parents first).
// Select must not mutate state: the driver may call it concurrently. NextPopulation returns the indices of the N
// survivors.
type Selection interface {
	Init(*RunInfo) error
	Prepare(*RunInfo, FitnessMatrix)
	Select(*RunInfo, FitnessMatrix) int
	NextPopulation(*RunInfo, FitnessMatrix) []int
}

// Crossover recombines two parents into two children of the same
// chromosome length. Implementations hold a crossover rate pc and return
// copies of the parents (with their fitness intact) with probability
// 1-pc.
type Crossover[T Gene] interface {
	Cross(ri *RunInfo, p1, p2 *Candidate[T]) (Candidate[T], Candidate[T])
}

// Mutation perturbs one candidate in place with some rate pm. A mutation
// that changes the chromosome must clear Evaluated; one that leaves it
// untouched must keep the existing fitness.
type Mutation[T Gene] interface {
	Mutate(ri *RunInfo, c *Candidate[T])
}

// StopCondition is polled once at the end of each generation. Returning
// true ends the run; the driver always stops at MaxGenerations anyway.
// Implementations may keep per-generation state (counters, previous
// bests).
type StopCondition interface {
	Stop(*RunInfo) bool
}

// Encoding generates fresh candidates for one chromosome representation.
type Encoding[T Gene] interface {
	// ChromLen returns the fixed chromosome length.
	ChromLen() int
	// Generate returns one new random chromosome.
	Generate() Chromosome[T]
}

// BoundedEncoding is implemented by encodings whose genes carry per-gene
// bounds (real and integer).
type BoundedEncoding[T Gene] interface {
	Encoding[T]
	Bounds() []GeneBounds[T]
}

// RunInfo is the read-only view of the run handed to operators, stop
// conditions and callbacks.
type RunInfo struct {
	// Generation is the index of the current generation, starting at 0.
	Generation int
	// MaxGenerations is the hard generation limit of the run.
	MaxGenerations int
	// NumObjectives is the fitness vector length M, fixed per run.
	NumObjectives int
	// PopSize is the population size N, fixed per run.
	PopSize int
	// EvalCount is the number of fitness function invocations so far, not
	// counting the single probe call Solve makes to learn the objective
	// count.
	EvalCount int
	// Fitness is the fitness matrix of the current population. Operators
	// must not modify it.
	Fitness FitnessMatrix
	// Objectives holds per-objective statistics of the current
	// population (mean, deviation, min, max).
	Objectives []Stats
}
