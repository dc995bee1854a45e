package evolve

import (
	"fmt"
	"math"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/evolvelib/evolve/cache"
	"github.com/evolvelib/evolve/rng"
)

// Defaults for the run configuration.
const (
	DefaultPopulationSize = 100
	DefaultMaxGenerations = 500
)

// Config collects the run options of a GA. The zero value selects the
// defaults.
type Config[T Gene] struct {
	// PopulationSize is N, the number of candidates kept between
	// generations. Defaults to 100.
	PopulationSize int
	// MaxGenerations is the hard stop of the run. Defaults to 500.
	MaxGenerations int
	// DynamicFitness declares that the fitness function may change
	// between generations. Every candidate is then re-evaluated each
	// generation and the fitness cache is disabled.
	DynamicFitness bool
	// ArchiveSolutions enables the archive of every non-dominated
	// candidate seen during the run. When disabled, Solve returns the
	// final population instead.
	ArchiveSolutions bool
	// InitialPopulation presets part or all of the first generation.
	// Oversized presets are truncated, undersized ones padded with
	// freshly generated candidates.
	InitialPopulation []Candidate[T]
	// Workers bounds the parallelism of fitness evaluation. Defaults to
	// GOMAXPROCS.
	Workers int
	// Seed seeds the random number service at the start of the run.
	// Zero selects rng.DefaultSeed.
	Seed uint64
	// CacheSize is the fitness cache capacity. Zero selects the default
	// of 2N; a negative value disables the cache.
	CacheSize int
	// Repair, when set, is applied to every child after mutation.
	Repair RepairFunc[T]
	// Stop is the optional early stop condition.
	Stop StopCondition
	// OnGeneration is fired after each generational turnover.
	OnGeneration Callback
}

// GA is the generational evolutionary driver. It owns the population, the
// solutions archive and the fitness cache, and runs the operators it was
// constructed with.
type GA[T Gene] struct {
	enc       Encoding[T]
	fitness   FitnessFunc[T]
	selection Selection
	crossover Crossover[T]
	mutation  Mutation[T]
	cfg       Config[T]

	pop        []Candidate[T]
	archive    []Candidate[T]
	cache      *cache.FIFO[string, FitnessVector]
	info       RunInfo
	numObj     int
	generation int
	evals      int
}

// New assembles a driver from an encoding, a fitness function and the
// three variation operators. Configuration problems are reported by
// Solve.
func New[T Gene](enc Encoding[T], fitness FitnessFunc[T], selection Selection,
	crossover Crossover[T], mutation Mutation[T], cfg Config[T],
) *GA[T] {
	if cfg.PopulationSize == 0 {
		cfg.PopulationSize = DefaultPopulationSize
	}
	if cfg.MaxGenerations == 0 {
		cfg.MaxGenerations = DefaultMaxGenerations
	}
	return &GA[T]{
		enc:       enc,
		fitness:   fitness,
		selection: selection,
		crossover: crossover,
		mutation:  mutation,
		cfg:       cfg,
	}
}

// Population returns the current population. The slice is owned by the
// driver.
func (ga *GA[T]) Population() []Candidate[T] { return ga.pop }

// Generations returns the number of completed generational turnovers.
func (ga *GA[T]) Generations() int { return ga.generation }

// Evaluations returns the number of fitness function invocations so far,
// not counting the single probe call Solve makes to learn the objective
// count.
func (ga *GA[T]) Evaluations() int { return ga.evals }

// Solve runs the evolutionary loop to completion and returns the best
// solutions found: the archive of non-dominated candidates when archiving
// is enabled, the final population otherwise. Solve may be called again;
// each call restarts from a fresh initial population.
func (ga *GA[T]) Solve() ([]Candidate[T], error) {
	if err := ga.validate(); err != nil {
		return nil, err
	}

	seed := ga.cfg.Seed
	if seed == 0 {
		seed = rng.DefaultSeed
	}
	rng.Seed(seed)

	// The objective count is learned from a single probe evaluation and
	// pinned for the rest of the run.
	probe := ga.fitness(ga.enc.Generate())
	if err := checkFitness(probe, len(probe)); err != nil {
		return nil, err
	}
	if len(probe) == 0 {
		return nil, fmt.Errorf("fitness function returned an empty vector: %w", ErrDimensionMismatch)
	}
	ga.numObj = len(probe)

	cacheSize := ga.cfg.CacheSize
	switch {
	case ga.cfg.DynamicFitness || cacheSize < 0:
		cacheSize = 0
	case cacheSize == 0:
		cacheSize = 2 * ga.cfg.PopulationSize
	}
	ga.cache = cache.New[string, FitnessVector](cacheSize)

	ga.generation = 0
	ga.evals = 0
	ga.archive = ga.archive[:0]
	ga.pop = ga.initialPopulation()

	if err := ga.evaluate(ga.pop); err != nil {
		return nil, err
	}
	ga.refreshInfo()

	if err := ga.selection.Init(&ga.info); err != nil {
		return nil, err
	}

	for ga.generation < ga.cfg.MaxGenerations-1 {
		// A dynamic fitness function invalidates the whole population
		// every generation, not just the children.
		if ga.cfg.DynamicFitness && ga.generation > 0 {
			if err := ga.evaluate(ga.pop); err != nil {
				return nil, err
			}
		}
		ga.refreshInfo()
		ga.selection.Prepare(&ga.info, ga.info.Fitness)
		if ga.cfg.ArchiveSolutions {
			ga.updateArchive(ga.pop)
		}

		children, err := ga.makeChildren()
		if err != nil {
			return nil, err
		}
		if err := ga.evaluate(children); err != nil {
			return nil, err
		}

		if err := ga.turnover(children); err != nil {
			return nil, err
		}

		ga.generation++
		ga.refreshInfo()
		if ga.cfg.OnGeneration != nil {
			ga.cfg.OnGeneration(&ga.info)
		}
		if ga.cfg.Stop != nil && ga.cfg.Stop.Stop(&ga.info) {
			break
		}
	}

	if ga.cfg.ArchiveSolutions {
		ga.updateArchive(ga.pop)
		return ga.archive, nil
	}
	return ga.pop, nil
}

func (ga *GA[T]) validate() error {
	switch {
	case ga.enc == nil:
		return fmt.Errorf("nil encoding: %w", ErrInvalidArgument)
	case ga.fitness == nil:
		return fmt.Errorf("nil fitness function: %w", ErrInvalidArgument)
	case ga.selection == nil:
		return fmt.Errorf("nil selection: %w", ErrInvalidArgument)
	case ga.crossover == nil:
		return fmt.Errorf("nil crossover: %w", ErrInvalidArgument)
	case ga.mutation == nil:
		return fmt.Errorf("nil mutation: %w", ErrInvalidArgument)
	case ga.cfg.PopulationSize < 1:
		return fmt.Errorf("population size %d: %w", ga.cfg.PopulationSize, ErrInvalidArgument)
	case ga.cfg.MaxGenerations < 1:
		return fmt.Errorf("max generations %d: %w", ga.cfg.MaxGenerations, ErrInvalidArgument)
	case ga.enc.ChromLen() < 1:
		return fmt.Errorf("chromosome length %d: %w", ga.enc.ChromLen(), ErrInvalidArgument)
	}
	for i := range ga.cfg.InitialPopulation {
		if len(ga.cfg.InitialPopulation[i].Chromosome) != ga.enc.ChromLen() {
			return fmt.Errorf("preset chromosome %d has length %d, want %d: %w",
				i, len(ga.cfg.InitialPopulation[i].Chromosome), ga.enc.ChromLen(), ErrDimensionMismatch)
		}
	}
	return nil
}

func (ga *GA[T]) initialPopulation() []Candidate[T] {
	n := ga.cfg.PopulationSize
	pop := make([]Candidate[T], 0, n)
	for i := 0; i < len(ga.cfg.InitialPopulation) && i < n; i++ {
		pop = append(pop, ga.cfg.InitialPopulation[i].Clone())
	}
	for len(pop) < n {
		pop = append(pop, NewCandidate(ga.enc.Generate()))
	}
	return pop
}

// makeChildren runs the selection, crossover, mutation and repair steps
// of one generation. N odd produces one extra child; the surplus is
// resolved by the survivor selection over the union.
func (ga *GA[T]) makeChildren() ([]Candidate[T], error) {
	n := ga.cfg.PopulationSize
	pairs := (n + 1) / 2

	children := make([]Candidate[T], 0, 2*pairs)
	for p := 0; p < pairs; p++ {
		i := ga.selection.Select(&ga.info, ga.info.Fitness)
		j := ga.selection.Select(&ga.info, ga.info.Fitness)
		if i < 0 || i >= n || j < 0 || j >= n {
			return nil, fmt.Errorf("selection returned index outside the population: %w", ErrContract)
		}
		c1, c2 := ga.crossover.Cross(&ga.info, &ga.pop[i], &ga.pop[j])
		children = append(children, c1, c2)
	}

	for i := range children {
		ga.mutation.Mutate(&ga.info, &children[i])
		if len(children[i].Chromosome) != ga.enc.ChromLen() {
			return nil, fmt.Errorf("mutation changed the chromosome length: %w", ErrContract)
		}
	}

	if ga.cfg.Repair != nil {
		for i := range children {
			fixed := ga.cfg.Repair(slices.Clone(children[i].Chromosome))
			if len(fixed) != ga.enc.ChromLen() {
				return nil, fmt.Errorf("repair changed the chromosome length: %w", ErrContract)
			}
			if !slices.Equal(fixed, children[i].Chromosome) {
				children[i].Chromosome = fixed
				children[i].Evaluated = false
			}
		}
	}
	return children, nil
}

// turnover replaces the population with the survivors the selection picks
// from the union of parents and children.
func (ga *GA[T]) turnover(children []Candidate[T]) error {
	n := ga.cfg.PopulationSize
	union := make([]Candidate[T], 0, len(ga.pop)+len(children))
	union = append(union, ga.pop...)
	union = append(union, children...)

	idxs := ga.selection.NextPopulation(&ga.info, ToFitnessMatrix(union))
	if len(idxs) != n {
		return fmt.Errorf("next population has %d survivors, want %d: %w", len(idxs), n, ErrContract)
	}
	next := make([]Candidate[T], n)
	for k, idx := range idxs {
		if idx < 0 || idx >= len(union) {
			return fmt.Errorf("survivor index %d outside the union: %w", idx, ErrContract)
		}
		next[k] = union[idx]
	}
	ga.pop = next
	return nil
}

// evaluate fills in the fitness of every candidate that needs it.
// Distinct chromosomes are evaluated in parallel; duplicates within the
// batch and chromosomes seen in earlier generations are resolved through
// the cache instead of calling the fitness function again.
func (ga *GA[T]) evaluate(cands []Candidate[T]) error {
	type job struct {
		fp   string
		idxs []int
	}
	var jobs []*job
	seen := make(map[string]*job)

	for i := range cands {
		c := &cands[i]
		if ga.cfg.DynamicFitness {
			c.Evaluated = false
			jobs = append(jobs, &job{idxs: []int{i}})
			continue
		}
		if c.Evaluated {
			continue
		}
		fp := c.Fingerprint()
		if v := ga.cache.Get(fp); v != nil {
			c.Fitness = slices.Clone(*v)
			c.Evaluated = true
			continue
		}
		if j, ok := seen[fp]; ok {
			j.idxs = append(j.idxs, i)
			continue
		}
		j := &job{fp: fp, idxs: []int{i}}
		seen[fp] = j
		jobs = append(jobs, j)
	}
	if len(jobs) == 0 {
		return nil
	}

	results := make([]FitnessVector, len(jobs))
	var g errgroup.Group
	g.SetLimit(ga.workers())
	for k, j := range jobs {
		g.Go(func() error {
			f := ga.fitness(cands[j.idxs[0]].Chromosome)
			if err := checkFitness(f, ga.numObj); err != nil {
				return err
			}
			results[k] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// Distribute the results and batch the cache writes serially.
	for k, j := range jobs {
		for _, i := range j.idxs {
			cands[i].Fitness = slices.Clone(results[k])
			cands[i].Evaluated = true
		}
		ga.evals++
		if !ga.cfg.DynamicFitness {
			ga.cache.Insert(j.fp, results[k])
		}
	}
	return nil
}

func checkFitness(f FitnessVector, numObj int) error {
	if len(f) != numObj {
		return fmt.Errorf("fitness vector has length %d, want %d: %w", len(f), numObj, ErrDimensionMismatch)
	}
	for _, v := range f {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("fitness value %v: %w", v, ErrNumeric)
		}
	}
	return nil
}

// updateArchive folds the population into the archive and reduces it to
// its deduplicated Pareto front.
func (ga *GA[T]) updateArchive(pop []Candidate[T]) {
	for i := range pop {
		ga.archive = append(ga.archive, pop[i].Clone())
	}
	fmat := ToFitnessMatrix(ga.archive)

	var keep []int
	if ga.numObj == 1 {
		keep = ParetoFront1D(fmat)
	} else {
		keep = ParetoFrontKung(fmat)
	}

	next := make([]Candidate[T], 0, len(keep))
	seen := make(map[string]struct{}, len(keep))
	for _, i := range keep {
		fp := ga.archive[i].Fingerprint()
		if _, dup := seen[fp]; dup {
			continue
		}
		seen[fp] = struct{}{}
		next = append(next, ga.archive[i])
	}
	ga.archive = next
}

func (ga *GA[T]) refreshInfo() {
	ga.info.Generation = ga.generation
	ga.info.MaxGenerations = ga.cfg.MaxGenerations
	ga.info.NumObjectives = ga.numObj
	ga.info.PopSize = ga.cfg.PopulationSize
	ga.info.EvalCount = ga.evals
	ga.info.Fitness = ToFitnessMatrix(ga.pop)
	ga.info.Objectives = ObjectiveStats(ga.info.Fitness)
}

func (ga *GA[T]) workers() int {
	if ga.cfg.Workers > 0 {
		return ga.cfg.Workers
	}
	return runtime.GOMAXPROCS(0)
}
