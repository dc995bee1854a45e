// Package stop provides the standard early stop conditions and the
// combinators composing them. Stop conditions are polled once at the end
// of each generation; the driver stops at its generation limit
// regardless.
package stop

import (
	"github.com/evolvelib/evolve"
	"github.com/evolvelib/evolve/vmath"
)

// DefaultDelta is the minimum fitness difference the stall conditions
// count as an improvement.
const DefaultDelta = 1e-6

// None never stops the run early.
type None struct{}

// Stop implements evolve.StopCondition.
func (None) Stop(*evolve.RunInfo) bool { return false }

// MaxEvals stops once the number of fitness evaluations reaches a limit.
// Since the condition is only polled between generations, the actual
// count may exceed the limit by up to one generation of evaluations.
type MaxEvals struct {
	limit int
}

// NewMaxEvals returns a stop condition on the evaluation count.
func NewMaxEvals(limit int) *MaxEvals {
	return &MaxEvals{limit: limit}
}

// Stop implements evolve.StopCondition.
func (s *MaxEvals) Stop(ri *evolve.RunInfo) bool {
	return ri.EvalCount >= s.limit
}

// FitnessValue stops once any candidate reaches a fitness threshold: its
// fitness vector equals or Pareto-dominates the threshold vector.
type FitnessValue struct {
	threshold evolve.FitnessVector
}

// NewFitnessValue returns a stop condition on reaching the given fitness
// threshold. The vector length must match the run's objective count.
func NewFitnessValue(threshold evolve.FitnessVector) *FitnessValue {
	return &FitnessValue{threshold: threshold}
}

// Stop implements evolve.StopCondition.
func (s *FitnessValue) Stop(ri *evolve.RunInfo) bool {
	for _, fvec := range ri.Fitness {
		if len(fvec) != len(s.threshold) {
			return false
		}
		if vmath.Dominates(fvec, s.threshold) || vmath.VecEqual(fvec, s.threshold) {
			return true
		}
	}
	return false
}

// stall tracks a reference fitness vector and counts the generations
// without an improvement of more than delta in any coordinate.
type stall struct {
	patience int
	delta    float64
	count    int
	best     evolve.FitnessVector
}

func (s *stall) observe(current evolve.FitnessVector) bool {
	if s.best == nil {
		s.best = append(evolve.FitnessVector(nil), current...)
		s.count = 0
		return false
	}

	improved := false
	for i := range current {
		if current[i]-s.best[i] > s.delta {
			improved = true
		}
		if current[i] > s.best[i] {
			s.best[i] = current[i]
		}
	}
	if improved {
		s.count = 0
		return false
	}
	s.count++
	return s.count >= s.patience
}

// MeanStall stops when the population's mean fitness has not improved in
// any objective for patience generations. An improvement is a gain of
// more than delta in at least one coordinate.
type MeanStall struct {
	stall
}

// NewMeanStall returns a mean-fitness stall condition with the given
// patience and improvement threshold.
func NewMeanStall(patience int, delta float64) *MeanStall {
	return &MeanStall{stall{patience: patience, delta: delta}}
}

// Stop implements evolve.StopCondition.
func (s *MeanStall) Stop(ri *evolve.RunInfo) bool {
	mean := make(evolve.FitnessVector, len(ri.Objectives))
	for i, obj := range ri.Objectives {
		mean[i] = obj.Mean()
	}
	return s.observe(mean)
}

// BestStall stops when the population's best fitness has not improved in
// any objective for patience generations.
type BestStall struct {
	stall
}

// NewBestStall returns a best-fitness stall condition with the given
// patience and improvement threshold.
func NewBestStall(patience int, delta float64) *BestStall {
	return &BestStall{stall{patience: patience, delta: delta}}
}

// Stop implements evolve.StopCondition.
func (s *BestStall) Stop(ri *evolve.RunInfo) bool {
	best := make(evolve.FitnessVector, len(ri.Objectives))
	for i, obj := range ri.Objectives {
		best[i] = obj.Max()
	}
	return s.observe(best)
}

// or combines conditions and stops when any member stops.
type or struct {
	parts []evolve.StopCondition
}

// Or returns a stop condition that is true when any part is true. Every
// part is evaluated on every poll, so stateful conditions keep their
// counters moving even when another part would already stop the run.
func Or(parts ...evolve.StopCondition) evolve.StopCondition {
	return &or{parts: parts}
}

// Stop implements evolve.StopCondition.
func (s *or) Stop(ri *evolve.RunInfo) bool {
	stopped := false
	for _, part := range s.parts {
		if part.Stop(ri) {
			stopped = true
		}
	}
	return stopped
}

// and combines conditions and stops only when all members stop.
type and struct {
	parts []evolve.StopCondition
}

// And returns a stop condition that is true when every part is true. As
// with Or, all parts are evaluated unconditionally.
func And(parts ...evolve.StopCondition) evolve.StopCondition {
	return &and{parts: parts}
}

// Stop implements evolve.StopCondition.
func (s *and) Stop(ri *evolve.RunInfo) bool {
	stopped := true
	for _, part := range s.parts {
		if !part.Stop(ri) {
			stopped = false
		}
	}
	return stopped
}
