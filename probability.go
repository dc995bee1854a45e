package evolve

import (
	"fmt"
	"math"
)

// CheckRate validates an operator rate: crossover and mutation
// probabilities must lie in the closed interval [0, 1].
func CheckRate(name string, p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("%s rate %v outside [0, 1]: %w", name, p, ErrInvalidArgument)
	}
	return nil
}
