package evolve

import "errors"

// Error kinds surfaced by Solve and by the operator constructors. They are
// matched with errors.Is; the wrapping message carries the detail.
var (
	// ErrInvalidArgument marks rates outside [0, 1], bad bounds, zero
	// sizes, and similar configuration mistakes.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDimensionMismatch marks fitness vectors, bounds vectors, or
	// preset chromosomes of the wrong length.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrNumeric marks NaN or infinite fitness values.
	ErrNumeric = errors.New("numeric error")

	// ErrContract marks operators that break their contracts, such as a
	// mutation or repair changing the chromosome length.
	ErrContract = errors.New("contract violation")
)
