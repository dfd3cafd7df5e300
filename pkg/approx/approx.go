// Package approx provides the tolerance-aware float comparisons shared by the
// resolver, the AC evaluator, and grading consumers.
//
// Every comparison runs through one hybrid rule: a and b are equal when
// |a-b| <= tol * max(1, |a|, |b|). The absolute regime covers magnitudes at or
// below one, the relative regime everything above, so near-zero noise and
// large-magnitude rounding error are tolerated alike.
package approx

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Epsilon is the engine-wide comparison tolerance.
const Epsilon = 1e-9

// Equal reports whether a and b are equal within Epsilon.
func Equal(a, b float64) bool {
	return EqualTol(a, b, Epsilon)
}

// EqualTol reports whether a and b are equal within tol. The grader calls
// this with its own, much looser tolerance (1e-2) against solved values.
func EqualTol(a, b, tol float64) bool {
	return scalar.EqualWithinAbsOrRel(a, b, tol, tol)
}

// IsFinite reports whether x is a usable number, i.e. neither NaN nor an
// infinity. Callers treat non-finite values as unknown.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
