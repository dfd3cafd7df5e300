package wire

import (
	"slices"

	"wirelab/pkg/approx"
)

// DefaultMaxPasses bounds the fixpoint loop. Twelve rules over four slots
// settle within two or three passes; the cap only matters for pathological
// overwrite chains.
const DefaultMaxPasses = 16

// Solver resolves partial quantity sets. The zero value is ready to use:
// a zero Tolerance means approx.Epsilon and a zero MaxPasses means
// DefaultMaxPasses.
type Solver struct {
	// Tolerance is the change-detection threshold: a rule whose candidate
	// value is within Tolerance of the slot's current value does not fire.
	Tolerance float64
	// MaxPasses caps the number of full passes over the rule table.
	MaxPasses int
}

// state tracks the four slots during a solve.
type state struct {
	val   map[Quantity]float64
	known map[Quantity]bool
}

func newState(g Givens) *state {
	st := &state{
		val:   make(map[Quantity]float64, len(Quantities)),
		known: make(map[Quantity]bool, len(Quantities)),
	}
	for _, q := range Quantities {
		v, ok := g[q]
		if !ok || !approx.IsFinite(v) {
			continue
		}
		st.set(q, v)
	}
	return st
}

func (st *state) set(q Quantity, v float64) {
	st.val[q] = v
	st.known[q] = true
}

func (st *state) knownAll(qs []Quantity) bool {
	for _, q := range qs {
		if !st.known[q] {
			return false
		}
	}
	return true
}

// Resolve derives the missing quantities from g. On success every slot is
// populated and Derivations describes each computed or overwritten value.
// When the rule table reaches a fixpoint with slots still unknown, the
// returned error unwraps to ErrUnderdetermined.
//
// Later rules may overwrite earlier values, givens included, whenever their
// candidate differs by more than the tolerance: last write wins. Inconsistent
// inputs therefore reconcile silently instead of failing.
func (s *Solver) Resolve(g Givens) (*Solution, error) {
	tol := s.Tolerance
	if tol == 0 {
		tol = approx.Epsilon
	}
	passes := s.MaxPasses
	if passes == 0 {
		passes = DefaultMaxPasses
	}

	st := newState(g)
	derived := make(map[Quantity]Derivation)

	for pass := 0; pass < passes; pass++ {
		productive := false
		for _, r := range ruleTable {
			if !st.knownAll(r.inputs) {
				continue
			}
			if r.guard != nil && !r.guard(st) {
				continue
			}
			v := r.compute(st)
			if !approx.IsFinite(v) {
				continue
			}
			if st.known[r.target] && approx.EqualTol(v, st.val[r.target], tol) {
				continue
			}
			st.set(r.target, v)
			derived[r.target] = Derivation{Formula: r.formula, Inputs: slices.Clone(r.inputs)}
			productive = true
		}
		if !productive {
			break
		}
	}

	var missing []Quantity
	for _, q := range Quantities {
		if !st.known[q] {
			missing = append(missing, q)
		}
	}
	if len(missing) > 0 {
		return nil, &UnderdeterminedError{Missing: missing}
	}

	return &Solution{
		Set: Set{
			Watts:      st.val[Watts],
			Current:    st.val[Current],
			Resistance: st.val[Resistance],
			Voltage:    st.val[Voltage],
		},
		Derivations: derived,
	}, nil
}

// Resolve runs a default Solver over g.
func Resolve(g Givens) (*Solution, error) {
	return (&Solver{}).Resolve(g)
}
