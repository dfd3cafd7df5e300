// Package wire resolves the four W.I.R.E. quantities of a DC circuit: watts,
// current (I), resistance, and voltage (E). Callers provide any subset of the
// four; the resolver derives the rest through Ohm's law and the power
// formulas, or reports that the system is underdetermined.
//
// Resolve is a pure function of its input: no I/O, no logging, no shared
// state. Grading, live displays, and tool servers all call it directly.
package wire

import "errors"

// Quantity names one of the four resolvable slots. The string values double
// as YAML/JSON keys in worksheets and tool payloads.
type Quantity string

const (
	Watts      Quantity = "watts"
	Current    Quantity = "current"
	Resistance Quantity = "resistance"
	Voltage    Quantity = "voltage"
)

// Quantities lists the four slots in canonical W.I.R.E. order.
var Quantities = []Quantity{Watts, Current, Resistance, Voltage}

// Valid reports whether q names one of the four quantities.
func (q Quantity) Valid() bool {
	switch q {
	case Watts, Current, Resistance, Voltage:
		return true
	}
	return false
}

// Symbol returns the single-letter symbol used in formula labels:
// W, I, R, or E (voltage as EMF).
func (q Quantity) Symbol() string {
	switch q {
	case Watts:
		return "W"
	case Current:
		return "I"
	case Resistance:
		return "R"
	case Voltage:
		return "E"
	}
	return "?"
}

// Givens is a partial quantity set. Missing entries are unknown; entries that
// are NaN or infinite are also treated as unknown. Keys that are not one of
// the four quantities are ignored.
type Givens map[Quantity]float64

// Set is a fully resolved quantity set.
type Set struct {
	Watts      float64 `json:"watts"`
	Current    float64 `json:"current"`
	Resistance float64 `json:"resistance"`
	Voltage    float64 `json:"voltage"`
}

// Get returns the value of the named quantity. Unknown names return 0.
func (s Set) Get(q Quantity) float64 {
	switch q {
	case Watts:
		return s.Watts
	case Current:
		return s.Current
	case Resistance:
		return s.Resistance
	case Voltage:
		return s.Voltage
	}
	return 0
}

// Derivation records how a quantity obtained its final value: the formula
// label and the quantities it consumed, in formula order. A quantity carries
// at most one record per solve; when several rules wrote the slot, the last
// write is the one described.
type Derivation struct {
	Formula string     `json:"formula"`
	Inputs  []Quantity `json:"inputs"`
}

// Solution is a resolved set plus the provenance of every value that was
// computed rather than taken verbatim from the givens.
type Solution struct {
	Set
	Derivations map[Quantity]Derivation `json:"derivations"`
}

// ErrUnderdetermined is returned when the provided values cannot produce all
// four quantities.
var ErrUnderdetermined = errors.New("wire: unable to resolve all W.I.R.E. metrics from provided values")

// UnderdeterminedError lists the quantities that stayed unknown. It unwraps
// to ErrUnderdetermined so callers can branch with errors.Is.
type UnderdeterminedError struct {
	Missing []Quantity
}

func (e *UnderdeterminedError) Error() string { return ErrUnderdetermined.Error() }

func (e *UnderdeterminedError) Unwrap() error { return ErrUnderdetermined }
