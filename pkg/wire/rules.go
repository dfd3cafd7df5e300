package wire

import (
	"math"

	"wirelab/pkg/approx"
)

// rule is one guarded derivation: when every input quantity is known and the
// guard holds, compute produces a candidate value for target. Inputs are
// listed in formula order and become the Derivation record verbatim.
type rule struct {
	target  Quantity
	formula string
	inputs  []Quantity
	guard   func(st *state) bool
	compute func(st *state) float64
}

// ruleTable is evaluated top to bottom on every pass; order is priority.
// Direct Ohm's-law forms come first, then the power identities, then the
// inverted power forms. Division and square-root guards compare against the
// fixed approx.Epsilon, not the solver's change tolerance.
var ruleTable = []rule{
	{
		target: Voltage, formula: "E = I × R",
		inputs:  []Quantity{Current, Resistance},
		compute: func(st *state) float64 { return st.val[Current] * st.val[Resistance] },
	},
	{
		target: Current, formula: "I = E / R",
		inputs:  []Quantity{Voltage, Resistance},
		guard:   func(st *state) bool { return math.Abs(st.val[Resistance]) > approx.Epsilon },
		compute: func(st *state) float64 { return st.val[Voltage] / st.val[Resistance] },
	},
	{
		target: Resistance, formula: "R = E / I",
		inputs:  []Quantity{Voltage, Current},
		guard:   func(st *state) bool { return math.Abs(st.val[Current]) > approx.Epsilon },
		compute: func(st *state) float64 { return st.val[Voltage] / st.val[Current] },
	},
	{
		target: Watts, formula: "W = E × I",
		inputs:  []Quantity{Voltage, Current},
		compute: func(st *state) float64 { return st.val[Voltage] * st.val[Current] },
	},
	{
		target: Watts, formula: "W = I² × R",
		inputs:  []Quantity{Current, Resistance},
		compute: func(st *state) float64 { return st.val[Current] * st.val[Current] * st.val[Resistance] },
	},
	{
		target: Watts, formula: "W = E² / R",
		inputs:  []Quantity{Voltage, Resistance},
		guard:   func(st *state) bool { return math.Abs(st.val[Resistance]) > approx.Epsilon },
		compute: func(st *state) float64 { return st.val[Voltage] * st.val[Voltage] / st.val[Resistance] },
	},
	{
		target: Voltage, formula: "E = W / I",
		inputs:  []Quantity{Watts, Current},
		guard:   func(st *state) bool { return math.Abs(st.val[Current]) > approx.Epsilon },
		compute: func(st *state) float64 { return st.val[Watts] / st.val[Current] },
	},
	{
		target: Voltage, formula: "E = √(W × R)",
		inputs:  []Quantity{Watts, Resistance},
		guard:   func(st *state) bool { return st.val[Watts] >= 0 && st.val[Resistance] >= 0 },
		compute: func(st *state) float64 { return math.Sqrt(st.val[Watts] * st.val[Resistance]) },
	},
	{
		target: Current, formula: "I = W / E",
		inputs:  []Quantity{Watts, Voltage},
		guard:   func(st *state) bool { return math.Abs(st.val[Voltage]) > approx.Epsilon },
		compute: func(st *state) float64 { return st.val[Watts] / st.val[Voltage] },
	},
	{
		target: Current, formula: "I = √(W / R)",
		inputs:  []Quantity{Watts, Resistance},
		guard:   func(st *state) bool { return st.val[Resistance] >= approx.Epsilon },
		compute: func(st *state) float64 { return math.Sqrt(st.val[Watts] / st.val[Resistance]) },
	},
	{
		target: Resistance, formula: "R = W / I²",
		inputs:  []Quantity{Watts, Current},
		guard:   func(st *state) bool { return math.Abs(st.val[Current]) > approx.Epsilon },
		compute: func(st *state) float64 { return st.val[Watts] / (st.val[Current] * st.val[Current]) },
	},
	{
		target: Resistance, formula: "R = E² / W",
		inputs:  []Quantity{Voltage, Watts},
		guard:   func(st *state) bool { return math.Abs(st.val[Watts]) > approx.Epsilon },
		compute: func(st *state) float64 { return st.val[Voltage] * st.val[Voltage] / st.val[Watts] },
	},
}
