package acnet

import (
	"math"

	"wirelab/pkg/approx"
)

// Solve derives the full AC quantity set from in. Evaluation order is fixed;
// later steps consume the unrounded values of earlier ones, rounding is
// applied once when the Result is assembled.
//
// Degenerate inputs follow three guards: capacitive reactance is 0 when
// frequency or capacitance is 0, phase snaps to ±90° when resistance is 0,
// and current is 0 when impedance is at or below approx.Epsilon.
func Solve(in Input) Result {
	xl := 2 * math.Pi * in.FrequencyHz * in.Inductance

	var xc float64
	if in.FrequencyHz != 0 && in.Capacitance != 0 {
		xc = 1 / (2 * math.Pi * in.FrequencyHz * in.Capacitance)
	}

	net := xl - xc
	z := math.Hypot(in.Resistance, net)

	var phase float64
	if in.Resistance == 0 {
		if net >= 0 {
			phase = 90
		} else {
			phase = -90
		}
	} else {
		phase = math.Atan(net/in.Resistance) * 180 / math.Pi
	}

	pf := math.Cos(phase * math.Pi / 180)

	var current float64
	if z > approx.Epsilon {
		current = in.Voltage / z
	}

	apparent := in.Voltage * current
	active := apparent * pf
	reactive := apparent * math.Sin(phase*math.Pi/180)

	return Result{
		FrequencyHz:         in.FrequencyHz,
		InductiveReactance:  round(xl, 4),
		CapacitiveReactance: round(xc, 4),
		NetReactance:        round(net, 4),
		Impedance:           round(z, 4),
		PhaseDegrees:        round(phase, 2),
		PowerFactor:         round(pf, 4),
		Current:             round(current, 6),
		ApparentPower:       round(apparent, 4),
		RealPower:           round(active, 4),
		ReactivePower:       round(reactive, 4),
	}
}

// round keeps n decimal places and normalizes negative zero.
func round(v float64, n int) float64 {
	p := math.Pow(10, float64(n))
	r := math.Round(v*p) / p
	if r == 0 {
		return 0
	}
	return r
}
