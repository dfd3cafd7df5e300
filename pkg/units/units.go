// Package units renders quantity values for display: one number, adaptive
// precision, unit suffix. Large magnitudes shed decimals so mixed columns of
// milliamps and kilowatts stay readable.
package units

import (
	"math"
	"strconv"

	"wirelab/pkg/approx"
	"wirelab/pkg/wire"
)

// Unit suffixes used across displays and reports.
const (
	Volt            = "V"
	Amp             = "A"
	Ohm             = "Ω"
	Watt            = "W"
	Hertz           = "Hz"
	VoltAmp         = "VA"
	VoltAmpReactive = "VAR"
	Degree          = "°"
	Henry           = "H"
	Farad           = "F"
)

// Dash is rendered in place of values that are NaN or infinite.
const Dash = "—"

// Format renders v with the requested decimal count and unit suffix.
// Precision adapts to magnitude: the requested decimals apply below 10, at
// most two survive from 10, at most one from 100, and exactly one from 1000.
// A non-finite v renders as Dash with no suffix; an empty suffix renders the
// bare number.
func Format(v float64, decimals int, suffix string) string {
	if !approx.IsFinite(v) {
		return Dash
	}
	d := decimals
	switch mag := math.Abs(v); {
	case mag >= 1000:
		d = 1
	case mag >= 100:
		d = min(d, 1)
	case mag >= 10:
		d = min(d, 2)
	}
	s := strconv.FormatFloat(v, 'f', d, 64)
	if suffix == "" {
		return s
	}
	return s + " " + suffix
}

// ForQuantity returns the display suffix for a DC quantity.
func ForQuantity(q wire.Quantity) string {
	switch q {
	case wire.Watts:
		return Watt
	case wire.Current:
		return Amp
	case wire.Resistance:
		return Ohm
	case wire.Voltage:
		return Volt
	}
	return ""
}

// FormatQuantity renders a solved DC value with two requested decimals and
// its quantity suffix.
func FormatQuantity(v float64, q wire.Quantity) string {
	return Format(v, 2, ForQuantity(q))
}

// DecimalsForKey returns the display decimal count for an AC result key:
// six for current, two for phase, four for everything else.
func DecimalsForKey(key string) int {
	switch key {
	case "current":
		return 6
	case "phase_degrees":
		return 2
	}
	return 4
}

// ForKey returns the display suffix for an AC result key. Power factor is a
// ratio and has none.
func ForKey(key string) string {
	switch key {
	case "frequency_hz":
		return Hertz
	case "inductive_reactance", "capacitive_reactance", "net_reactance", "impedance":
		return Ohm
	case "phase_degrees":
		return Degree
	case "current":
		return Amp
	case "apparent_power":
		return VoltAmp
	case "real_power":
		return Watt
	case "reactive_power":
		return VoltAmpReactive
	}
	return ""
}
