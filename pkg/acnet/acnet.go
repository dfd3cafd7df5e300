// Package acnet evaluates single-loop series AC circuits: one sinusoidal
// source, a resistor, and optional inductive and capacitive elements. From
// the five inputs it derives reactances, impedance, phase angle, power
// factor, current, and the three powers in one fixed-order pass.
//
// Solve computes on any input. Validate is the separate gate callers run
// first when the values come from users; its messages are written for direct
// display next to an input field.
package acnet

// Input describes the circuit. Zero Inductance or Capacitance means the
// element is absent.
type Input struct {
	Voltage     float64 `json:"voltage" yaml:"voltage"`
	FrequencyHz float64 `json:"frequency_hz" yaml:"frequency_hz"`
	Resistance  float64 `json:"resistance" yaml:"resistance"`
	Inductance  float64 `json:"inductance,omitempty" yaml:"inductance,omitempty"`
	Capacitance float64 `json:"capacitance,omitempty" yaml:"capacitance,omitempty"`
}

// Result holds the derived AC quantities, rounded per field: four decimals
// for reactances, impedance, powers, and power factor, two for the phase
// angle in degrees, six for current. FrequencyHz echoes the input.
type Result struct {
	FrequencyHz         float64 `json:"frequency_hz"`
	InductiveReactance  float64 `json:"inductive_reactance"`
	CapacitiveReactance float64 `json:"capacitive_reactance"`
	NetReactance        float64 `json:"net_reactance"`
	Impedance           float64 `json:"impedance"`
	PhaseDegrees        float64 `json:"phase_degrees"`
	PowerFactor         float64 `json:"power_factor"`
	Current             float64 `json:"current"`
	ApparentPower       float64 `json:"apparent_power"`
	RealPower           float64 `json:"real_power"`
	ReactivePower       float64 `json:"reactive_power"`
}
