// Package sweep evaluates an AC circuit across a frequency band. A sweep
// backs the analysis panel's slider range: one acnet.Solve per sample
// frequency, exportable as CSV or as an impedance and phase plot. Spacing is
// linear or logarithmic; circuits carrying both inductance and capacitance
// get the series resonant frequency in the response.
package sweep

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"wirelab/pkg/acnet"
)

// DefaultPoints is the sample count used when Config.Points is zero.
const DefaultPoints = 200

// Config describes the frequency band to sweep.
type Config struct {
	From   float64 `json:"from" yaml:"from"`
	To     float64 `json:"to" yaml:"to"`
	Points int     `json:"points" yaml:"points"`
	Log    bool    `json:"log" yaml:"log"`
}

func (c Config) validate() error {
	if c.From <= 0 {
		return fmt.Errorf("sweep start must be greater than zero, got %g", c.From)
	}
	if c.To <= c.From {
		return fmt.Errorf("sweep end %g must be greater than start %g", c.To, c.From)
	}
	if c.Points < 2 {
		return fmt.Errorf("sweep needs at least 2 points, got %d", c.Points)
	}
	return nil
}

// Response is a completed sweep. Freqs and Results are index-aligned;
// ResonanceHz is zero when the circuit has no LC pair.
type Response struct {
	Config      Config         `json:"config"`
	Input       acnet.Input    `json:"input"`
	Freqs       []float64      `json:"freqs"`
	Results     []acnet.Result `json:"results"`
	ResonanceHz float64        `json:"resonance_hz,omitempty"`
}

// Run evaluates base at every sample frequency in the band. The base input's
// own frequency is ignored; each sample replaces it.
func Run(base acnet.Input, cfg Config) (*Response, error) {
	if cfg.Points == 0 {
		cfg.Points = DefaultPoints
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	probe := base
	probe.FrequencyHz = cfg.From
	if msgs := acnet.Validate(probe); len(msgs) > 0 {
		return nil, fmt.Errorf("invalid circuit: %s", strings.Join(msgs, "; "))
	}

	freqs := make([]float64, cfg.Points)
	if cfg.Log {
		floats.LogSpan(freqs, cfg.From, cfg.To)
	} else {
		floats.Span(freqs, cfg.From, cfg.To)
	}

	results := make([]acnet.Result, cfg.Points)
	for i, f := range freqs {
		in := base
		in.FrequencyHz = f
		results[i] = acnet.Solve(in)
	}

	resp := &Response{
		Config:  cfg,
		Input:   base,
		Freqs:   freqs,
		Results: results,
	}
	if base.Inductance > 0 && base.Capacitance > 0 {
		resp.ResonanceHz = Resonance(base.Inductance, base.Capacitance)
	}
	return resp, nil
}

// Resonance returns the series resonant frequency 1/(2π√(LC)).
func Resonance(inductance, capacitance float64) float64 {
	return 1 / (2 * math.Pi * math.Sqrt(inductance*capacitance))
}

// MinImpedance returns the index of the sample with the smallest impedance
// magnitude, -1 for an empty response.
func (r *Response) MinImpedance() int {
	best := -1
	for i, res := range r.Results {
		if best == -1 || res.Impedance < r.Results[best].Impedance {
			best = i
		}
	}
	return best
}
