// Package worksheet defines practice worksheets: named sets of circuit
// problems with givens and asked quantities. Worksheets ship embedded with
// the binary and can also be loaded from disk; the grader consumes them
// together with a learner's answer sheet.
package worksheet

import (
	"fmt"

	"wirelab/pkg/acnet"
	"wirelab/pkg/approx"
	"wirelab/pkg/wire"
)

// Worksheet is one named problem set.
type Worksheet struct {
	Name        string    `yaml:"name"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description,omitempty"`
	Problems    []Problem `yaml:"problems"`
}

// Problem is a single exercise. A DC problem carries Givens and Ask; an AC
// problem carries AC and AskAC. The two forms are mutually exclusive.
type Problem struct {
	ID     string             `yaml:"id"`
	Prompt string             `yaml:"prompt,omitempty"`
	Givens map[string]float64 `yaml:"givens,omitempty"`
	Ask    []string           `yaml:"ask,omitempty"`
	AC     *acnet.Input       `yaml:"ac,omitempty"`
	AskAC  []string           `yaml:"ask_ac,omitempty"`
}

// IsAC reports whether the problem is an AC exercise.
func (p *Problem) IsAC() bool { return p.AC != nil }

// Asked returns the asked quantity keys regardless of problem kind.
func (p *Problem) Asked() []string {
	if p.IsAC() {
		return p.AskAC
	}
	return p.Ask
}

// WireGivens converts a DC problem's givens to resolver input.
func (p *Problem) WireGivens() wire.Givens {
	g := make(wire.Givens, len(p.Givens))
	for k, v := range p.Givens {
		g[wire.Quantity(k)] = v
	}
	return g
}

// Validate checks the worksheet for structural problems: missing names,
// duplicate problem IDs, unknown quantity keys, and AC givens that fail
// acnet validation. The first problem found is returned.
func (w *Worksheet) Validate() error {
	if w.Name == "" {
		return fmt.Errorf("worksheet has no name")
	}
	if len(w.Problems) == 0 {
		return fmt.Errorf("worksheet %q has no problems", w.Name)
	}
	seen := make(map[string]bool, len(w.Problems))
	for i := range w.Problems {
		p := &w.Problems[i]
		if p.ID == "" {
			return fmt.Errorf("worksheet %q: problem %d has no id", w.Name, i+1)
		}
		if seen[p.ID] {
			return fmt.Errorf("worksheet %q: duplicate problem id %q", w.Name, p.ID)
		}
		seen[p.ID] = true
		if err := p.validate(); err != nil {
			return fmt.Errorf("worksheet %q: problem %q: %w", w.Name, p.ID, err)
		}
	}
	return nil
}

func (p *Problem) validate() error {
	dc := len(p.Givens) > 0 || len(p.Ask) > 0
	ac := p.AC != nil || len(p.AskAC) > 0
	switch {
	case dc && ac:
		return fmt.Errorf("mixes DC and AC fields")
	case !dc && !ac:
		return fmt.Errorf("has neither givens nor an AC circuit")
	case dc:
		if len(p.Givens) == 0 {
			return fmt.Errorf("has no givens")
		}
		if len(p.Ask) == 0 {
			return fmt.Errorf("asks for nothing")
		}
		for k, v := range p.Givens {
			if !wire.Quantity(k).Valid() {
				return fmt.Errorf("unknown given %q", k)
			}
			if !approx.IsFinite(v) {
				return fmt.Errorf("given %q is not a finite number", k)
			}
		}
		for _, k := range p.Ask {
			if !wire.Quantity(k).Valid() {
				return fmt.Errorf("unknown asked quantity %q", k)
			}
		}
	default:
		if p.AC == nil {
			return fmt.Errorf("asks for AC quantities without a circuit")
		}
		if msgs := acnet.Validate(*p.AC); len(msgs) > 0 {
			return fmt.Errorf("invalid AC circuit: %s", msgs[0])
		}
		if len(p.AskAC) == 0 {
			return fmt.Errorf("asks for nothing")
		}
		for _, k := range p.AskAC {
			if !acnet.ValidKey(k) {
				return fmt.Errorf("unknown asked AC quantity %q", k)
			}
		}
	}
	return nil
}
