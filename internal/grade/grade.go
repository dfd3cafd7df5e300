// Package grade scores learner answer sheets against worksheets. The answer
// key is computed on the fly: wire.Resolve for DC problems, acnet.Solve for
// AC problems. An entered value is correct when it matches the expected value
// within Tolerance; asked quantities left unanswered count as incorrect.
package grade

import (
	"fmt"

	"wirelab/internal/worksheet"
	"wirelab/pkg/acnet"
	"wirelab/pkg/approx"
	"wirelab/pkg/wire"
)

// Tolerance is the answer comparison tolerance: one percent relative for
// magnitudes above one, 0.01 absolute near zero.
const Tolerance = 0.01

// AnswerSheet holds one learner's entered answers, keyed by problem ID and
// then by quantity key.
type AnswerSheet struct {
	Worksheet string                        `yaml:"worksheet"`
	Student   string                        `yaml:"student,omitempty"`
	Answers   map[string]map[string]float64 `yaml:"answers"`
}

// Check records the outcome for a single asked quantity.
type Check struct {
	ProblemID string  `json:"problem_id"`
	Key       string  `json:"key"`
	Expected  float64 `json:"expected"`
	Entered   float64 `json:"entered"`
	Answered  bool    `json:"answered"`
	Correct   bool    `json:"correct"`
}

// Result is the graded outcome of one answer sheet. Checks appear in
// worksheet order. Problems whose answer key could not be computed are
// listed in Errors and excluded from Total.
type Result struct {
	Worksheet string   `json:"worksheet"`
	Student   string   `json:"student,omitempty"`
	Checks    []Check  `json:"checks"`
	Correct   int      `json:"correct"`
	Total     int      `json:"total"`
	Score     float64  `json:"score"`
	Errors    []string `json:"errors,omitempty"`
}

// Grade scores one answer sheet against a worksheet. It never fails outright:
// per-problem trouble is recorded in Result.Errors and grading continues with
// the remaining problems.
func Grade(ws *worksheet.Worksheet, ans *AnswerSheet) *Result {
	res := &Result{
		Worksheet: ws.Name,
		Student:   ans.Student,
	}
	if ans.Worksheet != "" && ans.Worksheet != ws.Name {
		res.Errors = append(res.Errors,
			fmt.Sprintf("answer sheet names worksheet %q, grading against %q", ans.Worksheet, ws.Name))
	}

	for i := range ws.Problems {
		p := &ws.Problems[i]
		key, err := answerKey(p)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("problem %s: %v", p.ID, err))
			continue
		}
		entered := ans.Answers[p.ID]
		for _, q := range p.Asked() {
			c := Check{ProblemID: p.ID, Key: q, Expected: key[q]}
			if v, ok := entered[q]; ok {
				c.Entered = v
				c.Answered = true
				c.Correct = approx.EqualTol(v, c.Expected, Tolerance)
			}
			res.Checks = append(res.Checks, c)
			res.Total++
			if c.Correct {
				res.Correct++
			}
		}
	}

	if res.Total > 0 {
		res.Score = float64(res.Correct) / float64(res.Total)
	}
	return res
}

// answerKey computes the expected value for every asked quantity of one
// problem.
func answerKey(p *worksheet.Problem) (map[string]float64, error) {
	out := make(map[string]float64, len(p.Asked()))
	if p.IsAC() {
		r := acnet.Solve(*p.AC)
		for _, key := range p.AskAC {
			v, ok := r.Get(key)
			if !ok {
				return nil, fmt.Errorf("unknown AC quantity %q", key)
			}
			out[key] = v
		}
		return out, nil
	}
	sol, err := wire.Resolve(p.WireGivens())
	if err != nil {
		return nil, err
	}
	for _, key := range p.Ask {
		out[key] = sol.Set.Get(wire.Quantity(key))
	}
	return out, nil
}
