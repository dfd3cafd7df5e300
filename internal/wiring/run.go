// Package wiring glues the engine layers end to end: worksheet loading,
// grading, attempt persistence, and report output. The CLI and the
// integration suite drive the same path.
package wiring

import (
	"encoding/json"
	"fmt"
	"os"

	"wirelab/internal/grade"
	"wirelab/internal/logging"
	"wirelab/internal/store"
	"wirelab/internal/worksheet"
)

// Run executes the full practice flow: resolve the worksheet, grade the
// answer sheet, save the attempt with its check rows, and write the report
// to reportPath (skipped when empty). The attempt id is returned for
// follow-up queries.
func Run(nameOrPath string, ans *grade.AnswerSheet, st store.Store, reportPath string) (int64, error) {
	ws, err := worksheet.Find(nameOrPath)
	if err != nil {
		return 0, err
	}

	res := grade.Grade(ws, ans)

	a, checks, err := BuildAttempt(ans, res)
	if err != nil {
		return 0, err
	}
	id, err := st.SaveAttempt(a, checks)
	if err != nil {
		return 0, fmt.Errorf("save attempt: %w", err)
	}

	if reportPath != "" {
		if err := os.WriteFile(reportPath, []byte(grade.FormatReport(res)), 0644); err != nil {
			return 0, fmt.Errorf("write report: %w", err)
		}
	}

	logging.New("wiring").Info("attempt recorded",
		"attempt_id", id, "worksheet", res.Worksheet, "correct", res.Correct, "total", res.Total)
	return id, nil
}

// BuildAttempt converts a graded sheet into its persisted form: one Attempt
// row plus one CheckRow per asked quantity. Input holds the learner's raw
// answers, Output the full grading result, both as JSON.
func BuildAttempt(ans *grade.AnswerSheet, res *grade.Result) (*store.Attempt, []store.CheckRow, error) {
	input, err := json.Marshal(ans.Answers)
	if err != nil {
		return nil, nil, fmt.Errorf("encode answers: %w", err)
	}
	output, err := json.Marshal(res)
	if err != nil {
		return nil, nil, fmt.Errorf("encode result: %w", err)
	}

	checks := make([]store.CheckRow, len(res.Checks))
	for i, c := range res.Checks {
		checks[i] = store.CheckRow{
			ProblemID: c.ProblemID,
			Quantity:  c.Key,
			Expected:  c.Expected,
			Entered:   c.Entered,
			Answered:  c.Answered,
			Correct:   c.Correct,
		}
	}

	a := &store.Attempt{
		Kind:      store.KindGrade,
		Worksheet: res.Worksheet,
		Student:   res.Student,
		Input:     string(input),
		Output:    string(output),
		Correct:   res.Correct,
		Total:     res.Total,
		Score:     res.Score,
	}
	return a, checks, nil
}
