package grade_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"wirelab/internal/grade"
	"wirelab/internal/worksheet"
)

func mustWorksheet(t *testing.T, name string) *worksheet.Worksheet {
	t.Helper()
	ws, err := worksheet.LoadEmbedded(name)
	if err != nil {
		t.Fatalf("load worksheet %s: %v", name, err)
	}
	return ws
}

func TestGradePerfect(t *testing.T) {
	ws := mustWorksheet(t, "ohms-law-basics")
	ans := &grade.AnswerSheet{
		Worksheet: "ohms-law-basics",
		Student:   "ada",
		Answers: map[string]map[string]float64{
			"P1": {"current": 3, "watts": 36},
			"P2": {"resistance": 18, "watts": 4.5},
			"P3": {"voltage": 20, "watts": 40},
			"P4": {"current": 3, "watts": 72},
		},
	}

	res := grade.Grade(ws, ans)

	if res.Correct != 8 || res.Total != 8 {
		t.Fatalf("Correct/Total = %d/%d, want 8/8", res.Correct, res.Total)
	}
	if res.Score != 1.0 {
		t.Errorf("Score = %v, want 1.0", res.Score)
	}
	if len(res.Errors) != 0 {
		t.Errorf("unexpected errors: %v", res.Errors)
	}

	want := []grade.Check{
		{ProblemID: "P1", Key: "current", Expected: 3, Entered: 3, Answered: true, Correct: true},
		{ProblemID: "P1", Key: "watts", Expected: 36, Entered: 36, Answered: true, Correct: true},
		{ProblemID: "P2", Key: "resistance", Expected: 18, Entered: 18, Answered: true, Correct: true},
		{ProblemID: "P2", Key: "watts", Expected: 4.5, Entered: 4.5, Answered: true, Correct: true},
		{ProblemID: "P3", Key: "voltage", Expected: 20, Entered: 20, Answered: true, Correct: true},
		{ProblemID: "P3", Key: "watts", Expected: 40, Entered: 40, Answered: true, Correct: true},
		{ProblemID: "P4", Key: "current", Expected: 3, Entered: 3, Answered: true, Correct: true},
		{ProblemID: "P4", Key: "watts", Expected: 72, Entered: 72, Answered: true, Correct: true},
	}
	if diff := cmp.Diff(want, res.Checks); diff != "" {
		t.Errorf("Checks mismatch (-want +got):\n%s", diff)
	}
}

// TestGradeTolerance exercises the one-percent band: close answers pass,
// sloppy ones fail, blanks count against the score.
func TestGradeTolerance(t *testing.T) {
	ws := mustWorksheet(t, "ohms-law-basics")
	ans := &grade.AnswerSheet{
		Answers: map[string]map[string]float64{
			// 2.98 and 17.95 sit inside the band; 36.5 and 4.4 miss it.
			"P1": {"current": 2.98, "watts": 36.5},
			"P2": {"resistance": 17.95, "watts": 4.4},
		},
	}

	res := grade.Grade(ws, ans)

	if res.Correct != 2 || res.Total != 8 {
		t.Fatalf("Correct/Total = %d/%d, want 2/8", res.Correct, res.Total)
	}
	if res.Score != 0.25 {
		t.Errorf("Score = %v, want 0.25", res.Score)
	}

	byKey := make(map[string]grade.Check)
	for _, c := range res.Checks {
		byKey[c.ProblemID+"/"+c.Key] = c
	}
	for _, tt := range []struct {
		key      string
		answered bool
		correct  bool
	}{
		{"P1/current", true, true},
		{"P1/watts", true, false},
		{"P2/resistance", true, true},
		{"P2/watts", true, false},
		{"P3/voltage", false, false},
		{"P3/watts", false, false},
		{"P4/current", false, false},
		{"P4/watts", false, false},
	} {
		c, ok := byKey[tt.key]
		if !ok {
			t.Fatalf("no check recorded for %s", tt.key)
		}
		if c.Answered != tt.answered || c.Correct != tt.correct {
			t.Errorf("%s: answered=%v correct=%v, want answered=%v correct=%v",
				tt.key, c.Answered, c.Correct, tt.answered, tt.correct)
		}
	}
}

func TestGradeAC(t *testing.T) {
	ws := mustWorksheet(t, "ac-reactance")
	ans := &grade.AnswerSheet{
		Worksheet: "ac-reactance",
		Answers: map[string]map[string]float64{
			"A1": {"inductive_reactance": 62.83, "impedance": 80.3, "current": 0.1245},
			// phase sign flipped: capacitive circuits lag, so +57.86 is wrong
			"A2": {"capacitive_reactance": 79.58, "impedance": 93.98, "phase_degrees": 57.86},
			"A3": {"inductive_reactance": 37.7, "phase_degrees": 90, "current": 0.6366},
		},
	}

	res := grade.Grade(ws, ans)

	if res.Correct != 8 || res.Total != 9 {
		t.Fatalf("Correct/Total = %d/%d, want 8/9", res.Correct, res.Total)
	}
	for _, c := range res.Checks {
		wantCorrect := !(c.ProblemID == "A2" && c.Key == "phase_degrees")
		if c.Correct != wantCorrect {
			t.Errorf("%s/%s: correct=%v, want %v (expected %v, entered %v)",
				c.ProblemID, c.Key, c.Correct, wantCorrect, c.Expected, c.Entered)
		}
	}
}

func TestGradeWorksheetMismatch(t *testing.T) {
	ws := mustWorksheet(t, "ohms-law-basics")
	ans := &grade.AnswerSheet{
		Worksheet: "power-practice",
		Answers:   map[string]map[string]float64{"P1": {"current": 3}},
	}

	res := grade.Grade(ws, ans)

	if len(res.Errors) != 1 || !strings.Contains(res.Errors[0], "names worksheet") {
		t.Fatalf("Errors = %v, want worksheet mismatch note", res.Errors)
	}
	// Grading still proceeds against the provided worksheet.
	if res.Total != 8 {
		t.Errorf("Total = %d, want 8", res.Total)
	}
}

// TestGradeUnresolvable covers a worksheet problem whose answer key cannot be
// computed: the problem is reported and skipped, the rest grades normally.
func TestGradeUnresolvable(t *testing.T) {
	ws := &worksheet.Worksheet{
		Name: "broken",
		Problems: []worksheet.Problem{
			{ID: "B1", Givens: map[string]float64{"watts": 36}, Ask: []string{"voltage"}},
			{ID: "B2", Givens: map[string]float64{"voltage": 12, "resistance": 4}, Ask: []string{"current"}},
		},
	}
	ans := &grade.AnswerSheet{
		Answers: map[string]map[string]float64{
			"B1": {"voltage": 12},
			"B2": {"current": 3},
		},
	}

	res := grade.Grade(ws, ans)

	if len(res.Errors) != 1 || !strings.Contains(res.Errors[0], "problem B1") {
		t.Fatalf("Errors = %v, want one entry for problem B1", res.Errors)
	}
	if !strings.Contains(res.Errors[0], "unable to resolve") {
		t.Errorf("Errors[0] = %q, want resolver message", res.Errors[0])
	}
	if res.Correct != 1 || res.Total != 1 {
		t.Errorf("Correct/Total = %d/%d, want 1/1", res.Correct, res.Total)
	}
	if res.Score != 1.0 {
		t.Errorf("Score = %v, want 1.0", res.Score)
	}
}

func TestGradeBatch(t *testing.T) {
	ws := mustWorksheet(t, "ohms-law-basics")
	sheets := []*grade.AnswerSheet{
		{
			Student: "perfect",
			Answers: map[string]map[string]float64{
				"P1": {"current": 3, "watts": 36},
				"P2": {"resistance": 18, "watts": 4.5},
				"P3": {"voltage": 20, "watts": 40},
				"P4": {"current": 3, "watts": 72},
			},
		},
		{
			Student: "partial",
			Answers: map[string]map[string]float64{
				"P1": {"current": 3, "watts": 36},
			},
		},
		{
			Student: "lost",
			Answers: map[string]map[string]float64{
				"P9": {"current": 1}, // no such problem; every ask stays blank
			},
		},
	}

	results := grade.GradeBatch(context.Background(), ws, sheets, 2)

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	wantCorrect := []int{8, 2, 0}
	wantStudent := []string{"perfect", "partial", "lost"}
	for i, res := range results {
		if res == nil {
			t.Fatalf("results[%d] is nil", i)
		}
		if res.Student != wantStudent[i] {
			t.Errorf("results[%d].Student = %q, want %q (order not preserved)", i, res.Student, wantStudent[i])
		}
		if res.Correct != wantCorrect[i] || res.Total != 8 {
			t.Errorf("results[%d] = %d/%d, want %d/8", i, res.Correct, res.Total, wantCorrect[i])
		}
	}
}

func TestGradeBatchClampsParallel(t *testing.T) {
	ws := mustWorksheet(t, "ohms-law-basics")
	sheets := []*grade.AnswerSheet{
		{Answers: map[string]map[string]float64{"P1": {"current": 3}}},
	}

	results := grade.GradeBatch(context.Background(), ws, sheets, 0)

	if len(results) != 1 || results[0] == nil {
		t.Fatalf("results = %v, want one non-nil result", results)
	}
	if results[0].Correct != 1 {
		t.Errorf("Correct = %d, want 1", results[0].Correct)
	}
}

func TestLoadAnswers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ada.yaml")
	data := `worksheet: ohms-law-basics
student: ada
answers:
  P1:
    current: 3
    watts: 36
  P2:
    resistance: 18
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	ans, err := grade.LoadAnswers(path)
	if err != nil {
		t.Fatalf("LoadAnswers: %v", err)
	}
	if ans.Worksheet != "ohms-law-basics" || ans.Student != "ada" {
		t.Errorf("header = %q/%q, want ohms-law-basics/ada", ans.Worksheet, ans.Student)
	}
	if got := ans.Answers["P1"]["watts"]; got != 36 {
		t.Errorf("P1 watts = %v, want 36", got)
	}
	if got := ans.Answers["P2"]["resistance"]; got != 18 {
		t.Errorf("P2 resistance = %v, want 18", got)
	}
}

func TestLoadAnswersErrors(t *testing.T) {
	if _, err := grade.LoadAnswers(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"bad yaml", "answers: [not a map", "parse"},
		{"no answers", "worksheet: x\nanswers: {}\n", "no answers"},
		{"nan answer", "answers:\n  P1:\n    watts: .nan\n", "not a finite number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := grade.ParseAnswers([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}
