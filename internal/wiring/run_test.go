package wiring

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"wirelab/internal/grade"
	"wirelab/internal/store"
)

// BDD: Given a worksheet and an answer sheet, When the full flow runs, Then attempt stored, checks recorded, report written.
func TestRun_FullFlowStoresAttemptRecordsChecksWritesReport(t *testing.T) {
	st := store.NewMemStore()
	dir := t.TempDir()
	reportPath := filepath.Join(dir, "report.txt")
	ans := &grade.AnswerSheet{
		Worksheet: "ohms-law-basics",
		Student:   "ada",
		Answers: map[string]map[string]float64{
			"P1": {"current": 3, "watts": 36},
		},
	}

	id, err := Run("ohms-law-basics", ans, st, reportPath)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// (1) Attempt in store
	a, err := st.GetAttempt(id)
	if err != nil || a == nil {
		t.Fatalf("attempt not in store: err=%v", err)
	}
	if a.Worksheet != "ohms-law-basics" {
		t.Errorf("attempt Worksheet: got %q want ohms-law-basics", a.Worksheet)
	}
	if a.Correct != 2 || a.Total != 8 {
		t.Errorf("attempt score: got %d/%d want 2/8", a.Correct, a.Total)
	}
	var savedAnswers map[string]map[string]float64
	if err := json.Unmarshal([]byte(a.Input), &savedAnswers); err != nil {
		t.Fatalf("attempt Input unmarshal: %v", err)
	}
	if savedAnswers["P1"]["watts"] != 36 {
		t.Errorf("attempt Input P1 watts: got %v want 36", savedAnswers["P1"]["watts"])
	}

	// (2) One check row per asked quantity
	checks, err := st.ListChecks(id)
	if err != nil {
		t.Fatalf("ListChecks: %v", err)
	}
	if len(checks) != 8 {
		t.Fatalf("checks: got %d want 8", len(checks))
	}
	answered := 0
	for _, c := range checks {
		if c.Answered {
			answered++
			if !c.Correct {
				t.Errorf("check %s/%s: answered correctly but marked wrong", c.ProblemID, c.Quantity)
			}
		}
	}
	if answered != 2 {
		t.Errorf("answered checks: got %d want 2", answered)
	}

	// (3) Report file written
	data, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("report file: %v", err)
	}
	if got := string(data); !strings.Contains(got, "RESULT: FAIL (2/8 correct, 25.0%)") {
		t.Errorf("report missing result line:\n%s", got)
	}
}

func TestRun_SaveErrorSurfaces(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "flow.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	st.Close() // closed store makes SaveAttempt fail

	ans := &grade.AnswerSheet{Worksheet: "ohms-law-basics", Answers: map[string]map[string]float64{}}
	if _, err := Run("ohms-law-basics", ans, st, ""); err == nil {
		t.Fatal("expected error from closed store")
	}
}
