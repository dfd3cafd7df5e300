package wiring

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"wirelab/internal/grade"
	"wirelab/internal/store"
)

var _ = ginkgo.Describe("Run", func() {
	ginkgo.It("grades, saves the attempt, and writes the report", func() {
		st := store.NewMemStore()
		dir := ginkgo.GinkgoT().TempDir()
		reportPath := filepath.Join(dir, "report.txt")

		id, err := Run("ohms-law-basics", perfectAnswers(), st, reportPath)
		gomega.Expect(err).To(gomega.Succeed())
		gomega.Expect(id).To(gomega.BeNumerically(">", 0))

		a, err := st.GetAttempt(id)
		gomega.Expect(err).To(gomega.Succeed())
		gomega.Expect(a.Kind).To(gomega.Equal(store.KindGrade))
		gomega.Expect(a.Worksheet).To(gomega.Equal("ohms-law-basics"))
		gomega.Expect(a.Correct).To(gomega.Equal(8))
		gomega.Expect(a.Total).To(gomega.Equal(8))

		checks, err := st.ListChecks(id)
		gomega.Expect(err).To(gomega.Succeed())
		gomega.Expect(checks).To(gomega.HaveLen(8))

		data, err := os.ReadFile(reportPath)
		gomega.Expect(err).To(gomega.Succeed())
		gomega.Expect(string(data)).To(gomega.ContainSubstring("RESULT: PASS"))
	})

	ginkgo.It("persists through SQLite the same way", func() {
		dir := ginkgo.GinkgoT().TempDir()
		st, err := store.Open(filepath.Join(dir, "wiring.db"))
		gomega.Expect(err).To(gomega.Succeed())
		defer st.Close()

		ans := perfectAnswers()
		ans.Answers["P1"]["watts"] = 1 // one wrong answer

		id, err := Run("ohms-law-basics", ans, st, "")
		gomega.Expect(err).To(gomega.Succeed())

		a, err := st.GetAttempt(id)
		gomega.Expect(err).To(gomega.Succeed())
		gomega.Expect(a.Correct).To(gomega.Equal(7))
		gomega.Expect(a.Total).To(gomega.Equal(8))

		checks, err := st.ListChecks(id)
		gomega.Expect(err).To(gomega.Succeed())
		wrong := 0
		for _, c := range checks {
			if !c.Correct {
				wrong++
				gomega.Expect(c.ProblemID).To(gomega.Equal("P1"))
				gomega.Expect(c.Quantity).To(gomega.Equal("watts"))
			}
		}
		gomega.Expect(wrong).To(gomega.Equal(1))
	})

	ginkgo.It("rejects an unknown worksheet", func() {
		st := store.NewMemStore()
		_, err := Run("no-such-sheet", perfectAnswers(), st, "")
		gomega.Expect(err).To(gomega.HaveOccurred())
		gomega.Expect(strings.Contains(err.Error(), "no-such-sheet")).To(gomega.BeTrue())
	})
})

// perfectAnswers fills every asked quantity of ohms-law-basics correctly.
func perfectAnswers() *grade.AnswerSheet {
	return &grade.AnswerSheet{
		Worksheet: "ohms-law-basics",
		Student:   "ada",
		Answers: map[string]map[string]float64{
			"P1": {"current": 3, "watts": 36},
			"P2": {"resistance": 18, "watts": 4.5},
			"P3": {"voltage": 20, "watts": 40},
			"P4": {"current": 3, "watts": 72},
		},
	}
}
