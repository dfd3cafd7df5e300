package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wirelab/internal/grade"
	"wirelab/internal/logging"
	"wirelab/internal/store"
	"wirelab/internal/wiring"
	"wirelab/internal/worksheet"
)

var gradeFlags struct {
	worksheet string
	answers   []string
	parallel  int
	save      bool
}

var gradeCmd = &cobra.Command{
	Use:   "grade",
	Short: "Grade answer sheets against a worksheet",
	Long: `Grade scores YAML answer sheets against a worksheet. The answer key is
computed on the fly, so any worksheet the solvers can handle is
gradeable. Pass --answers more than once to grade a whole class;
--save records each attempt in the history database.`,
	RunE: runGrade,
}

func init() {
	f := gradeCmd.Flags()
	f.StringVar(&gradeFlags.worksheet, "worksheet", "", "Worksheet name or YAML path")
	f.StringArrayVar(&gradeFlags.answers, "answers", nil, "Answer sheet YAML path (repeatable)")
	f.IntVar(&gradeFlags.parallel, "parallel", 1, "Number of sheets graded concurrently")
	f.BoolVar(&gradeFlags.save, "save", false, "Record attempts in the history database")
	_ = gradeCmd.MarkFlagRequired("worksheet")
	_ = gradeCmd.MarkFlagRequired("answers")
}

func runGrade(cmd *cobra.Command, _ []string) error {
	ws, err := worksheet.Find(gradeFlags.worksheet)
	if err != nil {
		return err
	}

	sheets := make([]*grade.AnswerSheet, 0, len(gradeFlags.answers))
	for _, path := range gradeFlags.answers {
		ans, err := grade.LoadAnswers(path)
		if err != nil {
			return err
		}
		sheets = append(sheets, ans)
	}

	results := grade.GradeBatch(cmd.Context(), ws, sheets, gradeFlags.parallel)

	var st store.Store
	if gradeFlags.save {
		st, err = store.Open(cfg.Store.Path)
		if err != nil {
			return fmt.Errorf("open history store: %w", err)
		}
		defer st.Close()
	}

	out := cmd.OutOrStdout()
	failed := 0
	for i, res := range results {
		if res == nil { // canceled before this sheet's worker started
			continue
		}
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprint(out, grade.FormatReport(res))
		if res.Correct < res.Total {
			failed++
		}
		if st != nil {
			a, checks, err := wiring.BuildAttempt(sheets[i], res)
			if err != nil {
				return fmt.Errorf("build attempt: %w", err)
			}
			id, err := st.SaveAttempt(a, checks)
			if err != nil {
				return fmt.Errorf("save attempt: %w", err)
			}
			fmt.Fprintf(out, "Saved as attempt %d\n", id)
			logging.New("grade").Info("attempt saved",
				"attempt_id", id, "worksheet", res.Worksheet, "student", res.Student, "score", res.Score)
		}
	}

	if len(results) > 1 {
		fmt.Fprintf(out, "\nGraded %d sheets, %d with incorrect answers\n", len(results), failed)
	}
	return nil
}
