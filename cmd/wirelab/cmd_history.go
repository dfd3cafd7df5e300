package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wirelab/internal/format"
	"wirelab/internal/store"
	"wirelab/pkg/units"
)

var historyFlags struct {
	worksheet string
	limit     int
	markdown  bool
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded attempts, newest first",
	RunE:  runHistory,
}

func init() {
	f := historyCmd.Flags()
	f.StringVar(&historyFlags.worksheet, "worksheet", "", "Only attempts for this worksheet")
	f.IntVar(&historyFlags.limit, "limit", 20, "Maximum attempts to show (0 = all)")
	f.BoolVar(&historyFlags.markdown, "markdown", false, "Render the table as Markdown")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer st.Close()

	var attempts []*store.Attempt
	if historyFlags.worksheet != "" {
		attempts, err = st.ListAttemptsByWorksheet(historyFlags.worksheet)
		if err == nil && historyFlags.limit > 0 && len(attempts) > historyFlags.limit {
			attempts = attempts[:historyFlags.limit]
		}
	} else {
		attempts, err = st.ListAttempts(historyFlags.limit)
	}
	if err != nil {
		return fmt.Errorf("list attempts: %w", err)
	}

	if len(attempts) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No attempts recorded yet.")
		return nil
	}

	tb := format.NewTable(tableMode(historyFlags.markdown))
	tb.Header("ID", "When", "Kind", "Worksheet", "Student", "Score")
	for _, a := range attempts {
		tb.Row(a.ID, a.CreatedAt, a.Kind, a.Worksheet, a.Student, scoreCell(a))
	}
	tb.Columns(
		format.ColumnConfig{Number: 1, Align: format.AlignRight},
		format.ColumnConfig{Number: 6, Align: format.AlignRight},
	)
	fmt.Fprintln(cmd.OutOrStdout(), tb.String())
	return nil
}

// scoreCell renders "7/8 (87.5%)" for grade attempts; solve and ac attempts
// have no score.
func scoreCell(a *store.Attempt) string {
	if a.Kind != store.KindGrade || a.Total == 0 {
		return units.Dash
	}
	return fmt.Sprintf("%d/%d (%.1f%%)", a.Correct, a.Total, a.Score*100)
}
