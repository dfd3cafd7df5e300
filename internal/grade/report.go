package grade

import (
	"fmt"
	"strings"

	"wirelab/internal/format"
)

// FormatReport produces the human-readable grading report.
func FormatReport(res *Result) string {
	var b strings.Builder

	b.WriteString("=== Wirelab Grade Report ===\n")
	b.WriteString(fmt.Sprintf("Worksheet: %s\n", res.Worksheet))
	if res.Student != "" {
		b.WriteString(fmt.Sprintf("Student:   %s\n", res.Student))
	}
	b.WriteString("\n")

	var current string
	for _, c := range res.Checks {
		if c.ProblemID != current {
			if current != "" {
				b.WriteString("\n")
			}
			current = c.ProblemID
			b.WriteString(fmt.Sprintf("--- Problem %s ---\n", current))
		}
		entered := "(blank)"
		if c.Answered {
			entered = fmt.Sprintf("%.4f", c.Entered)
		}
		b.WriteString(fmt.Sprintf("%-22s expected %12.4f   entered %12s  %s\n",
			c.Key, c.Expected, entered, format.BoolMark(c.Correct)))
	}
	if len(res.Checks) > 0 {
		b.WriteString("\n")
	}

	if len(res.Errors) > 0 {
		b.WriteString("--- Errors ---\n")
		for _, e := range res.Errors {
			b.WriteString(e + "\n")
		}
		b.WriteString("\n")
	}

	result := "PASS"
	if res.Correct < res.Total || res.Total == 0 {
		result = "FAIL"
	}
	b.WriteString(fmt.Sprintf("RESULT: %s (%d/%d correct, %s)\n",
		result, res.Correct, res.Total, format.FmtPercent(res.Score)))

	return b.String()
}
