package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"wirelab/internal/format"
	"wirelab/internal/worksheet"
	"wirelab/pkg/units"
	"wirelab/pkg/wire"
)

var worksheetsCmd = &cobra.Command{
	Use:   "worksheets",
	Short: "List and inspect practice worksheets",
}

var worksheetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in worksheets",
	RunE:  runWorksheetsList,
}

var worksheetsShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Show a worksheet's problems",
	Long: `Show prints every problem of a worksheet: the given values and the
quantities the learner is asked to compute. NAME is a built-in
worksheet name or a path to a worksheet YAML file.`,
	Args: cobra.ExactArgs(1),
	RunE: runWorksheetsShow,
}

func init() {
	worksheetsCmd.AddCommand(worksheetsListCmd)
	worksheetsCmd.AddCommand(worksheetsShowCmd)
}

func runWorksheetsList(cmd *cobra.Command, _ []string) error {
	tb := format.NewTable(tableMode(false))
	tb.Header("Name", "Title", "Problems")
	for _, name := range worksheet.List() {
		ws, err := worksheet.LoadEmbedded(name)
		if err != nil {
			return fmt.Errorf("load worksheet %q: %w", name, err)
		}
		tb.Row(ws.Name, ws.Title, len(ws.Problems))
	}
	tb.Columns(format.ColumnConfig{Number: 3, Align: format.AlignRight})
	fmt.Fprintln(cmd.OutOrStdout(), tb.String())
	return nil
}

func runWorksheetsShow(cmd *cobra.Command, args []string) error {
	ws, err := worksheet.Find(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %s\n", ws.Name, ws.Title)
	if ws.Description != "" {
		fmt.Fprintln(out, ws.Description)
	}
	fmt.Fprintln(out)

	tb := format.NewTable(tableMode(false))
	tb.Header("Problem", "Kind", "Given", "Asked")
	for i := range ws.Problems {
		p := &ws.Problems[i]
		kind := "DC"
		if p.IsAC() {
			kind = "AC"
		}
		tb.Row(p.ID, kind, problemGivens(p), strings.Join(p.Asked(), ", "))
	}
	fmt.Fprintln(out, tb.String())
	return nil
}

// problemGivens renders a problem's given values on one line, in canonical
// quantity order.
func problemGivens(p *worksheet.Problem) string {
	if p.IsAC() {
		in := p.AC
		parts := []string{
			units.Format(in.Voltage, 2, units.Volt),
			units.Format(in.FrequencyHz, 2, units.Hertz),
			"R " + units.Format(in.Resistance, 2, units.Ohm),
		}
		if in.Inductance > 0 {
			parts = append(parts, "L "+units.Format(in.Inductance, 4, units.Henry))
		}
		if in.Capacitance > 0 {
			// Farad values are tiny; scientific notation beats a wall of zeros.
			parts = append(parts, "C "+strconv.FormatFloat(in.Capacitance, 'g', -1, 64)+" "+units.Farad)
		}
		return strings.Join(parts, ", ")
	}
	var parts []string
	for _, q := range wire.Quantities {
		if v, ok := p.Givens[string(q)]; ok {
			parts = append(parts, units.FormatQuantity(v, q))
		}
	}
	return strings.Join(parts, ", ")
}
