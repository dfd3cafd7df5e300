package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"wirelab/internal/format"
	"wirelab/pkg/units"
	"wirelab/pkg/wire"
)

var solveFlags struct {
	watts      float64
	current    float64
	resistance float64
	voltage    float64
	asJSON     bool
	markdown   bool
}

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Resolve a DC circuit from any subset of watts, current, resistance, voltage",
	Long: `Solve derives all four DC quantities from whichever subset you provide.
Two independent values are enough; one is not. Zero is a legal given,
so only flags you actually set count as known.`,
	RunE: runSolve,
}

func init() {
	f := solveCmd.Flags()
	f.Float64Var(&solveFlags.watts, "watts", 0, "Power in watts")
	f.Float64Var(&solveFlags.current, "current", 0, "Current in amperes")
	f.Float64Var(&solveFlags.resistance, "resistance", 0, "Resistance in ohms")
	f.Float64Var(&solveFlags.voltage, "voltage", 0, "Voltage in volts")
	f.BoolVar(&solveFlags.asJSON, "json", false, "Emit the solution as JSON")
	f.BoolVar(&solveFlags.markdown, "markdown", false, "Render the table as Markdown")
}

func runSolve(cmd *cobra.Command, _ []string) error {
	// Changed, not value: --resistance 0 is a short circuit, not an omission.
	givens := wire.Givens{}
	for q, v := range map[wire.Quantity]float64{
		wire.Watts:      solveFlags.watts,
		wire.Current:    solveFlags.current,
		wire.Resistance: solveFlags.resistance,
		wire.Voltage:    solveFlags.voltage,
	} {
		if cmd.Flags().Changed(string(q)) {
			givens[q] = v
		}
	}
	if len(givens) == 0 {
		return fmt.Errorf("no quantities given\n\nProvide at least two of the four, e.g.:\n  wirelab solve --voltage 12 --resistance 4")
	}

	sol, err := wire.Resolve(givens)
	if err != nil {
		var und *wire.UnderdeterminedError
		if errors.As(err, &und) {
			missing := make([]string, len(und.Missing))
			for i, q := range und.Missing {
				missing[i] = string(q)
			}
			return fmt.Errorf("cannot resolve %s: provide more of watts, current, resistance, voltage", strings.Join(missing, ", "))
		}
		return err
	}

	if solveFlags.asJSON {
		return printJSON(cmd.OutOrStdout(), sol)
	}
	fmt.Fprintln(cmd.OutOrStdout(), solveTable(sol, tableMode(solveFlags.markdown)))
	return nil
}

// solveTable renders the four quantities with provenance: values taken from
// the givens show "given", derived values show the formula that produced them.
func solveTable(sol *wire.Solution, mode format.Mode) string {
	tb := format.NewTable(mode)
	tb.Header("Quantity", "Value", "Derived via")
	for _, q := range wire.Quantities {
		via := "given"
		if d, ok := sol.Derivations[q]; ok {
			via = d.Formula
		}
		tb.Row(string(q), units.FormatQuantity(sol.Get(q), q), via)
	}
	tb.Columns(format.ColumnConfig{Number: 2, Align: format.AlignRight})
	return tb.String()
}
