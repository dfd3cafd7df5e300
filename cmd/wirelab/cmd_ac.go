package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"wirelab/internal/format"
	"wirelab/pkg/acnet"
	"wirelab/pkg/units"
)

var acFlags struct {
	voltage     float64
	frequency   float64
	resistance  float64
	inductance  float64
	capacitance float64
	asJSON      bool
	markdown    bool
}

var acCmd = &cobra.Command{
	Use:   "ac",
	Short: "Evaluate a series RLC circuit at one frequency",
	Long: `Ac computes reactances, impedance, phase angle, current, and the power
triangle for a series RLC circuit driven at a single frequency. Omit
--inductance or --capacitance for RL, RC, or purely resistive circuits.`,
	RunE: runAC,
}

func init() {
	f := acCmd.Flags()
	f.Float64Var(&acFlags.voltage, "voltage", 0, "Source voltage in volts")
	f.Float64Var(&acFlags.frequency, "frequency", 0, "Frequency in hertz")
	f.Float64Var(&acFlags.resistance, "resistance", 0, "Series resistance in ohms")
	f.Float64Var(&acFlags.inductance, "inductance", 0, "Series inductance in henries")
	f.Float64Var(&acFlags.capacitance, "capacitance", 0, "Series capacitance in farads")
	f.BoolVar(&acFlags.asJSON, "json", false, "Emit the result as JSON")
	f.BoolVar(&acFlags.markdown, "markdown", false, "Render the table as Markdown")
}

func runAC(cmd *cobra.Command, _ []string) error {
	in := acnet.Input{
		Voltage:     acFlags.voltage,
		FrequencyHz: acFlags.frequency,
		Resistance:  acFlags.resistance,
		Inductance:  acFlags.inductance,
		Capacitance: acFlags.capacitance,
	}
	if msgs := acnet.Validate(in); len(msgs) > 0 {
		return fmt.Errorf("invalid circuit: %s", strings.Join(msgs, "; "))
	}
	res := acnet.Solve(in)

	if acFlags.asJSON {
		return printJSON(cmd.OutOrStdout(), res)
	}
	fmt.Fprintln(cmd.OutOrStdout(), acTable(res, tableMode(acFlags.markdown)))
	return nil
}

// acTable renders every result key with its unit suffix.
func acTable(res acnet.Result, mode format.Mode) string {
	tb := format.NewTable(mode)
	tb.Header("Quantity", "Value")
	for _, key := range acnet.Keys {
		v, _ := res.Get(key)
		tb.Row(key, units.Format(v, units.DecimalsForKey(key), units.ForKey(key)))
	}
	tb.Columns(format.ColumnConfig{Number: 2, Align: format.AlignRight})
	return tb.String()
}
