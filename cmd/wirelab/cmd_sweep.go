package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wirelab/internal/sweep"
	"wirelab/pkg/acnet"
	"wirelab/pkg/units"
)

var sweepFlags struct {
	voltage     float64
	resistance  float64
	inductance  float64
	capacitance float64
	from        float64
	to          float64
	points      int
	linear      bool
	csvPath     string
	plotPath    string
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Evaluate an AC circuit across a frequency band",
	Long: `Sweep solves the circuit at every sample frequency between --from and
--to, logarithmically spaced unless --linear is set. Band defaults come
from the sweep section of .wirelab.yaml. Use --csv and --plot to export
the samples; either way the summary reports the impedance minimum and,
for LC circuits, the series resonant frequency.`,
	RunE: runSweep,
}

func init() {
	f := sweepCmd.Flags()
	f.Float64Var(&sweepFlags.voltage, "voltage", 0, "Source voltage in volts")
	f.Float64Var(&sweepFlags.resistance, "resistance", 0, "Series resistance in ohms")
	f.Float64Var(&sweepFlags.inductance, "inductance", 0, "Series inductance in henries")
	f.Float64Var(&sweepFlags.capacitance, "capacitance", 0, "Series capacitance in farads")
	f.Float64Var(&sweepFlags.from, "from", 0, "Band start in hertz (default from config)")
	f.Float64Var(&sweepFlags.to, "to", 0, "Band end in hertz (default from config)")
	f.IntVar(&sweepFlags.points, "points", 0, "Sample count (default from config)")
	f.BoolVar(&sweepFlags.linear, "linear", false, "Space samples linearly instead of logarithmically")
	f.StringVar(&sweepFlags.csvPath, "csv", "", "Write all samples as CSV to this path")
	f.StringVar(&sweepFlags.plotPath, "plot", "", "Write an impedance/phase plot (PNG) to this path")
}

func runSweep(cmd *cobra.Command, _ []string) error {
	in := acnet.Input{
		Voltage:     sweepFlags.voltage,
		Resistance:  sweepFlags.resistance,
		Inductance:  sweepFlags.inductance,
		Capacitance: sweepFlags.capacitance,
	}

	band := cfg.Sweep
	if cmd.Flags().Changed("from") {
		band.From = sweepFlags.from
	}
	if cmd.Flags().Changed("to") {
		band.To = sweepFlags.to
	}
	if cmd.Flags().Changed("points") {
		band.Points = sweepFlags.points
	}
	if sweepFlags.linear {
		band.Log = false
	}

	resp, err := sweep.Run(in, band)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Swept %d points, %s to %s\n", len(resp.Freqs),
		units.Format(band.From, 2, units.Hertz), units.Format(band.To, 2, units.Hertz))
	if i := resp.MinImpedance(); i >= 0 {
		r := resp.Results[i]
		fmt.Fprintf(out, "Minimum impedance %s at %s\n",
			units.Format(r.Impedance, 4, units.Ohm), units.Format(r.FrequencyHz, 2, units.Hertz))
	}
	if resp.ResonanceHz > 0 {
		fmt.Fprintf(out, "Series resonance at %s\n", units.Format(resp.ResonanceHz, 2, units.Hertz))
	}

	if sweepFlags.csvPath != "" {
		f, err := os.Create(sweepFlags.csvPath)
		if err != nil {
			return fmt.Errorf("create CSV: %w", err)
		}
		err = sweep.WriteCSV(f, resp)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("write CSV: %w", err)
		}
		fmt.Fprintf(out, "CSV: %s\n", sweepFlags.csvPath)
	}
	if sweepFlags.plotPath != "" {
		if err := sweep.Plot(resp, sweepFlags.plotPath); err != nil {
			return fmt.Errorf("write plot: %w", err)
		}
		fmt.Fprintf(out, "Plot: %s\n", sweepFlags.plotPath)
	}
	return nil
}
