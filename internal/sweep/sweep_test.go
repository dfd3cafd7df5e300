package sweep

import (
	"bytes"
	"encoding/csv"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"wirelab/pkg/acnet"
	"wirelab/pkg/approx"
)

func TestRunLinear(t *testing.T) {
	base := acnet.Input{Voltage: 10, Resistance: 50}
	resp, err := Run(base, Config{From: 100, To: 200, Points: 5})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	wantFreqs := []float64{100, 125, 150, 175, 200}
	if diff := cmp.Diff(wantFreqs, resp.Freqs); diff != "" {
		t.Errorf("Freqs mismatch (-want +got):\n%s", diff)
	}
	if len(resp.Results) != 5 {
		t.Fatalf("got %d results, want 5", len(resp.Results))
	}

	// Purely resistive: impedance flat at R, unity power factor.
	want := acnet.Result{
		FrequencyHz:   100,
		Impedance:     50,
		PowerFactor:   1,
		Current:       0.2,
		ApparentPower: 2,
		RealPower:     2,
	}
	if diff := cmp.Diff(want, resp.Results[0]); diff != "" {
		t.Errorf("Results[0] mismatch (-want +got):\n%s", diff)
	}

	if resp.ResonanceHz != 0 {
		t.Errorf("ResonanceHz = %v, want 0 for RC-less, LC-less circuit", resp.ResonanceHz)
	}
	if idx := resp.MinImpedance(); idx != 0 {
		t.Errorf("MinImpedance = %d, want 0 for a flat curve", idx)
	}
}

func TestRunLog(t *testing.T) {
	base := acnet.Input{Voltage: 10, Resistance: 50}
	resp, err := Run(base, Config{From: 10, To: 1000, Points: 3, Log: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	wantFreqs := []float64{10, 100, 1000}
	if len(resp.Freqs) != len(wantFreqs) {
		t.Fatalf("got %d freqs, want %d", len(resp.Freqs), len(wantFreqs))
	}
	for i, want := range wantFreqs {
		if !approx.EqualTol(resp.Freqs[i], want, 1e-9) {
			t.Errorf("Freqs[%d] = %v, want ~%v", i, resp.Freqs[i], want)
		}
	}
}

func TestRunResonance(t *testing.T) {
	base := acnet.Input{Voltage: 5, Resistance: 10, Inductance: 0.01, Capacitance: 1e-6}
	resp, err := Run(base, Config{From: 100, To: 10000, Points: 101, Log: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	f0 := 1 / (2 * math.Pi * 1e-4)
	if math.Abs(resp.ResonanceHz-f0) > 1e-6 {
		t.Errorf("ResonanceHz = %v, want %v", resp.ResonanceHz, f0)
	}

	idx := resp.MinImpedance()
	if idx <= 0 || idx >= len(resp.Freqs)-1 {
		t.Fatalf("MinImpedance index %d should be interior", idx)
	}
	if got := resp.Freqs[idx]; math.Abs(got-f0)/f0 > 0.05 {
		t.Errorf("impedance minimum at %v Hz, want within 5%% of %v", got, f0)
	}
	minZ := resp.Results[idx].Impedance
	if minZ < 9.9 || minZ > 12 {
		t.Errorf("impedance at resonance = %v, want near R = 10", minZ)
	}
	if minZ >= resp.Results[0].Impedance || minZ >= resp.Results[len(resp.Results)-1].Impedance {
		t.Error("impedance should dip at resonance relative to band edges")
	}
}

func TestRunDefaultPoints(t *testing.T) {
	resp, err := Run(acnet.Input{Voltage: 1, Resistance: 1}, Config{From: 10, To: 100})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(resp.Freqs) != DefaultPoints {
		t.Errorf("got %d points, want %d", len(resp.Freqs), DefaultPoints)
	}
}

func TestRunValidation(t *testing.T) {
	tests := []struct {
		name    string
		base    acnet.Input
		cfg     Config
		wantErr string
	}{
		{
			name:    "zero start",
			base:    acnet.Input{Voltage: 1, Resistance: 1},
			cfg:     Config{From: 0, To: 100, Points: 5},
			wantErr: "sweep start",
		},
		{
			name:    "end not past start",
			base:    acnet.Input{Voltage: 1, Resistance: 1},
			cfg:     Config{From: 100, To: 100, Points: 5},
			wantErr: "greater than start",
		},
		{
			name:    "single point",
			base:    acnet.Input{Voltage: 1, Resistance: 1},
			cfg:     Config{From: 10, To: 100, Points: 1},
			wantErr: "at least 2 points",
		},
		{
			name:    "bad circuit",
			base:    acnet.Input{Voltage: 1, Resistance: -5},
			cfg:     Config{From: 10, To: 100, Points: 5},
			wantErr: "resistance must not be negative",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(tt.base, tt.cfg)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestWriteCSV(t *testing.T) {
	resp, err := Run(acnet.Input{Voltage: 10, Resistance: 50}, Config{From: 100, To: 200, Points: 3})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, resp); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("got %d records, want header + 3 rows", len(records))
	}
	if diff := cmp.Diff(acnet.Keys, records[0]); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
	first := records[1]
	if first[0] != "100" {
		t.Errorf("frequency cell = %q, want \"100\"", first[0])
	}
	if first[4] != "50" {
		t.Errorf("impedance cell = %q, want \"50\"", first[4])
	}
	if first[7] != "0.2" {
		t.Errorf("current cell = %q, want \"0.2\"", first[7])
	}
}
