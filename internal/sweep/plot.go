package sweep

import (
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"wirelab/pkg/acnet"
)

// Plot renders the sweep as a PNG with two stacked panes: impedance
// magnitude on top, phase angle below. The x axis switches to log scale for
// logarithmic sweeps, and the resonant frequency is marked when it falls
// inside the band.
func Plot(resp *Response, path string) error {
	zp, err := pane(resp, "impedance (Ω)", func(r acnet.Result) float64 { return r.Impedance })
	if err != nil {
		return err
	}
	pp, err := pane(resp, "phase (°)", func(r acnet.Result) float64 { return r.PhaseDegrees })
	if err != nil {
		return err
	}
	zp.Title.Text = fmt.Sprintf("Frequency sweep %g–%g Hz", resp.Config.From, resp.Config.To)

	if resp.ResonanceHz > 0 && resp.ResonanceHz >= resp.Config.From && resp.ResonanceHz <= resp.Config.To {
		if err := markResonance(zp, resp); err != nil {
			return err
		}
	}

	img := vgimg.New(8*vg.Inch, 6*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{Rows: 2, Cols: 1, PadY: vg.Millimeter * 2}
	canvases := plot.Align([][]*plot.Plot{{zp}, {pp}}, tiles, dc)
	zp.Draw(canvases[0][0])
	pp.Draw(canvases[1][0])

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create plot file: %w", err)
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write plot: %w", err)
	}
	return f.Close()
}

func pane(resp *Response, label string, y func(acnet.Result) float64) (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = "frequency (Hz)"
	p.Y.Label.Text = label
	if resp.Config.Log {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	xys := make(plotter.XYs, len(resp.Results))
	for i, r := range resp.Results {
		xys[i].X = resp.Freqs[i]
		xys[i].Y = y(r)
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("build %s line: %w", label, err)
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = color.RGBA{B: 180, A: 255}
	p.Add(plotter.NewGrid(), line)
	return p, nil
}

// markResonance draws a dashed vertical line at the resonant frequency.
func markResonance(p *plot.Plot, resp *Response) error {
	lo, hi := resp.Results[0].Impedance, resp.Results[0].Impedance
	for _, r := range resp.Results[1:] {
		if r.Impedance < lo {
			lo = r.Impedance
		}
		if r.Impedance > hi {
			hi = r.Impedance
		}
	}
	mark, err := plotter.NewLine(plotter.XYs{
		{X: resp.ResonanceHz, Y: lo},
		{X: resp.ResonanceHz, Y: hi},
	})
	if err != nil {
		return fmt.Errorf("build resonance marker: %w", err)
	}
	mark.LineStyle.Color = color.RGBA{R: 180, A: 255}
	mark.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(mark)
	p.Legend.Add(fmt.Sprintf("f₀ = %.1f Hz", resp.ResonanceHz), mark)
	return nil
}
