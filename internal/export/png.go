// Package export renders the current display frame to static images for
// reports and debugging.
package export

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	ips "github.com/RicArch97/particle-filter-ips/internal/plotter"
	"github.com/RicArch97/particle-filter-ips/internal/telemetry"
)

// RenderPNG draws a frame as a scatter plot with the configured area limits
// and writes it as PNG. Particles render as small blue points, the node as a
// larger red point, matching the live page.
func RenderPNG(w io.Writer, frame ips.Frame, width, height float64) error {
	p := plot.New()
	p.Title.Text = "BLE tracking"
	p.X.Label.Text = "X (m)"
	p.Y.Label.Text = "Y (m)"
	p.X.Min, p.X.Max = 0, width
	p.Y.Min, p.Y.Max = 0, height

	if len(frame.Particles) > 0 {
		particles, err := plotter.NewScatter(xys(frame.Particles))
		if err != nil {
			return fmt.Errorf("particle scatter: %w", err)
		}
		particles.GlyphStyle.Color = color.RGBA{B: 255, A: 255}
		particles.GlyphStyle.Radius = vg.Points(2)
		p.Add(particles)
		p.Legend.Add("particles", particles)
	}

	if len(frame.Node) > 0 {
		node, err := plotter.NewScatter(xys(frame.Node))
		if err != nil {
			return fmt.Errorf("node scatter: %w", err)
		}
		node.GlyphStyle.Color = color.RGBA{R: 255, A: 255}
		node.GlyphStyle.Radius = vg.Points(5)
		p.Add(node)
		p.Legend.Add("node", node)
	}

	p.Legend.Top = true

	wt, err := p.WriterTo(6*vg.Inch, 6*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("render png: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

func xys(pts []telemetry.Point) plotter.XYs {
	out := make(plotter.XYs, len(pts))
	for i, pt := range pts {
		out[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	return out
}
