package web

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// handleChart renders a one-shot HTML scatter of the current frame using
// go-echarts. This is a debugging aid for inspecting a single frame without
// the live page; reload to refresh.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	frame := s.Frame()

	particleData := make([]opts.ScatterData, 0, len(frame.Particles))
	for _, p := range frame.Particles {
		particleData = append(particleData, opts.ScatterData{Value: []interface{}{p.X, p.Y}})
	}
	nodeData := make([]opts.ScatterData, 0, len(frame.Node))
	for _, p := range frame.Node {
		nodeData = append(nodeData, opts.ScatterData{Value: []interface{}{p.X, p.Y}})
	}

	subtitle := fmt.Sprintf("node=%d particles=%d", len(frame.Node), len(frame.Particles))
	if frame.Stats != nil && frame.Stats.Count > 1 {
		subtitle += fmt.Sprintf(" spread=(%.2f, %.2f)", frame.Stats.StdevX, frame.Stats.StdevY)
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: s.cfg.Title, Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: s.cfg.Title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: 0, Max: s.cfg.Width, Name: "X (m)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: s.cfg.Height, Name: "Y (m)", NameLocation: "middle", NameGap: 30}),
	)

	if len(particleData) > 0 {
		scatter.AddSeries("particles", particleData,
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 5}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: "#1f77b4"}))
	}
	scatter.AddSeries("node", nodeData,
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 15}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#d62728"}))

	var buf bytes.Buffer
	if err := scatter.Render(&buf); err != nil {
		http.Error(w, fmt.Sprintf("failed to render chart: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
