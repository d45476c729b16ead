package display

import (
	"github.com/RicArch97/particle-filter-ips/internal/telemetry"
	"gonum.org/v1/gonum/stat"
)

// CloudStats summarises the spread of the current particle cloud. The
// standard deviation of the cloud is the natural health signal for the
// filter: a converged filter shows a tight cloud around the node estimate.
type CloudStats struct {
	Count  int     `json:"count"`
	MeanX  float64 `json:"mean_x"`
	MeanY  float64 `json:"mean_y"`
	StdevX float64 `json:"stdev_x"`
	StdevY float64 `json:"stdev_y"`
}

// Cloud computes summary statistics over a particle snapshot. An empty or
// single-point snapshot yields zero deviations.
func Cloud(pts []telemetry.Point) CloudStats {
	s := CloudStats{Count: len(pts)}
	if len(pts) == 0 {
		return s
	}

	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i] = p.X
		ys[i] = p.Y
	}

	s.MeanX = stat.Mean(xs, nil)
	s.MeanY = stat.Mean(ys, nil)
	if len(pts) > 1 {
		s.StdevX = stat.StdDev(xs, nil)
		s.StdevY = stat.StdDev(ys, nil)
	}
	return s
}
