// Package plotter contains the redraw driver: the timer-driven loop that
// takes one line per tick from the serial fan-out, decodes it, updates the
// rolling display buffers, and pushes a frame to the plot surface.
package plotter

import (
	"github.com/RicArch97/particle-filter-ips/internal/display"
	"github.com/RicArch97/particle-filter-ips/internal/telemetry"
)

// Frame is one render-data push: the buffer snapshots the plot surface
// draws, plus particle cloud statistics when particles are shown.
type Frame struct {
	Node      []telemetry.Point   `json:"node"`
	Particles []telemetry.Point   `json:"particles,omitempty"`
	Stats     *display.CloudStats `json:"stats,omitempty"`
}

// Surface receives frames from the driver. Publish must not block for long;
// the driver calls it once per tick at display cadence.
type Surface interface {
	Publish(Frame)
}

// Recorder persists decoded records. The driver treats it as optional and
// fire-and-forget; persistence failures must not disturb the display.
type Recorder interface {
	Record(kind string, x, y float64) error
}
