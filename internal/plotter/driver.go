package plotter

import (
	"context"
	"time"

	"github.com/RicArch97/particle-filter-ips/internal/display"
	"github.com/RicArch97/particle-filter-ips/internal/monitoring"
	"github.com/RicArch97/particle-filter-ips/internal/telemetry"
)

// DefaultInterval is the nominal redraw cadence. The effective rate is
// bounded by how fast lines arrive, not by this interval.
const DefaultInterval = 10 * time.Millisecond

// Driver runs the decode-update-render cycle. It exclusively owns the
// display buffers; no other goroutine touches them.
type Driver struct {
	lines    <-chan string
	surface  Surface
	recorder Recorder
	interval time.Duration

	node *display.NodeBuffer
	// particles is nil for the node plotter variant
	particles *display.ParticleBuffer
}

// Option configures a Driver.
type Option func(*Driver)

// WithInterval overrides the redraw interval.
func WithInterval(d time.Duration) Option {
	return func(dr *Driver) { dr.interval = d }
}

// WithRecorder attaches a telemetry recorder.
func WithRecorder(r Recorder) Option {
	return func(dr *Driver) { dr.recorder = r }
}

// NewNodeDriver builds the driver for the node plotter: a single
// latest-position buffer fed by "<x>,<y>" lines.
func NewNodeDriver(lines <-chan string, surface Surface, opts ...Option) *Driver {
	d := &Driver{
		lines:    lines,
		surface:  surface,
		interval: DefaultInterval,
		node:     display.NewNodeBuffer(telemetry.Point{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewParticleDriver builds the driver for the particle plotter: a particle
// buffer of the given capacity plus a node buffer seeded at the centre of
// the plot area, fed by "<n|p>,<x>,<y>" lines.
func NewParticleDriver(lines <-chan string, capacity int, center telemetry.Point, surface Surface, opts ...Option) *Driver {
	d := &Driver{
		lines:     lines,
		surface:   surface,
		interval:  DefaultInterval,
		node:      display.NewNodeBuffer(center),
		particles: display.NewParticleBuffer(capacity),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run drives ticks until the context is cancelled or the line channel is
// closed. It pushes an initial frame immediately so the surface shows the
// default positions before any data arrives.
func (d *Driver) Run(ctx context.Context) error {
	d.surface.Publish(d.frame())

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !d.tick() {
				return nil
			}
		}
	}
}

// tick performs at most one line take, one decode, one buffer update per
// buffer touched, and one frame push. Ticks with no pending line do
// nothing; lines beyond the first stay queued for later ticks. Returns
// false once the line channel is closed.
func (d *Driver) tick() bool {
	select {
	case line, ok := <-d.lines:
		if !ok {
			return false
		}
		d.apply(line)
		d.surface.Publish(d.frame())
	default:
		// no pending line this tick
	}
	return true
}

// apply decodes one line and updates the owning buffer. Malformed lines are
// dropped without logging; line noise is expected on a live serial link.
func (d *Driver) apply(line string) {
	if d.particles == nil {
		pt, ok := telemetry.DecodeNode(line)
		if !ok {
			return
		}
		d.node.Update(pt)
		d.record(telemetry.KindNode, pt)
		return
	}

	sample, ok := telemetry.DecodeSample(line)
	if !ok {
		return
	}
	switch sample.Kind {
	case telemetry.KindNode:
		d.node.Update(sample.Point)
	case telemetry.KindParticle:
		d.particles.Update(sample.Point)
	}
	d.record(sample.Kind, sample.Point)
}

func (d *Driver) record(kind telemetry.SampleKind, pt telemetry.Point) {
	if d.recorder == nil {
		return
	}
	if err := d.recorder.Record(kind.String(), pt.X, pt.Y); err != nil {
		monitoring.Logf("failed to record %s observation: %v", kind, err)
	}
}

func (d *Driver) frame() Frame {
	f := Frame{Node: d.node.Snapshot()}
	if d.particles != nil {
		f.Particles = d.particles.Snapshot()
		stats := display.Cloud(f.Particles)
		f.Stats = &stats
	}
	return f
}
