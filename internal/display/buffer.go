// Package display holds the bounded rolling buffers that back the live
// scatter view, plus summary statistics over the particle cloud.
package display

import "github.com/RicArch97/particle-filter-ips/internal/telemetry"

// NodeBuffer is a latest-value cell for the estimated node position.
// It always holds exactly one point: the most recent update, or the
// initial default before any data arrives.
type NodeBuffer struct {
	pt telemetry.Point
}

// NewNodeBuffer returns a node buffer seeded with the given default
// position.
func NewNodeBuffer(initial telemetry.Point) *NodeBuffer {
	return &NodeBuffer{pt: initial}
}

// Update replaces the stored position.
func (b *NodeBuffer) Update(p telemetry.Point) {
	b.pt = p
}

// Snapshot returns the current position as a one-element slice for
// rendering.
func (b *NodeBuffer) Snapshot() []telemetry.Point {
	return []telemetry.Point{b.pt}
}

// ParticleBuffer is a fixed-capacity store of recent particle samples.
//
// While the buffer is below capacity a new sample appends. Once full, every
// further sample overwrites the entry at index 0. This "replace-at-front"
// rule is deliberate and load-bearing: it is NOT a rotating ring cursor, and
// after the buffer first fills its logical order no longer corresponds to
// sample age. Downstream consumers depend on the observed ordering, so it
// must not be "fixed" into a true ring buffer.
type ParticleBuffer struct {
	capacity int
	pts      []telemetry.Point
}

// NewParticleBuffer returns an empty buffer that holds at most capacity
// samples. Capacity must be positive; the argument resolver enforces this
// before construction.
func NewParticleBuffer(capacity int) *ParticleBuffer {
	return &ParticleBuffer{
		capacity: capacity,
		pts:      make([]telemetry.Point, 0, capacity),
	}
}

// Update applies the overflow policy described on the type.
func (b *ParticleBuffer) Update(p telemetry.Point) {
	if len(b.pts) < b.capacity {
		b.pts = append(b.pts, p)
		return
	}
	b.pts[0] = p
}

// Len reports the number of samples currently stored.
func (b *ParticleBuffer) Len() int {
	return len(b.pts)
}

// Snapshot returns a copy of the stored samples in buffer order.
func (b *ParticleBuffer) Snapshot() []telemetry.Point {
	out := make([]telemetry.Point, len(b.pts))
	copy(out, b.pts)
	return out
}
