package plotter

import (
	"context"
	"errors"
	"log"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RicArch97/particle-filter-ips/internal/monitoring"
	"github.com/RicArch97/particle-filter-ips/internal/telemetry"
)

func pt(x, y float64) telemetry.Point {
	return telemetry.Point{X: x, Y: y}
}

// captureSurface records every published frame.
type captureSurface struct {
	frames []Frame
}

func (s *captureSurface) Publish(f Frame) {
	s.frames = append(s.frames, f)
}

// chanSurface forwards frames to a channel for timing-sensitive tests.
type chanSurface struct {
	ch chan Frame
}

func (s *chanSurface) Publish(f Frame) {
	s.ch <- f
}

type failingRecorder struct {
	calls []string
	err   error
}

func (r *failingRecorder) Record(kind string, x, y float64) error {
	r.calls = append(r.calls, kind)
	return r.err
}

func TestNodeDriverScenario(t *testing.T) {
	surface := &captureSurface{}
	d := NewNodeDriver(nil, surface)

	wantAfter := [][]telemetry.Point{
		{pt(1.0, 2.0)},
		{pt(1.0, 2.0)}, // malformed line leaves the buffer unchanged
		{pt(3.5, 4.25)},
	}

	for i, line := range []string{"1.0,2.0", "bad,data", "3.5,4.25"} {
		d.apply(line)
		if diff := cmp.Diff(wantAfter[i], d.frame().Node); diff != "" {
			t.Errorf("after line %d (-want +got):\n%s", i, diff)
		}
	}
}

func TestParticleDriverScenario(t *testing.T) {
	surface := &captureSurface{}
	d := NewParticleDriver(nil, 2, pt(5, 4), surface)

	wantParticles := [][]telemetry.Point{
		{pt(1, 1)},
		{pt(1, 1), pt(2, 2)},
		{pt(3, 3), pt(2, 2)}, // overwrite-at-front once full
		{pt(3, 3), pt(2, 2)},
	}

	for i, line := range []string{"p,1,1", "p,2,2", "p,3,3", "n,5,5"} {
		d.apply(line)
		if diff := cmp.Diff(wantParticles[i], d.frame().Particles); diff != "" {
			t.Errorf("after line %d (-want +got):\n%s", i, diff)
		}
	}

	assert.Equal(t, []telemetry.Point{pt(5, 5)}, d.frame().Node)
}

func TestParticleDriverStartsAtCenter(t *testing.T) {
	d := NewParticleDriver(nil, 4, pt(5, 2.5), &captureSurface{})
	f := d.frame()

	assert.Equal(t, []telemetry.Point{pt(5, 2.5)}, f.Node)
	assert.Empty(t, f.Particles)
	require.NotNil(t, f.Stats)
	assert.Zero(t, f.Stats.Count)
}

func TestParticleDriverFrameStats(t *testing.T) {
	d := NewParticleDriver(nil, 4, pt(0, 0), &captureSurface{})
	d.apply("p,1,3")
	d.apply("p,3,3")

	f := d.frame()
	require.NotNil(t, f.Stats)
	assert.Equal(t, 2, f.Stats.Count)
	assert.InDelta(t, 2.0, f.Stats.MeanX, 1e-9)
	assert.InDelta(t, 3.0, f.Stats.MeanY, 1e-9)
}

func TestDriverRecordsDecodedTelemetry(t *testing.T) {
	rec := &failingRecorder{}
	d := NewParticleDriver(nil, 2, pt(0, 0), &captureSurface{}, WithRecorder(rec))

	d.apply("p,1,1")
	d.apply("garbage")
	d.apply("n,2,2")

	assert.Equal(t, []string{"p", "n"}, rec.calls)
}

func TestDriverRecorderFailureDoesNotStopDisplay(t *testing.T) {
	defer monitoring.SetLogger(log.Printf)
	monitoring.SetLogger(func(string, ...interface{}) {})

	rec := &failingRecorder{err: errors.New("disk full")}
	d := NewNodeDriver(nil, &captureSurface{}, WithRecorder(rec))

	d.apply("1,2")
	assert.Equal(t, []telemetry.Point{pt(1, 2)}, d.frame().Node)
}

func TestTickTakesAtMostOneLine(t *testing.T) {
	lines := make(chan string, 4)
	lines <- "1,1"
	lines <- "2,2"

	surface := &captureSurface{}
	d := NewNodeDriver(lines, surface)

	require.True(t, d.tick())
	assert.Equal(t, []telemetry.Point{pt(1, 1)}, d.frame().Node)
	assert.Len(t, surface.frames, 1)

	require.True(t, d.tick())
	assert.Equal(t, []telemetry.Point{pt(2, 2)}, d.frame().Node)
	assert.Len(t, surface.frames, 2)

	// idle tick: no line, no push
	require.True(t, d.tick())
	assert.Len(t, surface.frames, 2)
}

func TestTickStopsOnClosedChannel(t *testing.T) {
	lines := make(chan string)
	close(lines)

	d := NewNodeDriver(lines, &captureSurface{})
	assert.False(t, d.tick())
}

func TestRunPublishesInitialFrameAndStopsOnCancel(t *testing.T) {
	lines := make(chan string, 1)
	surface := &chanSurface{ch: make(chan Frame, 8)}
	d := NewNodeDriver(lines, surface, WithInterval(time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	initial := <-surface.ch
	assert.Equal(t, []telemetry.Point{pt(0, 0)}, initial.Node)

	lines <- "7,8"
	next := <-surface.ch
	assert.Equal(t, []telemetry.Point{pt(7, 8)}, next.Node)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestRunReturnsNilOnSourceClose(t *testing.T) {
	lines := make(chan string)
	surface := &chanSurface{ch: make(chan Frame, 8)}
	d := NewNodeDriver(lines, surface, WithInterval(time.Millisecond))

	done := make(chan error, 1)
	go func() { done <- d.Run(context.Background()) }()

	<-surface.ch
	close(lines)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after source close")
	}
}
