// Package telemetry decodes the line protocol emitted by the positioning
// controller over its serial console.
//
// The wire format is a minimal CSV-like framing chosen for low latency on a
// serial link; it is not self-describing or versioned. A corrupt line must
// never stall or crash a live display, so every decode function reports
// "no record" instead of an error and callers simply skip the line.
package telemetry

import (
	"strconv"
	"strings"
)

// Point is a single 2D coordinate in plot-area units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SampleKind discriminates the two record types the particle plotter
// receives on the same serial stream.
type SampleKind int

const (
	// KindNode is the estimated node position computed by the controller.
	KindNode SampleKind = iota
	// KindParticle is one sample of the particle filter's posterior.
	KindParticle
)

// String returns the wire prefix for the kind.
func (k SampleKind) String() string {
	if k == KindNode {
		return "n"
	}
	return "p"
}

// Sample is a tagged coordinate record from the particle plotter stream.
type Sample struct {
	Kind SampleKind
	Point
}

// DecodeNode parses a node plotter line of the form "<x>,<y>".
//
// Lines with fewer than two fields or non-numeric coordinates produce no
// record. Extra trailing fields are tolerated and ignored.
func DecodeNode(line string) (Point, bool) {
	fields := strings.Split(line, ",")
	if len(fields) < 2 {
		return Point{}, false
	}

	x, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
	if err != nil {
		return Point{}, false
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil {
		return Point{}, false
	}

	return Point{X: x, Y: y}, true
}

// DecodeSample parses a particle plotter line of the form "<n|p>,<x>,<y>".
//
// The prefix must be exactly "n" or "p"; any other prefix, a short line, or
// non-numeric coordinates produce no record.
func DecodeSample(line string) (Sample, bool) {
	fields := strings.Split(line, ",")
	if len(fields) < 3 {
		return Sample{}, false
	}

	var kind SampleKind
	switch fields[0] {
	case "n":
		kind = KindNode
	case "p":
		kind = KindParticle
	default:
		return Sample{}, false
	}

	x, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil {
		return Sample{}, false
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
	if err != nil {
		return Sample{}, false
	}

	return Sample{Kind: kind, Point: Point{X: x, Y: y}}, true
}
