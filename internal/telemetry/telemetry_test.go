package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeNode(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Point
		ok   bool
	}{
		{name: "simple pair", line: "1.0,2.0", want: Point{X: 1.0, Y: 2.0}, ok: true},
		{name: "integers", line: "3,4", want: Point{X: 3, Y: 4}, ok: true},
		{name: "negative and exponent", line: "-1.5,2e1", want: Point{X: -1.5, Y: 20}, ok: true},
		{name: "padded fields", line: " 3.5 , 4.25 ", want: Point{X: 3.5, Y: 4.25}, ok: true},
		{name: "extra fields ignored", line: "1,2,3,4", want: Point{X: 1, Y: 2}, ok: true},
		{name: "single field", line: "1.0", ok: false},
		{name: "empty line", line: "", ok: false},
		{name: "non-numeric x", line: "bad,data", ok: false},
		{name: "non-numeric y", line: "1.0,data", ok: false},
		{name: "missing y", line: "1.0,", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DecodeNode(tt.line)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDecodeSample(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Sample
		ok   bool
	}{
		{name: "particle", line: "p,1,1", want: Sample{Kind: KindParticle, Point: Point{X: 1, Y: 1}}, ok: true},
		{name: "node", line: "n,5.5,6.25", want: Sample{Kind: KindNode, Point: Point{X: 5.5, Y: 6.25}}, ok: true},
		{name: "padded coordinates", line: "p, 2.0, 3.0", want: Sample{Kind: KindParticle, Point: Point{X: 2, Y: 3}}, ok: true},
		{name: "unknown prefix", line: "x,1,1", ok: false},
		{name: "uppercase prefix", line: "P,1,1", ok: false},
		{name: "padded prefix rejected", line: " p,1,1", ok: false},
		{name: "two fields only", line: "p,1", ok: false},
		{name: "empty line", line: "", ok: false},
		{name: "non-numeric x", line: "p,bad,1", ok: false},
		{name: "non-numeric y", line: "n,1,bad", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DecodeSample(tt.line)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestSampleKindString(t *testing.T) {
	assert.Equal(t, "n", KindNode.String())
	assert.Equal(t, "p", KindParticle.String())
}
