package viewmodel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyScore(t *testing.T) {
	tests := []struct {
		name string
		p    float64
		want Band
	}{
		{name: "sample payload", p: 85, want: BandPositive},
		{name: "just above positive boundary", p: 70.01, want: BandPositive},
		{name: "positive boundary is caution", p: 70, want: BandCaution},
		{name: "mid caution", p: 55, want: BandCaution},
		{name: "just above caution boundary", p: 40.5, want: BandCaution},
		{name: "caution boundary is negative", p: 40, want: BandNegative},
		{name: "low", p: 20, want: BandNegative},
		{name: "zero", p: 0, want: BandNegative},
		{name: "negative value", p: -5, want: BandNegative},
		{name: "over range", p: 120, want: BandPositive},
		{name: "not a number", p: math.NaN(), want: BandNegative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyScore(tt.p))
		})
	}
}

func TestArcProportion(t *testing.T) {
	tests := []struct {
		name string
		p    float64
		want float64
	}{
		{name: "sample payload", p: 85, want: 0.85},
		{name: "zero", p: 0, want: 0},
		{name: "full", p: 100, want: 1},
		{name: "clamped high", p: 120, want: 1},
		{name: "clamped low", p: -10, want: 0},
		{name: "fractional", p: 42.5, want: 0.425},
		{name: "not a number", p: math.NaN(), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ArcProportion(tt.p), 1e-9)
		})
	}
}

func TestDisplayPercent(t *testing.T) {
	tests := []struct {
		p    float64
		want int
	}{
		{p: 85, want: 85},
		{p: 84.5, want: 85},
		{p: 84.49, want: 84},
		{p: 120, want: 120},
		{p: -3.6, want: -4},
		{p: math.NaN(), want: 0},
		{p: math.Inf(1), want: 0},
		{p: 1e300, want: math.MaxInt32},
		{p: -1e300, want: math.MinInt32},
		{p: math.MaxInt32 + 0.4, want: math.MaxInt32},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DisplayPercent(tt.p), "p=%v", tt.p)
	}
}

func TestFilledCells(t *testing.T) {
	assert.Equal(t, 0, FilledCells(0, 20))
	assert.Equal(t, 17, FilledCells(0.85, 20))
	assert.Equal(t, 20, FilledCells(1, 20))
	assert.Equal(t, 20, FilledCells(1.5, 20))
	assert.Equal(t, 0, FilledCells(-1, 20))
	assert.Equal(t, 0, FilledCells(0.5, 0))
}

func TestNewScoreView(t *testing.T) {
	view := NewScoreView(85)
	assert.Equal(t, 85, view.Percent)
	assert.InDelta(t, 0.85, view.Proportion, 1e-9)
	assert.Equal(t, BandPositive, view.Band)
	assert.Equal(t, PositiveColor, view.Band.Color())

	over := NewScoreView(120)
	assert.Equal(t, 120, over.Percent)
	assert.InDelta(t, 1.0, over.Proportion, 1e-9)
	assert.Equal(t, BandPositive, over.Band)
}

func TestBandColorAndName(t *testing.T) {
	tests := []struct {
		name  string
		color string
		band  Band
	}{
		{band: BandPositive, name: "positive", color: "#10B981"},
		{band: BandCaution, name: "caution", color: "#F59E0B"},
		{band: BandNegative, name: "negative", color: "#EF4444"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.band.String())
			assert.Equal(t, tt.color, tt.band.Color())

			text, err := tt.band.MarshalText()
			assert.NoError(t, err)
			assert.Equal(t, tt.name, string(text))
		})
	}
}
