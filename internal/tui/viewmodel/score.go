package viewmodel

import "math"

// Band is the colour classification of a match percentage.
type Band int

const (
	// BandNegative covers p <= 40.
	BandNegative Band = iota
	// BandCaution covers 40 < p <= 70.
	BandCaution
	// BandPositive covers p > 70.
	BandPositive
)

// Band colours.
const (
	PositiveColor = "#10B981"
	CautionColor  = "#F59E0B"
	NegativeColor = "#EF4444"
)

// ClassifyScore maps a raw match percentage to its band.
// Values outside [0, 100] are classified as they are; NaN is negative.
func ClassifyScore(p float64) Band {
	switch {
	case p > 70:
		return BandPositive
	case p > 40:
		return BandCaution
	default:
		return BandNegative
	}
}

// ArcProportion returns the filled fraction of the score ring in [0, 1].
func ArcProportion(p float64) float64 {
	switch {
	case math.IsNaN(p) || p <= 0:
		return 0
	case p >= 100:
		return 1
	default:
		return p / 100
	}
}

// DisplayPercent is the rounded percentage printed inside the ring.
// It is not clamped to [0, 100] but saturates at the int32 range.
func DisplayPercent(p float64) int {
	switch {
	case math.IsNaN(p) || math.IsInf(p, 0):
		return 0
	case p >= math.MaxInt32:
		return math.MaxInt32
	case p <= math.MinInt32:
		return math.MinInt32
	}
	return int(math.Round(p))
}

// FilledCells converts a proportion to the number of filled cells of a bar
// or ring drawn with width cells.
func FilledCells(proportion float64, width int) int {
	if width <= 0 {
		return 0
	}
	filled := int(math.Round(proportion * float64(width)))
	if filled < 0 {
		return 0
	}
	if filled > width {
		return width
	}
	return filled
}

// Color returns the hex colour of the band.
func (b Band) Color() string {
	switch b {
	case BandPositive:
		return PositiveColor
	case BandCaution:
		return CautionColor
	default:
		return NegativeColor
	}
}

// ScoreView is the derived presentation of a match percentage.
type ScoreView struct {
	Value      float64
	Proportion float64
	Percent    int
	Band       Band
}

// NewScoreView derives the score presentation from a raw percentage.
func NewScoreView(p float64) ScoreView {
	return ScoreView{
		Value:      p,
		Percent:    DisplayPercent(p),
		Proportion: ArcProportion(p),
		Band:       ClassifyScore(p),
	}
}
