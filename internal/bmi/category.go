package bmi

import "math"

// Category is a weight-status label
type Category string

const (
	SevereThinness   Category = "Severe thinness"
	ModerateThinness Category = "Moderate thinness"
	MildThinness     Category = "Mild thinness"
	Healthy          Category = "Healthy"
	Overweight       Category = "Overweight"
	ObesityGradeI    Category = "Obesity Grade I"
	ObesityGradeII   Category = "Obesity Grade II"
	ObesityGradeIII  Category = "Obesity Grade III"
)

// Band is the half-open index interval [Lower, Upper) of a category
type Band struct {
	Category Category `json:"category"`
	Lower    float64  `json:"lower"`
	Upper    float64  `json:"upper"`
}

// Contains reports whether index falls inside the band
func (b Band) Contains(index float64) bool {
	return index >= b.Lower && index < b.Upper
}

// bands is ordered by ascending thresholds and covers the whole real line.
var bands = []Band{
	{SevereThinness, math.Inf(-1), 16.0},
	{ModerateThinness, 16.0, 17.0},
	{MildThinness, 17.0, 18.5},
	{Healthy, 18.5, 25.0},
	{Overweight, 25.0, 30.0},
	{ObesityGradeI, 30.0, 35.0},
	{ObesityGradeII, 35.0, 40.0},
	{ObesityGradeIII, 40.0, math.Inf(1)},
}

// Bands returns a copy of the classification table in ascending order
func Bands() []Band {
	out := make([]Band, len(bands))
	copy(out, bands)
	return out
}

// Categories returns the eight labels in ascending order
func Categories() []Category {
	out := make([]Category, len(bands))
	for i, b := range bands {
		out[i] = b.Category
	}
	return out
}

// BandFor returns the band containing index. Anything not below the last
// threshold, NaN and +Inf included, lands in the open upper tail.
func BandFor(index float64) Band {
	for _, b := range bands[:len(bands)-1] {
		if index < b.Upper {
			return b
		}
	}
	return bands[len(bands)-1]
}

// Classify maps an index to its category. It is total over float64.
func Classify(index float64) Category {
	return BandFor(index).Category
}

// String returns the label
func (c Category) String() string {
	return string(c)
}
