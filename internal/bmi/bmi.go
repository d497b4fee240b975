// Package bmi computes the body-mass index from metric measurements and maps
// it to a weight-status category.
package bmi

import (
	"errors"
	"fmt"
	"math"
)

// Validity bounds for a measurement. Both upper bounds are exclusive.
const (
	MaxWeight = 1000.0 // kilograms
	MaxHeight = 3.0    // meters
)

// ErrInvalidArgument is returned when weight or height falls outside the
// accepted bounds.
var ErrInvalidArgument = errors.New("invalid argument")

// Measurement is a weight in kilograms and a height in meters
type Measurement struct {
	Weight float64 `json:"weight"`
	Height float64 `json:"height"`
}

// Validate checks both fields against the validity bounds
func (m Measurement) Validate() error {
	if err := checkRange("weight", m.Weight, MaxWeight); err != nil {
		return err
	}
	return checkRange("height", m.Height, MaxHeight)
}

// Index returns weight / height² for a valid measurement
func (m Measurement) Index() (float64, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}
	return m.Weight / (m.Height * m.Height), nil
}

// CalculateIndex returns weight / height², unrounded. It fails with
// ErrInvalidArgument unless 0 < weight < MaxWeight and 0 < height < MaxHeight.
func CalculateIndex(weight, height float64) (float64, error) {
	return Measurement{Weight: weight, Height: height}.Index()
}

func checkRange(field string, v, upper float64) error {
	// NaN fails every comparison, so it is checked explicitly.
	if math.IsNaN(v) || v <= 0 || v >= upper {
		return fmt.Errorf("%w: %s %v outside (0, %v)", ErrInvalidArgument, field, v, upper)
	}
	return nil
}
