package classifier

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/muliwe/go-bmi-classifier/internal/bmi"
)

// Result contains the final classification of a measurement
type Result struct {
	RequestID   string          `json:"request_id"`
	Timestamp   time.Time       `json:"timestamp"`
	Measurement bmi.Measurement `json:"measurement"`
	Index       float64         `json:"index"`
	Category    bmi.Category    `json:"category"`
	Band        Band            `json:"band"`
	Reason      string          `json:"reason"`
}

// Band mirrors bmi.Band with infinite tails encoded as null, since JSON has
// no representation for ±Inf.
type Band struct {
	Lower *float64 `json:"lower"`
	Upper *float64 `json:"upper"`
}

// Classifier computes and classifies body-mass indices
type Classifier struct {
	calculator bmi.Calculator
}

// Config holds classifier configuration
type Config struct {
	// Calculator computes the index. Nil means bmi.DefaultCalculator.
	Calculator bmi.Calculator
}

// DefaultConfig returns default classifier configuration
func DefaultConfig() Config {
	return Config{
		Calculator: bmi.DefaultCalculator,
	}
}

// New creates a new classifier
func New(cfg Config) *Classifier {
	calc := cfg.Calculator
	if calc == nil {
		calc = bmi.DefaultCalculator
	}
	return &Classifier{
		calculator: calc,
	}
}

// Classify computes the index of m and classifies it. Errors from the
// calculator are returned unchanged.
func (c *Classifier) Classify(m bmi.Measurement) (Result, error) {
	index, err := c.calculator.CalculateIndex(m.Weight, m.Height)
	if err != nil {
		return Result{}, err
	}

	result := c.ClassifyIndex(index)
	result.Measurement = m
	return result, nil
}

// ClassifyIndex classifies a precomputed index
func (c *Classifier) ClassifyIndex(index float64) Result {
	band := bmi.BandFor(index)

	return Result{
		RequestID: uuid.New().String(),
		Timestamp: time.Now().UTC(),
		Index:     index,
		Category:  band.Category,
		Band:      JSONBand(band),
		Reason:    reason(index, band),
	}
}

// reason generates a human-readable explanation for the category
func reason(index float64, b bmi.Band) string {
	switch {
	case math.IsInf(b.Lower, -1):
		return fmt.Sprintf("Index %.2f is below %.1f: %s", index, b.Upper, b.Category)
	case math.IsInf(b.Upper, 1):
		return fmt.Sprintf("Index %.2f is at or above %.1f: %s", index, b.Lower, b.Category)
	default:
		return fmt.Sprintf("Index %.2f is within [%.1f, %.1f): %s", index, b.Lower, b.Upper, b.Category)
	}
}

// JSONBand converts a table band to its JSON form
func JSONBand(b bmi.Band) Band {
	var out Band
	if !math.IsInf(b.Lower, 0) {
		lower := b.Lower
		out.Lower = &lower
	}
	if !math.IsInf(b.Upper, 0) {
		upper := b.Upper
		out.Upper = &upper
	}
	return out
}
