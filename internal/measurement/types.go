package measurement

import (
	"errors"

	"github.com/muliwe/go-bmi-classifier/internal/bmi"
)

// ErrMalformedInput is returned when a request cannot be parsed into numbers
var ErrMalformedInput = errors.New("malformed input")

// Source identifies where a measurement was read from
type Source string

const (
	SourceQuery Source = "query"
	SourceForm  Source = "form"
	SourceJSON  Source = "json"
)

// Input is a measurement collected from a request
type Input struct {
	Measurement bmi.Measurement `json:"measurement"`
	Source      Source          `json:"source"`
}
