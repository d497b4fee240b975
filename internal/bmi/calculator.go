package bmi

// Calculator computes an index from a weight and height. Consumers take one
// so a fixed-result implementation can stand in during tests.
type Calculator interface {
	CalculateIndex(weight, height float64) (float64, error)
}

// CalculatorFunc adapts a plain function to Calculator
type CalculatorFunc func(weight, height float64) (float64, error)

// CalculateIndex calls f(weight, height)
func (f CalculatorFunc) CalculateIndex(weight, height float64) (float64, error) {
	return f(weight, height)
}

// DefaultCalculator validates and computes with CalculateIndex
var DefaultCalculator Calculator = CalculatorFunc(CalculateIndex)
