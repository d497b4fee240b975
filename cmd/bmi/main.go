// Command bmi computes a body-mass index and its weight-status category.
//
//	bmi -weight 70 -height 1.70
//	bmi -index 24.5
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/muliwe/go-bmi-classifier/internal/bmi"
	"github.com/muliwe/go-bmi-classifier/internal/classifier"
	"github.com/muliwe/go-bmi-classifier/internal/measurement"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitInvalid = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("bmi", flag.ContinueOnError)
	fs.SetOutput(stderr)
	weight := fs.Float64("weight", 0, "Weight in kilograms")
	height := fs.Float64("height", 0, "Height in meters")
	index := fs.String("index", "", "Classify a precomputed index instead of a measurement")
	asJSON := fs.Bool("json", false, "Print the full result as JSON")
	if err := fs.Parse(args); err != nil {
		return exitInvalid
	}

	clf := classifier.New(classifier.DefaultConfig())

	var (
		result classifier.Result
		err    error
	)
	if *index != "" {
		var v float64
		v, err = measurement.ParseIndex(*index)
		if err == nil {
			result = clf.ClassifyIndex(v)
		}
	} else {
		result, err = clf.Classify(bmi.Measurement{Weight: *weight, Height: *height})
	}
	if err != nil {
		fmt.Fprintf(stderr, "bmi: %v\n", err)
		if errors.Is(err, bmi.ErrInvalidArgument) || errors.Is(err, measurement.ErrMalformedInput) {
			return exitInvalid
		}
		return exitFailure
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			fmt.Fprintf(stderr, "bmi: %v\n", err)
			return exitFailure
		}
		return exitOK
	}

	fmt.Fprintf(stdout, "%v\t%s\n", result.Index, result.Category)
	return exitOK
}
