package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/muliwe/go-bmi-classifier/internal/bmi"
	"github.com/muliwe/go-bmi-classifier/internal/classifier"
)

func TestRun_Measurement(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"-weight", "50", "-height", "1.70"}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("run() = %d, want %d (stderr: %s)", code, exitOK, stderr.String())
	}
	if got, want := stdout.String(), "17.301038062283737\tMild thinness\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestRun_Index(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"-index", "40"}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("run() = %d, want %d", code, exitOK)
	}
	if got := stdout.String(); got != "40\tObesity Grade III\n" {
		t.Errorf("stdout = %q", got)
	}
}

func TestRun_JSON(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"-weight", "90", "-height", "1.60", "-json"}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("run() = %d, want %d", code, exitOK)
	}

	var result classifier.Result
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode output: %v", err)
	}
	if result.Index != 35.15624999999999 {
		t.Errorf("index = %v, want 35.15624999999999", result.Index)
	}
	if result.Category != bmi.ObesityGradeII {
		t.Errorf("category = %q, want %q", result.Category, bmi.ObesityGradeII)
	}
}

func TestRun_Invalid(t *testing.T) {
	tests := [][]string{
		{"-weight", "-10", "-height", "1.80"},
		{"-weight", "1000", "-height", "1.80"},
		{"-weight", "0", "-height", "0"},
		{},
		{"-index", "NaN"},
		{"-unknown"},
	}

	for _, args := range tests {
		var stdout, stderr bytes.Buffer
		if code := run(args, &stdout, &stderr); code != exitInvalid {
			t.Errorf("run(%v) = %d, want %d", args, code, exitInvalid)
		}
		if stdout.Len() != 0 {
			t.Errorf("run(%v) wrote to stdout: %q", args, stdout.String())
		}
	}

	var stdout, stderr bytes.Buffer
	run([]string{"-weight", "60", "-height", "-1.70"}, &stdout, &stderr)
	if !strings.Contains(stderr.String(), "invalid argument") {
		t.Errorf("stderr = %q, want mention of invalid argument", stderr.String())
	}
}
