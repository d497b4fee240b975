package measurement

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/muliwe/go-bmi-classifier/internal/bmi"
)

// maxBodyBytes caps JSON and form bodies
const maxBodyBytes = 1 << 16

// Collector extracts measurements from HTTP requests
type Collector struct{}

// NewCollector creates a new measurement collector
func NewCollector() *Collector {
	return &Collector{}
}

// Collect reads weight and height from the request. GET requests use the
// query string; other methods use a JSON or form body depending on
// Content-Type. Range checks are left to the bmi package.
func (c *Collector) Collect(r *http.Request) (Input, error) {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		m, err := c.collectValues(r.URL.Query().Get, "weight", "height")
		return Input{Measurement: m, Source: SourceQuery}, err
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		m, err := c.collectJSON(r)
		return Input{Measurement: m, Source: SourceJSON}, err
	}

	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		return Input{Source: SourceForm}, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	m, err := c.collectValues(r.PostForm.Get, "weight", "height")
	return Input{Measurement: m, Source: SourceForm}, err
}

// collectValues parses the named fields through get
func (c *Collector) collectValues(get func(string) string, weightKey, heightKey string) (bmi.Measurement, error) {
	weight, err := parseField(weightKey, get(weightKey))
	if err != nil {
		return bmi.Measurement{}, err
	}
	height, err := parseField(heightKey, get(heightKey))
	if err != nil {
		return bmi.Measurement{}, err
	}
	return bmi.Measurement{Weight: weight, Height: height}, nil
}

// collectJSON decodes {"weight": .., "height": ..}
func (c *Collector) collectJSON(r *http.Request) (bmi.Measurement, error) {
	var body struct {
		Weight *float64 `json:"weight"`
		Height *float64 `json:"height"`
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		return bmi.Measurement{}, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	if body.Weight == nil {
		return bmi.Measurement{}, fmt.Errorf("%w: missing weight", ErrMalformedInput)
	}
	if body.Height == nil {
		return bmi.Measurement{}, fmt.Errorf("%w: missing height", ErrMalformedInput)
	}
	return bmi.Measurement{Weight: *body.Weight, Height: *body.Height}, nil
}

// ParseIndex parses a precomputed index. Only finite numbers are accepted.
func ParseIndex(raw string) (float64, error) {
	return parseField("index", raw)
}

func parseField(name, raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: missing %s", ErrMalformedInput, name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s %q is not a finite number", ErrMalformedInput, name, raw)
	}
	return v, nil
}
