package server

import (
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/muliwe/go-bmi-classifier/internal/bmi"
	"github.com/muliwe/go-bmi-classifier/internal/classifier"
	"github.com/muliwe/go-bmi-classifier/internal/logger"
	"github.com/muliwe/go-bmi-classifier/internal/measurement"
)

const version = "1.0.0"

// Error codes returned in ErrorResponse.Error
const (
	errCodeInvalidArgument = "invalid_argument"
	errCodeMalformedInput  = "malformed_input"
)

// Response represents the API response for a measurement
type Response struct {
	RequestID string          `json:"request_id"`
	Timestamp time.Time       `json:"timestamp"`
	Weight    float64         `json:"weight"`
	Height    float64         `json:"height"`
	Index     float64         `json:"index"`
	Category  bmi.Category    `json:"category"`
	Band      classifier.Band `json:"band"`
	Reason    string          `json:"reason"`
	Version   string          `json:"version"`
}

// CategoryResponse represents the API response for a precomputed index
type CategoryResponse struct {
	RequestID string          `json:"request_id"`
	Index     float64         `json:"index"`
	Category  bmi.Category    `json:"category"`
	Band      classifier.Band `json:"band"`
	Reason    string          `json:"reason"`
	Version   string          `json:"version"`
}

// BandResponse is one row of the classification table
type BandResponse struct {
	Category bmi.Category `json:"category"`
	classifier.Band
}

// ErrorResponse is returned for rejected input
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	collector  *measurement.Collector
	classifier *classifier.Classifier
	logger     *logger.Logger
	quiet      bool // suppress console logging (useful for tests)
}

// NewHandler creates a new handler with dependencies
func NewHandler(c *measurement.Collector, cl *classifier.Classifier, l *logger.Logger) *Handler {
	return &Handler{
		collector:  c,
		classifier: cl,
		logger:     l,
		quiet:      false,
	}
}

// SetQuiet enables or disables console logging
func (h *Handler) SetQuiet(quiet bool) {
	h.quiet = quiet
}

// HandleIndex computes and classifies the index of a measurement
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()

	in, err := h.collector.Collect(r)
	if err != nil {
		h.reject(w, r, in.Measurement, err, startTime)
		return
	}

	result, err := h.classifier.Classify(in.Measurement)
	if err == nil && math.IsInf(result.Index, 0) {
		// Reachable with heights close to zero; JSON cannot carry ±Inf.
		err = errIndexOverflow
	}
	if err != nil {
		h.reject(w, r, in.Measurement, err, startTime)
		return
	}

	responseTime := time.Since(startTime).Milliseconds()

	if h.logger != nil {
		if err := h.logger.LogResult(result, r.RemoteAddr, responseTime); err != nil {
			log.Printf("Error logging result: %v", err)
		}
	}

	if !h.quiet {
		log.Printf("[%s] %s %s - %s weight=%v height=%v - %.2f %s - %dms",
			r.RemoteAddr,
			r.Method,
			r.URL.Path,
			in.Source,
			in.Measurement.Weight,
			in.Measurement.Height,
			result.Index,
			result.Category,
			responseTime,
		)
	}

	writeJSON(w, http.StatusOK, result.RequestID, Response{
		RequestID: result.RequestID,
		Timestamp: result.Timestamp,
		Weight:    in.Measurement.Weight,
		Height:    in.Measurement.Height,
		Index:     result.Index,
		Category:  result.Category,
		Band:      result.Band,
		Reason:    result.Reason,
		Version:   version,
	})
}

// HandleClassify classifies a precomputed index passed as ?index=
func (h *Handler) HandleClassify(w http.ResponseWriter, r *http.Request) {
	index, err := measurement.ParseIndex(r.URL.Query().Get("index"))
	if err != nil {
		requestID := uuid.New().String()
		writeJSON(w, http.StatusBadRequest, requestID, ErrorResponse{
			Error:     errCodeMalformedInput,
			Message:   err.Error(),
			RequestID: requestID,
		})
		return
	}

	result := h.classifier.ClassifyIndex(index)
	writeJSON(w, http.StatusOK, result.RequestID, CategoryResponse{
		RequestID: result.RequestID,
		Index:     result.Index,
		Category:  result.Category,
		Band:      result.Band,
		Reason:    result.Reason,
		Version:   version,
	})
}

// HandleCategories lists the classification table
func (h *Handler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	bands := bmi.Bands()
	out := make([]BandResponse, 0, len(bands))
	for _, b := range bands {
		out = append(out, BandResponse{Category: b.Category, Band: classifier.JSONBand(b)})
	}
	writeJSON(w, http.StatusOK, "", out)
}

// HandleHealth handles the health check endpoint
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, "", HealthResponse{
		Status:  "ok",
		Version: version,
	})
}

// HandleDebug returns the full classification result (optional endpoint)
func (h *Handler) HandleDebug(w http.ResponseWriter, r *http.Request) {
	in, err := h.collector.Collect(r)
	if err != nil {
		h.reject(w, r, in.Measurement, err, time.Now())
		return
	}
	result, err := h.classifier.Classify(in.Measurement)
	if err == nil && math.IsInf(result.Index, 0) {
		err = errIndexOverflow
	}
	if err != nil {
		h.reject(w, r, in.Measurement, err, time.Now())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", result.RequestID)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(struct {
		Source measurement.Source `json:"source"`
		classifier.Result
	}{in.Source, result}); err != nil {
		log.Printf("Error encoding debug response: %v", err)
	}
}

var errIndexOverflow = errors.New("index overflows float64")

// reject answers 400 and records the refused measurement
func (h *Handler) reject(w http.ResponseWriter, r *http.Request, m bmi.Measurement, cause error, startTime time.Time) {
	requestID := uuid.New().String()
	responseTime := time.Since(startTime).Milliseconds()

	code := errCodeMalformedInput
	if errors.Is(cause, bmi.ErrInvalidArgument) || errors.Is(cause, errIndexOverflow) {
		code = errCodeInvalidArgument
	}

	if h.logger != nil {
		if err := h.logger.LogRejection(requestID, m, cause, r.RemoteAddr, responseTime); err != nil {
			log.Printf("Error logging rejection: %v", err)
		}
	}

	if !h.quiet {
		log.Printf("[%s] %s %s - rejected: %v - %dms", r.RemoteAddr, r.Method, r.URL.Path, cause, responseTime)
	}

	writeJSON(w, http.StatusBadRequest, requestID, ErrorResponse{
		Error:     code,
		Message:   cause.Error(),
		RequestID: requestID,
	})
}

func writeJSON(w http.ResponseWriter, status int, requestID string, v any) {
	w.Header().Set("Content-Type", "application/json")
	if requestID != "" {
		w.Header().Set("X-Request-ID", requestID)
	}
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
