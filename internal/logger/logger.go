package logger

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/muliwe/go-bmi-classifier/internal/bmi"
	"github.com/muliwe/go-bmi-classifier/internal/classifier"
)

// LogEntry represents a single log entry
type LogEntry struct {
	Timestamp      time.Time    `json:"timestamp"`
	RequestID      string       `json:"request_id"`
	RemoteAddr     string       `json:"remote_addr"`
	Weight         float64      `json:"weight"`
	Height         float64      `json:"height"`
	Index          float64      `json:"index,omitempty"`
	Category       bmi.Category `json:"category,omitempty"`
	Error          string       `json:"error,omitempty"`
	ResponseTimeMs int64        `json:"response_time_ms"`
}

// Logger handles structured JSON logging
type Logger struct {
	mu      sync.Mutex
	file    *os.File
	encoder *json.Encoder
	writers []io.Writer
}

// Config holds logger configuration
type Config struct {
	LogDir   string // Directory for log files
	FileName string // Log file name (default: bmi.jsonl)
	Stdout   bool   // Also write to stdout
}

// DefaultConfig returns default logger configuration
func DefaultConfig() Config {
	return Config{
		LogDir:   "logs",
		FileName: "bmi.jsonl",
		Stdout:   false,
	}
}

// New creates a new logger instance
func New(cfg Config) (*Logger, error) {
	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		return nil, err
	}

	logPath := filepath.Join(cfg.LogDir, cfg.FileName)
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	writers := []io.Writer{file}
	if cfg.Stdout {
		writers = append(writers, os.Stdout)
	}

	var writer io.Writer
	if len(writers) == 1 {
		writer = writers[0]
	} else {
		writer = io.MultiWriter(writers...)
	}

	return &Logger{
		file:    file,
		encoder: json.NewEncoder(writer),
		writers: writers,
	}, nil
}

// Log writes an entry to the log
func (l *Logger) Log(entry LogEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.encoder.Encode(entry)
}

// LogResult logs a successful classification with request metadata
func (l *Logger) LogResult(result classifier.Result, remoteAddr string, responseTimeMs int64) error {
	return l.Log(LogEntry{
		Timestamp:      result.Timestamp,
		RequestID:      result.RequestID,
		RemoteAddr:     remoteAddr,
		Weight:         result.Measurement.Weight,
		Height:         result.Measurement.Height,
		Index:          result.Index,
		Category:       result.Category,
		ResponseTimeMs: responseTimeMs,
	})
}

// LogRejection logs a measurement that was refused
func (l *Logger) LogRejection(requestID string, m bmi.Measurement, cause error, remoteAddr string, responseTimeMs int64) error {
	return l.Log(LogEntry{
		Timestamp:      time.Now().UTC(),
		RequestID:      requestID,
		RemoteAddr:     remoteAddr,
		Weight:         m.Weight,
		Height:         m.Height,
		Error:          cause.Error(),
		ResponseTimeMs: responseTimeMs,
	})
}

// Close closes the logger
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// LogPath returns the path to the log file
func (l *Logger) LogPath() string {
	if l.file != nil {
		return l.file.Name()
	}
	return ""
}
