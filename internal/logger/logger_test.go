package logger

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/muliwe/go-bmi-classifier/internal/bmi"
	"github.com/muliwe/go-bmi-classifier/internal/classifier"
)

func newTestLogger(t *testing.T) (*Logger, string) {
	t.Helper()
	tmpDir := t.TempDir()

	l, err := New(Config{LogDir: tmpDir, FileName: "test.jsonl"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return l, filepath.Join(tmpDir, "test.jsonl")
}

func readEntries(t *testing.T, path string) []LogEntry {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open log file: %v", err)
	}
	defer func() { _ = f.Close() }()

	var entries []LogEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e LogEntry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			t.Fatalf("Failed to parse log entry: %v", err)
		}
		entries = append(entries, e)
	}
	return entries
}

func TestLoggerDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.LogDir != "logs" {
		t.Errorf("DefaultConfig().LogDir = %q, want %q", cfg.LogDir, "logs")
	}
	if cfg.FileName != "bmi.jsonl" {
		t.Errorf("DefaultConfig().FileName = %q, want %q", cfg.FileName, "bmi.jsonl")
	}
	if cfg.Stdout {
		t.Error("DefaultConfig().Stdout should be false")
	}
}

func TestLoggerNew_CreatesDirectory(t *testing.T) {
	nestedDir := filepath.Join(t.TempDir(), "nested", "logs")

	l, err := New(Config{LogDir: nestedDir, FileName: "test.jsonl"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = l.Close() }()

	if _, err := os.Stat(filepath.Join(nestedDir, "test.jsonl")); os.IsNotExist(err) {
		t.Error("New() should create nested directories and the log file")
	}
}

func TestLoggerLogResult(t *testing.T) {
	l, path := newTestLogger(t)

	result, err := classifier.New(classifier.DefaultConfig()).Classify(bmi.Measurement{Weight: 80, Height: 1.70})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}

	if err := l.LogResult(result, "192.168.1.1:54321", 5); err != nil {
		t.Errorf("LogResult() error = %v", err)
	}
	if err := l.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	entries := readEntries(t, path)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	got := entries[0]
	if got.RequestID != result.RequestID {
		t.Errorf("Logged RequestID = %q, want %q", got.RequestID, result.RequestID)
	}
	if got.RemoteAddr != "192.168.1.1:54321" {
		t.Errorf("Logged RemoteAddr = %q, want %q", got.RemoteAddr, "192.168.1.1:54321")
	}
	if got.Index != 27.68166089965398 {
		t.Errorf("Logged Index = %v, want 27.68166089965398", got.Index)
	}
	if got.Category != bmi.Overweight {
		t.Errorf("Logged Category = %q, want %q", got.Category, bmi.Overweight)
	}
	if got.Error != "" {
		t.Errorf("Logged Error = %q, want empty", got.Error)
	}
}

func TestLoggerLogRejection(t *testing.T) {
	l, path := newTestLogger(t)

	cause := errors.New("invalid argument: weight -10 outside (0, 1000)")
	if err := l.LogRejection("rej-1", bmi.Measurement{Weight: -10, Height: 1.80}, cause, "127.0.0.1:1", 1); err != nil {
		t.Errorf("LogRejection() error = %v", err)
	}
	_ = l.Close()

	entries := readEntries(t, path)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Error != cause.Error() {
		t.Errorf("Logged Error = %q, want %q", entries[0].Error, cause.Error())
	}
	if entries[0].Category != "" {
		t.Errorf("Logged Category = %q, want empty", entries[0].Category)
	}
	if entries[0].Timestamp.IsZero() {
		t.Error("Logged Timestamp should be set")
	}
}

func TestLoggerAppends(t *testing.T) {
	l, path := newTestLogger(t)

	for i := 0; i < 3; i++ {
		if err := l.Log(LogEntry{Timestamp: time.Now().UTC(), RequestID: "r"}); err != nil {
			t.Fatalf("Log() error = %v", err)
		}
	}
	_ = l.Close()

	if n := len(readEntries(t, path)); n != 3 {
		t.Errorf("got %d entries, want 3", n)
	}
}

func TestLoggerLogPath(t *testing.T) {
	l, _ := newTestLogger(t)
	defer func() { _ = l.Close() }()

	if path := l.LogPath(); !strings.HasSuffix(path, "test.jsonl") {
		t.Errorf("LogPath() = %q, should end with test.jsonl", path)
	}
}
