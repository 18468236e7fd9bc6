// Package logging provides structured recording of AWS API calls made through
// cloudspark. Each call is written as an individual JSON file to a log
// directory (by default ~/.config/cloudspark/logs/), recording service,
// operation, duration, and result.
//
// Recording is optional: the library defaults to NopRecorder so that embedding
// applications stay silent unless they wire a real sink.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Recorder defines the interface for structured AWS API call recording.
// Implementations record service, operation, duration, and result for
// each SDK call the facade performs.
type Recorder interface {
	Record(service, operation string, duration time.Duration, err error)
	SetStderr(w io.Writer)
}

// CallEntry represents a single AWS API call record.
type CallEntry struct {
	Timestamp  string `json:"timestamp"`
	Service    string `json:"service"`
	Operation  string `json:"operation"`
	DurationMs int64  `json:"duration_ms"`
	Result     string `json:"result"`
	Error      string `json:"error,omitempty"`
}

// fileRecorder writes per-call JSON files to a directory and optionally
// mirrors entries to stderr when debug mode is enabled.
type fileRecorder struct {
	dir    string
	debug  bool
	stderr io.Writer

	mu  sync.Mutex
	seq int
}

// NewFileRecorder creates a Recorder that writes JSON files to dir.
// The directory is created automatically if it does not exist.
// When debug is true, each entry is also written to stderr.
func NewFileRecorder(dir string, debug bool) (Recorder, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	return &fileRecorder{
		dir:    dir,
		debug:  debug,
		stderr: os.Stderr,
	}, nil
}

// SetStderr overrides the writer used for debug output.
// This is primarily useful for testing.
func (r *fileRecorder) SetStderr(w io.Writer) {
	r.stderr = w
}

// Record writes a single AWS API call as a JSON file in the log directory.
// If debug mode is enabled, the entry is also written to stderr.
func (r *fileRecorder) Record(service, operation string, duration time.Duration, err error) {
	result := "success"
	errMsg := ""
	if err != nil {
		result = "error"
		errMsg = err.Error()
	}

	entry := CallEntry{
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Service:    service,
		Operation:  operation,
		DurationMs: duration.Milliseconds(),
		Result:     result,
		Error:      errMsg,
	}

	data, jsonErr := json.Marshal(entry)
	if jsonErr != nil {
		return
	}

	r.mu.Lock()
	r.seq++
	seq := r.seq
	r.mu.Unlock()
	filename := fmt.Sprintf("%s_%04d_%s_%s.json",
		time.Now().UTC().Format("20060102T150405Z"),
		seq,
		service,
		operation,
	)
	path := filepath.Join(r.dir, filename)
	// Best-effort write; recording failures must not fail the caller's operation.
	_ = os.WriteFile(path, data, 0o600)

	if r.debug && r.stderr != nil {
		data = append(data, '\n')
		_, _ = r.stderr.Write(data)
	}
}

// nopRecorder discards all records.
type nopRecorder struct{}

func (nopRecorder) Record(string, string, time.Duration, error) {}
func (nopRecorder) SetStderr(io.Writer)                         {}

// NopRecorder returns a Recorder that discards everything.
func NopRecorder() Recorder { return nopRecorder{} }
