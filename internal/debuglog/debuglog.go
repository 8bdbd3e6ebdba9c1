// Package debuglog appends stream traffic to a JSONL file so a
// misbehaving render or a truncated response can be replayed after the
// fact. Logging is best-effort: a write failure never interrupts a
// live stream.
package debuglog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Entry is one logged stream event.
type Entry struct {
	Timestamp time.Time `json:"ts"`
	SessionID string    `json:"session_id,omitempty"`
	Provider  string    `json:"provider,omitempty"`
	Kind      string    `json:"kind"` // "request", "delta", "usage", "error", "done"
	Text      string    `json:"text,omitempty"`
	Detail    any       `json:"detail,omitempty"`
}

// Logger appends entries to a JSONL file.
type Logger struct {
	mu   sync.Mutex
	f    *os.File
	enc  *json.Encoder
	path string
}

// Open creates a logger writing to dir/debug.jsonl, creating the
// directory if needed.
func Open(dir string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create debug log dir: %w", err)
	}
	path := filepath.Join(dir, "debug.jsonl")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open debug log: %w", err)
	}
	return &Logger{f: f, enc: json.NewEncoder(f), path: path}, nil
}

// Path returns the log file location.
func (l *Logger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Log appends one entry. A nil logger is a no-op so callers can keep a
// single code path whether or not debugging is enabled.
func (l *Logger) Log(e Entry) {
	if l == nil {
		return
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.enc.Encode(e)
}

// Close flushes and closes the underlying file.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.f.Close()
}

// Read parses a JSONL debug log back into entries, skipping lines that
// fail to parse. Partial trailing writes are expected after a crash.
func Read(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []Entry
	dec := json.NewDecoder(bytes.NewReader(data))
	for dec.More() {
		var e Entry
		if err := dec.Decode(&e); err != nil {
			break
		}
		entries = append(entries, e)
	}
	return entries, nil
}
