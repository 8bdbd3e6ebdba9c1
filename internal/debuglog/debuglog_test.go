package debuglog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLogAndRead(t *testing.T) {
	dir := t.TempDir()
	l, err := Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	l.Log(Entry{Kind: "request", Provider: "replay", SessionID: "s1"})
	l.Log(Entry{Kind: "delta", Text: "hello"})
	l.Log(Entry{Kind: "done"})
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	entries, err := Read(l.Path())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].Kind != "request" || entries[0].Provider != "replay" {
		t.Errorf("first entry = %+v", entries[0])
	}
	if entries[1].Text != "hello" {
		t.Errorf("delta text = %q", entries[1].Text)
	}
	if entries[0].Timestamp.IsZero() {
		t.Error("timestamp should be stamped on log")
	}
}

func TestNilLoggerIsNoop(t *testing.T) {
	var l *Logger
	l.Log(Entry{Kind: "delta", Text: "ignored"})
	if err := l.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
	if l.Path() != "" {
		t.Errorf("path = %q", l.Path())
	}
}

func TestReadSkipsTruncatedTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.jsonl")
	content := `{"ts":"2026-08-30T10:00:00Z","kind":"delta","text":"ok"}` + "\n" + `{"kind":"trunc`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	entries, err := Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(entries) != 1 || entries[0].Text != "ok" {
		t.Errorf("entries = %+v", entries)
	}
}
