package history

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/LISSConsulting/LISSTech.Console/internal/logger"
)

// Record is one persisted submission.
type Record struct {
	Command   string    `json:"command"`
	Timestamp time.Time `json:"ts"`
	Session   string    `json:"session"`
}

// File persists submitted commands to an append-only JSONL file. Each line
// is a JSON-serialized Record. The file is synced after every Append.
//
// Session identity: a random UUID per File, stamped on every record so a
// shared history file can still be split by console invocation.
type File struct {
	path      string
	file      *os.File
	mu        sync.Mutex
	sessionID string
}

// OpenFile opens (or creates) the history file at path. Parent directories
// are created with os.MkdirAll if they do not exist.
func OpenFile(path string) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("history: mkdir %q: %w", filepath.Dir(path), err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("history: open %q: %w", path, err)
	}
	return &File{
		path:      path,
		file:      f,
		sessionID: uuid.NewString(),
	}, nil
}

// Path returns the file location.
func (f *File) Path() string { return f.path }

// SessionID returns the identity stamped on records written by this File.
func (f *File) SessionID() string { return f.sessionID }

// Append serializes command as a JSON line, writes it, and syncs.
// It is safe to call from multiple goroutines.
func (f *File) Append(command string) error {
	data, err := json.Marshal(Record{Command: command, Timestamp: time.Now(), Session: f.sessionID})
	if err != nil {
		return fmt.Errorf("history: marshal: %w", err)
	}
	data = append(data, '\n')

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, err := f.file.Write(data); err != nil {
		return fmt.Errorf("history: write: %w", err)
	}
	if err := f.file.Sync(); err != nil {
		return fmt.Errorf("history: sync: %w", err)
	}
	return nil
}

// Records reads every well-formed record, oldest first. Malformed lines are
// logged and skipped.
func (f *File) Records() ([]Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, err := f.file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("history: seek: %w", err)
	}
	var records []Record
	scanner := bufio.NewScanner(f.file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var r Record
		if err := json.Unmarshal(raw, &r); err != nil {
			logger.Named("history").Warnf("skipping malformed line %d in %s: %v", line, f.path, err)
			continue
		}
		if r.Command == "" {
			continue
		}
		records = append(records, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("history: read %q: %w", f.path, err)
	}
	return records, nil
}

// Commands returns the persisted commands, oldest first, keeping at most
// the newest limit entries when limit > 0.
func (f *File) Commands(limit int) ([]string, error) {
	records, err := f.Records()
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(records) > limit {
		records = records[len(records)-limit:]
	}
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Command
	}
	return out, nil
}

// EnforceRetention rewrites the file keeping only the newest maxKeep records.
// If maxKeep is 0, nothing is removed.
func (f *File) EnforceRetention(maxKeep int) error {
	if maxKeep <= 0 {
		return nil
	}
	records, err := f.Records()
	if err != nil {
		return err
	}
	if len(records) <= maxKeep {
		return nil
	}
	return f.rewrite(records[len(records)-maxKeep:])
}

// Clear truncates the file.
func (f *File) Clear() error {
	return f.rewrite(nil)
}

func (f *File) rewrite(records []Record) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("history: marshal: %w", err)
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.file.Truncate(0); err != nil {
		return fmt.Errorf("history: truncate: %w", err)
	}
	if _, err := f.file.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("history: write: %w", err)
	}
	return f.file.Sync()
}

// Close closes the underlying file.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.file.Close()
}

// ReadCommands is a convenience for read-only callers: it returns the
// commands stored at path, or nil when the file does not exist.
func ReadCommands(path string, limit int) ([]string, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	f, err := OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.Commands(limit)
}
