// Package logbook implements the append-only action log of the contacts
// service. Every mutating operation is recorded as one text line so that the
// history can be inspected or downloaded later.
package logbook

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// FileName is the log file created inside the configured directory.
const FileName = "contacts.log"

// Logbook appends action entries to a single text file. It is safe for
// concurrent use within one process.
type Logbook struct {
	mu   sync.Mutex
	path string
}

// New creates the log directory and file if they do not exist yet and
// returns a Logbook writing to it.
func New(dir string) (*Logbook, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	path := filepath.Join(dir, FileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	f.Close()
	return &Logbook{path: path}, nil
}

// Path returns the location of the log file, e.g. for download handlers.
func (l *Logbook) Path() string {
	return l.path
}

// Record appends one entry in the format
// [02/01/2006 15:04:05] [ACTION] [User: id] {json}
func (l *Logbook) Record(action, userID string, data any) error {
	if userID == "" {
		userID = "system"
	}
	encoded, err := json.Marshal(data)
	if err != nil {
		encoded = []byte("{}")
	}
	line := fmt.Sprintf("[%s] [%s] [User: %s] %s\n",
		time.Now().Format("02/01/2006 15:04:05"),
		strings.ToUpper(action),
		userID,
		encoded,
	)

	l.mu.Lock()
	defer l.mu.Unlock()
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("append log entry: %w", err)
	}
	return nil
}

// Tail returns the last limit non-empty lines of the log, oldest first.
func (l *Logbook) Tail(limit int) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	content, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read log file: %w", err)
	}
	var lines []string
	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if limit > 0 && len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}
	return lines, nil
}
