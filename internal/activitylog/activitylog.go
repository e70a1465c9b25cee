// Package activitylog appends one human-readable line per inventory change to
// a log file named after the current day.
package activitylog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mamadbah2/stockbook/internal/domain/models"
)

const timestampLayout = "2006-01-02 15:04:05"

// Writer appends entries to <dir>/inventory_<YYYYMMDD>.log.
type Writer struct {
	dir string
	now func() time.Time
	mu  sync.Mutex
}

// New returns a Writer that logs into dir using the local clock.
func New(dir string) *Writer {
	return &Writer{dir: dir, now: time.Now}
}

// Path returns the file an entry written at t goes to.
func (w *Writer) Path(t time.Time) string {
	return filepath.Join(w.dir, fmt.Sprintf("inventory_%s.log", t.Format("20060102")))
}

// EnsureDir creates the log directory if it does not exist.
func (w *Writer) EnsureDir() error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return &models.IOError{Op: "mkdir", Path: w.dir, Err: err}
	}
	return nil
}

// Append writes "[YYYY-MM-DD HH:MM:SS] action". The directory and file are
// created on demand. Newlines inside action are flattened so every entry is
// exactly one line.
func (w *Writer) Append(action string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	if err := w.EnsureDir(); err != nil {
		return err
	}

	path := w.Path(now)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return &models.IOError{Op: "open", Path: path, Err: err}
	}

	line := fmt.Sprintf("[%s] %s\n", now.Format(timestampLayout), flatten(action))
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return &models.IOError{Op: "write", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &models.IOError{Op: "close", Path: path, Err: err}
	}
	return nil
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// flatten replaces line breaks only; other whitespace is kept as written.
func flatten(s string) string {
	return lineBreaks.Replace(s)
}
