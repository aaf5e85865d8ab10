// Package logging provides the file outputs the server keeps next to its
// structured logs: a daily-rolling log file and the user activity audit log.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/memoryxin/battlechess/internal/dependencies/clock"
)

// DailyWriter is an io.Writer that appends to a log file named after the
// current date (log_2006_01_02.txt) and reopens the file when the day
// changes. Safe for concurrent use.
type DailyWriter struct {
	dir   string
	clock clock.Clock

	mu   sync.Mutex
	day  string
	file *os.File
}

// NewDailyWriter creates a DailyWriter rooted at dir, creating it if needed
func NewDailyWriter(dir string, clk clock.Clock) (*DailyWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	return &DailyWriter{dir: dir, clock: clk}, nil
}

// Write appends to today's log file
func (w *DailyWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	day := w.clock.Now().Format("2006_01_02")
	if w.file == nil || day != w.day {
		if w.file != nil {
			_ = w.file.Close()
		}
		path := filepath.Join(w.dir, "log_"+day+".txt")
		file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return 0, err
		}
		w.file = file
		w.day = day
	}
	return w.file.Write(p)
}

// Close closes the currently open file
func (w *DailyWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

var _ io.WriteCloser = (*DailyWriter)(nil)
