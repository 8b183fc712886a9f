package recorder

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"CoinPilot/internal/model"
)

// LogFileRecorder appends one line per cycle to a plain text file:
// timestamp, outcome or selected symbol, composite score, portfolio value.
// The file is opened append-only so the audit trail is never rewritten.
type LogFileRecorder struct {
	mu   sync.Mutex
	file *os.File
}

// NewLogFileRecorder opens (or creates) the log file for appending.
func NewLogFileRecorder(path string) (*LogFileRecorder, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open trade log: %w", err)
	}
	return &LogFileRecorder{file: f}, nil
}

func (r *LogFileRecorder) RecordCycle(rec *model.CycleRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	outcome := string(rec.Outcome)
	if rec.WinnerSymbol != "" {
		outcome = fmt.Sprintf("%s:%s", rec.Outcome, rec.WinnerSymbol)
	}
	line := fmt.Sprintf("%s,%s,%.4f,%.2f\n",
		rec.Time.UTC().Format(time.RFC3339), outcome, rec.WinnerScore, rec.PortfolioValue)
	if _, err := r.file.WriteString(line); err != nil {
		return fmt.Errorf("append trade log: %w", err)
	}
	return nil
}

func (r *LogFileRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.file.Close()
}
