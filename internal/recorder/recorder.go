package recorder

import "CoinPilot/internal/model"

// Recorder persists cycle outcomes for later analysis. Implementations are
// append-only: prior records are never rewritten.
type Recorder interface {
	RecordCycle(rec *model.CycleRecord) error
	Close() error
}

// Multi fans one record out to several recorders. A failing sink does not
// stop the others; the first error is returned.
type Multi struct {
	Recorders []Recorder
}

// NewMulti creates a Multi over the given recorders.
func NewMulti(recorders ...Recorder) *Multi {
	return &Multi{Recorders: recorders}
}

func (m *Multi) RecordCycle(rec *model.CycleRecord) error {
	var first error
	for _, r := range m.Recorders {
		if err := r.RecordCycle(rec); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m *Multi) Close() error {
	var first error
	for _, r := range m.Recorders {
		if err := r.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
