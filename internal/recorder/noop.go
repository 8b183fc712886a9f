package recorder

import "CoinPilot/internal/model"

// NoopRecorder is a no-op implementation used when no sink is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordCycle(_ *model.CycleRecord) error { return nil }
func (n *NoopRecorder) Close() error                           { return nil }
