package calculator

import (
	"testing"
	"time"

	"CoinPilot/internal/model"
)

func makeBars(closes, highs, volumes []float64) []model.OHLCV {
	bars := make([]model.OHLCV, len(closes))
	for i := range closes {
		bars[i] = model.OHLCV{
			Time:   time.Date(2026, 1, 1, i, 0, 0, 0, time.UTC),
			Open:   closes[i],
			High:   highs[i],
			Low:    closes[i] * 0.99,
			Close:  closes[i],
			Volume: volumes[i],
		}
	}
	return bars
}

func TestDetectSignals_TooFewBars(t *testing.T) {
	for n := 0; n < 5; n++ {
		closes := make([]float64, n)
		highs := make([]float64, n)
		volumes := make([]float64, n)
		for i := range closes {
			closes[i] = 100
			highs[i] = 200
			volumes[i] = 1000
		}
		breakout, spike := DetectSignals(makeBars(closes, highs, volumes), 5, 2.0)
		if breakout || spike {
			t.Errorf("%d bars: expected neutral result, got breakout=%v spike=%v", n, breakout, spike)
		}
	}
}

func TestDetectSignals_Breakout(t *testing.T) {
	tests := []struct {
		name      string
		lastClose float64
		want      bool
	}{
		{"close above all prior highs", 111, true},
		{"close equal to max prior high is not a breakout", 110, false},
		{"close below max prior high", 109, false},
	}
	for _, tt := range tests {
		closes := []float64{100, 101, 102, 103, tt.lastClose}
		highs := []float64{105, 110, 108, 107, tt.lastClose + 1}
		volumes := []float64{1000, 1000, 1000, 1000, 1000}
		breakout, _ := DetectSignals(makeBars(closes, highs, volumes), 5, 2.0)
		if breakout != tt.want {
			t.Errorf("%s: expected breakout=%v, got %v", tt.name, tt.want, breakout)
		}
	}
}

func TestDetectSignals_VolumeSpike(t *testing.T) {
	tests := []struct {
		name       string
		lastVolume float64
		want       bool
	}{
		{"volume above twice the average", 2001, true},
		{"volume exactly twice the average is not a spike", 2000, false},
		{"volume below twice the average", 1999, false},
	}
	for _, tt := range tests {
		closes := []float64{100, 100, 100, 100, 100}
		highs := []float64{200, 200, 200, 200, 200}
		volumes := []float64{1000, 1000, 1000, 1000, tt.lastVolume}
		_, spike := DetectSignals(makeBars(closes, highs, volumes), 5, 2.0)
		if spike != tt.want {
			t.Errorf("%s: expected spike=%v, got %v", tt.name, tt.want, spike)
		}
	}
}

func TestDetectSignals_ZeroHistoryVolume(t *testing.T) {
	// All-zero prior volume makes any positive last volume a spike.
	closes := []float64{100, 100, 100, 100, 100}
	highs := []float64{200, 200, 200, 200, 200}
	volumes := []float64{0, 0, 0, 0, 1}
	_, spike := DetectSignals(makeBars(closes, highs, volumes), 5, 2.0)
	if !spike {
		t.Error("expected positive volume over zero average to count as a spike")
	}

	volumes[4] = 0
	_, spike = DetectSignals(makeBars(closes, highs, volumes), 5, 2.0)
	if spike {
		t.Error("zero volume over zero average must not be a spike")
	}
}

func TestDetectSignals_CustomMultiplier(t *testing.T) {
	closes := []float64{100, 100, 100, 100, 100}
	highs := []float64{200, 200, 200, 200, 200}
	volumes := []float64{1000, 1000, 1000, 1000, 1500}
	_, spike := DetectSignals(makeBars(closes, highs, volumes), 5, 1.4)
	if !spike {
		t.Error("expected spike with 1.4x multiplier and 1.5x volume")
	}
}
