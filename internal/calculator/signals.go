package calculator

import "CoinPilot/internal/model"

// DetectSignals inspects an ascending candle series and reports whether the
// latest candle closed strictly above every prior high (breakout) and whether
// its volume strictly exceeded spikeMultiplier times the mean prior volume
// (volume spike). A series shorter than minBars yields (false, false):
// insufficient data is a defined neutral result, not an error.
//
// A history of all-zero volumes makes any positive last volume a spike; that
// is accepted behavior for thinly traded pairs.
func DetectSignals(bars []model.OHLCV, minBars int, spikeMultiplier float64) (breakout, volumeSpike bool) {
	if minBars < 2 {
		minBars = 2
	}
	if len(bars) < minBars {
		return false, false
	}

	history := bars[:len(bars)-1]
	last := bars[len(bars)-1]

	maxHigh := history[0].High
	volumeSum := 0.0
	for _, b := range history {
		if b.High > maxHigh {
			maxHigh = b.High
		}
		volumeSum += b.Volume
	}
	avgVolume := volumeSum / float64(len(history))

	breakout = last.Close > maxHigh
	volumeSpike = last.Volume > spikeMultiplier*avgVolume
	return breakout, volumeSpike
}
