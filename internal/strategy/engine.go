package strategy

import "CoinPilot/internal/model"

// Weights holds the additive bonuses applied on top of the sentiment score.
type Weights struct {
	BreakoutBonus    float64
	VolumeSpikeBonus float64
}

// DefaultWeights are the stock tuning.
var DefaultWeights = Weights{BreakoutBonus: 0.2, VolumeSpikeBonus: 0.15}

// Score combines a sentiment polarity with the technical signal bonuses into
// one composite ranking score. Purely additive, order-independent, unclamped.
func Score(sentiment float64, breakout, volumeSpike bool, w Weights) float64 {
	score := sentiment
	if breakout {
		score += w.BreakoutBonus
	}
	if volumeSpike {
		score += w.VolumeSpikeBonus
	}
	return score
}

// SelectWinner picks the asset with the highest composite score among those
// with a positive price. Ties break to the first occurrence in input order,
// so the result is deterministic for a given candidate ordering. Returns
// false when no asset is eligible.
func SelectWinner(assets []model.ScoredAsset) (model.ScoredAsset, bool) {
	var winner model.ScoredAsset
	found := false
	for _, a := range assets {
		if a.Price <= 0 {
			continue
		}
		if !found || a.Score > winner.Score {
			winner = a
			found = true
		}
	}
	return winner, found
}

// ApplyThresholdFallback replaces a winner that scored below the buy
// threshold with the stablecoin. The stablecoin candidate from the valid set
// is preferred; when absent a synthetic placeholder at price 1.0 and score
// 0.0 stands in, so the state machine always has a definite target.
func ApplyThresholdFallback(winner model.ScoredAsset, assets []model.ScoredAsset, threshold float64, stablecoinID, stablecoinSymbol string) model.ScoredAsset {
	if winner.Score >= threshold {
		return winner
	}
	for _, a := range assets {
		if a.ID == stablecoinID && a.Price > 0 {
			return a
		}
	}
	return model.ScoredAsset{
		AssetCandidate: model.AssetCandidate{
			ID:     stablecoinID,
			Name:   stablecoinSymbol,
			Symbol: stablecoinSymbol,
			Price:  1.0,
		},
	}
}
