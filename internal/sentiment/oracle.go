package sentiment

import (
	"context"
	"log"
)

// HeadlineSource supplies raw news headlines mentioning an asset.
type HeadlineSource interface {
	Headlines(ctx context.Context, assetName string) ([]string, error)
	Name() string
}

// Scorer rates a batch of headlines with a polarity in roughly [-1, 1].
type Scorer interface {
	ScoreHeadlines(ctx context.Context, assetName string, headlines []string) (float64, error)
	Name() string
}

// Oracle reduces an asset's news coverage to a single sentiment polarity plus
// a sample count. It never lets a collaborator failure cross its boundary:
// any fetch or scoring error degrades to the neutral result (0, 0) and is
// logged. The sample count is informational only and is not weighted into
// downstream scoring.
type Oracle struct {
	Source HeadlineSource
	Scorer Scorer
}

// NewOracle creates an Oracle over the given source and scorer.
func NewOracle(source HeadlineSource, scorer Scorer) *Oracle {
	return &Oracle{Source: source, Scorer: scorer}
}

// Score returns the mean headline polarity for the asset and the number of
// headlines behind it. Zero usable headlines is neutral, not an error.
func (o *Oracle) Score(ctx context.Context, assetName string) (polarity float64, samples int) {
	headlines, err := o.Source.Headlines(ctx, assetName)
	if err != nil {
		log.Printf("[WARN] headline fetch for %q failed: %v, using neutral sentiment", assetName, err)
		return 0, 0
	}
	if len(headlines) == 0 {
		return 0, 0
	}
	score, err := o.Scorer.ScoreHeadlines(ctx, assetName, headlines)
	if err != nil {
		log.Printf("[WARN] sentiment scoring for %q failed: %v, using neutral sentiment", assetName, err)
		return 0, 0
	}
	return score, len(headlines)
}
