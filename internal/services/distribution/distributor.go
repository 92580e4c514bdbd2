package distribution

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/clickwise/clickwise/internal/domain"
	"github.com/clickwise/clickwise/internal/services/scoring"
	"github.com/clickwise/clickwise/internal/services/traffic"
)

// Degenerate-batch fallbacks: when no element scores above zero the
// distributor returns uniform minimal results instead of dividing by zero.
const (
	emptyPredictedClicks = 0.1
	emptyRiskFactor      = "No valid scoring data"
)

// Advanced (80/20) redistribution constants.
const (
	topShare       = 0.2 // fraction of elements treated as winners
	boostPoolShare = 0.1 // fraction of total clicks pooled to winners
	minClicksFloor = 0.1 // losers are never reduced below this
)

// Distributor normalizes per-element scores into click-share
// probabilities and absolute click predictions, and attaches the 4-phase
// waste breakdown to every element.
type Distributor struct {
	analyzer *traffic.Analyzer
	logger   *zap.Logger
}

// NewDistributor creates a distributor. A nil logger disables logging.
func NewDistributor(analyzer *traffic.Analyzer, logger *zap.Logger) *Distributor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if analyzer == nil {
		analyzer = traffic.NewAnalyzer(logger)
	}
	return &Distributor{analyzer: analyzer, logger: logger}
}

// DistributeClicks converts scored elements into click predictions.
// avgCPC converts each element's wasted clicks into wasted spend.
func (d *Distributor) DistributeClicks(scored []scoring.ScoredElement, ctx domain.PageContext, avgCPC float64) []domain.ClickPredictionResult {
	if len(scored) == 0 {
		return nil
	}

	mods := d.analyzer.CalculateTrafficModifiers(ctx)

	// Traffic adjustment per element, then raw probabilities. A batch
	// where every element sits at or below the scoring floor carries no
	// signal: the floor is what the scorer assigns when nothing about the
	// element earned clicks, so distributing real volume across it would
	// manufacture predictions out of nothing.
	totalScore := 0.0
	degenerate := true
	for i := range scored {
		scored[i].AdjustedScore = scored[i].Score * mods.TrafficSourceModifier * mods.DeviceModifier
		totalScore += scored[i].AdjustedScore
		if scored[i].Score > scoring.MinScore {
			degenerate = false
		}
	}

	if degenerate || totalScore <= 0 {
		d.logger.Warn("degenerate batch: no element scored above the floor",
			zap.Int("elements", len(scored)))
		return d.emptyResults(scored, avgCPC)
	}

	// Raw probability, combined modifier, then renormalize so the batch
	// sums to 1 again.
	combined := mods.TrafficSourceModifier * mods.DeviceModifier
	probSum := 0.0
	for i := range scored {
		scored[i].Probability = scored[i].AdjustedScore / totalScore * combined
		probSum += scored[i].Probability
	}
	if probSum <= 0 {
		return d.emptyResults(scored, avgCPC)
	}
	for i := range scored {
		scored[i].Probability /= probSum
	}

	batch := make([]domain.DOMElement, len(scored))
	for i := range scored {
		batch[i] = scored[i].Element
	}
	stats := collectPageStats(&ctx, batch)

	impressions := float64(ctx.TotalImpressions)
	results := make([]domain.ClickPredictionResult, 0, len(scored))
	for i := range scored {
		se := &scored[i]
		predicted := se.Probability * mods.TotalClicks

		ctr := 0.0
		if impressions > 0 {
			ctr = predicted / impressions * 100
		}

		breakdown := calculateWasteBreakdown(&se.Element, stats)
		wastedClicks := predicted * breakdown.CappedWasteRate

		results = append(results, domain.ClickPredictionResult{
			ElementID:        se.Element.LookupKey(),
			PredictedClicks:  predicted,
			EstimatedClicks:  int(math.Round(predicted)),
			CTR:              ctr,
			ClickShare:       se.Probability * 100,
			RawScore:         se.Score,
			ClickProbability: se.Probability,
			WastedClicks:     wastedClicks,
			WastedSpend:      wastedClicks * avgCPC,
			AvgCPC:           avgCPC,
			WasteBreakdown:   &breakdown,
		})
	}

	d.logger.Debug("clicks distributed",
		zap.Int("elements", len(results)),
		zap.Float64("total_clicks", mods.TotalClicks))
	return results
}

// emptyResults returns one uniform minimal result per element, used when
// the batch has no valid scoring data.
func (d *Distributor) emptyResults(scored []scoring.ScoredElement, avgCPC float64) []domain.ClickPredictionResult {
	results := make([]domain.ClickPredictionResult, 0, len(scored))
	for i := range scored {
		results = append(results, domain.ClickPredictionResult{
			ElementID:       scored[i].Element.LookupKey(),
			PredictedClicks: emptyPredictedClicks,
			EstimatedClicks: 0,
			Confidence:      domain.ConfidenceLow,
			RiskFactors:     []string{emptyRiskFactor},
			AvgCPC:          avgCPC,
		})
	}
	return results
}

// ApplyAdvancedDistribution applies winner-take-more dynamics: the top
// 20% of elements by predicted clicks split a pooled 10%-of-total boost,
// and the remaining 80% absorb an equal-and-opposite reduction floored at
// 0.1 clicks. Total click volume is approximately preserved; small
// floor-induced drift is acceptable.
func (d *Distributor) ApplyAdvancedDistribution(results []domain.ClickPredictionResult) []domain.ClickPredictionResult {
	if len(results) < 2 {
		return results
	}

	order := make([]int, len(results))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return results[order[a]].PredictedClicks > results[order[b]].PredictedClicks
	})

	topCount := int(math.Ceil(float64(len(results)) * topShare))
	if topCount < 1 {
		topCount = 1
	}
	bottomCount := len(results) - topCount
	if bottomCount < 1 {
		return results
	}

	total := 0.0
	for i := range results {
		total += results[i].PredictedClicks
	}
	pool := total * boostPoolShare

	boostEach := pool / float64(topCount)
	reduceEach := pool / float64(bottomCount)

	for rank, idx := range order {
		r := &results[idx]
		prev := r.PredictedClicks
		if rank < topCount {
			r.PredictedClicks += boostEach
		} else {
			r.PredictedClicks -= reduceEach
			if r.PredictedClicks < minClicksFloor {
				r.PredictedClicks = minClicksFloor
			}
		}
		r.EstimatedClicks = int(math.Round(r.PredictedClicks))
		// CTR is clicks over impressions; scaling by the click ratio
		// keeps the relation exact without carrying impressions here.
		if prev > 0 {
			r.CTR = r.CTR * r.PredictedClicks / prev
		}
		if r.WasteBreakdown != nil {
			r.WastedClicks = r.PredictedClicks * r.WasteBreakdown.CappedWasteRate
			r.WastedSpend = r.WastedClicks * r.AvgCPC
		}
	}

	// Recompute shares so they still sum to 100% after the floors.
	newTotal := 0.0
	for i := range results {
		newTotal += results[i].PredictedClicks
	}
	if newTotal > 0 {
		for i := range results {
			results[i].ClickProbability = results[i].PredictedClicks / newTotal
			results[i].ClickShare = results[i].ClickProbability * 100
		}
	}
	return results
}
