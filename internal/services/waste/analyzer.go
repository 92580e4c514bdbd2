package waste

import (
	"strings"

	"go.uber.org/zap"

	"github.com/clickwise/clickwise/internal/domain"
)

// Analyzer implements the wasted-click distraction model. It classifies
// every clickable element relative to the detected primary CTA and scores
// how much of the click budget each one diverts.
type Analyzer struct {
	logger *zap.Logger
}

// NewAnalyzer creates an analyzer. A nil logger disables logging.
func NewAnalyzer(logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{logger: logger}
}

// AnalyzeWastedClicks scores every clickable element against the primary
// CTA. predictions, when supplied, feed each element's click-distraction
// index; a nil slice is allowed. The primary CTA is required: the model's
// output is meaningless without one.
func (a *Analyzer) AnalyzeWastedClicks(elements []domain.DOMElement, primaryCTA *domain.DOMElement, predictions []domain.ClickPredictionResult) (*WastedClickAnalysis, error) {
	if primaryCTA == nil {
		return nil, domain.ErrMissingPrimaryCTA()
	}

	fc := DetectFormContext(primaryCTA, elements)
	finalMult := finalFormMultiplier(fc)
	shareByID := clickShareIndex(predictions)

	analysis := &WastedClickAnalysis{FormContext: fc}

	for i := range elements {
		el := &elements[i]
		if !isClickable(el) {
			continue
		}
		if isPrimaryOrDuplicate(el, primaryCTA) {
			continue
		}

		t := elementType(el)
		cls := classify(t, fc)

		breakdown, factors := buildBreakdown(el, t, primaryCTA, fc, shareByID[el.LookupKey()])
		score := clamp01(combine(breakdown) * finalMult)

		analysis.Elements = append(analysis.Elements, WastedClickElement{
			Element:            *el,
			WastedClickScore:   score,
			Type:               t,
			DistractionFactors: factors,
			Recommendation:     recommendationFor(t, fc),
			Classification:     cls,
			ScoringBreakdown:   breakdown,
		})
	}

	total := 0.0
	for i := range analysis.Elements {
		e := &analysis.Elements[i]
		total += e.WastedClickScore
		if e.Classification == ClassWasted {
			analysis.TotalWastedElements++
		}
		if e.WastedClickScore > highRiskThreshold {
			analysis.HighRiskElements = append(analysis.HighRiskElements, *e)
		}
	}
	if n := len(analysis.Elements); n > 0 {
		analysis.AverageWasteScore = total / float64(n)
	}

	analysis.Recommendations = aggregateRecommendations(analysis.HighRiskElements, fc)
	analysis.ProjectedImprovements = projectImprovements(analysis, fc)

	a.logger.Debug("wasted-click analysis complete",
		zap.String("cta_type", string(fc.CTAType)),
		zap.Int("analyzed", len(analysis.Elements)),
		zap.Int("high_risk", len(analysis.HighRiskElements)),
		zap.Float64("avg_waste_score", analysis.AverageWasteScore))
	return analysis, nil
}

// isClickable limits analysis to elements that can actually absorb clicks.
func isClickable(el *domain.DOMElement) bool {
	if !el.IsVisible {
		return false
	}
	return el.IsInteractive || el.IsLink() || el.IsButton() || el.IsFormField()
}

// isPrimaryOrDuplicate excludes the primary CTA itself and any true
// duplicate sharing its destination and label.
func isPrimaryOrDuplicate(el, primary *domain.DOMElement) bool {
	if el.LookupKey() != "" && el.LookupKey() == primary.LookupKey() {
		return true
	}
	sameHref := el.Href == primary.Href
	sameText := strings.EqualFold(strings.TrimSpace(el.Text), strings.TrimSpace(primary.Text))
	return sameHref && sameText
}

// clickShareIndex maps element ID to its fraction of total predicted
// clicks.
func clickShareIndex(predictions []domain.ClickPredictionResult) map[string]float64 {
	shares := make(map[string]float64, len(predictions))
	total := 0.0
	for i := range predictions {
		total += predictions[i].PredictedClicks
	}
	if total <= 0 {
		return shares
	}
	for i := range predictions {
		shares[predictions[i].ElementID] = predictions[i].PredictedClicks / total
	}
	return shares
}

// projectImprovements estimates lift from resolving the high-risk set,
// scaled by form context and capped.
func projectImprovements(analysis *WastedClickAnalysis, fc FormContext) ProjectedImprovements {
	wastedShare := 0.0
	for i := range analysis.HighRiskElements {
		wastedShare += analysis.HighRiskElements[i].WastedClickScore
	}

	ctr := wastedShare * 0.5
	if ctr > maxCTRLift {
		ctr = maxCTRLift
	}

	form := 0.0
	if fc.CTAType == CTATypeForm {
		form = wastedShare * 0.4
		if form > maxFormCompletionLift {
			form = maxFormCompletionLift
		}
	}

	revenue := ctr * 0.6
	return ProjectedImprovements{
		CTRLift:            ctr,
		FormCompletionLift: form,
		RevenueLift:        revenue,
	}
}
