package prediction

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clickwise/clickwise/internal/domain"
	"github.com/clickwise/clickwise/internal/matcher"
	"github.com/clickwise/clickwise/internal/services/cpc"
	"github.com/clickwise/clickwise/internal/services/distribution"
	"github.com/clickwise/clickwise/internal/services/forms"
	"github.com/clickwise/clickwise/internal/services/risk"
	"github.com/clickwise/clickwise/internal/services/scoring"
	"github.com/clickwise/clickwise/internal/services/traffic"
	"github.com/clickwise/clickwise/internal/services/waste"
)

// Engine wires the scoring, traffic, CPC, distribution, form, waste, and
// risk components into one deterministic pipeline. Each call operates on
// its own data; the engine holds no per-call state and is safe for
// concurrent use.
type Engine struct {
	scorer      *scoring.Scorer
	analyzer    *traffic.Analyzer
	estimator   *cpc.Estimator
	distributor *distribution.Distributor
	formAnal    *forms.Analyzer
	wasteAnal   *waste.Analyzer
	logger      *zap.Logger
}

// EngineOption customizes engine construction.
type EngineOption func(*Engine)

// WithEstimator substitutes a preconfigured CPC estimator.
func WithEstimator(est *cpc.Estimator) EngineOption {
	return func(e *Engine) {
		if est != nil {
			e.estimator = est
		}
	}
}

// NewEngine creates a prediction engine. A nil logger disables logging.
func NewEngine(logger *zap.Logger, opts ...EngineOption) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	analyzer := traffic.NewAnalyzer(logger)
	e := &Engine{
		scorer:      scoring.NewScorer(logger),
		analyzer:    analyzer,
		estimator:   cpc.NewEstimator(logger),
		distributor: distribution.NewDistributor(analyzer, logger),
		formAnal:    forms.NewAnalyzer(logger),
		wasteAnal:   waste.NewAnalyzer(logger),
		logger:      logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Estimator exposes the engine's CPC estimator so callers can serve
// standalone estimates from the same context cache.
func (e *Engine) Estimator() *cpc.Estimator {
	return e.estimator
}

// PredictClicks runs the full pipeline for one page. Fail-fast: an error
// at any stage aborts the call with no partial result.
func (e *Engine) PredictClicks(elements []domain.DOMElement, ctx domain.PageContext, opts Options) (*Report, error) {
	start := time.Now()
	analysisID := uuid.New()

	if len(elements) == 0 {
		return nil, domain.ErrNoElements()
	}

	// Enrich context and estimate CPC up front; both feed every later
	// stage.
	ctx = e.estimator.EstimateContext(ctx)
	estimate := e.estimator.EstimateCPC(ctx)

	filtered, truncated := filterElements(elements)
	if len(filtered) == 0 {
		return nil, domain.ErrNoElements().WithDetails("all elements were filtered out")
	}
	ensureLookupKeys(filtered)
	if len(ctx.AllElements) == 0 {
		ctx.AllElements = filtered
	}

	b := classifyElements(filtered)

	var warnings []string
	if truncated {
		warnings = append(warnings, "element list truncated to 100 entries")
	}
	if ctx.Industry == domain.IndustryUnknown {
		warnings = append(warnings, "industry could not be inferred; CPC estimate uses the generic baseline")
	}

	// Score interactive elements; form fields get the specialized
	// variant.
	scored := make([]scoring.ScoredElement, 0, len(b.interactive))
	for _, el := range b.interactive {
		if el.IsFormField() {
			scored = append(scored, e.scorer.ScoreFormElement(el, ctx))
		} else {
			scored = append(scored, e.scorer.ScoreElement(el, ctx))
		}
	}
	if len(scored) == 0 {
		return nil, domain.ErrNoElements().WithDetails("no interactive elements to score")
	}

	predictions := e.distributor.DistributeClicks(scored, ctx, estimate.EstimatedCPC)
	if !opts.SkipAdvancedDistribution {
		predictions = e.distributor.ApplyAdvancedDistribution(predictions)
	}

	elementByID := indexElements(filtered)

	// Per-element risk factors and confidence.
	degenerate := true
	for i := range predictions {
		p := &predictions[i]
		el, ok := elementByID[p.ElementID]
		if !ok {
			continue
		}
		if len(p.RiskFactors) == 0 {
			p.RiskFactors = risk.GenerateRiskFactors(el, &ctx)
			p.Confidence = risk.CalculateConfidence(el, p.RawScore, &ctx, len(p.RiskFactors))
		}
		if p.RawScore > scoring.MinScore {
			degenerate = false
		}
	}
	if degenerate {
		warnings = append(warnings, "no element scored above the minimum floor; predictions are uniform")
	}

	// Form analysis, merged into matching predictions.
	var formAnalysis *forms.BottleneckAnalysis
	if len(b.formFields) > 0 {
		mods := e.analyzer.CalculateTrafficModifiers(ctx)
		fa := e.formAnal.AnalyzeFormBottleneck(b.formFields, ctx, mods.TotalClicks)
		formAnalysis = &fa
		mergeFormAnalysis(predictions, &fa)
	}

	// Resolve the engine's primary CTA as the argmax of predicted
	// clicks, then run the wasted-click model against it. The per-element
	// 4-phase waste values remain authoritative; the model's output is
	// reported as an aggregate side channel.
	primary := resolvePrimaryCTA(predictions, elementByID)
	var wasteAnalysis *waste.WastedClickAnalysis
	if primary != nil {
		wa, err := e.wasteAnal.AnalyzeWastedClicks(filtered, primary, predictions)
		if err != nil {
			return nil, domain.ErrPredictionFailed("waste-analysis", err)
		}
		wasteAnalysis = wa
		if fcWarn := formContextWarning(wa, b.formFields); fcWarn != "" {
			warnings = append(warnings, fcWarn)
		}
	}

	reliability := risk.AssessReliability(predictions, filtered, &ctx)
	if reliability.Level == domain.ConfidenceLow {
		warnings = append(warnings, "overall prediction reliability is low")
	}
	warnings = append(warnings, reliability.Diagnostics...)

	// Display enrichment through the matcher, and CTA reconciliation
	// against the externally identified display CTA when one was given.
	m := matcher.New(e.logger)
	m.StartBatch(filtered)
	enrichPredictions(predictions, m)
	displayID, mismatch := reconcileDisplayCTA(opts.DisplayCTAID, primary, m)
	matcherStats := m.Stats()
	m.EndBatch()

	sort.SliceStable(predictions, func(i, j int) bool {
		return predictions[i].PredictedClicks > predictions[j].PredictedClicks
	})

	report := &Report{
		Predictions:         predictions,
		FormAnalysis:        formAnalysis,
		WastedClickAnalysis: wasteAnalysis,
		Reliability:         reliability,
		Warnings:            warnings,
		Metadata: Metadata{
			AnalysisID:          analysisID,
			TotalElements:       len(filtered),
			InteractiveElements: len(b.interactive),
			FormFields:          len(b.formFields),
			ProcessingTimeMS:    float64(time.Since(start).Microseconds()) / 1000.0,
			EstimatedCPC:        estimate.EstimatedCPC,
			CPCBreakdown:        estimate.Breakdown,
			EngineVersion:       EngineVersion,
			PrimaryCTAID:        primaryID(primary),
			DisplayCTAID:        displayID,
			CTAMismatch:         mismatch,
			MatcherActivity:     matcherStats,
		},
	}

	e.logger.Info("prediction complete",
		zap.String("analysis_id", analysisID.String()),
		zap.Int("elements", len(filtered)),
		zap.Int("predictions", len(predictions)),
		zap.String("reliability", string(reliability.Level)),
		zap.Float64("processing_ms", report.Metadata.ProcessingTimeMS))
	return report, nil
}

// PredictBatch runs the pipeline per item, isolating failures: a single
// page's error degrades that item only and never aborts the batch.
func (e *Engine) PredictBatch(items []BatchItem) []BatchResult {
	results := make([]BatchResult, 0, len(items))
	for i := range items {
		item := &items[i]
		report, err := e.PredictClicks(item.Elements, item.Context, item.Options)
		if err != nil {
			e.logger.Warn("batch item degraded",
				zap.String("item", item.Name),
				zap.Error(err))
			results = append(results, BatchResult{
				Name:     item.Name,
				Degraded: true,
				Error:    err.Error(),
			})
			continue
		}
		results = append(results, BatchResult{Name: item.Name, Report: report})
	}
	return results
}

func indexElements(elements []domain.DOMElement) map[string]*domain.DOMElement {
	idx := make(map[string]*domain.DOMElement, len(elements))
	for i := range elements {
		if key := elements[i].LookupKey(); key != "" {
			idx[key] = &elements[i]
		}
	}
	return idx
}

// resolvePrimaryCTA picks the element behind the highest-predicted-clicks
// prediction.
func resolvePrimaryCTA(predictions []domain.ClickPredictionResult, byID map[string]*domain.DOMElement) *domain.DOMElement {
	bestIdx := -1
	best := -1.0
	for i := range predictions {
		if predictions[i].PredictedClicks > best {
			best = predictions[i].PredictedClicks
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return nil
	}
	return byID[predictions[bestIdx].ElementID]
}

func primaryID(el *domain.DOMElement) string {
	if el == nil {
		return ""
	}
	return el.LookupKey()
}

// mergeFormAnalysis copies the form-level numbers into each form field's
// prediction.
func mergeFormAnalysis(predictions []domain.ClickPredictionResult, fa *forms.BottleneckAnalysis) {
	rates := make(map[string]float64, len(fa.Fields))
	for i := range fa.Fields {
		rates[fa.Fields[i].FieldID] = fa.Fields[i].CompletionRate
	}
	for i := range predictions {
		p := &predictions[i]
		rate, ok := rates[p.ElementID]
		if !ok {
			continue
		}
		p.FormCompletionRate = rate
		p.LeadCount = fa.EstimatedLeads
		p.BottleneckField = fa.BottleneckField
	}
}

// enrichPredictions attaches display text/type/coordinates looked up from
// the source elements.
func enrichPredictions(predictions []domain.ClickPredictionResult, m *matcher.Matcher) {
	for i := range predictions {
		p := &predictions[i]
		match := m.FindByID(p.ElementID)
		if match.Element == nil {
			continue
		}
		el := match.Element
		p.Text = el.TextOrLabel()
		p.TagName = el.TagName
		p.ElementType = displayType(el)
		coords := el.Coordinates
		p.Coordinates = &coords
	}
}

func displayType(el *domain.DOMElement) string {
	switch {
	case el.IsFormField():
		return "form field"
	case el.IsButton() || el.HasButtonStyling:
		return "button"
	case el.IsLink():
		return "link"
	default:
		return "content"
	}
}

// reconcileDisplayCTA compares the externally identified CTA against the
// engine's argmax choice. The two are deliberately separate concepts; a
// disagreement is reported, not resolved.
func reconcileDisplayCTA(displayID string, primary *domain.DOMElement, m *matcher.Matcher) (string, bool) {
	if displayID == "" {
		return "", false
	}
	match := m.FindByID(displayID)
	if match.Element == nil || primary == nil {
		return displayID, false
	}
	return displayID, match.Element.LookupKey() != primary.LookupKey()
}

// formContextWarning flags a form-typed CTA on a page with no form
// fields, which usually means the form lives behind another navigation
// step.
func formContextWarning(wa *waste.WastedClickAnalysis, formFields []domain.DOMElement) string {
	if wa.FormContext.CTAType == waste.CTATypeForm && len(formFields) == 0 {
		return "primary CTA looks form-typed but the page has no form fields"
	}
	return ""
}
