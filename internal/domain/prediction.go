package domain

// ConfidenceLevel grades how much trust to place in a prediction.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

func (c ConfidenceLevel) IsValid() bool {
	switch c {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return true
	}
	return false
}

// ElementCategory is the Phase 1 waste classification of an element.
type ElementCategory string

const (
	CategoryPrimaryCTA     ElementCategory = "Primary CTA"
	CategoryNavigation     ElementCategory = "Navigation"
	CategorySocialMedia    ElementCategory = "Social Media"
	CategoryExternalLink   ElementCategory = "External Link"
	CategoryInterruptive   ElementCategory = "Interruptive"
	CategoryAutoMedia      ElementCategory = "Auto-Playing Media"
	CategoryCompetingCTA   ElementCategory = "Competing CTA"
	CategoryInternalNav    ElementCategory = "Internal Navigation"
	CategoryTrustIndicator ElementCategory = "Trust Indicator"
	CategorySupporting     ElementCategory = "Supporting Content"
	CategoryUnknown        ElementCategory = "Unknown"
)

// MaxWasteRate caps the fraction of an element's clicks that can be
// attributed as waste. Guarantees wastedClicks <= predictedClicks.
const MaxWasteRate = 0.8

// WasteBreakdown decomposes an element's waste rate across the four
// attribution phases plus the legacy quality layer.
type WasteBreakdown struct {
	BaseWasteRate               float64         `json:"baseWasteRate"`
	Phase1ElementClassification float64         `json:"phase1ElementClassification"`
	Phase2AttentionRatio        float64         `json:"phase2AttentionRatio"`
	Phase3VisualEmphasis        float64         `json:"phase3VisualEmphasis"`
	Phase4ContentClutter        float64         `json:"phase4ContentClutter"`
	LegacyQualityFactors        float64         `json:"legacyQualityFactors"`
	TotalWasteRate              float64         `json:"totalWasteRate"`
	CappedWasteRate             float64         `json:"cappedWasteRate"`
	ElementCategory             ElementCategory `json:"elementCategory"`
	AttentionRatio              float64         `json:"attentionRatio,omitempty"`
	VisualFactors               []string        `json:"visualFactors,omitempty"`
	ClutterFactors              []string        `json:"clutterFactors,omitempty"`
	LegacyFactors               []string        `json:"legacyFactors,omitempty"`
}

// ClickPredictionResult is the per-element output of the engine.
type ClickPredictionResult struct {
	ElementID        string          `json:"elementId"`
	PredictedClicks  float64         `json:"predictedClicks"`
	EstimatedClicks  int             `json:"estimatedClicks"`
	CTR              float64         `json:"ctr"`
	ClickShare       float64         `json:"clickShare"`
	RawScore         float64         `json:"rawScore"`
	ClickProbability float64         `json:"clickProbability"`
	Confidence       ConfidenceLevel `json:"confidence"`
	RiskFactors      []string        `json:"riskFactors,omitempty"`

	WastedClicks   float64         `json:"wastedClicks"`
	WastedSpend    float64         `json:"wastedSpend"`
	AvgCPC         float64         `json:"avgCPC"`
	WasteBreakdown *WasteBreakdown `json:"wasteBreakdown,omitempty"`

	// Display enrichment, looked up from the source element by ID.
	Text        string       `json:"text,omitempty"`
	ElementType string       `json:"elementType,omitempty"`
	TagName     string       `json:"tagName,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`

	// Form merge fields, set only for form-field predictions.
	FormCompletionRate float64 `json:"formCompletionRate,omitempty"`
	LeadCount          float64 `json:"leadCount,omitempty"`
	BottleneckField    string  `json:"bottleneckField,omitempty"`
}
