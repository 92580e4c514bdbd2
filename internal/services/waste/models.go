package waste

import "github.com/clickwise/clickwise/internal/domain"

// CTAType distinguishes form-submission CTAs from direct-action CTAs.
// The distinction re-weights most of the model's penalties: form fields
// support a form CTA but compete with a purchase CTA.
type CTAType string

const (
	CTATypeForm    CTAType = "form-cta"
	CTATypeNonForm CTAType = "non-form-cta"
	CTATypeUnknown CTAType = "unknown"
)

// Classification grades an element's relationship to the conversion goal.
type Classification string

const (
	ClassSupportive Classification = "supportive-click"
	ClassNeutral    Classification = "neutral-click"
	ClassWasted     Classification = "wasted-click"
)

// ElementType is the model's element taxonomy.
type ElementType string

const (
	TypeAdditionalCTA ElementType = "additional-cta"
	TypeSocialLink    ElementType = "social-link"
	TypeTopNavigation ElementType = "top-navigation"
	TypeFooterLink    ElementType = "footer-link"
	TypeExternalLink  ElementType = "external-link"
	TypeFormField     ElementType = "form-field"
	TypeLegalLink     ElementType = "legal-link"
	TypeMedia         ElementType = "media"
	TypeSearch        ElementType = "search"
	TypeGenericText   ElementType = "generic-text"
	TypeContentLink   ElementType = "content-link"
)

// FormContext is derived once per analysis from the primary CTA and the
// page's form fields.
type FormContext struct {
	CTAType           CTAType `json:"ctaType"`
	IsFormRelated     bool    `json:"isFormRelated"`
	FormFieldCount    int     `json:"formFieldCount"`
	PrimaryFormAction string  `json:"primaryFormAction,omitempty"`
}

// ScoringBreakdown holds the 14 named sub-scores that combine into one
// wasted-click score. Multiplier terms are neutral at 1.0.
type ScoringBreakdown struct {
	DistractionScore          float64 `json:"distractionScore"`
	VisibilityWeight          float64 `json:"visibilityWeight"`
	InteractionAttractiveness float64 `json:"interactionAttractiveness"`
	IntentMismatchPenalty     float64 `json:"intentMismatchPenalty"`
	PathLoopPenalty           float64 `json:"pathLoopPenalty"`
	ClarityPenalty            float64 `json:"clarityPenalty"`
	TimingPenalty             float64 `json:"timingPenalty"`
	FoldWeight                float64 `json:"foldWeight"`
	CTADuplicationBoost       float64 `json:"ctaDuplicationBoost"`
	DirectResponsePenalty     float64 `json:"directResponsePenalty"`
	ClickDistractionIndex     float64 `json:"clickDistractionIndex"`
	ClickBudgetRisk           float64 `json:"clickBudgetRisk"`
	LoopbackPenalty           float64 `json:"loopbackPenalty"`
	UserBehaviorMultiplier    float64 `json:"userBehaviorMultiplier"`
}

// WastedClickElement is one analyzed element.
type WastedClickElement struct {
	Element            domain.DOMElement `json:"element"`
	WastedClickScore   float64           `json:"wastedClickScore"` // [0,1]
	Type               ElementType       `json:"type"`
	DistractionFactors []string          `json:"distractionFactors,omitempty"`
	Recommendation     string            `json:"recommendation,omitempty"`
	Classification     Classification    `json:"classification"`
	ScoringBreakdown   ScoringBreakdown  `json:"scoringBreakdown"`
}

// ProjectedImprovements estimates the lift from removing the analyzed
// waste, capped so projections stay plausible.
type ProjectedImprovements struct {
	CTRLift            float64 `json:"ctrLift"`
	FormCompletionLift float64 `json:"formCompletionLift"`
	RevenueLift        float64 `json:"revenueLift"`
}

// WastedClickAnalysis is the model's aggregate output.
type WastedClickAnalysis struct {
	FormContext           FormContext           `json:"formContext"`
	Elements              []WastedClickElement  `json:"elements"`
	HighRiskElements      []WastedClickElement  `json:"highRiskElements"`
	TotalWastedElements   int                   `json:"totalWastedElements"`
	AverageWasteScore     float64               `json:"averageWasteScore"`
	Recommendations       []string              `json:"recommendations,omitempty"`
	ProjectedImprovements ProjectedImprovements `json:"projectedImprovements"`
}

// highRiskThreshold marks elements whose waste score warrants attention.
const highRiskThreshold = 0.05

// Projection caps.
const (
	maxCTRLift            = 0.8
	maxFormCompletionLift = 0.7
)
