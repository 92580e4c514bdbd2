package prediction

import (
	"github.com/google/uuid"

	"github.com/clickwise/clickwise/internal/domain"
	"github.com/clickwise/clickwise/internal/matcher"
	"github.com/clickwise/clickwise/internal/services/cpc"
	"github.com/clickwise/clickwise/internal/services/forms"
	"github.com/clickwise/clickwise/internal/services/risk"
	"github.com/clickwise/clickwise/internal/services/waste"
)

// EngineVersion tags every report with the scoring-model revision.
const EngineVersion = "5.3"

// MaxElements caps one prediction call.
const MaxElements = 100

// Options tune a single prediction call.
type Options struct {
	// DisplayCTAID is the externally identified CTA (e.g. from a vision
	// model). The engine resolves its own primary CTA as the argmax of
	// predicted clicks; when the two disagree the mismatch is reported in
	// metadata, never silently unified.
	DisplayCTAID string

	// SkipAdvancedDistribution disables the 80/20 redistribution step.
	SkipAdvancedDistribution bool
}

// Metadata describes one prediction run.
type Metadata struct {
	AnalysisID          uuid.UUID     `json:"analysisId"`
	TotalElements       int           `json:"totalElements"`
	InteractiveElements int           `json:"interactiveElements"`
	FormFields          int           `json:"formFields"`
	ProcessingTimeMS    float64       `json:"processingTime"`
	EstimatedCPC        float64       `json:"estimatedCPC"`
	CPCBreakdown        cpc.Breakdown `json:"cpcBreakdown"`
	EngineVersion       string        `json:"engineVersion"`

	// Primary CTA reconciliation: the engine's argmax choice and the
	// externally supplied display CTA are separate concepts.
	PrimaryCTAID    string        `json:"primaryCtaId,omitempty"`
	DisplayCTAID    string        `json:"displayCtaId,omitempty"`
	CTAMismatch     bool          `json:"ctaMismatch,omitempty"`
	MatcherActivity matcher.Stats `json:"matcherActivity"`
}

// Report is the full output of one prediction call: the sorted
// predictions plus the side-channel analyses. JSON-serializable end to
// end.
type Report struct {
	Predictions         []domain.ClickPredictionResult `json:"predictions"`
	FormAnalysis        *forms.BottleneckAnalysis      `json:"formAnalysis,omitempty"`
	WastedClickAnalysis *waste.WastedClickAnalysis     `json:"wastedClickAnalysis,omitempty"`
	Reliability         risk.Reliability               `json:"reliability"`
	Warnings            []string                       `json:"warnings,omitempty"`
	Metadata            Metadata                       `json:"metadata"`
}

// BatchItem is one page in a multi-page prediction request.
type BatchItem struct {
	Name     string              `json:"name,omitempty"`
	Elements []domain.DOMElement `json:"elements"`
	Context  domain.PageContext  `json:"context"`
	Options  Options             `json:"options,omitempty"`
}

// BatchResult pairs one item's report with its (possibly degraded)
// status.
type BatchResult struct {
	Name     string  `json:"name,omitempty"`
	Report   *Report `json:"report,omitempty"`
	Degraded bool    `json:"degraded,omitempty"`
	Error    string  `json:"error,omitempty"`
}
