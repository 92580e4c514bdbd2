package forms

import (
	"strings"

	"go.uber.org/zap"

	"github.com/clickwise/clickwise/internal/domain"
	"github.com/clickwise/clickwise/internal/services/cpc"
)

// Per-field completion floor: even the worst field retains some
// completions.
const minFieldCompletionRate = 0.1

// typeComplexity grades how much effort a field type demands.
var typeComplexity = map[string]float64{
	"password": 0.5,
	"tel":      0.4,
	"textarea": 0.4,
	"number":   0.3,
	"email":    0.3,
	"date":     0.3,
	"text":     0.2,
	"select":   0.2,
	"url":      0.3,
	"file":     0.5,
	"checkbox": 0.1,
	"radio":    0.1,
}

const (
	requiredComplexity  = 0.2
	validatedComplexity = 0.1
)

// FieldAnalysis is the per-field result.
type FieldAnalysis struct {
	FieldID        string  `json:"fieldId"`
	Label          string  `json:"label,omitempty"`
	Type           string  `json:"type"`
	Complexity     float64 `json:"complexity"`
	Clarity        float64 `json:"clarity"`
	PositionScore  float64 `json:"positionScore"`
	CompletionRate float64 `json:"completionRate"`
	IsBottleneck   bool    `json:"isBottleneck"`
}

// BottleneckAnalysis is the aggregate form result. Overall conversion is
// the product of all field completion rates: a multi-field form is
// bounded by its weakest link compounded across every step, not averaged.
type BottleneckAnalysis struct {
	Fields                []FieldAnalysis `json:"fields"`
	BottleneckField       string          `json:"bottleneckField,omitempty"`
	BottleneckRate        float64         `json:"bottleneckRate"`
	OverallConversionRate float64         `json:"overallConversionRate"`
	EstimatedLeads        float64         `json:"estimatedLeads"`
}

// Analyzer computes per-field completion rates and the form's cumulative
// conversion.
type Analyzer struct {
	logger *zap.Logger
}

func NewAnalyzer(logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{logger: logger}
}

// AnalyzeFormBottleneck grades every form field, reports the weakest one,
// and derives the form's overall conversion and estimated lead volume
// from the page's total predicted clicks.
func (a *Analyzer) AnalyzeFormBottleneck(fields []domain.DOMElement, ctx domain.PageContext, totalClicks float64) BottleneckAnalysis {
	analysis := BottleneckAnalysis{OverallConversionRate: 1.0}
	if len(fields) == 0 {
		analysis.OverallConversionRate = 0
		return analysis
	}

	bottleneckIdx := 0
	for i := range fields {
		fa := analyzeField(&fields[i])
		analysis.Fields = append(analysis.Fields, fa)
		analysis.OverallConversionRate *= fa.CompletionRate
		if fa.CompletionRate < analysis.Fields[bottleneckIdx].CompletionRate {
			bottleneckIdx = i
		}
	}

	analysis.Fields[bottleneckIdx].IsBottleneck = true
	bottleneck := analysis.Fields[bottleneckIdx]
	analysis.BottleneckField = bottleneckName(bottleneck)
	analysis.BottleneckRate = bottleneck.CompletionRate

	analysis.OverallConversionRate *= cpc.FormCompletionModifier(ctx.Industry)
	analysis.EstimatedLeads = totalClicks * analysis.OverallConversionRate

	a.logger.Debug("form bottleneck analyzed",
		zap.Int("fields", len(fields)),
		zap.String("bottleneck", analysis.BottleneckField),
		zap.Float64("overall_conversion", analysis.OverallConversionRate))
	return analysis
}

// analyzeField computes one field's completion rate:
// max(0.1, 0.9 - complexity*0.3 - (1-position)*0.2 - (1-clarity)*0.1).
func analyzeField(el *domain.DOMElement) FieldAnalysis {
	complexity := fieldComplexity(el)
	clarity := fieldClarity(el)
	position := fieldPositionScore(el)

	rate := 0.9 - complexity*0.3 - (1-position)*0.2 - (1-clarity)*0.1
	if rate < minFieldCompletionRate {
		rate = minFieldCompletionRate
	}

	return FieldAnalysis{
		FieldID:        el.LookupKey(),
		Label:          el.Label,
		Type:           fieldType(el),
		Complexity:     complexity,
		Clarity:        clarity,
		PositionScore:  position,
		CompletionRate: rate,
	}
}

func fieldType(el *domain.DOMElement) string {
	if el.Type != "" {
		return strings.ToLower(el.Type)
	}
	return strings.ToLower(el.TagName)
}

func fieldComplexity(el *domain.DOMElement) float64 {
	complexity, ok := typeComplexity[fieldType(el)]
	if !ok {
		complexity = 0.2
	}
	if el.Required {
		complexity += requiredComplexity
	}
	if el.Pattern != "" || el.MinLength > 0 {
		complexity += validatedComplexity
	}
	if complexity > 1 {
		complexity = 1
	}
	return complexity
}

// fieldClarity: labeled 0.5 + placeholder 0.3 + ideal label length 0.2.
func fieldClarity(el *domain.DOMElement) float64 {
	clarity := 0.0
	if el.Label != "" {
		clarity += 0.5
	}
	if el.Placeholder != "" {
		clarity += 0.3
	}
	if n := len(el.Label); n >= 5 && n <= 20 {
		clarity += 0.2
	}
	return clarity
}

func fieldPositionScore(el *domain.DOMElement) float64 {
	switch {
	case el.DistanceFromTop <= 400:
		return 1.0
	case el.DistanceFromTop <= 800:
		return 0.8
	case el.DistanceFromTop <= 1500:
		return 0.6
	default:
		return 0.4
	}
}

func bottleneckName(f FieldAnalysis) string {
	if f.Label != "" {
		return f.Label
	}
	if f.FieldID != "" {
		return f.FieldID
	}
	return f.Type
}
