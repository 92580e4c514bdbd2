package scoring

import (
	"go.uber.org/zap"

	"github.com/clickwise/clickwise/internal/domain"
)

// ScoredElement pairs an element with its features and attractiveness
// score. Ephemeral: produced by the Scorer, consumed and discarded within
// one prediction call.
type ScoredElement struct {
	Element       domain.DOMElement
	Features      ElementFeatures
	Score         float64
	AdjustedScore float64
	Probability   float64
}

// Scorer converts elements into attractiveness scores via the fixed
// weight table plus multiplicative visibility/position/type modifiers.
type Scorer struct {
	logger *zap.Logger
}

// NewScorer creates a scorer. A nil logger disables logging.
func NewScorer(logger *zap.Logger) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{logger: logger}
}

// ScoreElement scores a single element against the page context.
func (s *Scorer) ScoreElement(el domain.DOMElement, ctx domain.PageContext) ScoredElement {
	features := ExtractFeatures(&el, &ctx)

	score := 0.0
	for name, value := range features.toMap() {
		score += value * featureWeights[name]
	}

	if !el.IsVisible {
		score *= invisibleModifier
	}
	if !el.IsAboveFold {
		score *= belowFoldModifier
	}
	if el.IsFormField() {
		score *= formFieldModifier
	}
	if el.HasButtonStyling {
		score *= buttonStyleModifier
	}
	if el.IsInteractive {
		score *= interactiveModifier
	}

	if score < MinScore {
		score = MinScore
	}

	return ScoredElement{
		Element:  el,
		Features: features,
		Score:    score,
	}
}

// ScoreElements batch-scores up to MaxElements elements, keeping only
// those whose score exceeds the minimum floor.
func (s *Scorer) ScoreElements(elements []domain.DOMElement, ctx domain.PageContext) []ScoredElement {
	if len(elements) > MaxElements {
		s.logger.Warn("element batch truncated",
			zap.Int("received", len(elements)),
			zap.Int("cap", MaxElements))
		elements = elements[:MaxElements]
	}

	scored := make([]ScoredElement, 0, len(elements))
	for _, el := range elements {
		se := s.ScoreElement(el, ctx)
		if se.Score <= MinScore {
			continue
		}
		scored = append(scored, se)
	}

	s.logger.Debug("batch scored",
		zap.Int("input", len(elements)),
		zap.Int("kept", len(scored)))
	return scored
}

// ScoreFormElement scores a form field with five form-specific modifiers,
// each contributing a +/-20% adjustment around a neutral point of 0.5.
func (s *Scorer) ScoreFormElement(el domain.DOMElement, ctx domain.PageContext) ScoredElement {
	se := s.ScoreElement(el, ctx)

	modifiers := []float64{
		fieldComplexityFactor(&el),
		positionScore(&el),
		labelClarityScore(&el),
		validationFeedbackFactor(&el),
		autocompleteFactor(&el),
	}
	for _, v := range modifiers {
		se.Score *= formModifier(v)
	}
	if se.Score < MinScore {
		se.Score = MinScore
	}
	return se
}

// formModifier maps a [0,1] factor onto a [0.8,1.2] multiplier with 0.5
// as the neutral point.
func formModifier(v float64) float64 {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	return 0.8 + 0.4*v
}

// fieldComplexityFactor inverts the complexity penalty: simpler fields
// score higher.
func fieldComplexityFactor(el *domain.DOMElement) float64 {
	return 1 - formComplexityPenalty(el)
}

func validationFeedbackFactor(el *domain.DOMElement) float64 {
	if el.Pattern != "" || el.MinLength > 0 || el.MaxLength > 0 {
		return 0.7
	}
	return 0.5
}

func autocompleteFactor(el *domain.DOMElement) float64 {
	if el.HasAutocomplete {
		return 0.8
	}
	return 0.4
}
