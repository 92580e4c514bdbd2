package waste

import (
	"strings"

	"github.com/clickwise/clickwise/internal/domain"
)

// Form-context distraction re-weighting: form fields barely distract from
// a form CTA but compete hard with a purchase CTA.
const (
	formFieldSupportiveFactor = 0.2
	formFieldCompetingFactor  = 1.8
)

// directResponseStackFactor compounds for each direct-response flag an
// element triggers.
const directResponseStackFactor = 1.15

// budgetRiskShareThreshold flags elements consuming an outsized share of
// the page's click budget.
const budgetRiskShareThreshold = 0.15

var vagueCTATexts = []string{
	"click here", "learn more", "read more", "more", "here", "submit",
	"go", "continue",
}

var interruptiveClassTokens = []string{"modal", "popup", "overlay", "interstitial"}

// buildBreakdown computes the 14 sub-scores for one element.
// clickShare is the element's fraction of total predicted clicks, 0 when
// no predictions were supplied.
func buildBreakdown(el *domain.DOMElement, t ElementType, primaryCTA *domain.DOMElement, fc FormContext, clickShare float64) (ScoringBreakdown, []string) {
	var factors []string

	b := ScoringBreakdown{
		IntentMismatchPenalty:  1.0,
		PathLoopPenalty:        1.0,
		ClarityPenalty:         1.0,
		TimingPenalty:          1.0,
		CTADuplicationBoost:    1.0,
		DirectResponsePenalty:  1.0,
		ClickBudgetRisk:        1.0,
		LoopbackPenalty:        1.0,
		UserBehaviorMultiplier: 1.0,
	}

	b.DistractionScore = distractionScore(el, t, fc)
	if b.DistractionScore > 0.5 {
		factors = append(factors, "visually prominent")
	}

	if el.IsAboveFold {
		b.VisibilityWeight = 1.0
		b.FoldWeight = 1.0
	} else {
		b.VisibilityWeight = 0.6
		b.FoldWeight = 0.7
	}

	b.InteractionAttractiveness = attractiveness(el)

	if intentMismatch(el) {
		b.IntentMismatchPenalty = 1.3
		factors = append(factors, "text/destination mismatch")
	}

	if isPathLoop(el) {
		b.PathLoopPenalty = 1.2
		factors = append(factors, "leads back into the page flow")
	}

	if isVagueText(el.Text) {
		b.ClarityPenalty = 1.25
		factors = append(factors, "vague call to action")
	}

	if matchesAny(strings.ToLower(el.ClassName), interruptiveClassTokens) {
		b.TimingPenalty = 1.3
		factors = append(factors, "interruptive timing")
	}

	if duplicatesCTAText(el, primaryCTA) {
		b.CTADuplicationBoost = 1.2
		factors = append(factors, "mimics the primary CTA")
	}

	b.DirectResponsePenalty = directResponsePenalty(el, t, &factors)

	b.ClickDistractionIndex = clamp01(clickShare)
	if clickShare > budgetRiskShareThreshold {
		b.ClickBudgetRisk = 1.2
		factors = append(factors, "consumes outsized click budget")
	}

	if isLoopback(el) {
		b.LoopbackPenalty = 1.15
		factors = append(factors, "loops back to the top of the funnel")
	}

	if el.IsSticky || el.IsAutoRotating {
		b.UserBehaviorMultiplier = 1.1
		factors = append(factors, "persistent on screen")
	}

	return b, factors
}

// combine folds the breakdown into a single wasted-click score via the
// fixed weighted formula, clamped to [0,1].
func combine(b ScoringBreakdown) float64 {
	score := b.DistractionScore*0.25*b.VisibilityWeight +
		b.InteractionAttractiveness*0.15 +
		(b.IntentMismatchPenalty-1)*0.2 +
		(b.PathLoopPenalty-1)*0.1 +
		(b.ClarityPenalty-1)*0.1 +
		(b.TimingPenalty-1)*0.05 +
		b.ClickDistractionIndex*0.3 +
		(b.ClickBudgetRisk-1)*0.1 +
		(b.LoopbackPenalty-1)*0.05 +
		(b.UserBehaviorMultiplier-1)*0.1

	score *= b.FoldWeight * b.CTADuplicationBoost * b.DirectResponsePenalty
	return clamp01(score)
}

// finalFormMultiplier applies the closing form-context adjustment to a
// combined score.
func finalFormMultiplier(fc FormContext) float64 {
	if fc.CTAType == CTATypeForm {
		m := 0.75
		if fc.FormFieldCount > 3 {
			m *= 0.85
		}
		return m
	}
	m := 1.0
	if fc.FormFieldCount > 0 {
		// Competing forms on a direct-action page pull clicks away.
		m *= 1.1
	}
	return m
}

func distractionScore(el *domain.DOMElement, t ElementType, fc FormContext) float64 {
	score := 0.2
	if el.Coordinates.Area() >= 8000 {
		score += 0.3
	} else if el.Coordinates.Area() >= 3000 {
		score += 0.15
	}
	if el.HasHighContrast {
		score += 0.2
	}
	if el.HasButtonStyling {
		score += 0.2
	}
	if el.IsAutoRotating {
		score += 0.1
	}

	if t == TypeFormField {
		if fc.CTAType == CTATypeForm {
			score *= formFieldSupportiveFactor
		} else {
			score *= formFieldCompetingFactor
		}
	}
	return clamp01(score)
}

func attractiveness(el *domain.DOMElement) float64 {
	score := 0.2
	switch {
	case el.IsButton() || el.HasButtonStyling:
		score = 0.8
	case el.IsLink():
		score = 0.6
	case el.IsFormField():
		score = 0.4
	}
	if matchesAny(strings.ToLower(el.Text), ctaTextTokens) {
		score += 0.1
	}
	return clamp01(score)
}

// intentMismatch flags elements whose text promises a conversion action
// but whose destination leaves the funnel.
func intentMismatch(el *domain.DOMElement) bool {
	if !matchesAny(strings.ToLower(el.Text), ctaTextTokens) {
		return false
	}
	lowerHref := strings.ToLower(el.Href)
	return matchesAny(lowerHref, socialHrefTokens) ||
		(strings.HasPrefix(lowerHref, "http") && el.IsLink())
}

func isPathLoop(el *domain.DOMElement) bool {
	return el.Href == "#" || strings.HasPrefix(el.Href, "#")
}

func isVagueText(text string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(text))
	for _, vague := range vagueCTATexts {
		if trimmed == vague {
			return true
		}
	}
	return false
}

func duplicatesCTAText(el, primary *domain.DOMElement) bool {
	if primary == nil || el.Text == "" {
		return false
	}
	sameText := strings.EqualFold(strings.TrimSpace(el.Text), strings.TrimSpace(primary.Text))
	return sameText && el.Href != primary.Href
}

func directResponsePenalty(el *domain.DOMElement, t ElementType, factors *[]string) float64 {
	penalty := 1.0
	stack := func(reason string) {
		penalty *= directResponseStackFactor
		*factors = append(*factors, reason)
	}

	switch t {
	case TypeAdditionalCTA:
		stack("additional CTA competing for the conversion")
	case TypeSocialLink:
		stack("social link exiting the funnel")
	case TypeTopNavigation:
		stack("top navigation pulling attention")
	case TypeGenericText:
		stack("generic text absorbing clicks")
	}
	if matchesAny(strings.ToLower(el.ClassName), interruptiveClassTokens) {
		stack("UX friction element")
	}
	return penalty
}

func isLoopback(el *domain.DOMElement) bool {
	href := strings.ToLower(el.Href)
	return href == "/" || href == "#top" || strings.HasSuffix(href, "/home")
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
