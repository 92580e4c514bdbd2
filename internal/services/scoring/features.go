package scoring

import (
	"strings"

	"github.com/clickwise/clickwise/internal/domain"
)

// ElementFeatures is the fixed vector of named scalar features extracted
// for one element. Every feature is nominally in [0,1]; the three penalty
// features carry negative weights in the scorer, not here.
type ElementFeatures struct {
	VisibilityScore    float64 `json:"visibilityScore"`
	SizeScore          float64 `json:"sizeScore"`
	PositionScore      float64 `json:"positionScore"`
	ContrastScore      float64 `json:"contrastScore"`
	FrictionScore      float64 `json:"frictionScore"`
	IntentScore        float64 `json:"intentScore"`
	InformationScent   float64 `json:"informationScent"`
	UrgencyBoost       float64 `json:"urgencyBoost"`
	TrustScore         float64 `json:"trustScore"`
	InteractivityScore float64 `json:"interactivityScore"`
	ButtonStylingScore float64 `json:"buttonStylingScore"`
	TextLengthScore    float64 `json:"textLengthScore"`
	LabelClarityScore  float64 `json:"labelClarityScore"`
	AffordanceScore    float64 `json:"affordanceScore"`
	SocialProofScore   float64 `json:"socialProofScore"`
	MessageMatchScore  float64 `json:"messageMatchScore"`
	MobileFitScore     float64 `json:"mobileFitScore"`

	// Penalty features, negative-weighted by the scorer.
	FormComplexityPenalty float64 `json:"formComplexityPenalty"`
	DistractionPenalty    float64 `json:"distractionPenalty"`
	DepthPenalty          float64 `json:"depthPenalty"`
}

// toMap exposes the vector by feature name for weighted summation.
func (f ElementFeatures) toMap() map[string]float64 {
	return map[string]float64{
		"visibility":     f.VisibilityScore,
		"size":           f.SizeScore,
		"position":       f.PositionScore,
		"contrast":       f.ContrastScore,
		"friction":       f.FrictionScore,
		"intent":         f.IntentScore,
		"scent":          f.InformationScent,
		"urgency":        f.UrgencyBoost,
		"trust":          f.TrustScore,
		"interactivity":  f.InteractivityScore,
		"buttonStyling":  f.ButtonStylingScore,
		"textLength":     f.TextLengthScore,
		"labelClarity":   f.LabelClarityScore,
		"affordance":     f.AffordanceScore,
		"socialProof":    f.SocialProofScore,
		"messageMatch":   f.MessageMatchScore,
		"mobileFit":      f.MobileFitScore,
		"formComplexity": f.FormComplexityPenalty,
		"distraction":    f.DistractionPenalty,
		"depth":          f.DepthPenalty,
	}
}

// Keyword lists scanned against element text. Matching is substring,
// case-insensitive.
var (
	highIntentKeywords = []string{
		"buy", "get started", "get your", "start", "try", "download",
		"order", "subscribe", "book", "claim", "join", "sign up",
		"register", "checkout", "shop", "add to cart", "request",
		"upgrade", "get a quote", "get quote",
	}
	mediumIntentKeywords = []string{
		"learn", "discover", "view", "see", "explore", "browse", "read",
		"watch", "find out",
	}
	urgencyKeywords = []string{
		"now", "today", "limited", "hurry", "last chance", "ends",
		"instant", "immediately", "expires", "only",
	}
	scentKeywords = []string{
		"free", "demo", "quote", "trial", "pricing", "save", "%", "$",
		"no credit card",
	}
	socialProofKeywords = []string{
		"rated", "reviews", "trusted by", "customers", "stars",
		"testimonial", "loved by",
	}
	complexActionHints = []string{
		"checkout", "payment", "signup", "sign-up", "register", "apply",
	}
)

func containsAny(text string, keywords []string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// ExtractFeatures converts one element plus page context into the fixed
// feature vector. Pure: no side effects, never errors; missing optional
// inputs default to neutral contributions.
func ExtractFeatures(el *domain.DOMElement, ctx *domain.PageContext) ElementFeatures {
	return ElementFeatures{
		VisibilityScore:    visibilityScore(el),
		SizeScore:          sizeScore(el),
		PositionScore:      positionScore(el),
		ContrastScore:      contrastScore(el),
		FrictionScore:      frictionScore(el),
		IntentScore:        intentScore(el),
		InformationScent:   informationScent(el),
		UrgencyBoost:       urgencyBoost(el),
		TrustScore:         trustScore(ctx),
		InteractivityScore: interactivityScore(el),
		ButtonStylingScore: buttonStylingScore(el),
		TextLengthScore:    textLengthScore(el),
		LabelClarityScore:  labelClarityScore(el),
		AffordanceScore:    affordanceScore(el),
		SocialProofScore:   socialProofScore(el, ctx),
		MessageMatchScore:  messageMatchScore(ctx),
		MobileFitScore:     mobileFitScore(el, ctx),

		FormComplexityPenalty: formComplexityPenalty(el),
		DistractionPenalty:    distractionPenalty(el),
		DepthPenalty:          depthPenalty(el),
	}
}

func visibilityScore(el *domain.DOMElement) float64 {
	if !el.IsVisible {
		return 0
	}
	if el.IsAboveFold {
		return 0.8
	}
	return 0.4
}

func sizeScore(el *domain.DOMElement) float64 {
	area := el.Coordinates.Area()
	switch {
	case area >= 10000:
		return 0.9
	case area >= 4000:
		return 0.7
	case area >= 1500:
		return 0.5
	case area > 0:
		return 0.3
	default:
		return 0
	}
}

func positionScore(el *domain.DOMElement) float64 {
	switch {
	case el.DistanceFromTop <= 200:
		return 1.0
	case el.DistanceFromTop <= 600:
		return 0.8
	case el.DistanceFromTop <= 1200:
		return 0.5
	default:
		return 0.2
	}
}

func contrastScore(el *domain.DOMElement) float64 {
	if el.HasHighContrast {
		return 0.9
	}
	return 0.5
}

// frictionScore starts at 0.8 and subtracts fixed penalties for friction
// signals, floored at 0.
func frictionScore(el *domain.DOMElement) float64 {
	score := 0.8
	if el.IsFormField() {
		score -= 0.2
	}
	if el.Required {
		score -= 0.15
	}
	if containsAny(el.Href, complexActionHints) || containsAny(el.FormAction, complexActionHints) {
		score -= 0.1
	}
	if score < 0 {
		return 0
	}
	return score
}

func intentScore(el *domain.DOMElement) float64 {
	switch {
	case containsAny(el.Text, highIntentKeywords):
		return 0.9
	case containsAny(el.Text, mediumIntentKeywords):
		return 0.5
	default:
		return 0.2
	}
}

func informationScent(el *domain.DOMElement) float64 {
	text := strings.TrimSpace(el.Text)
	switch {
	case text == "":
		return 0.1
	case containsAny(text, scentKeywords):
		return 0.8
	case len(text) >= 3 && len(text) <= 40:
		return 0.6
	default:
		return 0.3
	}
}

func urgencyBoost(el *domain.DOMElement) float64 {
	if containsAny(el.Text, urgencyKeywords) {
		return 1.0
	}
	return 0
}

func trustScore(ctx *domain.PageContext) float64 {
	score := 0.5
	if ctx.HasTrustBadges {
		score += 0.2
	}
	if ctx.HasTestimonials {
		score += 0.2
	}
	if ctx.HasSSL {
		score += 0.1
	}
	if score > 1 {
		return 1
	}
	return score
}

func interactivityScore(el *domain.DOMElement) float64 {
	if el.IsInteractive {
		return 0.9
	}
	return 0.1
}

func buttonStylingScore(el *domain.DOMElement) float64 {
	switch {
	case el.HasButtonStyling:
		return 0.9
	case el.IsButton():
		return 0.7
	default:
		return 0.2
	}
}

func textLengthScore(el *domain.DOMElement) float64 {
	n := len(strings.TrimSpace(el.Text))
	switch {
	case n >= 3 && n <= 30:
		return 0.8
	case n > 30 && n <= 60:
		return 0.5
	default:
		return 0.2
	}
}

func labelClarityScore(el *domain.DOMElement) float64 {
	if el.IsFormField() {
		score := 0.0
		if el.Label != "" {
			score += 0.5
		}
		if el.Placeholder != "" {
			score += 0.3
		}
		if n := len(el.Label); n >= 5 && n <= 20 {
			score += 0.2
		}
		return score
	}
	if strings.TrimSpace(el.Text) != "" {
		return 0.6
	}
	return 0.2
}

func affordanceScore(el *domain.DOMElement) float64 {
	switch {
	case el.IsButton():
		return 0.9
	case el.Style["cursor"] == "pointer":
		return 0.8
	case el.IsLink():
		return 0.7
	default:
		return 0.3
	}
}

func socialProofScore(el *domain.DOMElement, ctx *domain.PageContext) float64 {
	if containsAny(el.Text, socialProofKeywords) {
		return 0.8
	}
	if ctx.HasTestimonials {
		return 0.5
	}
	return 0.3
}

func messageMatchScore(ctx *domain.PageContext) float64 {
	if ctx.AdMessageMatch > 0 {
		if ctx.AdMessageMatch > 1 {
			return 1
		}
		return ctx.AdMessageMatch
	}
	return 0.5
}

// mobileFitScore penalizes touch targets under 44px on mobile devices.
func mobileFitScore(el *domain.DOMElement, ctx *domain.PageContext) float64 {
	if ctx.DeviceType != domain.DeviceMobile {
		return 0.6
	}
	if el.Coordinates.Width >= 44 && el.Coordinates.Height >= 44 {
		return 0.8
	}
	return 0.2
}

func formComplexityPenalty(el *domain.DOMElement) float64 {
	if !el.IsFormField() {
		return 0
	}
	penalty := 0.3
	if el.Required {
		penalty += 0.2
	}
	if el.Pattern != "" {
		penalty += 0.1
	}
	if penalty > 1 {
		return 1
	}
	return penalty
}

func distractionPenalty(el *domain.DOMElement) float64 {
	switch {
	case el.IsAutoRotating:
		return 0.5
	case el.ZIndex > 1000:
		return 0.3
	case el.IsSticky && !el.HasButtonStyling:
		return 0.2
	default:
		return 0
	}
}

func depthPenalty(el *domain.DOMElement) float64 {
	switch {
	case el.DistanceFromTop > 2000:
		return 0.6
	case el.DistanceFromTop > 1200:
		return 0.3
	default:
		return 0
	}
}
