// Package risk generates human-readable risk factors, per-element
// confidence tiers, and batch-level reliability diagnostics.
package risk

import (
	"math"
	"strings"

	"github.com/clickwise/clickwise/internal/domain"
)

// maxRiskFactors bounds the per-element risk list.
const maxRiskFactors = 5

// Confidence thresholds shared by element confidence and batch
// reliability.
const (
	highConfidenceThreshold   = 0.7
	mediumConfidenceThreshold = 0.4
)

const minTouchTargetPx = 44.0

// conversionKeywords mark elements where missing trust signals matter.
var conversionKeywords = []string{"buy", "checkout", "order", "subscribe", "sign up", "register", "pay"}

// sourceReliability grades how predictable each traffic source's
// behavior is.
var sourceReliability = map[domain.TrafficSource]float64{
	domain.TrafficOrganic:  0.15,
	domain.TrafficEmail:    0.15,
	domain.TrafficDirect:   0.10,
	domain.TrafficPaid:     0.10,
	domain.TrafficLinkedIn: 0.10,
	domain.TrafficReferral: 0.05,
	domain.TrafficSocial:   -0.05,
	domain.TrafficUnknown:  -0.10,
}

// GenerateRiskFactors returns up to maxRiskFactors human-readable risks
// for one element, checked in fixed order.
func GenerateRiskFactors(el *domain.DOMElement, ctx *domain.PageContext) []string {
	var factors []string
	add := func(f string) {
		if len(factors) < maxRiskFactors {
			factors = append(factors, f)
		}
	}

	text := strings.TrimSpace(el.Text)

	if !el.IsVisible {
		add("Element is not visible")
	}
	if !el.IsAboveFold {
		add("Element is below the fold")
	}
	if !el.IsInteractive {
		add("Element is not interactive")
	}
	if el.IsInteractive && !el.HasButtonStyling {
		add("Interactive element lacks button styling")
	}
	if len(text) > 0 && len(text) < 3 {
		add("Element text is too short to communicate intent")
	}
	if len(text) > 60 {
		add("Element text is too long for a call to action")
	}
	if el.IsFormField() && el.Required && el.Label == "" {
		add("Required field has no label")
	}
	if strings.EqualFold(el.Type, "password") && !ctx.HasSSL {
		add("Password field on a page without SSL")
	}
	if ctx.LoadTime > 3 {
		add("Slow page load increases abandonment")
	}
	if ctx.TrafficSource == domain.TrafficSocial {
		add("Social traffic converts less predictably")
	}
	if ctx.AdMessageMatch > 0 && ctx.AdMessageMatch < 0.5 {
		add("Poor ad-to-page message match")
	}
	if ctx.DeviceType == domain.DeviceMobile &&
		(el.Coordinates.Width < minTouchTargetPx || el.Coordinates.Height < minTouchTargetPx) {
		add("Touch target below 44px on mobile")
	}
	if el.DistanceFromTop > 2000 {
		add("Element requires excessive scrolling")
	}
	if el.IsLink() && el.Href == "#" {
		add("Link has no real destination")
	}
	if !ctx.HasSSL {
		add("Page is served without SSL")
	}
	if !ctx.HasTrustBadges && containsAnyFold(text, conversionKeywords) {
		add("Conversion element without nearby trust signals")
	}

	return factors
}

// CalculateConfidence grades one prediction from the element's score
// tier, context data volume, and the number of triggered risk factors.
func CalculateConfidence(el *domain.DOMElement, score float64, ctx *domain.PageContext, riskCount int) domain.ConfidenceLevel {
	c := 0.0

	switch {
	case score >= 0.5:
		c += 0.3
	case score >= 0.2:
		c += 0.2
	default:
		c += 0.1
	}

	if el.IsInteractive {
		c += 0.15
	}
	if el.IsVisible && el.IsAboveFold {
		c += 0.15
	}
	if ctx.TotalImpressions >= 1000 {
		c += 0.1
	}
	if n := len(strings.TrimSpace(el.Text)); n >= 3 && n <= 40 {
		c += 0.1
	}
	if ctx.HasSSL {
		c += 0.05
	}
	if ctx.LoadTime > 0 && ctx.LoadTime <= 3 {
		c += 0.05
	}
	if ctx.Industry != "" && ctx.Industry != domain.IndustryUnknown {
		c += 0.05
	}

	c -= 0.05 * float64(riskCount)

	return toLevel(c)
}

// Reliability is the batch-level diagnostic.
type Reliability struct {
	Score       float64                `json:"score"`
	Level       domain.ConfidenceLevel `json:"level"`
	Diagnostics []string               `json:"diagnostics,omitempty"`
}

// AssessReliability scores a whole prediction batch: impression volume,
// interactive-element ratio, score differentiation, traffic-source
// predictability, load time, and SSL.
func AssessReliability(predictions []domain.ClickPredictionResult, elements []domain.DOMElement, ctx *domain.PageContext) Reliability {
	r := Reliability{Score: 0.5}

	switch {
	case ctx.TotalImpressions >= 10000:
		r.Score += 0.15
	case ctx.TotalImpressions >= 1000:
		r.Score += 0.10
	case ctx.TotalImpressions < 100:
		r.Score -= 0.15
		r.Diagnostics = append(r.Diagnostics, "Low impression volume reduces statistical confidence")
	}

	if len(elements) > 0 {
		interactive := 0
		for i := range elements {
			if elements[i].IsInteractive {
				interactive++
			}
		}
		ratio := float64(interactive) / float64(len(elements))
		if ratio >= 0.3 {
			r.Score += 0.1
		} else if ratio < 0.1 {
			r.Score -= 0.1
			r.Diagnostics = append(r.Diagnostics, "Few interactive elements to differentiate")
		}
	}

	if v := scoreVariance(predictions); v > 0 {
		if v >= 0.01 {
			r.Score += 0.1
		} else {
			r.Diagnostics = append(r.Diagnostics, "Element scores are poorly differentiated")
		}
	}

	r.Score += sourceReliability[ctx.TrafficSource]

	if ctx.LoadTime > 5 {
		r.Score -= 0.1
		r.Diagnostics = append(r.Diagnostics, "Very slow load time skews engagement estimates")
	}
	if !ctx.HasSSL {
		r.Score -= 0.05
	}

	r.Score = math.Max(0, math.Min(1, r.Score))
	r.Level = toLevel(r.Score)
	return r
}

func scoreVariance(predictions []domain.ClickPredictionResult) float64 {
	if len(predictions) < 2 {
		return 0
	}
	mean := 0.0
	for i := range predictions {
		mean += predictions[i].RawScore
	}
	mean /= float64(len(predictions))

	variance := 0.0
	for i := range predictions {
		d := predictions[i].RawScore - mean
		variance += d * d
	}
	return variance / float64(len(predictions))
}

func toLevel(score float64) domain.ConfidenceLevel {
	switch {
	case score >= highConfidenceThreshold:
		return domain.ConfidenceHigh
	case score >= mediumConfidenceThreshold:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}

func containsAnyFold(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
