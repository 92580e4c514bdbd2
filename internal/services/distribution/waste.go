package distribution

import (
	"math"
	"strings"

	"github.com/clickwise/clickwise/internal/domain"
)

// Phase 2 attention-ratio thresholds: the more interactive elements
// compete for each primary CTA, the more clicks leak.
const (
	attentionRatioHigh     = 20
	attentionRatioModerate = 10
	attentionWasteHigh     = 0.25
	attentionWasteModerate = 0.15
)

// Phase 3 visual-emphasis contributions.
const (
	highContrastWaste  = 0.10
	autoRotatingWaste  = 0.15
	overlayWaste       = 0.10
	stickyWaste        = 0.20
	stickyCTABonus     = -0.05 // sticky primary CTAs help conversion
	overlayZIndexFloor = 1000
)

// Phase 4 content-clutter contributions.
const (
	longTextWaste        = 0.10
	decorativeImageWaste = 0.05
	animationWaste       = 0.08
	competingCrowdWaste  = 0.12

	longTextThreshold   = 500
	nearbyCTADistance   = 400.0
	competingCrowdCount = 3
)

// Legacy quality-layer contributions.
const (
	nonInteractiveWaste  = 0.30
	noButtonStylingWaste = 0.10
	belowFoldWaste       = 0.10
	shortTextWaste       = 0.15
)

var animationTokens = []string{"animate", "blink", "flash", "pulse", "bounce"}

// pageStats holds page-wide counts shared by every element's waste
// calculation within one batch.
type pageStats struct {
	interactiveCount int
	primaryCTACount  int
	competingCount   int
	primaryCTAYs     []float64
}

// collectPageStats scans the full element list once per batch. Falls back
// to the scored batch when the context carries no AllElements.
func collectPageStats(ctx *domain.PageContext, batch []domain.DOMElement) pageStats {
	elements := ctx.AllElements
	if len(elements) == 0 {
		elements = batch
	}

	var stats pageStats
	for i := range elements {
		el := &elements[i]
		if el.IsInteractive {
			stats.interactiveCount++
		}
		switch ClassifyElement(el) {
		case domain.CategoryPrimaryCTA:
			stats.primaryCTACount++
			stats.primaryCTAYs = append(stats.primaryCTAYs, el.Coordinates.Y)
		case domain.CategoryCompetingCTA:
			stats.competingCount++
		}
	}
	return stats
}

// calculateWasteBreakdown runs the 4-phase waste attribution plus the
// legacy quality layer for one element. Waste accumulates additively and
// the capped rate never exceeds domain.MaxWasteRate.
func calculateWasteBreakdown(el *domain.DOMElement, stats pageStats) domain.WasteBreakdown {
	category := ClassifyElement(el)
	isPrimary := category == domain.CategoryPrimaryCTA

	b := domain.WasteBreakdown{
		ElementCategory:             category,
		Phase1ElementClassification: categoryWasteRates[category],
	}
	b.BaseWasteRate = b.Phase1ElementClassification

	// Phase 2: attention ratio.
	denominator := stats.primaryCTACount
	if denominator < 1 {
		denominator = 1
	}
	ratio := float64(stats.interactiveCount) / float64(denominator)
	b.AttentionRatio = ratio
	switch {
	case ratio > attentionRatioHigh:
		b.Phase2AttentionRatio = attentionWasteHigh
	case ratio > attentionRatioModerate:
		b.Phase2AttentionRatio = attentionWasteModerate
	}

	// Phase 3: visual emphasis.
	if el.HasHighContrast && !isPrimary {
		b.Phase3VisualEmphasis += highContrastWaste
		b.VisualFactors = append(b.VisualFactors, "high-contrast non-primary element")
	}
	if el.IsAutoRotating {
		b.Phase3VisualEmphasis += autoRotatingWaste
		b.VisualFactors = append(b.VisualFactors, "auto-rotating carousel")
	}
	if el.ZIndex > overlayZIndexFloor {
		b.Phase3VisualEmphasis += overlayWaste
		b.VisualFactors = append(b.VisualFactors, "high z-index overlay")
	}
	if el.IsSticky {
		if isPrimary {
			b.Phase3VisualEmphasis += stickyCTABonus
			b.VisualFactors = append(b.VisualFactors, "sticky primary CTA")
		} else {
			b.Phase3VisualEmphasis += stickyWaste
			b.VisualFactors = append(b.VisualFactors, "sticky non-CTA element")
		}
	}

	// Phase 4: content clutter.
	if len(el.Text) > longTextThreshold && !hasNearbyCTA(el, stats.primaryCTAYs) {
		b.Phase4ContentClutter += longTextWaste
		b.ClutterFactors = append(b.ClutterFactors, "long text block without nearby CTA")
	}
	if isDecorativeImage(el) {
		b.Phase4ContentClutter += decorativeImageWaste
		b.ClutterFactors = append(b.ClutterFactors, "decorative unlabeled image")
	}
	if textContainsAny(el.ClassName, animationTokens) {
		b.Phase4ContentClutter += animationWaste
		b.ClutterFactors = append(b.ClutterFactors, "animated element")
	}
	if stats.competingCount >= competingCrowdCount && !isPrimary {
		b.Phase4ContentClutter += competingCrowdWaste
		b.ClutterFactors = append(b.ClutterFactors, "multiple competing elements")
	}

	// Legacy quality layer.
	if !el.IsInteractive {
		b.LegacyQualityFactors += nonInteractiveWaste
		b.LegacyFactors = append(b.LegacyFactors, "non-interactive element")
	} else if !el.HasButtonStyling {
		b.LegacyQualityFactors += noButtonStylingWaste
		b.LegacyFactors = append(b.LegacyFactors, "interactive without button styling")
	}
	if !el.IsAboveFold {
		b.LegacyQualityFactors += belowFoldWaste
		b.LegacyFactors = append(b.LegacyFactors, "below the fold")
	}
	if len(strings.TrimSpace(el.Text)) < 3 {
		b.LegacyQualityFactors += shortTextWaste
		b.LegacyFactors = append(b.LegacyFactors, "text too short")
	}

	b.TotalWasteRate = b.Phase1ElementClassification +
		b.Phase2AttentionRatio +
		b.Phase3VisualEmphasis +
		b.Phase4ContentClutter +
		b.LegacyQualityFactors

	b.CappedWasteRate = math.Min(math.Max(b.TotalWasteRate, 0), domain.MaxWasteRate)
	return b
}

func hasNearbyCTA(el *domain.DOMElement, primaryYs []float64) bool {
	for _, y := range primaryYs {
		if math.Abs(el.Coordinates.Y-y) <= nearbyCTADistance {
			return true
		}
	}
	return false
}

func isDecorativeImage(el *domain.DOMElement) bool {
	if !strings.EqualFold(el.TagName, "img") {
		return false
	}
	return el.Text == "" && el.Label == ""
}
