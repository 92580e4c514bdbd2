package distribution

import (
	"strings"

	"github.com/clickwise/clickwise/internal/domain"
)

// categoryWasteRates are the Phase 1 base waste rates per element
// category.
var categoryWasteRates = map[domain.ElementCategory]float64{
	domain.CategoryPrimaryCTA:     0,
	domain.CategoryNavigation:     0.40,
	domain.CategorySocialMedia:    0.35,
	domain.CategoryExternalLink:   0.30,
	domain.CategoryInterruptive:   0.30,
	domain.CategoryAutoMedia:      0.25,
	domain.CategoryCompetingCTA:   0.20,
	domain.CategoryInternalNav:    0.10,
	domain.CategoryTrustIndicator: 0.05,
	domain.CategorySupporting:     0.05,
	domain.CategoryUnknown:        0.15,
}

var (
	navigationTokens = []string{"nav", "menu", "header", "breadcrumb"}
	navigationTexts  = []string{"home", "about", "contact", "services", "pricing", "blog", "faq"}
	socialHosts      = []string{"facebook.", "twitter.", "x.com", "instagram.", "linkedin.", "youtube.", "tiktok.", "pinterest."}
	interruptTokens  = []string{"modal", "popup", "overlay", "interstitial", "dialog"}
	carouselTokens   = []string{"carousel", "slider", "slideshow"}
	trustTokens      = []string{"badge", "guarantee", "secure", "ssl", "verified", "testimonial", "trust"}
	ctaKeywords      = []string{
		"buy", "get started", "start", "try", "download", "order",
		"subscribe", "book", "sign up", "register", "checkout",
		"add to cart", "request", "claim", "get a quote", "join",
	}
)

func textContainsAny(text string, tokens []string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, tok := range tokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}

func textEqualsAny(text string, tokens []string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(text))
	for _, tok := range tokens {
		if trimmed == tok {
			return true
		}
	}
	return false
}

// ClassifyElement assigns the Phase 1 waste category by pattern matching
// against text, href, and class names. Rules are checked in priority
// order; the first match wins.
func ClassifyElement(el *domain.DOMElement) domain.ElementCategory {
	switch {
	case isPrimaryCTAPattern(el):
		return domain.CategoryPrimaryCTA
	case isNavigation(el):
		return domain.CategoryNavigation
	case isSocialMedia(el):
		return domain.CategorySocialMedia
	case isExternalLink(el):
		return domain.CategoryExternalLink
	case textContainsAny(el.ClassName, interruptTokens):
		return domain.CategoryInterruptive
	case el.IsAutoRotating || textContainsAny(el.ClassName, carouselTokens):
		return domain.CategoryAutoMedia
	case isCompetingCTA(el):
		return domain.CategoryCompetingCTA
	case isInternalNav(el):
		return domain.CategoryInternalNav
	case textContainsAny(el.ClassName, trustTokens) || textContainsAny(el.Text, trustTokens):
		return domain.CategoryTrustIndicator
	case isSupportingContent(el):
		return domain.CategorySupporting
	default:
		return domain.CategoryUnknown
	}
}

// isPrimaryCTAPattern matches conversion-intent buttons: button styling
// plus high-intent text, or a form submit control.
func isPrimaryCTAPattern(el *domain.DOMElement) bool {
	if el.HasButtonStyling && textContainsAny(el.Text, ctaKeywords) {
		return true
	}
	return strings.EqualFold(el.Type, "submit") && (el.IsButton() || el.HasButtonStyling)
}

func isNavigation(el *domain.DOMElement) bool {
	if strings.EqualFold(el.TagName, "nav") {
		return true
	}
	if textContainsAny(el.ClassName, navigationTokens) {
		return true
	}
	if el.IsLink() && (el.Href == "/" || textEqualsAny(el.Text, navigationTexts)) {
		return true
	}
	return false
}

func isSocialMedia(el *domain.DOMElement) bool {
	if textContainsAny(el.ClassName, []string{"social"}) {
		return true
	}
	return textContainsAny(el.Href, socialHosts)
}

// isExternalLink treats any absolute href on a different host than the
// page as external. With no page URL known, absolute hrefs count as
// external.
func isExternalLink(el *domain.DOMElement) bool {
	if !el.IsLink() {
		return false
	}
	return strings.HasPrefix(strings.ToLower(el.Href), "http")
}

func isCompetingCTA(el *domain.DOMElement) bool {
	return el.HasButtonStyling || el.IsButton()
}

func isInternalNav(el *domain.DOMElement) bool {
	if !el.IsLink() {
		return false
	}
	return strings.HasPrefix(el.Href, "#") || strings.HasPrefix(el.Href, "/")
}

func isSupportingContent(el *domain.DOMElement) bool {
	if el.IsInteractive {
		return false
	}
	return strings.TrimSpace(el.Text) != ""
}
