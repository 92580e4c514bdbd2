package waste

import (
	"strings"

	"github.com/clickwise/clickwise/internal/domain"
)

var (
	socialHrefTokens = []string{
		"facebook.", "twitter.", "x.com", "instagram.", "linkedin.",
		"youtube.", "tiktok.", "pinterest.",
	}
	legalTokens = []string{
		"privacy", "terms", "cookie", "legal", "gdpr", "disclaimer",
		"imprint",
	}
	navClassTokens    = []string{"nav", "menu", "header"}
	footerClassTokens = []string{"footer"}
	searchTokens      = []string{"search"}
	mediaTags         = map[string]bool{"video": true, "audio": true, "iframe": true, "img": true}
	ctaTextTokens     = []string{
		"buy", "get started", "start", "try", "download", "order",
		"subscribe", "book", "sign up", "register", "checkout",
		"add to cart", "request", "claim", "join",
	}
)

// elementType buckets one element into the model's taxonomy.
func elementType(el *domain.DOMElement) ElementType {
	lowerClass := strings.ToLower(el.ClassName)
	lowerHref := strings.ToLower(el.Href)

	switch {
	case el.IsFormField():
		return TypeFormField
	case matchesAny(lowerHref, socialHrefTokens) || strings.Contains(lowerClass, "social"):
		return TypeSocialLink
	case matchesAny(lowerHref, legalTokens) || matchesAny(strings.ToLower(el.Text), legalTokens):
		return TypeLegalLink
	case matchesAny(lowerClass, searchTokens) || strings.EqualFold(el.Type, "search"):
		return TypeSearch
	case mediaTags[strings.ToLower(el.TagName)]:
		return TypeMedia
	case matchesAny(lowerClass, footerClassTokens):
		return TypeFooterLink
	case matchesAny(lowerClass, navClassTokens):
		return TypeTopNavigation
	case el.HasButtonStyling || el.IsButton() || matchesAny(strings.ToLower(el.Text), ctaTextTokens):
		return TypeAdditionalCTA
	case el.IsLink() && strings.HasPrefix(lowerHref, "http"):
		return TypeExternalLink
	case el.IsLink():
		return TypeContentLink
	default:
		return TypeGenericText
	}
}

// classify grades the element against the conversion goal. Form fields
// are supportive only when the primary CTA is form-typed; legal text is
// always neutral.
func classify(t ElementType, fc FormContext) Classification {
	switch t {
	case TypeFormField:
		if fc.CTAType == CTATypeForm {
			return ClassSupportive
		}
		return ClassWasted
	case TypeLegalLink:
		return ClassNeutral
	case TypeSearch, TypeContentLink:
		return ClassNeutral
	case TypeGenericText:
		return ClassNeutral
	default:
		return ClassWasted
	}
}
