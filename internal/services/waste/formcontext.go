package waste

import (
	"strings"

	"github.com/clickwise/clickwise/internal/domain"
)

// Intent keyword lists used to type the primary CTA.
var (
	formIntentKeywords = []string{
		"sign up", "signup", "register", "subscribe", "join", "apply",
		"get started", "create account", "request demo", "contact us",
		"get a quote",
	}
	purchaseIntentKeywords = []string{
		"buy", "checkout", "download", "order", "purchase",
		"add to cart", "shop now", "pay",
	}
)

// formFieldTiebreakCount: with no decisive keywords, this many form
// fields on the page default the CTA to form-typed.
const formFieldTiebreakCount = 2

// DetectFormContext types the primary CTA from its text/href and the
// page's form-field population.
func DetectFormContext(primaryCTA *domain.DOMElement, elements []domain.DOMElement) FormContext {
	fc := FormContext{CTAType: CTATypeUnknown}
	if primaryCTA == nil {
		return fc
	}

	for i := range elements {
		if elements[i].IsFormField() {
			fc.FormFieldCount++
		}
	}
	fc.PrimaryFormAction = primaryCTA.FormAction

	signals := strings.ToLower(primaryCTA.Text + " " + primaryCTA.Href)
	switch {
	case matchesAny(signals, formIntentKeywords):
		fc.CTAType = CTATypeForm
	case matchesAny(signals, purchaseIntentKeywords):
		fc.CTAType = CTATypeNonForm
	case fc.FormFieldCount > formFieldTiebreakCount:
		fc.CTAType = CTATypeForm
	case strings.EqualFold(primaryCTA.Type, "submit") || primaryCTA.FormAction != "":
		fc.CTAType = CTATypeForm
	default:
		fc.CTAType = CTATypeNonForm
	}

	fc.IsFormRelated = fc.CTAType == CTATypeForm
	return fc
}

func matchesAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
