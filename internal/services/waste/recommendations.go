package waste

import "fmt"

// recommendationFor produces the per-element guidance string keyed by
// element type and form context.
func recommendationFor(t ElementType, fc FormContext) string {
	switch t {
	case TypeAdditionalCTA:
		if fc.CTAType == CTATypeForm {
			return "Demote this secondary CTA visually so the form stays the clear next step"
		}
		return "Remove or demote this competing CTA; one conversion action per page converts best"
	case TypeSocialLink:
		return "Move social links to the footer; above-the-fold social icons leak conversion traffic"
	case TypeTopNavigation:
		return "Consider a stripped-down landing page header; full navigation invites early exits"
	case TypeFooterLink:
		return "Footer links are low risk, but trim any that duplicate navigation"
	case TypeExternalLink:
		return "Open external references in a new tab or remove them from the conversion path"
	case TypeFormField:
		if fc.CTAType == CTATypeForm {
			return "Field supports the form goal; reduce friction with autocomplete and clear labels"
		}
		return "This form competes with the primary action; move it to a dedicated page"
	case TypeLegalLink:
		return "Keep legal links accessible but visually quiet"
	case TypeMedia:
		return "Ensure media supports the pitch; autoplaying or rotating media steals attention"
	case TypeSearch:
		return "Search invites browsing; landing pages convert better without it"
	case TypeGenericText:
		return "Clarify or remove vague interactive text; visitors cannot predict where it leads"
	case TypeContentLink:
		return "Inline links split attention; keep them out of the hero section"
	default:
		return fmt.Sprintf("Review whether this %s element earns its clicks", t)
	}
}

// aggregateRecommendations returns deduplicated guidance for the
// high-risk set, plus a form-context headline when one applies.
func aggregateRecommendations(highRisk []WastedClickElement, fc FormContext) []string {
	var recs []string
	if fc.CTAType == CTATypeForm && fc.FormFieldCount > 3 {
		recs = append(recs, fmt.Sprintf("The primary form has %d fields; trimming to 3 or fewer typically lifts completion", fc.FormFieldCount))
	}

	seen := make(map[string]bool)
	for i := range highRisk {
		r := highRisk[i].Recommendation
		if r == "" || seen[r] {
			continue
		}
		seen[r] = true
		recs = append(recs, r)
	}
	return recs
}
