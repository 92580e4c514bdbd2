package prediction

import (
	"fmt"
	"strings"

	"github.com/clickwise/clickwise/internal/domain"
)

// buckets is the element classification used by the pipeline. Form
// fields always also count as interactive for scoring purposes.
type buckets struct {
	interactive    []domain.DOMElement
	formFields     []domain.DOMElement
	nonInteractive int
}

// filterElements drops invalid elements: zero-area boxes are extractor
// noise, and hidden non-interactive elements cannot receive clicks. Form
// fields are kept even when the extractor did not flag them interactive.
// The batch is hard-capped at MaxElements.
func filterElements(elements []domain.DOMElement) (kept []domain.DOMElement, truncated bool) {
	kept = make([]domain.DOMElement, 0, len(elements))
	for i := range elements {
		el := elements[i]
		if !el.HasValidArea() {
			continue
		}
		if !el.IsVisible && !el.IsInteractive && !el.IsFormField() {
			continue
		}
		kept = append(kept, el)
		if len(kept) == MaxElements {
			truncated = i < len(elements)-1
			break
		}
	}
	return kept, truncated
}

// ensureLookupKeys assigns a synthetic key to every element the
// extractor left without an ID. Downstream stages (risk, display
// enrichment, primary-CTA resolution) key predictions by LookupKey, so a
// blank key would silently drop the element from all of them. The key is
// built from the tag and bounding-box corner, the same signal the
// matcher's coordinate strategies use, with the slice index breaking
// ties between stacked boxes.
func ensureLookupKeys(elements []domain.DOMElement) {
	for i := range elements {
		el := &elements[i]
		if el.LookupKey() != "" {
			continue
		}
		el.OxID = fmt.Sprintf("%s-%d-%d-%d",
			strings.ToLower(el.TagName),
			int(el.Coordinates.X), int(el.Coordinates.Y), i)
	}
}

func classifyElements(elements []domain.DOMElement) buckets {
	var b buckets
	for i := range elements {
		el := elements[i]
		switch {
		case el.IsFormField():
			b.formFields = append(b.formFields, el)
			b.interactive = append(b.interactive, el)
		case el.IsInteractive:
			b.interactive = append(b.interactive, el)
		default:
			b.nonInteractive++
		}
	}
	return b
}
