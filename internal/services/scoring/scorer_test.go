package scoring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/clickwise/clickwise/internal/domain"
)

func ctaButton() domain.DOMElement {
	return domain.DOMElement{
		ID:               "cta-1",
		TagName:          "button",
		Text:             "Buy Now",
		IsVisible:        true,
		IsInteractive:    true,
		IsAboveFold:      true,
		HasButtonStyling: true,
		HasHighContrast:  true,
		Coordinates:      domain.Coordinates{X: 100, Y: 300, Width: 200, Height: 50},
		DistanceFromTop:  300,
	}
}

func navLink(text string) domain.DOMElement {
	return domain.DOMElement{
		ID:              "nav-" + text,
		TagName:         "a",
		Text:            text,
		Href:            "/" + text,
		IsVisible:       true,
		IsInteractive:   true,
		IsAboveFold:     true,
		Coordinates:     domain.Coordinates{X: 10, Y: 10, Width: 60, Height: 20},
		DistanceFromTop: 10,
	}
}

func TestFeatureWeights_NetToUnity(t *testing.T) {
	sum := 0.0
	positive := 0.0
	negative := 0.0
	for _, w := range featureWeights {
		sum += w
		if w > 0 {
			positive += w
		} else {
			negative += w
		}
	}

	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.InDelta(t, 1.10, positive, 1e-9)
	assert.InDelta(t, -0.10, negative, 1e-9)
}

func TestScoreElement_CTAOutscoresNavLink(t *testing.T) {
	scorer := NewScorer(zap.NewNop())
	ctx := domain.PageContext{TrafficSource: domain.TrafficPaid, DeviceType: domain.DeviceDesktop}

	cta := scorer.ScoreElement(ctaButton(), ctx)
	nav := scorer.ScoreElement(navLink("Home"), ctx)

	assert.Greater(t, cta.Score, nav.Score,
		"a high-intent styled CTA must outscore a generic nav link")
	assert.Greater(t, cta.Features.IntentScore, nav.Features.IntentScore)
}

func TestScoreElement_VisibilityModifiers(t *testing.T) {
	scorer := NewScorer(nil)
	ctx := domain.PageContext{}

	visible := ctaButton()
	hidden := ctaButton()
	hidden.IsVisible = false

	belowFold := ctaButton()
	belowFold.IsAboveFold = false

	vs := scorer.ScoreElement(visible, ctx)
	hs := scorer.ScoreElement(hidden, ctx)
	bs := scorer.ScoreElement(belowFold, ctx)

	assert.Less(t, hs.Score, vs.Score)
	assert.Less(t, bs.Score, vs.Score)
	assert.Less(t, hs.Score, bs.Score, "hidden is penalized harder than below-fold")
}

func TestScoreElement_NeverBelowFloor(t *testing.T) {
	scorer := NewScorer(nil)

	worthless := domain.DOMElement{
		TagName:         "div",
		IsVisible:       false,
		IsAboveFold:     false,
		IsAutoRotating:  true,
		DistanceFromTop: 5000,
	}

	se := scorer.ScoreElement(worthless, domain.PageContext{})
	assert.GreaterOrEqual(t, se.Score, MinScore)
}

func TestScoreElements_CapsBatch(t *testing.T) {
	scorer := NewScorer(zap.NewNop())

	elements := make([]domain.DOMElement, 0, MaxElements+20)
	for i := 0; i < MaxElements+20; i++ {
		el := ctaButton()
		el.ID = fmt.Sprintf("el-%d", i)
		elements = append(elements, el)
	}

	scored := scorer.ScoreElements(elements, domain.PageContext{})
	require.LessOrEqual(t, len(scored), MaxElements)
	for _, se := range scored {
		assert.Greater(t, se.Score, MinScore)
	}
}

func TestScoreFormElement_RewardsClarity(t *testing.T) {
	scorer := NewScorer(nil)
	ctx := domain.PageContext{}

	clear := domain.DOMElement{
		TagName:         "input",
		Type:            "email",
		Label:           "Work email",
		Placeholder:     "you@company.com",
		HasAutocomplete: true,
		IsVisible:       true,
		IsAboveFold:     true,
		IsInteractive:   true,
		Coordinates:     domain.Coordinates{Width: 300, Height: 40},
		DistanceFromTop: 400,
	}

	murky := clear
	murky.Label = ""
	murky.Placeholder = ""
	murky.HasAutocomplete = false
	murky.Required = true
	murky.Pattern = "^.{12,}$"

	cs := scorer.ScoreFormElement(clear, ctx)
	ms := scorer.ScoreFormElement(murky, ctx)

	assert.Greater(t, cs.Score, ms.Score)
	assert.GreaterOrEqual(t, ms.Score, MinScore)
}

func TestFormModifier_Range(t *testing.T) {
	assert.InDelta(t, 0.8, formModifier(0), 1e-9)
	assert.InDelta(t, 1.0, formModifier(0.5), 1e-9)
	assert.InDelta(t, 1.2, formModifier(1), 1e-9)
	assert.InDelta(t, 0.8, formModifier(-3), 1e-9, "values below range clamp")
	assert.InDelta(t, 1.2, formModifier(7), 1e-9, "values above range clamp")
}
