package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/clickwise/clickwise/internal/domain"
)

func sampleElements() []domain.DOMElement {
	return []domain.DOMElement{
		{
			ID: "cta-main", OxID: "ox-101", TagName: "button", Text: "Get started",
			IsInteractive: true,
			Coordinates:   domain.Coordinates{X: 200, Y: 400, Width: 180, Height: 48},
		},
		{
			ID: "nav-about", OxID: "ox-102", TagName: "a", Text: "About us",
			IsInteractive: true,
			Coordinates:   domain.Coordinates{X: 20, Y: 10, Width: 80, Height: 24},
		},
		{
			OxID: "ox-103", TagName: "a", Text: "Pricing",
			IsInteractive: true,
			Coordinates:   domain.Coordinates{X: 120, Y: 10, Width: 80, Height: 24},
		},
	}
}

func TestFind_ExactIDWins(t *testing.T) {
	m := New(zap.NewNop())
	m.StartBatch(sampleElements())
	defer m.EndBatch()

	// Even with conflicting coordinates, an exact ID match takes priority.
	far := &domain.Coordinates{X: 9999, Y: 9999}
	r := m.Find(Target{ID: "cta-main", Coordinates: far})

	require.NotNil(t, r.Element)
	assert.Equal(t, "cta-main", r.Element.ID)
	assert.Equal(t, StrategyExactID, r.Strategy)
	assert.InDelta(t, 1.0, r.Confidence, 1e-9)
}

func TestFind_OxIDFallback(t *testing.T) {
	m := New(zap.NewNop())
	m.StartBatch(sampleElements())
	defer m.EndBatch()

	r := m.FindByID("ox-103")
	require.NotNil(t, r.Element)
	assert.Equal(t, "Pricing", r.Element.Text)
	assert.Equal(t, StrategyOxID, r.Strategy)
	assert.InDelta(t, 0.95, r.Confidence, 1e-9)
}

func TestFind_CoordinateBucket(t *testing.T) {
	m := New(zap.NewNop())
	m.StartBatch(sampleElements())
	defer m.EndBatch()

	// Same 20px bucket as the CTA's top-left corner.
	r := m.Find(Target{
		ID:          "unknown-id",
		Coordinates: &domain.Coordinates{X: 205, Y: 410},
	})

	require.NotNil(t, r.Element)
	assert.Equal(t, "cta-main", r.Element.ID)
	assert.Equal(t, StrategyCoordinate, r.Strategy)
	assert.InDelta(t, 0.9, r.Confidence, 1e-9)
}

func TestFind_SpatialGridValidatesTag(t *testing.T) {
	m := New(zap.NewNop())
	m.StartBatch(sampleElements())
	defer m.EndBatch()

	// Different coordinate bucket, but the bounding-box center lands in
	// the CTA's grid neighborhood. The tag filter must skip the anchor
	// elements.
	r := m.Find(Target{
		ID:          "unknown-id",
		TagName:     "button",
		Coordinates: &domain.Coordinates{X: 260, Y: 390, Width: 60, Height: 60},
	})

	require.NotNil(t, r.Element)
	assert.Equal(t, "cta-main", r.Element.ID)
	assert.Equal(t, StrategySpatial, r.Strategy)
}

func TestFind_TextSimilarity(t *testing.T) {
	m := New(zap.NewNop())
	m.StartBatch(sampleElements())
	defer m.EndBatch()

	r := m.Find(Target{
		ID:      "unknown-id",
		TagName: "a",
		Text:    "about us",
	})

	require.NotNil(t, r.Element)
	assert.Equal(t, "nav-about", r.Element.ID)
	assert.Equal(t, StrategyText, r.Strategy)
	assert.InDelta(t, 0.8, r.Confidence, 1e-9)
}

func TestFind_NearestInteractiveLastResort(t *testing.T) {
	m := New(zap.NewNop())
	m.StartBatch(sampleElements())
	defer m.EndBatch()

	// Off every bucket and grid neighborhood, wrong tag, no text; only
	// the radius search can connect it to the nav link.
	r := m.Find(Target{
		ID:          "unknown-id",
		TagName:     "div",
		Coordinates: &domain.Coordinates{X: 55, Y: 60, Width: 10, Height: 10},
	})

	require.NotNil(t, r.Element)
	assert.Equal(t, "nav-about", r.Element.ID)
	assert.Equal(t, StrategyNearest, r.Strategy)
	assert.InDelta(t, 0.6, r.Confidence, 1e-9)
}

func TestFind_MissAndStats(t *testing.T) {
	m := New(zap.NewNop())
	m.StartBatch(sampleElements())

	hit := m.FindByID("cta-main")
	miss := m.FindByID("nonexistent")

	assert.Equal(t, StrategyExactID, hit.Strategy)
	assert.Equal(t, StrategyNone, miss.Strategy)
	assert.Nil(t, miss.Element)
	assert.Zero(t, miss.Confidence)

	stats := m.Stats()
	assert.Equal(t, 2, stats.Lookups)
	assert.Equal(t, 1, stats.Misses)
	assert.Equal(t, 1, stats.IndexBuilds)
	assert.Equal(t, 1, stats.ByStrategy[StrategyExactID])

	m.EndBatch()
	afterEnd := m.FindByID("cta-main")
	assert.Equal(t, StrategyNone, afterEnd.Strategy, "no index, no match")
}

func TestFind_StatsAreCopies(t *testing.T) {
	m := New(nil)
	m.StartBatch(sampleElements())
	defer m.EndBatch()

	m.FindByID("cta-main")
	snapshot := m.Stats()
	snapshot.ByStrategy[StrategyExactID] = 99

	assert.Equal(t, 1, m.Stats().ByStrategy[StrategyExactID])
}

func TestWithTolerance(t *testing.T) {
	m := New(nil, WithTolerance(100))
	m.StartBatch(sampleElements())
	defer m.EndBatch()

	// With a 100px bucket, (260, 470) shares the CTA corner's bucket.
	r := m.Find(Target{
		ID:          "unknown-id",
		Coordinates: &domain.Coordinates{X: 260, Y: 470},
	})
	assert.Equal(t, StrategyCoordinate, r.Strategy)
}

func TestTextSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, textSimilarity("Get Started", "get started"), 1e-9)
	assert.InDelta(t, 0.5, textSimilarity("abcd", "abcdefgh"), 1e-9)
	assert.Zero(t, textSimilarity("pricing", "about"))
	assert.Zero(t, textSimilarity("", "anything"))
}
