// Package matcher re-associates a predicted element ID with a concrete
// DOM element via six strategies tried in fixed priority order over a
// per-batch index.
package matcher

import (
	"strings"

	"go.uber.org/zap"

	"github.com/clickwise/clickwise/internal/domain"
)

// DefaultTolerance is the coordinate-bucket edge in pixels.
const DefaultTolerance = 20.0

// fallbackRadiusFactor widens the nearest-interactive search relative to
// the coordinate tolerance.
const fallbackRadiusFactor = 3.0

// Strategy identifies which lookup produced a match.
type Strategy string

const (
	StrategyExactID    Strategy = "exact-id"
	StrategyOxID       Strategy = "ox-id"
	StrategyCoordinate Strategy = "coordinate"
	StrategySpatial    Strategy = "spatial-grid"
	StrategyText       Strategy = "text-similarity"
	StrategyNearest    Strategy = "nearest-interactive"
	StrategyNone       Strategy = "none"
)

// strategyConfidence is fixed per strategy.
var strategyConfidence = map[Strategy]float64{
	StrategyExactID:    1.0,
	StrategyOxID:       0.95,
	StrategyCoordinate: 0.9,
	StrategySpatial:    0.85,
	StrategyText:       0.8,
	StrategyNearest:    0.6,
	StrategyNone:       0,
}

// Target carries everything known about the element being looked up.
// Only ID is required; richer targets unlock the lower-priority
// strategies.
type Target struct {
	ID          string
	OxID        string
	TagName     string
	Text        string
	Coordinates *domain.Coordinates
}

// MatchResult is the outcome of one lookup.
type MatchResult struct {
	Element    *domain.DOMElement
	Strategy   Strategy
	Confidence float64
}

// Stats accumulates per-instance lookup counters. Each prediction session
// owns its own matcher, so callers read session-scoped numbers instead of
// a process-wide singleton.
type Stats struct {
	Lookups     int              `json:"lookups"`
	Misses      int              `json:"misses"`
	IndexBuilds int              `json:"indexBuilds"`
	ByStrategy  map[Strategy]int `json:"byStrategy"`
}

// Matcher performs indexed element lookups. Not safe for concurrent use;
// scope one matcher per prediction session.
type Matcher struct {
	tolerance float64
	logger    *zap.Logger
	index     *elementIndex
	stats     Stats
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithTolerance overrides the coordinate bucket tolerance in pixels.
func WithTolerance(px float64) Option {
	return func(m *Matcher) {
		if px > 0 {
			m.tolerance = px
		}
	}
}

// New creates a matcher. A nil logger disables logging.
func New(logger *zap.Logger, opts ...Option) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Matcher{
		tolerance: DefaultTolerance,
		logger:    logger,
		stats:     Stats{ByStrategy: make(map[Strategy]int)},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// StartBatch builds the index for one element set. Lookups between
// StartBatch and EndBatch share this set; reusing an index across
// distinct element sets returns stale matches.
func (m *Matcher) StartBatch(elements []domain.DOMElement) {
	m.index = buildIndex(elements, m.tolerance)
	m.stats.IndexBuilds++
	m.logger.Debug("matcher index built", zap.Int("elements", len(elements)))
}

// EndBatch invalidates the index.
func (m *Matcher) EndBatch() {
	m.index = nil
}

// Stats returns a copy of the accumulated counters.
func (m *Matcher) Stats() Stats {
	out := m.stats
	out.ByStrategy = make(map[Strategy]int, len(m.stats.ByStrategy))
	for k, v := range m.stats.ByStrategy {
		out.ByStrategy[k] = v
	}
	return out
}

// FindByID looks up by identifier alone.
func (m *Matcher) FindByID(id string) MatchResult {
	return m.Find(Target{ID: id})
}

// Find tries the six strategies in fixed priority order and returns the
// first hit. A miss returns StrategyNone with zero confidence.
func (m *Matcher) Find(target Target) MatchResult {
	m.stats.Lookups++
	if m.index == nil {
		m.stats.Misses++
		return MatchResult{Strategy: StrategyNone}
	}

	if r, ok := m.findExactID(target); ok {
		return m.hit(r)
	}
	if r, ok := m.findOxID(target); ok {
		return m.hit(r)
	}
	if r, ok := m.findByCoordinate(target); ok {
		return m.hit(r)
	}
	if r, ok := m.findBySpatialGrid(target); ok {
		return m.hit(r)
	}
	if r, ok := m.findByTextSimilarity(target); ok {
		return m.hit(r)
	}
	if r, ok := m.findNearestInteractive(target); ok {
		return m.hit(r)
	}

	m.stats.Misses++
	return MatchResult{Strategy: StrategyNone}
}

func (m *Matcher) hit(r MatchResult) MatchResult {
	m.stats.ByStrategy[r.Strategy]++
	return r
}

func (m *Matcher) result(idx int, s Strategy) MatchResult {
	return MatchResult{
		Element:    &m.index.elements[idx],
		Strategy:   s,
		Confidence: strategyConfidence[s],
	}
}

func (m *Matcher) findExactID(t Target) (MatchResult, bool) {
	if t.ID == "" {
		return MatchResult{}, false
	}
	if i, ok := m.index.byID[t.ID]; ok {
		return m.result(i, StrategyExactID), true
	}
	return MatchResult{}, false
}

func (m *Matcher) findOxID(t Target) (MatchResult, bool) {
	for _, key := range []string{t.OxID, t.ID} {
		if key == "" {
			continue
		}
		if i, ok := m.index.byOxID[key]; ok {
			return m.result(i, StrategyOxID), true
		}
	}
	return MatchResult{}, false
}

func (m *Matcher) findByCoordinate(t Target) (MatchResult, bool) {
	if t.Coordinates == nil {
		return MatchResult{}, false
	}
	bucket := m.index.coordBucket(t.Coordinates.X, t.Coordinates.Y)
	candidates := m.index.byCoord[bucket]
	if len(candidates) == 0 {
		return MatchResult{}, false
	}
	return m.result(candidates[0], StrategyCoordinate), true
}

// findBySpatialGrid searches the 3x3 cell neighborhood around the target
// center and validates the element type when the target names a tag.
func (m *Matcher) findBySpatialGrid(t Target) (MatchResult, bool) {
	if t.Coordinates == nil {
		return MatchResult{}, false
	}
	cx, cy := t.Coordinates.Center()

	bestIdx, bestDist := -1, m.tolerance*fallbackRadiusFactor
	for _, i := range m.index.neighborhood(cx, cy) {
		el := &m.index.elements[i]
		if t.TagName != "" && !strings.EqualFold(el.TagName, t.TagName) {
			continue
		}
		ex, ey := el.Coordinates.Center()
		if d := distance(cx, cy, ex, ey); d < bestDist {
			bestIdx, bestDist = i, d
		}
	}
	if bestIdx < 0 {
		return MatchResult{}, false
	}
	return m.result(bestIdx, StrategySpatial), true
}

// findByTextSimilarity scans same-tag elements for matching text, using
// position proximity to break ties.
func (m *Matcher) findByTextSimilarity(t Target) (MatchResult, bool) {
	if t.TagName == "" || strings.TrimSpace(t.Text) == "" {
		return MatchResult{}, false
	}

	bestIdx := -1
	bestScore := 0.0
	for _, i := range m.index.byTag[t.TagName] {
		el := &m.index.elements[i]
		sim := textSimilarity(t.Text, el.Text)
		if sim < 0.5 {
			continue
		}
		score := sim
		if t.Coordinates != nil {
			cx, cy := t.Coordinates.Center()
			ex, ey := el.Coordinates.Center()
			if distance(cx, cy, ex, ey) <= m.tolerance*fallbackRadiusFactor {
				score += 0.2
			}
		}
		if score > bestScore {
			bestIdx, bestScore = i, score
		}
	}
	if bestIdx < 0 {
		return MatchResult{}, false
	}
	return m.result(bestIdx, StrategyText), true
}

func (m *Matcher) findNearestInteractive(t Target) (MatchResult, bool) {
	if t.Coordinates == nil {
		return MatchResult{}, false
	}
	cx, cy := t.Coordinates.Center()
	radius := m.tolerance * fallbackRadiusFactor

	bestIdx, bestDist := -1, radius
	for i := range m.index.elements {
		el := &m.index.elements[i]
		if !el.IsInteractive {
			continue
		}
		ex, ey := el.Coordinates.Center()
		if d := distance(cx, cy, ex, ey); d <= bestDist {
			bestIdx, bestDist = i, d
		}
	}
	if bestIdx < 0 {
		return MatchResult{}, false
	}
	return m.result(bestIdx, StrategyNearest), true
}

// textSimilarity is a cheap normalized comparison: exact (case-folded)
// match scores 1, prefix/substring containment scores proportionally.
func textSimilarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	shorter, longer := a, b
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if strings.Contains(longer, shorter) {
		return float64(len(shorter)) / float64(len(longer))
	}
	return 0
}
