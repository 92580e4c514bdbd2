package cpc

import (
	"strings"

	"github.com/clickwise/clickwise/internal/domain"
)

// classification is the cached result of industry/business inference for
// one URL+page-text pair.
type classification struct {
	Industry     domain.Industry
	BusinessType domain.BusinessType
}

// EstimateContext returns an enriched copy of the context with unknown
// industry, business-type, competition, quality, and geo fields filled in
// by heuristics. The input is never mutated.
func (e *Estimator) EstimateContext(ctx domain.PageContext) domain.PageContext {
	out := ctx.Normalize()

	if out.Industry == domain.IndustryUnknown || out.BusinessType == domain.BusinessUnknown {
		cls := e.classify(out)
		if out.Industry == domain.IndustryUnknown {
			out.Industry = cls.Industry
		}
		if out.BusinessType == domain.BusinessUnknown {
			out.BusinessType = cls.BusinessType
		}
	}

	if out.Competition == domain.CompetitionUnknown {
		out.Competition = defaultCompetition(out.Industry)
	}
	if out.Quality == domain.QualityUnknown {
		out.Quality = defaultQuality(out)
	}
	if out.Geo == domain.GeoTierUnknown {
		out.Geo = domain.GeoTier1
	}
	return out
}

// classify runs the industry and business-type inference, consulting the
// per-URL cache first. Inference scans the full page text, which is the
// one expensive step in context estimation.
func (e *Estimator) classify(ctx domain.PageContext) classification {
	if ctx.URL != "" {
		if cached, ok := e.cache.Get(ctx.URL); ok {
			return cached
		}
	}

	cls := classification{
		Industry:     inferIndustry(ctx.URL, ctx.PageText()),
		BusinessType: domain.BusinessUnknown,
	}
	cls.BusinessType = inferBusinessType(cls.Industry, ctx)

	if ctx.URL != "" {
		e.cache.Add(ctx.URL, cls)
	}
	return cls
}

// inferIndustry tries URL substring matches first, then DOM-text keyword
// density. Density only commits with at least minIndustryKeywordHits hits.
func inferIndustry(url, pageText string) domain.Industry {
	lowerURL := strings.ToLower(url)
	if lowerURL != "" {
		for _, ind := range industryURLOrder {
			for _, kw := range industryURLKeywords[ind] {
				if strings.Contains(lowerURL, kw) {
					return ind
				}
			}
		}
	}

	lowerText := strings.ToLower(pageText)
	if lowerText == "" {
		return domain.IndustryUnknown
	}

	best := domain.IndustryUnknown
	bestHits := 0
	for _, ind := range industryURLOrder {
		hits := 0
		for _, kw := range industryTextKeywords[ind] {
			hits += strings.Count(lowerText, kw)
		}
		if hits > bestHits {
			best, bestHits = ind, hits
		}
	}
	if bestHits < minIndustryKeywordHits {
		return domain.IndustryUnknown
	}
	return best
}

// inferBusinessType walks the signal chain: industry membership, traffic
// source, URL hints, then text keyword density, defaulting to unknown.
func inferBusinessType(ind domain.Industry, ctx domain.PageContext) domain.BusinessType {
	if b2bIndustries[ind] {
		return domain.BusinessB2B
	}
	if b2cIndustries[ind] {
		return domain.BusinessB2C
	}
	if ctx.TrafficSource == domain.TrafficLinkedIn {
		return domain.BusinessB2B
	}

	lowerURL := strings.ToLower(ctx.URL)
	for _, hint := range b2bURLHints {
		if strings.Contains(lowerURL, hint) {
			return domain.BusinessB2B
		}
	}
	for _, hint := range b2cURLHints {
		if strings.Contains(lowerURL, hint) {
			return domain.BusinessB2C
		}
	}

	lowerText := strings.ToLower(ctx.PageText())
	b2bHits, b2cHits := 0, 0
	for _, kw := range b2bTextKeywords {
		b2bHits += strings.Count(lowerText, kw)
	}
	for _, kw := range b2cTextKeywords {
		b2cHits += strings.Count(lowerText, kw)
	}
	switch {
	case b2bHits >= minIndustryKeywordHits && b2bHits > b2cHits:
		return domain.BusinessB2B
	case b2cHits >= minIndustryKeywordHits && b2cHits > b2bHits:
		return domain.BusinessB2C
	default:
		return domain.BusinessUnknown
	}
}

func defaultCompetition(ind domain.Industry) domain.CompetitionLevel {
	if highCompetitionIndustries[ind] {
		return domain.CompetitionHigh
	}
	return domain.CompetitionMedium
}

func defaultQuality(ctx domain.PageContext) domain.QualityTier {
	switch {
	case ctx.HasSSL && ctx.LoadTime > 0 && ctx.LoadTime <= 3:
		return domain.QualityHigh
	case !ctx.HasSSL && ctx.LoadTime > 5:
		return domain.QualityLow
	default:
		return domain.QualityAverage
	}
}
