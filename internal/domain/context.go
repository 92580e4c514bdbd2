package domain

// TrafficSource identifies where page visitors arrive from.
type TrafficSource string

const (
	TrafficOrganic  TrafficSource = "organic"
	TrafficPaid     TrafficSource = "paid"
	TrafficSocial   TrafficSource = "social"
	TrafficEmail    TrafficSource = "email"
	TrafficDirect   TrafficSource = "direct"
	TrafficReferral TrafficSource = "referral"
	TrafficLinkedIn TrafficSource = "linkedin"
	TrafficUnknown  TrafficSource = "unknown"
)

func (s TrafficSource) IsValid() bool {
	switch s {
	case TrafficOrganic, TrafficPaid, TrafficSocial, TrafficEmail,
		TrafficDirect, TrafficReferral, TrafficLinkedIn, TrafficUnknown:
		return true
	}
	return false
}

// DeviceType identifies the visitor's device class.
type DeviceType string

const (
	DeviceDesktop DeviceType = "desktop"
	DeviceMobile  DeviceType = "mobile"
	DeviceTablet  DeviceType = "tablet"
)

func (d DeviceType) IsValid() bool {
	switch d {
	case DeviceDesktop, DeviceMobile, DeviceTablet:
		return true
	}
	return false
}

// Industry is the vertical a page belongs to, inferred when not supplied.
type Industry string

const (
	IndustryLegal      Industry = "legal"
	IndustryInsurance  Industry = "insurance"
	IndustryFinance    Industry = "finance"
	IndustrySaaS       Industry = "saas"
	IndustryHealthcare Industry = "healthcare"
	IndustryEducation  Industry = "education"
	IndustryRealEstate Industry = "realestate"
	IndustryEcommerce  Industry = "ecommerce"
	IndustryTravel     Industry = "travel"
	IndustryAutomotive Industry = "automotive"
	IndustryHomeSvcs   Industry = "homeservices"
	IndustryFitness    Industry = "fitness"
	IndustryUnknown    Industry = "unknown"
)

// BusinessType distinguishes B2B from B2C pages for CPC estimation.
type BusinessType string

const (
	BusinessB2B     BusinessType = "b2b"
	BusinessB2C     BusinessType = "b2c"
	BusinessUnknown BusinessType = "unknown"
)

// CompetitionLevel grades how contested the page's ad auctions are.
type CompetitionLevel string

const (
	CompetitionLow     CompetitionLevel = "low"
	CompetitionMedium  CompetitionLevel = "medium"
	CompetitionHigh    CompetitionLevel = "high"
	CompetitionUnknown CompetitionLevel = "unknown"
)

// QualityTier grades expected ad quality score.
type QualityTier string

const (
	QualityHigh    QualityTier = "high"
	QualityAverage QualityTier = "average"
	QualityLow     QualityTier = "low"
	QualityUnknown QualityTier = "unknown"
)

// GeoTier groups target geographies by advertising cost.
type GeoTier string

const (
	GeoTier1       GeoTier = "tier1"
	GeoTier2       GeoTier = "tier2"
	GeoTier3       GeoTier = "tier3"
	GeoTierUnknown GeoTier = "unknown"
)

// PageContext is the page-level and traffic-level profile for one
// prediction call. The CPC estimator's EstimateContext returns an
// enriched copy with unknown fields filled in; the input is never
// mutated in place.
type PageContext struct {
	URL              string        `json:"url,omitempty"`
	TotalImpressions int           `json:"totalImpressions"`
	TrafficSource    TrafficSource `json:"trafficSource"`
	DeviceType       DeviceType    `json:"deviceType"`

	Industry     Industry         `json:"industry,omitempty"`
	BusinessType BusinessType     `json:"businessType,omitempty"`
	Competition  CompetitionLevel `json:"competition,omitempty"`
	Quality      QualityTier      `json:"quality,omitempty"`
	Geo          GeoTier          `json:"geo,omitempty"`

	// Technical signals.
	LoadTime        float64 `json:"loadTime,omitempty"` // seconds
	HasSSL          bool    `json:"hasSSL"`
	HasTrustBadges  bool    `json:"hasTrustBadges,omitempty"`
	HasTestimonials bool    `json:"hasTestimonials,omitempty"`
	AdMessageMatch  float64 `json:"adMessageMatch,omitempty"` // [0,1], 0 = unknown

	// Full element list for page-wide ratios (attention ratio, clutter).
	AllElements []DOMElement `json:"allElements,omitempty"`
}

// Normalize fills enum zero values with their unknown members so
// downstream table lookups never miss.
func (c PageContext) Normalize() PageContext {
	if c.TrafficSource == "" || !c.TrafficSource.IsValid() {
		c.TrafficSource = TrafficUnknown
	}
	if c.DeviceType == "" || !c.DeviceType.IsValid() {
		c.DeviceType = DeviceDesktop
	}
	if c.Industry == "" {
		c.Industry = IndustryUnknown
	}
	if c.BusinessType == "" {
		c.BusinessType = BusinessUnknown
	}
	if c.Competition == "" {
		c.Competition = CompetitionUnknown
	}
	if c.Quality == "" {
		c.Quality = QualityUnknown
	}
	if c.Geo == "" {
		c.Geo = GeoTierUnknown
	}
	return c
}

// PageText concatenates the visible text of all known elements, used by
// keyword-density classifiers.
func (c PageContext) PageText() string {
	var b []byte
	for i := range c.AllElements {
		t := c.AllElements[i].Text
		if t == "" {
			continue
		}
		b = append(b, t...)
		b = append(b, ' ')
	}
	return string(b)
}
