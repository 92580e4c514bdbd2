package cpc

import "github.com/clickwise/clickwise/internal/domain"

// BaseCPC is the floor for every estimate, in USD. The floor is business
// policy: a paid click is never modeled cheaper than this, regardless of
// how low the modifier chain multiplies.
const BaseCPC = 2.93

// industryAvgCPC holds 2025 per-industry average CPCs in USD. Values
// below BaseCPC are floored at lookup time.
var industryAvgCPC = map[domain.Industry]float64{
	domain.IndustryLegal:      8.94,
	domain.IndustryInsurance:  7.64,
	domain.IndustryHomeSvcs:   6.11,
	domain.IndustryFinance:    4.90,
	domain.IndustrySaaS:       4.40,
	domain.IndustryEducation:  4.10,
	domain.IndustryHealthcare: 3.90,
	domain.IndustryAutomotive: 3.24,
	domain.IndustryRealEstate: 2.93,
	domain.IndustryTravel:     1.92,
	domain.IndustryFitness:    1.90,
	domain.IndustryEcommerce:  1.38,
	domain.IndustryUnknown:    BaseCPC,
}

// businessTypeModifiers scale CPC by B2B/B2C economics.
var businessTypeModifiers = map[domain.BusinessType]float64{
	domain.BusinessB2B:     1.24,
	domain.BusinessB2C:     0.98,
	domain.BusinessUnknown: 1.0,
}

// networkModifiers scale CPC by the advertising network implied by the
// traffic source. Non-paid sources carry no per-click cost (the final
// floor still applies to the reported estimate).
var networkModifiers = map[domain.TrafficSource]float64{
	domain.TrafficPaid:     1.0,
	domain.TrafficSocial:   0.75,
	domain.TrafficLinkedIn: 2.0,
	domain.TrafficOrganic:  0,
	domain.TrafficDirect:   0,
	domain.TrafficEmail:    0,
	domain.TrafficReferral: 0,
	domain.TrafficUnknown:  1.0,
}

var deviceModifiers = map[domain.DeviceType]float64{
	domain.DeviceDesktop: 1.0,
	domain.DeviceMobile:  0.85,
	domain.DeviceTablet:  0.92,
}

var competitionModifiers = map[domain.CompetitionLevel]float64{
	domain.CompetitionLow:     0.85,
	domain.CompetitionMedium:  1.0,
	domain.CompetitionHigh:    1.35,
	domain.CompetitionUnknown: 1.0,
}

var qualityModifiers = map[domain.QualityTier]float64{
	domain.QualityHigh:    0.8,
	domain.QualityAverage: 1.0,
	domain.QualityLow:     1.3,
	domain.QualityUnknown: 1.0,
}

var geoModifiers = map[domain.GeoTier]float64{
	domain.GeoTier1:       1.0,
	domain.GeoTier2:       0.65,
	domain.GeoTier3:       0.4,
	domain.GeoTierUnknown: 1.0,
}

// industryURLKeywords maps URL substrings to industries; first match wins
// in the declared priority order.
var industryURLOrder = []domain.Industry{
	domain.IndustryLegal,
	domain.IndustryInsurance,
	domain.IndustryFinance,
	domain.IndustrySaaS,
	domain.IndustryHealthcare,
	domain.IndustryEducation,
	domain.IndustryRealEstate,
	domain.IndustryEcommerce,
	domain.IndustryTravel,
	domain.IndustryAutomotive,
	domain.IndustryHomeSvcs,
	domain.IndustryFitness,
}

var industryURLKeywords = map[domain.Industry][]string{
	domain.IndustryLegal:      {"law", "legal", "attorney", "lawyer"},
	domain.IndustryInsurance:  {"insurance", "insure", "coverage"},
	domain.IndustryFinance:    {"bank", "finance", "loan", "invest", "credit"},
	domain.IndustrySaaS:       {"app", "saas", "software", "platform", "api"},
	domain.IndustryHealthcare: {"health", "clinic", "medical", "dental", "care"},
	domain.IndustryEducation:  {"edu", "course", "learn", "academy", "school"},
	domain.IndustryRealEstate: {"realestate", "realty", "property", "homes"},
	domain.IndustryEcommerce:  {"shop", "store", "cart", "buy"},
	domain.IndustryTravel:     {"travel", "hotel", "flight", "booking", "tour"},
	domain.IndustryAutomotive: {"auto", "car", "vehicle", "dealer"},
	domain.IndustryHomeSvcs:   {"plumb", "hvac", "roofing", "cleaning", "repair"},
	domain.IndustryFitness:    {"gym", "fitness", "yoga", "workout"},
}

// industryTextKeywords drives the DOM-text density fallback. Committing
// to an industry requires at least minIndustryKeywordHits hits.
var industryTextKeywords = map[domain.Industry][]string{
	domain.IndustryLegal:      {"attorney", "lawyer", "legal", "law firm", "consultation", "case"},
	domain.IndustryInsurance:  {"insurance", "policy", "premium", "coverage", "claim", "quote"},
	domain.IndustryFinance:    {"loan", "interest rate", "credit", "banking", "investment", "mortgage"},
	domain.IndustrySaaS:       {"free trial", "pricing", "integration", "dashboard", "api", "workflow"},
	domain.IndustryHealthcare: {"patient", "appointment", "doctor", "treatment", "clinic", "health"},
	domain.IndustryEducation:  {"course", "enroll", "curriculum", "students", "certificate", "learn"},
	domain.IndustryRealEstate: {"property", "listing", "agent", "mortgage", "home", "square feet"},
	domain.IndustryEcommerce:  {"add to cart", "shipping", "checkout", "sale", "in stock", "returns"},
	domain.IndustryTravel:     {"flight", "hotel", "itinerary", "destination", "booking", "trip"},
	domain.IndustryAutomotive: {"test drive", "dealership", "mileage", "financing", "vehicle", "model"},
	domain.IndustryHomeSvcs:   {"estimate", "licensed", "insured", "emergency", "installation", "repair"},
}

const minIndustryKeywordHits = 3

// b2bIndustries and b2cIndustries drive business-type inference from
// industry membership.
var b2bIndustries = map[domain.Industry]bool{
	domain.IndustrySaaS:      true,
	domain.IndustryLegal:     true,
	domain.IndustryFinance:   true,
	domain.IndustryInsurance: true,
}

var b2cIndustries = map[domain.Industry]bool{
	domain.IndustryEcommerce:  true,
	domain.IndustryTravel:     true,
	domain.IndustryFitness:    true,
	domain.IndustryAutomotive: true,
	domain.IndustryRealEstate: true,
	domain.IndustryHomeSvcs:   true,
}

var b2bTextKeywords = []string{
	"enterprise", "roi", "api", "integration", "workflow", "teams",
	"procurement", "demo", "per seat",
}

var b2cTextKeywords = []string{
	"buy now", "sale", "shipping", "cart", "discount", "gift",
	"family", "free returns",
}

var b2bURLHints = []string{"enterprise", "business", "b2b", "solutions"}
var b2cURLHints = []string{"shop", "store", "deals", "outlet"}

// highCompetitionIndustries default the competition level when the
// caller supplied none.
var highCompetitionIndustries = map[domain.Industry]bool{
	domain.IndustryLegal:     true,
	domain.IndustryInsurance: true,
	domain.IndustryFinance:   true,
}

// industryFormCompletion scales overall form conversion per vertical.
var industryFormCompletion = map[domain.Industry]float64{
	domain.IndustryLegal:      0.80,
	domain.IndustryInsurance:  0.78,
	domain.IndustryFinance:    0.75,
	domain.IndustrySaaS:       0.85,
	domain.IndustryHealthcare: 0.82,
	domain.IndustryEducation:  0.88,
	domain.IndustryRealEstate: 0.83,
	domain.IndustryEcommerce:  0.90,
	domain.IndustryTravel:     0.87,
	domain.IndustryAutomotive: 0.81,
	domain.IndustryHomeSvcs:   0.84,
	domain.IndustryFitness:    0.89,
	domain.IndustryUnknown:    0.80,
}

// FormCompletionModifier returns the industry-specific scale applied to
// cumulative form conversion.
func FormCompletionModifier(ind domain.Industry) float64 {
	if m, ok := industryFormCompletion[ind]; ok {
		return m
	}
	return industryFormCompletion[domain.IndustryUnknown]
}
