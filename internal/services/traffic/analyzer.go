package traffic

import (
	"go.uber.org/zap"

	"github.com/clickwise/clickwise/internal/domain"
)

// AvgClicksPerEngagedUser is the number of clicks an engaged (non-bounced)
// visitor makes on a landing page, per the aggregated benchmark the
// engine is calibrated against.
const AvgClicksPerEngagedUser = 2.3

// Bounce rate bounds after all adjustments.
const (
	minBounceRate = 0.1
	maxBounceRate = 0.9
)

// baseBounceRates by traffic source.
var baseBounceRates = map[domain.TrafficSource]float64{
	domain.TrafficOrganic:  0.45,
	domain.TrafficPaid:     0.55,
	domain.TrafficSocial:   0.65,
	domain.TrafficEmail:    0.35,
	domain.TrafficDirect:   0.40,
	domain.TrafficReferral: 0.50,
	domain.TrafficLinkedIn: 0.45,
	domain.TrafficUnknown:  0.55,
}

// bounceDeviceModifiers scale the base bounce rate by device.
var bounceDeviceModifiers = map[domain.DeviceType]float64{
	domain.DeviceDesktop: 1.0,
	domain.DeviceMobile:  1.15,
	domain.DeviceTablet:  1.05,
}

// sourceClickModifiers scale per-element click propensity by source.
var sourceClickModifiers = map[domain.TrafficSource]float64{
	domain.TrafficOrganic:  1.0,
	domain.TrafficPaid:     1.1,
	domain.TrafficSocial:   0.85,
	domain.TrafficEmail:    1.05,
	domain.TrafficDirect:   0.95,
	domain.TrafficReferral: 0.9,
	domain.TrafficLinkedIn: 1.0,
	domain.TrafficUnknown:  0.8,
}

// deviceClickModifiers scale per-element click propensity by device.
var deviceClickModifiers = map[domain.DeviceType]float64{
	domain.DeviceDesktop: 1.0,
	domain.DeviceMobile:  0.9,
	domain.DeviceTablet:  0.95,
}

// Modifiers are the page-level quantities derived from a traffic profile.
// TotalClicks is the only place page-wide click volume is established;
// every per-element prediction is a share of it.
type Modifiers struct {
	TrafficSourceModifier float64 `json:"trafficSourceModifier"`
	DeviceModifier        float64 `json:"deviceModifier"`
	BounceRate            float64 `json:"bounceRate"`
	TotalClicks           float64 `json:"totalClicks"`
	EngagementRate        float64 `json:"engagementRate"`
}

// Analyzer derives page-level modifiers from a traffic/context profile.
type Analyzer struct {
	logger *zap.Logger
}

func NewAnalyzer(logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{logger: logger}
}

// CalculateTrafficModifiers computes the bounce rate, total estimated
// clicks, and source/device multipliers for one page context.
func (a *Analyzer) CalculateTrafficModifiers(ctx domain.PageContext) Modifiers {
	ctx = ctx.Normalize()

	bounce := baseBounceRates[ctx.TrafficSource]
	bounce *= bounceDeviceModifiers[ctx.DeviceType]

	// Slow pages bounce harder: +10% per second above 3s.
	if ctx.LoadTime > 3 {
		bounce *= 1 + 0.1*(ctx.LoadTime-3)
	}

	// Good ad-to-page message match retains visitors.
	if ctx.AdMessageMatch > 0 {
		bounce *= 1 - 0.2*clamp01(ctx.AdMessageMatch)
	}

	if bounce < minBounceRate {
		bounce = minBounceRate
	} else if bounce > maxBounceRate {
		bounce = maxBounceRate
	}

	engagement := 1 - bounce
	totalClicks := float64(ctx.TotalImpressions) * engagement * AvgClicksPerEngagedUser

	mods := Modifiers{
		TrafficSourceModifier: sourceClickModifiers[ctx.TrafficSource],
		DeviceModifier:        deviceClickModifiers[ctx.DeviceType],
		BounceRate:            bounce,
		TotalClicks:           totalClicks,
		EngagementRate:        engagement,
	}

	a.logger.Debug("traffic modifiers",
		zap.String("source", string(ctx.TrafficSource)),
		zap.String("device", string(ctx.DeviceType)),
		zap.Float64("bounce_rate", bounce),
		zap.Float64("total_clicks", totalClicks))
	return mods
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
