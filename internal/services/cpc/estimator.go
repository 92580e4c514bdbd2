package cpc

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/clickwise/clickwise/internal/domain"
)

const defaultCacheSize = 512

// Breakdown records every multiplier applied along the CPC chain so the
// estimate can be explained to the caller.
type Breakdown struct {
	BaseCPC          float64 `json:"baseCPC"`
	IndustryAvgCPC   float64 `json:"industryAvgCPC"`
	BusinessModifier float64 `json:"businessModifier"`
	NetworkModifier  float64 `json:"networkModifier"`
	DeviceModifier   float64 `json:"deviceModifier"`
	CompetitionMod   float64 `json:"competitionModifier"`
	QualityModifier  float64 `json:"qualityModifier"`
	GeoModifier      float64 `json:"geoModifier"`
	TimeModifier     float64 `json:"timeModifier"`
	FloorApplied     bool    `json:"floorApplied"`
}

// Estimate is the result of one CPC estimation.
type Estimate struct {
	EstimatedCPC float64   `json:"estimatedCPC"`
	Breakdown    Breakdown `json:"breakdown"`
}

// Estimator infers page context and computes effective cost-per-click.
// Safe for concurrent use; the context cache is the only shared state.
type Estimator struct {
	logger *zap.Logger
	cache  *lru.Cache[string, classification]
	now    func() time.Time
}

// Option configures an Estimator.
type Option func(*Estimator)

// WithClock overrides the time source used by the seasonality modifier.
func WithClock(now func() time.Time) Option {
	return func(e *Estimator) { e.now = now }
}

// WithCacheSize bounds the per-URL classification cache.
func WithCacheSize(size int) Option {
	return func(e *Estimator) {
		if size > 0 {
			cache, err := lru.New[string, classification](size)
			if err == nil {
				e.cache = cache
			}
		}
	}
}

// NewEstimator creates a CPC estimator. A nil logger disables logging.
func NewEstimator(logger *zap.Logger, opts ...Option) *Estimator {
	if logger == nil {
		logger = zap.NewNop()
	}
	cache, _ := lru.New[string, classification](defaultCacheSize)
	e := &Estimator{
		logger: logger,
		cache:  cache,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EstimateCPC computes the effective CPC for a context by chaining the
// seven modifier axes in fixed order over the industry average. The
// result is always floored at BaseCPC.
func (e *Estimator) EstimateCPC(ctx domain.PageContext) Estimate {
	ctx = ctx.Normalize()

	industryAvg := industryAvgCPC[ctx.Industry]
	if industryAvg < BaseCPC {
		industryAvg = BaseCPC
	}

	b := Breakdown{
		BaseCPC:          BaseCPC,
		IndustryAvgCPC:   industryAvg,
		BusinessModifier: businessTypeModifiers[ctx.BusinessType],
		NetworkModifier:  networkModifiers[ctx.TrafficSource],
		DeviceModifier:   deviceModifiers[ctx.DeviceType],
		CompetitionMod:   competitionModifiers[ctx.Competition],
		QualityModifier:  qualityModifiers[ctx.Quality],
		GeoModifier:      geoModifiers[ctx.Geo],
		TimeModifier:     e.timeModifier(),
	}

	estimated := industryAvg *
		b.BusinessModifier *
		b.NetworkModifier *
		b.DeviceModifier *
		b.CompetitionMod *
		b.QualityModifier *
		b.GeoModifier *
		b.TimeModifier

	if estimated < BaseCPC {
		estimated = BaseCPC
		b.FloorApplied = true
	}

	e.logger.Debug("cpc estimated",
		zap.String("industry", string(ctx.Industry)),
		zap.String("business_type", string(ctx.BusinessType)),
		zap.Float64("estimated_cpc", estimated),
		zap.Bool("floor_applied", b.FloorApplied))

	return Estimate{EstimatedCPC: estimated, Breakdown: b}
}

// timeModifier adjusts for time-of-day and seasonality: business hours
// bid up auctions, weekends cool them, and Q4 carries a holiday premium.
func (e *Estimator) timeModifier() float64 {
	now := e.now()
	mod := 1.0

	switch now.Weekday() {
	case time.Saturday, time.Sunday:
		mod *= 0.92
	default:
		if h := now.Hour(); h >= 9 && h < 17 {
			mod *= 1.08
		}
	}

	if m := now.Month(); m >= time.October {
		mod *= 1.12
	}
	return mod
}
