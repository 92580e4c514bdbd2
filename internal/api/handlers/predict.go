package handlers

import (
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/clickwise/clickwise/internal/domain"
	"github.com/clickwise/clickwise/internal/observability"
	"github.com/clickwise/clickwise/internal/services/prediction"
	"github.com/clickwise/clickwise/pkg/httputil"
)

// PredictHandler handles click-prediction requests
type PredictHandler struct {
	engine        *prediction.Engine
	metrics       *observability.Metrics
	logger        *zap.Logger
	maxBatchItems int
}

// NewPredictHandler creates a new prediction handler
func NewPredictHandler(engine *prediction.Engine, metrics *observability.Metrics, maxBatchItems int, logger *zap.Logger) *PredictHandler {
	if maxBatchItems <= 0 {
		maxBatchItems = 25
	}
	return &PredictHandler{
		engine:        engine,
		metrics:       metrics,
		logger:        logger,
		maxBatchItems: maxBatchItems,
	}
}

// PredictRequest is the payload for a single-page prediction
type PredictRequest struct {
	Elements []domain.DOMElement `json:"elements"`
	Context  domain.PageContext  `json:"context"`
	Options  prediction.Options  `json:"options"`
}

// BatchRequest is the payload for a multi-page prediction
type BatchRequest struct {
	Items []prediction.BatchItem `json:"items"`
}

// Predict handles POST /api/v1/predict
func (h *PredictHandler) Predict(w http.ResponseWriter, r *http.Request) {
	var req PredictRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.ErrorFromDomain(w, err)
		return
	}

	start := time.Now()
	report, err := h.engine.PredictClicks(req.Elements, req.Context, req.Options)
	if err != nil {
		h.logger.Error("Prediction failed",
			zap.String("url", req.Context.URL),
			zap.Int("elements", len(req.Elements)),
			zap.Error(err),
		)
		if h.metrics != nil {
			h.metrics.RecordPrediction("error", "", 0, time.Since(start))
		}
		httputil.ErrorFromDomain(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordPrediction("ok", string(report.Reliability.Level), len(report.Predictions), time.Since(start))
		if report.WastedClickAnalysis != nil {
			h.metrics.WastedClickRatio.Observe(report.WastedClickAnalysis.AverageWasteScore)
		}
	}

	httputil.JSON(w, http.StatusOK, report)
}

// PredictBatch handles POST /api/v1/predict/batch
func (h *PredictHandler) PredictBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.ErrorFromDomain(w, err)
		return
	}

	if len(req.Items) == 0 {
		httputil.ErrorFromDomain(w, domain.ErrValidationField("items", "at least one item is required"))
		return
	}
	if len(req.Items) > h.maxBatchItems {
		httputil.ErrorFromDomain(w, domain.ErrValidationField("items",
			"batch size exceeds limit of "+strconv.Itoa(h.maxBatchItems)))
		return
	}

	start := time.Now()
	results := h.engine.PredictBatch(req.Items)

	degraded := 0
	for _, res := range results {
		if res.Degraded {
			degraded++
		}
	}
	if h.metrics != nil {
		h.metrics.PredictionDuration.WithLabelValues("batch").Observe(time.Since(start).Seconds())
		if degraded > 0 {
			h.metrics.DegradedBatchItems.Add(float64(degraded))
		}
	}

	h.logger.Info("Batch prediction completed",
		zap.Int("items", len(results)),
		zap.Int("degraded", degraded),
		zap.Duration("duration", time.Since(start)),
	)

	httputil.JSONWithMeta(w, http.StatusOK, results, &httputil.Meta{Count: len(results)})
}
