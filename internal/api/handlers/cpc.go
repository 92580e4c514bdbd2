package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/clickwise/clickwise/internal/domain"
	"github.com/clickwise/clickwise/internal/observability"
	"github.com/clickwise/clickwise/internal/services/cpc"
	"github.com/clickwise/clickwise/pkg/httputil"
)

// CPCHandler handles cost-per-click estimation requests
type CPCHandler struct {
	estimator *cpc.Estimator
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// NewCPCHandler creates a new CPC handler
func NewCPCHandler(estimator *cpc.Estimator, metrics *observability.Metrics, logger *zap.Logger) *CPCHandler {
	return &CPCHandler{
		estimator: estimator,
		metrics:   metrics,
		logger:    logger,
	}
}

// CPCRequest is the payload for a CPC estimate
type CPCRequest struct {
	Context domain.PageContext `json:"context"`
}

// CPCResponse pairs the estimate with the context the estimator
// actually used, inferred fields included.
type CPCResponse struct {
	Estimate cpc.Estimate       `json:"estimate"`
	Context  domain.PageContext `json:"context"`
}

// Estimate handles POST /api/v1/cpc/estimate
func (h *CPCHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	var req CPCRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.ErrorFromDomain(w, err)
		return
	}

	resolved := h.estimator.EstimateContext(req.Context)
	estimate := h.estimator.EstimateCPC(resolved)

	if h.metrics != nil {
		h.metrics.RecordCPCEstimate(string(resolved.Industry), estimate.Breakdown.FloorApplied)
	}

	h.logger.Debug("CPC estimated",
		zap.String("url", resolved.URL),
		zap.String("industry", string(resolved.Industry)),
		zap.Float64("cpc", estimate.EstimatedCPC),
	)

	httputil.JSON(w, http.StatusOK, CPCResponse{
		Estimate: estimate,
		Context:  resolved,
	})
}
