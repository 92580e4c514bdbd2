package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/clickwise/clickwise/internal/domain"
	"github.com/clickwise/clickwise/internal/observability"
	"github.com/clickwise/clickwise/internal/services/cpc"
	"github.com/clickwise/clickwise/internal/services/prediction"
	"github.com/clickwise/clickwise/pkg/httputil"
)

// Prometheus collectors register globally, so the whole package shares
// one metrics instance.
var testMetrics = observability.NewMetrics("clickwise_test")

func newTestRouter(t *testing.T) *Router {
	t.Helper()
	logger := zap.NewNop()
	estimator := cpc.NewEstimator(logger)
	engine := prediction.NewEngine(logger, prediction.WithEstimator(estimator))
	return NewRouter(RouterConfig{
		Engine:        engine,
		Estimator:     estimator,
		Metrics:       testMetrics,
		Logger:        logger,
		EnableCORS:    true,
		MaxBatchItems: 3,
	})
}

func postJSON(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func envelope(t *testing.T, rec *httptest.ResponseRecorder) httputil.Response {
	t.Helper()
	var resp httputil.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func samplePage() map[string]any {
	return map[string]any{
		"elements": []domain.DOMElement{
			{
				ID:               "cta-demo",
				TagName:          "button",
				Text:             "Book a Demo",
				HasButtonStyling: true,
				IsVisible:        true,
				IsInteractive:    true,
				IsAboveFold:      true,
				Coordinates:      domain.Coordinates{X: 300, Y: 280, Width: 180, Height: 48},
			},
			{
				ID:            "nav-docs",
				TagName:       "a",
				Text:          "Docs",
				Href:          "/docs",
				IsVisible:     true,
				IsInteractive: true,
				IsAboveFold:   true,
				Coordinates:   domain.Coordinates{X: 500, Y: 20, Width: 60, Height: 24},
			},
		},
		"context": domain.PageContext{
			URL:              "https://example-saas.io/demo",
			TotalImpressions: 1200,
			TrafficSource:    domain.TrafficPaid,
			DeviceType:       domain.DeviceDesktop,
			Industry:         domain.IndustrySaaS,
			HasSSL:           true,
		},
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	resp := envelope(t, rec)
	assert.True(t, resp.Success)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "healthy", data["status"])
	assert.Equal(t, "clickwise-api", data["service"])
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	// Drive one request through the logging middleware so the request
	// counter has at least one labeled child to export.
	warm := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(httptest.NewRecorder(), warm)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "clickwise_test_http_requests_total")
}

func TestPredictEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/api/v1/predict", samplePage())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Success bool               `json:"success"`
		Data    *prediction.Report `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Data)
	assert.Len(t, resp.Data.Predictions, 2)
	assert.Equal(t, prediction.EngineVersion, resp.Data.Metadata.EngineVersion)
	assert.Equal(t, "cta-demo", resp.Data.Metadata.PrimaryCTAID)
}

func TestPredictEndpoint_MalformedJSON(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/predict", strings.NewReader(`{"elements":`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := envelope(t, rec)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, domain.ErrCodeValidation, resp.Error.Code)
}

func TestPredictEndpoint_NoElements(t *testing.T) {
	router := newTestRouter(t)

	page := samplePage()
	page["elements"] = []domain.DOMElement{}
	rec := postJSON(t, router, "/api/v1/predict", page)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := envelope(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, domain.ErrCodeNoElements, resp.Error.Code)
}

func TestBatchEndpoint(t *testing.T) {
	router := newTestRouter(t)

	page := samplePage()
	body := map[string]any{
		"items": []map[string]any{
			{"name": "home", "elements": page["elements"], "context": page["context"]},
			{"name": "broken", "elements": []domain.DOMElement{}, "context": page["context"]},
		},
	}
	rec := postJSON(t, router, "/api/v1/predict/batch", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Success bool                     `json:"success"`
		Data    []prediction.BatchResult `json:"data"`
		Meta    *httputil.Meta           `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 2)
	assert.False(t, resp.Data[0].Degraded)
	assert.True(t, resp.Data[1].Degraded)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 2, resp.Meta.Count)
}

func TestBatchEndpoint_SizeLimit(t *testing.T) {
	router := newTestRouter(t)

	page := samplePage()
	item := map[string]any{"elements": page["elements"], "context": page["context"]}
	body := map[string]any{
		"items": []map[string]any{item, item, item, item},
	}
	rec := postJSON(t, router, "/api/v1/predict/batch", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := envelope(t, rec)
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Message, "batch size exceeds limit of 3")
}

func TestBatchEndpoint_EmptyItems(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/api/v1/predict/batch", map[string]any{"items": []any{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCPCEstimateEndpoint(t *testing.T) {
	router := newTestRouter(t)

	body := map[string]any{
		"context": domain.PageContext{
			URL:           "https://smithlawgroup.com/consult",
			TrafficSource: domain.TrafficPaid,
			DeviceType:    domain.DeviceDesktop,
		},
	}
	rec := postJSON(t, router, "/api/v1/cpc/estimate", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Estimate cpc.Estimate       `json:"estimate"`
			Context  domain.PageContext `json:"context"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, domain.IndustryLegal, resp.Data.Context.Industry)
	assert.GreaterOrEqual(t, resp.Data.Estimate.EstimatedCPC, cpc.BaseCPC)
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/predict", nil)
	req.Header.Set("Origin", "https://dashboard.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
