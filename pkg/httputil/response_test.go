package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clickwise/clickwise/internal/domain"
)

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestJSON_SuccessFlagTracksStatus(t *testing.T) {
	tests := []struct {
		status  int
		success bool
	}{
		{http.StatusOK, true},
		{http.StatusCreated, true},
		{http.StatusBadRequest, false},
		{http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		JSON(rec, tt.status, map[string]string{"k": "v"})

		assert.Equal(t, tt.status, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		resp := decodeResponse(t, rec)
		assert.Equal(t, tt.success, resp.Success, "status %d", tt.status)
	}
}

func TestJSONWithMeta(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONWithMeta(rec, http.StatusOK, []int{1, 2, 3}, &Meta{RequestID: "req-1", Count: 3})

	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, "req-1", resp.Meta.RequestID)
	assert.Equal(t, 3, resp.Meta.Count)
}

func TestJSONError(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONError(rec, http.StatusNotFound, domain.ErrCodeNotFound, "no such analysis")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, domain.ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "no such analysis", resp.Error.Message)
}

func TestErrorFromDomain_AppError(t *testing.T) {
	rec := httptest.NewRecorder()
	err := domain.ErrNoElements().WithDetails("all elements were filtered out")
	ErrorFromDomain(rec, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, domain.ErrCodeNoElements, resp.Error.Code)
	assert.Equal(t, "all elements were filtered out", resp.Error.Details)
}

func TestErrorFromDomain_WrappedAppError(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := errors.Join(errors.New("outer"), domain.ErrMissingPrimaryCTA())
	ErrorFromDomain(rec, wrapped)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, domain.ErrCodeMissingPrimaryCTA, resp.Error.Code)
}

func TestErrorFromDomain_UnknownError(t *testing.T) {
	rec := httptest.NewRecorder()
	ErrorFromDomain(rec, errors.New("disk on fire"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, domain.ErrCodeInternal, resp.Error.Code)
	// The raw error text must not leak to the client.
	assert.NotContains(t, resp.Error.Message, "disk on fire")
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("valid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ok"}`))
		var p payload
		require.NoError(t, DecodeJSON(req, &p))
		assert.Equal(t, "ok", p.Name)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
		var p payload
		err := DecodeJSON(req, &p)
		require.Error(t, err)

		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domain.ErrCodeValidation, appErr.Code)
	})

	t.Run("unknown fields rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ok","bogus":1}`))
		var p payload
		require.Error(t, DecodeJSON(req, &p))
	})
}
