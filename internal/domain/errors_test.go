package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	err := NewError(ErrCodeValidation, "bad input", http.StatusBadRequest)
	if got := err.Error(); got != "[VALIDATION_ERROR] bad input" {
		t.Errorf("Error() = %v", got)
	}

	withCause := err.WithCause(errors.New("boom"))
	if got := withCause.Error(); got != "[VALIDATION_ERROR] bad input: boom" {
		t.Errorf("Error() with cause = %v", got)
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := ErrPredictionFailed("scoring", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if err.Unwrap() != cause {
		t.Errorf("Unwrap() = %v, want %v", err.Unwrap(), cause)
	}
}

func TestAppError_IsMatchesOnCode(t *testing.T) {
	a := ErrNoElements()
	b := ErrNoElements().WithDetails("different details")

	if !errors.Is(a, b) {
		t.Error("two errors with the same code should match")
	}
	if errors.Is(a, ErrMissingPrimaryCTA()) {
		t.Error("errors with different codes should not match")
	}
}

func TestAppError_ErrorsAsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("pipeline: %w", ErrMissingPrimaryCTA())

	var appErr *AppError
	if !errors.As(wrapped, &appErr) {
		t.Fatal("errors.As should unwrap the AppError")
	}
	if appErr.Code != ErrCodeMissingPrimaryCTA {
		t.Errorf("Code = %v, want %v", appErr.Code, ErrCodeMissingPrimaryCTA)
	}
	if appErr.HTTPStatus != http.StatusUnprocessableEntity {
		t.Errorf("HTTPStatus = %v, want 422", appErr.HTTPStatus)
	}
}

func TestAppError_WithMetadata(t *testing.T) {
	err := ErrValidationField("elements", "at least one element is required")

	if err.Metadata["field"] != "elements" {
		t.Errorf("Metadata[field] = %v, want elements", err.Metadata["field"])
	}

	err.WithMetadata("limit", 100)
	if err.Metadata["limit"] != 100 {
		t.Errorf("Metadata[limit] = %v, want 100", err.Metadata["limit"])
	}
}

func TestAppError_ToJSON(t *testing.T) {
	err := ErrNoElements().WithRequestID("req-42")
	out := string(err.ToJSON())

	if !strings.Contains(out, `"code":"NO_ELEMENTS"`) {
		t.Errorf("ToJSON() missing code: %s", out)
	}
	if !strings.Contains(out, `"request_id":"req-42"`) {
		t.Errorf("ToJSON() missing request id: %s", out)
	}
}

func TestErrConstructors_Statuses(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   string
		status int
	}{
		{"validation", ErrValidation("x"), ErrCodeValidation, http.StatusBadRequest},
		{"internal", ErrInternal(""), ErrCodeInternal, http.StatusInternalServerError},
		{"prediction failed", ErrPredictionFailed("waste", nil), ErrCodePredictionFailed, http.StatusInternalServerError},
		{"missing primary CTA", ErrMissingPrimaryCTA(), ErrCodeMissingPrimaryCTA, http.StatusUnprocessableEntity},
		{"no elements", ErrNoElements(), ErrCodeNoElements, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %v, want %v", tt.err.Code, tt.code)
			}
			if tt.err.HTTPStatus != tt.status {
				t.Errorf("HTTPStatus = %v, want %v", tt.err.HTTPStatus, tt.status)
			}
			if tt.err.Timestamp.IsZero() {
				t.Error("Timestamp should be set")
			}
		})
	}
}

func TestErrInternal_DefaultMessage(t *testing.T) {
	if got := ErrInternal("").Message; got != "Internal server error" {
		t.Errorf("Message = %v", got)
	}
	if got := ErrInternal("db down").Message; got != "db down" {
		t.Errorf("Message = %v", got)
	}
}
