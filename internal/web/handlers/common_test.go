package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthCheck(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()

	HealthCheck(rec, req)

	assertStatusCode(t, rec, http.StatusOK)
	assertContentType(t, rec, "application/json")

	var result map[string]string
	parseJSONResponse(t, rec, &result)

	if result["status"] != "ok" {
		t.Errorf("expected status 'ok', got '%s'", result["status"])
	}
}

func TestSanitizeForLog(t *testing.T) {
	input := "line1\nline2\rline3"
	if got := sanitizeForLog(input); got != "line1line2line3" {
		t.Errorf("expected newlines stripped, got '%s'", got)
	}
}
