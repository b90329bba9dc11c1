package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bkerly/Mask-Fit/internal/protocol"
)

func TestProtocolGet(t *testing.T) {
	h := NewProtocolHandler(protocol.Load())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/protocol", nil)
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	assertStatusCode(t, rec, http.StatusOK)

	var resp protocol.SealCheck
	parseJSONResponse(t, rec, &resp)

	if len(resp.PreCheck) == 0 {
		t.Error("expected pre-check items in protocol")
	}
	if len(resp.Tests) != 2 {
		t.Fatalf("expected 2 pressure tests, got %d", len(resp.Tests))
	}
	for _, test := range resp.Tests {
		if len(test.Procedure) == 0 || len(test.OnFailure) == 0 {
			t.Errorf("expected complete pressure test, got %+v", test.ID)
		}
	}
}

func evaluateRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/protocol/evaluate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestProtocolEvaluate_Pass(t *testing.T) {
	h := NewProtocolHandler(protocol.Load())

	rec := httptest.NewRecorder()
	h.Evaluate(rec, evaluateRequest(`{"positive_pressure": "pass", "negative_pressure": "pass"}`))

	assertStatusCode(t, rec, http.StatusOK)

	var verdict protocol.Verdict
	parseJSONResponse(t, rec, &verdict)

	if verdict.Status != protocol.StatusPass {
		t.Errorf("expected status 'pass', got '%s'", verdict.Status)
	}
	if len(verdict.Guidance) == 0 {
		t.Error("expected guidance even for a passing check")
	}
}

func TestProtocolEvaluate_Failure(t *testing.T) {
	h := NewProtocolHandler(protocol.Load())

	rec := httptest.NewRecorder()
	h.Evaluate(rec, evaluateRequest(`{"positive_pressure": "pass", "negative_pressure": "fail"}`))

	assertStatusCode(t, rec, http.StatusOK)

	var verdict protocol.Verdict
	parseJSONResponse(t, rec, &verdict)

	if verdict.Status != protocol.StatusAdjust {
		t.Errorf("expected status 'adjust', got '%s'", verdict.Status)
	}
	if len(verdict.Guidance) == 0 {
		t.Error("expected remediation guidance for a failed test")
	}
}

func TestProtocolEvaluate_Incomplete(t *testing.T) {
	h := NewProtocolHandler(protocol.Load())

	rec := httptest.NewRecorder()
	h.Evaluate(rec, evaluateRequest(`{}`))

	assertStatusCode(t, rec, http.StatusOK)

	var verdict protocol.Verdict
	parseJSONResponse(t, rec, &verdict)

	if verdict.Status != protocol.StatusIncomplete {
		t.Errorf("expected status 'incomplete', got '%s'", verdict.Status)
	}
}

func TestProtocolEvaluate_UnknownOutcome(t *testing.T) {
	h := NewProtocolHandler(protocol.Load())

	rec := httptest.NewRecorder()
	h.Evaluate(rec, evaluateRequest(`{"positive_pressure": "maybe"}`))

	assertStatusCode(t, rec, http.StatusBadRequest)
}

func TestProtocolEvaluate_InvalidBody(t *testing.T) {
	h := NewProtocolHandler(protocol.Load())

	rec := httptest.NewRecorder()
	h.Evaluate(rec, evaluateRequest(`{broken`))

	assertStatusCode(t, rec, http.StatusBadRequest)
	assertJSONError(t, rec, errInvalidRequestBody)
}
