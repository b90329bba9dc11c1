package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bkerly/Mask-Fit/internal/niosh"
)

func TestCatalogList(t *testing.T) {
	_, cat := loadReferenceData(t)
	h := NewCatalogHandler(cat)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	assertStatusCode(t, rec, http.StatusOK)

	var resp []CategoryMasks
	parseJSONResponse(t, rec, &resp)

	if len(resp) != 5 {
		t.Fatalf("expected 5 catalog buckets, got %d", len(resp))
	}
	if resp[0].Category != niosh.CategorySmall {
		t.Errorf("expected small bucket first, got '%s'", resp[0].Category)
	}
	for _, bucket := range resp {
		if len(bucket.Masks) == 0 {
			t.Errorf("expected masks in bucket '%s'", bucket.Category)
		}
	}
}

func TestCatalogGet(t *testing.T) {
	_, cat := loadReferenceData(t)
	h := NewCatalogHandler(cat)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/medium", nil)
	req = requestWithChiParams(req, map[string]string{"category": "medium"})
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	assertStatusCode(t, rec, http.StatusOK)

	var resp CategoryMasks
	parseJSONResponse(t, rec, &resp)

	if resp.Category != niosh.CategoryMedium {
		t.Errorf("expected category 'medium', got '%s'", resp.Category)
	}
	if len(resp.Masks) == 0 {
		t.Fatal("expected masks for medium category")
	}
	if resp.Masks[0].Brand == "" || resp.Masks[0].Model == "" {
		t.Errorf("expected complete mask descriptor, got %+v", resp.Masks[0])
	}
}

func TestCatalogGet_UnknownCategory(t *testing.T) {
	_, cat := loadReferenceData(t)
	h := NewCatalogHandler(cat)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/gigantic", nil)
	req = requestWithChiParams(req, map[string]string{"category": "gigantic"})
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	assertStatusCode(t, rec, http.StatusNotFound)
	assertJSONError(t, rec, "unknown category")
}
