package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bkerly/Mask-Fit/internal/niosh"
)

func TestProfilesList(t *testing.T) {
	profiles, _ := loadReferenceData(t)
	h := NewProfilesHandler(profiles)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profiles", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	assertStatusCode(t, rec, http.StatusOK)

	var resp ProfilesResponse
	parseJSONResponse(t, rec, &resp)

	if len(resp.Categories) != 5 {
		t.Fatalf("expected 5 categories, got %d", len(resp.Categories))
	}
	if resp.Categories[0].Category != niosh.CategorySmall {
		t.Errorf("expected small first, got '%s'", resp.Categories[0].Category)
	}
	if resp.Survey.BreadthMean == 0 || resp.Survey.LengthMean == 0 {
		t.Error("expected survey statistics in response")
	}
}

func TestProfilesGet(t *testing.T) {
	profiles, _ := loadReferenceData(t)
	h := NewProfilesHandler(profiles)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profiles/medium", nil)
	req = requestWithChiParams(req, map[string]string{"category": "medium"})
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	assertStatusCode(t, rec, http.StatusOK)

	var profile niosh.CategoryProfile
	parseJSONResponse(t, rec, &profile)

	if profile.Category != niosh.CategoryMedium {
		t.Errorf("expected category 'medium', got '%s'", profile.Category)
	}
	if profile.Breadth.Min >= profile.Breadth.Max {
		t.Errorf("expected a real breadth range, got %+v", profile.Breadth)
	}
}

func TestProfilesGet_UnknownCategory(t *testing.T) {
	profiles, _ := loadReferenceData(t)
	h := NewProfilesHandler(profiles)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profiles/gigantic", nil)
	req = requestWithChiParams(req, map[string]string{"category": "gigantic"})
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	assertStatusCode(t, rec, http.StatusNotFound)
	assertJSONError(t, rec, "unknown category")
}
