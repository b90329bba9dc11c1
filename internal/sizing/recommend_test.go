package sizing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bkerly/Mask-Fit/internal/catalog"
	"github.com/bkerly/Mask-Fit/internal/constants"
	"github.com/bkerly/Mask-Fit/internal/niosh"
)

func loadCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return c
}

func TestRecommend_DefaultTopN(t *testing.T) {
	c := NewClassifier(loadProfiles(t))
	r := NewRecommender(loadCatalog(t))

	result := c.Classify(Measurement{BizygomaticBreadth: 140, MentonSellion: 120, FaceWidth: 138, FaceHeight: 180})
	rec := r.Recommend(result, 0, nil)

	if len(rec.Masks) != constants.DefaultTopN {
		t.Fatalf("expected %d masks, got %d", constants.DefaultTopN, len(rec.Masks))
	}
	top := rec.Masks[0]
	if top.Brand != "3M" || top.Model != "8210 N95" || top.Size != "Regular" {
		t.Errorf("unexpected top mask: %s", top.ID())
	}
	for i := 1; i < len(rec.Masks); i++ {
		if rec.Masks[i].FitScore > rec.Masks[i-1].FitScore {
			t.Errorf("masks not best-first: %s (%d) after %s (%d)",
				rec.Masks[i].ID(), rec.Masks[i].FitScore, rec.Masks[i-1].ID(), rec.Masks[i-1].FitScore)
		}
	}
	if rec.Secondary != nil {
		t.Errorf("expected no secondary suggestions for a confident result, got %d", len(rec.Secondary))
	}
}

func TestRecommend_TopNLimits(t *testing.T) {
	c := NewClassifier(loadProfiles(t))
	r := NewRecommender(loadCatalog(t))
	result := c.Classify(Measurement{BizygomaticBreadth: 140, MentonSellion: 120, FaceWidth: 138, FaceHeight: 180})

	tests := []struct {
		name string
		topN int
		want int
	}{
		{"one", 1, 1},
		{"two", 2, 2},
		{"more than bucket", 10, 4},
		{"negative falls back to default", -1, constants.DefaultTopN},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := r.Recommend(result, tc.topN, nil)
			if len(rec.Masks) != tc.want {
				t.Errorf("expected %d masks, got %d", tc.want, len(rec.Masks))
			}
		})
	}
}

func TestRecommend_UnclassifiedYieldsNothing(t *testing.T) {
	c := NewClassifier(loadProfiles(t))
	r := NewRecommender(loadCatalog(t))

	result := c.Classify(Measurement{BizygomaticBreadth: 5, MentonSellion: 110, FaceWidth: 128, FaceHeight: 160})
	rec := r.Recommend(result, 3, nil)

	if len(rec.Masks) != 0 {
		t.Errorf("expected no masks for unclassified result, got %d", len(rec.Masks))
	}
	if len(rec.Secondary) != 0 {
		t.Errorf("expected no secondary suggestions for unclassified result, got %d", len(rec.Secondary))
	}
}

func TestRecommend_AvailableFilter(t *testing.T) {
	c := NewClassifier(loadProfiles(t))
	r := NewRecommender(loadCatalog(t))
	result := c.Classify(Measurement{BizygomaticBreadth: 140, MentonSellion: 120, FaceWidth: 138, FaceHeight: 180})

	rec := r.Recommend(result, 3, []string{"Moldex 2200 N95 - Medium/Large"})

	if len(rec.Masks) != 1 {
		t.Fatalf("expected 1 mask after filtering, got %d", len(rec.Masks))
	}
	if rec.Masks[0].ID() != "Moldex 2200 N95 - Medium/Large" {
		t.Errorf("unexpected mask: %s", rec.Masks[0].ID())
	}
}

func TestRecommend_FilterWithNoMatchFallsBack(t *testing.T) {
	c := NewClassifier(loadProfiles(t))
	r := NewRecommender(loadCatalog(t))
	result := c.Classify(Measurement{BizygomaticBreadth: 140, MentonSellion: 120, FaceWidth: 138, FaceHeight: 180})

	// Nothing in stock matches medium, so the unfiltered list comes back.
	rec := r.Recommend(result, 3, []string{"Acme FaceSaver - XL"})

	if len(rec.Masks) != constants.DefaultTopN {
		t.Fatalf("expected fallback to full bucket, got %d masks", len(rec.Masks))
	}
	if rec.Masks[0].Brand != "3M" {
		t.Errorf("unexpected top mask after fallback: %s", rec.Masks[0].ID())
	}
}

func TestRecommend_LowConfidenceAddsSecondary(t *testing.T) {
	c := NewClassifier(loadProfiles(t))
	r := NewRecommender(loadCatalog(t))

	// Fallback result well below the low-confidence threshold.
	result := c.Classify(Measurement{BizygomaticBreadth: 125, MentonSellion: 120, FaceWidth: 125, FaceHeight: 170})
	if result.Confidence >= LowConfidenceThreshold {
		t.Fatalf("expected a low-confidence result, got %.1f", result.Confidence)
	}

	rec := r.Recommend(result, 3, nil)

	if len(rec.Secondary) != constants.SecondaryNeighborCount {
		t.Fatalf("expected %d secondary suggestions, got %d", constants.SecondaryNeighborCount, len(rec.Secondary))
	}
	if rec.Secondary[0].Category != niosh.CategoryMedium {
		t.Errorf("expected nearest neighbor medium, got %q", rec.Secondary[0].Category)
	}
	if rec.Secondary[1].Category != niosh.CategoryLongNarrow {
		t.Errorf("expected second neighbor long_narrow, got %q", rec.Secondary[1].Category)
	}
	for _, s := range rec.Secondary {
		if s.Category == result.Category {
			t.Errorf("secondary suggestion repeats the classified category %q", s.Category)
		}
		if s.Mask.Brand == "" {
			t.Errorf("secondary suggestion for %q has no mask", s.Category)
		}
	}
}

func TestRecommend_ThresholdBoundary(t *testing.T) {
	r := NewRecommender(loadCatalog(t))

	distances := map[niosh.Category]float64{
		niosh.CategorySmall:      1.0,
		niosh.CategoryMedium:     0.2,
		niosh.CategoryLarge:      2.0,
		niosh.CategoryLongNarrow: 3.0,
		niosh.CategoryShortWide:  4.0,
	}

	tests := []struct {
		name          string
		confidence    float64
		match         MatchType
		wantSecondary bool
	}{
		{"just below threshold", LowConfidenceThreshold - 0.1, MatchFallback, true},
		{"exactly at threshold", LowConfidenceThreshold, MatchFallback, false},
		{"above threshold", LowConfidenceThreshold + 5, MatchFallback, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := ClassificationResult{
				Category:   niosh.CategoryMedium,
				Confidence: tc.confidence,
				Match:      tc.match,
				Distances:  distances,
			}
			rec := r.Recommend(result, 3, nil)
			if got := len(rec.Secondary) > 0; got != tc.wantSecondary {
				t.Errorf("secondary presence = %v, want %v", got, tc.wantSecondary)
			}
		})
	}
}

func TestRecommend_EmptyNeighborBucketsSkipped(t *testing.T) {
	// A catalog with stock for small and large only; the long_narrow and
	// medium neighbors have nothing to suggest.
	dir := t.TempDir()
	path := filepath.Join(dir, "masks.yaml")
	data := `small:
  - brand: "3M"
    model: "8210 N95"
    size: "Small"
    fit_score: 95
large:
  - brand: "MSA"
    model: "Advantage 200"
    size: "Large"
    fit_score: 92
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("writing catalog: %v", err)
	}
	cat, err := catalog.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	r := NewRecommender(cat)
	result := ClassificationResult{
		Category:   niosh.CategorySmall,
		Confidence: 45,
		Match:      MatchFallback,
		Distances: map[niosh.Category]float64{
			niosh.CategorySmall:      0.5,
			niosh.CategoryMedium:     1.0,
			niosh.CategoryLongNarrow: 1.5,
			niosh.CategoryLarge:      2.0,
			niosh.CategoryShortWide:  3.0,
		},
	}

	rec := r.Recommend(result, 3, nil)

	if len(rec.Secondary) != 1 {
		t.Fatalf("expected 1 secondary suggestion, got %d", len(rec.Secondary))
	}
	if rec.Secondary[0].Category != niosh.CategoryLarge {
		t.Errorf("expected large suggestion, got %q", rec.Secondary[0].Category)
	}
}

func TestRecommend_EmptyPrimaryBucket(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "masks.yaml")
	data := `small:
  - brand: "3M"
    model: "8210 N95"
    size: "Small"
    fit_score: 95
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("writing catalog: %v", err)
	}
	cat, err := catalog.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	r := NewRecommender(cat)
	result := ClassificationResult{
		Category:   niosh.CategoryShortWide,
		Confidence: 95,
		Match:      MatchDirect,
		Distances:  map[niosh.Category]float64{niosh.CategoryShortWide: 0.1},
	}

	rec := r.Recommend(result, 3, nil)
	if len(rec.Masks) != 0 {
		t.Errorf("expected no masks for an empty bucket, got %d", len(rec.Masks))
	}
	if len(rec.Secondary) != 0 {
		t.Errorf("expected no secondary suggestions, got %d", len(rec.Secondary))
	}
}
