package sizing

import (
	"github.com/bkerly/Mask-Fit/internal/catalog"
	"github.com/bkerly/Mask-Fit/internal/constants"
	"github.com/bkerly/Mask-Fit/internal/niosh"
)

// Suggestion pairs a neighboring category with its best catalog entry.
// Suggestions accompany low-confidence results so the fitter can try the
// adjacent size when the primary picks do not seal.
type Suggestion struct {
	Category niosh.Category         `json:"category"`
	Mask     catalog.MaskDescriptor `json:"mask"`
}

// Recommendation is the ranked outcome for one classification result.
type Recommendation struct {
	Masks     []catalog.MaskDescriptor `json:"masks"`
	Secondary []Suggestion             `json:"secondary,omitempty"`
}

// Recommender ranks catalog entries for classification results.
type Recommender struct {
	catalog *catalog.Catalog
}

// NewRecommender creates a recommender over a validated catalog.
func NewRecommender(c *catalog.Catalog) *Recommender {
	return &Recommender{catalog: c}
}

// Recommend returns up to topN masks for the result's category, preserving
// catalog order. topN <= 0 falls back to the default.
//
// An unclassified result or an empty catalog bucket yields an empty list,
// never an error. A non-empty available filter (mask IDs) restricts the
// primary list; when the filter would empty it the unfiltered bucket is used
// instead, so an inventory with no match still gets guidance.
//
// Results below the low-confidence threshold additionally carry the top
// entry of each of the two nearest neighboring categories as secondary
// suggestions.
func (r *Recommender) Recommend(result ClassificationResult, topN int, available []string) Recommendation {
	if topN <= 0 {
		topN = constants.DefaultTopN
	}

	var rec Recommendation
	if result.Category == niosh.CategoryUnclassified {
		return rec
	}

	bucket := r.catalog.Masks(result.Category)
	if len(bucket) == 0 {
		return rec
	}

	primary := filterAvailable(bucket, available)
	if len(primary) == 0 {
		primary = bucket
	}
	if len(primary) > topN {
		primary = primary[:topN]
	}
	rec.Masks = primary

	if result.Match != MatchNone && result.Confidence < LowConfidenceThreshold {
		rec.Secondary = r.secondarySuggestions(result)
	}

	return rec
}

// filterAvailable keeps masks whose ID appears in the available set. An
// empty set keeps everything.
func filterAvailable(masks []catalog.MaskDescriptor, available []string) []catalog.MaskDescriptor {
	if len(available) == 0 {
		return masks
	}
	allowed := make(map[string]bool, len(available))
	for _, id := range available {
		allowed[id] = true
	}
	var out []catalog.MaskDescriptor
	for _, m := range masks {
		if allowed[m.ID()] {
			out = append(out, m)
		}
	}
	return out
}

// secondarySuggestions picks the top catalog entry of each nearest neighbor
// category. Neighbors with empty buckets are skipped.
func (r *Recommender) secondarySuggestions(result ClassificationResult) []Suggestion {
	var out []Suggestion
	for _, neighbor := range Neighbors(result, len(niosh.PriorityOrder)) {
		bucket := r.catalog.Masks(neighbor)
		if len(bucket) == 0 {
			continue
		}
		out = append(out, Suggestion{Category: neighbor, Mask: bucket[0]})
		if len(out) == constants.SecondaryNeighborCount {
			break
		}
	}
	return out
}
