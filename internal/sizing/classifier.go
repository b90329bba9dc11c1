package sizing

import (
	"math"
	"sort"

	"github.com/bkerly/Mask-Fit/internal/niosh"
)

// Classification thresholds (configurable for tuning)
const (
	// PlausibleMin and PlausibleMax bound credible facial dimensions (mm)
	PlausibleMin = 50.0
	PlausibleMax = 300.0

	// Direct matches map distance onto [70, 99]: a measurement at the
	// centre of both ranges scores 99, a worst-case in-range corner 70
	directConfidenceBase  = 99.0
	directConfidenceSlope = 29.0
	directConfidenceFloor = 70.0

	// Fallback matches map distance onto [40, 69], always strictly below
	// any direct match
	fallbackConfidenceBase  = 69.0
	fallbackConfidenceSlope = 12.0
	fallbackConfidenceFloor = 40.0

	// LowConfidenceThreshold marks results that should carry neighboring
	// category suggestions
	LowConfidenceThreshold = 60.0
)

// ReasonImplausible is the reason code attached to unclassified results.
const ReasonImplausible = "implausible_measurement"

// MatchType records which classification path produced a result.
type MatchType string

const (
	// MatchDirect means both dimensions fell inside the category's ranges
	MatchDirect MatchType = "direct"
	// MatchFallback means no category contained both dimensions and the
	// nearest one was chosen
	MatchFallback MatchType = "fallback"
	// MatchNone means the measurement was not classified at all
	MatchNone MatchType = "none"
)

// ClassificationResult holds the outcome of classifying one measurement.
type ClassificationResult struct {
	Category   niosh.Category             `json:"category"`
	Confidence float64                    `json:"confidence"`
	Match      MatchType                  `json:"match"`
	Reason     string                     `json:"reason,omitempty"`
	Distances  map[niosh.Category]float64 `json:"distances"`
}

// clampConfidence clamps a confidence value to the range [min, max].
func clampConfidence(value, min, max float64) float64 {
	if value > max {
		return max
	}
	if value < min {
		return min
	}
	return value
}

// Classifier assigns measurements to NIOSH categories. Classification is
// pure; a result depends only on the measurement and the profile data.
type Classifier struct {
	profiles *niosh.ProfileSet
}

// NewClassifier creates a classifier over a validated profile set.
func NewClassifier(profiles *niosh.ProfileSet) *Classifier {
	return &Classifier{profiles: profiles}
}

// Classify maps a measurement onto the closest NIOSH category.
//
// Implausible measurements yield an unclassified result with a reason code;
// that outcome is data, not an error. Otherwise a direct match (both
// dimensions inside a category's ranges) wins, and when no category contains
// the measurement the nearest one is chosen as a fallback with reduced
// confidence. Exact distance ties resolve by the fixed category priority
// order.
func (c *Classifier) Classify(m Measurement) ClassificationResult {
	distances := c.distances(m)

	if !m.Plausible() {
		return ClassificationResult{
			Category:  niosh.CategoryUnclassified,
			Match:     MatchNone,
			Reason:    ReasonImplausible,
			Distances: distances,
		}
	}

	if best, ok := c.bestDirect(m, distances); ok {
		d := distances[best]
		return ClassificationResult{
			Category:   best,
			Confidence: clampConfidence(directConfidenceBase-directConfidenceSlope*d, directConfidenceFloor, directConfidenceBase),
			Match:      MatchDirect,
			Distances:  distances,
		}
	}

	best := nearestCategory(distances)
	d := distances[best]
	return ClassificationResult{
		Category:   best,
		Confidence: clampConfidence(fallbackConfidenceBase-fallbackConfidenceSlope*d, fallbackConfidenceFloor, fallbackConfidenceBase),
		Match:      MatchFallback,
		Distances:  distances,
	}
}

// distances computes the weighted distance from the measurement to every
// category centre. Each dimension's deviation is expressed in survey
// standard deviation units, which keeps categories with narrow and wide
// ranges comparable on one scale. Zero means dead centre.
func (c *Classifier) distances(m Measurement) map[niosh.Category]float64 {
	survey := c.profiles.Survey()
	out := make(map[niosh.Category]float64, len(niosh.PriorityOrder))
	for _, p := range c.profiles.Profiles() {
		db := math.Abs(m.BizygomaticBreadth-p.Breadth.Mid()) / survey.BreadthSD
		dl := math.Abs(m.MentonSellion-p.Length.Mid()) / survey.LengthSD
		out[p.Category] = db + dl
	}
	return out
}

// bestDirect finds the minimal-distance category whose breadth and length
// ranges both contain the measurement. Iterating in priority order with a
// strict comparison keeps ties deterministic.
func (c *Classifier) bestDirect(m Measurement, distances map[niosh.Category]float64) (niosh.Category, bool) {
	var best niosh.Category
	bestDist := math.Inf(1)
	found := false
	for _, p := range c.profiles.Profiles() {
		if !p.Breadth.Contains(m.BizygomaticBreadth) || !p.Length.Contains(m.MentonSellion) {
			continue
		}
		if d := distances[p.Category]; d < bestDist {
			best = p.Category
			bestDist = d
			found = true
		}
	}
	return best, found
}

// nearestCategory returns the minimal-distance category, ties resolved by
// priority order.
func nearestCategory(distances map[niosh.Category]float64) niosh.Category {
	var best niosh.Category
	bestDist := math.Inf(1)
	for _, category := range niosh.PriorityOrder {
		d, ok := distances[category]
		if !ok {
			continue
		}
		if d < bestDist {
			best = category
			bestDist = d
		}
	}
	return best
}

// Neighbors returns the n categories nearest to the measurement according to
// the result's distance map, excluding the classified category itself. Ties
// resolve in priority order.
func Neighbors(result ClassificationResult, n int) []niosh.Category {
	candidates := make([]niosh.Category, 0, len(niosh.PriorityOrder))
	for _, category := range niosh.PriorityOrder {
		if category == result.Category {
			continue
		}
		if _, ok := result.Distances[category]; ok {
			candidates = append(candidates, category)
		}
	}

	// Stable sort keeps priority order for equal distances.
	sort.SliceStable(candidates, func(i, j int) bool {
		return result.Distances[candidates[i]] < result.Distances[candidates[j]]
	})

	if n > len(candidates) {
		n = len(candidates)
	}
	return candidates[:n]
}
