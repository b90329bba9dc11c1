package headform

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/bkerly/Mask-Fit/internal/niosh"
)

// DefaultReferenceFile is where AnalyzeDir results are written unless the
// caller picks another path.
const DefaultReferenceFile = "headform_references.json"

// Reference holds one analyzed headform together with how its dimensions
// line up with the matching category profile.
type Reference struct {
	Category       niosh.Category
	Path           string
	Measurements   Measurements
	BreadthInRange bool
	LengthInRange  bool
}

// FileName returns the expected STL file name for a category headform,
// e.g. "medium_symmetry.stl".
func FileName(c niosh.Category) string {
	return string(c) + "_symmetry.stl"
}

// AnalyzeDir measures every category headform found in dir. Headforms
// are looked up by their conventional file names in priority order;
// missing files are skipped so a partial set still produces data. The
// returned error is non-nil only when no headform at all could be read.
func AnalyzeDir(dir string, profiles *niosh.ProfileSet) ([]Reference, error) {
	var refs []Reference
	var firstErr error

	for _, profile := range profiles.Profiles() {
		path := filepath.Join(dir, FileName(profile.Category))
		if _, err := os.Stat(path); err != nil {
			continue
		}

		mesh, err := ParseFile(path)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		m := mesh.Measure()
		refs = append(refs, Reference{
			Category:       profile.Category,
			Path:           path,
			Measurements:   m,
			BreadthInRange: profile.Breadth.Contains(m.BizygomaticBreadth),
			LengthInRange:  profile.Length.Contains(m.MentonSellion),
		})
	}

	if len(refs) == 0 {
		if firstErr != nil {
			return nil, firstErr
		}
		return nil, fmt.Errorf("no headform STL files found in %s", dir)
	}
	return refs, nil
}

// MissingCategories reports which categories have no analyzed headform,
// in priority order.
func MissingCategories(refs []Reference) []niosh.Category {
	seen := make(map[niosh.Category]bool, len(refs))
	for _, ref := range refs {
		seen[ref.Category] = true
	}

	var missing []niosh.Category
	for _, c := range niosh.PriorityOrder {
		if !seen[c] {
			missing = append(missing, c)
		}
	}
	return missing
}

// WriteReferenceJSON writes the analyzed measurements as a JSON file
// keyed by category, dimensions rounded to a tenth of a millimetre.
func WriteReferenceJSON(path string, refs []Reference) error {
	out := make(map[niosh.Category]Measurements, len(refs))
	for _, ref := range refs {
		m := ref.Measurements
		m.BizygomaticBreadth = round1(m.BizygomaticBreadth)
		m.MentonSellion = round1(m.MentonSellion)
		m.FaceWidth = round1(m.FaceWidth)
		m.FaceLength = round1(m.FaceLength)
		m.FaceDepth = round1(m.FaceDepth)
		out[ref.Category] = m
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding reference data: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing reference data: %w", err)
	}
	return nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
