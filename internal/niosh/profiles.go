// Package niosh provides the NIOSH bivariate panel reference data: the five
// face size categories with their bizygomatic breadth and menton-sellion
// length ranges, plus population survey statistics for percentile estimates.
package niosh

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed profiles.yaml
var profilesYAML []byte

// Category identifies a NIOSH face size category.
type Category string

const (
	CategorySmall      Category = "small"
	CategoryMedium     Category = "medium"
	CategoryLarge      Category = "large"
	CategoryLongNarrow Category = "long_narrow"
	CategoryShortWide  Category = "short_wide"

	// CategoryUnclassified marks measurements outside the plausible window.
	// It never appears in a ProfileSet.
	CategoryUnclassified Category = "unclassified"
)

// PriorityOrder is the fixed category order used for deterministic
// tie-breaking and for stable listing in CLI and API output.
var PriorityOrder = []Category{
	CategorySmall,
	CategoryMedium,
	CategoryLarge,
	CategoryLongNarrow,
	CategoryShortWide,
}

// Display returns a human readable form of the category ("long_narrow" -> "Long Narrow").
func (c Category) Display() string {
	words := strings.Split(string(c), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Range is an inclusive interval in millimetres.
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Contains reports whether v falls inside the range, bounds included.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Mid returns the centre of the range.
func (r Range) Mid() float64 {
	return (r.Min + r.Max) / 2
}

// Width returns the span of the range.
func (r Range) Width() float64 {
	return r.Max - r.Min
}

// CategoryProfile describes one NIOSH face size category.
type CategoryProfile struct {
	Category    Category `yaml:"id" json:"category"`
	Description string   `yaml:"description" json:"description"`
	Percentile  string   `yaml:"percentile" json:"percentile"`
	Breadth     Range    `yaml:"breadth" json:"breadth"`
	Length      Range    `yaml:"length" json:"length"`
}

// ProfileSet is an immutable, validated collection of category profiles in
// priority order.
type ProfileSet struct {
	profiles []CategoryProfile
	byID     map[Category]CategoryProfile
	survey   SurveyStats
}

// profilesFile mirrors the YAML schema of profiles.yaml.
type profilesFile struct {
	Survey     SurveyStats       `yaml:"survey"`
	Categories []CategoryProfile `yaml:"categories"`
}

// Load returns the NIOSH profile set. The embedded data ships with the
// binary; the MASKFIT_PROFILES environment variable points at an external
// YAML file that replaces it, so reference data can be swapped without a
// code change.
func Load() (*ProfileSet, error) {
	if path := os.Getenv("MASKFIT_PROFILES"); path != "" {
		return LoadFile(path)
	}
	set, err := parseProfiles(profilesYAML)
	if err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to parse embedded profiles.yaml: " + err.Error())
	}
	return set, nil
}

// LoadFile loads and validates a profile set from an external YAML file.
func LoadFile(path string) (*ProfileSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profiles file: %w", err)
	}
	set, err := parseProfiles(data)
	if err != nil {
		return nil, fmt.Errorf("loading profiles from %s: %w", path, err)
	}
	return set, nil
}

func parseProfiles(data []byte) (*ProfileSet, error) {
	var file profilesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing profiles YAML: %w", err)
	}
	if err := validateProfiles(&file); err != nil {
		return nil, err
	}

	byID := make(map[Category]CategoryProfile, len(file.Categories))
	for _, p := range file.Categories {
		byID[p.Category] = p
	}

	// Store profiles in priority order regardless of file order.
	ordered := make([]CategoryProfile, 0, len(PriorityOrder))
	for _, c := range PriorityOrder {
		ordered = append(ordered, byID[c])
	}

	return &ProfileSet{
		profiles: ordered,
		byID:     byID,
		survey:   file.Survey,
	}, nil
}

// validateProfiles checks the parsed file for malformed reference data:
// unknown, duplicate or missing categories, inverted or empty ranges, and
// unusable survey statistics. Any failure rejects the whole file.
func validateProfiles(file *profilesFile) error {
	known := make(map[Category]bool, len(PriorityOrder))
	for _, c := range PriorityOrder {
		known[c] = true
	}

	seen := make(map[Category]bool, len(file.Categories))
	for _, p := range file.Categories {
		if !known[p.Category] {
			return fmt.Errorf("unknown category %q", p.Category)
		}
		if seen[p.Category] {
			return fmt.Errorf("duplicate category %q", p.Category)
		}
		seen[p.Category] = true

		if err := validateRange("breadth", p.Category, p.Breadth); err != nil {
			return err
		}
		if err := validateRange("length", p.Category, p.Length); err != nil {
			return err
		}
	}

	for _, c := range PriorityOrder {
		if !seen[c] {
			return fmt.Errorf("missing category %q", c)
		}
	}

	if file.Survey.BreadthSD <= 0 || file.Survey.LengthSD <= 0 {
		return fmt.Errorf("survey standard deviations must be positive (breadth %.2f, length %.2f)",
			file.Survey.BreadthSD, file.Survey.LengthSD)
	}

	return nil
}

func validateRange(name string, c Category, r Range) error {
	if r.Min <= 0 || r.Max <= 0 {
		return fmt.Errorf("category %q: %s range must be positive, got [%.1f, %.1f]", c, name, r.Min, r.Max)
	}
	// Real panel ranges are strictly widthed; equal bounds mean bad data.
	if r.Min >= r.Max {
		return fmt.Errorf("category %q: %s range is inverted or empty, got [%.1f, %.1f]", c, name, r.Min, r.Max)
	}
	return nil
}

// Profiles returns all category profiles in priority order.
func (s *ProfileSet) Profiles() []CategoryProfile {
	out := make([]CategoryProfile, len(s.profiles))
	copy(out, s.profiles)
	return out
}

// Get looks up a single category profile.
func (s *ProfileSet) Get(c Category) (CategoryProfile, bool) {
	p, ok := s.byID[c]
	return p, ok
}

// Survey returns the population survey statistics shipped with the profiles.
func (s *ProfileSet) Survey() SurveyStats {
	return s.survey
}
