// Package catalog holds the respirator catalog: per-category mask
// descriptors ordered best-first.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/bkerly/Mask-Fit/internal/niosh"
	"gopkg.in/yaml.v3"
)

//go:embed masks.yaml
var masksYAML []byte

// MaskDescriptor describes one respirator model in one size.
type MaskDescriptor struct {
	Brand    string `yaml:"brand" json:"brand"`
	Model    string `yaml:"model" json:"model"`
	Size     string `yaml:"size" json:"size"`
	FitScore int    `yaml:"fit_score" json:"fit_score"`
	Notes    string `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// ID returns the inventory identifier for the mask ("Brand Model - Size").
// Inventory filters match on this string.
func (m MaskDescriptor) ID() string {
	return fmt.Sprintf("%s %s - %s", m.Brand, m.Model, m.Size)
}

// Catalog is an immutable, validated mask catalog grouped by category.
type Catalog struct {
	buckets map[niosh.Category][]MaskDescriptor
}

// Load returns the respirator catalog. The embedded data ships with the
// binary; the MASKFIT_CATALOG environment variable points at an external
// YAML file that replaces it.
func Load() (*Catalog, error) {
	if path := os.Getenv("MASKFIT_CATALOG"); path != "" {
		return LoadFile(path)
	}
	c, err := parseCatalog(masksYAML)
	if err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to parse embedded masks.yaml: " + err.Error())
	}
	return c, nil
}

// LoadFile loads and validates a catalog from an external YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	c, err := parseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("loading catalog from %s: %w", path, err)
	}
	return c, nil
}

func parseCatalog(data []byte) (*Catalog, error) {
	var raw map[niosh.Category][]MaskDescriptor
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing catalog YAML: %w", err)
	}
	if err := validateCatalog(raw); err != nil {
		return nil, err
	}
	return &Catalog{buckets: raw}, nil
}

func validateCatalog(buckets map[niosh.Category][]MaskDescriptor) error {
	known := make(map[niosh.Category]bool, len(niosh.PriorityOrder))
	for _, c := range niosh.PriorityOrder {
		known[c] = true
	}

	for category, masks := range buckets {
		if !known[category] {
			return fmt.Errorf("catalog bucket for unknown category %q", category)
		}
		for i, m := range masks {
			if m.Brand == "" || m.Model == "" || m.Size == "" {
				return fmt.Errorf("category %q entry %d: brand, model and size are required", category, i)
			}
			if m.FitScore < 0 || m.FitScore > 100 {
				return fmt.Errorf("category %q entry %d (%s): fit score %d outside 0-100", category, i, m.ID(), m.FitScore)
			}
		}
	}
	return nil
}

// Masks returns the bucket for a category in catalog order, best-first.
// Unknown or empty categories yield an empty slice, never an error.
func (c *Catalog) Masks(category niosh.Category) []MaskDescriptor {
	bucket := c.buckets[category]
	out := make([]MaskDescriptor, len(bucket))
	copy(out, bucket)
	return out
}

// Categories returns the categories with at least one catalog entry, in
// priority order.
func (c *Catalog) Categories() []niosh.Category {
	var out []niosh.Category
	for _, category := range niosh.PriorityOrder {
		if len(c.buckets[category]) > 0 {
			out = append(out, category)
		}
	}
	return out
}

// AllIDs returns every distinct mask ID across the catalog, sorted. This is
// the list inventories pick from.
func (c *Catalog) AllIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, bucket := range c.buckets {
		for _, m := range bucket {
			id := m.ID()
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	sort.Strings(ids)
	return ids
}
