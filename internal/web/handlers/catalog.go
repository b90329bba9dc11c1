package handlers

import (
	"net/http"

	"github.com/bkerly/Mask-Fit/internal/catalog"
	"github.com/bkerly/Mask-Fit/internal/niosh"
	"github.com/go-chi/chi/v5"
)

// CatalogHandler serves the respirator catalog.
type CatalogHandler struct {
	catalog *catalog.Catalog
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(c *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: c}
}

// CategoryMasks is one catalog bucket in API responses.
type CategoryMasks struct {
	Category niosh.Category           `json:"category"`
	Masks    []catalog.MaskDescriptor `json:"masks"`
}

// List returns the whole catalog in priority order.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	var response []CategoryMasks
	for _, category := range h.catalog.Categories() {
		response = append(response, CategoryMasks{
			Category: category,
			Masks:    h.catalog.Masks(category),
		})
	}

	respondJSON(w, http.StatusOK, response)
}

// Get returns the catalog bucket for one category.
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	category := niosh.Category(chi.URLParam(r, "category"))

	known := false
	for _, c := range niosh.PriorityOrder {
		if c == category {
			known = true
			break
		}
	}
	if !known {
		respondError(w, http.StatusNotFound, "unknown category")
		return
	}

	respondJSON(w, http.StatusOK, CategoryMasks{
		Category: category,
		Masks:    h.catalog.Masks(category),
	})
}
