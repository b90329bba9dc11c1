package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/bkerly/Mask-Fit/internal/catalog"
	"github.com/bkerly/Mask-Fit/internal/niosh"
	"github.com/bkerly/Mask-Fit/internal/sizing"
	"github.com/google/uuid"
)

// ClassifyHandler runs the category classification from submitted
// measurements.
type ClassifyHandler struct {
	profiles *niosh.ProfileSet
	catalog  *catalog.Catalog
}

// NewClassifyHandler creates a new classify handler.
func NewClassifyHandler(profiles *niosh.ProfileSet, c *catalog.Catalog) *ClassifyHandler {
	return &ClassifyHandler{profiles: profiles, catalog: c}
}

// ClassifyRequest carries the facial measurements in millimetres. The
// frontal width and height are optional and estimated when absent.
type ClassifyRequest struct {
	BizygomaticBreadth float64  `json:"bizygomatic_breadth"`
	MentonSellion      float64  `json:"menton_sellion"`
	FaceWidth          float64  `json:"face_width"`
	FaceHeight         float64  `json:"face_height"`
	TopN               int      `json:"top_n"`
	Available          []string `json:"available"`
}

// Percentiles places the subject in the survey population.
type Percentiles struct {
	Breadth float64 `json:"breadth"`
	Length  float64 `json:"length"`
}

// FittingResponse is the common payload for classification endpoints.
type FittingResponse struct {
	SessionID      string                      `json:"session_id"`
	Measurement    sizing.Measurement          `json:"measurement"`
	Result         sizing.ClassificationResult `json:"result"`
	Recommendation sizing.Recommendation       `json:"recommendation"`
	Percentiles    Percentiles                 `json:"percentiles"`
}

// newFittingResponse classifies a measurement and assembles the shared
// response payload.
func newFittingResponse(profiles *niosh.ProfileSet, c *catalog.Catalog, m sizing.Measurement, topN int, available []string) FittingResponse {
	result := sizing.NewClassifier(profiles).Classify(m)
	recommendation := sizing.NewRecommender(c).Recommend(result, topN, available)

	survey := profiles.Survey()
	return FittingResponse{
		SessionID:      uuid.New().String(),
		Measurement:    m,
		Result:         result,
		Recommendation: recommendation,
		Percentiles: Percentiles{
			Breadth: survey.BreadthPercentile(m.BizygomaticBreadth),
			Length:  survey.LengthPercentile(m.MentonSellion),
		},
	}
}

// Classify handles POST /api/v1/classify.
func (h *ClassifyHandler) Classify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	if req.BizygomaticBreadth <= 0 || req.MentonSellion <= 0 {
		respondError(w, http.StatusBadRequest, "bizygomatic_breadth and menton_sellion are required")
		return
	}

	m := sizing.DeriveMeasurement(req.BizygomaticBreadth, req.MentonSellion, req.FaceWidth, req.FaceHeight)
	respondJSON(w, http.StatusOK, newFittingResponse(h.profiles, h.catalog, m, req.TopN, req.Available))
}
