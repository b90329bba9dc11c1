package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/bkerly/Mask-Fit/internal/catalog"
	"github.com/bkerly/Mask-Fit/internal/config"
	"github.com/bkerly/Mask-Fit/internal/constants"
	"github.com/bkerly/Mask-Fit/internal/facescan"
	"github.com/bkerly/Mask-Fit/internal/niosh"
)

// ScanHandler runs a fitting from an uploaded portrait photo.
type ScanHandler struct {
	config   *config.Config
	profiles *niosh.ProfileSet
	catalog  *catalog.Catalog
}

// NewScanHandler creates a new scan handler.
func NewScanHandler(cfg *config.Config, profiles *niosh.ProfileSet, c *catalog.Catalog) *ScanHandler {
	return &ScanHandler{config: cfg, profiles: profiles, catalog: c}
}

// ScanResponse extends the fitting payload with the landmark detection
// details.
type ScanResponse struct {
	FittingResponse
	Provider  string             `json:"provider"`
	Landmarks facescan.Landmarks `json:"landmarks"`
}

// Scan handles POST /api/v1/scan. The request is multipart form data
// with an "image" file plus optional "provider", "top_n" and "available"
// fields.
func (h *ScanHandler) Scan(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(constants.MaxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	imageData, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to read image")
		return
	}

	providerName := r.FormValue("provider")
	if providerName == "" {
		providerName = "openai"
	}

	provider, err := h.buildProvider(r, providerName)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	scanner := facescan.NewScanner(provider, h.config.Scan.MMPerPixel)
	scan, err := scanner.Scan(r.Context(), imageData)
	if err != nil {
		if errors.Is(err, facescan.ErrNoFaceDetected) {
			respondError(w, http.StatusUnprocessableEntity, "no face detected in image")
			return
		}
		log.Printf("scan of %s via %s failed: %v", sanitizeForLog(header.Filename), provider.Name(), err)
		respondError(w, http.StatusInternalServerError, "scan failed")
		return
	}

	topN, _ := strconv.Atoi(r.FormValue("top_n"))
	available := r.Form["available"]

	respondJSON(w, http.StatusOK, ScanResponse{
		FittingResponse: newFittingResponse(h.profiles, h.catalog, scan.Measurement, topN, available),
		Provider:        scan.Provider,
		Landmarks:       scan.Landmarks,
	})
}

func (h *ScanHandler) buildProvider(r *http.Request, name string) (facescan.Provider, error) {
	switch name {
	case "openai":
		if h.config.OpenAI.Token == "" {
			return nil, errors.New("OPENAI_TOKEN is not configured")
		}
		return facescan.NewOpenAIProvider(h.config.OpenAI.Token), nil
	case "gemini":
		if h.config.Gemini.APIKey == "" {
			return nil, errors.New("GEMINI_API_KEY is not configured")
		}
		provider, err := facescan.NewGeminiProvider(r.Context(), h.config.Gemini.APIKey)
		if err != nil {
			return nil, fmt.Errorf("creating gemini provider: %w", err)
		}
		return provider, nil
	case "mediapipe":
		return facescan.NewMediaPipeProvider(h.config.MediaPipe.URL), nil
	default:
		return nil, fmt.Errorf("unknown provider %q (want openai, gemini or mediapipe)", sanitizeForLog(name))
	}
}
