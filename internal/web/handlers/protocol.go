package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/bkerly/Mask-Fit/internal/protocol"
)

// ProtocolHandler serves the user seal check protocol.
type ProtocolHandler struct {
	sealCheck *protocol.SealCheck
}

// NewProtocolHandler creates a new protocol handler.
func NewProtocolHandler(sealCheck *protocol.SealCheck) *ProtocolHandler {
	return &ProtocolHandler{sealCheck: sealCheck}
}

// Get returns the full seal check protocol.
func (h *ProtocolHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.sealCheck)
}

// EvaluateRequest carries the recorded outcome of each pressure test.
type EvaluateRequest struct {
	PositivePressure string `json:"positive_pressure"`
	NegativePressure string `json:"negative_pressure"`
}

// Evaluate handles POST /api/v1/protocol/evaluate.
func (h *ProtocolHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	positive, err := protocol.ParseOutcome(req.PositivePressure)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	negative, err := protocol.ParseOutcome(req.NegativePressure)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	verdict := h.sealCheck.Evaluate(protocol.CheckResult{
		Positive: positive,
		Negative: negative,
	})
	respondJSON(w, http.StatusOK, verdict)
}
