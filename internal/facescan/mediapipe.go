package facescan

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const defaultMediaPipeURL = "http://localhost:8500"

// MediaPipeProvider talks to the MediaPipe face mesh sidecar over HTTP.
// The sidecar owns the mesh model and reduces its output to the five
// landmarks, so no Python runtime leaks into this process.
type MediaPipeProvider struct {
	baseURL string
	client  *http.Client
}

func NewMediaPipeProvider(baseURL string) *MediaPipeProvider {
	if baseURL == "" {
		baseURL = defaultMediaPipeURL
	}
	return &MediaPipeProvider{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{},
	}
}

func (p *MediaPipeProvider) Name() string {
	return "mediapipe"
}

// mediaPipeRequest represents a request to the sidecar's landmark endpoint.
type mediaPipeRequest struct {
	Image string `json:"image"` // base64 encoded JPEG
}

// mediaPipeResponse represents the sidecar's reply.
type mediaPipeResponse struct {
	FaceDetected bool       `json:"face_detected"`
	Landmarks    *Landmarks `json:"landmarks"`
	Error        string     `json:"error,omitempty"`
}

func (p *MediaPipeProvider) DetectLandmarks(ctx context.Context, imageData []byte) (*Landmarks, error) {
	reqBody := mediaPipeRequest{
		Image: base64.StdEncoding.EncodeToString(imageData),
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/landmarks", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sidecar error (status %d): %s", resp.StatusCode, string(body))
	}

	var mpResp mediaPipeResponse
	if err := json.Unmarshal(body, &mpResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if mpResp.Error != "" {
		return nil, fmt.Errorf("sidecar error: %s", mpResp.Error)
	}
	if !mpResp.FaceDetected || mpResp.Landmarks == nil {
		return nil, ErrNoFaceDetected
	}
	return mpResp.Landmarks, nil
}
