package facescan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

const geminiModel = "gemini-2.5-flash"

// GeminiProvider locates landmarks with a Gemini vision model.
type GeminiProvider struct {
	client *genai.Client
}

func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiProvider{client: client}, nil
}

func (p *GeminiProvider) Name() string {
	return geminiModel
}

func (p *GeminiProvider) DetectLandmarks(ctx context.Context, imageData []byte) (*Landmarks, error) {
	const maxRetries = 5

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: landmarksPrompt + "\n\nLocate the five landmarks in this photo."},
				{InlineData: &genai.Blob{Data: imageData, MIMEType: "image/jpeg"}},
			},
		},
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}

	var lastError error
	var lastResponse string

	for range maxRetries {
		result, err := p.client.Models.GenerateContent(ctx, geminiModel, contents, config)
		if err != nil {
			return nil, fmt.Errorf("gemini API error: %w", err)
		}

		content := result.Text()
		if content == "" {
			return nil, errors.New("no response from Gemini")
		}
		lastResponse = content

		var parsed landmarkResult
		if err := json.Unmarshal([]byte(content), &parsed); err != nil {
			lastError = err

			// Add model response and error feedback to contents for retry
			contents = append(contents,
				&genai.Content{
					Role:  "model",
					Parts: []*genai.Part{{Text: content}},
				},
				&genai.Content{
					Role:  "user",
					Parts: []*genai.Part{{Text: fmt.Sprintf("JSON parse error: %v. Please fix the JSON and try again. Respond with the exact format from the instructions.", err)}},
				},
			)
			continue
		}

		if !parsed.FaceDetected || parsed.Landmarks == nil {
			return nil, ErrNoFaceDetected
		}
		return parsed.Landmarks, nil
	}

	return nil, fmt.Errorf("failed to parse landmark JSON after %d attempts: %w (last response: %s)", maxRetries, lastError, lastResponse)
}
