package facescan

import (
	"context"
	_ "embed"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

//go:embed prompts/landmarks.txt
var landmarksPrompt string

const openAIModel = openai.ChatModelGPT4_1Mini

// OpenAIProvider locates landmarks with an OpenAI vision model.
type OpenAIProvider struct {
	client *openai.Client
}

func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIProvider{client: &client}
}

func (p *OpenAIProvider) Name() string {
	return openAIModel
}

func (p *OpenAIProvider) DetectLandmarks(ctx context.Context, imageData []byte) (*Landmarks, error) {
	const maxRetries = 5

	base64Image := base64.StdEncoding.EncodeToString(imageData)
	imageURL := "data:image/jpeg;base64," + base64Image

	// Build initial messages
	messages := []openai.ChatCompletionMessageParamUnion{
		{
			OfSystem: &openai.ChatCompletionSystemMessageParam{
				Content: openai.ChatCompletionSystemMessageParamContentUnion{
					OfString: openai.String(landmarksPrompt),
				},
			},
		},
		{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfArrayOfContentParts: []openai.ChatCompletionContentPartUnionParam{
						openai.TextContentPart("Locate the five landmarks in this photo."),
						openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
							URL:    imageURL,
							Detail: "high",
						}),
					},
				},
			},
		},
	}

	var lastError error
	var lastResponse string

	for range maxRetries {
		resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model:    openAIModel,
			Messages: messages,
			ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
				OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
			},
			MaxTokens: openai.Int(300),
		})
		if err != nil {
			return nil, fmt.Errorf("OpenAI API error: %w", err)
		}

		if len(resp.Choices) == 0 {
			return nil, errors.New("no response from OpenAI")
		}

		content := resp.Choices[0].Message.Content
		lastResponse = content

		var result landmarkResult
		if err := json.Unmarshal([]byte(content), &result); err != nil {
			lastError = err

			// Add assistant response and error feedback to messages for retry
			messages = append(messages,
				openai.ChatCompletionMessageParamUnion{
					OfAssistant: &openai.ChatCompletionAssistantMessageParam{
						Content: openai.ChatCompletionAssistantMessageParamContentUnion{
							OfString: openai.String(content),
						},
					},
				},
				openai.ChatCompletionMessageParamUnion{
					OfUser: &openai.ChatCompletionUserMessageParam{
						Content: openai.ChatCompletionUserMessageParamContentUnion{
							OfString: openai.String(fmt.Sprintf("JSON parse error: %v. Please fix the JSON and try again. Respond with the exact format from the instructions.", err)),
						},
					},
				},
			)
			continue
		}

		if !result.FaceDetected || result.Landmarks == nil {
			return nil, ErrNoFaceDetected
		}
		return result.Landmarks, nil
	}

	return nil, fmt.Errorf("failed to parse landmark JSON after %d attempts: %w (last response: %s)", maxRetries, lastError, lastResponse)
}
