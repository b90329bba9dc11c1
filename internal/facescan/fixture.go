package facescan

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// FixtureProvider replays landmarks from a JSON file instead of running
// detection. Useful for repeatable fittings and for working without a
// vision backend.
type FixtureProvider struct {
	path string
}

func NewFixtureProvider(path string) *FixtureProvider {
	return &FixtureProvider{path: path}
}

func (p *FixtureProvider) Name() string {
	return "fixture"
}

// DetectLandmarks ignores the image content and loads the stored landmark
// set. The file holds a plain Landmarks object.
func (p *FixtureProvider) DetectLandmarks(ctx context.Context, imageData []byte) (*Landmarks, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read landmark fixture: %w", err)
	}

	var lm Landmarks
	if err := json.Unmarshal(data, &lm); err != nil {
		return nil, fmt.Errorf("failed to parse landmark fixture %s: %w", p.path, err)
	}
	return &lm, nil
}
