package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bkerly/Mask-Fit/internal/catalog"
	"github.com/bkerly/Mask-Fit/internal/config"
	"github.com/bkerly/Mask-Fit/internal/facescan"
	"github.com/bkerly/Mask-Fit/internal/niosh"
	"github.com/bkerly/Mask-Fit/internal/sizing"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan [image-file]",
	Short: "Measure a face photograph and classify it",
	Long: `Measure facial dimensions from a frontal face photograph using a
vision provider, then classify the result and recommend masks.

The photograph should be a frontal view with the full face visible.
Calibration is controlled by MASKFIT_MM_PER_PIXEL; without a calibrated
setup the measurements carry the default survey-based scale.

Example:
  mask-fit scan face.jpg
  mask-fit scan face.jpg --provider gemini --json
  mask-fit scan face.jpg --provider fixture --landmarks landmarks.json`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().String("provider", "openai", "Vision provider to use: openai, gemini, mediapipe, fixture")
	scanCmd.Flags().String("landmarks", "", "Landmark JSON file for the fixture provider")
	scanCmd.Flags().Int("top", 0, "Number of mask recommendations (0 = default)")
	scanCmd.Flags().StringSlice("available", nil, "Restrict recommendations to these mask IDs")
	scanCmd.Flags().Bool("json", false, "Output results as JSON")
}

// scanOutput extends the fitting output with scan provenance.
type scanOutput struct {
	fittingOutput
	Provider  string             `json:"provider"`
	Landmarks facescan.Landmarks `json:"landmarks"`
}

// newScanProvider creates the landmark provider selected on the command line.
func newScanProvider(cfg *config.Config, providerName, landmarksPath string) (facescan.Provider, error) {
	switch providerName {
	case "openai":
		if cfg.OpenAI.Token == "" {
			return nil, errors.New("OPENAI_TOKEN environment variable is required")
		}
		return facescan.NewOpenAIProvider(cfg.OpenAI.Token), nil
	case "gemini":
		if cfg.Gemini.APIKey == "" {
			return nil, errors.New("GEMINI_API_KEY environment variable is required")
		}
		provider, err := facescan.NewGeminiProvider(context.Background(), cfg.Gemini.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini provider: %w", err)
		}
		return provider, nil
	case "mediapipe":
		return facescan.NewMediaPipeProvider(cfg.MediaPipe.URL), nil
	case "fixture":
		if landmarksPath == "" {
			return nil, errors.New("--landmarks is required with the fixture provider")
		}
		return facescan.NewFixtureProvider(landmarksPath), nil
	}
	return nil, fmt.Errorf("unknown provider: %s (supported: openai, gemini, mediapipe, fixture)", providerName)
}

func runScan(cmd *cobra.Command, args []string) error {
	imagePath := args[0]

	cfg := config.Load()

	providerName := mustGetString(cmd, "provider")
	landmarksPath := mustGetString(cmd, "landmarks")
	topN := mustGetInt(cmd, "top")
	available := mustGetStringSlice(cmd, "available")
	jsonOutput := mustGetBool(cmd, "json")

	provider, err := newScanProvider(cfg, providerName, landmarksPath)
	if err != nil {
		return err
	}

	imageData, err := os.ReadFile(imagePath)
	if err != nil {
		return fmt.Errorf("reading image: %w", err)
	}

	profiles, err := niosh.Load()
	if err != nil {
		return fmt.Errorf("loading size profiles: %w", err)
	}
	cat, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("loading mask catalog: %w", err)
	}

	scanner := facescan.NewScanner(provider, cfg.Scan.MMPerPixel)
	scanResult, err := scanner.Scan(context.Background(), imageData)
	if err != nil {
		if errors.Is(err, facescan.ErrNoFaceDetected) {
			return fmt.Errorf("no face detected in %s", imagePath)
		}
		return fmt.Errorf("scanning %s: %w", imagePath, err)
	}

	result := sizing.NewClassifier(profiles).Classify(scanResult.Measurement)
	recommendation := sizing.NewRecommender(cat).Recommend(result, topN, available)

	if jsonOutput {
		return outputJSON(scanOutput{
			fittingOutput: fittingOutput{
				Measurement:    scanResult.Measurement,
				Result:         result,
				Recommendation: recommendation,
			},
			Provider:  scanResult.Provider,
			Landmarks: scanResult.Landmarks,
		})
	}

	fmt.Printf("Image:      %s\n", imagePath)
	fmt.Printf("Provider:   %s\n", scanResult.Provider)
	printFitting(profiles, scanResult.Measurement, result, recommendation)
	return nil
}
