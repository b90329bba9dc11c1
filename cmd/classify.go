package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/bkerly/Mask-Fit/internal/catalog"
	"github.com/bkerly/Mask-Fit/internal/niosh"
	"github.com/bkerly/Mask-Fit/internal/sizing"
	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify facial measurements into a size category",
	Long: `Classify a set of facial measurements into a NIOSH face size
category and recommend respirator models for it.

Bizygomatic breadth and menton-sellion length drive the classification.
Face width and height are optional; when omitted they are estimated
from the two classifying dimensions.

Example:
  mask-fit classify --breadth 140 --length 120
  mask-fit classify --breadth 152 --length 118 --top 5 --json`,
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().Float64("breadth", 0, "Bizygomatic breadth in mm (required)")
	classifyCmd.Flags().Float64("length", 0, "Menton-sellion length in mm (required)")
	classifyCmd.Flags().Float64("width", 0, "Overall face width in mm (estimated if omitted)")
	classifyCmd.Flags().Float64("height", 0, "Face height in mm (estimated if omitted)")
	classifyCmd.Flags().Int("top", 0, "Number of mask recommendations (0 = default)")
	classifyCmd.Flags().StringSlice("available", nil, "Restrict recommendations to these mask IDs")
	classifyCmd.Flags().Bool("json", false, "Output results as JSON")

	_ = classifyCmd.MarkFlagRequired("breadth")
	_ = classifyCmd.MarkFlagRequired("length")
}

// fittingOutput is the JSON shape shared by the classify and scan commands.
type fittingOutput struct {
	Measurement    sizing.Measurement          `json:"measurement"`
	Result         sizing.ClassificationResult `json:"result"`
	Recommendation sizing.Recommendation       `json:"recommendation"`
}

func runClassify(cmd *cobra.Command, args []string) error {
	breadth := mustGetFloat64(cmd, "breadth")
	length := mustGetFloat64(cmd, "length")
	width := mustGetFloat64(cmd, "width")
	height := mustGetFloat64(cmd, "height")
	topN := mustGetInt(cmd, "top")
	available := mustGetStringSlice(cmd, "available")
	jsonOutput := mustGetBool(cmd, "json")

	if breadth <= 0 || length <= 0 {
		return fmt.Errorf("breadth and length must be positive, got %.1f and %.1f", breadth, length)
	}

	profiles, err := niosh.Load()
	if err != nil {
		return fmt.Errorf("loading size profiles: %w", err)
	}
	cat, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("loading mask catalog: %w", err)
	}

	measurement := sizing.DeriveMeasurement(breadth, length, width, height)
	result := sizing.NewClassifier(profiles).Classify(measurement)
	recommendation := sizing.NewRecommender(cat).Recommend(result, topN, available)

	if jsonOutput {
		return outputJSON(fittingOutput{
			Measurement:    measurement,
			Result:         result,
			Recommendation: recommendation,
		})
	}

	printFitting(profiles, measurement, result, recommendation)
	return nil
}

// printFitting renders a classification and its recommendations as text.
func printFitting(profiles *niosh.ProfileSet, m sizing.Measurement, result sizing.ClassificationResult, rec sizing.Recommendation) {
	survey := profiles.Survey()

	fmt.Printf("Category:   %s (%s match)\n", result.Category.Display(), result.Match)
	fmt.Printf("Confidence: %.0f%%\n", result.Confidence)
	if result.Reason != "" {
		fmt.Printf("Note:       %s\n", result.Reason)
	}
	fmt.Printf("Breadth:    %.1f mm (percentile %.0f)\n", m.BizygomaticBreadth, survey.BreadthPercentile(m.BizygomaticBreadth))
	fmt.Printf("Length:     %.1f mm (percentile %.0f)\n", m.MentonSellion, survey.LengthPercentile(m.MentonSellion))

	if len(rec.Masks) == 0 {
		fmt.Println("\nNo mask recommendations available.")
		return
	}

	fmt.Println("\nRecommended masks:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BRAND\tMODEL\tSIZE\tFIT\tNOTES")
	fmt.Fprintln(w, "-----\t-----\t----\t---\t-----")
	for _, mask := range rec.Masks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", mask.Brand, mask.Model, mask.Size, mask.FitScore, mask.Notes)
	}
	w.Flush()

	if len(rec.Secondary) > 0 {
		fmt.Println("\nAlso consider:")
		for _, s := range rec.Secondary {
			fmt.Printf("  %s: %s\n", s.Category.Display(), s.Mask.ID())
		}
	}
}
