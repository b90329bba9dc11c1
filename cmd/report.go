package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bkerly/Mask-Fit/internal/catalog"
	"github.com/bkerly/Mask-Fit/internal/niosh"
	"github.com/bkerly/Mask-Fit/internal/protocol"
	"github.com/bkerly/Mask-Fit/internal/report"
	"github.com/bkerly/Mask-Fit/internal/sizing"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write a Markdown fitting report",
	Long: `Classify a subject's measurements and write a Markdown fitting
report with the recommendations and seal check next steps.

The file is named fitting_<subject>_<date>.md inside the output
directory.

Example:
  mask-fit report --subject "Jane Doe" --breadth 140 --length 120
  mask-fit report --subject jan --breadth 152 --length 117 --out reports/`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().String("subject", "", "Subject name (required)")
	reportCmd.Flags().Float64("breadth", 0, "Bizygomatic breadth in mm (required)")
	reportCmd.Flags().Float64("length", 0, "Menton-sellion length in mm (required)")
	reportCmd.Flags().Float64("width", 0, "Overall face width in mm (estimated if omitted)")
	reportCmd.Flags().Float64("height", 0, "Face height in mm (estimated if omitted)")
	reportCmd.Flags().StringSlice("available", nil, "Restrict recommendations to these mask IDs")
	reportCmd.Flags().String("out", ".", "Output directory")

	_ = reportCmd.MarkFlagRequired("subject")
	_ = reportCmd.MarkFlagRequired("breadth")
	_ = reportCmd.MarkFlagRequired("length")
}

func runReport(cmd *cobra.Command, args []string) error {
	subject := mustGetString(cmd, "subject")
	breadth := mustGetFloat64(cmd, "breadth")
	length := mustGetFloat64(cmd, "length")
	width := mustGetFloat64(cmd, "width")
	height := mustGetFloat64(cmd, "height")
	available := mustGetStringSlice(cmd, "available")
	outDir := mustGetString(cmd, "out")

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
	recommendation := sizing.NewRecommender(cat).Recommend(result, 0, available)

	now := time.Now()
	fitting := report.Fitting{
		Subject:        subject,
		SessionID:      uuid.New().String(),
		Date:           now,
		Measurement:    measurement,
		Result:         result,
		Recommendation: recommendation,
		Profiles:       profiles,
		SealCheck:      protocol.Load(),
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(outDir, report.Filename(subject, now))
	if err := os.WriteFile(path, []byte(report.Render(fitting)), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	fmt.Printf("Category: %s (confidence %.0f%%)\n", result.Category.Display(), result.Confidence)
	fmt.Printf("Report written to %s\n", path)
	return nil
}
