package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bkerly/Mask-Fit/internal/catalog"
	"github.com/bkerly/Mask-Fit/internal/niosh"
	"github.com/bkerly/Mask-Fit/internal/sizing"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch [roster.csv]",
	Short: "Classify a roster of subjects from a CSV file",
	Long: `Classify every subject in a CSV roster and write the results
to a CSV file.

The input needs a header row with subject, breadth and length columns;
width and height columns are optional and estimated when absent. The
output carries the category, confidence, percentiles and the top mask
pick for each subject.

Example:
  mask-fit batch roster.csv
  mask-fit batch roster.csv --out fittings.csv --top 1`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().String("out", "results.csv", "Output CSV file")
	batchCmd.Flags().Int("top", 0, "Number of mask recommendations per subject (0 = default)")
}

// rosterColumns maps the header names onto column indices. Breadth and
// length are required; width, height and subject are optional.
type rosterColumns struct {
	subject int
	breadth int
	length  int
	width   int
	height  int
}

func parseRosterHeader(header []string) (rosterColumns, error) {
	cols := rosterColumns{subject: -1, breadth: -1, length: -1, width: -1, height: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "subject", "name":
			cols.subject = i
		case "breadth", "bizygomatic_breadth":
			cols.breadth = i
		case "length", "menton_sellion":
			cols.length = i
		case "width", "face_width":
			cols.width = i
		case "height", "face_height":
			cols.height = i
		}
	}
	if cols.breadth < 0 || cols.length < 0 {
		return cols, fmt.Errorf("roster header needs breadth and length columns, got %v", header)
	}
	return cols, nil
}

// rosterValue reads an optional float column, returning 0 when the column
// is absent or empty.
func rosterValue(record []string, idx int) (float64, error) {
	if idx < 0 || idx >= len(record) {
		return 0, nil
	}
	field := strings.TrimSpace(record[idx])
	if field == "" {
		return 0, nil
	}
	return strconv.ParseFloat(field, 64)
}

// parseRosterRow extracts a measurement from one roster record, estimating
// the optional dimensions when their columns are missing.
func parseRosterRow(record []string, cols rosterColumns) (sizing.Measurement, error) {
	breadth, err := rosterValue(record, cols.breadth)
	if err != nil {
		return sizing.Measurement{}, fmt.Errorf("bad breadth: %w", err)
	}
	length, err := rosterValue(record, cols.length)
	if err != nil {
		return sizing.Measurement{}, fmt.Errorf("bad length: %w", err)
	}
	width, err := rosterValue(record, cols.width)
	if err != nil {
		return sizing.Measurement{}, fmt.Errorf("bad width: %w", err)
	}
	height, err := rosterValue(record, cols.height)
	if err != nil {
		return sizing.Measurement{}, fmt.Errorf("bad height: %w", err)
	}
	return sizing.DeriveMeasurement(breadth, length, width, height), nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	rosterPath := args[0]
	outPath := mustGetString(cmd, "out")
	topN := mustGetInt(cmd, "top")

	f, err := os.Open(rosterPath)
	if err != nil {
		return fmt.Errorf("opening roster: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("reading roster %s: %w", rosterPath, err)
	}
	if len(records) < 2 {
		return fmt.Errorf("roster %s has no subject rows", rosterPath)
	}

	cols, err := parseRosterHeader(records[0])
	if err != nil {
		return err
	}
	rows := records[1:]

	profiles, err := niosh.Load()
	if err != nil {
		return fmt.Errorf("loading size profiles: %w", err)
	}
	cat, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("loading mask catalog: %w", err)
	}

	classifier := sizing.NewClassifier(profiles)
	recommender := sizing.NewRecommender(cat)
	survey := profiles.Survey()

	bar := progressbar.NewOptions(len(rows),
		progressbar.OptionSetDescription("Classifying roster"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("subjects"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
	)

	results := [][]string{{
		"subject", "breadth_mm", "length_mm", "category", "confidence",
		"match", "breadth_percentile", "length_percentile", "top_mask",
	}}

	var unclassified, badRows int
	for i, record := range rows {
		bar.Add(1)

		subject := ""
		if cols.subject >= 0 && cols.subject < len(record) {
			subject = strings.TrimSpace(record[cols.subject])
		}
		if subject == "" {
			subject = fmt.Sprintf("subject-%d", i+1)
		}

		m, err := parseRosterRow(record, cols)
		if err != nil {
			badRows++
			fmt.Fprintf(os.Stderr, "\nSkipping row %d (%s): %v\n", i+2, subject, err)
			continue
		}

		result := classifier.Classify(m)
		rec := recommender.Recommend(result, topN, nil)

		topMask := ""
		if len(rec.Masks) > 0 {
			topMask = rec.Masks[0].ID()
		}
		if result.Category == niosh.CategoryUnclassified {
			unclassified++
		}

		results = append(results, []string{
			subject,
			strconv.FormatFloat(m.BizygomaticBreadth, 'f', 1, 64),
			strconv.FormatFloat(m.MentonSellion, 'f', 1, 64),
			string(result.Category),
			strconv.FormatFloat(result.Confidence, 'f', 0, 64),
			string(result.Match),
			strconv.FormatFloat(survey.BreadthPercentile(m.BizygomaticBreadth), 'f', 1, 64),
			strconv.FormatFloat(survey.LengthPercentile(m.MentonSellion), 'f', 1, 64),
			topMask,
		})
	}
	fmt.Println()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	writer := csv.NewWriter(out)
	if err := writer.WriteAll(results); err != nil {
		out.Close()
		return fmt.Errorf("writing results: %w", err)
	}
	writer.Flush()
	if err := out.Close(); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}

	fmt.Printf("Processed %d subjects -> %s\n", len(results)-1, outPath)
	if unclassified > 0 {
		fmt.Printf("  %d outside the plausible measurement window\n", unclassified)
	}
	if badRows > 0 {
		fmt.Printf("  %d rows skipped\n", badRows)
	}
	return nil
}
