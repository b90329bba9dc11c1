package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/bkerly/Mask-Fit/internal/headform"
	"github.com/bkerly/Mask-Fit/internal/niosh"
	"github.com/spf13/cobra"
)

var headformsCmd = &cobra.Command{
	Use:   "headforms [directory]",
	Short: "Measure reference headform scans",
	Long: `Measure the NIOSH reference headform STL scans in a directory and
write their facial dimensions to a reference JSON file.

Headforms are looked up by category file name (small_symmetry.stl,
medium_symmetry.stl, ...). Dimensions outside the category's profile
ranges are flagged so miscalibrated scans stand out.

Example:
  mask-fit headforms ./headforms
  mask-fit headforms ./headforms --out refs.json`,
	Args: cobra.ExactArgs(1),
	RunE: runHeadforms,
}

func init() {
	rootCmd.AddCommand(headformsCmd)

	headformsCmd.Flags().String("out", headform.DefaultReferenceFile, "Output JSON file")
}

func runHeadforms(cmd *cobra.Command, args []string) error {
	dir := args[0]
	outPath := mustGetString(cmd, "out")

	profiles, err := niosh.Load()
	if err != nil {
		return fmt.Errorf("loading size profiles: %w", err)
	}

	refs, err := headform.AnalyzeDir(dir, profiles)
	if err != nil {
		return fmt.Errorf("analyzing headforms: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tVERTICES\tBREADTH\tLENGTH\tIN RANGE")
	fmt.Fprintln(w, "--------\t--------\t-------\t------\t--------")
	for _, ref := range refs {
		fmt.Fprintf(w, "%s\t%d\t%.1f\t%.1f\t%s\n",
			ref.Category.Display(),
			ref.Measurements.VertexCount,
			ref.Measurements.BizygomaticBreadth,
			ref.Measurements.MentonSellion,
			rangeFlag(ref),
		)
	}
	w.Flush()

	if missing := headform.MissingCategories(refs); len(missing) > 0 {
		fmt.Println("\nMissing headforms:")
		for _, c := range missing {
			fmt.Printf("  %s (expected %s)\n", c.Display(), headform.FileName(c))
		}
	}

	if err := headform.WriteReferenceJSON(outPath, refs); err != nil {
		return fmt.Errorf("writing references: %w", err)
	}
	fmt.Printf("\nReferences written to %s\n", outPath)
	return nil
}

// rangeFlag summarizes which headform dimensions sit inside the category
// profile.
func rangeFlag(ref headform.Reference) string {
	switch {
	case ref.BreadthInRange && ref.LengthInRange:
		return "yes"
	case ref.BreadthInRange:
		return "length off"
	case ref.LengthInRange:
		return "breadth off"
	}
	return "both off"
}
