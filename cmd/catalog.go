package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/bkerly/Mask-Fit/internal/catalog"
	"github.com/bkerly/Mask-Fit/internal/niosh"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog [category]",
	Short: "List the respirator catalog",
	Long: `List the respirator catalog grouped by size category, best fit
first. Pass a category to list only its masks.

--ids prints the inventory identifiers the --available filters match on.

Example:
  mask-fit catalog
  mask-fit catalog long_narrow
  mask-fit catalog --ids`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)

	catalogCmd.Flags().Bool("json", false, "Output catalog as JSON")
	catalogCmd.Flags().Bool("ids", false, "List inventory mask IDs, one per line")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	jsonOutput := mustGetBool(cmd, "json")
	idsOnly := mustGetBool(cmd, "ids")

	cat, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("loading mask catalog: %w", err)
	}

	if idsOnly {
		for _, id := range cat.AllIDs() {
			fmt.Println(id)
		}
		return nil
	}

	categories := cat.Categories()
	if len(args) == 1 {
		category := niosh.Category(args[0])
		if !knownCategory(category) {
			return fmt.Errorf("unknown category: %s (supported: %s)", args[0], categoryNames())
		}
		categories = []niosh.Category{category}
	}

	if jsonOutput {
		out := make(map[niosh.Category][]catalog.MaskDescriptor, len(categories))
		for _, c := range categories {
			out[c] = cat.Masks(c)
		}
		return outputJSON(out)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tBRAND\tMODEL\tSIZE\tFIT\tNOTES")
	fmt.Fprintln(w, "--------\t-----\t-----\t----\t---\t-----")

	total := 0
	for _, c := range categories {
		for _, mask := range cat.Masks(c) {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
				c.Display(), mask.Brand, mask.Model, mask.Size, mask.FitScore, mask.Notes)
			total++
		}
	}
	w.Flush()

	fmt.Printf("\nTotal: %d masks\n", total)
	return nil
}

// knownCategory reports whether c is one of the five size categories.
func knownCategory(c niosh.Category) bool {
	for _, known := range niosh.PriorityOrder {
		if c == known {
			return true
		}
	}
	return false
}

// categoryNames lists the size categories for error messages.
func categoryNames() string {
	names := make([]string, len(niosh.PriorityOrder))
	for i, c := range niosh.PriorityOrder {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
