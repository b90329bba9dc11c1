package cmd

import (
	"fmt"
	"strings"

	"github.com/bkerly/Mask-Fit/internal/protocol"
	"github.com/spf13/cobra"
)

var protocolCmd = &cobra.Command{
	Use:   "protocol",
	Short: "Show the user seal check procedure",
	Long: `Print the user seal check procedure: the pre-donning checklist,
the positive and negative pressure tests, and the safety notes.

Report observed outcomes with --positive and --negative to get a
verdict on the fit.

Example:
  mask-fit protocol
  mask-fit protocol --positive pass --negative fail
  mask-fit protocol --json`,
	RunE: runProtocol,
}

func init() {
	rootCmd.AddCommand(protocolCmd)

	protocolCmd.Flags().String("positive", "", "Positive pressure test outcome: pass or fail")
	protocolCmd.Flags().String("negative", "", "Negative pressure test outcome: pass or fail")
	protocolCmd.Flags().Bool("json", false, "Output as JSON")
}

func runProtocol(cmd *cobra.Command, args []string) error {
	positive := mustGetString(cmd, "positive")
	negative := mustGetString(cmd, "negative")
	jsonOutput := mustGetBool(cmd, "json")

	sealCheck := protocol.Load()

	if positive != "" || negative != "" {
		return evaluateSealCheck(sealCheck, positive, negative, jsonOutput)
	}

	if jsonOutput {
		return outputJSON(sealCheck)
	}

	printSealCheck(sealCheck)
	return nil
}

// evaluateSealCheck turns reported outcomes into a verdict.
func evaluateSealCheck(sealCheck *protocol.SealCheck, positive, negative string, jsonOutput bool) error {
	posOutcome, err := protocol.ParseOutcome(positive)
	if err != nil {
		return fmt.Errorf("--positive: %w", err)
	}
	negOutcome, err := protocol.ParseOutcome(negative)
	if err != nil {
		return fmt.Errorf("--negative: %w", err)
	}

	verdict := sealCheck.Evaluate(protocol.CheckResult{
		Positive: posOutcome,
		Negative: negOutcome,
	})

	if jsonOutput {
		return outputJSON(verdict)
	}

	fmt.Printf("Seal check: %s\n", strings.ToUpper(string(verdict.Status)))
	for _, line := range verdict.Guidance {
		fmt.Printf("  - %s\n", line)
	}
	return nil
}

// printSealCheck renders the full procedure as text.
func printSealCheck(sealCheck *protocol.SealCheck) {
	fmt.Println("User Seal Check")

	fmt.Println("\nBefore donning:")
	for i, item := range sealCheck.PreCheck {
		fmt.Printf("  %d. %s\n", i+1, item)
	}

	for _, test := range sealCheck.Tests {
		fmt.Printf("\n%s\n", test.Name)
		fmt.Printf("  Purpose: %s\n", test.Purpose)
		fmt.Println("  Procedure:")
		for i, step := range test.Procedure {
			fmt.Printf("    %d. %s\n", i+1, step)
		}
		fmt.Println("  Expected:")
		for _, line := range test.Expected {
			fmt.Printf("    - %s\n", line)
		}
		fmt.Println("  If it fails:")
		for _, line := range test.OnFailure {
			fmt.Printf("    - %s\n", line)
		}
	}

	fmt.Println("\nSafety notes:")
	for _, note := range sealCheck.SafetyNotes {
		fmt.Printf("  - %s\n", note)
	}
}
