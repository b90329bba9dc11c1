package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mask-fit",
	Short: "A CLI tool for NIOSH respirator size selection",
	Long: `Mask Fit classifies facial measurements into NIOSH face size
categories and recommends respirator models that fit them. Measurements
can be entered by hand or extracted from a face photograph using a
vision provider (OpenAI, Gemini, MediaPipe).`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
