// Package main provides the entry point for the Smart Talent Profile Builder.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "profile_agent",
	Short: "Smart Talent Profile Builder",
	Long:  "Smart Talent Profile Builder aggregates social, career, website and document sources into one canonical creative-professional profile, enriched with AI skill extraction, bio generation and image analysis.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
