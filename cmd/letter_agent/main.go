// Package main provides the entry point for the advocacy letter agent CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "letter_agent",
	Short: "Advocacy letter generation pipeline",
	Long:  "Letter Agent drafts issue-based advocacy letters from news articles and personalizes a distinct variant for each elected official in a recipient directory.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
