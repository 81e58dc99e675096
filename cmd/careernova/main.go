// Package main provides the entry point for the CareerNova portfolio engine.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "careernova",
	Short: "CareerNova portfolio engine",
	Long:  "CareerNova turns an uploaded resume into a hosted portfolio with an AI chat assistant, ATS rewriting and job recommendations, exposed via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
