package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/careernova/portfolio-engine/internal/config"
	"github.com/careernova/portfolio-engine/internal/extraction"
	"github.com/careernova/portfolio-engine/internal/llm"
	"github.com/careernova/portfolio-engine/internal/pdftext"
)

var (
	extractPDFPath  string
	extractUsername string
	extractModel    string
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a structured portfolio from a resume PDF",
	Long:  `Extract reads a resume PDF, runs LLM portfolio extraction and prints the structured result as JSON.`,
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractPDFPath, "pdf", "p", "", "Path to the resume PDF (required)")
	extractCmd.Flags().StringVarP(&extractUsername, "username", "u", "", "Username seeding defaults for missing fields")
	extractCmd.Flags().StringVarP(&extractModel, "model", "m", "", "Preferred model (optional, tried before the fallback list)")
	_ = extractCmd.MarkFlagRequired("pdf")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	payload, err := os.ReadFile(extractPDFPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", extractPDFPath, err)
	}

	resumeText, err := pdftext.Extract(payload)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	extractor := extraction.New(
		llm.NewOpenRouterClient(cfg.OpenRouterBaseURL),
		cfg.DefaultLLMModel, cfg.LLMTemperature, cfg.LLMMaxTokens,
	)
	portfolio, err := extractor.Extract(ctx, resumeText, extraction.Options{
		APIKey:         cfg.OpenRouterAPIKey,
		PreferredModel: extractModel,
		Username:       extractUsername,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(portfolio)
}
