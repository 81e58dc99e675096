package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/careernova/portfolio-engine/internal/ats"
	"github.com/careernova/portfolio-engine/internal/chat"
	"github.com/careernova/portfolio-engine/internal/config"
	"github.com/careernova/portfolio-engine/internal/extraction"
	"github.com/careernova/portfolio-engine/internal/jobs"
	"github.com/careernova/portfolio-engine/internal/llm"
	"github.com/careernova/portfolio-engine/internal/server"
	"github.com/careernova/portfolio-engine/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server exposing portfolio extraction, chat, ATS rewriting and job recommendation endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var portfolios store.PortfolioStore
	if cfg.DatabaseURL != "" {
		pg, err := store.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pg.Close()
		portfolios = pg
	} else {
		log.Println("DATABASE_URL not set, using in-memory portfolio store")
		portfolios = store.NewMemoryStore()
	}

	gemini, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, "")
	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer gemini.Close()

	openrouter := llm.NewOpenRouterClient(cfg.OpenRouterBaseURL)

	srv := server.New(cfg, server.Deps{
		Store:     portfolios,
		Extractor: extraction.New(openrouter, cfg.DefaultLLMModel, cfg.LLMTemperature, cfg.LLMMaxTokens),
		Rewriter:  ats.New(openrouter, cfg.DefaultLLMModel, cfg.LLMTemperature, cfg.LLMMaxTokens),
		Chat:      chat.NewEngine(gemini),
		Matcher: jobs.NewMatcher(
			jobs.NewAdzunaClient(cfg.AdzunaAppID, cfg.AdzunaAppKey),
			jobs.NewScorer(openrouter, cfg.DefaultLLMModel),
		),
	})
	return srv.Start()
}
