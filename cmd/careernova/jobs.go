package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/careernova/portfolio-engine/internal/config"
	"github.com/careernova/portfolio-engine/internal/jobs"
	"github.com/careernova/portfolio-engine/internal/llm"
	"github.com/careernova/portfolio-engine/internal/store"
	"github.com/careernova/portfolio-engine/internal/types"
)

var (
	jobsSlug      string
	jobsLocation  string
	jobsLevel     string
	jobsRemote    bool
	jobsSalaryMin int
	jobsWhat      string
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Score job recommendations for a stored portfolio",
	Long:  `Jobs loads a portfolio by slug, searches the listings API and prints LLM-scored recommendations as JSON. Requires DATABASE_URL.`,
	RunE:  runJobs,
}

func init() {
	jobsCmd.Flags().StringVarP(&jobsSlug, "slug", "s", "", "Portfolio slug (required)")
	jobsCmd.Flags().StringVar(&jobsLocation, "location", "", "Location filter")
	jobsCmd.Flags().StringVar(&jobsLevel, "level", "", "Seniority filter (entry_level, mid_level, senior)")
	jobsCmd.Flags().BoolVar(&jobsRemote, "remote", false, "Only remote listings")
	jobsCmd.Flags().IntVar(&jobsSalaryMin, "salary-min", 0, "Minimum salary filter")
	jobsCmd.Flags().StringVar(&jobsWhat, "what", "", "Search query override (defaults to top portfolio skills)")
	_ = jobsCmd.MarkFlagRequired("slug")
	rootCmd.AddCommand(jobsCmd)
}

func runJobs(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	pg, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pg.Close()

	rec, err := pg.Get(ctx, jobsSlug)
	if err != nil {
		return err
	}

	matcher := jobs.NewMatcher(
		jobs.NewAdzunaClient(cfg.AdzunaAppID, cfg.AdzunaAppKey),
		jobs.NewScorer(llm.NewOpenRouterClient(cfg.OpenRouterBaseURL), cfg.DefaultLLMModel),
	)
	recs, err := matcher.Recommend(ctx, rec.Slug, rec.Portfolio, cfg.OpenRouterAPIKey, types.JobFilter{
		Location:  jobsLocation,
		Level:     jobsLevel,
		Remote:    jobsRemote,
		SalaryMin: jobsSalaryMin,
		What:      jobsWhat,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(recs)
}
