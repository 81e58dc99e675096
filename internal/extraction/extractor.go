// Package extraction converts raw resume text into a structured portfolio
// via an orchestrated LLM call and a defaulting normalization pass.
package extraction

import (
	"context"
	"log"

	"github.com/careernova/portfolio-engine/internal/jsonrepair"
	"github.com/careernova/portfolio-engine/internal/llm"
	"github.com/careernova/portfolio-engine/internal/prompts"
	"github.com/careernova/portfolio-engine/internal/types"
)

// Extractor runs the portfolio-extraction task with model fallback.
type Extractor struct {
	orch         *llm.Orchestrator
	defaultModel string
	temperature  float32
	maxTokens    int
}

// Options carries per-request parameters for an extraction call.
type Options struct {
	APIKey         string
	PreferredModel string // empty selects the configured default
	Username       string // seeds the name default when the resume has none
}

// New creates an Extractor over the given completion client.
func New(client llm.Completer, defaultModel string, temperature float32, maxTokens int) *Extractor {
	if defaultModel == "" {
		defaultModel = llm.DefaultModel
	}
	return &Extractor{
		orch:         llm.NewOrchestrator(client),
		defaultModel: defaultModel,
		temperature:  temperature,
		maxTokens:    maxTokens,
	}
}

// Extract structures resume text into a portfolio. The candidate-model list
// is walked until one model returns JSON the repair cascade can recover;
// the recovered object is then normalized so every required field is present
// and type-correct. Only *llm.ExhaustedError or *llm.CredentialsError reach
// the caller.
func (e *Extractor) Extract(ctx context.Context, resumeText string, opts Options) (*types.Portfolio, error) {
	template := prompts.MustGet("extraction.json", "portfolio-extraction")
	prompt := prompts.Format(template, map[string]string{"ResumeText": resumeText})

	preferred := opts.PreferredModel
	if preferred == "" {
		preferred = e.defaultModel
	}

	var normalized map[string]any
	_, model, err := e.orch.Generate(ctx, llm.ModelList(preferred), llm.CompletionRequest{
		APIKey:      opts.APIKey,
		Prompt:      prompt,
		Temperature: e.temperature,
		MaxTokens:   e.maxTokens,
	}, func(raw string) error {
		obj, err := jsonrepair.Object(raw)
		if err != nil {
			return err
		}
		normalized = Normalize(obj, opts.Username)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := ValidateShape(normalized); err != nil {
		log.Printf("extraction shape warning model=%s: %v", model, err)
	}

	portfolio := ToPortfolio(normalized)
	log.Printf("portfolio extracted model=%s name=%q role=%q skills=%d",
		model, portfolio.Name, portfolio.Role, len(portfolio.Skills))
	return &portfolio, nil
}

// FallbackPortfolio is the static default record the calling layer persists
// when extraction fails outright. The user still gets a usable, editable
// portfolio instead of an error page.
func FallbackPortfolio(username string) types.Portfolio {
	name := titleCase(username)
	if name == "" {
		name = "Unknown"
	}
	return types.Portfolio{
		Name:         name,
		Role:         "Professional",
		Tagline:      "Building the future with AI",
		Bio:          "This portfolio was generated from your resume. Please update with your specific details.",
		Skills:       []string{"Python", "JavaScript", "AI", "Web Development"},
		Projects:     []types.Project{},
		Experience:   []types.Experience{},
		Education:    []types.Education{},
		Achievements: []string{},
		Contact:      map[string]string{},
	}
}
